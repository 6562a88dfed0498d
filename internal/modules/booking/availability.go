package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"
	"github.com/yomiyu15/Workingspacebackend/internal/repository"
)

// HasCapacity reports whether another active booking fits next to activeCount existing ones.
func HasCapacity(inventory int, activeCount int64) bool {
	if inventory < 1 {
		inventory = 1
	}
	return activeCount < int64(inventory)
}

func Remaining(inventory int, activeCount int64) int {
	if inventory < 1 {
		inventory = 1
	}
	left := int64(inventory) - activeCount
	if left < 0 {
		return 0
	}
	return int(left)
}

// parseRange validates an inclusive date range; an empty end means start.
func parseRange(startDate, endDate string) (domain.Date, domain.Date, error) {
	start, err := domain.ParseDate(startDate)
	if err != nil {
		return domain.Date{}, domain.Date{}, invalid("Invalid start or end date")
	}
	end := start
	if strings.TrimSpace(endDate) != "" {
		if end, err = domain.ParseDate(endDate); err != nil {
			return domain.Date{}, domain.Date{}, invalid("Invalid start or end date")
		}
	}
	if end.Before(start) {
		return domain.Date{}, domain.Date{}, invalid("End date must be the same or after start date")
	}
	return start, end, nil
}

// CheckAvailability reports how many units of the workspace are still free
// over the inclusive range without reserving anything, with the price the
// range would cost for the requested duration unit.
func (s *Service) CheckAvailability(ctx context.Context, q AvailabilityQuery) (*domain.Availability, error) {
	if q.WorkspaceID <= 0 {
		return nil, invalid("workspace_id and start_date are required")
	}
	startDate := q.StartDate
	if strings.TrimSpace(startDate) == "" {
		startDate = q.Date
	}
	if strings.TrimSpace(startDate) == "" {
		return nil, invalid("workspace_id and start_date are required")
	}

	start, end, err := parseRange(startDate, q.EndDate)
	if err != nil {
		return nil, err
	}

	ws, err := s.store.Workspaces().GetByID(ctx, q.WorkspaceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storage("get workspace", err)
	}

	active, err := s.store.Bookings().CountActiveOverlapping(ctx, ws.ID, start, end)
	if err != nil {
		return nil, storage("count overlapping bookings", err)
	}

	unit := domain.NormalizeDuration(q.Duration)
	return &domain.Availability{
		WorkspaceID:    ws.ID,
		Workspace:      ws.Name,
		InventoryCount: ws.Inventory(),
		ActiveCount:    int(active),
		Remaining:      Remaining(ws.Inventory(), active),
		LeadTime:       ws.LeadTime,
		RequestedStart: start,
		RequestedEnd:   end,
		DurationUnit:   unit,
		EstimatedPrice: PriceForDates(ws, startDate, q.EndDate, unit),
		Currency:       s.currency,
	}, nil
}
