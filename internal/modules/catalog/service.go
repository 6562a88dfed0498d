package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"
	"github.com/yomiyu15/Workingspacebackend/internal/pkg/validator"
	"github.com/yomiyu15/Workingspacebackend/internal/repository"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnknownLocation = errors.New("unknown location")
	ErrWorkspaceInUse  = errors.New("workspace has bookings")
)

// ValidationError carries field -> failed rule for a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid workspace: %v", e.Fields)
}

type WorkspaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Workspace, error)
	List(ctx context.Context, f repository.WorkspaceFilters) ([]domain.Workspace, error)
	Create(ctx context.Context, w *domain.Workspace) error
	Update(ctx context.Context, w *domain.Workspace) error
	Delete(ctx context.Context, id int64) error
}

type LocationReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	List(ctx context.Context) ([]domain.Location, error)
}

type Service struct {
	workspaces WorkspaceRepository
	locations  LocationReader
}

func NewService(workspaces WorkspaceRepository, locations LocationReader) *Service {
	return &Service{workspaces: workspaces, locations: locations}
}

// ListWorkspaces returns workspaces newest first with their location summary.
func (s *Service) ListWorkspaces(ctx context.Context, onlyActive bool, limit int) ([]domain.Workspace, error) {
	items, err := s.workspaces.List(ctx, repository.WorkspaceFilters{OnlyActive: onlyActive, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return items, nil
}

func (s *Service) GetWorkspace(ctx context.Context, id int64) (*domain.Workspace, error) {
	w, err := s.workspaces.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get workspace %d: %w", id, err)
	}
	return w, nil
}

func (s *Service) CreateWorkspace(ctx context.Context, req WorkspaceRequest) (*domain.Workspace, error) {
	if err := s.checkRequest(ctx, &req); err != nil {
		return nil, err
	}

	w := req.toWorkspace(0)
	if err := s.workspaces.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"workspace_id": w.ID,
		"inventory":    w.InventoryCount,
		"is_active":    w.IsActive,
	}).Info("[CATALOG] workspace created")
	return s.GetWorkspace(ctx, w.ID)
}

// UpdateWorkspace replaces the workspace. Inventory and activity changes
// apply to later availability checks; existing bookings are left as they are.
func (s *Service) UpdateWorkspace(ctx context.Context, id int64, req WorkspaceRequest) (*domain.Workspace, error) {
	if err := s.checkRequest(ctx, &req); err != nil {
		return nil, err
	}

	w := req.toWorkspace(id)
	if err := s.workspaces.Update(ctx, w); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update workspace %d: %w", id, err)
	}

	logrus.WithFields(logrus.Fields{
		"workspace_id": id,
		"inventory":    w.InventoryCount,
		"is_active":    w.IsActive,
	}).Info("[CATALOG] workspace updated")
	return s.GetWorkspace(ctx, id)
}

func (s *Service) DeleteWorkspace(ctx context.Context, id int64) error {
	if err := s.workspaces.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrInUse):
			return ErrWorkspaceInUse
		}
		return fmt.Errorf("delete workspace %d: %w", id, err)
	}

	logrus.WithField("workspace_id", id).Info("[CATALOG] workspace deleted")
	return nil
}

func (s *Service) ListLocations(ctx context.Context) ([]domain.Location, error) {
	items, err := s.locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return items, nil
}

func (s *Service) checkRequest(ctx context.Context, req *WorkspaceRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	req.LeadTime = strings.TrimSpace(req.LeadTime)
	if errs := validator.Validate(req); errs != nil {
		return &ValidationError{Fields: errs}
	}

	if req.LocationID == nil {
		return nil
	}
	if _, err := s.locations.GetByID(ctx, *req.LocationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownLocation
		}
		return fmt.Errorf("get location %d: %w", *req.LocationID, err)
	}
	return nil
}
