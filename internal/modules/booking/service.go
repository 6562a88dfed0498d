package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"
	"github.com/yomiyu15/Workingspacebackend/internal/pkg/validator"
	"github.com/yomiyu15/Workingspacebackend/internal/repository"
)

const (
	defaultCurrency      = "ETB"
	defaultTxTimeout     = 10 * time.Second
	notificationTimeout  = 30 * time.Second
	defaultCancelMessage = "Cancelled by admin"
)

var timeOfDayLayouts = []string{"15:04", "15:04:05"}

type Options struct {
	Currency  string
	TxTimeout time.Duration
	Logger    logrus.FieldLogger
}

type Service struct {
	store     Store
	notifs    Notifier
	locks     *workspaceLocks
	currency  string
	txTimeout time.Duration
	log       logrus.FieldLogger

	pending sync.WaitGroup
}

func NewService(store Store, notifs Notifier, opts Options) *Service {
	if opts.Currency == "" {
		opts.Currency = defaultCurrency
	}
	if opts.TxTimeout <= 0 {
		opts.TxTimeout = defaultTxTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	return &Service{
		store:     store,
		notifs:    notifs,
		locks:     newWorkspaceLocks(),
		currency:  opts.Currency,
		txTimeout: opts.TxTimeout,
		log:       opts.Logger,
	}
}

// bookingInput is a CreateBookingRequest after validation and normalization.
type bookingInput struct {
	name          string
	email         string
	phone         string
	workspaceID   int64
	start         domain.Date
	end           domain.Date
	startTime     *string
	endTime       *string
	duration      domain.DurationUnit
	paymentStatus string
	source        string
	addons        domain.Tags
	notes         *string
}

func normalizeCreate(req CreateBookingRequest) (*bookingInput, error) {
	req.UserName = strings.TrimSpace(req.UserName)
	req.Email = strings.TrimSpace(req.Email)
	if errs := validator.Validate(req); errs != nil {
		return nil, &ValidationError{
			Message: "Name, email, workspace, and start date are required",
			Fields:  errs,
		}
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	in := &bookingInput{
		name:          req.UserName,
		email:         req.Email,
		phone:         req.Phone,
		workspaceID:   req.WorkspaceID,
		start:         start,
		end:           end,
		duration:      domain.NormalizeDuration(req.DurationUnit),
		paymentStatus: strings.TrimSpace(req.PaymentStatus),
		source:        strings.TrimSpace(req.Source),
		addons:        req.Addons,
		notes:         optionalString(req.Notes),
	}
	if in.paymentStatus == "" {
		in.paymentStatus = domain.DefaultPaymentStatus
	}
	if in.source == "" {
		in.source = domain.DefaultBookingSource
	}
	if in.addons == nil {
		in.addons = domain.Tags{}
	}

	// Multi-day durations are date-granular; times only apply to day bookings.
	if in.duration == domain.DurationDay {
		if in.startTime, err = parseTimeOfDay("start_time", req.StartTime); err != nil {
			return nil, err
		}
		if in.endTime, err = parseTimeOfDay("end_time", req.EndTime); err != nil {
			return nil, err
		}
	}

	return in, nil
}

func parseTimeOfDay(field, v string) (*string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			s := t.Format("15:04")
			return &s, nil
		}
	}
	return nil, &ValidationError{
		Message: "Invalid time of day, expected HH:MM",
		Fields:  map[string]string{field: "time"},
	}
}

// CreateBooking validates the request and, in one transaction, resolves the
// customer, locks the workspace, checks capacity over the inclusive date range,
// prices the booking and inserts it as pending.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.BookingView, error) {
	in, err := normalizeCreate(req)
	if err != nil {
		return nil, err
	}

	bookingID, err := s.reserve(ctx, in)
	if err != nil {
		return nil, err
	}

	view, err := s.store.Bookings().GetView(ctx, bookingID)
	if err != nil {
		return nil, storage("load created booking", err)
	}

	s.log.WithFields(logrus.Fields{
		"booking_id":    view.ID,
		"workspace_id":  view.WorkspaceID,
		"user_id":       view.UserID,
		"start_date":    view.StartDate.String(),
		"end_date":      view.EndDate.String(),
		"duration_unit": view.DurationUnit,
		"total_price":   view.TotalPrice,
	}).Info("[BOOKING] booking created")

	return view, nil
}

// reserve runs the critical section. The per-workspace lock and the row lock
// are both released when it returns, before any network call.
func (s *Service) reserve(ctx context.Context, in *bookingInput) (int64, error) {
	credential, err := prepareCredential(ctx, s.store.Users(), in.email)
	if err != nil {
		return 0, err
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	unlock, err := s.locks.Lock(txCtx, in.workspaceID)
	if err != nil {
		return 0, storage("acquire workspace lock", err)
	}
	defer unlock()

	var bookingID int64
	err = s.store.Transaction(txCtx, func(tx Store) error {
		userID, err := ResolveUser(txCtx, tx.Users(), in.name, in.email, in.phone, credential)
		if err != nil {
			return err
		}

		ws, err := tx.Workspaces().GetForUpdate(txCtx, in.workspaceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return storage("lock workspace", err)
		}

		active, err := tx.Bookings().CountActiveOverlapping(txCtx, ws.ID, in.start, in.end)
		if err != nil {
			return storage("count overlapping bookings", err)
		}
		if !HasCapacity(ws.Inventory(), active) {
			return ErrNoAvailability
		}

		b := &domain.Booking{
			UserID:        userID,
			WorkspaceID:   ws.ID,
			StartDate:     in.start,
			EndDate:       in.end,
			StartTime:     in.startTime,
			EndTime:       in.endTime,
			DurationUnit:  in.duration,
			TotalPrice:    Price(ws, in.start, in.end, in.duration),
			Currency:      s.currency,
			Status:        domain.BookingPending,
			PaymentStatus: in.paymentStatus,
			Source:        in.source,
			Addons:        in.addons,
			Notes:         in.notes,
		}
		if err := tx.Bookings().Create(txCtx, b); err != nil {
			return storage("insert booking", err)
		}
		bookingID = b.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoAvailability) {
			s.log.WithFields(logrus.Fields{
				"workspace_id": in.workspaceID,
				"start_date":   in.start.String(),
				"end_date":     in.end.String(),
			}).Info("[BOOKING] no availability")
		}
		if isDomainError(err) {
			return 0, err
		}
		return 0, storage("create booking", err)
	}
	return bookingID, nil
}

// DeleteBooking removes a booking and returns it as it was. The freed
// inventory is available to the next request immediately.
func (s *Service) DeleteBooking(ctx context.Context, id int64) (*domain.BookingView, error) {
	var deleted *domain.BookingView
	err := s.store.Transaction(ctx, func(tx Store) error {
		view, err := tx.Bookings().GetView(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return storage("load booking", err)
		}
		if err := tx.Bookings().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return storage("delete booking", err)
		}
		deleted = view
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, storage("delete booking", err)
	}

	s.log.WithFields(logrus.Fields{
		"booking_id":   deleted.ID,
		"workspace_id": deleted.WorkspaceID,
		"status":       deleted.Status,
	}).Info("[BOOKING] booking deleted")
	return deleted, nil
}

func isDomainError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrNoAvailability) ||
		errors.Is(err, ErrInvalidStatusTransition) ||
		errors.Is(err, ErrStorage)
}

func (s *Service) ListBookings(ctx context.Context) ([]domain.BookingView, error) {
	views, err := s.store.Bookings().ListViews(ctx)
	if err != nil {
		return nil, storage("list bookings", err)
	}
	return views, nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.BookingView, error) {
	view, err := s.store.Bookings().GetView(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storage("get booking", err)
	}
	return view, nil
}

func normalizeUpdate(req UpdateBookingRequest) (domain.BookingUpdate, error) {
	var upd domain.BookingUpdate

	if req.Status != nil {
		if v := strings.ToLower(strings.TrimSpace(*req.Status)); v != "" {
			status := domain.BookingStatus(v)
			if !status.Valid() {
				return upd, &ValidationError{
					Message: fmt.Sprintf("Unknown booking status %q", v),
					Fields:  map[string]string{"status": "oneof"},
				}
			}
			upd.Status = &status
		}
	}
	if req.PaymentStatus != nil {
		if v := strings.TrimSpace(*req.PaymentStatus); v != "" {
			upd.PaymentStatus = &v
		}
	}
	if req.Notes != nil {
		notes := *req.Notes
		upd.Notes = &notes
	}

	if upd.Empty() {
		return upd, invalid("Nothing to update")
	}
	return upd, nil
}

// UpdateBooking applies an admin review. Status changes must follow the
// booking lifecycle; confirmations and cancellations notify the customer
// after the change is committed.
func (s *Service) UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest) (*domain.BookingView, error) {
	upd, err := normalizeUpdate(req)
	if err != nil {
		return nil, err
	}

	var transitioned *domain.BookingStatus
	err = s.store.Transaction(ctx, func(tx Store) error {
		current, err := tx.Bookings().GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return storage("lock booking", err)
		}

		if upd.Status != nil {
			switch {
			case *upd.Status == current.Status:
				upd.Status = nil
			case current.Status.IsTerminal():
				return fmt.Errorf("%w: booking is already %s", ErrInvalidStatusTransition, current.Status)
			case !current.Status.CanTransitionTo(*upd.Status):
				return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, *upd.Status)
			default:
				transitioned = upd.Status
			}
		}
		if upd.Empty() {
			return nil
		}

		if err := tx.Bookings().Update(ctx, id, upd); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return storage("update booking", err)
		}
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, storage("update booking", err)
	}

	view, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if transitioned != nil {
		s.log.WithFields(logrus.Fields{
			"booking_id": id,
			"status":     *transitioned,
		}).Info("[BOOKING] status changed")
		s.notifyTransition(ctx, *view, *transitioned)
	}

	return view, nil
}

func (s *Service) notifyTransition(ctx context.Context, view domain.BookingView, status domain.BookingStatus) {
	if s.notifs == nil || view.Email == "" {
		return
	}

	switch status {
	case domain.BookingConfirmed:
		s.dispatch(ctx, view, "confirmation", func(ctx context.Context) error {
			return s.notifs.NotifyBookingConfirmed(ctx, view.Email, view)
		})
	case domain.BookingCancelled:
		reason := defaultCancelMessage
		if view.Notes != nil && strings.TrimSpace(*view.Notes) != "" {
			reason = *view.Notes
		}
		s.dispatch(ctx, view, "cancellation", func(ctx context.Context) error {
			return s.notifs.NotifyBookingCancelled(ctx, view.Email, view, reason)
		})
	}
}

// dispatch sends a notification in the background. Failures are logged and
// never reach the caller.
func (s *Service) dispatch(ctx context.Context, view domain.BookingView, kind string, send func(context.Context) error) {
	fields := logrus.Fields{"booking_id": view.ID, "email": view.Email, "kind": kind}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				s.log.WithFields(fields).Errorf("[BOOKING] notification panic: %v", r)
			}
		}()

		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)
		defer cancel()

		if err := send(nctx); err != nil {
			s.log.WithFields(fields).WithError(err).Warn("[BOOKING] notification failed")
			return
		}
		s.log.WithFields(fields).Info("[BOOKING] notification sent")
	}()
}

// Wait blocks until in-flight notifications finish.
func (s *Service) Wait() {
	s.pending.Wait()
}
