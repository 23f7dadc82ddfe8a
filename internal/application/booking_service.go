package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shareloop/service-sharing/internal/clock"
	"github.com/shareloop/service-sharing/internal/domain"
	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
	"github.com/shareloop/service-sharing/internal/events"
	"go.uber.org/zap"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// EventPublisher publishes event notices. Failures are logged and never
// surfaced to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event *events.CloudEvent) error
}

// BookingService is the booking engine: it orchestrates creation,
// retrieval, status transition and state-filtered listing, and enforces
// the authorization rules around them.
type BookingService struct {
	bookings  bookingDomain.Repository
	items     itemDomain.Repository
	users     userDomain.Repository
	clock     clock.Clock
	publisher EventPublisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	clk clock.Clock,
	publisher EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		items:     items,
		users:     users,
		clock:     clk,
		publisher: publisher,
		logger:    logger,
	}
}

// Create books an item for the caller. The item must exist, must not belong
// to the caller, and must be available. The booking starts out WAITING.
func (s *BookingService) Create(ctx context.Context, callerID int64, req CreateBookingRequest) (*bookingDomain.Booking, error) {
	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID == callerID {
		// Owners get the same not-found answer as strangers so the check
		// leaks nothing.
		return nil, domain.NewNotFoundMessage("booking",
			fmt.Sprintf("user %d cannot book their own item %d", callerID, req.ItemID))
	}
	if !it.Available {
		return nil, domain.NewValidationError(
			fmt.Sprintf("item %d is not available for booking", req.ItemID))
	}

	booker, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	saved, err := s.bookings.Save(ctx, bookingDomain.New(req.Start, req.End, *it, *booker))
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", saved.ID),
		zap.Int64("item_id", it.ID),
		zap.Int64("booker_id", callerID),
	)
	s.publishCreated(ctx, saved)
	return saved, nil
}

// Get retrieves a booking for its booker or the item's owner. Any other
// caller gets the same not-found answer as for an absent booking.
func (s *BookingService) Get(ctx context.Context, bookingID, callerID int64) (*bookingDomain.Booking, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bk.Booker.ID != callerID && bk.Item.OwnerID != callerID {
		return nil, domain.NewNotFoundMessage("booking",
			fmt.Sprintf("user %d may not view booking %d", callerID, bookingID))
	}
	return bk, nil
}

// ChangeStatus lets the item's owner approve or reject a booking. Only a
// matching-status re-submission is blocked; approving a rejected booking
// (and the reverse) succeeds.
func (s *BookingService) ChangeStatus(ctx context.Context, bookingID int64, approved bool, callerID int64) (*bookingDomain.Booking, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bk.Item.OwnerID != callerID {
		return nil, domain.NewNotFoundMessage("user",
			fmt.Sprintf("item %d does not belong to user %d", bk.Item.ID, callerID))
	}

	if approved {
		err = bk.Approve()
	} else {
		err = bk.Reject()
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.bookings.Update(ctx, bk)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking status changed",
		zap.Int64("booking_id", bookingID),
		zap.String("status", updated.Status.String()),
	)
	s.publishStatusChanged(ctx, updated)
	return updated, nil
}

// ListForRenter lists the caller's own bookings matching the state
// selector, newest-starting first.
func (s *BookingService) ListForRenter(ctx context.Context, callerID int64, state bookingDomain.State, from, size int) ([]bookingDomain.Booking, error) {
	if err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}
	page, err := pageFor(from, size)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	switch state {
	case bookingDomain.StateAll:
		return s.bookings.FindByBooker(ctx, callerID, page)
	case bookingDomain.StatePast:
		return s.bookings.FindByBookerPast(ctx, callerID, now, page)
	case bookingDomain.StateFuture:
		return s.bookings.FindByBookerFuture(ctx, callerID, now, page)
	case bookingDomain.StateCurrent:
		return s.bookings.FindByBookerCurrent(ctx, callerID, now, page)
	case bookingDomain.StateWaiting, bookingDomain.StateApproved,
		bookingDomain.StateRejected, bookingDomain.StateCanceled:
		return s.bookings.FindByBookerStatus(ctx, callerID, state.Status(), page)
	default:
		// The handler validates the literal; this arm is unreachable.
		return nil, domain.NewValidationError(fmt.Sprintf("Unknown state: %s", state))
	}
}

// ListForOwner lists the bookings on items owned by the caller matching the
// state selector, newest-starting first.
func (s *BookingService) ListForOwner(ctx context.Context, callerID int64, state bookingDomain.State, from, size int) ([]bookingDomain.Booking, error) {
	if err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}
	page, err := pageFor(from, size)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	switch state {
	case bookingDomain.StateAll:
		return s.bookings.FindByOwner(ctx, callerID, page)
	case bookingDomain.StatePast:
		return s.bookings.FindByOwnerPast(ctx, callerID, now, page)
	case bookingDomain.StateFuture:
		return s.bookings.FindByOwnerFuture(ctx, callerID, now, page)
	case bookingDomain.StateCurrent:
		return s.bookings.FindByOwnerCurrent(ctx, callerID, now, page)
	case bookingDomain.StateWaiting, bookingDomain.StateApproved,
		bookingDomain.StateRejected, bookingDomain.StateCanceled:
		return s.bookings.FindByOwnerStatus(ctx, callerID, state.Status(), page)
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("Unknown state: %s", state))
	}
}

func (s *BookingService) requireUser(ctx context.Context, userID int64) error {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFoundError("user", fmt.Sprintf("%d", userID))
	}
	return nil
}

func (s *BookingService) publishCreated(ctx context.Context, bk *bookingDomain.Booking) {
	s.publish(ctx, events.BookingCreated, bk, events.BookingCreatedEvent{
		BookingID:  bk.ID,
		ItemID:     bk.Item.ID,
		OwnerID:    bk.Item.OwnerID,
		BookerID:   bk.Booker.ID,
		Start:      bk.Start,
		End:        bk.End,
		OccurredAt: s.clock.Now(),
	})
}

func (s *BookingService) publishStatusChanged(ctx context.Context, bk *bookingDomain.Booking) {
	s.publish(ctx, events.BookingStatusChanged, bk, events.BookingStatusChangedEvent{
		BookingID:  bk.ID,
		ItemID:     bk.Item.ID,
		OwnerID:    bk.Item.OwnerID,
		BookerID:   bk.Booker.ID,
		Status:     bk.Status.String(),
		OccurredAt: s.clock.Now(),
	})
}

func (s *BookingService) publish(ctx context.Context, eventType string, bk *bookingDomain.Booking, data interface{}) {
	if s.publisher == nil {
		return
	}
	cloudEvent, err := events.NewCloudEvent("service-sharing", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.publisher.Publish(ctx, fmt.Sprintf("%d", bk.ID), cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
