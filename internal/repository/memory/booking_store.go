package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shareloop/service-sharing/internal/domain"
	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
)

// BookingStore is an in-memory implementation of booking.Repository. It
// exclusively owns booking storage; callers get copies.
type BookingStore struct {
	mu       sync.RWMutex
	bookings map[int64]bookingDomain.Booking
	ids      idGenerator
}

// NewBookingStore creates an empty BookingStore.
func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[int64]bookingDomain.Booking)}
}

// Save persists a new booking and assigns its id.
func (s *BookingStore) Save(_ context.Context, b *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *b
	saved.ID = s.ids.next()
	s.bookings[saved.ID] = saved
	return &saved, nil
}

// Update persists changes to an existing booking, last write wins.
func (s *BookingStore) Update(_ context.Context, b *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *b
	s.bookings[saved.ID] = saved
	return &saved, nil
}

// FindByID retrieves a booking by id.
func (s *BookingStore) FindByID(_ context.Context, id int64) (*bookingDomain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", strconv.FormatInt(id, 10))
	}
	return &b, nil
}

// FindByBooker retrieves a page of a user's bookings.
func (s *BookingStore) FindByBooker(_ context.Context, bookerID int64, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	return s.page(page, func(b bookingDomain.Booking) bool {
		return b.Booker.ID == bookerID
	}), nil
}

// FindByBookerPast retrieves a page of a user's bookings with end < now.
func (s *BookingStore) FindByBookerPast(_ context.Context, bookerID int64, now time.Time, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	return s.page(page, func(b bookingDomain.Booking) bool {
		return b.Booker.ID == bookerID && b.End.Before(now)
	}), nil
}

// FindByBookerFuture retrieves a page of a user's bookings with start > now.
func (s *BookingStore) FindByBookerFuture(_ context.Context, bookerID int64, now time.Time, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	return s.page(page, func(b bookingDomain.Booking) bool {
		return b.Booker.ID == bookerID && b.Start.After(now)
	}), nil
}

// FindByBookerCurrent retrieves a page of a user's bookings with start < now < end.
func (s *BookingStore) FindByBookerCurrent(_ context.Context, bookerID int64, now time.Time, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	return s.page(page, func(b bookingDomain.Booking) bool {
		return b.Booker.ID == bookerID && b.Start.Before(now) && b.End.After(now)
	}), nil
}

// FindByBookerStatus retrieves a page of a user's bookings with the given status.
func (s *BookingStore) FindByBookerStatus(_ context.Context, bookerID int64, status bookingDomain.Status, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	return s.page(page, func(b bookingDomain.Booking) bool {
		return b.Booker.ID == bookerID && b.Status == status
	}), nil
}

// FindByBookerEndedBefore retrieves all of a user's bookings with end < now.
func (s *BookingStore) FindByBookerEndedBefore(_ context.Context, bookerID int64, now time.Time) ([]bookingDomain.Booking, error) {
	return s.collect(func(b bookingDomain.Booking) bool {
		return b.Booker.ID == bookerID && b.End.Before(now)
	}), nil
}

// FindByOwner retrieves a page of the bookings on items owned by a user.
func (s *BookingStore) FindByOwner(_ context.Context, ownerID int64, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	return s.page(page, func(b bookingDomain.Booking) bool {
		return b.Item.OwnerID == ownerID
	}), nil
}

// FindByOwnerPast retrieves a page of owner-scoped bookings with end < now.
func (s *BookingStore) FindByOwnerPast(_ context.Context, ownerID int64, now time.Time, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	return s.page(page, func(b bookingDomain.Booking) bool {
		return b.Item.OwnerID == ownerID && b.End.Before(now)
	}), nil
}

// FindByOwnerFuture retrieves a page of owner-scoped bookings with start > now.
func (s *BookingStore) FindByOwnerFuture(_ context.Context, ownerID int64, now time.Time, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	return s.page(page, func(b bookingDomain.Booking) bool {
		return b.Item.OwnerID == ownerID && b.Start.After(now)
	}), nil
}

// FindByOwnerCurrent retrieves a page of owner-scoped bookings with start < now < end.
func (s *BookingStore) FindByOwnerCurrent(_ context.Context, ownerID int64, now time.Time, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	return s.page(page, func(b bookingDomain.Booking) bool {
		return b.Item.OwnerID == ownerID && b.Start.Before(now) && b.End.After(now)
	}), nil
}

// FindByOwnerStatus retrieves a page of owner-scoped bookings with the given status.
func (s *BookingStore) FindByOwnerStatus(_ context.Context, ownerID int64, status bookingDomain.Status, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	return s.page(page, func(b bookingDomain.Booking) bool {
		return b.Item.OwnerID == ownerID && b.Status == status
	}), nil
}

// FindLastForItem retrieves the booking on the item with the latest end
// strictly before now, or nil if none.
func (s *BookingStore) FindLastForItem(_ context.Context, itemID int64, now time.Time) (*bookingDomain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last *bookingDomain.Booking
	for _, b := range s.bookings {
		if b.Item.ID != itemID || !b.End.Before(now) {
			continue
		}
		if last == nil || b.End.After(last.End) {
			copied := b
			last = &copied
		}
	}
	return last, nil
}

// FindNextForItem retrieves the booking on the item with the earliest start
// strictly after now, or nil if none. All statuses are considered.
func (s *BookingStore) FindNextForItem(_ context.Context, itemID int64, now time.Time) (*bookingDomain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var next *bookingDomain.Booking
	for _, b := range s.bookings {
		if b.Item.ID != itemID || !b.Start.After(now) {
			continue
		}
		if next == nil || b.Start.Before(next.Start) {
			copied := b
			next = &copied
		}
	}
	return next, nil
}

// collect returns matching bookings sorted by start descending.
func (s *BookingStore) collect(match func(bookingDomain.Booking) bool) []bookingDomain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]bookingDomain.Booking, 0)
	for _, b := range s.bookings {
		if match(b) {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Start.After(bookings[j].Start) })
	return bookings
}

func (s *BookingStore) page(page bookingDomain.Page, match func(bookingDomain.Booking) bool) []bookingDomain.Booking {
	return pageSlice(s.collect(match), page.Number, page.Size)
}
