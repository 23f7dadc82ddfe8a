package booking

import (
	"context"
	"time"
)

// Page is a zero-based page request. All listing queries are sorted by
// booking start descending; the order is fixed and not configurable.
type Page struct {
	Number int
	Size   int
}

// Offset returns the row offset of the page.
func (p Page) Offset() int {
	return p.Number * p.Size
}

// Repository defines the persistence contract for bookings. The temporal
// queries take the reference instant as a parameter so that classification
// is computed against the caller's clock, never persisted.
type Repository interface {
	// Save persists a new booking and assigns its id.
	Save(ctx context.Context, b *Booking) (*Booking, error)

	// Update persists changes to an existing booking.
	Update(ctx context.Context, b *Booking) (*Booking, error)

	// FindByID retrieves a booking by id.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// FindByBooker retrieves a page of a user's bookings.
	FindByBooker(ctx context.Context, bookerID int64, page Page) ([]Booking, error)

	// FindByBookerPast retrieves a page of a user's bookings with end < now.
	FindByBookerPast(ctx context.Context, bookerID int64, now time.Time, page Page) ([]Booking, error)

	// FindByBookerFuture retrieves a page of a user's bookings with start > now.
	FindByBookerFuture(ctx context.Context, bookerID int64, now time.Time, page Page) ([]Booking, error)

	// FindByBookerCurrent retrieves a page of a user's bookings with
	// start < now < end.
	FindByBookerCurrent(ctx context.Context, bookerID int64, now time.Time, page Page) ([]Booking, error)

	// FindByBookerStatus retrieves a page of a user's bookings with the
	// given status.
	FindByBookerStatus(ctx context.Context, bookerID int64, status Status, page Page) ([]Booking, error)

	// FindByBookerEndedBefore retrieves all of a user's bookings with
	// end < now, unpaged. Used by the comment rule.
	FindByBookerEndedBefore(ctx context.Context, bookerID int64, now time.Time) ([]Booking, error)

	// FindByOwner retrieves a page of the bookings on items owned by a user.
	FindByOwner(ctx context.Context, ownerID int64, page Page) ([]Booking, error)

	// FindByOwnerPast retrieves a page of owner-scoped bookings with end < now.
	FindByOwnerPast(ctx context.Context, ownerID int64, now time.Time, page Page) ([]Booking, error)

	// FindByOwnerFuture retrieves a page of owner-scoped bookings with start > now.
	FindByOwnerFuture(ctx context.Context, ownerID int64, now time.Time, page Page) ([]Booking, error)

	// FindByOwnerCurrent retrieves a page of owner-scoped bookings with
	// start < now < end.
	FindByOwnerCurrent(ctx context.Context, ownerID int64, now time.Time, page Page) ([]Booking, error)

	// FindByOwnerStatus retrieves a page of owner-scoped bookings with the
	// given status.
	FindByOwnerStatus(ctx context.Context, ownerID int64, status Status, page Page) ([]Booking, error)

	// FindLastForItem retrieves the booking on the item with the latest end
	// strictly before now, or nil if none.
	FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*Booking, error)

	// FindNextForItem retrieves the booking on the item with the earliest
	// start strictly after now, or nil if none. All statuses are considered.
	FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*Booking, error)
}
