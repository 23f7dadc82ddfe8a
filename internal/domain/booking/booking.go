package booking

import (
	"fmt"
	"time"

	"github.com/shareloop/service-sharing/internal/domain"
	"github.com/shareloop/service-sharing/internal/domain/item"
	"github.com/shareloop/service-sharing/internal/domain/user"
)

// Booking is a request to rent an item for a date range. It is created in
// WAITING and moved to APPROVED or REJECTED by the item's owner. Bookings
// are never deleted.
type Booking struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Item   item.Item `json:"item"`
	Booker user.User `json:"booker"`
	Status Status    `json:"status"`
}

// New creates a booking in the initial WAITING status.
func New(start, end time.Time, it item.Item, booker user.User) *Booking {
	return &Booking{
		Start:  start,
		End:    end,
		Item:   it,
		Booker: booker,
		Status: StatusWaiting,
	}
}

// Approve sets the status to APPROVED. Re-approving an APPROVED booking is
// an error; any other current status, including REJECTED, is overwritten.
func (b *Booking) Approve() error {
	if b.Status == StatusApproved {
		return domain.NewValidationError(fmt.Sprintf("cannot change status to %s", StatusApproved))
	}
	b.Status = StatusApproved
	return nil
}

// Reject sets the status to REJECTED. Re-rejecting a REJECTED booking is an
// error; any other current status, including APPROVED, is overwritten. The
// guard only blocks matching-status re-submission, never the opposite
// direction.
func (b *Booking) Reject() error {
	if b.Status == StatusRejected {
		return domain.NewValidationError(fmt.Sprintf("cannot change status to %s", StatusRejected))
	}
	b.Status = StatusRejected
	return nil
}
