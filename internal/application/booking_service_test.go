package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shareloop/service-sharing/internal/clock"
	"github.com/shareloop/service-sharing/internal/domain"
	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
	"github.com/shareloop/service-sharing/internal/events"
	"github.com/shareloop/service-sharing/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingPublisher captures published notices for assertions.
type recordingPublisher struct {
	published []*events.CloudEvent
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event *events.CloudEvent) error {
	p.published = append(p.published, event)
	return nil
}

type bookingFixture struct {
	svc       *BookingService
	users     *memory.UserStore
	items     *memory.ItemStore
	bookings  *memory.BookingStore
	publisher *recordingPublisher
	owner     userDomain.User
	booker    userDomain.User
	item      itemDomain.Item
	now       time.Time
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	ctx := context.Background()

	f := &bookingFixture{
		users:     memory.NewUserStore(),
		items:     memory.NewItemStore(),
		bookings:  memory.NewBookingStore(),
		publisher: &recordingPublisher{},
		now:       time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewBookingService(f.bookings, f.items, f.users,
		clock.Fixed{Instant: f.now}, f.publisher, zap.NewNop())

	owner, err := f.users.Save(ctx, &userDomain.User{Name: "Owner", Email: "owner@example.com"})
	require.NoError(t, err)
	booker, err := f.users.Save(ctx, &userDomain.User{Name: "Booker", Email: "booker@example.com"})
	require.NoError(t, err)
	it, err := f.items.Save(ctx, &itemDomain.Item{
		Name: "Drill", Description: "Cordless drill", Available: true, OwnerID: owner.ID,
	})
	require.NoError(t, err)

	f.owner = *owner
	f.booker = *booker
	f.item = *it
	return f
}

// seedBooking stores a booking for the fixture's item directly.
func (f *bookingFixture) seedBooking(t *testing.T, start, end time.Time, status bookingDomain.Status) *bookingDomain.Booking {
	t.Helper()
	bk := bookingDomain.New(start, end, f.item, f.booker)
	bk.Status = status
	saved, err := f.bookings.Save(context.Background(), bk)
	require.NoError(t, err)
	return saved
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("new booking starts waiting and publishes a notice", func(t *testing.T) {
		f := newBookingFixture(t)
		bk, err := f.svc.Create(ctx, f.booker.ID, CreateBookingRequest{
			ItemID: f.item.ID,
			Start:  f.now.Add(24 * time.Hour),
			End:    f.now.Add(72 * time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, bookingDomain.StatusWaiting, bk.Status)
		assert.Equal(t, f.item.ID, bk.Item.ID)
		assert.Equal(t, f.booker.ID, bk.Booker.ID)

		require.Len(t, f.publisher.published, 1)
		assert.Equal(t, events.BookingCreated, f.publisher.published[0].Type)
	})

	t.Run("missing item", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.svc.Create(ctx, f.booker.ID, CreateBookingRequest{
			ItemID: 999, Start: f.now, End: f.now.Add(time.Hour),
		})
		var notFound *domain.NotFoundError
		require.True(t, errors.As(err, &notFound))
	})

	t.Run("owner booking their own item looks like not found", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.svc.Create(ctx, f.owner.ID, CreateBookingRequest{
			ItemID: f.item.ID, Start: f.now, End: f.now.Add(time.Hour),
		})
		var notFound *domain.NotFoundError
		require.True(t, errors.As(err, &notFound))
	})

	t.Run("unavailable item", func(t *testing.T) {
		f := newBookingFixture(t)
		parked, err := f.items.Save(ctx, &itemDomain.Item{
			Name: "Ladder", Description: "In repair", Available: false, OwnerID: f.owner.ID,
		})
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, f.booker.ID, CreateBookingRequest{
			ItemID: parked.ID, Start: f.now, End: f.now.Add(time.Hour),
		})
		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation))
	})

	t.Run("unknown booker", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.svc.Create(ctx, 999, CreateBookingRequest{
			ItemID: f.item.ID, Start: f.now, End: f.now.Add(time.Hour),
		})
		var notFound *domain.NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Empty(t, f.publisher.published)
	})
}

func TestBookingService_Get(t *testing.T) {
	ctx := context.Background()

	f := newBookingFixture(t)
	bk := f.seedBooking(t, f.now.Add(24*time.Hour), f.now.Add(48*time.Hour), bookingDomain.StatusWaiting)

	t.Run("booker may view", func(t *testing.T) {
		got, err := f.svc.Get(ctx, bk.ID, f.booker.ID)
		require.NoError(t, err)
		assert.Equal(t, bk.ID, got.ID)
	})

	t.Run("owner may view", func(t *testing.T) {
		got, err := f.svc.Get(ctx, bk.ID, f.owner.ID)
		require.NoError(t, err)
		assert.Equal(t, bk.ID, got.ID)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		stranger, err := f.users.Save(ctx, &userDomain.User{Name: "Other", Email: "other@example.com"})
		require.NoError(t, err)

		_, err = f.svc.Get(ctx, bk.ID, stranger.ID)
		var notFound *domain.NotFoundError
		require.True(t, errors.As(err, &notFound))
	})

	t.Run("absent booking", func(t *testing.T) {
		_, err := f.svc.Get(ctx, 999, f.booker.ID)
		var notFound *domain.NotFoundError
		require.True(t, errors.As(err, &notFound))
	})
}

func TestBookingService_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("owner approves", func(t *testing.T) {
		f := newBookingFixture(t)
		bk := f.seedBooking(t, f.now.Add(24*time.Hour), f.now.Add(48*time.Hour), bookingDomain.StatusWaiting)

		updated, err := f.svc.ChangeStatus(ctx, bk.ID, true, f.owner.ID)
		require.NoError(t, err)
		assert.Equal(t, bookingDomain.StatusApproved, updated.Status)

		require.Len(t, f.publisher.published, 1)
		assert.Equal(t, events.BookingStatusChanged, f.publisher.published[0].Type)

		var data events.BookingStatusChangedEvent
		require.NoError(t, f.publisher.published[0].ParseData(&data))
		assert.Equal(t, "APPROVED", data.Status)
	})

	t.Run("owner rejects", func(t *testing.T) {
		f := newBookingFixture(t)
		bk := f.seedBooking(t, f.now.Add(24*time.Hour), f.now.Add(48*time.Hour), bookingDomain.StatusWaiting)

		updated, err := f.svc.ChangeStatus(ctx, bk.ID, false, f.owner.ID)
		require.NoError(t, err)
		assert.Equal(t, bookingDomain.StatusRejected, updated.Status)
	})

	t.Run("non-owner gets not found, even the booker", func(t *testing.T) {
		f := newBookingFixture(t)
		bk := f.seedBooking(t, f.now.Add(24*time.Hour), f.now.Add(48*time.Hour), bookingDomain.StatusWaiting)

		_, err := f.svc.ChangeStatus(ctx, bk.ID, true, f.booker.ID)
		var notFound *domain.NotFoundError
		require.True(t, errors.As(err, &notFound))
	})

	t.Run("re-approving an approved booking fails", func(t *testing.T) {
		f := newBookingFixture(t)
		bk := f.seedBooking(t, f.now.Add(24*time.Hour), f.now.Add(48*time.Hour), bookingDomain.StatusApproved)

		_, err := f.svc.ChangeStatus(ctx, bk.ID, true, f.owner.ID)
		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation))
	})

	t.Run("approving a rejected booking succeeds", func(t *testing.T) {
		f := newBookingFixture(t)
		bk := f.seedBooking(t, f.now.Add(24*time.Hour), f.now.Add(48*time.Hour), bookingDomain.StatusRejected)

		updated, err := f.svc.ChangeStatus(ctx, bk.ID, true, f.owner.ID)
		require.NoError(t, err)
		assert.Equal(t, bookingDomain.StatusApproved, updated.Status)
	})
}

func TestBookingService_ListForRenter(t *testing.T) {
	ctx := context.Background()

	seedWindows := func(t *testing.T, f *bookingFixture) (past, current, future *bookingDomain.Booking) {
		past = f.seedBooking(t, f.now.Add(-72*time.Hour), f.now.Add(-24*time.Hour), bookingDomain.StatusApproved)
		current = f.seedBooking(t, f.now.Add(-time.Hour), f.now.Add(time.Hour), bookingDomain.StatusWaiting)
		future = f.seedBooking(t, f.now.Add(24*time.Hour), f.now.Add(48*time.Hour), bookingDomain.StatusWaiting)
		return past, current, future
	}

	t.Run("ALL returns everything newest-starting first", func(t *testing.T) {
		f := newBookingFixture(t)
		past, current, future := seedWindows(t, f)

		got, err := f.svc.ListForRenter(ctx, f.booker.ID, bookingDomain.StateAll, 0, 10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, future.ID, got[0].ID)
		assert.Equal(t, current.ID, got[1].ID)
		assert.Equal(t, past.ID, got[2].ID)
	})

	t.Run("temporal windows", func(t *testing.T) {
		f := newBookingFixture(t)
		past, current, future := seedWindows(t, f)

		got, err := f.svc.ListForRenter(ctx, f.booker.ID, bookingDomain.StatePast, 0, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, past.ID, got[0].ID)

		got, err = f.svc.ListForRenter(ctx, f.booker.ID, bookingDomain.StateCurrent, 0, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, current.ID, got[0].ID)

		got, err = f.svc.ListForRenter(ctx, f.booker.ID, bookingDomain.StateFuture, 0, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, future.ID, got[0].ID)
	})

	t.Run("status filters", func(t *testing.T) {
		f := newBookingFixture(t)
		seedWindows(t, f)

		got, err := f.svc.ListForRenter(ctx, f.booker.ID, bookingDomain.StateWaiting, 0, 10)
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = f.svc.ListForRenter(ctx, f.booker.ID, bookingDomain.StateApproved, 0, 10)
		require.NoError(t, err)
		assert.Len(t, got, 1)

		// CANCELED is a legal selector that never matches anything; nothing
		// ever sets the status.
		got, err = f.svc.ListForRenter(ctx, f.booker.ID, bookingDomain.StateCanceled, 0, 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("page index is from divided by size", func(t *testing.T) {
		f := newBookingFixture(t)
		seedWindows(t, f)

		got, err := f.svc.ListForRenter(ctx, f.booker.ID, bookingDomain.StateAll, 0, 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = f.svc.ListForRenter(ctx, f.booker.ID, bookingDomain.StateAll, 2, 2)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("invalid page parameters", func(t *testing.T) {
		f := newBookingFixture(t)
		for _, params := range []struct{ from, size int }{{0, 0}, {0, -1}, {-1, 10}} {
			_, err := f.svc.ListForRenter(ctx, f.booker.ID, bookingDomain.StateAll, params.from, params.size)
			var validation *domain.ValidationError
			require.True(t, errors.As(err, &validation), "from=%d size=%d", params.from, params.size)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.svc.ListForRenter(ctx, 999, bookingDomain.StateAll, 0, 10)
		var notFound *domain.NotFoundError
		require.True(t, errors.As(err, &notFound))
	})
}

func TestBookingService_ListForOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("owner sees bookings on their items", func(t *testing.T) {
		f := newBookingFixture(t)
		bk := f.seedBooking(t, f.now.Add(24*time.Hour), f.now.Add(48*time.Hour), bookingDomain.StatusWaiting)

		got, err := f.svc.ListForOwner(ctx, f.owner.ID, bookingDomain.StateAll, 0, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, bk.ID, got[0].ID)

		got, err = f.svc.ListForOwner(ctx, f.owner.ID, bookingDomain.StateWaiting, 0, 10)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("a user without items sees nothing", func(t *testing.T) {
		f := newBookingFixture(t)
		f.seedBooking(t, f.now.Add(24*time.Hour), f.now.Add(48*time.Hour), bookingDomain.StatusWaiting)

		got, err := f.svc.ListForOwner(ctx, f.booker.ID, bookingDomain.StateAll, 0, 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.svc.ListForOwner(ctx, 999, bookingDomain.StateAll, 0, 10)
		var notFound *domain.NotFoundError
		require.True(t, errors.As(err, &notFound))
	})
}

func TestPageFor(t *testing.T) {
	page, err := pageFor(20, 10)
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.Page{Number: 2, Size: 10}, page)

	// The offset is truncated to a page boundary.
	page, err = pageFor(5, 10)
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.Page{Number: 0, Size: 10}, page)

	_, err = pageFor(0, 0)
	require.Error(t, err)
	_, err = pageFor(-1, 10)
	require.Error(t, err)
}
