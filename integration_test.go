//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/shareloop/service-sharing/internal/application"
	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
	"github.com/shareloop/service-sharing/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBookingLifecycle_CreateApproveList runs the full lifecycle against
// containerized Postgres and Kafka: register users, list an item, book it,
// approve the booking, and verify the listings and the published notices.
func TestBookingLifecycle_CreateApproveList(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupSharingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()

	owner, err := stack.Users.Create(ctx, userDomain.User{Name: "Owner", Email: "owner@example.com"})
	require.NoError(t, err)
	booker, err := stack.Users.Create(ctx, userDomain.User{Name: "Booker", Email: "booker@example.com"})
	require.NoError(t, err)

	available := true
	item, err := stack.Items.Create(ctx, owner.ID, application.CreateItemRequest{
		Name:        "Cordless drill",
		Description: "18V cordless drill with two batteries",
		Available:   &available,
	})
	require.NoError(t, err)

	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	end := start.Add(48 * time.Hour)
	booking, err := stack.Bookings.Create(ctx, booker.ID, application.CreateBookingRequest{
		ItemID: item.ID,
		Start:  start,
		End:    end,
	})
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.StatusWaiting, booking.Status)

	// The owner sees the waiting booking.
	waiting, err := stack.Bookings.ListForOwner(ctx, owner.ID, bookingDomain.StateWaiting, 0, 10)
	require.NoError(t, err)
	require.Len(t, waiting, 1)
	assert.Equal(t, booking.ID, waiting[0].ID)

	approved, err := stack.Bookings.ChangeStatus(ctx, booking.ID, true, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.StatusApproved, approved.Status)

	// The booker sees it under FUTURE.
	future, err := stack.Bookings.ListForRenter(ctx, booker.ID, bookingDomain.StateFuture, 0, 10)
	require.NoError(t, err)
	require.Len(t, future, 1)
	assert.Equal(t, bookingDomain.StatusApproved, future[0].Status)
	assert.Equal(t, item.ID, future[0].Item.ID)

	// Both notices made it onto the topic.
	created := consumeOneEvent(t, infra.KafkaBrokers, bookingTopic, events.BookingCreated, 15*time.Second)
	var createdData events.BookingCreatedEvent
	require.NoError(t, created.ParseData(&createdData))
	assert.Equal(t, booking.ID, createdData.BookingID)
	assert.Equal(t, item.ID, createdData.ItemID)
	assert.Equal(t, booker.ID, createdData.BookerID)

	changed := consumeOneEvent(t, infra.KafkaBrokers, bookingTopic, events.BookingStatusChanged, 15*time.Second)
	var changedData events.BookingStatusChangedEvent
	require.NoError(t, changed.ParseData(&changedData))
	assert.Equal(t, booking.ID, changedData.BookingID)
	assert.Equal(t, "APPROVED", changedData.Status)
}
