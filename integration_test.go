//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maximboltinov/ShareIt/internal/application"
	"github.com/maximboltinov/ShareIt/internal/common/domain"
	"github.com/maximboltinov/ShareIt/internal/common/jsontime"
	bookingDomain "github.com/maximboltinov/ShareIt/internal/domain/booking"
	"github.com/maximboltinov/ShareIt/internal/events"
)

// TestBookingLifecycle_PublishesApproval creates a booking through the real stack,
// approves it and expects the decision on booking.events.
func TestBookingLifecycle_PublishesApproval(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	ctx := context.Background()

	owner, err := stack.Users.CreateUser(ctx, application.CreateUserRequest{Name: "Owner", Email: "owner@mail.com"})
	require.NoError(t, err)
	booker, err := stack.Users.CreateUser(ctx, application.CreateUserRequest{Name: "Booker", Email: "booker@mail.com"})
	require.NoError(t, err)

	_, err = stack.Users.CreateUser(ctx, application.CreateUserRequest{Name: "Dup", Email: "owner@mail.com"})
	assert.True(t, domain.IsConflict(err), "duplicate email must conflict")

	yes := true
	item, err := stack.Items.CreateItem(ctx, owner.ID, application.CreateItemRequest{
		Name: "Drill", Description: "Cordless drill", Available: &yes,
	})
	require.NoError(t, err)

	start := jsontime.New(time.Now().Add(time.Hour).Truncate(time.Second))
	end := jsontime.New(time.Now().Add(2 * time.Hour).Truncate(time.Second))
	created, err := stack.Bookings.CreateBooking(ctx, booker.ID, application.CreateBookingRequest{
		ItemID: item.ID, Start: &start, End: &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "WAITING", created.Status)

	approved, err := stack.Bookings.ApproveBooking(ctx, owner.ID, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)

	_, err = stack.Bookings.ApproveBooking(ctx, owner.ID, created.ID, false)
	assert.True(t, domain.IsValidation(err))

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents, events.BookingApproved, 15*time.Second)
	var decided events.BookingDecidedEvent
	require.NoError(t, ce.ParseData(&decided))
	assert.Equal(t, created.ID, decided.BookingID)
	assert.Equal(t, booker.ID, decided.BookerID)
	assert.Equal(t, "APPROVED", decided.Status)

	details, err := stack.Items.GetItem(ctx, item.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, details.NextBooking)
	assert.Equal(t, created.ID, details.NextBooking.ID)
	assert.Nil(t, details.LastBooking)
}

// TestBookingQueries_StateFiltersAndComments checks the SQL translation of the state
// filters, owner joins and the finished-rental check behind comments.
func TestBookingQueries_StateFiltersAndComments(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	ctx := context.Background()

	owner, err := stack.Users.CreateUser(ctx, application.CreateUserRequest{Name: "Owner", Email: "o@mail.com"})
	require.NoError(t, err)
	booker, err := stack.Users.CreateUser(ctx, application.CreateUserRequest{Name: "Booker", Email: "b@mail.com"})
	require.NoError(t, err)
	yes := true
	item, err := stack.Items.CreateItem(ctx, owner.ID, application.CreateItemRequest{
		Name: "Tent", Description: "Four person tent", Available: &yes,
	})
	require.NoError(t, err)

	now := time.Now()
	h := time.Hour
	past := seedBooking(t, infra.DB, item.ID, booker.ID, now.Add(-3*h), now.Add(-2*h), "APPROVED")
	current := seedBooking(t, infra.DB, item.ID, booker.ID, now.Add(-h), now.Add(h), "APPROVED")
	future := seedBooking(t, infra.DB, item.ID, booker.ID, now.Add(2*h), now.Add(3*h), "WAITING")
	rejected := seedBooking(t, infra.DB, item.ID, booker.ID, now.Add(4*h), now.Add(5*h), "REJECTED")

	cases := map[bookingDomain.State][]int64{
		bookingDomain.StateAll:      {rejected, future, current, past},
		bookingDomain.StateCurrent:  {current},
		bookingDomain.StatePast:     {past},
		bookingDomain.StateFuture:   {rejected, future},
		bookingDomain.StateWaiting:  {future},
		bookingDomain.StateRejected: {rejected},
	}
	for state, want := range cases {
		byBooker, err := stack.Bookings.GetBookerBookings(ctx, booker.ID, state, 0, 10)
		require.NoError(t, err, state)
		byOwner, err := stack.Bookings.GetOwnerBookings(ctx, owner.ID, state, 0, 10)
		require.NoError(t, err, state)
		assert.Equal(t, want, bookingIDs(byBooker), state)
		assert.Equal(t, want, bookingIDs(byOwner), state)
	}

	details, err := stack.Items.GetItem(ctx, item.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, details.LastBooking)
	assert.Equal(t, current, details.LastBooking.ID)
	assert.Nil(t, details.NextBooking, "only approved bookings count")

	comment, err := stack.Items.AddComment(ctx, booker.ID, item.ID, application.CreateCommentRequest{Text: "Dry all night"})
	require.NoError(t, err)
	assert.Equal(t, "Booker", comment.AuthorName)

	_, err = stack.Items.AddComment(ctx, owner.ID, item.ID, application.CreateCommentRequest{Text: "Mine"})
	assert.True(t, domain.IsValidation(err))

	found, err := stack.Items.SearchItems(ctx, "TENT", 0, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, item.ID, found[0].ID)
}

func bookingIDs(dtos []application.BookingDTO) []int64 {
	ids := make([]int64, len(dtos))
	for i, d := range dtos {
		ids[i] = d.ID
	}
	return ids
}
