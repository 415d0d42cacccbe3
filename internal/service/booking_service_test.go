package service

import (
	"context"
	"sync"
	"testing"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/constant"
	"volunteer-marketplace-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	volunteer := f.user(t, entity.RoleVolunteer)
	org := f.user(t, entity.RoleOrganization)
	p := f.project(t, org)

	booking, err := f.bookings.CreateBooking(ctx, volunteer, p.PublicId)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
	assert.Len(t, f.notifier.ofType(constant.NotifBookingCreated), 1)

	_, err = f.bookings.CreateBooking(ctx, volunteer, p.PublicId)
	assert.True(t, apperror.Is(err, apperror.KindValidation), "second open booking for the same project")

	_, err = f.bookings.ApproveBooking(ctx, volunteer, booking.PublicId)
	assert.True(t, apperror.Is(err, apperror.KindNotFound), "volunteers cannot approve")

	booking, err = f.bookings.ApproveBooking(ctx, org, booking.PublicId)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusApproved, booking.Status)
	assert.NotNil(t, booking.DecidedAt)

	booking, err = f.bookings.CompleteBooking(ctx, org, booking.PublicId)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCompleted, booking.Status)

	_, err = f.bookings.CancelBooking(ctx, volunteer, booking.PublicId, "changed plans")
	assert.True(t, apperror.Is(err, apperror.KindAlreadyProcessed), "completed is terminal")

	balance, err := f.ledger.BalanceOf(ctx, volunteer.PublicId)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	rec, err := f.ledger.ReconcileBookingPoints(ctx, booking.PublicId)
	require.NoError(t, err)
	assert.True(t, rec.HasCachedRecord)
	assert.True(t, rec.Consistent())
	assert.Equal(t, int64(100), rec.LedgerCredits)
}

func TestBooking_IllegalTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	volunteer := f.user(t, entity.RoleVolunteer)
	org := f.user(t, entity.RoleOrganization)
	p := f.project(t, org)

	booking, err := f.bookings.CreateBooking(ctx, volunteer, p.PublicId)
	require.NoError(t, err)

	_, err = f.bookings.CompleteBooking(ctx, org, booking.PublicId)
	assert.True(t, apperror.Is(err, apperror.KindValidation), "pending cannot complete")

	booking, err = f.bookings.CancelBooking(ctx, volunteer, booking.PublicId, "")
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, booking.Status)

	_, err = f.bookings.ApproveBooking(ctx, org, booking.PublicId)
	assert.True(t, apperror.Is(err, apperror.KindAlreadyProcessed))

	// a cancelled booking frees the slot
	_, err = f.bookings.CreateBooking(ctx, volunteer, p.PublicId)
	assert.NoError(t, err)
}

func TestBooking_OnlyVolunteersBook(t *testing.T) {
	f := newFixture(t)
	org := f.user(t, entity.RoleOrganization)
	p := f.project(t, org)

	_, err := f.bookings.CreateBooking(context.Background(), org, p.PublicId)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestBooking_ConcurrentCompletionAwardsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	volunteer := f.user(t, entity.RoleVolunteer)
	org := f.user(t, entity.RoleOrganization)
	booking := f.approvedBooking(t, volunteer, org)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.bookings.CompleteBooking(ctx, org, booking.PublicId)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				completed++
				return
			}
			assert.True(t, apperror.Is(err, apperror.KindAlreadyProcessed) || apperror.Is(err, apperror.KindConcurrentModification), err.Error())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, completed)
	balance, err := f.ledger.BalanceOf(ctx, volunteer.PublicId)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}
