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

func TestReferral_ApprovalCreditsBothSides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	referrer := f.user(t, entity.RoleVolunteer)
	referee := f.user(t, entity.RoleVolunteer)

	referral, err := f.referrals.CreateReferral(ctx, referee, CreateReferralInput{
		ReferrerPublicID: referrer.PublicId,
		RefereePublicID:  referee.PublicId,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReferralPending, referral.Status)

	resolved, err := f.referrals.ResolveReferral(ctx, f.admin, referral.PublicId, "approved")
	require.NoError(t, err)
	assert.Equal(t, entity.ReferralApproved, resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)

	referrerBalance, err := f.ledger.BalanceOf(ctx, referrer.PublicId)
	require.NoError(t, err)
	refereeBalance, err := f.ledger.BalanceOf(ctx, referee.PublicId)
	require.NoError(t, err)
	assert.Equal(t, int64(50), referrerBalance)
	assert.Equal(t, int64(20), refereeBalance)

	entries, _, err := f.ledger.ListTransactions(ctx, referrer.PublicId, 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "referral:"+referral.PublicId, entries[0].SourceRef)

	assert.Len(t, f.notifier.ofType(constant.NotifReferralApproved), 2)
}

func TestReferral_ResolveIsOneShot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	referrer := f.user(t, entity.RoleVolunteer)
	referee := f.user(t, entity.RoleVolunteer)

	referral, err := f.referrals.CreateReferral(ctx, f.admin, CreateReferralInput{
		ReferrerPublicID: referrer.PublicId,
		RefereePublicID:  referee.PublicId,
	})
	require.NoError(t, err)

	_, err = f.referrals.ResolveReferral(ctx, f.admin, referral.PublicId, "rejected")
	require.NoError(t, err)

	_, err = f.referrals.ResolveReferral(ctx, f.admin, referral.PublicId, "approved")
	assert.True(t, apperror.Is(err, apperror.KindAlreadyProcessed))

	balance, err := f.ledger.BalanceOf(ctx, referrer.PublicId)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestReferral_DuplicatePairRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	referrer := f.user(t, entity.RoleVolunteer)
	referee := f.user(t, entity.RoleVolunteer)
	in := CreateReferralInput{ReferrerPublicID: referrer.PublicId, RefereePublicID: referee.PublicId}

	_, err := f.referrals.CreateReferral(ctx, f.admin, in)
	require.NoError(t, err)

	_, err = f.referrals.CreateReferral(ctx, f.admin, in)
	assert.True(t, apperror.Is(err, apperror.KindDuplicateReferral))

	// the reverse direction is a different pair
	_, err = f.referrals.CreateReferral(ctx, f.admin, CreateReferralInput{
		ReferrerPublicID: referee.PublicId,
		RefereePublicID:  referrer.PublicId,
	})
	assert.NoError(t, err)
}

func TestReferral_ConcurrentDuplicatesLeaveOneRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	referrer := f.user(t, entity.RoleVolunteer)
	referee := f.user(t, entity.RoleVolunteer)
	in := CreateReferralInput{ReferrerPublicID: referrer.PublicId, RefereePublicID: referee.PublicId}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		created    int
		duplicates int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.referrals.CreateReferral(ctx, f.admin, in)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if apperror.Is(err, apperror.KindDuplicateReferral) {
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 4, duplicates)
}

func TestReferral_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.user(t, entity.RoleVolunteer)
	stranger := f.user(t, entity.RoleVolunteer)
	other := f.user(t, entity.RoleVolunteer)

	_, err := f.referrals.CreateReferral(ctx, user, CreateReferralInput{
		ReferrerPublicID: user.PublicId,
		RefereePublicID:  user.PublicId,
	})
	assert.True(t, apperror.Is(err, apperror.KindValidation), "self referral")

	negative := int64(-1)
	_, err = f.referrals.CreateReferral(ctx, f.admin, CreateReferralInput{
		ReferrerPublicID: user.PublicId,
		RefereePublicID:  other.PublicId,
		ReferrerPoints:   &negative,
	})
	assert.True(t, apperror.Is(err, apperror.KindValidation), "negative award")

	_, err = f.referrals.CreateReferral(ctx, stranger, CreateReferralInput{
		ReferrerPublicID: user.PublicId,
		RefereePublicID:  other.PublicId,
	})
	assert.True(t, apperror.Is(err, apperror.KindNotFound), "unrelated caller")

	_, err = f.referrals.CreateReferral(ctx, f.admin, CreateReferralInput{
		ReferrerPublicID: user.PublicId,
		RefereePublicID:  "missing",
	})
	assert.True(t, apperror.Is(err, apperror.KindNotFound), "unknown referee")
}
