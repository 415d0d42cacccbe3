package entity

import (
	"testing"
	"time"

	"volunteer-marketplace-be/internal/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingTransitions(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		wantErr apperror.Kind
	}{
		{BookingStatusPending, BookingStatusApproved, ""},
		{BookingStatusPending, BookingStatusRejected, ""},
		{BookingStatusPending, BookingStatusCancelled, ""},
		{BookingStatusApproved, BookingStatusCompleted, ""},
		{BookingStatusApproved, BookingStatusCancelled, ""},
		{BookingStatusPending, BookingStatusCompleted, apperror.KindValidation},
		{BookingStatusApproved, BookingStatusRejected, apperror.KindValidation},
		{BookingStatusCompleted, BookingStatusCancelled, apperror.KindAlreadyProcessed},
		{BookingStatusRejected, BookingStatusApproved, apperror.KindAlreadyProcessed},
		{BookingStatusCancelled, BookingStatusPending, apperror.KindAlreadyProcessed},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			b := &VolunteerBooking{Status: tt.from}
			err := b.Transition(tt.to, "", time.Now())
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.to, b.Status)
				return
			}
			assert.True(t, apperror.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, tt.from, b.Status)
		})
	}
}

func TestParseStatuses(t *testing.T) {
	s, err := ParseBookingStatus("completed")
	require.NoError(t, err)
	assert.True(t, s.IsTerminal())

	_, err = ParseBookingStatus("Completed")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = ParseFeaturedStatus("expired")
	assert.NoError(t, err)

	_, err = ParseReferralOutcome("pending")
	assert.Error(t, err)
}

func TestSponsorshipRefundOnlyFromCompleted(t *testing.T) {
	s := &Sponsorship{Status: SponsorshipPending, Amount: decimal.NewFromInt(100)}
	err := s.Refund("chargeback", time.Now())
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	require.NoError(t, s.Complete("SP-1", "cap", time.Now()))
	require.NoError(t, s.Refund("chargeback", time.Now()))
	assert.Equal(t, SponsorshipRefunded, s.Status)

	err = s.Fail("", "late failure")
	assert.True(t, apperror.Is(err, apperror.KindAlreadyProcessed))
}

func TestSponsorshipAllocationBound(t *testing.T) {
	s := &Sponsorship{
		Status: SponsorshipPending,
		Amount: decimal.NewFromInt(100),
		Allocation: map[CostCategory]decimal.Decimal{
			CostTravel: decimal.NewFromInt(80),
			CostMeals:  decimal.NewFromInt(30),
		},
	}
	err := s.Complete("O", "C", time.Now())
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "funding_allocation")
	assert.Equal(t, SponsorshipPending, s.Status)

	requested := map[CostCategory]decimal.Decimal{CostTravel: decimal.NewFromInt(500)}
	s.Allocation = map[CostCategory]decimal.Decimal{CostVisa: decimal.NewFromInt(10)}
	err = s.ValidateAllocation(requested)
	appErr, ok = apperror.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "funding_allocation.visa")
}

func TestVolunteerSponsorshipValidate(t *testing.T) {
	v := &VolunteerSponsorship{
		TotalAmount: decimal.NewFromInt(1000),
		Amounts: map[CostCategory]decimal.Decimal{
			CostTravel:        decimal.NewFromInt(600),
			CostAccommodation: decimal.NewFromInt(400),
		},
	}
	assert.NoError(t, v.Validate())

	v.Amounts[CostVisa] = decimal.NewFromFloat(0.01)
	assert.True(t, apperror.Is(v.Validate(), apperror.KindValidation))
}

func TestPointCost(t *testing.T) {
	s := &Sponsorship{Amount: decimal.NewFromInt(40)}
	cost, err := s.PointCost()
	require.NoError(t, err)
	assert.Equal(t, int64(40), cost)

	s.Amount = decimal.RequireFromString("40.5")
	_, err = s.PointCost()
	assert.Error(t, err)
}

func TestBalanceFold(t *testing.T) {
	entries := []PointTransaction{
		{Type: TransactionCredit, Points: 50},
		{Type: TransactionDebit, Points: 20},
		{Type: TransactionCredit, Points: 5},
	}
	assert.Equal(t, int64(35), Balance(entries))
	assert.Equal(t, int64(0), Balance(nil))
}

func TestProjectValidate(t *testing.T) {
	free := &Project{Title: "Beach cleanup", PricingType: PricingFree}
	assert.NoError(t, free.Validate())

	free.FeeAmount = decimal.NewFromInt(10)
	assert.Error(t, free.Validate())

	paid := &Project{Title: "Reef survey", PricingType: PricingPaid, FeeAmount: decimal.NewFromInt(200)}
	appErr, ok := apperror.As(paid.Validate())
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "currency")
}

func TestReferralValidate(t *testing.T) {
	r := &Referral{ReferrerPublicId: "A", RefereePublicId: "A"}
	appErr, ok := apperror.As(r.Validate())
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "referee")

	r = &Referral{ReferrerPublicId: "A", RefereePublicId: "B", Status: ReferralPending}
	require.NoError(t, r.Validate())
	require.NoError(t, r.Resolve(ReferralApproved, time.Now()))
	assert.True(t, apperror.Is(r.Resolve(ReferralRejected, time.Now()), apperror.KindAlreadyProcessed))
}
