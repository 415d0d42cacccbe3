package entity

import (
	"testing"
	"time"

	"volunteer-marketplace-be/internal/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedCampaign(t *testing.T, start time.Time) *FeaturedProject {
	t.Helper()
	f := &FeaturedProject{
		PublicId:      "01HZX0000000000000000000FP",
		PlanType:      PlanThreeMonths,
		Amount:        decimal.NewFromInt(150),
		Status:        FeaturedPending,
		PaymentStatus: PaymentUnpaid,
		RefundStatus:  RefundNone,
	}
	require.NoError(t, f.RecordCapture("O1", "C1", start))
	require.NoError(t, f.Approve(start))
	return f
}

func TestLookupPlan(t *testing.T) {
	tests := []struct {
		plan PlanType
		days int
		want string
	}{
		{PlanOneMonth, 30, "50"},
		{PlanThreeMonths, 90, "150"},
		{PlanSixMonths, 180, "280"},
		{PlanOneYear, 365, "500"},
	}
	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			plan, err := LookupPlan(tt.plan)
			require.NoError(t, err)
			assert.Equal(t, tt.days, plan.DurationDays)
			assert.Equal(t, tt.want, plan.Price.String())
		})
	}

	_, err := LookupPlan("2_weeks")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestApproveRequiresCapture(t *testing.T) {
	f := &FeaturedProject{PlanType: PlanOneMonth, Status: FeaturedPending, PaymentStatus: PaymentUnpaid}
	err := f.Approve(time.Now())
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, FeaturedPending, f.Status)
	assert.False(t, f.IsActive)
}

func TestApproveSetsWindow(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f := approvedCampaign(t, start)

	assert.Equal(t, FeaturedApproved, f.Status)
	assert.True(t, f.IsActive)
	assert.Equal(t, start.Add(90*24*time.Hour), *f.EndDate)
	assert.True(t, f.ActiveAt(start))
	assert.False(t, f.ActiveAt(*f.EndDate))
	assert.NoError(t, f.CheckConsistency())
}

func TestSecondCaptureIsConflict(t *testing.T) {
	f := &FeaturedProject{PlanType: PlanOneMonth, Status: FeaturedPending, PaymentStatus: PaymentUnpaid}
	require.NoError(t, f.RecordCapture("O1", "C1", time.Now()))
	err := f.RecordCapture("O1", "C2", time.Now())
	assert.True(t, apperror.Is(err, apperror.KindConcurrentModification))
	assert.Equal(t, "C1", *f.GatewayCaptureId)
}

func TestRejectRefundDecision(t *testing.T) {
	unpaid := &FeaturedProject{Status: FeaturedPending, PaymentStatus: PaymentUnpaid}
	refund, err := unpaid.Reject("spam")
	require.NoError(t, err)
	assert.False(t, refund)

	paid := &FeaturedProject{Status: FeaturedPending, PaymentStatus: PaymentUnpaid, PlanType: PlanOneMonth}
	require.NoError(t, paid.RecordCapture("O", "C", time.Now()))
	refund, err = paid.Reject("off-topic")
	require.NoError(t, err)
	assert.True(t, refund)
	assert.Equal(t, "off-topic", paid.RejectionReason)

	live := approvedCampaign(t, time.Now())
	refund, err = live.Reject("takedown")
	require.NoError(t, err)
	assert.False(t, refund)
	assert.False(t, live.IsActive)

	_, err = live.Reject("again")
	assert.True(t, apperror.Is(err, apperror.KindAlreadyProcessed))
}

func TestAdvanceThresholdsInOrder(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := approvedCampaign(t, start)
	end := *f.EndDate

	assert.Empty(t, f.AdvanceThresholds(end.Add(-8*24*time.Hour)))

	crossed := f.AdvanceThresholds(end.Add(-6 * 24 * time.Hour))
	require.Len(t, crossed, 1)
	assert.Equal(t, ThresholdSevenDays, crossed[0].Threshold)
	assert.True(t, crossed[0].Notify)
	assert.Equal(t, ReminderSent, f.Reminder(ThresholdSevenDays, end))

	assert.Empty(t, f.AdvanceThresholds(end.Add(-5*24*time.Hour)))

	crossed = f.AdvanceThresholds(end.Add(-12 * time.Hour))
	require.Len(t, crossed, 1)
	assert.Equal(t, ThresholdOneDay, crossed[0].Threshold)

	crossed = f.AdvanceThresholds(end)
	require.Len(t, crossed, 1)
	assert.Equal(t, ThresholdExpired, crossed[0].Threshold)
	assert.Equal(t, FeaturedExpired, f.Status)
	assert.False(t, f.IsActive)
	assert.NoError(t, f.CheckConsistency())

	assert.Empty(t, f.AdvanceThresholds(end.Add(time.Hour)))
	assert.True(t, f.NotifiedExpired)
}

func TestAdvanceThresholdsCatchesUpMissedReminders(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	late := approvedCampaign(t, start)
	crossed := late.AdvanceThresholds(late.EndDate.Add(-2 * time.Hour))
	require.Len(t, crossed, 2)
	assert.Equal(t, ThresholdSevenDays, crossed[0].Threshold)
	assert.Equal(t, ThresholdOneDay, crossed[1].Threshold)
	assert.True(t, late.Notified7Days)
	assert.True(t, late.Notified1Day)

	overdue := approvedCampaign(t, start)
	crossed = overdue.AdvanceThresholds(overdue.EndDate.Add(48 * time.Hour))
	require.Len(t, crossed, 3)
	assert.False(t, crossed[0].Notify)
	assert.False(t, crossed[1].Notify)
	assert.True(t, crossed[2].Notify)
	assert.True(t, overdue.Notified7Days)
	assert.True(t, overdue.Notified1Day)
	assert.Equal(t, FeaturedExpired, overdue.Status)
}

func TestReminderIgnoresUnapproved(t *testing.T) {
	f := &FeaturedProject{Status: FeaturedPending}
	assert.Equal(t, ReminderNotYetDue, f.Reminder(ThresholdExpired, time.Now()))
	assert.Empty(t, f.AdvanceThresholds(time.Now()))
}
