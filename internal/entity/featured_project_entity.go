package entity

import (
	"fmt"
	"time"

	"volunteer-marketplace-be/internal/apperror"

	"github.com/shopspring/decimal"
)

type PlanType string

const (
	PlanOneMonth    PlanType = "1_month"
	PlanThreeMonths PlanType = "3_months"
	PlanSixMonths   PlanType = "6_months"
	PlanOneYear     PlanType = "1_year"
)

type FeaturePlan struct {
	Type         PlanType
	DurationDays int
	Price        decimal.Decimal
}

func (p FeaturePlan) Duration() time.Duration {
	return time.Duration(p.DurationDays) * 24 * time.Hour
}

var featurePlans = []FeaturePlan{
	{Type: PlanOneMonth, DurationDays: 30, Price: decimal.NewFromInt(50)},
	{Type: PlanThreeMonths, DurationDays: 90, Price: decimal.NewFromInt(150)},
	{Type: PlanSixMonths, DurationDays: 180, Price: decimal.NewFromInt(280)},
	{Type: PlanOneYear, DurationDays: 365, Price: decimal.NewFromInt(500)},
}

func FeaturePlans() []FeaturePlan {
	out := make([]FeaturePlan, len(featurePlans))
	copy(out, featurePlans)
	return out
}

func LookupPlan(planType PlanType) (FeaturePlan, error) {
	for _, p := range featurePlans {
		if p.Type == planType {
			return p, nil
		}
	}
	return FeaturePlan{}, apperror.Field("plan_type", fmt.Sprintf("unknown plan type %q", planType))
}

type FeaturedStatus string

const (
	FeaturedPending  FeaturedStatus = "pending"
	FeaturedApproved FeaturedStatus = "approved"
	FeaturedRejected FeaturedStatus = "rejected"
	FeaturedExpired  FeaturedStatus = "expired"
)

var featuredTransitions = transitions[FeaturedStatus]{
	FeaturedPending:  {FeaturedApproved, FeaturedRejected},
	FeaturedApproved: {FeaturedExpired, FeaturedRejected},
}

func ParseFeaturedStatus(raw string) (FeaturedStatus, error) {
	return parse(featuredTransitions, "status", raw)
}

// IsLive reports whether the campaign still blocks a new request for the project.
func (s FeaturedStatus) IsLive() bool {
	return s == FeaturedPending || s == FeaturedApproved
}

type FeaturedPaymentStatus string

const (
	PaymentUnpaid          FeaturedPaymentStatus = "unpaid"
	PaymentCheckoutStarted FeaturedPaymentStatus = "checkout_started"
	PaymentCaptured        FeaturedPaymentStatus = "captured"
	PaymentFailed          FeaturedPaymentStatus = "failed"
)

type RefundStatus string

const (
	RefundNone     RefundStatus = "none"
	RefundRefunded RefundStatus = "refunded"
	RefundFailed   RefundStatus = "failed"
)

// Threshold identifies one of the one-shot notices a campaign sends.
type Threshold string

const (
	ThresholdSevenDays Threshold = "7_days"
	ThresholdOneDay    Threshold = "1_day"
	ThresholdExpired   Threshold = "expired"
)

// thresholdOrder is the order thresholds are evaluated in for one record.
var thresholdOrder = []Threshold{ThresholdSevenDays, ThresholdOneDay, ThresholdExpired}

func (t Threshold) remaining() time.Duration {
	switch t {
	case ThresholdSevenDays:
		return 7 * 24 * time.Hour
	case ThresholdOneDay:
		return 24 * time.Hour
	}
	return 0
}

type ReminderState int

const (
	ReminderNotYetDue ReminderState = iota
	ReminderDueUnsent
	ReminderSent
)

func (s ReminderState) String() string {
	switch s {
	case ReminderDueUnsent:
		return "due_unsent"
	case ReminderSent:
		return "sent"
	}
	return "not_yet_due"
}

type FeaturedProject struct {
	Id                uint
	PublicId          string
	ProjectPublicId   string
	RequesterPublicId string
	PlanType          PlanType
	Amount            decimal.Decimal
	Currency          string
	Status            FeaturedStatus
	PaymentStatus     FeaturedPaymentStatus
	GatewayOrderId    *string
	GatewayCaptureId  *string
	CapturedAt        *time.Time
	PaymentError      string
	StartDate         *time.Time
	EndDate           *time.Time
	IsActive          bool
	Notified7Days     bool
	Notified1Day      bool
	NotifiedExpired   bool
	RejectionReason   string
	RefundStatus      RefundStatus
	RefundError       string
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (f *FeaturedProject) IsCaptured() bool {
	return f.PaymentStatus == PaymentCaptured
}

// ActiveAt is the source of truth for whether the campaign is showing.
func (f *FeaturedProject) ActiveAt(now time.Time) bool {
	if f.Status != FeaturedApproved || f.StartDate == nil || f.EndDate == nil {
		return false
	}
	return !now.Before(*f.StartDate) && now.Before(*f.EndDate)
}

// syncActive recomputes the persisted is_active column from status. The
// column marks campaigns the sweep still has to look at; it is true exactly
// while the campaign is approved.
func (f *FeaturedProject) syncActive() {
	f.IsActive = f.Status == FeaturedApproved
}

// CheckConsistency is asserted before every write.
func (f *FeaturedProject) CheckConsistency() error {
	if f.IsActive != (f.Status == FeaturedApproved) {
		return fmt.Errorf("featured project %s: is_active=%t inconsistent with status %s", f.PublicId, f.IsActive, f.Status)
	}
	if f.Status == FeaturedExpired && !f.NotifiedExpired {
		return fmt.Errorf("featured project %s: expired without expiry flag", f.PublicId)
	}
	return nil
}

func (f *FeaturedProject) StartCheckout(orderID string) error {
	if f.Status != FeaturedPending {
		return featuredTransitions.check("featured project", f.Status, FeaturedApproved)
	}
	if f.IsCaptured() {
		return apperror.AlreadyProcessed("featured project payment is already captured")
	}
	f.PaymentStatus = PaymentCheckoutStarted
	f.GatewayOrderId = &orderID
	f.PaymentError = ""
	return nil
}

// RecordCapture stores the gateway confirmation. The campaign stays pending
// until an admin approves it.
func (f *FeaturedProject) RecordCapture(orderID, captureID string, now time.Time) error {
	if f.Status != FeaturedPending {
		return apperror.AlreadyProcessed(fmt.Sprintf("featured project is already %s", f.Status))
	}
	if f.IsCaptured() {
		return apperror.ConcurrentModification("featured project payment")
	}
	if orderID == "" || captureID == "" {
		return apperror.Validation("capture is missing gateway identifiers", map[string]string{
			"order_id":   "required",
			"capture_id": "required",
		})
	}
	f.PaymentStatus = PaymentCaptured
	f.GatewayOrderId = &orderID
	f.GatewayCaptureId = &captureID
	f.CapturedAt = &now
	f.PaymentError = ""
	return nil
}

// RecordCaptureFailure keeps the campaign pending with no charge recorded.
func (f *FeaturedProject) RecordCaptureFailure(orderID, message string) error {
	if f.Status != FeaturedPending {
		return apperror.AlreadyProcessed(fmt.Sprintf("featured project is already %s", f.Status))
	}
	if f.IsCaptured() {
		return apperror.AlreadyProcessed("featured project payment is already captured")
	}
	f.PaymentStatus = PaymentFailed
	if orderID != "" {
		f.GatewayOrderId = &orderID
	}
	f.PaymentError = message
	return nil
}

func (f *FeaturedProject) Approve(now time.Time) error {
	if err := featuredTransitions.check("featured project", f.Status, FeaturedApproved); err != nil {
		return err
	}
	if !f.IsCaptured() {
		return apperror.Field("payment_status", "payment has not been captured")
	}
	plan, err := LookupPlan(f.PlanType)
	if err != nil {
		return err
	}
	end := now.Add(plan.Duration())
	f.Status = FeaturedApproved
	f.StartDate = &now
	f.EndDate = &end
	f.syncActive()
	return nil
}

// Reject reports whether the captured payment should be refunded: only
// campaigns that never went live get their money back.
func (f *FeaturedProject) Reject(reason string) (refundDue bool, err error) {
	if err := featuredTransitions.check("featured project", f.Status, FeaturedRejected); err != nil {
		return false, err
	}
	if reason == "" {
		return false, apperror.Field("reason", "rejection reason is required")
	}
	refundDue = f.Status == FeaturedPending && f.IsCaptured()
	f.Status = FeaturedRejected
	f.RejectionReason = reason
	f.syncActive()
	return refundDue, nil
}

func (f *FeaturedProject) flag(t Threshold) *bool {
	switch t {
	case ThresholdSevenDays:
		return &f.Notified7Days
	case ThresholdOneDay:
		return &f.Notified1Day
	}
	return &f.NotifiedExpired
}

func (f *FeaturedProject) Reminder(t Threshold, now time.Time) ReminderState {
	if *f.flag(t) {
		return ReminderSent
	}
	if f.Status != FeaturedApproved || f.EndDate == nil {
		return ReminderNotYetDue
	}
	if f.EndDate.Sub(now) <= t.remaining() {
		return ReminderDueUnsent
	}
	return ReminderNotYetDue
}

// ThresholdCrossing is a threshold that moved to sent during one sweep.
// Notify is false for reminders superseded by an expiry in the same pass.
type ThresholdCrossing struct {
	Threshold Threshold
	Notify    bool
}

// AdvanceThresholds moves every due threshold to sent, in order, and
// expires the campaign once its end date has passed. Flags only move from
// false to true.
func (f *FeaturedProject) AdvanceThresholds(now time.Time) []ThresholdCrossing {
	var crossed []ThresholdCrossing
	for _, t := range thresholdOrder {
		if f.Reminder(t, now) != ReminderDueUnsent {
			continue
		}
		*f.flag(t) = true
		crossed = append(crossed, ThresholdCrossing{Threshold: t, Notify: true})
	}
	if f.NotifiedExpired && f.Status == FeaturedApproved {
		f.Status = FeaturedExpired
		f.syncActive()
		for i := range crossed {
			if crossed[i].Threshold != ThresholdExpired {
				crossed[i].Notify = false
			}
		}
	}
	return crossed
}
