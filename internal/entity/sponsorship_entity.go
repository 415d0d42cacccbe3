package entity

import (
	"fmt"
	"time"

	"volunteer-marketplace-be/internal/apperror"

	"github.com/shopspring/decimal"
)

type CostCategory string

const (
	CostTravel         CostCategory = "travel"
	CostAccommodation  CostCategory = "accommodation"
	CostMeals          CostCategory = "meals"
	CostLivingExpenses CostCategory = "living_expenses"
	CostVisa           CostCategory = "visa"
	CostProjectFees    CostCategory = "project_fees"
)

var CostCategories = []CostCategory{
	CostTravel, CostAccommodation, CostMeals, CostLivingExpenses, CostVisa, CostProjectFees,
}

func (c CostCategory) Valid() bool {
	for _, known := range CostCategories {
		if c == known {
			return true
		}
	}
	return false
}

type VolunteerSponsorshipStatus string

const (
	VolunteerSponsorshipPending  VolunteerSponsorshipStatus = "pending"
	VolunteerSponsorshipApproved VolunteerSponsorshipStatus = "approved"
	VolunteerSponsorshipRejected VolunteerSponsorshipStatus = "rejected"
)

var volunteerSponsorshipTransitions = transitions[VolunteerSponsorshipStatus]{
	VolunteerSponsorshipPending: {VolunteerSponsorshipApproved, VolunteerSponsorshipRejected},
}

// VolunteerSponsorship is a volunteer's funding request for one booking.
type VolunteerSponsorship struct {
	Id                uint
	PublicId          string
	BookingPublicId   string
	VolunteerPublicId string
	Amounts           map[CostCategory]decimal.Decimal
	TotalAmount       decimal.Decimal
	Currency          string
	Description       string
	Status            VolunteerSponsorshipStatus
	RejectionReason   string
	DecidedAt         *time.Time
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate checks the populated categories do not exceed the total.
func (v *VolunteerSponsorship) Validate() error {
	fields := map[string]string{}
	if !v.TotalAmount.IsPositive() {
		fields["total_amount"] = "total amount must be positive"
	}
	sum := decimal.Zero
	for category, amount := range v.Amounts {
		if !category.Valid() {
			fields[string(category)] = "unknown cost category"
			continue
		}
		if amount.IsNegative() {
			fields[string(category)] = "amount cannot be negative"
			continue
		}
		sum = sum.Add(amount)
	}
	if sum.GreaterThan(v.TotalAmount) {
		fields["total_amount"] = fmt.Sprintf("category amounts add up to %s which exceeds total %s", sum.StringFixed(2), v.TotalAmount.StringFixed(2))
	}
	if len(fields) > 0 {
		return apperror.Validation("invalid sponsorship request", fields)
	}
	return nil
}

func (v *VolunteerSponsorship) Transition(next VolunteerSponsorshipStatus, reason string, now time.Time) error {
	if err := volunteerSponsorshipTransitions.check("sponsorship request", v.Status, next); err != nil {
		return err
	}
	v.Status = next
	v.RejectionReason = reason
	v.DecidedAt = &now
	return nil
}

// AcceptsContributions reports whether sponsors may fund the request.
func (v *VolunteerSponsorship) AcceptsContributions() bool {
	return v.Status == VolunteerSponsorshipApproved
}

type SponsorshipStatus string

const (
	SponsorshipPending   SponsorshipStatus = "pending"
	SponsorshipCompleted SponsorshipStatus = "completed"
	SponsorshipFailed    SponsorshipStatus = "failed"
	SponsorshipRefunded  SponsorshipStatus = "refunded"
)

// refunded is only reachable through completed.
var sponsorshipTransitions = transitions[SponsorshipStatus]{
	SponsorshipPending:   {SponsorshipCompleted, SponsorshipFailed},
	SponsorshipCompleted: {SponsorshipRefunded},
}

func ParseSponsorshipStatus(raw string) (SponsorshipStatus, error) {
	return parse(sponsorshipTransitions, "status", raw)
}

type FundingSource string

const (
	FundingCash   FundingSource = "cash"
	FundingPoints FundingSource = "points"
)

type Sponsorship struct {
	Id                           uint
	PublicId                     string
	SponsorPublicId              string
	VolunteerSponsorshipPublicId string
	BookingPublicId              string
	Amount                       decimal.Decimal
	Currency                     string
	FundingSource                FundingSource
	Allocation                   map[CostCategory]decimal.Decimal
	IsAnonymous                  bool
	Status                       SponsorshipStatus
	GatewayOrderId               *string
	GatewayCaptureId             *string
	FailureReason                string
	RefundReason                 string
	RefundError                  string
	CompletedAt                  *time.Time
	RefundedAt                   *time.Time
	Version                      int
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
}

// ValidateAllocation checks the allocation against the contribution amount
// and, when requested is non-nil, against the categories the volunteer asked for.
func (s *Sponsorship) ValidateAllocation(requested map[CostCategory]decimal.Decimal) error {
	fields := map[string]string{}
	sum := decimal.Zero
	for category, amount := range s.Allocation {
		key := "funding_allocation." + string(category)
		if !category.Valid() {
			fields[key] = "unknown cost category"
			continue
		}
		if amount.IsNegative() {
			fields[key] = "allocation cannot be negative"
			continue
		}
		if requested != nil {
			if _, ok := requested[category]; !ok {
				fields[key] = "category was not part of the sponsorship request"
				continue
			}
		}
		sum = sum.Add(amount)
	}
	if sum.GreaterThan(s.Amount) {
		fields["funding_allocation"] = fmt.Sprintf("allocation %s exceeds amount %s", sum.StringFixed(2), s.Amount.StringFixed(2))
	}
	if len(fields) > 0 {
		return apperror.Validation("invalid funding allocation", fields)
	}
	return nil
}

// Complete marks a captured contribution as completed. The allocation is
// validated first so an over-allocated record never reaches completed.
func (s *Sponsorship) Complete(orderID, captureID string, now time.Time) error {
	if s.CompletedAt != nil {
		return apperror.AlreadyProcessed(fmt.Sprintf("sponsorship is already %s", s.Status))
	}
	if err := sponsorshipTransitions.check("sponsorship", s.Status, SponsorshipCompleted); err != nil {
		return err
	}
	if err := s.ValidateAllocation(nil); err != nil {
		return err
	}
	s.Status = SponsorshipCompleted
	if orderID != "" {
		s.GatewayOrderId = &orderID
	}
	if captureID != "" {
		s.GatewayCaptureId = &captureID
	}
	s.CompletedAt = &now
	return nil
}

func (s *Sponsorship) Fail(orderID, message string) error {
	if err := sponsorshipTransitions.check("sponsorship", s.Status, SponsorshipFailed); err != nil {
		return err
	}
	s.Status = SponsorshipFailed
	if orderID != "" {
		s.GatewayOrderId = &orderID
	}
	s.FailureReason = message
	return nil
}

func (s *Sponsorship) Refund(reason string, now time.Time) error {
	if err := sponsorshipTransitions.check("sponsorship", s.Status, SponsorshipRefunded); err != nil {
		return err
	}
	s.Status = SponsorshipRefunded
	s.RefundReason = reason
	s.RefundError = ""
	s.RefundedAt = &now
	return nil
}

// PointCost is the number of points a point-funded contribution spends.
func (s *Sponsorship) PointCost() (int64, error) {
	if !s.Amount.Equal(s.Amount.Truncate(0)) {
		return 0, apperror.Field("amount", "point-funded sponsorships must be a whole number of points")
	}
	return s.Amount.IntPart(), nil
}
