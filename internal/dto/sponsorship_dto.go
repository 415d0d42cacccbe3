package dto

import (
	"time"

	"volunteer-marketplace-be/internal/entity"

	"github.com/shopspring/decimal"
)

// --- Volunteer-Side Request ---

type RequestSponsorshipRequest struct {
	BookingId   string                     `json:"booking_id" validate:"required"`
	Amounts     map[string]decimal.Decimal `json:"amounts"`
	TotalAmount decimal.Decimal            `json:"total_amount"`
	Currency    string                     `json:"currency" validate:"required,oneof=IDR USD"`
	Description string                     `json:"description" validate:"max=1000"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type VolunteerSponsorshipResponse struct {
	Id              string                     `json:"id"`
	BookingId       string                     `json:"booking_id"`
	VolunteerId     string                     `json:"volunteer_id"`
	Amounts         map[string]decimal.Decimal `json:"amounts"`
	TotalAmount     decimal.Decimal            `json:"total_amount"`
	Currency        string                     `json:"currency"`
	Description     string                     `json:"description,omitempty"`
	Status          string                     `json:"status"`
	RejectionReason string                     `json:"rejection_reason,omitempty"`
	DecidedAt       *time.Time                 `json:"decided_at,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
}

// --- Sponsor-Side Contribution ---

type CreateSponsorshipRequest struct {
	VolunteerSponsorshipId string                     `json:"volunteer_sponsorship_id" validate:"required"`
	Amount                 decimal.Decimal            `json:"amount"`
	Currency               string                     `json:"currency" validate:"omitempty,oneof=IDR USD"`
	FundingSource          string                     `json:"funding_source" validate:"omitempty,oneof=cash points"`
	FundingAllocation      map[string]decimal.Decimal `json:"funding_allocation,omitempty"`
	IsAnonymous            bool                       `json:"is_anonymous"`
}

type RefundSponsorshipRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type SponsorshipResponse struct {
	Id                     string                     `json:"id"`
	SponsorId              string                     `json:"sponsor_id,omitempty"`
	VolunteerSponsorshipId string                     `json:"volunteer_sponsorship_id"`
	BookingId              string                     `json:"booking_id"`
	Amount                 decimal.Decimal            `json:"amount"`
	Currency               string                     `json:"currency"`
	FundingSource          string                     `json:"funding_source"`
	FundingAllocation      map[string]decimal.Decimal `json:"funding_allocation,omitempty"`
	IsAnonymous            bool                       `json:"is_anonymous"`
	Status                 string                     `json:"status"`
	FailureReason          string                     `json:"failure_reason,omitempty"`
	RefundReason           string                     `json:"refund_reason,omitempty"`
	RefundError            string                     `json:"refund_error,omitempty"`
	CompletedAt            *time.Time                 `json:"completed_at,omitempty"`
	RefundedAt             *time.Time                 `json:"refunded_at,omitempty"`
	CreatedAt              time.Time                  `json:"created_at"`
}

type FundingSummaryResponse struct {
	VolunteerSponsorshipId string          `json:"volunteer_sponsorship_id"`
	Currency               string          `json:"currency"`
	Requested              decimal.Decimal `json:"requested"`
	Raised                 decimal.Decimal `json:"raised"`
	Remaining              decimal.Decimal `json:"remaining"`
	Contributions          int             `json:"contributions"`
}

type CheckoutResponse struct {
	OrderId     string `json:"order_id"`
	Token       string `json:"token"`
	RedirectUrl string `json:"redirect_url"`
}

func ToCostMap(in map[string]decimal.Decimal) map[entity.CostCategory]decimal.Decimal {
	if in == nil {
		return nil
	}
	out := make(map[entity.CostCategory]decimal.Decimal, len(in))
	for k, v := range in {
		out[entity.CostCategory(k)] = v
	}
	return out
}

func fromCostMap(in map[entity.CostCategory]decimal.Decimal) map[string]decimal.Decimal {
	if in == nil {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}

func NewVolunteerSponsorshipResponse(v *entity.VolunteerSponsorship) VolunteerSponsorshipResponse {
	return VolunteerSponsorshipResponse{
		Id:              v.PublicId,
		BookingId:       v.BookingPublicId,
		VolunteerId:     v.VolunteerPublicId,
		Amounts:         fromCostMap(v.Amounts),
		TotalAmount:     v.TotalAmount,
		Currency:        v.Currency,
		Description:     v.Description,
		Status:          string(v.Status),
		RejectionReason: v.RejectionReason,
		DecidedAt:       v.DecidedAt,
		CreatedAt:       v.CreatedAt,
	}
}

// NewSponsorshipResponse hides the sponsor of anonymous contributions
// unless the viewer is the sponsor or an admin.
func NewSponsorshipResponse(s *entity.Sponsorship, viewer entity.Actor) SponsorshipResponse {
	resp := SponsorshipResponse{
		Id:                     s.PublicId,
		SponsorId:              s.SponsorPublicId,
		VolunteerSponsorshipId: s.VolunteerSponsorshipPublicId,
		BookingId:              s.BookingPublicId,
		Amount:                 s.Amount,
		Currency:               s.Currency,
		FundingSource:          string(s.FundingSource),
		FundingAllocation:      fromCostMap(s.Allocation),
		IsAnonymous:            s.IsAnonymous,
		Status:                 string(s.Status),
		FailureReason:          s.FailureReason,
		RefundReason:           s.RefundReason,
		RefundError:            s.RefundError,
		CompletedAt:            s.CompletedAt,
		RefundedAt:             s.RefundedAt,
		CreatedAt:              s.CreatedAt,
	}
	if s.IsAnonymous && !viewer.IsAdmin() && viewer.PublicId != s.SponsorPublicId {
		resp.SponsorId = ""
	}
	return resp
}
