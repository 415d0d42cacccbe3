package dto

import (
	"time"

	"volunteer-marketplace-be/internal/entity"

	"github.com/shopspring/decimal"
)

type FeaturePlanResponse struct {
	PlanType     string          `json:"plan_type"`
	DurationDays int             `json:"duration_days"`
	Price        decimal.Decimal `json:"price"`
}

type RequestFeatureRequest struct {
	ProjectId string          `json:"project_id" validate:"required"`
	PlanType  string          `json:"plan_type" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
}

type FeaturedProjectResponse struct {
	Id              string          `json:"id"`
	ProjectId       string          `json:"project_id"`
	RequesterId     string          `json:"requester_id"`
	PlanType        string          `json:"plan_type"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentError    string          `json:"payment_error,omitempty"`
	StartDate       *time.Time      `json:"start_date,omitempty"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	IsActive        bool            `json:"is_active"`
	Notified7Days   bool            `json:"notified_7_days"`
	Notified1Day    bool            `json:"notified_1_day"`
	NotifiedExpired bool            `json:"notified_expired"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	RefundStatus    string          `json:"refund_status"`
	RefundError     string          `json:"refund_error,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewFeaturePlanList(plans []entity.FeaturePlan) []FeaturePlanResponse {
	out := make([]FeaturePlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, FeaturePlanResponse{
			PlanType:     string(p.Type),
			DurationDays: p.DurationDays,
			Price:        p.Price,
		})
	}
	return out
}

// NewFeaturedProjectResponse reports is_active for the window at now, not
// the stored column, which only changes when the sweep reaches the record.
func NewFeaturedProjectResponse(f *entity.FeaturedProject, now time.Time) FeaturedProjectResponse {
	return FeaturedProjectResponse{
		Id:              f.PublicId,
		ProjectId:       f.ProjectPublicId,
		RequesterId:     f.RequesterPublicId,
		PlanType:        string(f.PlanType),
		Amount:          f.Amount,
		Currency:        f.Currency,
		Status:          string(f.Status),
		PaymentStatus:   string(f.PaymentStatus),
		PaymentError:    f.PaymentError,
		StartDate:       f.StartDate,
		EndDate:         f.EndDate,
		IsActive:        f.ActiveAt(now),
		Notified7Days:   f.Notified7Days,
		Notified1Day:    f.Notified1Day,
		NotifiedExpired: f.NotifiedExpired,
		RejectionReason: f.RejectionReason,
		RefundStatus:    string(f.RefundStatus),
		RefundError:     f.RefundError,
		CreatedAt:       f.CreatedAt,
	}
}

func NewFeaturedProjectList(items []*entity.FeaturedProject, now time.Time) []FeaturedProjectResponse {
	out := make([]FeaturedProjectResponse, 0, len(items))
	for _, f := range items {
		out = append(out, NewFeaturedProjectResponse(f, now))
	}
	return out
}
