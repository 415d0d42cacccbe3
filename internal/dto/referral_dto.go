package dto

import (
	"time"

	"volunteer-marketplace-be/internal/entity"
)

type CreateReferralRequest struct {
	ReferrerId     string                 `json:"referrer_id" validate:"required"`
	RefereeId      string                 `json:"referee_id" validate:"required"`
	ReferrerPoints *int64                 `json:"referrer_points,omitempty" validate:"omitempty,gte=0"`
	RefereePoints  *int64                 `json:"referee_points,omitempty" validate:"omitempty,gte=0"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

type ResolveReferralRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=approved rejected"`
}

type ReferralResponse struct {
	Id             string                 `json:"id"`
	ReferrerId     string                 `json:"referrer_id"`
	RefereeId      string                 `json:"referee_id"`
	ReferrerPoints int64                  `json:"referrer_points"`
	RefereePoints  int64                  `json:"referee_points"`
	Status         string                 `json:"status"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	ResolvedAt     *time.Time             `json:"resolved_at,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

func NewReferralResponse(r *entity.Referral) ReferralResponse {
	return ReferralResponse{
		Id:             r.PublicId,
		ReferrerId:     r.ReferrerPublicId,
		RefereeId:      r.RefereePublicId,
		ReferrerPoints: r.ReferrerPoints,
		RefereePoints:  r.RefereePoints,
		Status:         string(r.Status),
		Metadata:       r.Metadata,
		ResolvedAt:     r.ResolvedAt,
		CreatedAt:      r.CreatedAt,
	}
}

func NewReferralList(items []*entity.Referral) []ReferralResponse {
	out := make([]ReferralResponse, 0, len(items))
	for _, r := range items {
		out = append(out, NewReferralResponse(r))
	}
	return out
}
