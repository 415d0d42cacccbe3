package dto

import (
	"time"

	"volunteer-marketplace-be/internal/entity"
)

type CreateBookingRequest struct {
	ProjectId string `json:"project_id" validate:"required"`
}

type BookingDecisionRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type BookingResponse struct {
	Id          string     `json:"id"`
	VolunteerId string     `json:"volunteer_id"`
	ProjectId   string     `json:"project_id"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewBookingResponse(b *entity.VolunteerBooking) BookingResponse {
	return BookingResponse{
		Id:          b.PublicId,
		VolunteerId: b.VolunteerPublicId,
		ProjectId:   b.ProjectPublicId,
		Status:      string(b.Status),
		Reason:      b.Reason,
		DecidedAt:   b.DecidedAt,
		CompletedAt: b.CompletedAt,
		CreatedAt:   b.CreatedAt,
	}
}

func NewBookingList(items []*entity.VolunteerBooking) []BookingResponse {
	out := make([]BookingResponse, 0, len(items))
	for _, b := range items {
		out = append(out, NewBookingResponse(b))
	}
	return out
}
