package mapper

import (
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/model"
)

type BookingMapper struct{}

func NewBookingMapper() *BookingMapper {
	return &BookingMapper{}
}

func (m *BookingMapper) ToEntity(b *model.VolunteerBooking) *entity.VolunteerBooking {
	if b == nil {
		return nil
	}
	return &entity.VolunteerBooking{
		Id:                b.ID,
		PublicId:          b.PublicID,
		VolunteerPublicId: b.VolunteerPublicID,
		ProjectPublicId:   b.ProjectPublicID,
		Status:            entity.BookingStatus(b.Status),
		Reason:            b.Reason,
		DecidedAt:         b.DecidedAt,
		CompletedAt:       b.CompletedAt,
		Version:           b.Version,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (m *BookingMapper) ToModel(b *entity.VolunteerBooking) *model.VolunteerBooking {
	if b == nil {
		return nil
	}
	return &model.VolunteerBooking{
		ID:                b.Id,
		PublicID:          b.PublicId,
		VolunteerPublicID: b.VolunteerPublicId,
		ProjectPublicID:   b.ProjectPublicId,
		Status:            string(b.Status),
		Reason:            b.Reason,
		DecidedAt:         b.DecidedAt,
		CompletedAt:       b.CompletedAt,
		Version:           b.Version,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
