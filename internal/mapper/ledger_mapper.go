package mapper

import (
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/model"
)

type LedgerMapper struct{}

func NewLedgerMapper() *LedgerMapper {
	return &LedgerMapper{}
}

func (m *LedgerMapper) ToEntity(t *model.PointTransaction) *entity.PointTransaction {
	if t == nil {
		return nil
	}
	return &entity.PointTransaction{
		Id:                   t.ID,
		PublicId:             t.PublicID,
		UserPublicId:         t.UserPublicID,
		Type:                 entity.TransactionType(t.Type),
		Points:               t.Points,
		Description:          t.Description,
		BookingPublicId:      t.BookingPublicID,
		CounterpartyPublicId: t.CounterpartyPublicID,
		SourceRef:            t.SourceRef,
		CreatedAt:            t.CreatedAt,
	}
}

func (m *LedgerMapper) ToModel(t *entity.PointTransaction) *model.PointTransaction {
	if t == nil {
		return nil
	}
	return &model.PointTransaction{
		ID:                   t.Id,
		PublicID:             t.PublicId,
		UserPublicID:         t.UserPublicId,
		Type:                 string(t.Type),
		Points:               t.Points,
		Description:          t.Description,
		BookingPublicID:      t.BookingPublicId,
		CounterpartyPublicID: t.CounterpartyPublicId,
		SourceRef:            t.SourceRef,
		CreatedAt:            t.CreatedAt,
	}
}

func (m *LedgerMapper) PointsToEntity(p *model.VolunteerPoints) *entity.VolunteerPoints {
	if p == nil {
		return nil
	}
	return &entity.VolunteerPoints{
		Id:                p.ID,
		PublicId:          p.PublicID,
		VolunteerPublicId: p.VolunteerPublicID,
		BookingPublicId:   p.BookingPublicID,
		Points:            p.Points,
		Reason:            p.Reason,
		CreatedAt:         p.CreatedAt,
	}
}

func (m *LedgerMapper) PointsToModel(p *entity.VolunteerPoints) *model.VolunteerPoints {
	if p == nil {
		return nil
	}
	return &model.VolunteerPoints{
		ID:                p.Id,
		PublicID:          p.PublicId,
		VolunteerPublicID: p.VolunteerPublicId,
		BookingPublicID:   p.BookingPublicId,
		Points:            p.Points,
		Reason:            p.Reason,
		CreatedAt:         p.CreatedAt,
	}
}
