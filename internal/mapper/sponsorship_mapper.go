package mapper

import (
	"encoding/json"

	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type SponsorshipMapper struct{}

func NewSponsorshipMapper() *SponsorshipMapper {
	return &SponsorshipMapper{}
}

func (m *SponsorshipMapper) RequestToEntity(v *model.VolunteerSponsorship) *entity.VolunteerSponsorship {
	if v == nil {
		return nil
	}
	amounts := map[entity.CostCategory]decimal.Decimal{}
	for category, amount := range map[entity.CostCategory]*decimal.Decimal{
		entity.CostTravel:         v.Travel,
		entity.CostAccommodation:  v.Accommodation,
		entity.CostMeals:          v.Meals,
		entity.CostLivingExpenses: v.LivingExpenses,
		entity.CostVisa:           v.Visa,
		entity.CostProjectFees:    v.ProjectFees,
	} {
		if amount != nil {
			amounts[category] = *amount
		}
	}
	return &entity.VolunteerSponsorship{
		Id:                v.ID,
		PublicId:          v.PublicID,
		BookingPublicId:   v.BookingPublicID,
		VolunteerPublicId: v.VolunteerPublicID,
		Amounts:           amounts,
		TotalAmount:       v.TotalAmount,
		Currency:          v.Currency,
		Description:       v.Description,
		Status:            entity.VolunteerSponsorshipStatus(v.Status),
		RejectionReason:   v.RejectionReason,
		DecidedAt:         v.DecidedAt,
		Version:           v.Version,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func (m *SponsorshipMapper) RequestToModel(v *entity.VolunteerSponsorship) *model.VolunteerSponsorship {
	if v == nil {
		return nil
	}
	amount := func(c entity.CostCategory) *decimal.Decimal {
		if a, ok := v.Amounts[c]; ok {
			return &a
		}
		return nil
	}
	return &model.VolunteerSponsorship{
		ID:                v.Id,
		PublicID:          v.PublicId,
		BookingPublicID:   v.BookingPublicId,
		VolunteerPublicID: v.VolunteerPublicId,
		Travel:            amount(entity.CostTravel),
		Accommodation:     amount(entity.CostAccommodation),
		Meals:             amount(entity.CostMeals),
		LivingExpenses:    amount(entity.CostLivingExpenses),
		Visa:              amount(entity.CostVisa),
		ProjectFees:       amount(entity.CostProjectFees),
		TotalAmount:       v.TotalAmount,
		Currency:          v.Currency,
		Description:       v.Description,
		Status:            string(v.Status),
		RejectionReason:   v.RejectionReason,
		DecidedAt:         v.DecidedAt,
		Version:           v.Version,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func (m *SponsorshipMapper) ToEntity(s *model.Sponsorship) (*entity.Sponsorship, error) {
	if s == nil {
		return nil, nil
	}
	var allocation map[entity.CostCategory]decimal.Decimal
	if len(s.FundingAllocation) > 0 {
		if err := json.Unmarshal(s.FundingAllocation, &allocation); err != nil {
			return nil, err
		}
	}
	return &entity.Sponsorship{
		Id:                           s.ID,
		PublicId:                     s.PublicID,
		SponsorPublicId:              s.SponsorPublicID,
		VolunteerSponsorshipPublicId: s.VolunteerSponsorshipPublicID,
		BookingPublicId:              s.BookingPublicID,
		Amount:                       s.Amount,
		Currency:                     s.Currency,
		FundingSource:                entity.FundingSource(s.FundingSource),
		Allocation:                   allocation,
		IsAnonymous:                  s.IsAnonymous,
		Status:                       entity.SponsorshipStatus(s.Status),
		GatewayOrderId:               s.GatewayOrderID,
		GatewayCaptureId:             s.GatewayCaptureID,
		FailureReason:                s.FailureReason,
		RefundReason:                 s.RefundReason,
		RefundError:                  s.RefundError,
		CompletedAt:                  s.CompletedAt,
		RefundedAt:                   s.RefundedAt,
		Version:                      s.Version,
		CreatedAt:                    s.CreatedAt,
		UpdatedAt:                    s.UpdatedAt,
	}, nil
}

func (m *SponsorshipMapper) ToModel(s *entity.Sponsorship) (*model.Sponsorship, error) {
	if s == nil {
		return nil, nil
	}
	var allocation datatypes.JSON
	if len(s.Allocation) > 0 {
		raw, err := json.Marshal(s.Allocation)
		if err != nil {
			return nil, err
		}
		allocation = raw
	}
	return &model.Sponsorship{
		ID:                           s.Id,
		PublicID:                     s.PublicId,
		SponsorPublicID:              s.SponsorPublicId,
		VolunteerSponsorshipPublicID: s.VolunteerSponsorshipPublicId,
		BookingPublicID:              s.BookingPublicId,
		Amount:                       s.Amount,
		Currency:                     s.Currency,
		FundingSource:                string(s.FundingSource),
		FundingAllocation:            allocation,
		IsAnonymous:                  s.IsAnonymous,
		Status:                       string(s.Status),
		GatewayOrderID:               s.GatewayOrderId,
		GatewayCaptureID:             s.GatewayCaptureId,
		FailureReason:                s.FailureReason,
		RefundReason:                 s.RefundReason,
		RefundError:                  s.RefundError,
		CompletedAt:                  s.CompletedAt,
		RefundedAt:                   s.RefundedAt,
		Version:                      s.Version,
		CreatedAt:                    s.CreatedAt,
		UpdatedAt:                    s.UpdatedAt,
	}, nil
}
