package mapper

import (
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/model"
)

type FeaturedProjectMapper struct{}

func NewFeaturedProjectMapper() *FeaturedProjectMapper {
	return &FeaturedProjectMapper{}
}

func (m *FeaturedProjectMapper) ToEntity(f *model.FeaturedProject) *entity.FeaturedProject {
	if f == nil {
		return nil
	}
	return &entity.FeaturedProject{
		Id:                f.ID,
		PublicId:          f.PublicID,
		ProjectPublicId:   f.ProjectPublicID,
		RequesterPublicId: f.RequesterPublicID,
		PlanType:          entity.PlanType(f.PlanType),
		Amount:            f.Amount,
		Currency:          f.Currency,
		Status:            entity.FeaturedStatus(f.Status),
		PaymentStatus:     entity.FeaturedPaymentStatus(f.PaymentStatus),
		GatewayOrderId:    f.GatewayOrderID,
		GatewayCaptureId:  f.GatewayCaptureID,
		CapturedAt:        f.CapturedAt,
		PaymentError:      f.PaymentError,
		StartDate:         f.StartDate,
		EndDate:           f.EndDate,
		IsActive:          f.IsActive,
		Notified7Days:     f.Notified7Days,
		Notified1Day:      f.Notified1Day,
		NotifiedExpired:   f.NotifiedExpired,
		RejectionReason:   f.RejectionReason,
		RefundStatus:      entity.RefundStatus(f.RefundStatus),
		RefundError:       f.RefundError,
		Version:           f.Version,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}

func (m *FeaturedProjectMapper) ToModel(f *entity.FeaturedProject) *model.FeaturedProject {
	if f == nil {
		return nil
	}
	return &model.FeaturedProject{
		ID:                f.Id,
		PublicID:          f.PublicId,
		ProjectPublicID:   f.ProjectPublicId,
		RequesterPublicID: f.RequesterPublicId,
		PlanType:          string(f.PlanType),
		Amount:            f.Amount,
		Currency:          f.Currency,
		Status:            string(f.Status),
		PaymentStatus:     string(f.PaymentStatus),
		GatewayOrderID:    f.GatewayOrderId,
		GatewayCaptureID:  f.GatewayCaptureId,
		CapturedAt:        f.CapturedAt,
		PaymentError:      f.PaymentError,
		StartDate:         f.StartDate,
		EndDate:           f.EndDate,
		IsActive:          f.IsActive,
		Notified7Days:     f.Notified7Days,
		Notified1Day:      f.Notified1Day,
		NotifiedExpired:   f.NotifiedExpired,
		RejectionReason:   f.RejectionReason,
		RefundStatus:      string(f.RefundStatus),
		RefundError:       f.RefundError,
		Version:           f.Version,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}
