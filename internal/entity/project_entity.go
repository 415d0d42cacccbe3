package entity

import (
	"time"

	"volunteer-marketplace-be/internal/apperror"

	"github.com/shopspring/decimal"
)

type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "pending"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusSuspended ProjectStatus = "suspended"
	ProjectStatusRejected  ProjectStatus = "rejected"
)

type PricingType string

const (
	PricingPaid PricingType = "paid"
	PricingFree PricingType = "free"
)

type Project struct {
	Id                   uint
	PublicId             string
	OrganizationPublicId string
	Title                string
	Category             string
	Subcategory          *string
	Status               ProjectStatus
	PricingType          PricingType
	FeeAmount            decimal.Decimal
	Currency             string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (p *Project) OwnedBy(actor Actor) bool {
	return p.OrganizationPublicId == actor.PublicId
}

// Validate enforces that fee fields only carry meaning for paid projects.
func (p *Project) Validate() error {
	fields := map[string]string{}
	if p.Title == "" {
		fields["title"] = "title is required"
	}
	switch p.PricingType {
	case PricingFree:
		if !p.FeeAmount.IsZero() {
			fields["fee_amount"] = "free projects cannot carry a fee"
		}
	case PricingPaid:
		if !p.FeeAmount.IsPositive() {
			fields["fee_amount"] = "paid projects need a positive fee"
		}
		if p.Currency == "" {
			fields["currency"] = "paid projects need a currency"
		}
	default:
		fields["pricing_type"] = "pricing type must be paid or free"
	}
	if len(fields) > 0 {
		return apperror.Validation("invalid project", fields)
	}
	return nil
}
