package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// VolunteerSponsorship keeps one nullable column per cost category.
type VolunteerSponsorship struct {
	ID                uint             `gorm:"primaryKey;autoIncrement"`
	PublicID          string           `gorm:"type:varchar(26);uniqueIndex;not null"`
	BookingPublicID   string           `gorm:"type:varchar(26);uniqueIndex;not null"`
	VolunteerPublicID string           `gorm:"type:varchar(26);not null;index"`
	Travel            *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Accommodation     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Meals             *decimal.Decimal `gorm:"type:decimal(12,2)"`
	LivingExpenses    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Visa              *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ProjectFees       *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalAmount       decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Currency          string           `gorm:"type:varchar(3);not null"`
	Description       string           `gorm:"type:text"`
	Status            string           `gorm:"type:varchar(20);not null;index"`
	RejectionReason   string           `gorm:"type:text"`
	DecidedAt         *time.Time
	Version           int       `gorm:"not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (VolunteerSponsorship) TableName() string {
	return "volunteer_sponsorships"
}

type Sponsorship struct {
	ID                           uint            `gorm:"primaryKey;autoIncrement"`
	PublicID                     string          `gorm:"type:varchar(26);uniqueIndex;not null"`
	SponsorPublicID              string          `gorm:"type:varchar(26);not null;index"`
	VolunteerSponsorshipPublicID string          `gorm:"type:varchar(26);not null;index"`
	BookingPublicID              string          `gorm:"type:varchar(26);not null;index"`
	Amount                       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency                     string          `gorm:"type:varchar(3);not null"`
	FundingSource                string          `gorm:"type:varchar(10);not null"`
	FundingAllocation            datatypes.JSON
	IsAnonymous                  bool    `gorm:"not null;default:false"`
	Status                       string  `gorm:"type:varchar(20);not null;index"`
	GatewayOrderID               *string `gorm:"type:varchar(64);index"`
	GatewayCaptureID             *string `gorm:"type:varchar(128)"`
	FailureReason                string  `gorm:"type:text"`
	RefundReason                 string  `gorm:"type:text"`
	RefundError                  string  `gorm:"type:text"`
	CompletedAt                  *time.Time
	RefundedAt                   *time.Time
	Version                      int       `gorm:"not null"`
	CreatedAt                    time.Time `gorm:"autoCreateTime"`
	UpdatedAt                    time.Time `gorm:"autoUpdateTime"`
}

func (Sponsorship) TableName() string {
	return "sponsorships"
}
