package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type FeaturedProject struct {
	ID                uint            `gorm:"primaryKey;autoIncrement"`
	PublicID          string          `gorm:"type:varchar(26);uniqueIndex;not null"`
	ProjectPublicID   string          `gorm:"type:varchar(26);not null;index"`
	RequesterPublicID string          `gorm:"type:varchar(26);not null;index"`
	PlanType          string          `gorm:"type:varchar(20);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency          string          `gorm:"type:varchar(3);not null"`
	Status            string          `gorm:"type:varchar(20);not null;index:idx_featured_sweep,priority:1"`
	PaymentStatus     string          `gorm:"type:varchar(20);not null"`
	GatewayOrderID    *string         `gorm:"type:varchar(64);index"`
	GatewayCaptureID  *string         `gorm:"type:varchar(128)"`
	CapturedAt        *time.Time
	PaymentError      string `gorm:"type:text"`
	StartDate         *time.Time
	EndDate           *time.Time
	IsActive          bool      `gorm:"not null;default:false;index:idx_featured_sweep,priority:2"`
	Notified7Days     bool      `gorm:"column:notified_7_days;not null;default:false"`
	Notified1Day      bool      `gorm:"column:notified_1_day;not null;default:false"`
	NotifiedExpired   bool      `gorm:"not null;default:false"`
	RejectionReason   string    `gorm:"type:text"`
	RefundStatus      string    `gorm:"type:varchar(20);not null"`
	RefundError       string    `gorm:"type:text"`
	Version           int       `gorm:"not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (FeaturedProject) TableName() string {
	return "featured_projects"
}
