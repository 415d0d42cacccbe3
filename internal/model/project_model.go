package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Project struct {
	ID                   uint            `gorm:"primaryKey;autoIncrement"`
	PublicID             string          `gorm:"type:varchar(26);uniqueIndex;not null"`
	OrganizationPublicID string          `gorm:"type:varchar(26);not null;index"`
	Title                string          `gorm:"type:varchar(255);not null"`
	Category             string          `gorm:"type:varchar(100);not null"`
	Subcategory          *string         `gorm:"type:varchar(100)"`
	Status               string          `gorm:"type:varchar(20);not null;index"`
	PricingType          string          `gorm:"type:varchar(10);not null"`
	FeeAmount            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency             string          `gorm:"type:varchar(3)"`
	CreatedAt            time.Time       `gorm:"autoCreateTime"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime"`
	DeletedAt            gorm.DeletedAt  `gorm:"index"`
}

func (Project) TableName() string {
	return "projects"
}
