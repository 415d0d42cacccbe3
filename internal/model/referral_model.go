package model

import (
	"time"

	"gorm.io/datatypes"
)

type Referral struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"`
	PublicID         string `gorm:"type:varchar(26);uniqueIndex;not null"`
	ReferrerPublicID string `gorm:"type:varchar(26);not null;uniqueIndex:idx_referrals_pair,priority:1"`
	RefereePublicID  string `gorm:"type:varchar(26);not null;uniqueIndex:idx_referrals_pair,priority:2;index"`
	ReferrerPoints   int64  `gorm:"not null"`
	RefereePoints    int64  `gorm:"not null"`
	Metadata         datatypes.JSON
	Status           string `gorm:"type:varchar(20);not null;index"`
	ResolvedAt       *time.Time
	Version          int       `gorm:"not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Referral) TableName() string {
	return "referrals"
}
