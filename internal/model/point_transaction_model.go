package model

import "time"

// PointTransaction rows are inserted, never updated.
type PointTransaction struct {
	ID                   uint      `gorm:"primaryKey;autoIncrement"`
	PublicID             string    `gorm:"type:varchar(26);uniqueIndex;not null"`
	UserPublicID         string    `gorm:"type:varchar(26);not null;index:idx_point_tx_user_created,priority:1"`
	Type                 string    `gorm:"type:varchar(10);not null"`
	Points               int64     `gorm:"not null;check:points >= 0"`
	Description          string    `gorm:"type:text"`
	BookingPublicID      *string   `gorm:"type:varchar(26);index"`
	CounterpartyPublicID *string   `gorm:"type:varchar(26)"`
	SourceRef            string    `gorm:"type:varchar(80);index"`
	CreatedAt            time.Time `gorm:"autoCreateTime;index:idx_point_tx_user_created,priority:2"`
}

func (PointTransaction) TableName() string {
	return "point_transactions"
}

type VolunteerPoints struct {
	ID                uint      `gorm:"primaryKey;autoIncrement"`
	PublicID          string    `gorm:"type:varchar(26);uniqueIndex;not null"`
	VolunteerPublicID string    `gorm:"type:varchar(26);not null;index"`
	BookingPublicID   string    `gorm:"type:varchar(26);uniqueIndex;not null"`
	Points            int64     `gorm:"not null"`
	Reason            string    `gorm:"type:text"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
}

func (VolunteerPoints) TableName() string {
	return "volunteer_points"
}
