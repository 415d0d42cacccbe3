package model

import "time"

type VolunteerBooking struct {
	ID                uint   `gorm:"primaryKey;autoIncrement"`
	PublicID          string `gorm:"type:varchar(26);uniqueIndex;not null"`
	VolunteerPublicID string `gorm:"type:varchar(26);not null;index:idx_bookings_volunteer_project,priority:1"`
	ProjectPublicID   string `gorm:"type:varchar(26);not null;index:idx_bookings_volunteer_project,priority:2"`
	Status            string `gorm:"type:varchar(20);not null;index"`
	Reason            string `gorm:"type:text"`
	DecidedAt         *time.Time
	CompletedAt       *time.Time
	Version           int       `gorm:"not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (VolunteerBooking) TableName() string {
	return "volunteer_bookings"
}
