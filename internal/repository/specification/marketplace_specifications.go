package specification

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DateRange keeps rows whose Field falls in [From, To). Either bound may be nil.
type DateRange struct {
	Field string
	From  *time.Time
	To    *time.Time
}

func (s DateRange) Apply(db *gorm.DB) *gorm.DB {
	if s.From != nil {
		db = db.Where(fmt.Sprintf("%s >= ?", s.Field), *s.From)
	}
	if s.To != nil {
		db = db.Where(fmt.Sprintf("%s < ?", s.Field), *s.To)
	}
	return db
}

type ByUserPublicID struct {
	UserPublicID string
}

func (s ByUserPublicID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_public_id = ?", s.UserPublicID)
}

// ReferralInvolving matches referrals where the user is either side.
type ReferralInvolving struct {
	UserPublicID string
}

func (s ReferralInvolving) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("referrer_public_id = ? OR referee_public_id = ?", s.UserPublicID, s.UserPublicID)
}

// DueForSweep selects campaigns the expiry sweep has to evaluate.
type DueForSweep struct{}

func (s DueForSweep) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ? AND is_active = ?", "approved", true)
}
