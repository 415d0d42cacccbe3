package entity

import (
	"time"

	"volunteer-marketplace-be/internal/apperror"
)

type ReferralStatus string

const (
	ReferralPending  ReferralStatus = "pending"
	ReferralApproved ReferralStatus = "approved"
	ReferralRejected ReferralStatus = "rejected"
)

var referralTransitions = transitions[ReferralStatus]{
	ReferralPending: {ReferralApproved, ReferralRejected},
}

// ParseReferralOutcome accepts only the terminal outcomes.
func ParseReferralOutcome(raw string) (ReferralStatus, error) {
	switch ReferralStatus(raw) {
	case ReferralApproved, ReferralRejected:
		return ReferralStatus(raw), nil
	}
	return "", apperror.Field("outcome", "outcome must be approved or rejected")
}

type Referral struct {
	Id               uint
	PublicId         string
	ReferrerPublicId string
	RefereePublicId  string
	ReferrerPoints   int64
	RefereePoints    int64
	Metadata         map[string]interface{}
	Status           ReferralStatus
	ResolvedAt       *time.Time
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r *Referral) Validate() error {
	fields := map[string]string{}
	if r.ReferrerPublicId == "" {
		fields["referrer"] = "referrer is required"
	}
	if r.RefereePublicId == "" {
		fields["referee"] = "referee is required"
	}
	if r.ReferrerPublicId != "" && r.ReferrerPublicId == r.RefereePublicId {
		fields["referee"] = "a user cannot refer themselves"
	}
	if r.ReferrerPoints < 0 {
		fields["referrer_points"] = "points cannot be negative"
	}
	if r.RefereePoints < 0 {
		fields["referee_points"] = "points cannot be negative"
	}
	if len(fields) > 0 {
		return apperror.Validation("invalid referral", fields)
	}
	return nil
}

func (r *Referral) Resolve(outcome ReferralStatus, now time.Time) error {
	if err := referralTransitions.check("referral", r.Status, outcome); err != nil {
		return err
	}
	r.Status = outcome
	r.ResolvedAt = &now
	return nil
}
