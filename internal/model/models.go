package model

// All lists every table owned by the service, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Project{},
		&VolunteerBooking{},
		&VolunteerSponsorship{},
		&Sponsorship{},
		&FeaturedProject{},
		&PointTransaction{},
		&VolunteerPoints{},
		&Referral{},
		&NotificationType{},
		&Notification{},
	}
}
