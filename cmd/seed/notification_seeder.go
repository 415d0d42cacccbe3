package main

import (
	"log"

	"gorm.io/gorm"

	"volunteer-marketplace-be/internal/constant"
	"volunteer-marketplace-be/internal/model"
)

// SeedNotificationTypes registers every notification code. Recipients come
// from the event payload, so all types are SELF; broadcasts and admin
// notices carry their target_role.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        constant.NotifFeatureRequested,
			DisplayName: "Feature Request Submitted",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
		},
		{
			Code:        constant.NotifFeaturePaymentCaptured,
			DisplayName: "Feature Payment Received",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
		},
		{
			Code:        constant.NotifFeaturePaymentFailed,
			DisplayName: "Feature Payment Failed",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
		},
		{
			Code:        constant.NotifFeatureApproved,
			DisplayName: "Project Featured",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        constant.NotifFeatureRejected,
			DisplayName: "Feature Request Rejected",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        constant.NotifFeatureRefundFailed,
			DisplayName: "Feature Refund Failed",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
		},
		{
			Code:        constant.NotifFeatureExpiring7Days,
			DisplayName: "Featuring Ends In 7 Days",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "LOW",
			IsActive:    true,
		},
		{
			Code:        constant.NotifFeatureExpiring1Day,
			DisplayName: "Featuring Ends Tomorrow",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        constant.NotifFeatureExpired,
			DisplayName: "Featuring Ended",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        constant.NotifBookingCreated,
			DisplayName: "New Booking",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        constant.NotifBookingApproved,
			DisplayName: "Booking Approved",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        constant.NotifBookingRejected,
			DisplayName: "Booking Rejected",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        constant.NotifBookingCancelled,
			DisplayName: "Booking Cancelled",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        constant.NotifBookingCompleted,
			DisplayName: "Booking Completed",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        constant.NotifSponsorshipRequested,
			DisplayName: "Sponsorship Requested",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        constant.NotifSponsorshipRequestApproved,
			DisplayName: "Sponsorship Request Approved",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        constant.NotifSponsorshipRequestRejected,
			DisplayName: "Sponsorship Request Rejected",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        constant.NotifSponsorshipReceived,
			DisplayName: "Sponsorship Received",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
		},
		{
			Code:        constant.NotifSponsorshipFailed,
			DisplayName: "Sponsorship Payment Failed",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        constant.NotifSponsorshipRefunded,
			DisplayName: "Sponsorship Refunded",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
		},
		{
			Code:        constant.NotifReferralApproved,
			DisplayName: "Referral Approved",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "LOW",
			IsActive:    true,
		},
		{
			Code:        constant.NotifReferralRejected,
			DisplayName: "Referral Rejected",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "LOW",
			IsActive:    true,
		},
		{
			Code:        constant.NotifPointsAwarded,
			DisplayName: "Points Awarded",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "LOW",
			IsActive:    true,
		},
		{
			Code:        constant.NotifSystemBroadcast,
			DisplayName: "Announcement",
			Template:    "{message}",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
		},
	}

	for _, t := range types {
		if err := db.Where("code = ?", t.Code).FirstOrCreate(&t).Error; err != nil {
			log.Printf("Error seeding notification type %s: %v", t.Code, err)
		}
	}
	log.Printf("Seeded %d notification types.", len(types))
}
