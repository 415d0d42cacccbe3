package constant

// Notification type codes. Each is also the event type published on the bus
// and the code of a row in notification_types.
const (
	NotifFeatureRequested       = "FEATURE_REQUESTED"
	NotifFeaturePaymentCaptured = "FEATURE_PAYMENT_CAPTURED"
	NotifFeaturePaymentFailed   = "FEATURE_PAYMENT_FAILED"
	NotifFeatureApproved        = "FEATURE_APPROVED"
	NotifFeatureRejected        = "FEATURE_REJECTED"
	NotifFeatureRefundFailed    = "FEATURE_REFUND_FAILED"
	NotifFeatureExpiring7Days   = "FEATURE_EXPIRING_7_DAYS"
	NotifFeatureExpiring1Day    = "FEATURE_EXPIRING_1_DAY"
	NotifFeatureExpired         = "FEATURE_EXPIRED"

	NotifBookingCreated   = "BOOKING_CREATED"
	NotifBookingApproved  = "BOOKING_APPROVED"
	NotifBookingRejected  = "BOOKING_REJECTED"
	NotifBookingCancelled = "BOOKING_CANCELLED"
	NotifBookingCompleted = "BOOKING_COMPLETED"

	NotifSponsorshipRequested       = "SPONSORSHIP_REQUESTED"
	NotifSponsorshipRequestApproved = "SPONSORSHIP_REQUEST_APPROVED"
	NotifSponsorshipRequestRejected = "SPONSORSHIP_REQUEST_REJECTED"
	NotifSponsorshipReceived        = "SPONSORSHIP_RECEIVED"
	NotifSponsorshipFailed          = "SPONSORSHIP_FAILED"
	NotifSponsorshipRefunded        = "SPONSORSHIP_REFUNDED"

	NotifReferralApproved = "REFERRAL_APPROVED"
	NotifReferralRejected = "REFERRAL_REJECTED"
	NotifPointsAwarded    = "POINTS_AWARDED"

	NotifSystemBroadcast = "SYSTEM_BROADCAST"
)

// Entity types carried on notifications for deep links.
const (
	EntityFeaturedProject      = "featured_project"
	EntityBooking              = "booking"
	EntityVolunteerSponsorship = "volunteer_sponsorship"
	EntitySponsorship          = "sponsorship"
	EntityReferral             = "referral"
)
