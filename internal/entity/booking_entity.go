package entity

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

var bookingTransitions = transitions[BookingStatus]{
	BookingStatusPending:  {BookingStatusApproved, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusApproved: {BookingStatusCompleted, BookingStatusCancelled},
}

func ParseBookingStatus(raw string) (BookingStatus, error) {
	return parse(bookingTransitions, "status", raw)
}

func (s BookingStatus) IsTerminal() bool {
	return bookingTransitions.terminal(s)
}

// IsOpen reports whether the booking still occupies the volunteer's slot.
func (s BookingStatus) IsOpen() bool {
	return s == BookingStatusPending || s == BookingStatusApproved
}

type VolunteerBooking struct {
	Id                uint
	PublicId          string
	VolunteerPublicId string
	ProjectPublicId   string
	Status            BookingStatus
	Reason            string
	DecidedAt         *time.Time
	CompletedAt       *time.Time
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Transition moves the booking to next, recording the decision time.
func (b *VolunteerBooking) Transition(next BookingStatus, reason string, now time.Time) error {
	if err := bookingTransitions.check("booking", b.Status, next); err != nil {
		return err
	}
	b.Status = next
	if reason != "" {
		b.Reason = reason
	}
	switch next {
	case BookingStatusCompleted:
		b.CompletedAt = &now
	default:
		b.DecidedAt = &now
	}
	return nil
}
