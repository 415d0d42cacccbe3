package entity

import (
	"time"

	"volunteer-marketplace-be/internal/apperror"
)

type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

func ParseTransactionType(raw string) (TransactionType, error) {
	switch TransactionType(raw) {
	case TransactionCredit, TransactionDebit:
		return TransactionType(raw), nil
	}
	return "", apperror.Field("type", "type must be credit or debit")
}

// PointTransaction is an append-only ledger entry. Points is a magnitude;
// the sign comes from Type.
type PointTransaction struct {
	Id                   uint
	PublicId             string
	UserPublicId         string
	Type                 TransactionType
	Points               int64
	Description          string
	BookingPublicId      *string
	CounterpartyPublicId *string
	SourceRef            string
	CreatedAt            time.Time
}

func (t PointTransaction) SignedPoints() int64 {
	if t.Type == TransactionDebit {
		return -t.Points
	}
	return t.Points
}

// Balance folds entries into a balance.
func Balance(entries []PointTransaction) int64 {
	var total int64
	for _, e := range entries {
		total += e.SignedPoints()
	}
	return total
}

// VolunteerPoints caches the points a completed booking earned. It must
// reconcile with the ledger credits carrying the same booking.
type VolunteerPoints struct {
	Id                uint
	PublicId          string
	VolunteerPublicId string
	BookingPublicId   string
	Points            int64
	Reason            string
	CreatedAt         time.Time
}
