package dto

import (
	"time"

	"volunteer-marketplace-be/internal/entity"
)

type RecordTransactionRequest struct {
	UserId               string  `json:"user_id" validate:"required"`
	Type                 string  `json:"type" validate:"required,oneof=credit debit"`
	Points               int64   `json:"points" validate:"gte=0"`
	Description          string  `json:"description" validate:"max=500"`
	BookingId            *string `json:"booking_id,omitempty"`
	CounterpartyPublicId *string `json:"counterparty_id,omitempty"`
}

type SpendPointsRequest struct {
	Points         int64   `json:"points" validate:"gt=0"`
	Description    string  `json:"description" validate:"required,max=500"`
	CounterpartyId *string `json:"counterparty_id,omitempty"`
}

type PointTransactionResponse struct {
	Id             string    `json:"id"`
	UserId         string    `json:"user_id"`
	Type           string    `json:"type"`
	Points         int64     `json:"points"`
	SignedPoints   int64     `json:"signed_points"`
	Description    string    `json:"description"`
	BookingId      *string   `json:"booking_id,omitempty"`
	CounterpartyId *string   `json:"counterparty_id,omitempty"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
}

type BalanceResponse struct {
	UserId  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

type BookingPointsReconciliationResponse struct {
	BookingId       string `json:"booking_id"`
	CachedPoints    int64  `json:"cached_points"`
	LedgerCredits   int64  `json:"ledger_credits"`
	HasCachedRecord bool   `json:"has_cached_record"`
	Consistent      bool   `json:"consistent"`
}

func NewPointTransactionResponse(t *entity.PointTransaction) PointTransactionResponse {
	return PointTransactionResponse{
		Id:             t.PublicId,
		UserId:         t.UserPublicId,
		Type:           string(t.Type),
		Points:         t.Points,
		SignedPoints:   t.SignedPoints(),
		Description:    t.Description,
		BookingId:      t.BookingPublicId,
		CounterpartyId: t.CounterpartyPublicId,
		Source:         t.SourceRef,
		CreatedAt:      t.CreatedAt,
	}
}

func NewPointTransactionList(items []*entity.PointTransaction) []PointTransactionResponse {
	out := make([]PointTransactionResponse, 0, len(items))
	for _, t := range items {
		out = append(out, NewPointTransactionResponse(t))
	}
	return out
}
