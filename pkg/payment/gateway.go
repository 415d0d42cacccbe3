package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSignature = errors.New("payment: invalid notification signature")
	ErrMissingServerKey = errors.New("payment: server key not configured")
)

type CheckoutRequest struct {
	OrderID       string
	Amount        decimal.Decimal
	Currency      string
	ItemID        string
	ItemName      string
	CustomerName  string
	CustomerEmail string
	FinishURL     string
}

type CheckoutSession struct {
	OrderID     string
	Token       string
	RedirectURL string
}

type RefundRequest struct {
	OrderID   string
	CaptureID string
	Amount    decimal.Decimal
	Reason    string
}

type RefundResult struct {
	RefundKey string
	Status    string
}

// Gateway is the external payment processor. Implementations never touch
// local state; callers own the bookkeeping around each call.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	Refund(ctx context.Context, req RefundRequest) (*RefundResult, error)
	VerifyNotification(n Notification) (*Event, error)
}
