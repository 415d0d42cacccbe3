package payment

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"
)

// Notification is the asynchronous status callback posted by the gateway.
type Notification struct {
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	OrderID           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	SignatureKey      string `json:"signature_key"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	StatusMessage     string `json:"status_message"`
}

type Outcome string

const (
	OutcomeIgnored  Outcome = "ignored"
	OutcomeCaptured Outcome = "captured"
	OutcomeFailed   Outcome = "failed"
)

// Event is a verified notification reduced to what the bookkeeping needs.
type Event struct {
	OrderID   string
	CaptureID string
	Amount    decimal.Decimal
	Outcome   Outcome
	Status    string
	Message   string
}

// Sign computes SHA512(order_id + status_code + gross_amount + server_key).
func Sign(n Notification, serverKey string) string {
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func verify(n Notification, serverKey string) (*Event, error) {
	if serverKey == "" {
		return nil, ErrMissingServerKey
	}
	expected := Sign(n, serverKey)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(n.SignatureKey)) != 1 {
		return nil, ErrInvalidSignature
	}
	if n.OrderID == "" {
		return nil, fmt.Errorf("payment: notification without order_id")
	}

	amount := decimal.Zero
	if n.GrossAmount != "" {
		parsed, err := decimal.NewFromString(n.GrossAmount)
		if err != nil {
			return nil, fmt.Errorf("payment: bad gross_amount %q: %w", n.GrossAmount, err)
		}
		amount = parsed
	}

	return &Event{
		OrderID:   n.OrderID,
		CaptureID: n.TransactionID,
		Amount:    amount,
		Outcome:   classify(n.TransactionStatus, n.FraudStatus),
		Status:    n.TransactionStatus,
		Message:   n.StatusMessage,
	}, nil
}

func classify(status, fraud string) Outcome {
	switch status {
	case "settlement":
		return OutcomeCaptured
	case "capture":
		// Card captures under fraud review settle later.
		if fraud == "" || fraud == "accept" {
			return OutcomeCaptured
		}
		if fraud == "deny" {
			return OutcomeFailed
		}
		return OutcomeIgnored
	case "deny", "cancel", "expire", "failure":
		return OutcomeFailed
	default:
		return OutcomeIgnored
	}
}
