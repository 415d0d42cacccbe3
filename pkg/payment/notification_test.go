package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(status, fraud string) Notification {
	n := Notification{
		TransactionStatus: status,
		TransactionID:     "txn-1",
		OrderID:           "FP-01HZX",
		FraudStatus:       fraud,
		StatusCode:        "200",
		GrossAmount:       "150000.00",
	}
	n.SignatureKey = Sign(n, StubServerKey)
	return n
}

func TestVerifyNotification_Outcomes(t *testing.T) {
	cases := []struct {
		status  string
		fraud   string
		outcome Outcome
	}{
		{"settlement", "", OutcomeCaptured},
		{"capture", "accept", OutcomeCaptured},
		{"capture", "challenge", OutcomeIgnored},
		{"capture", "deny", OutcomeFailed},
		{"deny", "", OutcomeFailed},
		{"cancel", "", OutcomeFailed},
		{"expire", "", OutcomeFailed},
		{"failure", "", OutcomeFailed},
		{"pending", "", OutcomeIgnored},
		{"refund", "", OutcomeIgnored},
	}

	g := NewStubGateway()
	for _, tc := range cases {
		t.Run(tc.status+"/"+tc.fraud, func(t *testing.T) {
			evt, err := g.VerifyNotification(signed(tc.status, tc.fraud))
			require.NoError(t, err)
			assert.Equal(t, tc.outcome, evt.Outcome)
			assert.Equal(t, "FP-01HZX", evt.OrderID)
			assert.Equal(t, "txn-1", evt.CaptureID)
			assert.True(t, decimal.NewFromInt(150000).Equal(evt.Amount))
		})
	}
}

func TestVerifyNotification_RejectsTamperedPayload(t *testing.T) {
	n := signed("settlement", "")
	n.GrossAmount = "1.00"

	_, err := NewStubGateway().VerifyNotification(n)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyNotification_RequiresServerKey(t *testing.T) {
	_, err := verify(signed("settlement", ""), "")
	assert.ErrorIs(t, err, ErrMissingServerKey)
}

func TestNewMidtransGateway_RequiresServerKey(t *testing.T) {
	_, err := NewMidtransGateway(MidtransConfig{})
	assert.ErrorIs(t, err, ErrMissingServerKey)
}
