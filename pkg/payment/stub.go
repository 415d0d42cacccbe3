package payment

import (
	"context"
	"fmt"
	"sync"
)

const StubServerKey = "stub-server-key"

// StubGateway accepts every checkout and refund unless told to fail. It is
// the default in development and the double used by service tests.
type StubGateway struct {
	mu sync.Mutex

	CheckoutErr error
	RefundErr   error

	Sessions []CheckoutRequest
	Refunds  []RefundRequest
}

func NewStubGateway() *StubGateway {
	return &StubGateway{}
}

func (g *StubGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.CheckoutErr != nil {
		return nil, g.CheckoutErr
	}
	g.Sessions = append(g.Sessions, req)
	return &CheckoutSession{
		OrderID:     req.OrderID,
		Token:       "stub-token-" + req.OrderID,
		RedirectURL: fmt.Sprintf("https://payments.invalid/checkout/%s", req.OrderID),
	}, nil
}

func (g *StubGateway) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.RefundErr != nil {
		return nil, g.RefundErr
	}
	g.Refunds = append(g.Refunds, req)
	return &RefundResult{RefundKey: req.OrderID + "-refund", Status: "refund"}, nil
}

func (g *StubGateway) VerifyNotification(n Notification) (*Event, error) {
	return verify(n, StubServerKey)
}

func (g *StubGateway) RefundCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Refunds)
}
