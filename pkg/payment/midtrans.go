package payment

import (
	"context"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

type MidtransConfig struct {
	ServerKey  string
	Production bool
}

type MidtransGateway struct {
	serverKey string
	snap      snap.Client
	core      coreapi.Client
}

func NewMidtransGateway(cfg MidtransConfig) (*MidtransGateway, error) {
	if cfg.ServerKey == "" {
		return nil, ErrMissingServerKey
	}

	env := midtrans.Sandbox
	if cfg.Production {
		env = midtrans.Production
	}

	g := &MidtransGateway{serverKey: cfg.ServerKey}
	g.snap.New(cfg.ServerKey, env)
	g.core.New(cfg.ServerKey, env)
	return g, nil
}

func (g *MidtransGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	gross := req.Amount.Round(0).IntPart()

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: gross,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.ItemID,
				Price: gross,
				Qty:   1,
				Name:  req.ItemName,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}
	if req.FinishURL != "" {
		snapReq.Callbacks = &snap.Callbacks{Finish: req.FinishURL}
	}

	resp, midErr := g.snap.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &CheckoutSession{
		OrderID:     req.OrderID,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

func (g *MidtransGateway) Refund(ctx context.Context, req RefundRequest) (*RefundResult, error) {
	refundKey := req.OrderID + "-refund"
	resp, midErr := g.core.RefundTransaction(req.OrderID, &coreapi.RefundReq{
		RefundKey: refundKey,
		Amount:    req.Amount.Round(0).IntPart(),
		Reason:    req.Reason,
	})
	if midErr != nil {
		return nil, fmt.Errorf("midtrans refund error: %v", midErr.GetMessage())
	}

	return &RefundResult{
		RefundKey: refundKey,
		Status:    resp.TransactionStatus,
	}, nil
}

func (g *MidtransGateway) VerifyNotification(n Notification) (*Event, error) {
	return verify(n, g.serverKey)
}
