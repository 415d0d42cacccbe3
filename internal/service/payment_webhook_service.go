package service

import (
	"context"
	"errors"
	"strings"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/pkg/payment"

	"github.com/shopspring/decimal"
)

// Gateway order ids carry the kind of purchase as a prefix so one
// notification endpoint can serve both flows.
const (
	FeaturedOrderPrefix    = "FP-"
	SponsorshipOrderPrefix = "SP-"
)

var ErrUnknownOrder = errors.New("payment notification for unknown order")

type IPaymentWebhookService interface {
	Handle(ctx context.Context, n payment.Notification) error
}

type PaymentWebhookService struct {
	gateway      payment.Gateway
	featured     IFeaturedProjectService
	sponsorships ISponsorshipService
	logger       logger.ILogger
}

func NewPaymentWebhookService(
	gateway payment.Gateway,
	featured IFeaturedProjectService,
	sponsorships ISponsorshipService,
	log logger.ILogger,
) *PaymentWebhookService {
	return &PaymentWebhookService{
		gateway:      gateway,
		featured:     featured,
		sponsorships: sponsorships,
		logger:       log,
	}
}

// Handle verifies a gateway notification and applies it. A nil return
// tells the gateway to stop redelivering, so outcomes that are already
// recorded are acknowledged rather than reported.
func (s *PaymentWebhookService) Handle(ctx context.Context, n payment.Notification) error {
	evt, err := s.gateway.VerifyNotification(n)
	if err != nil {
		s.logger.Warn("WEBHOOK", "Rejected payment notification", map[string]interface{}{
			"order_id": n.OrderID,
			"error":    err,
		})
		return err
	}

	if evt.Outcome == payment.OutcomeIgnored {
		s.logger.Debug("WEBHOOK", "Ignoring intermediate payment status", map[string]interface{}{
			"order_id": evt.OrderID,
			"status":   evt.Status,
		})
		return nil
	}

	switch {
	case strings.HasPrefix(evt.OrderID, FeaturedOrderPrefix):
		err = s.applyFeatured(ctx, strings.TrimPrefix(evt.OrderID, FeaturedOrderPrefix), evt)
	case strings.HasPrefix(evt.OrderID, SponsorshipOrderPrefix):
		err = s.applySponsorship(ctx, strings.TrimPrefix(evt.OrderID, SponsorshipOrderPrefix), evt)
	default:
		err = ErrUnknownOrder
	}
	return s.settle(evt, err)
}

func (s *PaymentWebhookService) applyFeatured(ctx context.Context, featuredPublicID string, evt *payment.Event) error {
	if evt.Outcome != payment.OutcomeCaptured {
		return s.featured.RecordCaptureFailure(ctx, featuredPublicID, evt.OrderID, failureMessage(evt))
	}

	featured, err := s.featured.GetFeaturedProject(ctx, entity.SystemActor(), featuredPublicID)
	if err != nil {
		return err
	}
	if msg := s.checkGross(evt, featured.Amount); msg != "" {
		return s.featured.RecordCaptureFailure(ctx, featuredPublicID, evt.OrderID, msg)
	}
	_, err = s.featured.RecordCapture(ctx, featuredPublicID, evt.OrderID, evt.CaptureID)
	return err
}

func (s *PaymentWebhookService) applySponsorship(ctx context.Context, sponsorshipPublicID string, evt *payment.Event) error {
	outcome := PaymentOutcome{
		OrderID:   evt.OrderID,
		CaptureID: evt.CaptureID,
		Success:   evt.Outcome == payment.OutcomeCaptured,
		Message:   failureMessage(evt),
	}
	if outcome.Success {
		sponsorship, err := s.sponsorships.GetSponsorship(ctx, entity.SystemActor(), sponsorshipPublicID)
		if err != nil {
			return err
		}
		if sponsorship.FundingSource == entity.FundingCash {
			if msg := s.checkGross(evt, sponsorship.Amount); msg != "" {
				outcome.Success = false
				outcome.Message = msg
			}
		}
	}
	_, err := s.sponsorships.RecordSponsorshipPayment(ctx, sponsorshipPublicID, outcome)
	return err
}

// checkGross returns a failure message when the captured gross amount is not
// what the record charged. Midtrans charges whole units, so the rounded
// amount is accepted too.
func (s *PaymentWebhookService) checkGross(evt *payment.Event, charged decimal.Decimal) string {
	if evt.Amount.Equal(charged) || evt.Amount.Equal(charged.Round(0)) {
		return ""
	}
	s.logger.Warn("WEBHOOK", "Captured amount does not match record", map[string]interface{}{
		"order_id": evt.OrderID,
		"gross":    evt.Amount.String(),
		"expected": charged.StringFixed(2),
	})
	return "captured amount " + evt.Amount.StringFixed(2) + " does not match " + charged.StringFixed(2)
}

func (s *PaymentWebhookService) settle(evt *payment.Event, err error) error {
	details := map[string]interface{}{
		"order_id": evt.OrderID,
		"outcome":  evt.Outcome,
	}
	if err == nil {
		s.logger.Info("WEBHOOK", "Payment notification applied", details)
		return nil
	}

	details["error"] = err
	switch {
	case apperror.Is(err, apperror.KindGateway):
		// the failure itself is now on record
		s.logger.Info("WEBHOOK", "Payment failure recorded", details)
		return nil
	case apperror.Is(err, apperror.KindValidation):
		// stored as failed; redelivery cannot change the outcome
		s.logger.Warn("WEBHOOK", "Captured payment rejected", details)
		return nil
	case apperror.Is(err, apperror.KindAlreadyProcessed), apperror.Is(err, apperror.KindConcurrentModification):
		s.logger.Info("WEBHOOK", "Duplicate payment notification acknowledged", details)
		return nil
	case errors.Is(err, ErrUnknownOrder), apperror.Is(err, apperror.KindNotFound):
		s.logger.Warn("WEBHOOK", "Payment notification for unknown order", details)
		return nil
	}
	s.logger.Error("WEBHOOK", "Failed to apply payment notification", details)
	return err
}

func failureMessage(evt *payment.Event) string {
	if evt.Message != "" {
		return evt.Message
	}
	return "payment " + evt.Status
}
