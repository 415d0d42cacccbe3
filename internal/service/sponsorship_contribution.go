package service

import (
	"context"
	"fmt"
	"strings"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/constant"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/repository/specification"
	"volunteer-marketplace-be/pkg/payment"
	"volunteer-marketplace-be/pkg/publicid"
)

func sponsorshipLockKey(publicID string) string {
	return "sponsorship:" + publicID
}

func (s *SponsorshipService) CreateSponsorship(ctx context.Context, actor entity.Actor, in CreateSponsorshipInput) (*entity.Sponsorship, error) {
	if !in.Amount.IsPositive() {
		return nil, apperror.InvalidAmount("sponsorship amount must be positive")
	}

	var source entity.FundingSource
	switch entity.FundingSource(strings.ToLower(in.FundingSource)) {
	case entity.FundingCash, "":
		source = entity.FundingCash
	case entity.FundingPoints:
		source = entity.FundingPoints
	default:
		return nil, apperror.Field("funding_source", "funding source must be cash or points")
	}

	sponsorship := &entity.Sponsorship{
		SponsorPublicId:              actor.PublicId,
		VolunteerSponsorshipPublicId: in.VolunteerSponsorshipPublicID,
		Amount:                       in.Amount,
		Currency:                     in.Currency,
		FundingSource:                source,
		Allocation:                   in.Allocation,
		IsAnonymous:                  in.IsAnonymous,
		Status:                       entity.SponsorshipPending,
	}

	var pointCost int64
	if source == entity.FundingPoints {
		cost, err := sponsorship.PointCost()
		if err != nil {
			return nil, err
		}
		pointCost = cost

		// Taken before the transaction so the balance check and the debit
		// are not interleaved with another spend by the same sponsor.
		release, err := s.locker.Acquire(ctx, pointsLockKey(actor.PublicId))
		if err != nil {
			return nil, fmt.Errorf("failed to lock points for %s: %w", actor.PublicId, err)
		}
		defer release()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	request, err := uow.VolunteerSponsorshipRepository().FindOne(ctx, specification.ByPublicID{PublicID: in.VolunteerSponsorshipPublicID})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NotFound("sponsorship request")
	}
	if !request.AcceptsContributions() {
		return nil, apperror.Field("volunteer_sponsorship", fmt.Sprintf("sponsorship request is %s and not accepting contributions", request.Status))
	}
	if sponsorship.Currency == "" {
		sponsorship.Currency = request.Currency
	}
	if sponsorship.Currency != request.Currency {
		return nil, apperror.Field("currency", fmt.Sprintf("contributions to this request must be in %s", request.Currency))
	}
	if err := sponsorship.ValidateAllocation(request.Amounts); err != nil {
		return nil, err
	}

	sponsorship.PublicId = publicid.New()
	sponsorship.BookingPublicId = request.BookingPublicId

	if source == entity.FundingPoints {
		if err := sponsorship.Complete("", "", s.now()); err != nil {
			return nil, err
		}
	}
	if err := uow.SponsorshipRepository().Create(ctx, sponsorship); err != nil {
		return nil, fmt.Errorf("failed to create sponsorship: %w", err)
	}

	if source == entity.FundingPoints {
		if err := s.ledger.appendEntry(ctx, uow, &entity.PointTransaction{
			UserPublicId:         actor.PublicId,
			Type:                 entity.TransactionDebit,
			Points:               pointCost,
			Description:          "Points spent on a volunteer sponsorship",
			BookingPublicId:      strPtr(request.BookingPublicId),
			CounterpartyPublicId: strPtr(request.VolunteerPublicId),
			SourceRef:            "sponsorship:" + sponsorship.PublicId,
		}); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	if source == entity.FundingPoints {
		s.ledger.invalidate(actor.PublicId)
	}

	s.logger.Info("SPONSORSHIP", "Sponsorship created", map[string]interface{}{
		"sponsorship_id": sponsorship.PublicId,
		"request_id":     request.PublicId,
		"source":         source,
		"status":         sponsorship.Status,
	})
	if sponsorship.Status == entity.SponsorshipCompleted {
		s.notifyReceived(ctx, sponsorship, request.VolunteerPublicId)
	}
	return sponsorship, nil
}

func (s *SponsorshipService) GetSponsorship(ctx context.Context, actor entity.Actor, sponsorshipPublicID string) (*entity.Sponsorship, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sponsorship, err := uow.SponsorshipRepository().FindOne(ctx, specification.ByPublicID{PublicID: sponsorshipPublicID})
	if err != nil {
		return nil, err
	}
	if sponsorship == nil || (!actor.IsAdmin() && sponsorship.SponsorPublicId != actor.PublicId) {
		return nil, apperror.NotFound("sponsorship")
	}
	return sponsorship, nil
}

// InitiateSponsorshipCheckout opens a gateway session for a pending cash
// contribution and remembers its order id.
func (s *SponsorshipService) InitiateSponsorshipCheckout(ctx context.Context, actor entity.Actor, sponsorshipPublicID string) (*payment.CheckoutSession, error) {
	sponsorship, err := s.GetSponsorship(ctx, actor, sponsorshipPublicID)
	if err != nil {
		return nil, err
	}
	if sponsorship.FundingSource != entity.FundingCash {
		return nil, apperror.Field("funding_source", "only cash sponsorships go through checkout")
	}
	if sponsorship.Status != entity.SponsorshipPending {
		return nil, apperror.AlreadyProcessed(fmt.Sprintf("sponsorship is already %s", sponsorship.Status))
	}

	orderID := SponsorshipOrderPrefix + sponsorship.PublicId
	session, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		OrderID:  orderID,
		Amount:   sponsorship.Amount,
		Currency: sponsorship.Currency,
		ItemID:   sponsorship.VolunteerSponsorshipPublicId,
		ItemName: "Volunteer sponsorship",
	})
	if err != nil {
		s.logger.Error("SPONSORSHIP", "Checkout session failed", map[string]interface{}{
			"sponsorship_id": sponsorship.PublicId,
			"error":          err,
		})
		return nil, apperror.Gateway("could not start checkout", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sponsorship.GatewayOrderId = &orderID
	if err := uow.SponsorshipRepository().UpdateIfVersion(ctx, sponsorship); err != nil {
		return nil, translateWriteErr(err, "sponsorship")
	}
	return session, nil
}

// RecordSponsorshipPayment applies the gateway's verdict to a pending
// contribution. A failure is persisted and then reported as GatewayError.
func (s *SponsorshipService) RecordSponsorshipPayment(ctx context.Context, sponsorshipPublicID string, outcome PaymentOutcome) (*entity.Sponsorship, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	sponsorship, err := uow.SponsorshipRepository().FindOne(ctx, specification.ByPublicID{PublicID: sponsorshipPublicID})
	if err != nil {
		return nil, err
	}
	if sponsorship == nil {
		return nil, apperror.NotFound("sponsorship")
	}
	if sponsorship.FundingSource != entity.FundingCash {
		return nil, apperror.AlreadyProcessed("point-funded sponsorships are settled on creation")
	}

	// rejected is set when a capture arrives for a contribution that can no
	// longer complete; it is stored as failed with the capture kept for refund.
	var rejected error
	if outcome.Success {
		err = sponsorship.Complete(outcome.OrderID, outcome.CaptureID, s.now())
		if appErr, ok := apperror.As(err); ok && appErr.Kind == apperror.KindValidation {
			rejected = err
			outcome.Success = false
			outcome.Message = "captured payment rejected: " + appErr.Message
			if outcome.CaptureID != "" {
				captureID := outcome.CaptureID
				sponsorship.GatewayCaptureId = &captureID
			}
			err = sponsorship.Fail(outcome.OrderID, outcome.Message)
		}
	} else {
		err = sponsorship.Fail(outcome.OrderID, outcome.Message)
	}
	if err != nil {
		return nil, err
	}
	if err := uow.SponsorshipRepository().UpdateIfVersion(ctx, sponsorship); err != nil {
		return nil, translateWriteErr(err, "sponsorship")
	}

	request, err := uow.VolunteerSponsorshipRepository().FindOne(ctx, specification.ByPublicID{PublicID: sponsorship.VolunteerSponsorshipPublicId})
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("SPONSORSHIP", "Sponsorship payment recorded", map[string]interface{}{
		"sponsorship_id": sponsorship.PublicId,
		"status":         sponsorship.Status,
		"order_id":       outcome.OrderID,
	})

	if !outcome.Success {
		s.notifier.Notify(ctx, Notice{
			Type:           constant.NotifSponsorshipFailed,
			UserPublicID:   sponsorship.SponsorPublicId,
			Title:          "Sponsorship payment failed",
			Message:        fmt.Sprintf("Your payment could not be completed: %s", outcome.Message),
			EntityType:     constant.EntitySponsorship,
			EntityPublicID: sponsorship.PublicId,
		})
		if rejected != nil {
			s.logger.Warn("SPONSORSHIP", "Captured payment could not complete the sponsorship", map[string]interface{}{
				"sponsorship_id": sponsorship.PublicId,
				"order_id":       outcome.OrderID,
				"capture_id":     outcome.CaptureID,
				"error":          rejected,
			})
			return nil, rejected
		}
		return nil, apperror.Gateway(outcome.Message, nil)
	}

	if request != nil {
		s.notifyReceived(ctx, sponsorship, request.VolunteerPublicId)
	}
	return sponsorship, nil
}

// RefundSponsorship reverses a completed contribution. Cash goes back
// through the gateway before any local change; points come back as a
// compensating credit in the same transaction as the status change.
func (s *SponsorshipService) RefundSponsorship(ctx context.Context, actor entity.Actor, sponsorshipPublicID string, reason string) (*entity.Sponsorship, error) {
	if err := requireAdmin(actor, "sponsorship"); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, apperror.Field("reason", "refund reason is required")
	}

	release, err := s.locker.Acquire(ctx, sponsorshipLockKey(sponsorshipPublicID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock sponsorship %s: %w", sponsorshipPublicID, err)
	}
	defer release()

	sponsorship, err := s.GetSponsorship(ctx, actor, sponsorshipPublicID)
	if err != nil {
		return nil, err
	}
	if sponsorship.Status != entity.SponsorshipCompleted {
		if sponsorship.Status == entity.SponsorshipRefunded {
			return nil, apperror.AlreadyProcessed("sponsorship is already refunded")
		}
		return nil, apperror.Field("status", fmt.Sprintf("only completed sponsorships can be refunded, this one is %s", sponsorship.Status))
	}

	if sponsorship.FundingSource == entity.FundingCash {
		if err := s.refundThroughGateway(ctx, sponsorship, reason); err != nil {
			return nil, err
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := sponsorship.Refund(reason, s.now()); err != nil {
		return nil, err
	}
	if err := uow.SponsorshipRepository().UpdateIfVersion(ctx, sponsorship); err != nil {
		return nil, translateWriteErr(err, "sponsorship")
	}

	if sponsorship.FundingSource == entity.FundingPoints {
		cost, err := sponsorship.PointCost()
		if err != nil {
			return nil, err
		}
		if err := s.ledger.appendEntry(ctx, uow, &entity.PointTransaction{
			UserPublicId:    sponsorship.SponsorPublicId,
			Type:            entity.TransactionCredit,
			Points:          cost,
			Description:     "Refund of points spent on a volunteer sponsorship",
			BookingPublicId: strPtr(sponsorship.BookingPublicId),
			SourceRef:       "sponsorship-refund:" + sponsorship.PublicId,
		}); err != nil {
			return nil, err
		}
	}

	request, err := uow.VolunteerSponsorshipRepository().FindOne(ctx, specification.ByPublicID{PublicID: sponsorship.VolunteerSponsorshipPublicId})
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	if sponsorship.FundingSource == entity.FundingPoints {
		s.ledger.invalidate(sponsorship.SponsorPublicId)
	}

	s.logger.Info("SPONSORSHIP", "Sponsorship refunded", map[string]interface{}{
		"sponsorship_id": sponsorship.PublicId,
		"source":         sponsorship.FundingSource,
		"actor_id":       actor.PublicId,
	})

	recipients := []string{sponsorship.SponsorPublicId}
	if request != nil {
		recipients = append(recipients, request.VolunteerPublicId)
	}
	for _, user := range recipients {
		s.notifier.Notify(ctx, Notice{
			Type:           constant.NotifSponsorshipRefunded,
			UserPublicID:   user,
			Title:          "Sponsorship refunded",
			Message:        fmt.Sprintf("A sponsorship of %s %s was refunded: %s", sponsorship.Amount.StringFixed(2), sponsorship.Currency, reason),
			EntityType:     constant.EntitySponsorship,
			EntityPublicID: sponsorship.PublicId,
		})
	}
	return sponsorship, nil
}

func (s *SponsorshipService) refundThroughGateway(ctx context.Context, sponsorship *entity.Sponsorship, reason string) error {
	req := payment.RefundRequest{
		Amount: sponsorship.Amount,
		Reason: reason,
	}
	if sponsorship.GatewayOrderId != nil {
		req.OrderID = *sponsorship.GatewayOrderId
	}
	if sponsorship.GatewayCaptureId != nil {
		req.CaptureID = *sponsorship.GatewayCaptureId
	}

	_, refundErr := s.gateway.Refund(ctx, req)
	if refundErr == nil {
		return nil
	}

	s.logger.Error("SPONSORSHIP", "Gateway refund failed", map[string]interface{}{
		"sponsorship_id": sponsorship.PublicId,
		"error":          refundErr,
	})
	sponsorship.RefundError = refundErr.Error()
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SponsorshipRepository().UpdateIfVersion(ctx, sponsorship); err != nil {
		return translateWriteErr(err, "sponsorship")
	}
	return apperror.Gateway("refund failed", refundErr)
}

func (s *SponsorshipService) notifyReceived(ctx context.Context, sponsorship *entity.Sponsorship, volunteerPublicID string) {
	data := map[string]interface{}{
		"amount":   sponsorship.Amount.StringFixed(2),
		"currency": sponsorship.Currency,
	}
	if !sponsorship.IsAnonymous {
		data["sponsor_id"] = sponsorship.SponsorPublicId
	}
	s.notifier.Notify(ctx, Notice{
		Type:           constant.NotifSponsorshipReceived,
		UserPublicID:   volunteerPublicID,
		Title:          "You received a sponsorship",
		Message:        fmt.Sprintf("Someone contributed %s %s toward your trip.", sponsorship.Amount.StringFixed(2), sponsorship.Currency),
		EntityType:     constant.EntitySponsorship,
		EntityPublicID: sponsorship.PublicId,
		Data:           data,
	})
}
