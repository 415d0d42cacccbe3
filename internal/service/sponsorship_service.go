package service

import (
	"context"
	"errors"
	"fmt"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/constant"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/internal/repository/specification"
	"volunteer-marketplace-be/internal/repository/unitofwork"
	"volunteer-marketplace-be/pkg/lock"
	"volunteer-marketplace-be/pkg/payment"
	"volunteer-marketplace-be/pkg/publicid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RequestSponsorshipInput struct {
	BookingPublicID string
	Amounts         map[entity.CostCategory]decimal.Decimal
	TotalAmount     decimal.Decimal
	Currency        string
	Description     string
}

type CreateSponsorshipInput struct {
	VolunteerSponsorshipPublicID string
	Amount                       decimal.Decimal
	Currency                     string
	FundingSource                string
	Allocation                   map[entity.CostCategory]decimal.Decimal
	IsAnonymous                  bool
}

// PaymentOutcome is the gateway's verdict on one order.
type PaymentOutcome struct {
	OrderID   string
	CaptureID string
	Success   bool
	Message   string
}

type FundingSummary struct {
	VolunteerSponsorshipPublicID string
	Currency                     string
	Requested                    decimal.Decimal
	Raised                       decimal.Decimal
	Remaining                    decimal.Decimal
	Contributions                int
}

type ISponsorshipService interface {
	RequestSponsorship(ctx context.Context, actor entity.Actor, in RequestSponsorshipInput) (*entity.VolunteerSponsorship, error)
	ApproveSponsorshipRequest(ctx context.Context, actor entity.Actor, requestPublicID string) (*entity.VolunteerSponsorship, error)
	RejectSponsorshipRequest(ctx context.Context, actor entity.Actor, requestPublicID string, reason string) (*entity.VolunteerSponsorship, error)
	FundingSummary(ctx context.Context, requestPublicID string) (*FundingSummary, error)

	CreateSponsorship(ctx context.Context, actor entity.Actor, in CreateSponsorshipInput) (*entity.Sponsorship, error)
	InitiateSponsorshipCheckout(ctx context.Context, actor entity.Actor, sponsorshipPublicID string) (*payment.CheckoutSession, error)
	RecordSponsorshipPayment(ctx context.Context, sponsorshipPublicID string, outcome PaymentOutcome) (*entity.Sponsorship, error)
	RefundSponsorship(ctx context.Context, actor entity.Actor, sponsorshipPublicID string, reason string) (*entity.Sponsorship, error)
	GetSponsorship(ctx context.Context, actor entity.Actor, sponsorshipPublicID string) (*entity.Sponsorship, error)
}

type SponsorshipService struct {
	uowFactory unitofwork.RepositoryFactory
	ledger     *LedgerService
	locker     lock.Locker
	gateway    payment.Gateway
	notifier   Notifier
	now        Clock
	logger     logger.ILogger
}

func NewSponsorshipService(
	uowFactory unitofwork.RepositoryFactory,
	ledger *LedgerService,
	locker lock.Locker,
	gateway payment.Gateway,
	notifier Notifier,
	now Clock,
	log logger.ILogger,
) *SponsorshipService {
	if now == nil {
		now = systemClock
	}
	return &SponsorshipService{
		uowFactory: uowFactory,
		ledger:     ledger,
		locker:     locker,
		gateway:    gateway,
		notifier:   notifier,
		now:        now,
		logger:     log,
	}
}

func (s *SponsorshipService) RequestSponsorship(ctx context.Context, actor entity.Actor, in RequestSponsorshipInput) (*entity.VolunteerSponsorship, error) {
	request := &entity.VolunteerSponsorship{
		BookingPublicId:   in.BookingPublicID,
		VolunteerPublicId: actor.PublicId,
		Amounts:           in.Amounts,
		TotalAmount:       in.TotalAmount,
		Currency:          in.Currency,
		Description:       in.Description,
		Status:            entity.VolunteerSponsorshipPending,
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByPublicID{PublicID: in.BookingPublicID})
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.VolunteerPublicId != actor.PublicId {
		return nil, apperror.NotFound("booking")
	}
	if !booking.Status.IsOpen() {
		return nil, apperror.Field("booking", fmt.Sprintf("cannot request sponsorship for a %s booking", booking.Status))
	}

	existing, err := uow.VolunteerSponsorshipRepository().FindOne(ctx, specification.Filter("booking_public_id", in.BookingPublicID))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Field("booking", "this booking already has a sponsorship request")
	}

	request.PublicId = publicid.New()
	if err := uow.VolunteerSponsorshipRepository().Create(ctx, request); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Field("booking", "this booking already has a sponsorship request")
		}
		return nil, fmt.Errorf("failed to create sponsorship request: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("SPONSORSHIP", "Sponsorship requested", map[string]interface{}{
		"request_id": request.PublicId,
		"booking_id": request.BookingPublicId,
		"total":      request.TotalAmount.StringFixed(2),
	})
	s.notifier.Notify(ctx, Notice{
		Type:           constant.NotifSponsorshipRequested,
		TargetRole:     entity.RoleAdmin,
		Title:          "Sponsorship request awaiting review",
		Message:        fmt.Sprintf("A volunteer requested %s %s in sponsorship.", request.TotalAmount.StringFixed(2), request.Currency),
		EntityType:     constant.EntityVolunteerSponsorship,
		EntityPublicID: request.PublicId,
	})
	return request, nil
}

func (s *SponsorshipService) ApproveSponsorshipRequest(ctx context.Context, actor entity.Actor, requestPublicID string) (*entity.VolunteerSponsorship, error) {
	return s.decideRequest(ctx, actor, requestPublicID, entity.VolunteerSponsorshipApproved, "")
}

func (s *SponsorshipService) RejectSponsorshipRequest(ctx context.Context, actor entity.Actor, requestPublicID string, reason string) (*entity.VolunteerSponsorship, error) {
	if reason == "" {
		return nil, apperror.Field("reason", "rejection reason is required")
	}
	return s.decideRequest(ctx, actor, requestPublicID, entity.VolunteerSponsorshipRejected, reason)
}

func (s *SponsorshipService) decideRequest(ctx context.Context, actor entity.Actor, requestPublicID string, next entity.VolunteerSponsorshipStatus, reason string) (*entity.VolunteerSponsorship, error) {
	if err := requireAdmin(actor, "sponsorship request"); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	request, err := uow.VolunteerSponsorshipRepository().FindOne(ctx, specification.ByPublicID{PublicID: requestPublicID})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NotFound("sponsorship request")
	}
	if err := request.Transition(next, reason, s.now()); err != nil {
		return nil, err
	}
	if err := uow.VolunteerSponsorshipRepository().UpdateIfVersion(ctx, request); err != nil {
		return nil, translateWriteErr(err, "sponsorship request")
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("SPONSORSHIP", "Sponsorship request decided", map[string]interface{}{
		"request_id": request.PublicId,
		"status":     request.Status,
	})

	notice := Notice{
		UserPublicID:   request.VolunteerPublicId,
		EntityType:     constant.EntityVolunteerSponsorship,
		EntityPublicID: request.PublicId,
	}
	if next == entity.VolunteerSponsorshipApproved {
		notice.Type = constant.NotifSponsorshipRequestApproved
		notice.Title = "Sponsorship request approved"
		notice.Message = "Your sponsorship request is now open for contributions."
	} else {
		notice.Type = constant.NotifSponsorshipRequestRejected
		notice.Title = "Sponsorship request rejected"
		notice.Message = fmt.Sprintf("Your sponsorship request was rejected: %s", reason)
	}
	s.notifier.Notify(ctx, notice)
	return request, nil
}

// FundingSummary totals completed contributions against the request.
func (s *SponsorshipService) FundingSummary(ctx context.Context, requestPublicID string) (*FundingSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.VolunteerSponsorshipRepository().FindOne(ctx, specification.ByPublicID{PublicID: requestPublicID})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NotFound("sponsorship request")
	}

	completed, err := uow.SponsorshipRepository().FindAll(ctx,
		specification.Filter("volunteer_sponsorship_public_id", requestPublicID),
		specification.Filter("status", string(entity.SponsorshipCompleted)),
	)
	if err != nil {
		return nil, err
	}

	raised := decimal.Zero
	for _, sp := range completed {
		raised = raised.Add(sp.Amount)
	}
	remaining := request.TotalAmount.Sub(raised)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return &FundingSummary{
		VolunteerSponsorshipPublicID: request.PublicId,
		Currency:                     request.Currency,
		Requested:                    request.TotalAmount,
		Raised:                       raised,
		Remaining:                    remaining,
		Contributions:                len(completed),
	}, nil
}
