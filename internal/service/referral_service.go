package service

import (
	"context"
	"errors"
	"fmt"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/constant"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/internal/repository/scope"
	"volunteer-marketplace-be/internal/repository/specification"
	"volunteer-marketplace-be/internal/repository/unitofwork"
	"volunteer-marketplace-be/pkg/publicid"

	"gorm.io/gorm"
)

type CreateReferralInput struct {
	ReferrerPublicID string
	RefereePublicID  string
	// Nil awards fall back to the configured defaults.
	ReferrerPoints *int64
	RefereePoints  *int64
	Metadata       map[string]interface{}
}

type ReferralDefaults struct {
	ReferrerPoints int64
	RefereePoints  int64
}

type IReferralService interface {
	CreateReferral(ctx context.Context, actor entity.Actor, in CreateReferralInput) (*entity.Referral, error)
	ResolveReferral(ctx context.Context, actor entity.Actor, referralPublicID string, outcome string) (*entity.Referral, error)
	ListReferrals(ctx context.Context, actor entity.Actor, userPublicID string) ([]*entity.Referral, error)
}

type ReferralService struct {
	uowFactory unitofwork.RepositoryFactory
	ledger     *LedgerService
	notifier   Notifier
	defaults   ReferralDefaults
	now        Clock
	logger     logger.ILogger
}

func NewReferralService(
	uowFactory unitofwork.RepositoryFactory,
	ledger *LedgerService,
	notifier Notifier,
	defaults ReferralDefaults,
	now Clock,
	log logger.ILogger,
) *ReferralService {
	if now == nil {
		now = systemClock
	}
	return &ReferralService{
		uowFactory: uowFactory,
		ledger:     ledger,
		notifier:   notifier,
		defaults:   defaults,
		now:        now,
		logger:     log,
	}
}

func (s *ReferralService) CreateReferral(ctx context.Context, actor entity.Actor, in CreateReferralInput) (*entity.Referral, error) {
	if !actor.IsAdmin() && actor.PublicId != in.ReferrerPublicID && actor.PublicId != in.RefereePublicID {
		return nil, apperror.NotFound("user")
	}

	referral := &entity.Referral{
		ReferrerPublicId: in.ReferrerPublicID,
		RefereePublicId:  in.RefereePublicID,
		ReferrerPoints:   s.defaults.ReferrerPoints,
		RefereePoints:    s.defaults.RefereePoints,
		Metadata:         in.Metadata,
		Status:           entity.ReferralPending,
	}
	if in.ReferrerPoints != nil {
		referral.ReferrerPoints = *in.ReferrerPoints
	}
	if in.RefereePoints != nil {
		referral.RefereePoints = *in.RefereePoints
	}
	if err := referral.Validate(); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().FindAll(ctx, specification.ByPublicIDs{
		PublicIDs: []string{in.ReferrerPublicID, in.RefereePublicID},
	})
	if err != nil {
		return nil, err
	}
	if len(users) != 2 {
		return nil, apperror.NotFound("user")
	}

	existing, err := uow.ReferralRepository().FindOne(ctx,
		specification.Filter("referrer_public_id", in.ReferrerPublicID),
		specification.Filter("referee_public_id", in.RefereePublicID),
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.DuplicateReferral(in.ReferrerPublicID, in.RefereePublicID)
	}

	referral.PublicId = publicid.New()
	if err := uow.ReferralRepository().Create(ctx, referral); err != nil {
		// Lost the race to the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.DuplicateReferral(in.ReferrerPublicID, in.RefereePublicID)
		}
		return nil, fmt.Errorf("failed to create referral: %w", err)
	}
	if err := uow.Commit(); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.DuplicateReferral(in.ReferrerPublicID, in.RefereePublicID)
		}
		return nil, err
	}

	s.logger.Info("REFERRAL", "Referral created", map[string]interface{}{
		"referral_id": referral.PublicId,
		"referrer_id": referral.ReferrerPublicId,
		"referee_id":  referral.RefereePublicId,
	})
	return referral, nil
}

// ResolveReferral settles a pending referral. Approval credits both sides
// with the amounts captured at creation, in the same transaction as the
// status change.
func (s *ReferralService) ResolveReferral(ctx context.Context, actor entity.Actor, referralPublicID string, outcome string) (*entity.Referral, error) {
	if err := requireAdmin(actor, "referral"); err != nil {
		return nil, err
	}
	status, err := entity.ParseReferralOutcome(outcome)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	referral, err := uow.ReferralRepository().FindOne(ctx, specification.ByPublicID{PublicID: referralPublicID})
	if err != nil {
		return nil, err
	}
	if referral == nil {
		return nil, apperror.NotFound("referral")
	}

	if err := referral.Resolve(status, s.now()); err != nil {
		return nil, err
	}
	if err := uow.ReferralRepository().UpdateIfVersion(ctx, referral); err != nil {
		return nil, translateWriteErr(err, "referral")
	}

	if status == entity.ReferralApproved {
		source := "referral:" + referral.PublicId
		credits := []*entity.PointTransaction{
			{
				UserPublicId:         referral.ReferrerPublicId,
				Type:                 entity.TransactionCredit,
				Points:               referral.ReferrerPoints,
				Description:          "Referral bonus",
				CounterpartyPublicId: strPtr(referral.RefereePublicId),
				SourceRef:            source,
			},
			{
				UserPublicId:         referral.RefereePublicId,
				Type:                 entity.TransactionCredit,
				Points:               referral.RefereePoints,
				Description:          "Welcome bonus for joining through a referral",
				CounterpartyPublicId: strPtr(referral.ReferrerPublicId),
				SourceRef:            source,
			},
		}
		for _, credit := range credits {
			if err := s.ledger.appendEntry(ctx, uow, credit); err != nil {
				return nil, err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	s.ledger.invalidate(referral.ReferrerPublicId, referral.RefereePublicId)

	s.logger.Info("REFERRAL", "Referral resolved", map[string]interface{}{
		"referral_id": referral.PublicId,
		"status":      referral.Status,
	})
	s.notifyResolved(ctx, referral)
	return referral, nil
}

func (s *ReferralService) notifyResolved(ctx context.Context, referral *entity.Referral) {
	if referral.Status == entity.ReferralRejected {
		s.notifier.Notify(ctx, Notice{
			Type:           constant.NotifReferralRejected,
			UserPublicID:   referral.ReferrerPublicId,
			Title:          "Referral not approved",
			Message:        "Your referral was reviewed and not approved.",
			EntityType:     constant.EntityReferral,
			EntityPublicID: referral.PublicId,
		})
		return
	}

	awards := []struct {
		user   string
		points int64
	}{
		{referral.ReferrerPublicId, referral.ReferrerPoints},
		{referral.RefereePublicId, referral.RefereePoints},
	}
	for _, award := range awards {
		s.notifier.Notify(ctx, Notice{
			Type:           constant.NotifReferralApproved,
			UserPublicID:   award.user,
			Title:          "Referral approved",
			Message:        fmt.Sprintf("You earned %d points from a referral.", award.points),
			EntityType:     constant.EntityReferral,
			EntityPublicID: referral.PublicId,
			Data:           map[string]interface{}{"points": award.points},
		})
	}
}

func (s *ReferralService) ListReferrals(ctx context.Context, actor entity.Actor, userPublicID string) ([]*entity.Referral, error) {
	if !actor.IsAdmin() && actor.PublicId != userPublicID {
		return nil, apperror.NotFound("user")
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ReferralRepository().FindAll(ctx,
		specification.ReferralInvolving{UserPublicID: userPublicID},
		specification.Scoped(scope.OrderByCreatedDesc),
	)
}
