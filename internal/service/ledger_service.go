package service

import (
	"context"
	"fmt"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/internal/repository/memory"
	"volunteer-marketplace-be/internal/repository/scope"
	"volunteer-marketplace-be/internal/repository/specification"
	"volunteer-marketplace-be/internal/repository/unitofwork"
	"volunteer-marketplace-be/pkg/lock"
	"volunteer-marketplace-be/pkg/publicid"
)

type RecordTransactionInput struct {
	UserPublicID         string
	Type                 string
	Points               int64
	Description          string
	BookingPublicID      *string
	CounterpartyPublicID *string
}

type SpendInput struct {
	UserPublicID         string
	Points               int64
	Description          string
	CounterpartyPublicID *string
	SourceRef            string
}

// BookingPointsReconciliation compares the cached award for a booking with
// the ledger credits that carry it.
type BookingPointsReconciliation struct {
	BookingPublicID string
	CachedPoints    int64
	LedgerCredits   int64
	HasCachedRecord bool
}

func (r BookingPointsReconciliation) Consistent() bool {
	return r.CachedPoints == r.LedgerCredits
}

type ILedgerService interface {
	RecordTransaction(ctx context.Context, actor entity.Actor, in RecordTransactionInput) (*entity.PointTransaction, error)
	BalanceOf(ctx context.Context, userPublicID string) (int64, error)
	ListTransactions(ctx context.Context, userPublicID string, page, limit int) ([]*entity.PointTransaction, int64, error)
	Spend(ctx context.Context, in SpendInput) (*entity.PointTransaction, error)
	ReconcileBookingPoints(ctx context.Context, bookingPublicID string) (*BookingPointsReconciliation, error)
}

type LedgerOptions struct {
	AllowOverdraft bool
}

type LedgerService struct {
	uowFactory unitofwork.RepositoryFactory
	locker     lock.Locker
	cache      *memory.BalanceCache
	opts       LedgerOptions
	logger     logger.ILogger
}

func NewLedgerService(
	uowFactory unitofwork.RepositoryFactory,
	locker lock.Locker,
	cache *memory.BalanceCache,
	opts LedgerOptions,
	log logger.ILogger,
) *LedgerService {
	return &LedgerService{
		uowFactory: uowFactory,
		locker:     locker,
		cache:      cache,
		opts:       opts,
		logger:     log,
	}
}

// RecordTransaction writes one manual entry. Only admins may post directly;
// everything else goes through the owning workflow.
func (s *LedgerService) RecordTransaction(ctx context.Context, actor entity.Actor, in RecordTransactionInput) (*entity.PointTransaction, error) {
	if err := requireAdmin(actor, "user"); err != nil {
		return nil, err
	}
	txType, err := entity.ParseTransactionType(in.Type)
	if err != nil {
		return nil, err
	}

	entry := &entity.PointTransaction{
		UserPublicId:         in.UserPublicID,
		Type:                 txType,
		Points:               in.Points,
		Description:          in.Description,
		BookingPublicId:      in.BookingPublicID,
		CounterpartyPublicId: in.CounterpartyPublicID,
		SourceRef:            "manual:" + actor.PublicId,
	}
	if err := s.writeLocked(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Spend debits points under the user's lock with the balance check in the
// same transaction as the debit.
func (s *LedgerService) Spend(ctx context.Context, in SpendInput) (*entity.PointTransaction, error) {
	entry := &entity.PointTransaction{
		UserPublicId:         in.UserPublicID,
		Type:                 entity.TransactionDebit,
		Points:               in.Points,
		Description:          in.Description,
		CounterpartyPublicId: in.CounterpartyPublicID,
		SourceRef:            in.SourceRef,
	}
	if err := s.writeLocked(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *LedgerService) writeLocked(ctx context.Context, entry *entity.PointTransaction) error {
	if entry.Points < 0 {
		return apperror.InvalidAmount("points must not be negative")
	}

	release, err := s.locker.Acquire(ctx, pointsLockKey(entry.UserPublicId))
	if err != nil {
		return fmt.Errorf("failed to lock points for %s: %w", entry.UserPublicId, err)
	}
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := s.appendEntry(ctx, uow, entry); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}
	s.invalidate(entry.UserPublicId)
	return nil
}

// appendEntry writes inside an open unit of work. Debits are checked
// against the balance read in the same transaction, so callers writing a
// debit must hold pointsLockKey for the user.
func (s *LedgerService) appendEntry(ctx context.Context, uow unitofwork.UnitOfWork, entry *entity.PointTransaction) error {
	if entry.Points < 0 {
		return apperror.InvalidAmount("points must not be negative")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByPublicID{PublicID: entry.UserPublicId})
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return apperror.NotFound("user")
	}

	if entry.Type == entity.TransactionDebit && !s.opts.AllowOverdraft {
		totals, err := uow.PointTransactionRepository().Totals(ctx, specification.ByUserPublicID{UserPublicID: entry.UserPublicId})
		if err != nil {
			return fmt.Errorf("failed to compute balance: %w", err)
		}
		if totals.Balance() < entry.Points {
			return apperror.InsufficientPoints(totals.Balance(), entry.Points)
		}
	}

	entry.PublicId = publicid.New()
	if err := uow.PointTransactionRepository().Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record point transaction: %w", err)
	}

	s.logger.Info("LEDGER", "Point transaction recorded", map[string]interface{}{
		"transaction_id": entry.PublicId,
		"user_id":        entry.UserPublicId,
		"type":           entry.Type,
		"points":         entry.Points,
		"source":         entry.SourceRef,
	})
	return nil
}

// invalidate must be called after the commit that wrote the entry.
func (s *LedgerService) invalidate(userPublicIDs ...string) {
	if s.cache == nil {
		return
	}
	for _, id := range userPublicIDs {
		s.cache.Invalidate(id)
	}
}

func (s *LedgerService) BalanceOf(ctx context.Context, userPublicID string) (int64, error) {
	var generation uint64
	if s.cache != nil {
		if balance, ok := s.cache.Get(userPublicID); ok {
			return balance, nil
		}
		generation = s.cache.Generation(userPublicID)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByPublicID{PublicID: userPublicID})
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, apperror.NotFound("user")
	}

	totals, err := uow.PointTransactionRepository().Totals(ctx, specification.ByUserPublicID{UserPublicID: userPublicID})
	if err != nil {
		return 0, fmt.Errorf("failed to compute balance: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(userPublicID, generation, totals.Balance())
	}
	return totals.Balance(), nil
}

// ListTransactions returns the user's entries in append order.
func (s *LedgerService) ListTransactions(ctx context.Context, userPublicID string, page, limit int) ([]*entity.PointTransaction, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	byUser := specification.ByUserPublicID{UserPublicID: userPublicID}

	total, err := uow.PointTransactionRepository().Count(ctx, byUser)
	if err != nil {
		return nil, 0, err
	}
	entries, err := uow.PointTransactionRepository().FindAll(ctx,
		byUser,
		specification.Scoped(scope.OrderByCreatedAsc),
		specification.Page(page, limit),
	)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *LedgerService) ReconcileBookingPoints(ctx context.Context, bookingPublicID string) (*BookingPointsReconciliation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByPublicID{PublicID: bookingPublicID})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("booking")
	}

	result := &BookingPointsReconciliation{BookingPublicID: bookingPublicID}

	cached, err := uow.VolunteerPointsRepository().FindOne(ctx, specification.Filter("booking_public_id", bookingPublicID))
	if err != nil {
		return nil, err
	}
	if cached != nil {
		result.HasCachedRecord = true
		result.CachedPoints = cached.Points
	}

	totals, err := uow.PointTransactionRepository().Totals(ctx,
		specification.Filter("booking_public_id", bookingPublicID),
		specification.Filter("user_public_id", booking.VolunteerPublicId),
	)
	if err != nil {
		return nil, err
	}
	result.LedgerCredits = totals.Credits

	if !result.Consistent() {
		s.logger.Warn("LEDGER", "Booking points out of balance with ledger", map[string]interface{}{
			"booking_id":     bookingPublicID,
			"cached_points":  result.CachedPoints,
			"ledger_credits": result.LedgerCredits,
		})
	}
	return result, nil
}
