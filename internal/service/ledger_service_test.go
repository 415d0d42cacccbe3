package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/internal/repository/contract"
	"volunteer-marketplace-be/internal/repository/memory"
	"volunteer-marketplace-be/internal/repository/specification"
	"volunteer-marketplace-be/internal/repository/unitofwork"
	"volunteer-marketplace-be/pkg/lock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_BalanceFollowsEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	volunteer := f.user(t, entity.RoleVolunteer)

	f.credit(t, volunteer, 100)
	_, err := f.ledger.Spend(ctx, SpendInput{UserPublicID: volunteer.PublicId, Points: 30, Description: "merch"})
	require.NoError(t, err)
	_, err = f.ledger.RecordTransaction(ctx, f.admin, RecordTransactionInput{
		UserPublicID: volunteer.PublicId,
		Type:         "debit",
		Points:       20,
		Description:  "correction",
	})
	require.NoError(t, err)

	balance, err := f.ledger.BalanceOf(ctx, volunteer.PublicId)
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance)

	entries, total, err := f.ledger.ListTransactions(ctx, volunteer.PublicId, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, entries, 3)
	assert.Equal(t, entity.TransactionCredit, entries[0].Type)
	assert.Equal(t, "manual:"+f.admin.PublicId, entries[0].SourceRef)
}

func TestLedger_RecordTransactionRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	volunteer := f.user(t, entity.RoleVolunteer)

	_, err := f.ledger.RecordTransaction(ctx, volunteer, RecordTransactionInput{
		UserPublicID: volunteer.PublicId, Type: "credit", Points: 10,
	})
	assert.True(t, apperror.Is(err, apperror.KindNotFound), "non-admins cannot post entries")

	_, err = f.ledger.RecordTransaction(ctx, f.admin, RecordTransactionInput{
		UserPublicID: volunteer.PublicId, Type: "credit", Points: -5,
	})
	assert.True(t, apperror.Is(err, apperror.KindInvalidAmount))

	_, err = f.ledger.RecordTransaction(ctx, f.admin, RecordTransactionInput{
		UserPublicID: volunteer.PublicId, Type: "bonus", Points: 5,
	})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.ledger.RecordTransaction(ctx, f.admin, RecordTransactionInput{
		UserPublicID: "missing", Type: "credit", Points: 5,
	})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestLedger_OverdraftRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	volunteer := f.user(t, entity.RoleVolunteer)
	f.credit(t, volunteer, 40)

	_, err := f.ledger.Spend(ctx, SpendInput{UserPublicID: volunteer.PublicId, Points: 41})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindInsufficientPoints, appErr.Kind)

	balance, err := f.ledger.BalanceOf(ctx, volunteer.PublicId)
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance)
}

func TestLedger_ConcurrentCreditsAllLand(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	volunteer := f.user(t, entity.RoleVolunteer)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.RecordTransaction(ctx, f.admin, RecordTransactionInput{
				UserPublicID: volunteer.PublicId, Type: "credit", Points: 5,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	balance, err := f.ledger.BalanceOf(ctx, volunteer.PublicId)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestLedger_ConcurrentSpendsNeverOverdraw(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	volunteer := f.user(t, entity.RoleVolunteer)
	f.credit(t, volunteer, 100)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		refused   int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.Spend(ctx, SpendInput{UserPublicID: volunteer.PublicId, Points: 30})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case apperror.Is(err, apperror.KindInsufficientPoints):
				refused++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 7, refused)
	balance, err := f.ledger.BalanceOf(ctx, volunteer.PublicId)
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)
}

func TestLedger_BalanceCacheInvalidatedOnWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	volunteer := f.user(t, entity.RoleVolunteer)

	balance, err := f.ledger.BalanceOf(ctx, volunteer.PublicId)
	require.NoError(t, err)
	assert.Zero(t, balance)

	f.credit(t, volunteer, 25)
	balance, err = f.ledger.BalanceOf(ctx, volunteer.PublicId)
	require.NoError(t, err)
	assert.Equal(t, int64(25), balance)
}

// afterTotalsFactory runs a one-shot hook right after a Totals read returns.
type afterTotalsFactory struct {
	unitofwork.RepositoryFactory

	mu   sync.Mutex
	hook func()
}

func (f *afterTotalsFactory) take() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	hook := f.hook
	f.hook = nil
	return hook
}

func (f *afterTotalsFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return afterTotalsUnitOfWork{UnitOfWork: f.RepositoryFactory.NewUnitOfWork(ctx), factory: f}
}

type afterTotalsUnitOfWork struct {
	unitofwork.UnitOfWork
	factory *afterTotalsFactory
}

func (u afterTotalsUnitOfWork) PointTransactionRepository() contract.PointTransactionRepository {
	return afterTotalsPoints{PointTransactionRepository: u.UnitOfWork.PointTransactionRepository(), factory: u.factory}
}

type afterTotalsPoints struct {
	contract.PointTransactionRepository
	factory *afterTotalsFactory
}

func (p afterTotalsPoints) Totals(ctx context.Context, specs ...specification.Specification) (contract.PointTotals, error) {
	totals, err := p.PointTransactionRepository.Totals(ctx, specs...)
	if hook := p.factory.take(); hook != nil {
		hook()
	}
	return totals, err
}

func TestLedger_BalanceReadRacingACreditIsNotCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	volunteer := f.user(t, entity.RoleVolunteer)
	f.credit(t, volunteer, 10)

	factory := &afterTotalsFactory{RepositoryFactory: f.uow}
	ledger := NewLedgerService(factory, lock.NewLocalLocker(), memory.NewBalanceCache(time.Minute), LedgerOptions{}, logger.NewNopLogger())
	factory.hook = func() {
		_, err := ledger.RecordTransaction(ctx, f.admin, RecordTransactionInput{
			UserPublicID: volunteer.PublicId,
			Type:         string(entity.TransactionCredit),
			Points:       5,
			Description:  "late credit",
		})
		require.NoError(t, err)
	}

	// the first read saw the ledger before the credit committed
	balance, err := ledger.BalanceOf(ctx, volunteer.PublicId)
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)

	balance, err = ledger.BalanceOf(ctx, volunteer.PublicId)
	require.NoError(t, err)
	assert.Equal(t, int64(15), balance)
}
