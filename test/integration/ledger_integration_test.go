package integration

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer-marketplace-be/internal/apperror"
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/model"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/internal/repository/memory"
	"volunteer-marketplace-be/internal/repository/unitofwork"
	"volunteer-marketplace-be/internal/service"
	"volunteer-marketplace-be/pkg/database"
	"volunteer-marketplace-be/pkg/lock"
	"volunteer-marketplace-be/pkg/publicid"
)

func TestLedgerAgainstPostgres(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, database.DefaultPoolConfig())
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(model.All()...))

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	ledger := service.NewLedgerService(
		uowFactory,
		lock.NewLocalLocker(),
		memory.NewBalanceCache(time.Minute),
		service.LedgerOptions{},
		logger.NewNopLogger(),
	)

	user := &entity.User{
		PublicId: publicid.New(),
		Email:    "ledger-" + uuid.NewString() + "@example.com",
		FullName: "Integration Volunteer",
		Role:     entity.RoleVolunteer,
	}
	require.NoError(t, uowFactory.NewUnitOfWork(ctx).UserRepository().Create(ctx, user))
	admin := entity.SystemActor()

	t.Run("concurrent credits all land", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make(chan error, 25)
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := ledger.RecordTransaction(ctx, admin, service.RecordTransactionInput{
					UserPublicID: user.PublicId,
					Type:         string(entity.TransactionCredit),
					Points:       4,
					Description:  "integration credit",
				})
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			assert.NoError(t, err)
		}

		balance, err := ledger.BalanceOf(ctx, user.PublicId)
		require.NoError(t, err)
		assert.Equal(t, int64(100), balance)
	})

	t.Run("overdraft refused", func(t *testing.T) {
		_, err := ledger.Spend(ctx, service.SpendInput{
			UserPublicID: user.PublicId,
			Points:       101,
			Description:  "too much",
			SourceRef:    "integration:" + uuid.NewString(),
		})
		assert.True(t, apperror.Is(err, apperror.KindInsufficientPoints))

		balance, err := ledger.BalanceOf(ctx, user.PublicId)
		require.NoError(t, err)
		assert.Equal(t, int64(100), balance)
	})
}
