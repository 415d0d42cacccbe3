package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/model"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/internal/repository/memory"
	"volunteer-marketplace-be/internal/repository/unitofwork"
	"volunteer-marketplace-be/pkg/database"
	"volunteer-marketplace-be/pkg/lock"
	"volunteer-marketplace-be/pkg/payment"
	"volunteer-marketplace-be/pkg/publicid"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (n *recordingNotifier) Notify(_ context.Context, notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) ofType(noticeType string) []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []Notice
	for _, notice := range n.notices {
		if notice.Type == noticeType {
			out = append(out, notice)
		}
	}
	return out
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fixture struct {
	db       *gorm.DB
	uow      unitofwork.RepositoryFactory
	notifier *recordingNotifier
	gateway  *payment.StubGateway
	clock    *testClock

	ledger       *LedgerService
	referrals    *ReferralService
	bookings     *BookingService
	sponsorships *SponsorshipService
	featured     *FeaturedProjectService
	webhook      *PaymentWebhookService

	admin entity.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSQLiteDB(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	f := &fixture{
		db:       db,
		uow:      unitofwork.NewRepositoryFactory(db),
		notifier: &recordingNotifier{},
		gateway:  payment.NewStubGateway(),
		clock:    &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	log := logger.NewNopLogger()
	locker := lock.NewLocalLocker()

	f.ledger = NewLedgerService(f.uow, locker, memory.NewBalanceCache(time.Minute), LedgerOptions{}, log)
	f.referrals = NewReferralService(f.uow, f.ledger, f.notifier, ReferralDefaults{ReferrerPoints: 50, RefereePoints: 20}, f.clock.Now, log)
	f.bookings = NewBookingService(f.uow, f.ledger, f.notifier, 100, f.clock.Now, log)
	f.sponsorships = NewSponsorshipService(f.uow, f.ledger, locker, f.gateway, f.notifier, f.clock.Now, log)
	f.featured = NewFeaturedProjectService(f.uow, f.gateway, f.notifier, "USD", f.clock.Now, log)
	f.webhook = NewPaymentWebhookService(f.gateway, f.featured, f.sponsorships, log)

	f.admin = f.user(t, entity.RoleAdmin)
	return f
}

func (f *fixture) user(t *testing.T, role entity.UserRole) entity.Actor {
	t.Helper()
	u := &entity.User{
		PublicId: publicid.New(),
		Email:    uuid.NewString() + "@example.com",
		FullName: string(role) + " user",
		Role:     role,
	}
	require.NoError(t, f.uow.NewUnitOfWork(context.Background()).UserRepository().Create(context.Background(), u))
	return entity.Actor{PublicId: u.PublicId, Role: role}
}

func (f *fixture) project(t *testing.T, org entity.Actor) *entity.Project {
	t.Helper()
	p := &entity.Project{
		PublicId:             publicid.New(),
		OrganizationPublicId: org.PublicId,
		Title:                "Reef restoration",
		Category:             "environment",
		Status:               entity.ProjectStatusActive,
		PricingType:          entity.PricingFree,
		FeeAmount:            decimal.Zero,
	}
	require.NoError(t, f.uow.NewUnitOfWork(context.Background()).ProjectRepository().Create(context.Background(), p))
	return p
}

// credit posts points through the admin path.
func (f *fixture) credit(t *testing.T, user entity.Actor, points int64) {
	t.Helper()
	_, err := f.ledger.RecordTransaction(context.Background(), f.admin, RecordTransactionInput{
		UserPublicID: user.PublicId,
		Type:         string(entity.TransactionCredit),
		Points:       points,
		Description:  "seed",
	})
	require.NoError(t, err)
}

// approvedBooking returns a booking the organization has accepted.
func (f *fixture) approvedBooking(t *testing.T, volunteer, org entity.Actor) *entity.VolunteerBooking {
	t.Helper()
	ctx := context.Background()
	p := f.project(t, org)
	booking, err := f.bookings.CreateBooking(ctx, volunteer, p.PublicId)
	require.NoError(t, err)
	booking, err = f.bookings.ApproveBooking(ctx, org, booking.PublicId)
	require.NoError(t, err)
	return booking
}

func signedNotification(orderID, status, captureID, amount string) payment.Notification {
	n := payment.Notification{
		TransactionStatus: status,
		TransactionID:     captureID,
		OrderID:           orderID,
		StatusCode:        "200",
		GrossAmount:       amount,
	}
	n.SignatureKey = payment.Sign(n, payment.StubServerKey)
	return n
}
