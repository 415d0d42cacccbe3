package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"volunteer-marketplace-be/internal/config"
	"volunteer-marketplace-be/internal/controller"
	"volunteer-marketplace-be/internal/handler"
	"volunteer-marketplace-be/internal/pkg/logger"
	"volunteer-marketplace-be/internal/repository/implementation"
	"volunteer-marketplace-be/internal/repository/memory"
	"volunteer-marketplace-be/internal/repository/unitofwork"
	"volunteer-marketplace-be/internal/service"
	"volunteer-marketplace-be/pkg/bus"
	"volunteer-marketplace-be/pkg/events"
	"volunteer-marketplace-be/pkg/lock"
	pktNats "volunteer-marketplace-be/pkg/nats"
	"volunteer-marketplace-be/pkg/payment"
	"volunteer-marketplace-be/pkg/scheduler"
)

const (
	lockPrefix = "marketplace:lock"
	lockTTL    = 15 * time.Second

	sweepJobName = "featured-expiry-sweep"
)

type Container struct {
	// Controllers
	LedgerController      controller.ILedgerController
	ReferralController    controller.IReferralController
	BookingController     controller.IBookingController
	SponsorshipController controller.ISponsorshipController
	FeaturedController    controller.IFeaturedProjectController
	PaymentController     controller.IPaymentController
	NotificationHandler   *handler.NotificationHandler

	// Services, exposed for the CLI
	Ledger   service.ILedgerService
	Featured service.IFeaturedProjectService

	Scheduler *scheduler.Scheduler
	Logger    logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(logger.Options{
		FilePath: cfg.App.LogFilePath,
		Level:    cfg.App.LogLevel,
		IsProd:   cfg.App.IsProduction(),
	})
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	publisher, subscriber := c.eventBus(cfg, sysLogger)
	notifier := service.NewEventNotifier(publisher, sysLogger)

	// 3. Infrastructure
	locker := c.locker(cfg, sysLogger)

	gateway, err := newGateway(cfg.Payment)
	if err != nil {
		return nil, err
	}

	// 4. Services
	now := func() time.Time { return time.Now().UTC() }

	ledger := service.NewLedgerService(
		uowFactory,
		locker,
		memory.NewBalanceCache(cfg.Ledger.BalanceTTL),
		service.LedgerOptions{AllowOverdraft: cfg.Ledger.AllowOverdraft},
		sysLogger,
	)
	referrals := service.NewReferralService(uowFactory, ledger, notifier, service.ReferralDefaults{
		ReferrerPoints: cfg.Referral.ReferrerPoints,
		RefereePoints:  cfg.Referral.RefereePoints,
	}, now, sysLogger)
	bookings := service.NewBookingService(uowFactory, ledger, notifier, cfg.Booking.CompletionPoints, now, sysLogger)
	sponsorships := service.NewSponsorshipService(uowFactory, ledger, locker, gateway, notifier, now, sysLogger)
	featured := service.NewFeaturedProjectService(uowFactory, gateway, notifier, cfg.Payment.Currency, now, sysLogger)
	webhook := service.NewPaymentWebhookService(gateway, featured, sponsorships, sysLogger)

	// 5. Notification System
	notifService := service.NewNotificationService(implementation.NewNotificationRepository(db), subscriber, sysLogger)
	if err := notifService.Start(); err != nil {
		return nil, err
	}

	// 6. Scheduled Jobs
	sweepLogger := logger.NewIsolatedLogger(cfg.Sweep.LogFilePath)
	c.Scheduler = scheduler.New(sweepLogger.Zap())
	if err := c.Scheduler.Register(scheduler.Job{
		Name: sweepJobName,
		Spec: cfg.Sweep.Schedule,
		Run:  sweepJob(featured, sweepLogger),
	}); err != nil {
		return nil, err
	}

	// 7. Controllers
	c.LedgerController = controller.NewLedgerController(ledger)
	c.ReferralController = controller.NewReferralController(referrals)
	c.BookingController = controller.NewBookingController(bookings)
	c.SponsorshipController = controller.NewSponsorshipController(sponsorships)
	c.FeaturedController = controller.NewFeaturedProjectController(featured, time.Now)
	c.PaymentController = controller.NewPaymentController(webhook, sysLogger)
	c.NotificationHandler = handler.NewNotificationHandler(notifService, notifier, sysLogger)

	c.Ledger = ledger
	c.Featured = featured
	return c, nil
}

// eventBus prefers NATS JetStream and falls back to an in-process bus when
// NATS_URL is unset or unreachable.
func (c *Container) eventBus(cfg *config.Config, log logger.ILogger) (events.Publisher, events.Subscriber) {
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL, log.Zap())
		if err == nil {
			sub, subErr := pktNats.NewSubscriber(cfg.App.NatsURL, log.Zap())
			if subErr == nil {
				c.closers = append(c.closers, pub.Close, sub.Close)
				return pub, sub
			}
			pub.Close()
			err = subErr
		}
		log.Warn("BOOTSTRAP", "NATS unavailable, using in-memory event bus", map[string]interface{}{"error": err})
	}

	memBus := bus.NewMemoryBus(watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = memBus.Close() })
	return memBus, memBus
}

// locker uses Redis when configured so several replicas share point locks.
func (c *Container) locker(cfg *config.Config, log logger.ILogger) lock.Locker {
	if cfg.App.RedisURL == "" {
		return lock.NewLocalLocker()
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("BOOTSTRAP", "Redis unreachable, using in-process locks", map[string]interface{}{"error": err})
		_ = rdb.Close()
		return lock.NewLocalLocker()
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return lock.NewRedisLocker(rdb, lockPrefix, lockTTL)
}

func newGateway(cfg config.PaymentConfig) (payment.Gateway, error) {
	if cfg.Mode != "midtrans" {
		return payment.NewStubGateway(), nil
	}
	g, err := payment.NewMidtransGateway(payment.MidtransConfig{
		ServerKey:  cfg.ServerKey,
		Production: cfg.Environment == "production",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init midtrans gateway: %w", err)
	}
	return g, nil
}

func sweepJob(featured service.IFeaturedProjectService, log logger.ILogger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		report, err := featured.RunExpirySweep(ctx, time.Now().UTC())
		if err != nil {
			return err
		}
		log.Info("SWEEP", "Expiry sweep finished", map[string]interface{}{
			"scanned":   report.Scanned,
			"reminders": report.SevenDayReminders + report.OneDayReminders,
			"expired":   report.Expired,
			"conflicts": report.Conflicts,
			"failed":    report.Failed,
		})
		return nil
	}
}

// Close stops the scheduler and releases bus and Redis connections.
func (c *Container) Close() {
	if c.Scheduler != nil {
		<-c.Scheduler.Stop().Done()
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
