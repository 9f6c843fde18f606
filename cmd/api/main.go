package main

import (
	"context"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/api"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/api/middleware"
	apivalidator "github.com/dayvsonmarques/sub-acquirer-payments/internal/api/validator"
	v1 "github.com/dayvsonmarques/sub-acquirer-payments/internal/api/v1"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/config"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/metrics"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/publishers"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/repository"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/lock"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/mq"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/mysql"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			NewFiberApp,
			NewConnectionDB,
			NewMQConnection,
			NewMQPublisher,
			NewLocker,

			repository.NewPixTransactionRepository,
			repository.NewWithdrawTransactionRepository,
			repository.NewSubacquirerRepository,
			repository.NewWebhookAttemptRepository,
			repository.NewConfirmationJobRepository,
			repository.NewTransactionManager,

			service.NewSubacquirerService,
			NewSchedulerService,
			service.NewDispatchService,
			service.NewTransactionQueryService,
			publishers.NewEventSink,
			NewWebhookService,

			metrics.NewMetrics,
			NewRequestValidator,
			v1.NewHandler,
			v1.NewWebhookHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, webhooks *v1.WebhookHandler, cfg *config.Config,
	m *metrics.Metrics, rabbit *mq.RabbitMQ, logger *zap.Logger, lc fx.Lifecycle) {
	app.Use(middleware.HTTPMetricsMiddleware(m, logger))
	api.SetupRoutes(app, handler, webhooks)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{publishers.ConfirmQueue, publishers.EventsQueue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			go app.Listen(":" + cfg.API.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := app.ShutdownWithContext(ctx); err != nil {
				return err
			}
			return rabbit.Close()
		},
	})
}

func NewFiberApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}

// NewLocker falls back to the in-process locker when no redis is configured,
// which only holds for single-instance deployments.
func NewLocker(cfg *config.Config) (lock.Locker, error) {
	if cfg.Redis.URL == "" {
		return lock.NewMemoryLocker(), nil
	}
	return lock.NewRedisLocker(cfg.Redis)
}

func NewSchedulerService(cfg *config.Config, jobRepo repository.ConfirmationJobRepository,
	pixRepo repository.PixTransactionRepository, withdrawRepo repository.WithdrawTransactionRepository,
	attemptRepo repository.WebhookAttemptRepository, txManager repository.TxManager,
	logger *zap.Logger) service.SchedulerService {
	return service.NewSchedulerService(schedulerConfig(cfg), jobRepo, pixRepo, withdrawRepo,
		attemptRepo, txManager, logger)
}

func NewWebhookService(cfg *config.Config, pixRepo repository.PixTransactionRepository,
	withdrawRepo repository.WithdrawTransactionRepository, attemptRepo repository.WebhookAttemptRepository,
	subacquirers service.SubacquirerService, txManager repository.TxManager, locker lock.Locker,
	sink service.EventSink, logger *zap.Logger) service.WebhookService {
	return service.NewWebhookService(pixRepo, withdrawRepo, attemptRepo, subacquirers,
		txManager, locker, sink, cfg.Webhooks.LockTTL, logger)
}

func NewRequestValidator(m *metrics.Metrics) apivalidator.RequestValidator {
	return apivalidator.NewRequestValidator(validatorv10.New(), m)
}

func schedulerConfig(cfg *config.Config) service.SchedulerConfig {
	return service.SchedulerConfig{
		DelayMin:    cfg.Webhooks.Simulation.DelayMin,
		DelayMax:    cfg.Webhooks.Simulation.DelayMax,
		MaxAttempts: cfg.Webhooks.Retry.MaxAttempts,
		Backoff:     cfg.Webhooks.Retry.Backoff,
		StaleAfter:  cfg.Webhooks.StaleAfter,
	}
}
