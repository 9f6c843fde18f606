package main

import (
	"context"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/config"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/consumers"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/publishers"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/repository"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/lock"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/mq"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/mysql"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewConnectionDB,
			NewMQConnection,
			NewMQConsumer,
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
			publishers.NewEventSink,
			NewWebhookService,

			consumers.NewConfirmConsumer,
		),
		fx.Invoke(runConfirmConsumer),
	).Run()
}

func runConfirmConsumer(cfg *config.Config, confirmConsumer consumers.ConfirmConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{publishers.ConfirmQueue, publishers.EventsQueue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", publishers.ConfirmQueue))

			go func() {
				if err := confirmConsumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("confirm consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping confirm consumer")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
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
	return service.NewSchedulerService(service.SchedulerConfig{
		DelayMin:    cfg.Webhooks.Simulation.DelayMin,
		DelayMax:    cfg.Webhooks.Simulation.DelayMax,
		MaxAttempts: cfg.Webhooks.Retry.MaxAttempts,
		Backoff:     cfg.Webhooks.Retry.Backoff,
		StaleAfter:  cfg.Webhooks.StaleAfter,
	}, jobRepo, pixRepo, withdrawRepo, attemptRepo, txManager, logger)
}

func NewWebhookService(cfg *config.Config, pixRepo repository.PixTransactionRepository,
	withdrawRepo repository.WithdrawTransactionRepository, attemptRepo repository.WebhookAttemptRepository,
	subacquirers service.SubacquirerService, txManager repository.TxManager, locker lock.Locker,
	sink service.EventSink, logger *zap.Logger) service.WebhookService {
	return service.NewWebhookService(pixRepo, withdrawRepo, attemptRepo, subacquirers,
		txManager, locker, sink, cfg.Webhooks.LockTTL, logger)
}
