package main

import (
	"context"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/config"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/publishers"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/repository"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/mq"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/mysql"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	publishInterval = 2 * time.Second
	sweepInterval   = 5 * time.Minute
	sweepBatchSize  = 100
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			NewConnectionDB,
			NewMQConnection,
			NewMQPublisher,

			repository.NewPixTransactionRepository,
			repository.NewWithdrawTransactionRepository,
			repository.NewWebhookAttemptRepository,
			repository.NewConfirmationJobRepository,
			repository.NewTransactionManager,

			NewSchedulerService,

			publishers.NewConfirmPublisher,
		),
		fx.Invoke(runConfirmPublisher),
	).Run()
}

func runConfirmPublisher(cfg *config.Config, publisher publishers.ConfirmPublisher,
	scheduler service.SchedulerService, logger *zap.Logger, rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{publishers.ConfirmQueue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			logger.Info("queue declared", zap.String("queue", publishers.ConfirmQueue))

			go func() {
				ticker := time.NewTicker(publishInterval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish confirmation jobs", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			go func() {
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := scheduler.FailStale(appCtx, sweepBatchSize); err != nil {
							logger.Error("failed to sweep stale transactions", zap.Error(err))
						}
					case <-appCtx.Done():
						return
					}
				}
			}()

			logger.Info("confirm publisher started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping confirm publisher")
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

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
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
