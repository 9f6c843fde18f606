package consumers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/publishers"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/mq"
	"go.uber.org/zap"
)

type ConfirmConsumer interface {
	Consume(ctx context.Context) error
}

type confirmConsumer struct {
	webhooks  service.WebhookService
	scheduler service.SchedulerService
	consumer  mq.Consumer
	logger    *zap.Logger
}

func NewConfirmConsumer(webhooks service.WebhookService, scheduler service.SchedulerService,
	consumer mq.Consumer, logger *zap.Logger) ConfirmConsumer {
	return &confirmConsumer{webhooks: webhooks, scheduler: scheduler, consumer: consumer, logger: logger}
}

func (c *confirmConsumer) Consume(ctx context.Context) error {
	return c.consumer.Consume(ctx, 1, publishers.ConfirmQueue, c.handleMessage)
}

// handleMessage runs one simulated confirmation. Business failures never
// requeue the message: the retry policy lives in the job table, so the
// scheduler re-arms or buries the job and the delivery is acked.
func (c *confirmConsumer) handleMessage(ctx context.Context, body []byte) error {
	c.logger.Info("received confirmation command", zap.ByteString("body", body))

	var cmd service.ConfirmTransactionCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		c.logger.Warn("invalid confirmation command", zap.Error(err))
		return err
	}

	err := c.webhooks.ProcessSimulated(ctx, cmd)
	if err == nil {
		if err := c.scheduler.CompleteJob(ctx, cmd); err != nil {
			c.logger.Error("failed to complete confirmation job",
				zap.Int64("jobID", cmd.JobID), zap.Error(err))
			return mq.Temporary(err)
		}
		return nil
	}

	if errors.Is(err, service.ErrTransactionAlreadyProcessed) || errors.Is(err, service.ErrTransactionNotFound) {
		c.logger.Warn("confirmation no longer applicable",
			zap.Int64("jobID", cmd.JobID),
			zap.Int64("transactionID", cmd.TransactionID),
			zap.Error(err))

		if err := c.scheduler.CompleteJob(ctx, cmd); err != nil {
			return mq.Temporary(err)
		}
		return nil
	}

	if err := c.scheduler.RescheduleOrFail(ctx, cmd, err); err != nil {
		return mq.Temporary(err)
	}

	return nil
}
