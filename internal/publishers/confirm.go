package publishers

import (
	"context"
	"encoding/json"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/mq"
	"go.uber.org/zap"
)

const ConfirmQueue = "webhooks.confirm"

type ConfirmPublisher interface {
	Publish(ctx context.Context) error
}

type confirmPublisher struct {
	scheduler service.SchedulerService
	publisher mq.Publisher
	logger    *zap.Logger
}

func NewConfirmPublisher(scheduler service.SchedulerService, publisher mq.Publisher, logger *zap.Logger) ConfirmPublisher {
	return &confirmPublisher{scheduler: scheduler, publisher: publisher, logger: logger}
}

func (p *confirmPublisher) Publish(ctx context.Context) error {
	commands, err := p.scheduler.FindJobsToQueue(ctx, 100)
	if err != nil {
		return err
	}

	if len(commands) == 0 {
		return nil
	}

	p.logger.Info("Publishing confirmation jobs", zap.Int("count", len(commands)))

	successCount := 0
	for _, cmd := range commands {
		body, _ := json.Marshal(cmd)
		if err := p.publisher.Publish(ctx, "", ConfirmQueue, body); err != nil {
			p.logger.Error("Failed to publish confirmation job",
				zap.Error(err),
				zap.Int64("jobID", cmd.JobID))
			continue
		}

		if err := p.scheduler.MarkJobQueued(ctx, cmd.JobID); err != nil {
			continue
		}

		successCount++
	}

	if successCount > 0 {
		p.logger.Info("Successfully published confirmation jobs",
			zap.Int("published", successCount),
			zap.Int("total", len(commands)))
	}

	return nil
}
