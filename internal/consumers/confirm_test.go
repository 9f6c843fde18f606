package consumers_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/consumers"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/mocks"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// captureConsumer hands the registered handler back to the test instead of
// touching a broker.
type captureConsumer struct {
	handler mq.Handle
}

func (c *captureConsumer) Consume(ctx context.Context, prefetch int, queue string, handler mq.Handle) error {
	c.handler = handler
	return nil
}

func setupConsumer(t *testing.T) (mq.Handle, *mocks.WebhookService, *mocks.SchedulerService) {
	t.Helper()

	mockWebhooks := &mocks.WebhookService{}
	mockScheduler := &mocks.SchedulerService{}
	capture := &captureConsumer{}

	consumer := consumers.NewConfirmConsumer(mockWebhooks, mockScheduler, capture, zap.NewNop())
	assert.NoError(t, consumer.Consume(context.Background()))
	assert.NotNil(t, capture.handler)

	return capture.handler, mockWebhooks, mockScheduler
}

func TestConfirmConsumer_HandleMessage(t *testing.T) {
	cmd := service.ConfirmTransactionCommand{
		JobID:           1,
		TransactionType: model.TransactionTypePix,
		TransactionID:   10,
		Attempt:         1,
	}
	body, _ := json.Marshal(cmd)

	t.Run("completes job on success", func(t *testing.T) {
		handle, mockWebhooks, mockScheduler := setupConsumer(t)

		mockWebhooks.On("ProcessSimulated", mock.Anything, cmd).Return(nil)
		mockScheduler.On("CompleteJob", mock.Anything, cmd).Return(nil)

		err := handle(context.Background(), body)

		assert.NoError(t, err)
		mockScheduler.AssertExpectations(t)
	})

	t.Run("completes job when transaction was already processed", func(t *testing.T) {
		handle, mockWebhooks, mockScheduler := setupConsumer(t)

		mockWebhooks.On("ProcessSimulated", mock.Anything, cmd).
			Return(service.ErrTransactionAlreadyProcessed)
		mockScheduler.On("CompleteJob", mock.Anything, cmd).Return(nil)

		err := handle(context.Background(), body)

		assert.NoError(t, err)
		mockScheduler.AssertNotCalled(t, "RescheduleOrFail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reschedules on processing failure", func(t *testing.T) {
		handle, mockWebhooks, mockScheduler := setupConsumer(t)

		cause := service.ErrConfirmationInProgress
		mockWebhooks.On("ProcessSimulated", mock.Anything, cmd).Return(cause)
		mockScheduler.On("RescheduleOrFail", mock.Anything, cmd, cause).Return(nil)

		err := handle(context.Background(), body)

		assert.NoError(t, err)
		mockScheduler.AssertExpectations(t)
	})

	t.Run("requeues when retry bookkeeping fails", func(t *testing.T) {
		handle, mockWebhooks, mockScheduler := setupConsumer(t)

		mockWebhooks.On("ProcessSimulated", mock.Anything, cmd).Return(errors.New("boom"))
		mockScheduler.On("RescheduleOrFail", mock.Anything, cmd, mock.Anything).
			Return(errors.New("db down"))

		err := handle(context.Background(), body)

		assert.Error(t, err)
	})

	t.Run("rejects malformed message", func(t *testing.T) {
		handle, _, mockScheduler := setupConsumer(t)

		err := handle(context.Background(), []byte("not json"))

		assert.Error(t, err)
		mockScheduler.AssertNotCalled(t, "CompleteJob", mock.Anything, mock.Anything)
	})
}
