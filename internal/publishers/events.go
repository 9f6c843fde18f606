package publishers

import (
	"context"
	"encoding/json"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/mq"
	"go.uber.org/zap"
)

const EventsQueue = "transactions.events"

// eventSink pushes lifecycle events onto the events queue for downstream
// consumers (reporting, notifications). Delivery is best-effort from the
// caller's point of view; failures are logged upstream.
type eventSink struct {
	publisher mq.Publisher
	logger    *zap.Logger
}

func NewEventSink(publisher mq.Publisher, logger *zap.Logger) service.EventSink {
	return &eventSink{publisher: publisher, logger: logger}
}

func (s *eventSink) Emit(ctx context.Context, event service.TransactionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, "", EventsQueue, body); err != nil {
		return err
	}

	s.logger.Debug("Transaction event published",
		zap.String("event", event.Name),
		zap.String("transactionRef", event.TransactionRef))

	return nil
}
