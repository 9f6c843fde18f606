package mocks

import (
	"context"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/stretchr/testify/mock"
)

type EventSink struct {
	mock.Mock
}

func (m *EventSink) Emit(ctx context.Context, event service.TransactionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
