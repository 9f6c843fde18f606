package mocks

import (
	"context"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/stretchr/testify/mock"
)

type WebhookService struct {
	mock.Mock
}

func (m *WebhookService) ProcessSimulated(ctx context.Context, cmd service.ConfirmTransactionCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *WebhookService) ProcessExternal(ctx context.Context, cmd service.ProcessExternalWebhookCommand) (service.ProcessWebhookResponse, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.ProcessWebhookResponse), args.Error(1)
}
