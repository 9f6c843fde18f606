package mocks

import (
	"context"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/stretchr/testify/mock"
)

type WebhookAttemptRepository struct {
	mock.Mock
}

func (m *WebhookAttemptRepository) Create(ctx context.Context, attempt *model.WebhookAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *WebhookAttemptRepository) Update(ctx context.Context, attempt *model.WebhookAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *WebhookAttemptRepository) CountByTransaction(transactionType string, transactionID int64) (int, error) {
	args := m.Called(transactionType, transactionID)
	return args.Int(0), args.Error(1)
}

func (m *WebhookAttemptRepository) ListByTransaction(transactionType string, transactionID int64) ([]model.WebhookAttempt, error) {
	args := m.Called(transactionType, transactionID)
	return args.Get(0).([]model.WebhookAttempt), args.Error(1)
}
