package mocks

import (
	"context"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/stretchr/testify/mock"
)

type WithdrawTransactionRepository struct {
	mock.Mock
}

func (m *WithdrawTransactionRepository) Create(ctx context.Context, tx *model.WithdrawTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *WithdrawTransactionRepository) Update(ctx context.Context, tx *model.WithdrawTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *WithdrawTransactionRepository) GetByID(id int64) (*model.WithdrawTransaction, error) {
	args := m.Called(id)
	return args.Get(0).(*model.WithdrawTransaction), args.Error(1)
}

func (m *WithdrawTransactionRepository) GetByTransactionID(transactionID string) (*model.WithdrawTransaction, error) {
	args := m.Called(transactionID)
	return args.Get(0).(*model.WithdrawTransaction), args.Error(1)
}

func (m *WithdrawTransactionRepository) FindByCorrelationID(correlationID string, subacquirerID int64) (*model.WithdrawTransaction, error) {
	args := m.Called(correlationID, subacquirerID)
	return args.Get(0).(*model.WithdrawTransaction), args.Error(1)
}

func (m *WithdrawTransactionRepository) FindOpenOlderThan(cutoff time.Time, limit int) ([]model.WithdrawTransaction, error) {
	args := m.Called(cutoff, limit)
	return args.Get(0).([]model.WithdrawTransaction), args.Error(1)
}
