package mocks

import (
	"context"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/stretchr/testify/mock"
)

type PixTransactionRepository struct {
	mock.Mock
}

func (m *PixTransactionRepository) Create(ctx context.Context, tx *model.PixTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *PixTransactionRepository) Update(ctx context.Context, tx *model.PixTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *PixTransactionRepository) GetByID(id int64) (*model.PixTransaction, error) {
	args := m.Called(id)
	return args.Get(0).(*model.PixTransaction), args.Error(1)
}

func (m *PixTransactionRepository) GetByTransactionID(transactionID string) (*model.PixTransaction, error) {
	args := m.Called(transactionID)
	return args.Get(0).(*model.PixTransaction), args.Error(1)
}

func (m *PixTransactionRepository) FindByCorrelationID(correlationID string, subacquirerID int64) (*model.PixTransaction, error) {
	args := m.Called(correlationID, subacquirerID)
	return args.Get(0).(*model.PixTransaction), args.Error(1)
}

func (m *PixTransactionRepository) FindOpenOlderThan(cutoff time.Time, limit int) ([]model.PixTransaction, error) {
	args := m.Called(cutoff, limit)
	return args.Get(0).([]model.PixTransaction), args.Error(1)
}
