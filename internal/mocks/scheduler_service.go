package mocks

import (
	"context"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/stretchr/testify/mock"
)

type SchedulerService struct {
	mock.Mock
}

func (m *SchedulerService) ScheduleConfirmation(ctx context.Context, transactionType string, transactionID int64) (*model.ConfirmationJob, error) {
	args := m.Called(ctx, transactionType, transactionID)
	return args.Get(0).(*model.ConfirmationJob), args.Error(1)
}

func (m *SchedulerService) FindJobsToQueue(ctx context.Context, limit int) ([]service.ConfirmTransactionCommand, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]service.ConfirmTransactionCommand), args.Error(1)
}

func (m *SchedulerService) MarkJobQueued(ctx context.Context, jobID int64) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func (m *SchedulerService) CompleteJob(ctx context.Context, cmd service.ConfirmTransactionCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *SchedulerService) RescheduleOrFail(ctx context.Context, cmd service.ConfirmTransactionCommand, cause error) error {
	args := m.Called(ctx, cmd, cause)
	return args.Error(0)
}

func (m *SchedulerService) FailStale(ctx context.Context, limit int) error {
	args := m.Called(ctx, limit)
	return args.Error(0)
}
