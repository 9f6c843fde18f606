package mocks

import (
	"context"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/stretchr/testify/mock"
)

type ConfirmationJobRepository struct {
	mock.Mock
}

func (m *ConfirmationJobRepository) Create(ctx context.Context, job *model.ConfirmationJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *ConfirmationJobRepository) GetByID(id int64) (*model.ConfirmationJob, error) {
	args := m.Called(id)
	return args.Get(0).(*model.ConfirmationJob), args.Error(1)
}

func (m *ConfirmationJobRepository) FindDue(now time.Time, limit int) ([]model.ConfirmationJob, error) {
	args := m.Called(now, limit)
	return args.Get(0).([]model.ConfirmationJob), args.Error(1)
}

func (m *ConfirmationJobRepository) MarkQueued(ctx context.Context, jobID int64) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func (m *ConfirmationJobRepository) Reschedule(ctx context.Context, jobID int64, attempt int, runAt time.Time, lastError string) error {
	args := m.Called(ctx, jobID, attempt, runAt, lastError)
	return args.Error(0)
}

func (m *ConfirmationJobRepository) Complete(ctx context.Context, jobID int64, attempt int) error {
	args := m.Called(ctx, jobID, attempt)
	return args.Error(0)
}

func (m *ConfirmationJobRepository) Fail(ctx context.Context, jobID int64, attempt int, lastError string) error {
	args := m.Called(ctx, jobID, attempt, lastError)
	return args.Error(0)
}
