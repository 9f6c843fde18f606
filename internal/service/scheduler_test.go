package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/mocks"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/repository"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type schedulerMocks struct {
	jobRepo      *mocks.ConfirmationJobRepository
	pixRepo      *mocks.PixTransactionRepository
	withdrawRepo *mocks.WithdrawTransactionRepository
	attemptRepo  *mocks.WebhookAttemptRepository
	txManager    *mocks.TxManager
}

func newScheduler(cfg service.SchedulerConfig, logger *zap.Logger) (service.SchedulerService, *schedulerMocks) {
	m := &schedulerMocks{
		jobRepo:      &mocks.ConfirmationJobRepository{},
		pixRepo:      &mocks.PixTransactionRepository{},
		withdrawRepo: &mocks.WithdrawTransactionRepository{},
		attemptRepo:  &mocks.WebhookAttemptRepository{},
		txManager:    &mocks.TxManager{},
	}

	svc := service.NewSchedulerService(cfg, m.jobRepo, m.pixRepo, m.withdrawRepo,
		m.attemptRepo, m.txManager, logger)

	return svc, m
}

func TestBackoffFor(t *testing.T) {
	backoff := []time.Duration{5 * time.Second, 10 * time.Second, 30 * time.Second}

	tests := []struct {
		name    string
		attempt int
		want    time.Duration
	}{
		{"first failure", 1, 5 * time.Second},
		{"second failure", 2, 10 * time.Second},
		{"third failure", 3, 30 * time.Second},
		{"past the table clamps to last", 5, 30 * time.Second},
		{"zero clamps to first", 0, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.BackoffFor(tt.attempt, backoff))
		})
	}
}

func TestScheduler_ScheduleConfirmation(t *testing.T) {
	logger := zap.NewNop()

	t.Run("creates job with randomized delay inside the window", func(t *testing.T) {
		svc, m := newScheduler(service.SchedulerConfig{
			DelayMin: 5 * time.Second,
			DelayMax: 10 * time.Second,
		}, logger)

		var created *model.ConfirmationJob
		m.jobRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*model.ConfirmationJob)
			}).Return(nil)

		before := time.Now()
		job, err := svc.ScheduleConfirmation(context.Background(), model.TransactionTypePix, 10)

		assert.NoError(t, err)
		assert.NotNil(t, job)
		assert.Equal(t, model.JobStateScheduled, created.State)
		assert.Equal(t, model.TransactionTypePix, created.TransactionType)
		assert.False(t, created.RunAt.Before(before.Add(5*time.Second)))
		assert.False(t, created.RunAt.After(time.Now().Add(10*time.Second)))
	})

	t.Run("returns database error when create fails", func(t *testing.T) {
		svc, m := newScheduler(service.SchedulerConfig{}, logger)

		m.jobRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("down"))

		_, err := svc.ScheduleConfirmation(context.Background(), model.TransactionTypePix, 10)

		assert.ErrorIs(t, err, service.ErrDatabase)
	})
}

func TestScheduler_FindJobsToQueue(t *testing.T) {
	logger := zap.NewNop()

	t.Run("maps due jobs to commands with next attempt number", func(t *testing.T) {
		svc, m := newScheduler(service.SchedulerConfig{}, logger)

		jobs := []model.ConfirmationJob{
			{ID: 1, TransactionType: model.TransactionTypePix, TransactionID: 10, Attempt: 0},
			{ID: 2, TransactionType: model.TransactionTypeWithdraw, TransactionID: 20, Attempt: 1},
		}

		m.jobRepo.On("FindDue", mock.Anything, 100).Return(jobs, nil)

		commands, err := svc.FindJobsToQueue(context.Background(), 100)

		assert.NoError(t, err)
		assert.Len(t, commands, 2)
		assert.Equal(t, 1, commands[0].Attempt)
		assert.Equal(t, 2, commands[1].Attempt)
		assert.Equal(t, int64(20), commands[1].TransactionID)
	})

	t.Run("returns nothing when no jobs are due", func(t *testing.T) {
		svc, m := newScheduler(service.SchedulerConfig{}, logger)

		m.jobRepo.On("FindDue", mock.Anything, 100).Return([]model.ConfirmationJob{}, nil)

		commands, err := svc.FindJobsToQueue(context.Background(), 100)

		assert.NoError(t, err)
		assert.Empty(t, commands)
	})
}

func TestScheduler_RescheduleOrFail(t *testing.T) {
	logger := zap.NewNop()

	cfg := service.SchedulerConfig{
		MaxAttempts: 3,
		Backoff:     []time.Duration{5 * time.Second, 10 * time.Second, 30 * time.Second},
	}

	cmd := service.ConfirmTransactionCommand{
		JobID:           1,
		TransactionType: model.TransactionTypePix,
		TransactionID:   10,
		Attempt:         1,
	}

	t.Run("reschedules with backoff while attempts remain", func(t *testing.T) {
		svc, m := newScheduler(cfg, logger)

		cause := errors.New("lock held")

		var runAt time.Time
		m.jobRepo.On("Reschedule", mock.Anything, int64(1), 1, mock.Anything, "lock held").
			Run(func(args mock.Arguments) {
				runAt = args.Get(3).(time.Time)
			}).Return(nil)

		before := time.Now()
		err := svc.RescheduleOrFail(context.Background(), cmd, cause)

		assert.NoError(t, err)
		assert.False(t, runAt.Before(before.Add(5*time.Second)))
		assert.False(t, runAt.After(time.Now().Add(5*time.Second+time.Second)))
		m.jobRepo.AssertNotCalled(t, "Fail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fails job and transaction when attempts are exhausted", func(t *testing.T) {
		svc, m := newScheduler(cfg, logger)

		exhausted := cmd
		exhausted.Attempt = 3
		cause := errors.New("still locked")

		m.jobRepo.On("Fail", mock.Anything, int64(1), 3, "still locked").Return(nil)
		m.pixRepo.On("GetByID", int64(10)).
			Return(&model.PixTransaction{ID: 10, Status: model.StatusProcessing}, nil)
		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		m.pixRepo.On("Update", mock.Anything, mock.MatchedBy(func(tx *model.PixTransaction) bool {
			return tx.Status == model.StatusFailed
		})).Return(nil)
		m.attemptRepo.On("CountByTransaction", model.TransactionTypePix, int64(10)).Return(2, nil)
		m.attemptRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.WebhookAttempt) bool {
			return a.AttemptNumber == 3 && a.Status == model.AttemptStatusFailed &&
				a.Source == model.AttemptSourceSimulation
		})).Return(nil)

		err := svc.RescheduleOrFail(context.Background(), exhausted, cause)

		assert.NoError(t, err)
		m.jobRepo.AssertExpectations(t)
		m.pixRepo.AssertExpectations(t)
		m.attemptRepo.AssertExpectations(t)
	})

	t.Run("leaves terminal transaction untouched on exhaustion", func(t *testing.T) {
		svc, m := newScheduler(cfg, logger)

		exhausted := cmd
		exhausted.Attempt = 3

		m.jobRepo.On("Fail", mock.Anything, int64(1), 3, mock.Anything).Return(nil)
		m.pixRepo.On("GetByID", int64(10)).
			Return(&model.PixTransaction{ID: 10, Status: model.StatusConfirmed}, nil)

		err := svc.RescheduleOrFail(context.Background(), exhausted, errors.New("late"))

		assert.NoError(t, err)
		m.pixRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestScheduler_FailStale(t *testing.T) {
	logger := zap.NewNop()

	cfg := service.SchedulerConfig{StaleAfter: 30 * time.Minute}

	t.Run("closes open transactions past the stale window", func(t *testing.T) {
		svc, m := newScheduler(cfg, logger)

		stale := model.PixTransaction{ID: 10, Status: model.StatusProcessing}

		m.pixRepo.On("FindOpenOlderThan", mock.Anything, 100).Return([]model.PixTransaction{stale}, nil)
		m.withdrawRepo.On("FindOpenOlderThan", mock.Anything, 100).Return([]model.WithdrawTransaction{}, nil)
		m.pixRepo.On("GetByID", int64(10)).Return(&stale, nil)
		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		m.pixRepo.On("Update", mock.Anything, mock.MatchedBy(func(tx *model.PixTransaction) bool {
			return tx.Status == model.StatusFailed
		})).Return(nil)
		m.attemptRepo.On("CountByTransaction", model.TransactionTypePix, int64(10)).Return(0, nil)
		m.attemptRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		err := svc.FailStale(context.Background(), 100)

		assert.NoError(t, err)
		m.pixRepo.AssertExpectations(t)
	})

	t.Run("skips transactions that disappeared", func(t *testing.T) {
		svc, m := newScheduler(cfg, logger)

		stale := model.PixTransaction{ID: 10, Status: model.StatusProcessing}

		m.pixRepo.On("FindOpenOlderThan", mock.Anything, 100).Return([]model.PixTransaction{stale}, nil)
		m.withdrawRepo.On("FindOpenOlderThan", mock.Anything, 100).Return([]model.WithdrawTransaction{}, nil)
		m.pixRepo.On("GetByID", int64(10)).
			Return((*model.PixTransaction)(nil), repository.ErrTransactionNotFound)

		err := svc.FailStale(context.Background(), 100)

		assert.NoError(t, err)
		m.pixRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
