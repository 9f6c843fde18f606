package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/repository"
	"go.uber.org/zap"
)

const (
	DefaultDelayMin    = 5 * time.Second
	DefaultDelayMax    = 10 * time.Second
	DefaultMaxAttempts = 3
	DefaultStaleAfter  = 30 * time.Minute
)

var defaultBackoff = []time.Duration{5 * time.Second, 10 * time.Second, 30 * time.Second}

type SchedulerConfig struct {
	DelayMin    time.Duration
	DelayMax    time.Duration
	MaxAttempts int
	Backoff     []time.Duration
	StaleAfter  time.Duration
}

func (c SchedulerConfig) withDefaults() SchedulerConfig {
	if c.DelayMin <= 0 {
		c.DelayMin = DefaultDelayMin
	}
	if c.DelayMax < c.DelayMin {
		c.DelayMax = c.DelayMin
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if len(c.Backoff) == 0 {
		c.Backoff = defaultBackoff
	}
	if c.StaleAfter <= 0 {
		c.StaleAfter = DefaultStaleAfter
	}
	return c
}

// BackoffFor returns the delay before the attempt after a failed one. The
// argument is the 1-based attempt that just failed; delays past the end of
// the table clamp to its last entry.
func BackoffFor(attempt int, backoff []time.Duration) time.Duration {
	if len(backoff) == 0 {
		backoff = defaultBackoff
	}
	if attempt < 1 {
		attempt = 1
	}
	if attempt > len(backoff) {
		attempt = len(backoff)
	}
	return backoff[attempt-1]
}

// SchedulerService owns the confirmation job table: it arms the delayed
// simulation after dispatch, feeds the publisher, and applies the retry
// policy when a delivery fails.
type SchedulerService interface {
	ScheduleConfirmation(ctx context.Context, transactionType string, transactionID int64) (*model.ConfirmationJob, error)
	FindJobsToQueue(ctx context.Context, limit int) ([]ConfirmTransactionCommand, error)
	MarkJobQueued(ctx context.Context, jobID int64) error
	CompleteJob(ctx context.Context, cmd ConfirmTransactionCommand) error
	RescheduleOrFail(ctx context.Context, cmd ConfirmTransactionCommand, cause error) error
	FailStale(ctx context.Context, limit int) error
}

type scheduler struct {
	cfg          SchedulerConfig
	jobRepo      repository.ConfirmationJobRepository
	pixRepo      repository.PixTransactionRepository
	withdrawRepo repository.WithdrawTransactionRepository
	attemptRepo  repository.WebhookAttemptRepository
	txManager    repository.TxManager
	logger       *zap.Logger
}

func NewSchedulerService(cfg SchedulerConfig, jobRepo repository.ConfirmationJobRepository,
	pixRepo repository.PixTransactionRepository, withdrawRepo repository.WithdrawTransactionRepository,
	attemptRepo repository.WebhookAttemptRepository, txManager repository.TxManager,
	logger *zap.Logger) SchedulerService {
	return &scheduler{cfg: cfg.withDefaults(), jobRepo: jobRepo, pixRepo: pixRepo,
		withdrawRepo: withdrawRepo, attemptRepo: attemptRepo, txManager: txManager, logger: logger}
}

func (s *scheduler) ScheduleConfirmation(ctx context.Context, transactionType string, transactionID int64) (*model.ConfirmationJob, error) {
	delay := s.cfg.DelayMin
	if spread := s.cfg.DelayMax - s.cfg.DelayMin; spread > 0 {
		delay += time.Duration(rand.Int63n(int64(spread) + 1))
	}

	job := &model.ConfirmationJob{
		TransactionType: transactionType,
		TransactionID:   transactionID,
		State:           model.JobStateScheduled,
		RunAt:           time.Now().Add(delay),
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		s.logger.Error("Failed to schedule confirmation",
			zap.String("transactionType", transactionType),
			zap.Int64("transactionID", transactionID),
			zap.Error(err))
		return nil, ErrDatabase
	}

	s.logger.Info("Confirmation scheduled",
		zap.Int64("jobID", job.ID),
		zap.String("transactionType", transactionType),
		zap.Int64("transactionID", transactionID),
		zap.Duration("delay", delay))

	return job, nil
}

func (s *scheduler) FindJobsToQueue(ctx context.Context, limit int) ([]ConfirmTransactionCommand, error) {
	jobs, err := s.jobRepo.FindDue(time.Now(), limit)
	if err != nil {
		s.logger.Error("Failed to find due confirmation jobs", zap.Error(err))
		return nil, err
	}

	if len(jobs) == 0 {
		return nil, nil
	}

	commands := make([]ConfirmTransactionCommand, 0, len(jobs))
	for _, job := range jobs {
		commands = append(commands, ConfirmTransactionCommand{
			JobID:           job.ID,
			TransactionType: job.TransactionType,
			TransactionID:   job.TransactionID,
			Attempt:         job.Attempt + 1,
		})
	}

	return commands, nil
}

func (s *scheduler) MarkJobQueued(ctx context.Context, jobID int64) error {
	if err := s.jobRepo.MarkQueued(ctx, jobID); err != nil {
		s.logger.Error("Failed to mark job as queued", zap.Int64("jobID", jobID), zap.Error(err))
		return err
	}
	return nil
}

func (s *scheduler) CompleteJob(ctx context.Context, cmd ConfirmTransactionCommand) error {
	return s.jobRepo.Complete(ctx, cmd.JobID, cmd.Attempt)
}

func (s *scheduler) RescheduleOrFail(ctx context.Context, cmd ConfirmTransactionCommand, cause error) error {
	if cmd.Attempt < s.cfg.MaxAttempts {
		runAt := time.Now().Add(BackoffFor(cmd.Attempt, s.cfg.Backoff))
		if err := s.jobRepo.Reschedule(ctx, cmd.JobID, cmd.Attempt, runAt, cause.Error()); err != nil {
			s.logger.Error("Failed to reschedule confirmation job",
				zap.Int64("jobID", cmd.JobID),
				zap.Error(err))
			return err
		}

		s.logger.Warn("Confirmation attempt failed, rescheduled",
			zap.Int64("jobID", cmd.JobID),
			zap.Int("attempt", cmd.Attempt),
			zap.Time("runAt", runAt),
			zap.Error(cause))

		return nil
	}

	s.logger.Error("Confirmation attempts exhausted",
		zap.Int64("jobID", cmd.JobID),
		zap.String("transactionType", cmd.TransactionType),
		zap.Int64("transactionID", cmd.TransactionID),
		zap.Error(cause))

	if err := s.jobRepo.Fail(ctx, cmd.JobID, cmd.Attempt, cause.Error()); err != nil {
		return err
	}

	return s.failTransaction(ctx, cmd.TransactionType, cmd.TransactionID, cause)
}

// failTransaction forces an open transaction to FAILED once its confirmation
// attempt budget is spent, leaving an audit row explaining why.
func (s *scheduler) failTransaction(ctx context.Context, transactionType string, transactionID int64, cause error) error {
	status, err := s.currentStatus(transactionType, transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			s.logger.Warn("Transaction gone, skipping failure",
				zap.String("transactionType", transactionType),
				zap.Int64("transactionID", transactionID))
			return nil
		}
		return err
	}

	if !status.IsOpen() {
		return nil
	}

	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.markFailed(ctx, transactionType, transactionID); err != nil {
			return err
		}

		count, err := s.attemptRepo.CountByTransaction(transactionType, transactionID)
		if err != nil {
			return err
		}

		message := fmt.Sprintf("confirmation attempts exhausted: %v", cause)
		attempt := &model.WebhookAttempt{
			TransactionType: transactionType,
			TransactionID:   transactionID,
			Status:          model.AttemptStatusFailed,
			Source:          model.AttemptSourceSimulation,
			ErrorMessage:    &message,
			AttemptNumber:   count + 1,
		}

		return s.attemptRepo.Create(ctx, attempt)
	})
}

func (s *scheduler) currentStatus(transactionType string, transactionID int64) (model.TransactionStatus, error) {
	if transactionType == model.TransactionTypeWithdraw {
		tx, err := s.withdrawRepo.GetByID(transactionID)
		if err != nil {
			return "", err
		}
		return tx.Status, nil
	}

	tx, err := s.pixRepo.GetByID(transactionID)
	if err != nil {
		return "", err
	}
	return tx.Status, nil
}

func (s *scheduler) markFailed(ctx context.Context, transactionType string, transactionID int64) error {
	if transactionType == model.TransactionTypeWithdraw {
		return s.withdrawRepo.Update(ctx, &model.WithdrawTransaction{ID: transactionID, Status: model.StatusFailed})
	}
	return s.pixRepo.Update(ctx, &model.PixTransaction{ID: transactionID, Status: model.StatusFailed})
}

// FailStale closes transactions stuck open past the stale window, covering
// the case where a scheduled confirmation was lost before it could run.
func (s *scheduler) FailStale(ctx context.Context, limit int) error {
	cutoff := time.Now().Add(-s.cfg.StaleAfter)

	pixTxs, err := s.pixRepo.FindOpenOlderThan(cutoff, limit)
	if err != nil {
		return err
	}

	for _, tx := range pixTxs {
		if err := s.failTransaction(ctx, model.TransactionTypePix, tx.ID, errors.New("confirmation never arrived")); err != nil {
			s.logger.Error("Failed to close stale pix transaction", zap.Int64("transactionID", tx.ID), zap.Error(err))
		}
	}

	withdrawTxs, err := s.withdrawRepo.FindOpenOlderThan(cutoff, limit)
	if err != nil {
		return err
	}

	for _, tx := range withdrawTxs {
		if err := s.failTransaction(ctx, model.TransactionTypeWithdraw, tx.ID, errors.New("confirmation never arrived")); err != nil {
			s.logger.Error("Failed to close stale withdraw transaction", zap.Int64("transactionID", tx.ID), zap.Error(err))
		}
	}

	if n := len(pixTxs) + len(withdrawTxs); n > 0 {
		s.logger.Info("Closed stale transactions", zap.Int("count", n))
	}

	return nil
}
