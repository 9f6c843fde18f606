package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/repository"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/lock"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/subacq"
	"go.uber.org/zap"
)

const DefaultLockTTL = 30 * time.Second

// WebhookService is the confirmation engine. Both delivery paths end up in
// the same apply step: acquire the per-transaction lock, re-read the row,
// refuse terminal states, then transition and audit in one DB transaction.
type WebhookService interface {
	ProcessSimulated(ctx context.Context, cmd ConfirmTransactionCommand) error
	ProcessExternal(ctx context.Context, cmd ProcessExternalWebhookCommand) (ProcessWebhookResponse, error)
}

type webhook struct {
	pixRepo      repository.PixTransactionRepository
	withdrawRepo repository.WithdrawTransactionRepository
	attemptRepo  repository.WebhookAttemptRepository
	subacquirers SubacquirerService
	txManager    repository.TxManager
	locker       lock.Locker
	sink         EventSink
	lockTTL      time.Duration
	logger       *zap.Logger
}

func NewWebhookService(pixRepo repository.PixTransactionRepository,
	withdrawRepo repository.WithdrawTransactionRepository, attemptRepo repository.WebhookAttemptRepository,
	subacquirers SubacquirerService, txManager repository.TxManager, locker lock.Locker,
	sink EventSink, lockTTL time.Duration, logger *zap.Logger) WebhookService {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &webhook{pixRepo: pixRepo, withdrawRepo: withdrawRepo, attemptRepo: attemptRepo,
		subacquirers: subacquirers, txManager: txManager, locker: locker, sink: sink,
		lockTTL: lockTTL, logger: logger}
}

func (w *webhook) ProcessSimulated(ctx context.Context, cmd ConfirmTransactionCommand) error {
	w.logger.Info("Processing simulated confirmation",
		zap.Int64("jobID", cmd.JobID),
		zap.String("transactionType", cmd.TransactionType),
		zap.Int64("transactionID", cmd.TransactionID),
		zap.Int("attempt", cmd.Attempt))

	return w.confirm(ctx, cmd.TransactionType, cmd.TransactionID, model.AttemptSourceSimulation, nil)
}

func (w *webhook) ProcessExternal(ctx context.Context, cmd ProcessExternalWebhookCommand) (ProcessWebhookResponse, error) {
	sub, err := w.subacquirers.Resolve(cmd.SubacquirerCode)
	if err != nil {
		if errors.Is(err, ErrSubacquirerNotFound) {
			return ProcessWebhookResponse{}, err
		}
		return ProcessWebhookResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	op := subacq.OperationPix
	if cmd.TransactionType == model.TransactionTypeWithdraw {
		op = subacq.OperationWithdraw
	}

	profile := subacq.ProfileFor(sub.Code)
	correlationID := profile.ExtractCorrelationID(op, cmd.Payload)
	if correlationID == "" {
		return ProcessWebhookResponse{}, NewServiceError(ErrCodeValidation, ErrCorrelationIDMissing)
	}

	txID, ref, err := w.findByCorrelation(cmd.TransactionType, correlationID, sub.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			w.recordOrphan(ctx, cmd, correlationID)
			return ProcessWebhookResponse{}, ErrTransactionNotFound
		}
		return ProcessWebhookResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	w.logger.Info("Processing external webhook",
		zap.String("transactionType", cmd.TransactionType),
		zap.String("subacquirer", sub.Code),
		zap.String("correlationID", correlationID),
		zap.Int64("transactionID", txID))

	if err := w.confirm(ctx, cmd.TransactionType, txID, model.AttemptSourceExternal, cmd.Payload); err != nil {
		return ProcessWebhookResponse{}, err
	}

	return ProcessWebhookResponse{TransactionID: ref, Status: string(terminalStatus(cmd.TransactionType))}, nil
}

// confirm is the shared apply path. A nil payload means the confirmation
// payload is generated from the stored transaction, mimicking what the
// provider would have sent.
func (w *webhook) confirm(ctx context.Context, transactionType string, transactionID int64, source string, payload map[string]any) error {
	key := fmt.Sprintf("%s_webhook_lock_%d", transactionType, transactionID)

	token, acquired, err := w.locker.TryAcquire(ctx, key, w.lockTTL)
	if err != nil {
		w.logger.Error("Lock acquisition failed", zap.String("key", key), zap.Error(err))
		return NewServiceError(ErrCodeDatabase, err)
	}
	if !acquired {
		w.logger.Warn("Confirmation already in progress", zap.String("key", key))
		return ErrConfirmationInProgress
	}

	defer func() {
		if err := w.locker.Release(ctx, key, token); err != nil {
			w.logger.Warn("Lock release failed", zap.String("key", key), zap.Error(err))
		}
	}()

	if transactionType == model.TransactionTypeWithdraw {
		return w.confirmWithdraw(ctx, transactionID, source, payload)
	}
	return w.confirmPix(ctx, transactionID, source, payload)
}

func (w *webhook) confirmPix(ctx context.Context, transactionID int64, source string, payload map[string]any) error {
	tx, err := w.pixRepo.GetByID(transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		return NewServiceError(ErrCodeDatabase, err)
	}

	if payload == nil {
		payload = subacq.ProfileFor(tx.Subacquirer.Code).GenerateConfirmationPayload(subacq.OperationPix, subacq.Transaction{
			TransactionID: tx.TransactionID,
			ExternalID:    tx.ExternalID,
			Amount:        tx.Amount,
			PixKey:        tx.PixKey,
			PixKeyType:    tx.PixKeyType,
			Description:   tx.Description,
			CreatedAt:     tx.CreatedAt,
		})
	}

	attempt, err := w.openAttempt(ctx, model.TransactionTypePix, tx.ID, source, payload)
	if err != nil {
		return NewServiceError(ErrCodeDatabase, err)
	}

	if !tx.Status.IsOpen() {
		w.closeAttempt(ctx, attempt, model.AttemptStatusFailed, "transaction already processed")
		w.logger.Warn("Pix transaction already processed",
			zap.Int64("transactionID", tx.ID),
			zap.String("status", string(tx.Status)))
		return ErrTransactionAlreadyProcessed
	}

	now := time.Now()
	err = w.txManager.WithTx(ctx, func(ctx context.Context) error {
		tx.Status = model.StatusConfirmed
		tx.ConfirmedAt = &now
		tx.WebhookData, _ = json.Marshal(payload)
		if err := w.pixRepo.Update(ctx, tx); err != nil {
			return err
		}

		attempt.Status = model.AttemptStatusSuccess
		attempt.Response, _ = json.Marshal(map[string]any{"processed": true, "status": model.StatusConfirmed})
		return w.attemptRepo.Update(ctx, attempt)
	})
	if err != nil {
		w.closeAttempt(ctx, attempt, model.AttemptStatusFailed, err.Error())
		return NewServiceError(ErrCodeDatabase, err)
	}

	w.logger.Info("Pix transaction confirmed",
		zap.Int64("transactionID", tx.ID),
		zap.String("transactionRef", tx.TransactionID),
		zap.Int("attemptNumber", attempt.AttemptNumber),
		zap.String("source", source))

	w.emit(ctx, TransactionEvent{
		Name:            EventTransactionConfirmed,
		TransactionType: model.TransactionTypePix,
		TransactionID:   tx.ID,
		TransactionRef:  tx.TransactionID,
		ExternalID:      tx.ExternalID,
		Amount:          tx.Amount.StringFixed(2),
		OccurredAt:      now,
	})

	return nil
}

func (w *webhook) confirmWithdraw(ctx context.Context, transactionID int64, source string, payload map[string]any) error {
	tx, err := w.withdrawRepo.GetByID(transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		return NewServiceError(ErrCodeDatabase, err)
	}

	if payload == nil {
		payload = subacq.ProfileFor(tx.Subacquirer.Code).GenerateConfirmationPayload(subacq.OperationWithdraw, subacq.Transaction{
			TransactionID: tx.TransactionID,
			ExternalID:    tx.ExternalID,
			Amount:        tx.Amount,
			BankCode:      tx.BankCode,
			Agency:        tx.Agency,
			Account:       tx.Account,
			AccountType:   tx.AccountType,
			HolderName:    tx.HolderName,
			HolderDoc:     tx.HolderDocument,
			Description:   tx.Description,
			CreatedAt:     tx.CreatedAt,
		})
	}

	attempt, err := w.openAttempt(ctx, model.TransactionTypeWithdraw, tx.ID, source, payload)
	if err != nil {
		return NewServiceError(ErrCodeDatabase, err)
	}

	if !tx.Status.IsOpen() {
		w.closeAttempt(ctx, attempt, model.AttemptStatusFailed, "transaction already processed")
		w.logger.Warn("Withdraw transaction already processed",
			zap.Int64("transactionID", tx.ID),
			zap.String("status", string(tx.Status)))
		return ErrTransactionAlreadyProcessed
	}

	now := time.Now()
	err = w.txManager.WithTx(ctx, func(ctx context.Context) error {
		tx.Status = model.StatusPaid
		tx.PaidAt = &now
		tx.WebhookData, _ = json.Marshal(payload)
		if err := w.withdrawRepo.Update(ctx, tx); err != nil {
			return err
		}

		attempt.Status = model.AttemptStatusSuccess
		attempt.Response, _ = json.Marshal(map[string]any{"processed": true, "status": model.StatusPaid})
		return w.attemptRepo.Update(ctx, attempt)
	})
	if err != nil {
		w.closeAttempt(ctx, attempt, model.AttemptStatusFailed, err.Error())
		return NewServiceError(ErrCodeDatabase, err)
	}

	w.logger.Info("Withdraw transaction paid",
		zap.Int64("transactionID", tx.ID),
		zap.String("transactionRef", tx.TransactionID),
		zap.Int("attemptNumber", attempt.AttemptNumber),
		zap.String("source", source))

	w.emit(ctx, TransactionEvent{
		Name:            EventTransactionPaid,
		TransactionType: model.TransactionTypeWithdraw,
		TransactionID:   tx.ID,
		TransactionRef:  tx.TransactionID,
		ExternalID:      tx.ExternalID,
		Amount:          tx.Amount.StringFixed(2),
		OccurredAt:      now,
	})

	return nil
}

// openAttempt appends the audit row for this try before any state change.
// The row exists even when the try is later refused.
func (w *webhook) openAttempt(ctx context.Context, transactionType string, transactionID int64, source string, payload map[string]any) (*model.WebhookAttempt, error) {
	count, err := w.attemptRepo.CountByTransaction(transactionType, transactionID)
	if err != nil {
		return nil, err
	}

	attempt := &model.WebhookAttempt{
		TransactionType: transactionType,
		TransactionID:   transactionID,
		Status:          model.AttemptStatusPending,
		Source:          source,
		AttemptNumber:   count + 1,
	}
	attempt.Payload, _ = json.Marshal(payload)

	if err := w.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, err
	}

	return attempt, nil
}

func (w *webhook) closeAttempt(ctx context.Context, attempt *model.WebhookAttempt, status, message string) {
	attempt.Status = status
	attempt.ErrorMessage = &message

	if err := w.attemptRepo.Update(ctx, attempt); err != nil {
		w.logger.Error("Failed to update webhook attempt",
			zap.Int64("attemptID", attempt.ID),
			zap.Error(err))
	}
}

// recordOrphan keeps the audit trail for payloads that matched nothing. The
// sentinel transaction id zero marks the row as unmatched.
func (w *webhook) recordOrphan(ctx context.Context, cmd ProcessExternalWebhookCommand, correlationID string) {
	message := fmt.Sprintf("no transaction matches correlation id %s", correlationID)
	attempt := &model.WebhookAttempt{
		TransactionType: cmd.TransactionType,
		TransactionID:   model.OrphanTransactionID,
		Status:          model.AttemptStatusFailed,
		Source:          model.AttemptSourceExternal,
		ErrorMessage:    &message,
		AttemptNumber:   1,
	}
	attempt.Payload, _ = json.Marshal(cmd.Payload)

	if err := w.attemptRepo.Create(ctx, attempt); err != nil {
		w.logger.Error("Failed to record orphan webhook", zap.Error(err))
	}

	w.logger.Warn("Webhook matched no transaction",
		zap.String("transactionType", cmd.TransactionType),
		zap.String("correlationID", correlationID))
}

func (w *webhook) findByCorrelation(transactionType, correlationID string, subacquirerID int64) (int64, string, error) {
	if transactionType == model.TransactionTypeWithdraw {
		tx, err := w.withdrawRepo.FindByCorrelationID(correlationID, subacquirerID)
		if err != nil {
			return 0, "", err
		}
		return tx.ID, tx.TransactionID, nil
	}

	tx, err := w.pixRepo.FindByCorrelationID(correlationID, subacquirerID)
	if err != nil {
		return 0, "", err
	}
	return tx.ID, tx.TransactionID, nil
}

func (w *webhook) emit(ctx context.Context, event TransactionEvent) {
	if w.sink == nil {
		return
	}

	if err := w.sink.Emit(ctx, event); err != nil {
		w.logger.Error("Failed to emit transaction event",
			zap.String("event", event.Name),
			zap.Int64("transactionID", event.TransactionID),
			zap.Error(err))
	}
}

func terminalStatus(transactionType string) model.TransactionStatus {
	if transactionType == model.TransactionTypeWithdraw {
		return model.StatusPaid
	}
	return model.StatusConfirmed
}
