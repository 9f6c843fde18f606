package service

import (
	"context"
	"errors"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/repository"
	"go.uber.org/zap"
)

type TransactionQueryService interface {
	GetPixStatus(ctx context.Context, transactionRef string) (TransactionStatusResponse, error)
	GetWithdrawStatus(ctx context.Context, transactionRef string) (TransactionStatusResponse, error)
}

type transactionQuery struct {
	pixRepo      repository.PixTransactionRepository
	withdrawRepo repository.WithdrawTransactionRepository
	attemptRepo  repository.WebhookAttemptRepository
	logger       *zap.Logger
}

func NewTransactionQueryService(pixRepo repository.PixTransactionRepository,
	withdrawRepo repository.WithdrawTransactionRepository,
	attemptRepo repository.WebhookAttemptRepository, logger *zap.Logger) TransactionQueryService {
	return &transactionQuery{pixRepo: pixRepo, withdrawRepo: withdrawRepo, attemptRepo: attemptRepo, logger: logger}
}

func (q *transactionQuery) GetPixStatus(ctx context.Context, transactionRef string) (TransactionStatusResponse, error) {
	tx, err := q.pixRepo.GetByTransactionID(transactionRef)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return TransactionStatusResponse{}, ErrTransactionNotFound
		}
		q.logger.Error("Failed to load pix transaction", zap.String("transactionRef", transactionRef), zap.Error(err))
		return TransactionStatusResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	attempts, err := q.listAttempts(model.TransactionTypePix, tx.ID)
	if err != nil {
		return TransactionStatusResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	return TransactionStatusResponse{
		TransactionID: tx.TransactionID,
		Type:          model.TransactionTypePix,
		Status:        string(tx.Status),
		Amount:        tx.Amount.StringFixed(2),
		ExternalID:    tx.ExternalID,
		Subacquirer:   tx.Subacquirer.Code,
		ConfirmedAt:   formatTime(tx.ConfirmedAt),
		CreatedAt:     tx.CreatedAt.UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}, nil
}

func (q *transactionQuery) GetWithdrawStatus(ctx context.Context, transactionRef string) (TransactionStatusResponse, error) {
	tx, err := q.withdrawRepo.GetByTransactionID(transactionRef)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return TransactionStatusResponse{}, ErrTransactionNotFound
		}
		q.logger.Error("Failed to load withdraw transaction", zap.String("transactionRef", transactionRef), zap.Error(err))
		return TransactionStatusResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	attempts, err := q.listAttempts(model.TransactionTypeWithdraw, tx.ID)
	if err != nil {
		return TransactionStatusResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	return TransactionStatusResponse{
		TransactionID: tx.TransactionID,
		Type:          model.TransactionTypeWithdraw,
		Status:        string(tx.Status),
		Amount:        tx.Amount.StringFixed(2),
		ExternalID:    tx.ExternalID,
		Subacquirer:   tx.Subacquirer.Code,
		PaidAt:        formatTime(tx.PaidAt),
		CreatedAt:     tx.CreatedAt.UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}, nil
}

func (q *transactionQuery) listAttempts(transactionType string, transactionID int64) ([]WebhookAttempt, error) {
	rows, err := q.attemptRepo.ListByTransaction(transactionType, transactionID)
	if err != nil {
		q.logger.Error("Failed to list webhook attempts",
			zap.String("transactionType", transactionType),
			zap.Int64("transactionID", transactionID),
			zap.Error(err))
		return nil, err
	}

	attempts := make([]WebhookAttempt, 0, len(rows))
	for _, row := range rows {
		attempts = append(attempts, WebhookAttempt{
			AttemptNumber: row.AttemptNumber,
			Status:        row.Status,
			Source:        row.Source,
			Error:         row.ErrorMessage,
			CreatedAt:     row.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return attempts, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}
