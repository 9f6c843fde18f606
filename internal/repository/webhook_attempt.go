package repository

import (
	"context"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"gorm.io/gorm"
)

type WebhookAttemptRepository interface {
	Create(ctx context.Context, attempt *model.WebhookAttempt) error
	Update(ctx context.Context, attempt *model.WebhookAttempt) error
	CountByTransaction(transactionType string, transactionID int64) (int, error)
	ListByTransaction(transactionType string, transactionID int64) ([]model.WebhookAttempt, error)
}

type WebhookAttempt struct {
	db *gorm.DB
}

func NewWebhookAttemptRepository(db *gorm.DB) WebhookAttemptRepository {
	return &WebhookAttempt{db: db}
}

func (r *WebhookAttempt) Create(ctx context.Context, attempt *model.WebhookAttempt) error {
	db := GetTx(ctx, r.db)
	return db.Create(attempt).Error
}

func (r *WebhookAttempt) Update(ctx context.Context, attempt *model.WebhookAttempt) error {
	db := GetTx(ctx, r.db)
	return db.Model(attempt).Where("id = ?", attempt.ID).Updates(attempt).Error
}

func (r *WebhookAttempt) CountByTransaction(transactionType string, transactionID int64) (int, error) {
	var count int64

	err := r.db.Model(&model.WebhookAttempt{}).
		Where("transaction_type = ? AND transaction_id = ?", transactionType, transactionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

func (r *WebhookAttempt) ListByTransaction(transactionType string, transactionID int64) ([]model.WebhookAttempt, error) {
	var attempts []model.WebhookAttempt

	err := r.db.
		Where("transaction_type = ? AND transaction_id = ?", transactionType, transactionID).
		Order("attempt_number ASC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}

	return attempts, nil
}
