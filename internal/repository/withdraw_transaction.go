package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type WithdrawTransactionRepository interface {
	Create(ctx context.Context, tx *model.WithdrawTransaction) error
	Update(ctx context.Context, tx *model.WithdrawTransaction) error
	GetByID(id int64) (*model.WithdrawTransaction, error)
	GetByTransactionID(transactionID string) (*model.WithdrawTransaction, error)
	FindByCorrelationID(correlationID string, subacquirerID int64) (*model.WithdrawTransaction, error)
	FindOpenOlderThan(cutoff time.Time, limit int) ([]model.WithdrawTransaction, error)
}

type WithdrawTransaction struct {
	db *gorm.DB
}

func NewWithdrawTransactionRepository(db *gorm.DB) WithdrawTransactionRepository {
	return &WithdrawTransaction{db: db}
}

func (r *WithdrawTransaction) Create(ctx context.Context, tx *model.WithdrawTransaction) error {
	db := GetTx(ctx, r.db)
	err := db.Create(tx).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrTransactionDuplicate
	}

	return err
}

func (r *WithdrawTransaction) Update(ctx context.Context, tx *model.WithdrawTransaction) error {
	db := GetTx(ctx, r.db)
	return db.Model(tx).Where("id = ?", tx.ID).Updates(tx).Error
}

func (r *WithdrawTransaction) GetByID(id int64) (*model.WithdrawTransaction, error) {
	var tx model.WithdrawTransaction

	err := r.db.Preload("Subacquirer").Where("id = ?", id).First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}

func (r *WithdrawTransaction) GetByTransactionID(transactionID string) (*model.WithdrawTransaction, error) {
	var tx model.WithdrawTransaction

	err := r.db.Preload("Subacquirer").Where("transaction_id = ?", transactionID).First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}

func (r *WithdrawTransaction) FindByCorrelationID(correlationID string, subacquirerID int64) (*model.WithdrawTransaction, error) {
	var tx model.WithdrawTransaction

	err := r.db.Preload("Subacquirer").
		Where("subacquirer_id = ?", subacquirerID).
		Where("external_id = ? OR transaction_id = ?", correlationID, correlationID).
		First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}

func (r *WithdrawTransaction) FindOpenOlderThan(cutoff time.Time, limit int) ([]model.WithdrawTransaction, error) {
	var txs []model.WithdrawTransaction

	err := r.db.
		Where("status IN (?, ?)", model.StatusPending, model.StatusProcessing).
		Where("created_at < ?", cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	return txs, nil
}
