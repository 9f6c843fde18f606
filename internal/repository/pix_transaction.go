package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("TRANSACTION_NOT_FOUND")
var ErrTransactionDuplicate = errors.New("TRANSACTION_DUPLICATE")

type PixTransactionRepository interface {
	Create(ctx context.Context, tx *model.PixTransaction) error
	Update(ctx context.Context, tx *model.PixTransaction) error
	GetByID(id int64) (*model.PixTransaction, error)
	GetByTransactionID(transactionID string) (*model.PixTransaction, error)
	FindByCorrelationID(correlationID string, subacquirerID int64) (*model.PixTransaction, error)
	FindOpenOlderThan(cutoff time.Time, limit int) ([]model.PixTransaction, error)
}

type PixTransaction struct {
	db *gorm.DB
}

func NewPixTransactionRepository(db *gorm.DB) PixTransactionRepository {
	return &PixTransaction{db: db}
}

func (r *PixTransaction) Create(ctx context.Context, tx *model.PixTransaction) error {
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

func (r *PixTransaction) Update(ctx context.Context, tx *model.PixTransaction) error {
	db := GetTx(ctx, r.db)
	return db.Model(tx).Where("id = ?", tx.ID).Updates(tx).Error
}

func (r *PixTransaction) GetByID(id int64) (*model.PixTransaction, error) {
	var tx model.PixTransaction

	err := r.db.Preload("Subacquirer").Where("id = ?", id).First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}

func (r *PixTransaction) GetByTransactionID(transactionID string) (*model.PixTransaction, error) {
	var tx model.PixTransaction

	err := r.db.Preload("Subacquirer").Where("transaction_id = ?", transactionID).First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}

func (r *PixTransaction) FindByCorrelationID(correlationID string, subacquirerID int64) (*model.PixTransaction, error) {
	var tx model.PixTransaction

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

func (r *PixTransaction) FindOpenOlderThan(cutoff time.Time, limit int) ([]model.PixTransaction, error) {
	var txs []model.PixTransaction

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
