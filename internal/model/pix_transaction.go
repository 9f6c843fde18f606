package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	StatusPending    TransactionStatus = "PENDING"
	StatusProcessing TransactionStatus = "PROCESSING"
	StatusConfirmed  TransactionStatus = "CONFIRMED"
	StatusPaid       TransactionStatus = "PAID"
	StatusFailed     TransactionStatus = "FAILED"
	StatusCancelled  TransactionStatus = "CANCELLED"
)

// IsOpen reports whether a transaction can still be confirmed. Everything
// outside PENDING/PROCESSING is terminal and must never be transitioned again.
func (s TransactionStatus) IsOpen() bool {
	return s == StatusPending || s == StatusProcessing
}

type PixTransaction struct {
	ID            int64             `gorm:"primaryKey;autoIncrement;<-:create"`
	OwnerID       int64             `gorm:"column:owner_id;not null;index"`
	SubacquirerID int64             `gorm:"column:subacquirer_id;not null;index"`
	TransactionID string            `gorm:"column:transaction_id;type:varchar(64);uniqueIndex"`
	ExternalID    *string           `gorm:"column:external_id;type:varchar(191);index"`
	Amount        decimal.Decimal   `gorm:"type:decimal(10,2);not null"`
	PixKey        string            `gorm:"column:pix_key;type:varchar(255);not null"`
	PixKeyType    string            `gorm:"column:pix_key_type;type:varchar(20);not null"`
	Status        TransactionStatus `gorm:"type:varchar(20);not null"`
	Description   string            `gorm:"type:varchar(500)"`
	RequestData   datatypes.JSON    `gorm:"column:request_data"`
	ResponseData  datatypes.JSON    `gorm:"column:response_data"`
	WebhookData   datatypes.JSON    `gorm:"column:webhook_data"`
	ConfirmedAt   *time.Time        `gorm:"column:confirmed_at"`
	CreatedAt     time.Time         `gorm:"column:created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at"`

	Subacquirer Subacquirer `gorm:"foreignKey:SubacquirerID"`
}
