package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type WithdrawTransaction struct {
	ID             int64             `gorm:"primaryKey;autoIncrement;<-:create"`
	OwnerID        int64             `gorm:"column:owner_id;not null;index"`
	SubacquirerID  int64             `gorm:"column:subacquirer_id;not null;index"`
	TransactionID  string            `gorm:"column:transaction_id;type:varchar(64);uniqueIndex"`
	ExternalID     *string           `gorm:"column:external_id;type:varchar(191);index"`
	Amount         decimal.Decimal   `gorm:"type:decimal(10,2);not null"`
	BankCode       string            `gorm:"column:bank_code;type:varchar(10);not null"`
	Agency         string            `gorm:"type:varchar(20);not null"`
	Account        string            `gorm:"type:varchar(20);not null"`
	AccountType    string            `gorm:"column:account_type;type:varchar(10);not null"`
	HolderName     string            `gorm:"column:account_holder_name;type:varchar(255);not null"`
	HolderDocument string            `gorm:"column:account_holder_document;type:varchar(20);not null"`
	Status         TransactionStatus `gorm:"type:varchar(20);not null"`
	Description    string            `gorm:"type:varchar(500)"`
	RequestData    datatypes.JSON    `gorm:"column:request_data"`
	ResponseData   datatypes.JSON    `gorm:"column:response_data"`
	WebhookData    datatypes.JSON    `gorm:"column:webhook_data"`
	PaidAt         *time.Time        `gorm:"column:paid_at"`
	CreatedAt      time.Time         `gorm:"column:created_at"`
	UpdatedAt      time.Time         `gorm:"column:updated_at"`

	Subacquirer Subacquirer `gorm:"foreignKey:SubacquirerID"`
}
