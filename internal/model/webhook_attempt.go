package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TransactionTypePix      = "pix"
	TransactionTypeWithdraw = "withdraw"
)

const (
	AttemptStatusPending = "pending"
	AttemptStatusSuccess = "success"
	AttemptStatusFailed  = "failed"
)

const (
	AttemptSourceSimulation = "simulation"
	AttemptSourceExternal   = "external"
)

// OrphanTransactionID marks attempts whose payload matched no stored
// transaction. The row still lands in the audit trail.
const OrphanTransactionID int64 = 0

// WebhookAttempt is the append-only audit record of one confirmation try.
// Rows are created before processing and updated with the outcome, never
// deleted.
type WebhookAttempt struct {
	ID              int64          `gorm:"primaryKey;autoIncrement;<-:create"`
	TransactionType string         `gorm:"column:transaction_type;type:varchar(20);not null;index:idx_attempt_tx"`
	TransactionID   int64          `gorm:"column:transaction_id;not null;index:idx_attempt_tx"`
	Status          string         `gorm:"type:varchar(20);not null"`
	Source          string         `gorm:"type:varchar(20);not null"`
	Payload         datatypes.JSON `gorm:"column:payload"`
	Response        datatypes.JSON `gorm:"column:response"`
	ErrorMessage    *string        `gorm:"column:error_message;type:text"`
	AttemptNumber   int            `gorm:"column:attempt_number;not null"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
}
