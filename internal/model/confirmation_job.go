package model

import "time"

const (
	JobStateScheduled = "SCHEDULED"
	JobStateQueued    = "QUEUED"
	JobStateDone      = "DONE"
	JobStateFailed    = "FAILED"
)

// ConfirmationJob is the task record behind the delayed webhook simulation:
// one row per pending delivery, re-armed with a longer delay on each failed
// attempt until the attempt budget runs out.
type ConfirmationJob struct {
	ID              int64      `gorm:"primaryKey;autoIncrement;<-:create"`
	TransactionType string     `gorm:"column:transaction_type;type:varchar(20);not null;index:idx_job_tx"`
	TransactionID   int64      `gorm:"column:transaction_id;not null;index:idx_job_tx"`
	State           string     `gorm:"type:varchar(20);not null;index"`
	RunAt           time.Time  `gorm:"column:run_at;not null;index"`
	Attempt         int        `gorm:"default:0;not null"`
	Published       bool       `gorm:"default:false;not null"`
	PublishedAt     *time.Time `gorm:"column:published_at"`
	LastError       *string    `gorm:"column:last_error;type:text"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}
