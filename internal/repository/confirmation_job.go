package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("JOB_NOT_FOUND")

type ConfirmationJobRepository interface {
	Create(ctx context.Context, job *model.ConfirmationJob) error
	GetByID(id int64) (*model.ConfirmationJob, error)
	FindDue(now time.Time, limit int) ([]model.ConfirmationJob, error)
	MarkQueued(ctx context.Context, jobID int64) error
	Reschedule(ctx context.Context, jobID int64, attempt int, runAt time.Time, lastError string) error
	Complete(ctx context.Context, jobID int64, attempt int) error
	Fail(ctx context.Context, jobID int64, attempt int, lastError string) error
}

type ConfirmationJob struct {
	db *gorm.DB
}

func NewConfirmationJobRepository(db *gorm.DB) ConfirmationJobRepository {
	return &ConfirmationJob{db: db}
}

func (r *ConfirmationJob) Create(ctx context.Context, job *model.ConfirmationJob) error {
	db := GetTx(ctx, r.db)
	return db.Create(job).Error
}

func (r *ConfirmationJob) GetByID(id int64) (*model.ConfirmationJob, error) {
	var job model.ConfirmationJob

	err := r.db.Where("id = ?", id).First(&job).Error
	if err == nil {
		return &job, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}

	return nil, err
}

func (r *ConfirmationJob) FindDue(now time.Time, limit int) ([]model.ConfirmationJob, error) {
	var jobs []model.ConfirmationJob

	err := r.db.
		Where("state = ? AND published = ? AND run_at <= ?", model.JobStateScheduled, false, now).
		Order("run_at ASC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *ConfirmationJob) MarkQueued(ctx context.Context, jobID int64) error {
	db := GetTx(ctx, r.db)
	now := time.Now()

	return db.Model(&model.ConfirmationJob{}).Where("id = ?", jobID).Updates(map[string]any{
		"state":        model.JobStateQueued,
		"published":    true,
		"published_at": now,
		"updated_at":   now,
	}).Error
}

// Reschedule re-arms a job for another delivery. Published is reset so the
// publisher picks the row up again once run_at passes.
func (r *ConfirmationJob) Reschedule(ctx context.Context, jobID int64, attempt int, runAt time.Time, lastError string) error {
	db := GetTx(ctx, r.db)

	return db.Model(&model.ConfirmationJob{}).Where("id = ?", jobID).Updates(map[string]any{
		"state":        model.JobStateScheduled,
		"published":    false,
		"published_at": nil,
		"attempt":      attempt,
		"run_at":       runAt,
		"last_error":   lastError,
		"updated_at":   time.Now(),
	}).Error
}

func (r *ConfirmationJob) Complete(ctx context.Context, jobID int64, attempt int) error {
	db := GetTx(ctx, r.db)

	return db.Model(&model.ConfirmationJob{}).Where("id = ?", jobID).Updates(map[string]any{
		"state":      model.JobStateDone,
		"attempt":    attempt,
		"updated_at": time.Now(),
	}).Error
}

func (r *ConfirmationJob) Fail(ctx context.Context, jobID int64, attempt int, lastError string) error {
	db := GetTx(ctx, r.db)

	return db.Model(&model.ConfirmationJob{}).Where("id = ?", jobID).Updates(map[string]any{
		"state":      model.JobStateFailed,
		"attempt":    attempt,
		"last_error": lastError,
		"updated_at": time.Now(),
	}).Error
}
