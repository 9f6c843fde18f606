package repository

import (
	"errors"
	"strings"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"gorm.io/gorm"
)

var ErrSubacquirerNotFound = errors.New("SUBACQUIRER_NOT_FOUND")

type SubacquirerRepository interface {
	GetByID(id int64) (*model.Subacquirer, error)
	GetByCode(code string) (*model.Subacquirer, error)
	GetActiveByCode(code string) (*model.Subacquirer, error)
}

type Subacquirer struct {
	db *gorm.DB
}

func NewSubacquirerRepository(db *gorm.DB) SubacquirerRepository {
	return &Subacquirer{db: db}
}

func (r *Subacquirer) GetByID(id int64) (*model.Subacquirer, error) {
	var sub model.Subacquirer

	err := r.db.Where("id = ?", id).First(&sub).Error
	if err == nil {
		return &sub, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubacquirerNotFound
	}

	return nil, err
}

func (r *Subacquirer) GetByCode(code string) (*model.Subacquirer, error) {
	var sub model.Subacquirer

	err := r.db.Where("code = ?", strings.ToLower(code)).First(&sub).Error
	if err == nil {
		return &sub, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubacquirerNotFound
	}

	return nil, err
}

func (r *Subacquirer) GetActiveByCode(code string) (*model.Subacquirer, error) {
	var sub model.Subacquirer

	err := r.db.Where("code = ? AND is_active = ?", strings.ToLower(code), true).First(&sub).Error
	if err == nil {
		return &sub, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubacquirerNotFound
	}

	return nil, err
}
