package model

import (
	"time"

	"gorm.io/datatypes"
)

type Subacquirer struct {
	ID        int64          `gorm:"primaryKey;autoIncrement;<-:create"`
	Name      string         `gorm:"type:varchar(100);not null"`
	Code      string         `gorm:"type:varchar(50);uniqueIndex;not null"`
	BaseURL   string         `gorm:"column:base_url;type:varchar(255);not null"`
	Config    datatypes.JSON `gorm:"column:config"`
	IsActive  bool           `gorm:"column:is_active;default:true;not null"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}
