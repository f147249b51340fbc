package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type WorkerModel struct {
	WorkerID   uuid.UUID `gorm:"column:worker_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"worker_id"`
	WorkerUser uuid.UUID `gorm:"column:worker_user_id;type:uuid;not null;uniqueIndex:uq_workers_user_code,priority:1" json:"worker_user_id"`

	// external badge/payroll code, what workers type on the info step
	WorkerCode string `gorm:"column:worker_code;type:varchar(64);not null;uniqueIndex:uq_workers_user_code,priority:2" json:"worker_code"`
	WorkerName string `gorm:"column:worker_name;type:varchar(120);not null" json:"worker_name"`

	WorkerLanguages pq.StringArray `gorm:"column:worker_languages;type:text[]" json:"worker_languages,omitempty"`

	WorkerCreatedAt time.Time      `gorm:"column:worker_created_at;autoCreateTime" json:"worker_created_at"`
	WorkerUpdatedAt time.Time      `gorm:"column:worker_updated_at;autoUpdateTime" json:"worker_updated_at"`
	WorkerDeletedAt gorm.DeletedAt `gorm:"column:worker_deleted_at;index" json:"worker_deleted_at,omitempty"`
}

func (WorkerModel) TableName() string { return "workers" }
