package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VerificationModel is one completed comprehension attempt. Created
// only by a successful submission; never updated afterwards.
type VerificationModel struct {
	VerificationID       uuid.UUID `gorm:"column:verification_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"verification_id"`
	VerificationModuleID uuid.UUID `gorm:"column:verification_module_id;type:uuid;not null;index" json:"verification_module_id"`

	VerificationWorkerName string `gorm:"column:verification_worker_name;type:varchar(120);not null" json:"verification_worker_name"`
	VerificationWorkerID   string `gorm:"column:verification_worker_id;type:varchar(64);not null" json:"verification_worker_id"`

	VerificationLanguageUsed string         `gorm:"column:verification_language_used;type:varchar(8);not null" json:"verification_language_used"`
	VerificationAnswers      datatypes.JSON `gorm:"column:verification_answers;type:jsonb" json:"verification_answers,omitempty"`

	VerificationScore  int  `gorm:"column:verification_score;type:int;not null" json:"verification_score"`
	VerificationPassed bool `gorm:"column:verification_passed;not null" json:"verification_passed"`

	VerificationCompletedAt time.Time      `gorm:"column:verification_completed_at;not null" json:"verification_completed_at"`
	VerificationCreatedAt   time.Time      `gorm:"column:verification_created_at;autoCreateTime" json:"verification_created_at"`
	VerificationDeletedAt   gorm.DeletedAt `gorm:"column:verification_deleted_at;index" json:"verification_deleted_at,omitempty"`
}

func (VerificationModel) TableName() string { return "verifications" }
