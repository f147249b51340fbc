package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Module lifecycle: created → processing → ready.
const (
	ModuleStatusCreated    = "created"
	ModuleStatusProcessing = "processing"
	ModuleStatusReady      = "ready"
)

type ModuleModel struct {
	ModuleID          uuid.UUID `gorm:"column:module_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"module_id"`
	ModuleOwnerUserID uuid.UUID `gorm:"column:module_owner_user_id;type:uuid;not null" json:"module_owner_user_id"`

	ModuleTitle            string         `gorm:"column:module_title;type:varchar(200);not null" json:"module_title"`
	ModuleRawContent       string         `gorm:"column:module_raw_content;type:text" json:"module_raw_content,omitempty"`
	ModuleProcessedContent string         `gorm:"column:module_processed_content;type:text" json:"module_processed_content,omitempty"`
	ModuleQuestionsPayload datatypes.JSON `gorm:"column:module_questions_payload;type:jsonb" json:"module_questions_payload,omitempty"`

	ModuleStatus         string `gorm:"column:module_status;type:varchar(16);not null;default:'created'" json:"module_status"`
	ModuleNativeLanguage string `gorm:"column:module_native_language;type:varchar(8);not null;default:'en'" json:"module_native_language"`

	ModuleSourceFileURL  *string `gorm:"column:module_source_file_url;type:text" json:"module_source_file_url,omitempty"`
	ModuleSourceFileKind *int    `gorm:"column:module_source_file_kind;type:int" json:"module_source_file_kind,omitempty"`

	// optional worker-link protection; bcrypt hash, never exposed
	ModuleAccessCodeHash *string `gorm:"column:module_access_code_hash;type:text" json:"-"`

	ModuleCreatedAt time.Time      `gorm:"column:module_created_at;autoCreateTime" json:"module_created_at"`
	ModuleUpdatedAt time.Time      `gorm:"column:module_updated_at;autoUpdateTime" json:"module_updated_at"`
	ModuleDeletedAt gorm.DeletedAt `gorm:"column:module_deleted_at;index" json:"module_deleted_at,omitempty"`
}

func (ModuleModel) TableName() string { return "modules" }

func (m *ModuleModel) IsReady() bool {
	return m.ModuleStatus == ModuleStatusReady && m.ModuleProcessedContent != ""
}
