package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"clearproof_backend/internals/features/modules/model"
)

/* =========================================================
   CREATE
========================================================= */

type CreateModuleRequest struct {
	ModuleTitle          string           `json:"module_title" validate:"required,min=3,max=200"`
	ModuleRawContent     string           `json:"module_raw_content" validate:"omitempty"`
	ModuleNativeLanguage string           `json:"module_native_language" validate:"omitempty,len=2"`
	ModuleAccessCode     *string          `json:"module_access_code" validate:"omitempty,min=4,max=32"`
	ModuleQuestions      *json.RawMessage `json:"module_questions" validate:"omitempty"`
}

func (r *CreateModuleRequest) ToModel(ownerID uuid.UUID) *model.ModuleModel {
	lang := strings.ToLower(strings.TrimSpace(r.ModuleNativeLanguage))
	if lang == "" {
		lang = "en"
	}

	var questions datatypes.JSON
	if r.ModuleQuestions != nil && len(*r.ModuleQuestions) > 0 {
		questions = datatypes.JSON(*r.ModuleQuestions)
	}

	return &model.ModuleModel{
		ModuleOwnerUserID:      ownerID,
		ModuleTitle:            strings.TrimSpace(r.ModuleTitle),
		ModuleRawContent:       r.ModuleRawContent,
		ModuleQuestionsPayload: questions,
		ModuleStatus:           model.ModuleStatusCreated,
		ModuleNativeLanguage:   lang,
	}
}

/* =========================================================
   PATCH (partial)
========================================================= */

type PatchModuleRequest struct {
	ModuleTitle            *string          `json:"module_title" validate:"omitempty,min=3,max=200"`
	ModuleRawContent       *string          `json:"module_raw_content"`
	ModuleProcessedContent *string          `json:"module_processed_content"`
	ModuleNativeLanguage   *string          `json:"module_native_language" validate:"omitempty,len=2"`
	ModuleStatus           *string          `json:"module_status" validate:"omitempty,oneof=created processing ready"`
	ModuleQuestions        *json.RawMessage `json:"module_questions"`
}

func (p *PatchModuleRequest) ApplyToModel(m *model.ModuleModel) {
	if p.ModuleTitle != nil {
		m.ModuleTitle = strings.TrimSpace(*p.ModuleTitle)
	}
	if p.ModuleRawContent != nil {
		m.ModuleRawContent = *p.ModuleRawContent
	}
	if p.ModuleProcessedContent != nil {
		m.ModuleProcessedContent = *p.ModuleProcessedContent
	}
	if p.ModuleNativeLanguage != nil {
		m.ModuleNativeLanguage = strings.ToLower(strings.TrimSpace(*p.ModuleNativeLanguage))
	}
	if p.ModuleStatus != nil {
		m.ModuleStatus = *p.ModuleStatus
	}
	if p.ModuleQuestions != nil {
		m.ModuleQuestionsPayload = datatypes.JSON(*p.ModuleQuestions)
	}
}

/* =========================================================
   RESPONSES
========================================================= */

// ModuleResponse is the manager-facing shape.
type ModuleResponse struct {
	ModuleID             uuid.UUID       `json:"module_id"`
	ModuleTitle          string          `json:"module_title"`
	ModuleStatus         string          `json:"module_status"`
	ModuleNativeLanguage string          `json:"module_native_language"`
	ModuleRawContent     string          `json:"module_raw_content,omitempty"`
	ModuleProcessed      string          `json:"module_processed_content,omitempty"`
	ModuleQuestions      json.RawMessage `json:"module_questions,omitempty"`
	ModuleSourceFileURL  *string         `json:"module_source_file_url,omitempty"`
	ModuleHasAccessCode  bool            `json:"module_has_access_code"`
	ModuleCreatedAt      time.Time       `json:"module_created_at"`
	ModuleUpdatedAt      time.Time       `json:"module_updated_at"`
}

func NewModuleResponse(m *model.ModuleModel) *ModuleResponse {
	return &ModuleResponse{
		ModuleID:             m.ModuleID,
		ModuleTitle:          m.ModuleTitle,
		ModuleStatus:         m.ModuleStatus,
		ModuleNativeLanguage: m.ModuleNativeLanguage,
		ModuleRawContent:     m.ModuleRawContent,
		ModuleProcessed:      m.ModuleProcessedContent,
		ModuleQuestions:      json.RawMessage(m.ModuleQuestionsPayload),
		ModuleSourceFileURL:  m.ModuleSourceFileURL,
		ModuleHasAccessCode:  m.ModuleAccessCodeHash != nil,
		ModuleCreatedAt:      m.ModuleCreatedAt,
		ModuleUpdatedAt:      m.ModuleUpdatedAt,
	}
}

// PublicModuleResponse is what the unauthenticated worker link sees:
// no raw content, no question set, no owner.
type PublicModuleResponse struct {
	ModuleID            uuid.UUID `json:"module_id"`
	ModuleTitle         string    `json:"module_title"`
	ModuleStatus        string    `json:"module_status"`
	ModuleReady         bool      `json:"module_ready"`
	ModuleHasAccessCode bool      `json:"module_has_access_code"`
}

func NewPublicModuleResponse(m *model.ModuleModel) *PublicModuleResponse {
	return &PublicModuleResponse{
		ModuleID:            m.ModuleID,
		ModuleTitle:         m.ModuleTitle,
		ModuleStatus:        m.ModuleStatus,
		ModuleReady:         m.IsReady(),
		ModuleHasAccessCode: m.ModuleAccessCodeHash != nil,
	}
}
