package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"clearproof_backend/internals/features/verifications/model"
)

// CreateVerificationRequest is the public submission payload. Field
// names are part of the worker-flow wire contract.
type CreateVerificationRequest struct {
	ModuleID     uuid.UUID  `json:"module_id" validate:"required"`
	WorkerName   string     `json:"worker_name" validate:"required,min=1,max=120"`
	WorkerID     string     `json:"worker_id" validate:"required,min=1,max=64"`
	LanguageUsed string     `json:"language_used" validate:"required,len=2"`
	Answers      []int      `json:"answers" validate:"omitempty"`
	Score        int        `json:"score" validate:"gte=0,lte=100"`
	Passed       bool       `json:"passed"`
	CompletedAt  *time.Time `json:"completed_at"`
}

func (r *CreateVerificationRequest) ToModel() *model.VerificationModel {
	completed := time.Now().UTC()
	if r.CompletedAt != nil {
		completed = r.CompletedAt.UTC()
	}

	var answers datatypes.JSON
	if r.Answers != nil {
		if b, err := json.Marshal(r.Answers); err == nil {
			answers = b
		}
	}

	return &model.VerificationModel{
		VerificationModuleID:     r.ModuleID,
		VerificationWorkerName:   r.WorkerName,
		VerificationWorkerID:     r.WorkerID,
		VerificationLanguageUsed: r.LanguageUsed,
		VerificationAnswers:      answers,
		VerificationScore:        r.Score,
		VerificationPassed:       r.Passed,
		VerificationCompletedAt:  completed,
	}
}

type VerificationResponse struct {
	VerificationID uuid.UUID `json:"verification_id"`
	ModuleID       uuid.UUID `json:"module_id"`
	ModuleTitle    string    `json:"module_title,omitempty"`
	WorkerName     string    `json:"worker_name"`
	WorkerID       string    `json:"worker_id"`
	LanguageUsed   string    `json:"language_used"`
	Score          int       `json:"score"`
	Passed         bool      `json:"passed"`
	CompletedAt    time.Time `json:"completed_at"`
}

func NewVerificationResponse(m *model.VerificationModel, moduleTitle string) *VerificationResponse {
	return &VerificationResponse{
		VerificationID: m.VerificationID,
		ModuleID:       m.VerificationModuleID,
		ModuleTitle:    moduleTitle,
		WorkerName:     m.VerificationWorkerName,
		WorkerID:       m.VerificationWorkerID,
		LanguageUsed:   m.VerificationLanguageUsed,
		Score:          m.VerificationScore,
		Passed:         m.VerificationPassed,
		CompletedAt:    m.VerificationCompletedAt,
	}
}
