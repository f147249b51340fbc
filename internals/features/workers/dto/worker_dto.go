package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"clearproof_backend/internals/features/workers/model"
)

type CreateWorkerRequest struct {
	WorkerCode      string   `json:"worker_code" validate:"required,min=1,max=64"`
	WorkerName      string   `json:"worker_name" validate:"required,min=2,max=120"`
	WorkerLanguages []string `json:"worker_languages" validate:"omitempty,dive,len=2"`
}

func (r *CreateWorkerRequest) ToModel(ownerID uuid.UUID) *model.WorkerModel {
	langs := make(pq.StringArray, 0, len(r.WorkerLanguages))
	for _, l := range r.WorkerLanguages {
		langs = append(langs, strings.ToLower(strings.TrimSpace(l)))
	}
	return &model.WorkerModel{
		WorkerUser:      ownerID,
		WorkerCode:      strings.TrimSpace(r.WorkerCode),
		WorkerName:      strings.TrimSpace(r.WorkerName),
		WorkerLanguages: langs,
	}
}

type WorkerResponse struct {
	WorkerID        uuid.UUID `json:"worker_id"`
	WorkerCode      string    `json:"worker_code"`
	WorkerName      string    `json:"worker_name"`
	WorkerLanguages []string  `json:"worker_languages"`
	WorkerCreatedAt time.Time `json:"worker_created_at"`
}

func NewWorkerResponse(m *model.WorkerModel) *WorkerResponse {
	return &WorkerResponse{
		WorkerID:        m.WorkerID,
		WorkerCode:      m.WorkerCode,
		WorkerName:      m.WorkerName,
		WorkerLanguages: m.WorkerLanguages,
		WorkerCreatedAt: m.WorkerCreatedAt,
	}
}
