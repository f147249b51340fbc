package dto

import (
	"time"

	"clearproof_backend/internals/features/billing/model"
)

type CheckoutRequest struct {
	Plan  string `json:"plan" validate:"required,oneof=starter professional enterprise"`
	Email string `json:"email" validate:"required,email"`
}

type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

type SubscriptionResponse struct {
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func NewSubscriptionResponse(m *model.SubscriptionModel) *SubscriptionResponse {
	if m == nil {
		return &SubscriptionResponse{Plan: model.PlanFree, Status: model.SubscriptionStatusActive}
	}
	t := m.SubscriptionUpdatedAt
	return &SubscriptionResponse{
		Plan:      m.SubscriptionPlan,
		Status:    m.SubscriptionStatus,
		UpdatedAt: &t,
	}
}
