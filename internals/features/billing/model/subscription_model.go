package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PlanFree         = "free"
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

const (
	SubscriptionStatusPending  = "pending"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
)

type SubscriptionModel struct {
	SubscriptionID     uuid.UUID `gorm:"column:subscription_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"subscription_id"`
	SubscriptionUserID uuid.UUID `gorm:"column:subscription_user_id;type:uuid;not null;index" json:"subscription_user_id"`

	SubscriptionPlan   string `gorm:"column:subscription_plan;type:varchar(24);not null;default:'free'" json:"subscription_plan"`
	SubscriptionStatus string `gorm:"column:subscription_status;type:varchar(16);not null;default:'pending'" json:"subscription_status"`

	SubscriptionOrderID string `gorm:"column:subscription_order_id;type:varchar(64)" json:"subscription_order_id,omitempty"`
	SubscriptionEmail   string `gorm:"column:subscription_email;type:varchar(200)" json:"subscription_email,omitempty"`

	SubscriptionCreatedAt time.Time      `gorm:"column:subscription_created_at;autoCreateTime" json:"subscription_created_at"`
	SubscriptionUpdatedAt time.Time      `gorm:"column:subscription_updated_at;autoUpdateTime" json:"subscription_updated_at"`
	SubscriptionDeletedAt gorm.DeletedAt `gorm:"column:subscription_deleted_at;index" json:"subscription_deleted_at,omitempty"`
}

func (SubscriptionModel) TableName() string { return "subscriptions" }

// PlanAmount is the monthly price in pence. Zero means no checkout is
// needed (free) or sales-led (enterprise).
func PlanAmount(plan string) int64 {
	switch plan {
	case PlanStarter:
		return 3900
	case PlanProfessional:
		return 9900
	case PlanEnterprise:
		return 24900
	default:
		return 0
	}
}
