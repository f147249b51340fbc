package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"clearproof_backend/internals/configs"
	bdto "clearproof_backend/internals/features/billing/dto"
	bmodel "clearproof_backend/internals/features/billing/model"
	bservice "clearproof_backend/internals/features/billing/service"
	helper "clearproof_backend/internals/helpers"
	helperAuth "clearproof_backend/internals/helpers/auth"
)

type BillingController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewBillingController(db *gorm.DB) *BillingController {
	return &BillingController{DB: db, Validator: validator.New()}
}

// GetSubscription - GET /api/billing/subscription (auth). No row
// means the free plan.
func (ctl *BillingController) GetSubscription(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var m bmodel.SubscriptionModel
	if err := ctl.DB.
		Where("subscription_user_id = ?", userID).
		Order("subscription_updated_at DESC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Success(c, "OK", bdto.NewSubscriptionResponse(nil))
		}
		log.Println("[ERROR] get subscription:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.Success(c, "OK", bdto.NewSubscriptionResponse(&m))
}

// CreateCheckout - POST /api/billing/checkout (auth)
func (ctl *BillingController) CreateCheckout(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req bdto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	amount := bmodel.PlanAmount(req.Plan)
	if req.Plan == bmodel.PlanEnterprise {
		return helper.Error(c, fiber.StatusConflict, "Enterprise plans are sales-led; contact hello@clearproof.co.uk")
	}

	orderID := "cp-" + uuid.NewString()
	token, redirect, err := bservice.GenerateSnapToken(orderID, req.Plan, req.Email, amount)
	if err != nil {
		log.Println("[ERROR] snap token:", err)
		return helper.Error(c, fiber.StatusBadGateway, "Checkout is unavailable right now")
	}

	sub := &bmodel.SubscriptionModel{
		SubscriptionUserID:  userID,
		SubscriptionPlan:    req.Plan,
		SubscriptionStatus:  bmodel.SubscriptionStatusPending,
		SubscriptionOrderID: orderID,
		SubscriptionEmail:   strings.ToLower(strings.TrimSpace(req.Email)),
	}
	if err := ctl.DB.Create(sub).Error; err != nil {
		log.Println("[ERROR] save pending subscription:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Checkout created", bdto.CheckoutResponse{
		OrderID:     orderID,
		Token:       token,
		RedirectURL: redirect,
	})
}

// CreatePortal - POST /api/billing/portal (auth). Self-service plan
// management lives in the frontend account area.
func (ctl *BillingController) CreatePortal(c *fiber.Ctx) error {
	if _, err := helperAuth.GetUserIDFromToken(c); err != nil {
		return err
	}

	return helper.Success(c, "OK", fiber.Map{
		"url": strings.TrimRight(configs.FrontendURL, "/") + "/account/billing",
	})
}
