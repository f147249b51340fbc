// Public processing endpoints consumed by the worker-facing frontend.
// They are thin passthroughs to the AI service; the rate limiter in
// front of them is the real guard.
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"clearproof_backend/internals/configs"
	pdto "clearproof_backend/internals/features/process/dto"
	"clearproof_backend/internals/gateway"
	helper "clearproof_backend/internals/helpers"
)

type ProcessController struct {
	Gateway   gateway.ContentGateway
	Validator *validator.Validate
}

func NewProcessController(gw gateway.ContentGateway) *ProcessController {
	return &ProcessController{Gateway: gw, Validator: validator.New()}
}

// Translate - POST /api/process/translate (public)
func (ctl *ProcessController) Translate(c *fiber.Ctx) error {
	var req pdto.TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	translated, err := ctl.Gateway.Translate(c.UserContext(), req.Content, req.Language)
	if err != nil {
		log.Println("[ERROR] translate:", err)
		return helper.Error(c, fiber.StatusBadGateway, "Translation failed")
	}

	return helper.Success(c, "OK", pdto.TranslateResponse{Translated: translated})
}

// Questions - POST /api/process/questions (public)
func (ctl *ProcessController) Questions(c *fiber.Ctx) error {
	var req pdto.QuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	payload, err := ctl.Gateway.GenerateQuestions(c.UserContext(), req.Content, req.Language, configs.QuestionCount)
	if err != nil {
		log.Println("[ERROR] generate questions:", err)
		return helper.Error(c, fiber.StatusBadGateway, "Question generation failed")
	}

	return helper.Success(c, "OK", pdto.QuestionsResponse{Questions: []byte(payload)})
}
