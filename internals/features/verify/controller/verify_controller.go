package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	vdto "clearproof_backend/internals/features/verify/dto"
	"clearproof_backend/internals/features/verify/session"
	helper "clearproof_backend/internals/helpers"
)

// VerifyController exposes the worker flow over HTTP: one endpoint
// per transition, all public, all keyed by the ephemeral session id.
type VerifyController struct {
	Machine   *session.Machine
	Store     *session.Store
	Validator *validator.Validate
}

func NewVerifyController(machine *session.Machine, store *session.Store) *VerifyController {
	return &VerifyController{
		Machine:   machine,
		Store:     store,
		Validator: validator.New(),
	}
}

// Start - POST /api/verify/:module_id/start
func (ctl *VerifyController) Start(c *fiber.Ctx) error {
	moduleID := strings.TrimSpace(c.Params("module_id"))
	if moduleID == "" {
		return helper.Error(c, fiber.StatusNotFound, "Module not found")
	}

	s, err := ctl.Machine.Start(c.UserContext(), moduleID)
	if err != nil {
		if errors.Is(err, session.ErrModuleNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "This module does not exist or has been removed")
		}
		log.Println("[ERROR] verify start:", err)
		return helper.Error(c, fiber.StatusBadGateway, "Could not load the module")
	}

	ctl.Store.Put(s)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Session started", vdto.NewStateResponse(s.Snapshot()))
}

// State - GET /api/verify/session/:session_id
func (ctl *VerifyController) State(c *fiber.Ctx) error {
	s, ok := ctl.session(c)
	if !ok {
		return helper.Error(c, fiber.StatusNotFound, "Session not found or expired")
	}
	return helper.Success(c, "OK", vdto.NewStateResponse(s.Snapshot()))
}

// SelectLanguage - POST /api/verify/session/:session_id/language
func (ctl *VerifyController) SelectLanguage(c *fiber.Ctx) error {
	s, ok := ctl.session(c)
	if !ok {
		return helper.Error(c, fiber.StatusNotFound, "Session not found or expired")
	}

	var req vdto.SelectLanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctl.Machine.SelectLanguage(s, strings.ToLower(req.Language)); err != nil {
		return ctl.transitionError(c, s, err)
	}
	return helper.Success(c, "Language selected", vdto.NewStateResponse(s.Snapshot()))
}

// SubmitInfo - POST /api/verify/session/:session_id/info
func (ctl *VerifyController) SubmitInfo(c *fiber.Ctx) error {
	s, ok := ctl.session(c)
	if !ok {
		return helper.Error(c, fiber.StatusNotFound, "Session not found or expired")
	}

	var req vdto.SubmitInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	err := ctl.Machine.SubmitInfo(c.UserContext(), s,
		strings.TrimSpace(req.WorkerName), strings.TrimSpace(req.WorkerID))
	if err != nil {
		return ctl.transitionError(c, s, err)
	}
	return helper.Success(c, "Content ready", vdto.NewStateResponse(s.Snapshot()))
}

// AcknowledgeRead - POST /api/verify/session/:session_id/read
func (ctl *VerifyController) AcknowledgeRead(c *fiber.Ctx) error {
	s, ok := ctl.session(c)
	if !ok {
		return helper.Error(c, fiber.StatusNotFound, "Session not found or expired")
	}

	if err := ctl.Machine.AcknowledgeRead(c.UserContext(), s); err != nil {
		return ctl.transitionError(c, s, err)
	}
	return helper.Success(c, "Questions ready", vdto.NewStateResponse(s.Snapshot()))
}

// Answer - POST /api/verify/session/:session_id/answer
func (ctl *VerifyController) Answer(c *fiber.Ctx) error {
	s, ok := ctl.session(c)
	if !ok {
		return helper.Error(c, fiber.StatusNotFound, "Session not found or expired")
	}

	var req vdto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := ctl.Machine.Answer(s, req.OptionIndex); err != nil {
		return ctl.transitionError(c, s, err)
	}
	return helper.Success(c, "Answer recorded", vdto.NewStateResponse(s.Snapshot()))
}

// Next - POST /api/verify/session/:session_id/next
func (ctl *VerifyController) Next(c *fiber.Ctx) error {
	s, ok := ctl.session(c)
	if !ok {
		return helper.Error(c, fiber.StatusNotFound, "Session not found or expired")
	}

	if err := ctl.Machine.Advance(c.UserContext(), s); err != nil {
		return ctl.transitionError(c, s, err)
	}

	snap := s.Snapshot()
	if snap.Step == session.StepComplete {
		return helper.Success(c, "Verification complete", vdto.NewStateResponse(snap))
	}
	return helper.Success(c, "Next question", vdto.NewStateResponse(snap))
}

func (ctl *VerifyController) session(c *fiber.Ctx) (*session.Session, bool) {
	id := strings.TrimSpace(c.Params("session_id"))
	s, ok := ctl.Store.Get(id)
	return s, ok
}

// transitionError maps machine errors onto the response taxonomy.
func (ctl *VerifyController) transitionError(c *fiber.Ctx, s *session.Session, err error) error {
	switch {
	case errors.Is(err, session.ErrWrongStep):
		return helper.Error(c, fiber.StatusConflict, "That action is not available at this step")
	case errors.Is(err, session.ErrUnknownLanguage):
		return helper.Error(c, fiber.StatusBadRequest, "Unsupported language")
	case errors.Is(err, session.ErrMissingIdentity):
		return helper.Error(c, fiber.StatusBadRequest, "Please enter your name and worker ID")
	case errors.Is(err, session.ErrBadOption):
		return helper.Error(c, fiber.StatusBadRequest, "Invalid option")
	case errors.Is(err, session.ErrUnanswered):
		return helper.Error(c, fiber.StatusBadRequest, "Answer the current question first")
	case errors.Is(err, session.ErrModuleNotReady):
		return helper.Error(c, fiber.StatusConflict, "This module is still being prepared. Please try again later.")
	case errors.Is(err, session.ErrNoQuestions):
		return helper.Error(c, fiber.StatusBadGateway, "Could not generate questions for this module")
	case errors.Is(err, session.ErrSubmitFailed):
		return helper.Error(c, fiber.StatusBadGateway, "Your result could not be recorded. Please try again.")
	default:
		log.Printf("[ERROR] session %s transition: %v", s.ID, err)
		return helper.Error(c, fiber.StatusBadGateway, "Something went wrong loading this step. Please reload.")
	}
}
