package controller

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	mmodel "clearproof_backend/internals/features/modules/model"
	vdto "clearproof_backend/internals/features/verifications/dto"
	vmodel "clearproof_backend/internals/features/verifications/model"
	vservice "clearproof_backend/internals/features/verifications/service"
	helper "clearproof_backend/internals/helpers"
	helperAuth "clearproof_backend/internals/helpers/auth"
)

type VerificationController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewVerificationController(db *gorm.DB) *VerificationController {
	return &VerificationController{DB: db, Validator: validator.New()}
}

// Create - POST /api/verifications (public). Workers are
// self-declared; the record is append-only.
func (ctl *VerificationController) Create(c *fiber.Ctx) error {
	var req vdto.CreateVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// the module must exist; anything else about the payload is taken
	// at face value
	var count int64
	if err := ctl.DB.Model(&mmodel.ModuleModel{}).
		Where("module_id = ?", req.ModuleID).
		Count(&count).Error; err != nil {
		log.Println("[ERROR] check module:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if count == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Module not found")
	}

	m := req.ToModel()
	if err := ctl.DB.Create(m).Error; err != nil {
		log.Println("[ERROR] create verification:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to record verification")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Verification recorded",
		vdto.NewVerificationResponse(m, ""))
}

type verificationRow struct {
	vmodel.VerificationModel
	ModuleTitle string `gorm:"column:module_title"`
}

func (ctl *VerificationController) ownedRows(c *fiber.Ctx, ownerID uuid.UUID) (*gorm.DB, error) {
	q := ctl.DB.Model(&vmodel.VerificationModel{}).
		Select("verifications.*, modules.module_title").
		Joins("JOIN modules ON modules.module_id = verifications.verification_module_id").
		Where("modules.module_owner_user_id = ?", ownerID)

	if raw := strings.TrimSpace(c.Query("module_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid module_id filter")
		}
		q = q.Where("verification_module_id = ?", id)
	}
	if passed := strings.TrimSpace(c.Query("passed")); passed == "true" || passed == "false" {
		q = q.Where("verification_passed = ?", passed == "true")
	}
	return q, nil
}

// List - GET /api/verifications (auth, owner-scoped via module join)
func (ctl *VerificationController) List(c *fiber.Ctx) error {
	ownerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	q, err := ctl.ownedRows(c, ownerID)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] count verifications:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var rows []verificationRow
	if err := q.Order("verification_completed_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		log.Println("[ERROR] list verifications:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	items := make([]*vdto.VerificationResponse, 0, len(rows))
	for i := range rows {
		items = append(items, vdto.NewVerificationResponse(&rows[i].VerificationModel, rows[i].ModuleTitle))
	}

	return helper.Success(c, "OK", fiber.Map{
		"verifications": items,
		"pagination":    helper.BuildPagination(paging, total, len(items)),
	})
}

// ExportCSV - GET /api/verifications/export (auth)
func (ctl *VerificationController) ExportCSV(c *fiber.Ctx) error {
	ownerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	q, err := ctl.ownedRows(c, ownerID)
	if err != nil {
		return err
	}

	var rows []verificationRow
	if err := q.Order("verification_completed_at DESC").Find(&rows).Error; err != nil {
		log.Println("[ERROR] export verifications:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	report := make([]vservice.ReportRow, 0, len(rows))
	for _, r := range rows {
		report = append(report, vservice.ReportRow{
			WorkerName:  r.VerificationWorkerName,
			ModuleTitle: r.ModuleTitle,
			CompletedAt: r.VerificationCompletedAt,
			Score:       r.VerificationScore,
			Passed:      r.VerificationPassed,
		})
	}

	data, err := vservice.BuildReportCSV(report)
	if err != nil {
		log.Println("[ERROR] build report csv:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to build report")
	}

	filename := vservice.ReportFilename(time.Now())
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
