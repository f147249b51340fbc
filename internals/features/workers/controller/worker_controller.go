package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	wdto "clearproof_backend/internals/features/workers/dto"
	wmodel "clearproof_backend/internals/features/workers/model"
	helper "clearproof_backend/internals/helpers"
	helperAuth "clearproof_backend/internals/helpers/auth"
)

type WorkerController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewWorkerController(db *gorm.DB) *WorkerController {
	return &WorkerController{DB: db, Validator: validator.New()}
}

// List - GET /api/workers (auth)
func (ctl *WorkerController) List(c *fiber.Ctx) error {
	ownerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&wmodel.WorkerModel{}).
		Where("worker_user_id = ?", ownerID)

	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(worker_name) LIKE ? OR LOWER(worker_code) LIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] count workers:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var rows []wmodel.WorkerModel
	if err := q.Order("worker_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		log.Println("[ERROR] list workers:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	items := make([]*wdto.WorkerResponse, 0, len(rows))
	for i := range rows {
		items = append(items, wdto.NewWorkerResponse(&rows[i]))
	}

	return helper.Success(c, "OK", fiber.Map{
		"workers":    items,
		"pagination": helper.BuildPagination(paging, total, len(items)),
	})
}

// GetByID - GET /api/workers/:id (auth)
func (ctl *WorkerController) GetByID(c *fiber.Ctx) error {
	ownerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Worker not found")
	}

	var m wmodel.WorkerModel
	if err := ctl.DB.Where("worker_id = ? AND worker_user_id = ?", id, ownerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Worker not found")
		}
		log.Println("[ERROR] get worker:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.Success(c, "OK", wdto.NewWorkerResponse(&m))
}

// Create - POST /api/workers (auth)
func (ctl *WorkerController) Create(c *fiber.Ctx) error {
	ownerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req wdto.CreateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(ownerID)
	if err := ctl.DB.Create(m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return helper.Error(c, fiber.StatusConflict, "Worker code already exists")
		}
		log.Println("[ERROR] create worker:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create worker")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Worker created", wdto.NewWorkerResponse(m))
}
