package controller

import (
	"errors"
	"io"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clearproof_backend/internals/configs"
	"clearproof_backend/internals/constants"
	mdto "clearproof_backend/internals/features/modules/dto"
	mmodel "clearproof_backend/internals/features/modules/model"
	"clearproof_backend/internals/gateway"
	helper "clearproof_backend/internals/helpers"
	helperAuth "clearproof_backend/internals/helpers/auth"
	helperOSS "clearproof_backend/internals/helpers/oss"
)

type ModuleController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Gateway   gateway.ContentGateway
	OSS       *helperOSS.OSSService // nil when object storage is not configured
}

func NewModuleController(db *gorm.DB, gw gateway.ContentGateway, oss *helperOSS.OSSService) *ModuleController {
	return &ModuleController{
		DB:        db,
		Validator: validator.New(),
		Gateway:   gw,
		OSS:       oss,
	}
}

/* =========================================================
   Queries
========================================================= */

func (ctl *ModuleController) ownedModule(c *fiber.Ctx, id uuid.UUID, ownerID uuid.UUID) (*mmodel.ModuleModel, error) {
	var m mmodel.ModuleModel
	err := ctl.DB.
		Where("module_id = ? AND module_owner_user_id = ?", id, ownerID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Module not found")
		}
		log.Println("[ERROR] load module:", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
	return &m, nil
}

// List - GET /api/modules (auth, owner-scoped, paged)
func (ctl *ModuleController) List(c *fiber.Ctx) error {
	ownerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&mmodel.ModuleModel{}).
		Where("module_owner_user_id = ?", ownerID)

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("module_status = ?", status)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(module_title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] count modules:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	var rows []mmodel.ModuleModel
	if err := q.Order("module_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		log.Println("[ERROR] list modules:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	items := make([]*mdto.ModuleResponse, 0, len(rows))
	for i := range rows {
		items = append(items, mdto.NewModuleResponse(&rows[i]))
	}

	return helper.Success(c, "OK", fiber.Map{
		"modules":    items,
		"pagination": helper.BuildPagination(paging, total, len(items)),
	})
}

// GetPublic - GET /api/modules/:id (public, worker link)
func (ctl *ModuleController) GetPublic(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Module not found")
	}

	var m mmodel.ModuleModel
	if err := ctl.DB.Where("module_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Module not found")
		}
		log.Println("[ERROR] get module:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.Success(c, "OK", mdto.NewPublicModuleResponse(&m))
}

/* =========================================================
   Mutations
========================================================= */

// Create - POST /api/modules (auth)
func (ctl *ModuleController) Create(c *fiber.Ctx) error {
	ownerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req mdto.CreateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(ownerID)

	if req.ModuleAccessCode != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.ModuleAccessCode), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[ERROR] hash access code:", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
		}
		h := string(hash)
		m.ModuleAccessCodeHash = &h
	}

	if err := ctl.DB.Create(m).Error; err != nil {
		log.Println("[ERROR] create module:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create module")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Module created", mdto.NewModuleResponse(m))
}

// Patch - PATCH /api/modules/:id (auth)
func (ctl *ModuleController) Patch(c *fiber.Ctx) error {
	ownerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Module not found")
	}

	var req mdto.PatchModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, ferr := ctl.ownedModule(c, id, ownerID)
	if ferr != nil {
		return ferr
	}

	req.ApplyToModel(m)
	if err := ctl.DB.Save(m).Error; err != nil {
		log.Println("[ERROR] patch module:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update module")
	}

	return helper.Success(c, "Module updated", mdto.NewModuleResponse(m))
}

// Delete - DELETE /api/modules/:id (auth, soft delete)
func (ctl *ModuleController) Delete(c *fiber.Ctx) error {
	ownerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Module not found")
	}

	m, ferr := ctl.ownedModule(c, id, ownerID)
	if ferr != nil {
		return ferr
	}

	if err := ctl.DB.Delete(m).Error; err != nil {
		log.Println("[ERROR] delete module:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete module")
	}

	return helper.Success(c, "Module deleted", nil)
}

/* =========================================================
   QR / upload / transform
========================================================= */

// QR - GET /api/modules/:id/qr (auth): PNG of the worker link.
func (ctl *ModuleController) QR(c *fiber.Ctx) error {
	ownerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Module not found")
	}

	m, ferr := ctl.ownedModule(c, id, ownerID)
	if ferr != nil {
		return ferr
	}

	link := strings.TrimRight(configs.FrontendURL, "/") + "/verify/" + m.ModuleID.String()
	png, err := qrcode.Encode(link, qrcode.Medium, 512)
	if err != nil {
		log.Println("[ERROR] qr encode:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to generate QR")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "private, max-age=3600")
	return c.Send(png)
}

// Upload - POST /api/modules/upload (auth, multipart). Creates a
// module in status "created"; text files become raw content directly,
// everything else is stored in OSS and waits for document parsing on
// the processing side.
func (ctl *ModuleController) Upload(c *fiber.Ctx) error {
	ownerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Expected multipart form")
	}
	fh := helperOSS.CollectUploadFile(form)
	if fh == nil {
		return helper.Error(c, fiber.StatusBadRequest, "No file in upload")
	}

	kind := constants.DetectFileKindFromExt(fh.Filename)
	if kind == constants.FileKindUnknown {
		return helper.Error(c, fiber.StatusUnsupportedMediaType, "Unsupported file type")
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		title = fh.Filename
	}

	m := &mmodel.ModuleModel{
		ModuleOwnerUserID:    ownerID,
		ModuleTitle:          title,
		ModuleStatus:         mmodel.ModuleStatusCreated,
		ModuleNativeLanguage: constants.DefaultNativeLanguage,
		ModuleSourceFileKind: &kind,
	}

	if constants.IsTextKind(kind) {
		src, err := fh.Open()
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Cannot read upload")
		}
		defer src.Close()
		raw, err := io.ReadAll(src)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Cannot read upload")
		}
		m.ModuleRawContent = string(raw)
	}

	if ctl.OSS != nil {
		var url string
		var uerr error
		if kind == constants.FileKindImage {
			url, uerr = ctl.OSS.UploadAsWebP(fh, "modules")
		} else {
			url, uerr = ctl.OSS.UploadDocument(fh, "modules")
		}
		if uerr != nil {
			var fe *fiber.Error
			if errors.As(uerr, &fe) {
				return helper.Error(c, fe.Code, fe.Message)
			}
			log.Println("[ERROR] oss upload:", uerr)
			return helper.Error(c, fiber.StatusBadGateway, "Failed to store upload")
		}
		m.ModuleSourceFileURL = &url
	}

	if err := ctl.DB.Create(m).Error; err != nil {
		log.Println("[ERROR] create uploaded module:", err)
		if ctl.OSS != nil && m.ModuleSourceFileURL != nil {
			key := ctl.OSS.KeyFromURL(*m.ModuleSourceFileURL)
			if derr := ctl.OSS.DeleteObject(key); derr != nil {
				log.Println("[CLEANUP] orphan upload object:", derr)
			}
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create module")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Upload accepted", mdto.NewModuleResponse(m))
}

// Transform - POST /api/process/transform/:id (auth). Sends raw
// content through the AI simplifier, then pre-generates the native
// question set (best effort).
func (ctl *ModuleController) Transform(c *fiber.Ctx) error {
	ownerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Module not found")
	}

	m, ferr := ctl.ownedModule(c, id, ownerID)
	if ferr != nil {
		return ferr
	}
	if strings.TrimSpace(m.ModuleRawContent) == "" {
		return helper.Error(c, fiber.StatusConflict, "Module has no raw content to transform")
	}

	m.ModuleStatus = mmodel.ModuleStatusProcessing
	if err := ctl.DB.Save(m).Error; err != nil {
		log.Println("[ERROR] mark processing:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	processed, err := ctl.Gateway.Transform(c.UserContext(), m.ModuleRawContent)
	if err != nil {
		log.Println("[ERROR] transform:", err)
		// leave it in processing; the manager can retry the trigger
		return helper.Error(c, fiber.StatusBadGateway, "Transformation failed")
	}

	m.ModuleProcessedContent = processed
	m.ModuleStatus = mmodel.ModuleStatusReady

	nativeName := constants.LanguageName(m.ModuleNativeLanguage)
	if nativeName == "" {
		nativeName = "English"
	}
	if payload, qerr := ctl.Gateway.GenerateQuestions(c.UserContext(), processed, nativeName, configs.QuestionCount); qerr != nil {
		log.Println("[ERROR] pre-generate questions:", qerr)
	} else if strings.TrimSpace(payload) != "" {
		m.ModuleQuestionsPayload = []byte(payload)
	}

	if err := ctl.DB.Save(m).Error; err != nil {
		log.Println("[ERROR] save transformed module:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return helper.Success(c, "Module transformed", mdto.NewModuleResponse(m))
}
