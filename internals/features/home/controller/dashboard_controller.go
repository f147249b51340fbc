package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	mmodel "clearproof_backend/internals/features/modules/model"
	vdto "clearproof_backend/internals/features/verifications/dto"
	vmodel "clearproof_backend/internals/features/verifications/model"
	wmodel "clearproof_backend/internals/features/workers/model"
	helper "clearproof_backend/internals/helpers"
	helperAuth "clearproof_backend/internals/helpers/auth"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// Summary - GET /api/dashboard (auth): the stat cards.
func (ctl *DashboardController) Summary(c *fiber.Ctx) error {
	ownerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var moduleTotal, moduleReady, workerTotal int64
	if err := ctl.DB.Model(&mmodel.ModuleModel{}).
		Where("module_owner_user_id = ?", ownerID).
		Count(&moduleTotal).Error; err != nil {
		log.Println("[ERROR] dashboard modules:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	ctl.DB.Model(&mmodel.ModuleModel{}).
		Where("module_owner_user_id = ? AND module_status = ?", ownerID, mmodel.ModuleStatusReady).
		Count(&moduleReady)
	ctl.DB.Model(&wmodel.WorkerModel{}).
		Where("worker_user_id = ?", ownerID).
		Count(&workerTotal)

	owned := ctl.DB.Model(&vmodel.VerificationModel{}).
		Joins("JOIN modules ON modules.module_id = verifications.verification_module_id").
		Where("modules.module_owner_user_id = ?", ownerID)

	var verificationTotal, verificationPassed int64
	if err := owned.Count(&verificationTotal).Error; err != nil {
		log.Println("[ERROR] dashboard verifications:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	ctl.DB.Model(&vmodel.VerificationModel{}).
		Joins("JOIN modules ON modules.module_id = verifications.verification_module_id").
		Where("modules.module_owner_user_id = ? AND verification_passed = TRUE", ownerID).
		Count(&verificationPassed)

	passRate := 0
	if verificationTotal > 0 {
		passRate = int(100 * verificationPassed / verificationTotal)
	}

	type recentRow struct {
		vmodel.VerificationModel
		ModuleTitle string `gorm:"column:module_title"`
	}
	var recent []recentRow
	ctl.DB.Model(&vmodel.VerificationModel{}).
		Select("verifications.*, modules.module_title").
		Joins("JOIN modules ON modules.module_id = verifications.verification_module_id").
		Where("modules.module_owner_user_id = ?", ownerID).
		Order("verification_completed_at DESC").
		Limit(5).
		Find(&recent)

	recentItems := make([]*vdto.VerificationResponse, 0, len(recent))
	for i := range recent {
		recentItems = append(recentItems, vdto.NewVerificationResponse(&recent[i].VerificationModel, recent[i].ModuleTitle))
	}

	return helper.Success(c, "OK", fiber.Map{
		"manager_name":        helperAuth.GetUserNameFromToken(c),
		"modules_total":       moduleTotal,
		"modules_ready":       moduleReady,
		"workers_total":       workerTotal,
		"verifications_total": verificationTotal,
		"verifications_pass":  verificationPassed,
		"pass_rate":           passRate,
		"recent":              recentItems,
	})
}
