// The production Gateway for the worker flow: modules come from our
// DB (or the low-code store), AI work goes through the processing
// service, completed records land in the verifications table.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	mmodel "clearproof_backend/internals/features/modules/model"
	vmodel "clearproof_backend/internals/features/verifications/model"
	"clearproof_backend/internals/features/verify/session"
	"clearproof_backend/internals/gateway"
	"clearproof_backend/internals/gateway/smartsuite"
)

type GatewayService struct {
	DB      *gorm.DB
	Content gateway.ContentGateway

	// Modules optionally come from the external low-code store; when
	// set it replaces the DB as the module source.
	SmartSuite *smartsuite.Client

	QuestionCount int
}

var _ session.Gateway = (*GatewayService)(nil)

func NewGatewayService(db *gorm.DB, content gateway.ContentGateway, questionCount int) *GatewayService {
	if questionCount <= 0 {
		questionCount = 3
	}
	return &GatewayService{
		DB:            db,
		Content:       content,
		QuestionCount: questionCount,
	}
}

func (g *GatewayService) FetchModule(ctx context.Context, id string) (*session.Module, error) {
	if g.SmartSuite != nil {
		return g.fetchFromSmartSuite(ctx, id)
	}

	moduleID, err := uuid.Parse(id)
	if err != nil {
		return nil, session.ErrModuleNotFound
	}

	var m mmodel.ModuleModel
	if err := g.DB.WithContext(ctx).
		Where("module_id = ?", moduleID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, session.ErrModuleNotFound
		}
		return nil, fmt.Errorf("fetch module: %w", err)
	}

	return &session.Module{
		ID:               m.ModuleID.String(),
		Title:            m.ModuleTitle,
		ProcessedContent: m.ModuleProcessedContent,
		NativeLanguage:   m.ModuleNativeLanguage,
		Status:           m.ModuleStatus,
	}, nil
}

func (g *GatewayService) fetchFromSmartSuite(ctx context.Context, id string) (*session.Module, error) {
	rec, err := g.SmartSuite.GetModule(ctx, id)
	if err != nil {
		if errors.Is(err, smartsuite.ErrRecordNotFound) {
			return nil, session.ErrModuleNotFound
		}
		return nil, fmt.Errorf("fetch module: %w", err)
	}
	return &session.Module{
		ID:               rec.ID,
		Title:            rec.Title,
		ProcessedContent: rec.ProcessedContent,
		NativeLanguage:   rec.NativeLanguage,
		Status:           rec.Status,
	}, nil
}

func (g *GatewayService) Translate(ctx context.Context, content, languageCode string) (string, error) {
	return g.Content.Translate(ctx, content, languageCode)
}

func (g *GatewayService) GenerateQuestions(ctx context.Context, content, languageName string) ([]session.Question, error) {
	payload, err := g.Content.GenerateQuestions(ctx, content, languageName, g.QuestionCount)
	if err != nil {
		return nil, err
	}
	return session.ParseQuestions(payload)
}

func (g *GatewayService) SubmitVerification(ctx context.Context, rec *session.Record) error {
	moduleID, err := uuid.Parse(rec.ModuleID)
	if err != nil {
		// low-code store ids are not uuids; keep the record anyway
		// under a deterministic namespace id
		moduleID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(rec.ModuleID))
	}

	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	m := &vmodel.VerificationModel{
		VerificationModuleID:     moduleID,
		VerificationWorkerName:   rec.WorkerName,
		VerificationWorkerID:     rec.WorkerID,
		VerificationLanguageUsed: rec.LanguageUsed,
		VerificationAnswers:      answers,
		VerificationScore:        rec.Score,
		VerificationPassed:       rec.Passed,
		VerificationCompletedAt:  rec.CompletedAt,
	}
	if err := g.DB.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("persist verification: %w", err)
	}
	return nil
}
