package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verifyRoute "clearproof_backend/internals/features/verify/route"
	"clearproof_backend/internals/features/verify/session"
)

type fakeGateway struct {
	module    *session.Module
	questions []session.Question
	submitted []*session.Record
	submitErr error
}

func (g *fakeGateway) FetchModule(ctx context.Context, id string) (*session.Module, error) {
	if g.module == nil || g.module.ID != id {
		return nil, session.ErrModuleNotFound
	}
	return g.module, nil
}

func (g *fakeGateway) Translate(ctx context.Context, content, code string) (string, error) {
	return content, nil
}

func (g *fakeGateway) GenerateQuestions(ctx context.Context, content, lang string) ([]session.Question, error) {
	return g.questions, nil
}

func (g *fakeGateway) SubmitVerification(ctx context.Context, rec *session.Record) error {
	if g.submitErr != nil {
		return g.submitErr
	}
	g.submitted = append(g.submitted, rec)
	return nil
}

func newTestApp(gw *fakeGateway) *fiber.App {
	app := fiber.New()
	machine := session.NewMachine(gw)
	store := session.NewStore(time.Hour)
	verifyRoute.VerifyWorkerRoutes(app.Group("/api"), machine, store)
	return app
}

type envelope struct {
	Code    int             `json:"code"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type stateView struct {
	SessionID   string `json:"session_id"`
	Step        string `json:"step"`
	ModuleTitle string `json:"module_title"`
	Languages   []struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"languages"`
	Sections []struct {
		Title    string `json:"title"`
		Critical bool   `json:"critical"`
	} `json:"sections"`
	Question *struct {
		Question string   `json:"question"`
		Options  []string `json:"options"`
		Correct  *int     `json:"correct"`
	} `json:"question"`
	QuestionNo    int  `json:"question_no"`
	QuestionTotal int  `json:"question_total"`
	Score         int  `json:"score"`
	Passed        bool `json:"passed"`
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, envelope, stateView) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	var st stateView
	if len(env.Data) > 0 && env.Data[0] == '{' {
		require.NoError(t, json.Unmarshal(env.Data, &st))
	}
	return resp, env, st
}

func testModule() *session.Module {
	return &session.Module{
		ID:               "6b0efb4e-8a2f-4a84-b6cf-20b55e1f9a11",
		Title:            "Warehouse Induction",
		ProcessedContent: `{"sections":[{"title":"PPE","body":"Helmets on.","critical":true}]}`,
		NativeLanguage:   "en",
		Status:           "ready",
	}
}

func testQuestions() []session.Question {
	return []session.Question{
		{Question: "Helmet zone?", Options: []string{"Yes", "No"}, Correct: 0},
		{Question: "Who reports spills?", Options: []string{"Nobody", "Everyone", "Managers"}, Correct: 1},
	}
}

func TestWorkerFlowEndToEnd(t *testing.T) {
	gw := &fakeGateway{module: testModule(), questions: testQuestions()}
	app := newTestApp(gw)

	// start
	resp, _, st := do(t, app, fiber.MethodPost, "/api/verify/"+gw.module.ID+"/start", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, st.SessionID)
	assert.Equal(t, "language", st.Step)
	assert.NotEmpty(t, st.Languages, "language step ships the catalog")
	assert.Equal(t, "Warehouse Induction", st.ModuleTitle)
	base := "/api/verify/session/" + st.SessionID

	// language
	resp, _, st = do(t, app, fiber.MethodPost, base+"/language", fiber.Map{"language": "es"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "info", st.Step)

	// info
	resp, _, st = do(t, app, fiber.MethodPost, base+"/info",
		fiber.Map{"worker_name": "Ana", "worker_id": "W-204"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "content", st.Step)
	require.Len(t, st.Sections, 1)
	assert.True(t, st.Sections[0].Critical)

	// read acknowledged: first question appears, answer key does not
	resp, _, st = do(t, app, fiber.MethodPost, base+"/read", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "questions", st.Step)
	require.NotNil(t, st.Question)
	assert.Equal(t, 1, st.QuestionNo)
	assert.Equal(t, 2, st.QuestionTotal)
	assert.Nil(t, st.Question.Correct, "the correct index must never reach the client")

	// answer both correctly
	for _, idx := range []int{0, 1} {
		resp, _, _ = do(t, app, fiber.MethodPost, base+"/answer", fiber.Map{"option_index": idx})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		resp, _, st = do(t, app, fiber.MethodPost, base+"/next", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, "complete", st.Step)
	assert.Equal(t, 100, st.Score)
	assert.True(t, st.Passed)

	require.Len(t, gw.submitted, 1)
	assert.Equal(t, "es", gw.submitted[0].LanguageUsed)
	assert.Equal(t, "W-204", gw.submitted[0].WorkerID)
}

func TestStartUnknownModule(t *testing.T) {
	app := newTestApp(&fakeGateway{})

	resp, env, _ := do(t, app, fiber.MethodPost, "/api/verify/nope/start", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "error", env.Status)
}

func TestUnknownSessionIs404(t *testing.T) {
	app := newTestApp(&fakeGateway{module: testModule()})

	resp, env, _ := do(t, app, fiber.MethodGet, "/api/verify/session/ghost", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, env.Message, "Session")
}

func TestOutOfOrderActionsConflict(t *testing.T) {
	gw := &fakeGateway{module: testModule(), questions: testQuestions()}
	app := newTestApp(gw)

	_, _, st := do(t, app, fiber.MethodPost, "/api/verify/"+gw.module.ID+"/start", nil)
	base := "/api/verify/session/" + st.SessionID

	// answering before any question exists is a step conflict
	resp, _, _ := do(t, app, fiber.MethodPost, base+"/answer", fiber.Map{"option_index": 0})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// so is re-selecting the language after moving on
	_, _, _ = do(t, app, fiber.MethodPost, base+"/language", fiber.Map{"language": "en"})
	resp, _, _ = do(t, app, fiber.MethodPost, base+"/language", fiber.Map{"language": "pl"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAdvanceWithoutAnswerRejected(t *testing.T) {
	gw := &fakeGateway{module: testModule(), questions: testQuestions()}
	app := newTestApp(gw)

	_, _, st := do(t, app, fiber.MethodPost, "/api/verify/"+gw.module.ID+"/start", nil)
	base := "/api/verify/session/" + st.SessionID
	do(t, app, fiber.MethodPost, base+"/language", fiber.Map{"language": "en"})
	do(t, app, fiber.MethodPost, base+"/info", fiber.Map{"worker_name": "Ana", "worker_id": "W-1"})
	do(t, app, fiber.MethodPost, base+"/read", nil)

	resp, _, _ := do(t, app, fiber.MethodPost, base+"/next", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubmitFailureBlocksCompletion(t *testing.T) {
	gw := &fakeGateway{module: testModule(), questions: testQuestions(), submitErr: errors.New("db down")}
	app := newTestApp(gw)

	_, _, st := do(t, app, fiber.MethodPost, "/api/verify/"+gw.module.ID+"/start", nil)
	base := "/api/verify/session/" + st.SessionID
	do(t, app, fiber.MethodPost, base+"/language", fiber.Map{"language": "en"})
	do(t, app, fiber.MethodPost, base+"/info", fiber.Map{"worker_name": "Ana", "worker_id": "W-1"})
	do(t, app, fiber.MethodPost, base+"/read", nil)

	do(t, app, fiber.MethodPost, base+"/answer", fiber.Map{"option_index": 0})
	do(t, app, fiber.MethodPost, base+"/next", nil)
	do(t, app, fiber.MethodPost, base+"/answer", fiber.Map{"option_index": 1})

	resp, _, _ := do(t, app, fiber.MethodPost, base+"/next", nil)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	_, _, st = do(t, app, fiber.MethodGet, base, nil)
	assert.Equal(t, "questions", st.Step, "still on the questions step")

	// persistence recovers, the retry completes
	gw.submitErr = nil
	resp, _, st = do(t, app, fiber.MethodPost, base+"/next", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "complete", st.Step)
}

func TestValidationErrors(t *testing.T) {
	gw := &fakeGateway{module: testModule()}
	app := newTestApp(gw)

	_, _, st := do(t, app, fiber.MethodPost, "/api/verify/"+gw.module.ID+"/start", nil)
	base := "/api/verify/session/" + st.SessionID

	resp, _, _ := do(t, app, fiber.MethodPost, base+"/language", fiber.Map{"language": "english"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	do(t, app, fiber.MethodPost, base+"/language", fiber.Map{"language": "en"})
	resp, _, _ = do(t, app, fiber.MethodPost, base+"/info", fiber.Map{"worker_name": "Ana"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
