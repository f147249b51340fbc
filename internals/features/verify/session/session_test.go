package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway scripts the remote collaborators so the machine can be
// driven without a DB or AI service.
type stubGateway struct {
	module      *Module
	moduleErr   error
	translated  string
	translorErr error
	questions   []Question
	questionErr error
	submitErr   error

	translateCalls int
	submitted      []*Record
}

func (g *stubGateway) FetchModule(ctx context.Context, id string) (*Module, error) {
	if g.moduleErr != nil {
		return nil, g.moduleErr
	}
	return g.module, nil
}

func (g *stubGateway) Translate(ctx context.Context, content, languageCode string) (string, error) {
	g.translateCalls++
	if g.translorErr != nil {
		return "", g.translorErr
	}
	return g.translated, nil
}

func (g *stubGateway) GenerateQuestions(ctx context.Context, content, languageName string) ([]Question, error) {
	if g.questionErr != nil {
		return nil, g.questionErr
	}
	return g.questions, nil
}

func (g *stubGateway) SubmitVerification(ctx context.Context, rec *Record) error {
	if g.submitErr != nil {
		return g.submitErr
	}
	g.submitted = append(g.submitted, rec)
	return nil
}

func threeQuestions() []Question {
	return []Question{
		{Question: "Q1", Options: []string{"a", "b", "c"}, Correct: 0},
		{Question: "Q2", Options: []string{"a", "b"}, Correct: 1},
		{Question: "Q3", Options: []string{"a", "b", "c", "d"}, Correct: 2},
	}
}

func readyModule() *Module {
	return &Module{
		ID:               "0f9a2d1e-6a41-4a57-9d3c-0c5a88a4b001",
		Title:            "Forklift Safety",
		ProcessedContent: `{"sections":[{"title":"Intro","body":"Stay alert.","critical":false}]}`,
		NativeLanguage:   "en",
		Status:           "ready",
	}
}

func newTestMachine(gw Gateway, opts ...Option) *Machine {
	return NewMachine(gw, opts...)
}

func TestStartOpensLanguageStep(t *testing.T) {
	gw := &stubGateway{module: readyModule()}
	m := newTestMachine(gw)

	s, err := m.Start(context.Background(), gw.module.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, StepLanguage, s.Step)
	assert.Equal(t, gw.module.ID, s.ModuleID)
}

func TestStartMissingModule(t *testing.T) {
	gw := &stubGateway{moduleErr: ErrModuleNotFound}
	m := newTestMachine(gw)

	s, err := m.Start(context.Background(), "nope")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestSelectLanguage(t *testing.T) {
	gw := &stubGateway{module: readyModule()}
	m := newTestMachine(gw)
	s, _ := m.Start(context.Background(), gw.module.ID)

	require.Error(t, m.SelectLanguage(s, "xx"), "unknown code must be rejected")
	assert.Equal(t, StepLanguage, s.Step)

	require.NoError(t, m.SelectLanguage(s, "pl"))
	assert.Equal(t, StepInfo, s.Step)
	assert.Equal(t, "Polski", s.LangName)

	// forward-only: selecting again is a wrong-step error
	assert.ErrorIs(t, m.SelectLanguage(s, "en"), ErrWrongStep)
}

func TestSubmitInfoRequiresIdentity(t *testing.T) {
	gw := &stubGateway{module: readyModule()}
	m := newTestMachine(gw)
	s, _ := m.Start(context.Background(), gw.module.ID)
	require.NoError(t, m.SelectLanguage(s, "en"))

	assert.ErrorIs(t, m.SubmitInfo(context.Background(), s, "", "W-1"), ErrMissingIdentity)
	assert.ErrorIs(t, m.SubmitInfo(context.Background(), s, "Ana", ""), ErrMissingIdentity)
	assert.Equal(t, StepInfo, s.Step)
}

func TestSubmitInfoNativeLanguageSkipsTranslate(t *testing.T) {
	gw := &stubGateway{module: readyModule()}
	m := newTestMachine(gw)
	s, _ := m.Start(context.Background(), gw.module.ID)
	require.NoError(t, m.SelectLanguage(s, "en"))

	require.NoError(t, m.SubmitInfo(context.Background(), s, "Ana", "W-204"))
	assert.Equal(t, StepContent, s.Step)
	assert.Zero(t, gw.translateCalls)
	require.Len(t, s.Sections, 1)
	assert.Equal(t, "Intro", s.Sections[0].Title)
}

func TestSubmitInfoTranslates(t *testing.T) {
	gw := &stubGateway{
		module:     readyModule(),
		translated: `{"sections":[{"title":"Wstęp","body":"Uważaj.","critical":true}]}`,
	}
	m := newTestMachine(gw)
	s, _ := m.Start(context.Background(), gw.module.ID)
	require.NoError(t, m.SelectLanguage(s, "pl"))

	require.NoError(t, m.SubmitInfo(context.Background(), s, "Ana", "W-204"))
	assert.Equal(t, 1, gw.translateCalls)
	require.Len(t, s.Sections, 1)
	assert.Equal(t, "Wstęp", s.Sections[0].Title)
	assert.True(t, s.Sections[0].Critical)
}

func TestSubmitInfoTranslateFailureIsTransient(t *testing.T) {
	gw := &stubGateway{module: readyModule(), translorErr: errors.New("upstream 503")}
	m := newTestMachine(gw)
	s, _ := m.Start(context.Background(), gw.module.ID)
	require.NoError(t, m.SelectLanguage(s, "pl"))

	err := m.SubmitInfo(context.Background(), s, "Ana", "W-204")
	require.Error(t, err)
	assert.Equal(t, StepInfo, s.Step, "session stays on the step for a retry")

	// retry succeeds once the upstream recovers
	gw.translorErr = nil
	gw.translated = `{"sections":[{"title":"T","body":"B"}]}`
	require.NoError(t, m.SubmitInfo(context.Background(), s, "Ana", "W-204"))
	assert.Equal(t, StepContent, s.Step)
}

func TestSubmitInfoMissingContentIsTerminal(t *testing.T) {
	mod := readyModule()
	mod.ProcessedContent = ""
	gw := &stubGateway{module: mod}
	m := newTestMachine(gw)
	s, _ := m.Start(context.Background(), mod.ID)
	require.NoError(t, m.SelectLanguage(s, "en"))

	assert.ErrorIs(t, m.SubmitInfo(context.Background(), s, "Ana", "W-204"), ErrModuleNotReady)
	assert.Equal(t, StepError, s.Step)
	assert.NotEmpty(t, s.FailedAt)
}

func TestAcknowledgeReadGeneratesQuestions(t *testing.T) {
	gw := &stubGateway{module: readyModule(), questions: threeQuestions()}
	m := newTestMachine(gw)
	s, _ := m.Start(context.Background(), gw.module.ID)
	require.NoError(t, m.SelectLanguage(s, "en"))
	require.NoError(t, m.SubmitInfo(context.Background(), s, "Ana", "W-204"))

	require.NoError(t, m.AcknowledgeRead(context.Background(), s))
	assert.Equal(t, StepQuestions, s.Step)
	assert.Equal(t, 0, s.Current)
	require.Len(t, s.Answers, len(s.Questions))
	for _, a := range s.Answers {
		assert.Equal(t, Unanswered, a)
	}
}

func TestAcknowledgeReadGeneratorFailureIsTransient(t *testing.T) {
	gw := &stubGateway{module: readyModule(), questionErr: errors.New("timeout")}
	m := newTestMachine(gw)
	s, _ := m.Start(context.Background(), gw.module.ID)
	require.NoError(t, m.SelectLanguage(s, "en"))
	require.NoError(t, m.SubmitInfo(context.Background(), s, "Ana", "W-204"))

	require.Error(t, m.AcknowledgeRead(context.Background(), s))
	assert.Equal(t, StepContent, s.Step)
}

func TestAcknowledgeReadNoQuestionsIsTerminal(t *testing.T) {
	gw := &stubGateway{module: readyModule(), questions: nil}
	m := newTestMachine(gw)
	s, _ := m.Start(context.Background(), gw.module.ID)
	require.NoError(t, m.SelectLanguage(s, "en"))
	require.NoError(t, m.SubmitInfo(context.Background(), s, "Ana", "W-204"))

	assert.ErrorIs(t, m.AcknowledgeRead(context.Background(), s), ErrNoQuestions)
	assert.Equal(t, StepError, s.Step)
}

func questionsSession(t *testing.T, gw *stubGateway) (*Machine, *Session) {
	t.Helper()
	m := newTestMachine(gw)
	s, err := m.Start(context.Background(), gw.module.ID)
	require.NoError(t, err)
	require.NoError(t, m.SelectLanguage(s, "en"))
	require.NoError(t, m.SubmitInfo(context.Background(), s, "Ana", "W-204"))
	require.NoError(t, m.AcknowledgeRead(context.Background(), s))
	return m, s
}

func TestAnswerBounds(t *testing.T) {
	gw := &stubGateway{module: readyModule(), questions: threeQuestions()}
	m, s := questionsSession(t, gw)

	assert.ErrorIs(t, m.Answer(s, -1), ErrBadOption)
	assert.ErrorIs(t, m.Answer(s, 3), ErrBadOption)
	require.NoError(t, m.Answer(s, 2))
	assert.Equal(t, 2, s.Answers[0])

	// changing the answer before advancing is allowed
	require.NoError(t, m.Answer(s, 0))
	assert.Equal(t, 0, s.Answers[0])
}

func TestAdvanceRejectsUnanswered(t *testing.T) {
	gw := &stubGateway{module: readyModule(), questions: threeQuestions()}
	m, s := questionsSession(t, gw)

	assert.ErrorIs(t, m.Advance(context.Background(), s), ErrUnanswered)
	assert.Equal(t, 0, s.Current)
}

func TestFullPassFlow(t *testing.T) {
	gw := &stubGateway{module: readyModule(), questions: threeQuestions()}
	m, s := questionsSession(t, gw)

	for i, q := range s.Questions {
		require.NoError(t, m.Answer(s, q.Correct), "question %d", i)
		require.NoError(t, m.Advance(context.Background(), s))
	}

	assert.Equal(t, StepComplete, s.Step)
	assert.Equal(t, 100, s.Score)
	assert.True(t, s.Passed)

	require.Len(t, gw.submitted, 1)
	rec := gw.submitted[0]
	assert.Equal(t, s.ModuleID, rec.ModuleID)
	assert.Equal(t, "Ana", rec.WorkerName)
	assert.Equal(t, "W-204", rec.WorkerID)
	assert.Equal(t, "en", rec.LanguageUsed)
	assert.Equal(t, []int{0, 1, 2}, rec.Answers)
	assert.Equal(t, 100, rec.Score)
	assert.True(t, rec.Passed)
	assert.WithinDuration(t, time.Now().UTC(), rec.CompletedAt, time.Minute)
}

func TestFailingScoreStillCompletes(t *testing.T) {
	gw := &stubGateway{module: readyModule(), questions: threeQuestions()}
	m, s := questionsSession(t, gw)

	// one of three correct: 33, below the threshold
	wrong := []int{1, 0, 0}
	for i := range s.Questions {
		require.NoError(t, m.Answer(s, wrong[i]))
		require.NoError(t, m.Advance(context.Background(), s))
	}

	assert.Equal(t, StepComplete, s.Step)
	assert.Equal(t, 33, s.Score)
	assert.False(t, s.Passed)
	require.Len(t, gw.submitted, 1, "failed attempts are still recorded")
}

func TestSubmitFailureBlocksByDefault(t *testing.T) {
	gw := &stubGateway{module: readyModule(), questions: threeQuestions(), submitErr: errors.New("db down")}
	m, s := questionsSession(t, gw)

	for _, q := range s.Questions[:2] {
		require.NoError(t, m.Answer(s, q.Correct))
		require.NoError(t, m.Advance(context.Background(), s))
	}
	require.NoError(t, m.Answer(s, s.Questions[2].Correct))

	err := m.Advance(context.Background(), s)
	assert.ErrorIs(t, err, ErrSubmitFailed)
	assert.Equal(t, StepQuestions, s.Step, "no completion without a persisted record")

	// once persistence recovers, the same advance completes
	gw.submitErr = nil
	require.NoError(t, m.Advance(context.Background(), s))
	assert.Equal(t, StepComplete, s.Step)
	require.Len(t, gw.submitted, 1)
}

func TestSubmitFailureProceedPolicy(t *testing.T) {
	gw := &stubGateway{module: readyModule(), questions: threeQuestions(), submitErr: errors.New("db down")}
	m := newTestMachine(gw, WithPolicy(PolicyProceedRegardless))
	s, _ := m.Start(context.Background(), gw.module.ID)
	require.NoError(t, m.SelectLanguage(s, "en"))
	require.NoError(t, m.SubmitInfo(context.Background(), s, "Ana", "W-204"))
	require.NoError(t, m.AcknowledgeRead(context.Background(), s))

	for _, q := range s.Questions {
		require.NoError(t, m.Answer(s, q.Correct))
		require.NoError(t, m.Advance(context.Background(), s))
	}

	assert.Equal(t, StepComplete, s.Step)
	assert.Empty(t, gw.submitted)
}

func TestSnapshotIsACopy(t *testing.T) {
	gw := &stubGateway{module: readyModule(), questions: threeQuestions()}
	m, s := questionsSession(t, gw)
	require.NoError(t, m.Answer(s, 1))

	snap := s.Snapshot()
	snap.Answers[0] = 2
	assert.Equal(t, 1, s.Answers[0], "mutating a snapshot must not touch the session")
	assert.Equal(t, "Forklift Safety", snap.ModuleTitle)
}
