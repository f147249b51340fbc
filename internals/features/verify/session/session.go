// Package session implements the worker verification flow: a strict
// forward-only step machine that sequences the remote gateway calls
// between worker inputs. Sessions are ephemeral and held in memory
// only; completing the flow (or the reaper) discards them.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"clearproof_backend/internals/constants"
)

// Step is the tagged state of a session. Transitions only ever move
// right: language → info → content → questions → complete. StepError
// is terminal.
type Step string

const (
	StepLanguage  Step = "language"
	StepInfo      Step = "info"
	StepContent   Step = "content"
	StepQuestions Step = "questions"
	StepComplete  Step = "complete"
	StepError     Step = "error"
)

// Unanswered is the sentinel for a question with no recorded answer.
const Unanswered = -1

// SubmissionPolicy decides what a failed record submission does to
// the final transition.
type SubmissionPolicy string

const (
	// PolicyBlockOnFailure keeps the session on the questions step and
	// surfaces the error; no completion without a persisted record.
	PolicyBlockOnFailure SubmissionPolicy = "block_on_failure"
	// PolicyProceedRegardless logs the failure and completes anyway
	// (the legacy behavior).
	PolicyProceedRegardless SubmissionPolicy = "proceed_regardless"
)

func ParsePolicy(s string) SubmissionPolicy {
	if s == string(PolicyProceedRegardless) {
		return PolicyProceedRegardless
	}
	return PolicyBlockOnFailure
}

// Transition errors surfaced to the worker.
var (
	ErrWrongStep       = errors.New("action not valid for current step")
	ErrUnknownLanguage = errors.New("language not in catalog")
	ErrMissingIdentity = errors.New("worker name and id are required")
	ErrUnanswered      = errors.New("current question has no answer")
	ErrBadOption       = errors.New("option index out of range")
	ErrNoQuestions     = errors.New("no questions were generated")
	ErrSubmitFailed    = errors.New("verification could not be recorded")
)

// Session is one worker's pass through one module. One writer (the
// machine), one reader (the rendering layer); the mutex serializes the
// two and guarantees at most one in-flight gateway call per session.
type Session struct {
	mu sync.Mutex

	ID       string
	ModuleID string

	Step     Step
	FailedAt string // terminal error description when Step == StepError

	Language   string
	LangName   string
	WorkerName string
	WorkerID   string

	Module    *Module
	Sections  []Section
	Questions []Question
	Answers   []int
	Current   int

	Score  int
	Passed bool

	CreatedAt time.Time
	TouchedAt time.Time
}

// Snapshot is a read-only copy for rendering, taken under the lock.
type Snapshot struct {
	ID          string
	ModuleID    string
	ModuleTitle string
	Step        Step
	FailedAt    string
	Language    string
	WorkerName  string
	WorkerID    string
	Sections    []Section
	Questions   []Question
	Answers     []int
	Current     int
	Score       int
	Passed      bool
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.ID,
		ModuleID:   s.ModuleID,
		Step:       s.Step,
		FailedAt:   s.FailedAt,
		Language:   s.Language,
		WorkerName: s.WorkerName,
		WorkerID:   s.WorkerID,
		Sections:   append([]Section(nil), s.Sections...),
		Questions:  append([]Question(nil), s.Questions...),
		Answers:    append([]int(nil), s.Answers...),
		Current:    s.Current,
		Score:      s.Score,
		Passed:     s.Passed,
	}
	if s.Module != nil {
		snap.ModuleTitle = s.Module.Title
	}
	return snap
}

// Machine drives sessions through the step sequence. It owns no
// session state itself and is safe for concurrent use across
// sessions.
type Machine struct {
	gw            Gateway
	policy        SubmissionPolicy
	languageName  func(code string) string
	languageKnown func(code string) bool
}

type Option func(*Machine)

func WithPolicy(p SubmissionPolicy) Option {
	return func(m *Machine) { m.policy = p }
}

// WithCatalog overrides the language catalog lookups (tests).
func WithCatalog(known func(string) bool, name func(string) string) Option {
	return func(m *Machine) {
		m.languageKnown = known
		m.languageName = name
	}
}

func NewMachine(gw Gateway, opts ...Option) *Machine {
	m := &Machine{
		gw:            gw,
		policy:        PolicyBlockOnFailure,
		languageKnown: constants.IsSupportedLanguage,
		languageName:  constants.LanguageName,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Start fetches the module and opens a fresh session on the language
// step. A missing module is terminal: no session is created.
func (m *Machine) Start(ctx context.Context, moduleID string) (*Session, error) {
	mod, err := m.gw.FetchModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		ModuleID:  mod.ID,
		Step:      StepLanguage,
		Module:    mod,
		Current:   0,
		CreatedAt: now,
		TouchedAt: now,
	}, nil
}

// SelectLanguage: language → info. Purely local, no gateway call.
func (m *Machine) SelectLanguage(s *Session, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Step != StepLanguage {
		return ErrWrongStep
	}
	if !m.languageKnown(code) {
		return ErrUnknownLanguage
	}

	s.Language = code
	s.LangName = m.languageName(code)
	s.Step = StepInfo
	s.touch()
	return nil
}

// SubmitInfo: info → content. Validates identity, then loads (and if
// needed translates) the module content and parses it into sections.
// A module without processed content fails the session terminally.
func (m *Machine) SubmitInfo(ctx context.Context, s *Session, workerName, workerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Step != StepInfo {
		return ErrWrongStep
	}
	if workerName == "" || workerID == "" {
		return ErrMissingIdentity
	}

	s.WorkerName = workerName
	s.WorkerID = workerID

	if s.Module == nil || s.Module.ProcessedContent == "" {
		s.fail("module content is not ready yet")
		return ErrModuleNotReady
	}

	content := s.Module.ProcessedContent
	if s.Language != s.Module.NativeLanguage {
		translated, err := m.gw.Translate(ctx, content, s.Language)
		if err != nil {
			// transient: stay on the step, the worker may reload
			s.touch()
			return fmt.Errorf("translate: %w", err)
		}
		content = translated
	}

	s.Sections = ParseSections(content)
	s.Step = StepContent
	s.touch()
	return nil
}

// AcknowledgeRead: content → questions. Triggered by the worker's
// explicit "I've read this"; generates the question set and sizes the
// answer slice with sentinels.
func (m *Machine) AcknowledgeRead(ctx context.Context, s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Step != StepContent {
		return ErrWrongStep
	}

	blob := SectionsText(s.Sections)
	questions, err := m.gw.GenerateQuestions(ctx, blob, s.LangName)
	if err != nil {
		s.touch()
		return fmt.Errorf("generate questions: %w", err)
	}
	if len(questions) == 0 {
		s.fail("question generation returned no questions")
		return ErrNoQuestions
	}

	s.Questions = questions
	s.Answers = make([]int, len(questions))
	for i := range s.Answers {
		s.Answers[i] = Unanswered
	}
	s.Current = 0
	s.Step = StepQuestions
	s.touch()
	return nil
}

// Answer records the chosen option for the current question. It may
// be called again to change the choice before advancing.
func (m *Machine) Answer(s *Session, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Step != StepQuestions {
		return ErrWrongStep
	}
	q := s.Questions[s.Current]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return ErrBadOption
	}

	s.Answers[s.Current] = optionIndex
	s.touch()
	return nil
}

// Advance moves to the next question. After the last one it scores
// the session, submits the record and completes. Advancing an
// unanswered question is rejected.
func (m *Machine) Advance(ctx context.Context, s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Step != StepQuestions {
		return ErrWrongStep
	}
	if s.Answers[s.Current] == Unanswered {
		return ErrUnanswered
	}

	if s.Current < len(s.Questions)-1 {
		s.Current++
		s.touch()
		return nil
	}

	// last answer submitted: score and persist
	s.Score, s.Passed = ComputeScore(s.Questions, s.Answers)

	rec := &Record{
		ModuleID:     s.ModuleID,
		WorkerName:   s.WorkerName,
		WorkerID:     s.WorkerID,
		LanguageUsed: s.Language,
		Answers:      append([]int(nil), s.Answers...),
		Score:        s.Score,
		Passed:       s.Passed,
		CompletedAt:  time.Now().UTC(),
	}
	if err := m.gw.SubmitVerification(ctx, rec); err != nil {
		if m.policy == PolicyBlockOnFailure {
			s.touch()
			return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
		}
		log.Printf("[ERROR] verification submit failed, completing anyway (module=%s worker=%s): %v",
			s.ModuleID, s.WorkerID, err)
	}

	s.Step = StepComplete
	s.touch()
	return nil
}

func (s *Session) touch() { s.TouchedAt = time.Now() }

// fail moves the session into the terminal error state.
func (s *Session) fail(reason string) {
	s.Step = StepError
	s.FailedAt = reason
	s.TouchedAt = time.Now()
}
