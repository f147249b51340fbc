package dto

import (
	"clearproof_backend/internals/constants"
	"clearproof_backend/internals/features/verify/session"
)

type SelectLanguageRequest struct {
	Language string `json:"language" validate:"required,len=2"`
}

type SubmitInfoRequest struct {
	WorkerName string `json:"worker_name" validate:"required,min=1,max=120"`
	WorkerID   string `json:"worker_id" validate:"required,min=1,max=64"`
}

type AnswerRequest struct {
	OptionIndex int `json:"option_index" validate:"gte=0"`
}

// QuestionView is a question as the worker may see it: the correct
// index never leaves the server.
type QuestionView struct {
	Scenario string   `json:"scenario,omitempty"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type SectionView struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Critical bool   `json:"critical"`
}

// StateResponse is the render model for every step.
type StateResponse struct {
	SessionID   string               `json:"session_id"`
	ModuleID    string               `json:"module_id"`
	ModuleTitle string               `json:"module_title,omitempty"`
	Step        session.Step         `json:"step"`
	Error       string               `json:"error,omitempty"`
	Languages   []constants.Language `json:"languages,omitempty"`
	Language    string               `json:"language,omitempty"`
	Sections    []SectionView        `json:"sections,omitempty"`
	Question    *QuestionView        `json:"question,omitempty"`
	QuestionNo  int                  `json:"question_no,omitempty"`
	Questions   int                  `json:"question_total,omitempty"`
	Answered    bool                 `json:"answered,omitempty"`
	Score       int                  `json:"score,omitempty"`
	Passed      bool                 `json:"passed,omitempty"`
}

func NewStateResponse(snap session.Snapshot) *StateResponse {
	resp := &StateResponse{
		SessionID:   snap.ID,
		ModuleID:    snap.ModuleID,
		ModuleTitle: snap.ModuleTitle,
		Step:        snap.Step,
		Error:       snap.FailedAt,
		Language:    snap.Language,
	}

	switch snap.Step {
	case session.StepLanguage:
		resp.Languages = constants.SupportedLanguages

	case session.StepContent:
		resp.Sections = make([]SectionView, 0, len(snap.Sections))
		for _, s := range snap.Sections {
			resp.Sections = append(resp.Sections, SectionView(s))
		}

	case session.StepQuestions:
		q := snap.Questions[snap.Current]
		resp.Question = &QuestionView{
			Scenario: q.Scenario,
			Question: q.Question,
			Options:  q.Options,
		}
		resp.QuestionNo = snap.Current + 1
		resp.Questions = len(snap.Questions)
		resp.Answered = snap.Answers[snap.Current] != session.Unanswered

	case session.StepComplete:
		resp.Score = snap.Score
		resp.Passed = snap.Passed
	}

	return resp
}
