package session

import (
	"context"
	"errors"
	"time"
)

// Module is the slice of a module record the worker flow needs.
type Module struct {
	ID               string
	Title            string
	ProcessedContent string
	NativeLanguage   string
	Status           string
}

// Record is the verification payload persisted on completion.
type Record struct {
	ModuleID     string    `json:"module_id"`
	WorkerName   string    `json:"worker_name"`
	WorkerID     string    `json:"worker_id"`
	LanguageUsed string    `json:"language_used"`
	Answers      []int     `json:"answers"`
	Score        int       `json:"score"`
	Passed       bool      `json:"passed"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Gateway is the remote collaborator contract the controller drives.
// Persistence and AI live behind it; the controller only sequences.
type Gateway interface {
	FetchModule(ctx context.Context, id string) (*Module, error)
	Translate(ctx context.Context, content, languageCode string) (string, error)
	GenerateQuestions(ctx context.Context, content, languageName string) ([]Question, error)
	SubmitVerification(ctx context.Context, rec *Record) error
}

var (
	// ErrModuleNotFound is terminal: no session can exist for it.
	ErrModuleNotFound = errors.New("module not found")
	// ErrModuleNotReady means processed content is not available yet.
	ErrModuleNotReady = errors.New("module is still processing")
)
