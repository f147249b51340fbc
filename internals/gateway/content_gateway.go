// Package gateway holds the client for the external content processing
// service: AI simplification (transform), translation, and question
// generation all happen there, never in this codebase.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenProvider supplies the bearer token for one outbound request.
// Injected at construction so call sites never thread credentials
// manually and there is no settable process-wide getter.
type TokenProvider func(ctx context.Context) (string, error)

// StaticToken adapts a fixed API key to a TokenProvider.
func StaticToken(key string) TokenProvider {
	return func(context.Context) (string, error) { return key, nil }
}

// ContentGateway is everything the processing service does for us.
type ContentGateway interface {
	// Transform simplifies raw document text into sectioned safety
	// content (serialized sections document).
	Transform(ctx context.Context, content string) (string, error)
	// Translate renders processed content into the given language code.
	Translate(ctx context.Context, content, languageCode string) (string, error)
	// GenerateQuestions returns a serialized question payload written
	// in the given language display name.
	GenerateQuestions(ctx context.Context, content, languageName string, count int) (string, error)
}

type HTTPGateway struct {
	baseURL string
	token   TokenProvider
	client  *http.Client
}

func NewHTTPGateway(baseURL string, token TokenProvider) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		// AI calls are slow; this is the only place a long timeout is
		// acceptable.
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

func (g *HTTPGateway) Transform(ctx context.Context, content string) (string, error) {
	var out struct {
		Processed string `json:"processed"`
	}
	err := g.post(ctx, "/transform", map[string]any{"content": content}, &out)
	if err != nil {
		return "", err
	}
	return out.Processed, nil
}

func (g *HTTPGateway) Translate(ctx context.Context, content, languageCode string) (string, error) {
	var out struct {
		Translated string `json:"translated"`
	}
	err := g.post(ctx, "/translate", map[string]any{
		"content":  content,
		"language": languageCode,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Translated, nil
}

func (g *HTTPGateway) GenerateQuestions(ctx context.Context, content, languageName string, count int) (string, error) {
	var out struct {
		Questions json.RawMessage `json:"questions"`
	}
	err := g.post(ctx, "/questions", map[string]any{
		"content":  content,
		"language": languageName,
		"count":    count,
	}, &out)
	if err != nil {
		return "", err
	}
	return string(out.Questions), nil
}

func (g *HTTPGateway) post(ctx context.Context, endpoint string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("gateway marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if g.token != nil {
		token, err := g.token(ctx)
		if err != nil {
			return fmt.Errorf("gateway token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway call %s: status %d: %s", endpoint, resp.StatusCode, string(snippet))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway decode %s: %w", endpoint, err)
	}
	return nil
}
