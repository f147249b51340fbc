package session

import (
	"encoding/json"
	"errors"
	"strings"
)

// Section is one titled block of processed content. Critical marks
// life-safety content.
type Section struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Critical bool   `json:"critical"`
}

// Question is one comprehension question. Correct is the index into
// Options.
type Question struct {
	Scenario string   `json:"scenario"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

// FallbackSectionTitle is used when content does not parse.
const FallbackSectionTitle = "Safety Information"

// ParseSections parses processed content as a sections document.
// Content comes out of an AI transformation and is not guaranteed
// well-formed, so any parse failure degrades to a single untitled
// section carrying the whole raw string. This never fails the flow.
func ParseSections(raw string) []Section {
	var doc struct {
		Sections []Section `json:"sections"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err == nil && len(doc.Sections) > 0 {
		return doc.Sections
	}

	return []Section{{
		Title:    FallbackSectionTitle,
		Body:     raw,
		Critical: false,
	}}
}

// ParseQuestions parses a serialized question payload. Unlike content,
// a malformed question set is a hard error: the flow cannot continue
// without questions to ask.
func ParseQuestions(raw string) ([]Question, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty question payload")
	}

	var doc struct {
		Questions []Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err == nil && doc.Questions != nil {
		return validQuestions(doc.Questions)
	}

	// the generator sometimes returns a bare array
	var list []Question
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	return validQuestions(list)
}

func validQuestions(in []Question) ([]Question, error) {
	out := make([]Question, 0, len(in))
	for _, q := range in {
		if len(q.Options) < 2 {
			continue
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			continue
		}
		if strings.TrimSpace(q.Question) == "" {
			continue
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil, errors.New("question payload contained no usable questions")
	}
	return out, nil
}

// SectionsText flattens sections into the text blob questions are
// generated from.
func SectionsText(sections []Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if strings.TrimSpace(s.Title) != "" {
			b.WriteString(s.Title)
			b.WriteString("\n")
		}
		b.WriteString(s.Body)
	}
	return b.String()
}
