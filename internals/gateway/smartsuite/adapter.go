// Package smartsuite maps module records held in the low-code store
// onto the stable internal schema. The provider assigns opaque field
// ids; they must never leak past this adapter.
package smartsuite

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Provider-assigned field ids for the modules table. These come from
// the table definition, not from us; changing the table regenerates
// them.
const (
	fieldTitle            = "s54fa1c09"
	fieldRawContent       = "s1d88e3b2"
	fieldProcessedContent = "s8f3c2a1b"
	fieldQuestionsPayload = "sa91d0e4f"
	fieldStatus           = "s2c7b9f10"
	fieldNativeLanguage   = "s6e0a4d73"
)

// ModuleRecord is the stable internal shape a provider record decodes
// into.
type ModuleRecord struct {
	ID               string
	Title            string
	RawContent       string
	ProcessedContent string
	QuestionsPayload string
	Status           string
	NativeLanguage   string
}

// DecodeModule decodes one provider record. Missing fields decode to
// empty values; status falls back to "created".
func DecodeModule(raw []byte) (*ModuleRecord, error) {
	var rec struct {
		ID     string                     `json:"id"`
		Fields map[string]json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("smartsuite decode: %w", err)
	}
	if rec.ID == "" {
		return nil, fmt.Errorf("smartsuite decode: record without id")
	}

	m := &ModuleRecord{ID: rec.ID}
	m.Title = stringField(rec.Fields, fieldTitle)
	m.RawContent = stringField(rec.Fields, fieldRawContent)
	m.ProcessedContent = stringField(rec.Fields, fieldProcessedContent)
	m.QuestionsPayload = rawField(rec.Fields, fieldQuestionsPayload)
	m.Status = strings.ToLower(stringField(rec.Fields, fieldStatus))
	if m.Status == "" {
		m.Status = "created"
	}
	m.NativeLanguage = strings.ToLower(stringField(rec.Fields, fieldNativeLanguage))
	if m.NativeLanguage == "" {
		m.NativeLanguage = "en"
	}
	return m, nil
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	// single-select fields arrive as {"value": "..."}
	var sel struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &sel); err == nil {
		return sel.Value
	}
	return ""
}

// rawField keeps serialized sub-documents (the question set) as the
// raw string they were stored as.
func rawField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
