package smartsuite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeModule(t *testing.T) {
	raw := []byte(`{
		"id": "rec_9f3ab",
		"fields": {
			"s54fa1c09": "Ladder Safety",
			"s1d88e3b2": "raw text",
			"s8f3c2a1b": "{\"sections\":[]}",
			"sa91d0e4f": "{\"questions\":[]}",
			"s2c7b9f10": {"value": "Ready"},
			"s6e0a4d73": "EN"
		}
	}`)

	m, err := DecodeModule(raw)
	require.NoError(t, err)
	assert.Equal(t, "rec_9f3ab", m.ID)
	assert.Equal(t, "Ladder Safety", m.Title)
	assert.Equal(t, "raw text", m.RawContent)
	assert.Equal(t, `{"sections":[]}`, m.ProcessedContent)
	assert.Equal(t, `{"questions":[]}`, m.QuestionsPayload)
	assert.Equal(t, "ready", m.Status, "single-select value is lowered")
	assert.Equal(t, "en", m.NativeLanguage)
}

func TestDecodeModuleDefaults(t *testing.T) {
	m, err := DecodeModule([]byte(`{"id":"rec_1","fields":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "created", m.Status)
	assert.Equal(t, "en", m.NativeLanguage)
	assert.Empty(t, m.ProcessedContent)
}

func TestDecodeModuleErrors(t *testing.T) {
	_, err := DecodeModule([]byte(`not json`))
	assert.Error(t, err)

	_, err = DecodeModule([]byte(`{"fields":{}}`))
	assert.Error(t, err, "record without id is rejected")
}

func TestDecodeModuleQuestionsAsObject(t *testing.T) {
	// some rows store the payload as an embedded document rather than
	// a serialized string
	raw := []byte(`{"id":"rec_2","fields":{"sa91d0e4f":{"questions":[{"question":"Q","options":["a","b"],"correct":0}]}}}`)

	m, err := DecodeModule(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"questions":[{"question":"Q","options":["a","b"],"correct":0}]}`, m.QuestionsPayload)
}
