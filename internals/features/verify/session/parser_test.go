package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSectionsWellFormed(t *testing.T) {
	raw := `{"sections":[
		{"title":"PPE","body":"Wear a helmet.","critical":true},
		{"title":"Exits","body":"Know the routes.","critical":false},
		{"title":"Spills","body":"Report immediately.","critical":true}
	]}`

	got := ParseSections(raw)
	require.Len(t, got, 3)
	assert.Equal(t, "PPE", got[0].Title)
	assert.True(t, got[0].Critical)
	assert.Equal(t, "Exits", got[1].Title)
	assert.False(t, got[1].Critical)
	assert.Equal(t, "Report immediately.", got[2].Body)
}

func TestParseSectionsMalformedFallsBack(t *testing.T) {
	for _, raw := range []string{
		"Just plain prose about ladder safety.",
		`{"sections": "oops"}`,
		`{"sections": []}`,
		`{`,
	} {
		got := ParseSections(raw)
		require.Len(t, got, 1, "raw=%q", raw)
		assert.Equal(t, FallbackSectionTitle, got[0].Title)
		assert.Equal(t, raw, got[0].Body, "fallback keeps the full raw content")
		assert.False(t, got[0].Critical)
	}
}

func TestParseQuestionsObjectShape(t *testing.T) {
	raw := `{"questions":[
		{"scenario":"On the floor","question":"What first?","options":["Run","Report","Ignore"],"correct":1},
		{"question":"Helmet zone?","options":["Yes","No"],"correct":0}
	]}`

	got, err := ParseQuestions(raw)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "On the floor", got[0].Scenario)
	assert.Equal(t, 1, got[0].Correct)
}

func TestParseQuestionsBareArray(t *testing.T) {
	raw := `[{"question":"Q","options":["a","b"],"correct":1}]`

	got, err := ParseQuestions(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Correct)
}

func TestParseQuestionsFiltersUnusable(t *testing.T) {
	raw := `{"questions":[
		{"question":"only one option","options":["a"],"correct":0},
		{"question":"bad index","options":["a","b"],"correct":5},
		{"question":"   ","options":["a","b"],"correct":0},
		{"question":"keeper","options":["a","b","c"],"correct":2}
	]}`

	got, err := ParseQuestions(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "keeper", got[0].Question)
}

func TestParseQuestionsHardErrors(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"not json",
		`{"questions":[{"question":"bad","options":["a"],"correct":0}]}`,
	} {
		_, err := ParseQuestions(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestSectionsText(t *testing.T) {
	blob := SectionsText([]Section{
		{Title: "PPE", Body: "Wear a helmet."},
		{Title: "", Body: "Untitled body."},
	})
	assert.Equal(t, "PPE\nWear a helmet.\n\nUntitled body.", blob)
}

func TestComputeScoreBoundaries(t *testing.T) {
	five := []Question{
		{Question: "1", Options: []string{"a", "b"}, Correct: 0},
		{Question: "2", Options: []string{"a", "b"}, Correct: 0},
		{Question: "3", Options: []string{"a", "b"}, Correct: 0},
		{Question: "4", Options: []string{"a", "b"}, Correct: 0},
		{Question: "5", Options: []string{"a", "b"}, Correct: 0},
	}

	// 4/5 is exactly the pass mark
	score, passed := ComputeScore(five, []int{0, 0, 0, 0, 1})
	assert.Equal(t, 80, score)
	assert.True(t, passed)

	// 3/5 fails
	score, passed = ComputeScore(five, []int{0, 0, 0, 1, 1})
	assert.Equal(t, 60, score)
	assert.False(t, passed)

	// rounding: 2/3 correct is 66.7 -> 67
	score, _ = ComputeScore(five[:3], []int{0, 0, 1})
	assert.Equal(t, 67, score)

	// empty set guard
	score, passed = ComputeScore(nil, nil)
	assert.Equal(t, 0, score)
	assert.False(t, passed)
}
