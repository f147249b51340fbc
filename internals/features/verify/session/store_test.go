package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGetDelete(t *testing.T) {
	st := NewStore(time.Hour)
	s := &Session{ID: "s1", Step: StepLanguage, TouchedAt: time.Now()}

	st.Put(s)
	got, ok := st.Get("s1")
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = st.Get("missing")
	assert.False(t, ok)

	st.Delete("s1")
	assert.Equal(t, 0, st.Len())
}

func TestReapExpired(t *testing.T) {
	st := NewStore(time.Hour)
	now := time.Now()

	st.Put(&Session{ID: "fresh", Step: StepQuestions, TouchedAt: now.Add(-time.Minute)})
	st.Put(&Session{ID: "idle", Step: StepQuestions, TouchedAt: now.Add(-2 * time.Hour)})
	st.Put(&Session{ID: "done-old", Step: StepComplete, TouchedAt: now.Add(-10 * time.Minute)})
	st.Put(&Session{ID: "done-new", Step: StepComplete, TouchedAt: now.Add(-time.Minute)})
	st.Put(&Session{ID: "failed-old", Step: StepError, TouchedAt: now.Add(-10 * time.Minute)})

	n := st.ReapExpired(now)
	assert.Equal(t, 3, n)

	_, ok := st.Get("fresh")
	assert.True(t, ok)
	_, ok = st.Get("done-new")
	assert.True(t, ok, "completed sessions linger for the grace period")
	_, ok = st.Get("idle")
	assert.False(t, ok)
	_, ok = st.Get("done-old")
	assert.False(t, ok)
	_, ok = st.Get("failed-old")
	assert.False(t, ok)
}
