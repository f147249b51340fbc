package session

import (
	"sync"
	"time"
)

// Store keeps live sessions in memory. Nothing is ever persisted: a
// reload starts the flow over, exactly like closing the tab.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// ReapExpired drops sessions idle past the TTL and completed or
// failed sessions past a short grace period. Returns how many were
// dropped.
func (st *Store) ReapExpired(now time.Time) int {
	const doneGrace = 5 * time.Minute

	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		touched := s.TouchedAt
		done := s.Step == StepComplete || s.Step == StepError
		s.mu.Unlock()

		expired := now.Sub(touched) > st.ttl
		if done && now.Sub(touched) > doneGrace {
			expired = true
		}
		if expired {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}
