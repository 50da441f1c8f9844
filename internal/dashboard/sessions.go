package dashboard

import (
	"log/slog"
	"sync"
)

// Sessions is a bounded registry of live sessions keyed by id. When full,
// creating a session evicts the oldest one.
//
// Thread-safety: Sessions is safe for concurrent use via internal mutex.
type Sessions struct {
	dash  *Dashboard
	ids   IDGenerator
	limit int

	mu    sync.Mutex
	byID  map[string]*Session
	order []string
}

// NewSessions creates a registry over dash. A nil ids uses UUIDv7Generator;
// a non-positive limit means 1.
func NewSessions(dash *Dashboard, ids IDGenerator, limit int) *Sessions {
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	if limit <= 0 {
		limit = 1
	}
	return &Sessions{
		dash:  dash,
		ids:   ids,
		limit: limit,
		byID:  make(map[string]*Session),
	}
}

// Create starts a new session in the default state.
func (r *Sessions) Create() (*Session, error) {
	id := r.ids.Generate()
	s, err := r.dash.NewSession(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; exists {
		r.remove(id)
	}
	for len(r.order) >= r.limit {
		evicted := r.order[0]
		r.remove(evicted)
		r.dash.logger.Debug("session evicted", slog.String("session", evicted))
	}
	r.byID[id] = s
	r.order = append(r.order, id)
	return s, nil
}

// Get returns the session with id, or ErrSessionNotFound.
func (r *Sessions) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Len returns the number of live sessions.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// remove drops id. Caller must hold r.mu.
func (r *Sessions) remove(id string) {
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}
