package diagram

import (
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/forcegraph/pkg/config"
	ferr "github.com/matzehuels/forcegraph/pkg/errors"
)

// Session guards one diagram. All access from concurrent code goes through Do.
type Session struct {
	mu      sync.Mutex
	id      string
	created time.Time
	d       *Diagram
}

// ID returns the session handle, which is also the diagram id.
func (s *Session) ID() string { return s.id }

// Created returns the creation time.
func (s *Session) Created() time.Time { return s.created }

// Do runs fn with exclusive access to the diagram.
func (s *Session) Do(fn func(d *Diagram) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.d)
}

// Registry maps instance handles to diagram sessions.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *log.Logger
}

// NewRegistry creates an empty registry. Diagrams created through it log to
// logger.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{sessions: make(map[string]*Session), logger: logger}
}

// Create builds a diagram under a fresh handle.
func (r *Registry) Create(opts config.Options, options ...Option) (*Session, error) {
	id := uuid.NewString()
	options = append([]Option{WithLogger(r.logger)}, options...)
	options = append(options, WithID(id))
	d, err := New(opts, options...)
	if err != nil {
		return nil, err
	}
	s := &Session{id: id, created: time.Now(), d: d}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	r.logger.Debug("diagram created", "diagram", id)
	return s, nil
}

// Get returns the session for handle id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Lookup is Get with an UNKNOWN_ELEMENT error for missing handles.
func (r *Registry) Lookup(id string) (*Session, error) {
	if s, ok := r.Get(id); ok {
		return s, nil
	}
	return nil, ferr.New(ferr.ErrCodeUnknownElement, "diagram %q does not exist", id)
}

// Delete drops a session. Returns false if the handle is unknown.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	r.logger.Debug("diagram deleted", "diagram", id)
	return true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// IDs returns the live handles, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
