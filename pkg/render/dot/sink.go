package dot

import (
	"sync"

	"github.com/matzehuels/forcegraph/pkg/diagram"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Sink keeps a DOT rendering in step with a diagram. Dirty only marks the
// cached source stale; DOT regenerates it on demand from the frame source.
type Sink struct {
	mu      sync.Mutex
	frame   func() diagram.Frame
	opts    Options
	cached  string
	stale   bool
	updates int
	touched map[graph.ElementRef]int
}

var _ diagram.RenderBridge = (*Sink)(nil)

// NewSink creates a sink that renders frames produced by frame.
func NewSink(frame func() diagram.Frame, opts Options) *Sink {
	return &Sink{frame: frame, opts: opts, stale: true, touched: map[graph.ElementRef]int{}}
}

// Dirty records a notification.
func (s *Sink) Dirty(refs []graph.ElementRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stale = true
	s.updates++
	for _, r := range refs {
		s.touched[r]++
	}
}

// DOT returns the current DOT source, regenerating it if a notification
// arrived since the last call.
func (s *Sink) DOT() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale {
		s.cached = ToDOT(s.frame(), s.opts)
		s.stale = false
	}
	return s.cached
}

// Updates returns the number of notifications received.
func (s *Sink) Updates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates
}

// Touched returns how many notifications named ref.
func (s *Sink) Touched(ref graph.ElementRef) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched[ref]
}
