package diagram

import (
	"slices"
	"sync"

	"github.com/matzehuels/forcegraph/pkg/graph"
)

// RenderBridge receives dirty notifications. Implementations must not call
// back into the diagram from Dirty.
type RenderBridge interface {
	Dirty(refs []graph.ElementRef)
}

// BridgeFunc adapts a function to RenderBridge.
type BridgeFunc func(refs []graph.ElementRef)

// Dirty calls f(refs).
func (f BridgeFunc) Dirty(refs []graph.ElementRef) { f(refs) }

type nopBridge struct{}

func (nopBridge) Dirty([]graph.ElementRef) {}

// Recorder is a RenderBridge that keeps every notification it receives.
// It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	batches [][]graph.ElementRef
}

var _ RenderBridge = (*Recorder)(nil)

// Dirty records one batch.
func (r *Recorder) Dirty(refs []graph.ElementRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, slices.Clone(refs))
}

// Batches returns all recorded batches, oldest first.
func (r *Recorder) Batches() [][]graph.ElementRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]graph.ElementRef, len(r.batches))
	for i, b := range r.batches {
		out[i] = slices.Clone(b)
	}
	return out
}

// Last returns the most recent batch, or nil.
func (r *Recorder) Last() []graph.ElementRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.batches) == 0 {
		return nil
	}
	return slices.Clone(r.batches[len(r.batches)-1])
}

// Len returns the number of recorded batches.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

// Reset discards recorded batches.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = nil
}
