// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about diagram mutations and HTTP bridge traffic.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the diagram core stays
// free of backend imports.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDiagramHooks(&myDiagramHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// The diagram calls hooks as it mutates:
//
//	observability.Diagram().OnElementCreated(d.ID(), ref.String())
//	observability.Diagram().OnStateChange(d.ID(), ref.String(), "active", "selected")
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Diagram Hooks
// =============================================================================

// DiagramHooks receives events from diagram operations. Element references
// are passed in their string form ("node:a", "edge:a-b#0").
//
// Diagram operations are synchronous and hooks are called inline; keep them
// fast.
type DiagramHooks interface {
	// OnElementCreated records a node or edge creation.
	OnElementCreated(diagram, ref string)

	// OnElementRemoved records removals, including cascaded edges.
	OnElementRemoved(diagram string, refs []string)

	// OnElementRejected records a failed create or remove. code is the error
	// code of err ("DUPLICATE_NODE", "MISSING_ENDPOINT", ...).
	OnElementRejected(diagram, kind, code string, err error)

	// OnStateChange records one element state transition.
	OnStateChange(diagram, ref, from, to string)

	// OnClustersIdentified records a clustering run.
	OnClustersIdentified(diagram string, clusters int, duration time.Duration)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP bridge.
type HTTPHooks interface {
	// OnRequest records an incoming request. route is the matched pattern.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDiagramHooks is a no-op implementation of DiagramHooks.
type NoopDiagramHooks struct{}

func (NoopDiagramHooks) OnElementCreated(string, string)                 {}
func (NoopDiagramHooks) OnElementRemoved(string, []string)               {}
func (NoopDiagramHooks) OnElementRejected(string, string, string, error) {}
func (NoopDiagramHooks) OnStateChange(string, string, string, string)    {}
func (NoopDiagramHooks) OnClustersIdentified(string, int, time.Duration) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	diagramHooks DiagramHooks = NoopDiagramHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetDiagramHooks registers custom diagram hooks.
// This should be called once at application startup before any diagram is created.
func SetDiagramHooks(h DiagramHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		diagramHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Diagram returns the registered diagram hooks.
func Diagram() DiagramHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return diagramHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	diagramHooks = NoopDiagramHooks{}
	httpHooks = NoopHTTPHooks{}
}
