package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Diagram hooks
	d := NoopDiagramHooks{}
	d.OnElementCreated("d1", "node:a")
	d.OnElementRemoved("d1", []string{"node:a", "edge:a-b#0"})
	d.OnElementRejected("d1", "node", "DUPLICATE_NODE", errors.New("dup"))
	d.OnStateChange("d1", "node:a", "active", "selected")
	d.OnClustersIdentified("d1", 3, time.Millisecond)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/api/diagrams/{id}/nodes")
	h.OnResponse(ctx, "POST", "/api/diagrams/{id}/nodes", 201, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Diagram().(NoopDiagramHooks); !ok {
		t.Error("Diagram() should return NoopDiagramHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customDiagram := &testDiagramHooks{}
	SetDiagramHooks(customDiagram)
	if Diagram() != customDiagram {
		t.Error("SetDiagramHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Diagram().OnElementCreated("d1", "node:a")
	if customDiagram.created != 1 {
		t.Errorf("created = %d, want 1", customDiagram.created)
	}

	// Reset and verify
	Reset()
	if _, ok := Diagram().(NoopDiagramHooks); !ok {
		t.Error("Reset() should restore NoopDiagramHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testDiagramHooks{}
	SetDiagramHooks(custom)

	// Setting nil should be ignored
	SetDiagramHooks(nil)

	if Diagram() != custom {
		t.Error("SetDiagramHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testDiagramHooks struct {
	NoopDiagramHooks
	created int
}

func (h *testDiagramHooks) OnElementCreated(string, string) { h.created++ }

type testHTTPHooks struct{ NoopHTTPHooks }
