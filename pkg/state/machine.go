package state

import (
	ferr "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Change records one element moving from one state to another.
type Change struct {
	Ref  graph.ElementRef `json:"ref"`
	From graph.State      `json:"from"`
	To   graph.State      `json:"to"`
}

// Machine applies transitions to the elements of a store.
// It holds no state of its own beyond the store reference.
type Machine struct {
	store *graph.Store
}

// NewMachine returns a machine operating on store.
func NewMachine(store *graph.Store) *Machine {
	return &Machine{store: store}
}

// Apply runs ev against the referenced element.
// Returns UNKNOWN_ELEMENT if ref does not resolve.
func (m *Machine) Apply(ref graph.ElementRef, ev Event) ([]Change, error) {
	cur, set, err := m.access(ref)
	if err != nil {
		return nil, err
	}
	return transition(ref, cur, Next(cur, ev), set), nil
}

// SetState forces the referenced element into st without cascading.
func (m *Machine) SetState(ref graph.ElementRef, st graph.State) ([]Change, error) {
	if _, err := graph.ParseState(string(st)); err != nil {
		return nil, err
	}
	cur, set, err := m.access(ref)
	if err != nil {
		return nil, err
	}
	return transition(ref, cur, st, set), nil
}

// ToggleHidden flips a node between hidden and active, then re-derives the
// visibility of each adjacent edge from its endpoints.
func (m *Machine) ToggleHidden(nodeID string) ([]Change, error) {
	n, ok := m.store.Node(nodeID)
	if !ok {
		return nil, ferr.New(ferr.ErrCodeUnknownElement, "node %q does not exist", nodeID)
	}
	changes := transition(n.Ref(), n.State, ToggleHidden(n.State), func(s graph.State) { n.State = s })
	for _, e := range n.AdjacentEdges() {
		next := EdgeVisibility(e.State, e.Source.State, e.Target.State)
		changes = append(changes, transition(e.Ref(), e.State, next, func(s graph.State) { e.State = s })...)
	}
	return changes, nil
}

// DeselectAll resets every node and edge to active, whatever their prior
// state. Only elements that actually changed are reported.
func (m *Machine) DeselectAll() []Change {
	var changes []Change
	for _, n := range m.store.Nodes() {
		changes = append(changes, transition(n.Ref(), n.State, graph.StateActive, func(s graph.State) { n.State = s })...)
	}
	for _, e := range m.store.AllEdges() {
		changes = append(changes, transition(e.Ref(), e.State, graph.StateActive, func(s graph.State) { e.State = s })...)
	}
	return changes
}

func (m *Machine) access(ref graph.ElementRef) (graph.State, func(graph.State), error) {
	n, e, ok := m.store.Lookup(ref)
	switch {
	case !ok:
		return "", nil, ferr.New(ferr.ErrCodeUnknownElement, "%s does not exist", ref)
	case n != nil:
		return n.State, func(s graph.State) { n.State = s }, nil
	default:
		return e.State, func(s graph.State) { e.State = s }, nil
	}
}

func transition(ref graph.ElementRef, from, to graph.State, set func(graph.State)) []Change {
	if from == to {
		return nil
	}
	set(to)
	return []Change{{Ref: ref, From: from, To: to}}
}

// Refs extracts the element references of changes.
func Refs(changes []Change) []graph.ElementRef {
	refs := make([]graph.ElementRef, len(changes))
	for i, c := range changes {
		refs[i] = c.Ref
	}
	return refs
}
