// Package state implements the visual state machine of diagram elements.
//
// The transition rules are pure functions over [graph.State] values; [Machine]
// applies them to the elements of a [graph.Store] and reports which elements
// changed so the caller can restyle and notify its renderer.
//
// Rules:
//
//   - Click: selected → active; anything else that is not hidden → selected.
//   - HoverEnter: not hidden and not selected → highlighted.
//   - HoverLeave: not hidden and not selected → active.
//   - ToggleHidden on a node flips active/hidden and re-derives the
//     visibility of every adjacent edge. This is the only cascade.
//   - DeselectAll puts every node and edge back to active.
//
// Clicking an element never changes the state of any other element.
package state

import (
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Event is a user interaction that drives a state transition.
type Event string

const (
	Click      Event = "click"
	HoverEnter Event = "hoverEnter"
	HoverLeave Event = "hoverLeave"
)

// Next returns the state an element in state current moves to on ev.
// Unknown events leave the state unchanged.
func Next(current graph.State, ev Event) graph.State {
	switch ev {
	case Click:
		switch current {
		case graph.StateSelected:
			return graph.StateActive
		case graph.StateHidden:
			return current
		}
		return graph.StateSelected
	case HoverEnter:
		if current == graph.StateHidden || current == graph.StateSelected {
			return current
		}
		return graph.StateHighlighted
	case HoverLeave:
		if current == graph.StateHidden || current == graph.StateSelected {
			return current
		}
		return graph.StateActive
	}
	return current
}

// ToggleHidden returns hidden for any visible state and active for hidden.
func ToggleHidden(current graph.State) graph.State {
	if current == graph.StateHidden {
		return graph.StateActive
	}
	return graph.StateHidden
}

// EdgeVisibility re-derives an edge's state from its endpoints after one of
// them was toggled. A hidden edge becomes active once both endpoints are
// active; a visible edge becomes hidden as soon as one endpoint is hidden.
func EdgeVisibility(edge, source, target graph.State) graph.State {
	if edge == graph.StateHidden {
		if source == graph.StateActive && target == graph.StateActive {
			return graph.StateActive
		}
		return edge
	}
	if source == graph.StateHidden || target == graph.StateHidden {
		return graph.StateHidden
	}
	return edge
}
