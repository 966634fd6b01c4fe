package diagram

import (
	ferr "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/observability"
	"github.com/matzehuels/forcegraph/pkg/state"
)

// Click toggles selection of the referenced element. Other elements are not
// affected.
func (d *Diagram) Click(ref graph.ElementRef) ([]state.Change, error) {
	return d.apply(ref, state.Click)
}

// HoverEnter highlights the referenced element unless it is selected or
// hidden.
func (d *Diagram) HoverEnter(ref graph.ElementRef) ([]state.Change, error) {
	return d.apply(ref, state.HoverEnter)
}

// HoverLeave returns a highlighted element to active.
func (d *Diagram) HoverLeave(ref graph.ElementRef) ([]state.Change, error) {
	return d.apply(ref, state.HoverLeave)
}

// Apply runs a named event against the referenced element.
func (d *Diagram) Apply(ref graph.ElementRef, ev state.Event) ([]state.Change, error) {
	switch ev {
	case state.Click, state.HoverEnter, state.HoverLeave:
		return d.apply(ref, ev)
	}
	return nil, ferr.New(ferr.ErrCodeInvalidInput, "unknown event %q", ev)
}

func (d *Diagram) apply(ref graph.ElementRef, ev state.Event) ([]state.Change, error) {
	changes, err := d.machine.Apply(ref, ev)
	if err != nil {
		return nil, d.reject(string(ref.Kind), string(ev), ref.String(), err)
	}
	d.changed(changes)
	return changes, nil
}

// SetState forces the referenced element into st. No cascade is applied.
func (d *Diagram) SetState(ref graph.ElementRef, st graph.State) ([]state.Change, error) {
	changes, err := d.machine.SetState(ref, st)
	if err != nil {
		return nil, d.reject(string(ref.Kind), "set state", ref.String(), err)
	}
	d.changed(changes)
	return changes, nil
}

// ToggleHidden hides a visible element or shows a hidden one. For nodes the
// adjacent edges follow: an edge is hidden while either endpoint is hidden and
// comes back once both are active again. Toggling an edge never touches its
// endpoints.
func (d *Diagram) ToggleHidden(ref graph.ElementRef) ([]state.Change, error) {
	var (
		changes []state.Change
		err     error
	)
	if ref.Kind == graph.KindNode {
		changes, err = d.machine.ToggleHidden(ref.ID)
	} else {
		_, e, ok := d.store.Lookup(ref)
		if !ok || e == nil {
			err = ferr.New(ferr.ErrCodeUnknownElement, "%s does not exist", ref)
		} else {
			changes, err = d.machine.SetState(ref, state.ToggleHidden(e.State))
		}
	}
	if err != nil {
		return nil, d.reject(string(ref.Kind), "toggle hidden", ref.String(), err)
	}
	d.changed(changes)
	return changes, nil
}

// DeselectAll returns every element to active.
func (d *Diagram) DeselectAll() []state.Change {
	changes := d.machine.DeselectAll()
	d.changed(changes)
	return changes
}

func (d *Diagram) changed(changes []state.Change) {
	hooks := observability.Diagram()
	for _, c := range changes {
		hooks.OnStateChange(d.id, c.Ref.String(), string(c.From), string(c.To))
	}
	d.notify(state.Refs(changes))
}
