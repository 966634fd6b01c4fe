package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/diagram"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

func exploreFixture(t *testing.T) (ExploreModel, *diagram.Diagram, *diagram.Recorder) {
	t.Helper()
	rec := &diagram.Recorder{}
	d, err := diagram.New(config.Default(), diagram.WithBridge(rec))
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"a", "b"} {
		if _, err := d.CreateNode(graph.NewProperties("id", id)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := d.CreateEdge(graph.NewProperties("source", "a", "target", "b")); err != nil {
		t.Fatal(err)
	}
	rec.Reset()
	return NewExploreModel(d, rec), d, rec
}

func press(m ExploreModel, keys ...string) ExploreModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(ExploreModel)
	}
	return m
}

func stateOf(t *testing.T, d *diagram.Diagram, ref graph.ElementRef) graph.State {
	t.Helper()
	s, err := d.Snapshot(ref)
	if err != nil {
		t.Fatal(err)
	}
	return s.State
}

func TestExploreModel_Hover(t *testing.T) {
	m, d, _ := exploreFixture(t)
	if len(m.Refs) != 3 {
		t.Fatalf("refs = %v", m.Refs)
	}
	if got := stateOf(t, d, graph.NodeRef("a")); got != graph.StateHighlighted {
		t.Errorf("first element state = %s", got)
	}

	m = press(m, "down")
	if m.Cursor != 1 {
		t.Errorf("cursor = %d", m.Cursor)
	}
	if got := stateOf(t, d, graph.NodeRef("a")); got != graph.StateActive {
		t.Errorf("a after leaving = %s", got)
	}
	if got := stateOf(t, d, graph.NodeRef("b")); got != graph.StateHighlighted {
		t.Errorf("b after entering = %s", got)
	}

	m = press(m, "up", "up")
	if m.Cursor != 0 {
		t.Errorf("cursor should stop at 0, got %d", m.Cursor)
	}
}

func TestExploreModel_Actions(t *testing.T) {
	m, d, rec := exploreFixture(t)

	m = press(m, "enter")
	if got := stateOf(t, d, graph.NodeRef("a")); got != graph.StateSelected {
		t.Errorf("a after click = %s", got)
	}

	m = press(m, "down", "h")
	if got := stateOf(t, d, graph.NodeRef("b")); got != graph.StateHidden {
		t.Errorf("b after hide = %s", got)
	}
	if got := stateOf(t, d, m.Refs[2]); got != graph.StateHidden {
		t.Errorf("edge should follow its hidden endpoint, got %s", got)
	}

	m = press(m, "d")
	for _, ref := range m.Refs {
		if got := stateOf(t, d, ref); got != graph.StateActive {
			t.Errorf("%s after deselect = %s", ref, got)
		}
	}

	m = press(m, "c")
	if !d.Clustered() || !strings.Contains(m.Status, "clustering on") {
		t.Errorf("clustered = %v, status = %q", d.Clustered(), m.Status)
	}
	if rec.Len() == 0 {
		t.Error("renderer received no notifications")
	}
}

func TestExploreModel_ViewAndQuit(t *testing.T) {
	m, _, _ := exploreFixture(t)
	view := m.View()
	for _, want := range []string{"node:a", "edge:a-b#0", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestDescribe(t *testing.T) {
	if got := describe(nil); got != "no change" {
		t.Errorf("describe(nil) = %q", got)
	}
}
