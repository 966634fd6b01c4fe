package style

import (
	"testing"

	"github.com/matzehuels/forcegraph/pkg/cluster"
	ferr "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

func newStore(t *testing.T) *graph.Store {
	t.Helper()
	s := graph.NewStore(graph.Options{NodeTypes: graph.TypeRule{Key: "kind"}})
	for _, kv := range [][]any{
		{"id", "a", "kind", "db", "caption", "Alpha", "cluster", "x"},
		{"id", "b", "cluster", "y"},
	} {
		if _, err := s.CreateNode(graph.NewProperties(kv...)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.CreateEdge(graph.NewProperties("source", "a", "target", "b", "caption", "uses")); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestValue(t *testing.T) {
	var unset Value[int]
	if unset.IsSet() || unset.Resolve(Element{}) != 0 {
		t.Error("zero Value should be unset and resolve to zero")
	}
	c := Constant(3)
	if !c.IsSet() || c.IsComputed() || c.Resolve(Element{}) != 3 {
		t.Error("Constant misbehaves")
	}
	f := Computed(func(el Element) int { return int(el.Radius) * 2 })
	if !f.IsComputed() || f.Resolve(Element{Radius: 4}) != 8 {
		t.Error("Computed misbehaves")
	}
	if Computed[int](nil).IsSet() {
		t.Error("Computed(nil) should be unset")
	}
	if unset.Or(c).Resolve(Element{}) != 3 || c.Or(Constant(9)).Resolve(Element{}) != 3 {
		t.Error("Or precedence wrong")
	}
}

func TestResolver_NodeDefaults(t *testing.T) {
	s := newStore(t)
	r := &Resolver{NodeCaption: "caption"}
	a, _ := s.Node("a")
	b, _ := s.Node("b")

	snap := r.Node(a)
	if snap.Fill != "#68B9FE" || snap.Stroke != "#127DC1" || snap.Radius != 10 {
		t.Errorf("default snapshot = %+v", snap)
	}
	if snap.StrokeWidth != 10.0/3 {
		t.Errorf("StrokeWidth = %v, want radius/3", snap.StrokeWidth)
	}
	if snap.Caption != "Alpha" {
		t.Errorf("Caption = %q", snap.Caption)
	}
	if got := r.Node(b).Caption; got != "b" {
		t.Errorf("Caption fallback = %q, want id", got)
	}
}

func TestResolver_NodeStates(t *testing.T) {
	s := newStore(t)
	r := &Resolver{}
	a, _ := s.Node("a")

	tests := []struct {
		state   graph.State
		fill    string
		opacity float64
	}{
		{graph.StateActive, "#68B9FE", 1},
		{graph.StateSelected, "#FFFFFF", 1},
		{graph.StateHighlighted, "#EEEEFF", 1},
		{graph.StateHidden, "none", 0},
	}
	for _, tt := range tests {
		a.State = tt.state
		snap := r.Node(a)
		if snap.Fill != tt.fill || snap.Opacity != tt.opacity {
			t.Errorf("%s: fill=%s opacity=%v, want %s %v", tt.state, snap.Fill, snap.Opacity, tt.fill, tt.opacity)
		}
		if snap.Visible() != (tt.state != graph.StateHidden) {
			t.Errorf("%s: Visible() = %v", tt.state, snap.Visible())
		}
	}
}

func TestResolver_TypeLayers(t *testing.T) {
	s := newStore(t)
	r := &Resolver{Nodes: NodeTable{
		graph.DefaultType: {Base: NodeStyle{Radius: Constant(20.0)}},
		"db": {
			Base:   NodeStyle{Fill: Constant("#000000")},
			States: map[graph.State]NodeStyle{graph.StateSelected: {Fill: Constant("#FF0000")}},
		},
	}}
	a, _ := s.Node("a")
	b, _ := s.Node("b")

	if snap := r.Node(a); snap.Fill != "#000000" || snap.Radius != 20 || snap.StrokeWidth != 20.0/3 {
		t.Errorf("db node = %+v", snap)
	}
	if snap := r.Node(b); snap.Fill != "#68B9FE" || snap.Radius != 20 {
		t.Errorf("untyped node = %+v", snap)
	}
	a.State = graph.StateSelected
	if snap := r.Node(a); snap.Fill != "#FF0000" {
		t.Errorf("selected db fill = %s", snap.Fill)
	}
}

func TestResolver_ClusterColours(t *testing.T) {
	s := newStore(t)
	engine, err := cluster.New(cluster.Options{Palette: []string{"#111111", "#222222"}})
	if err != nil {
		t.Fatal(err)
	}
	engine.Identify(s)
	r := &Resolver{Painter: engine}
	a, _ := s.Node("a")

	if snap := r.Node(a); snap.Fill != "#111111" || snap.Stroke != "#111111" {
		t.Errorf("clustered node = %+v", snap)
	}
	a.State = graph.StateSelected
	if snap := r.Node(a); snap.Fill != "#FFFFFF" {
		t.Errorf("state overrides must beat cluster colour, fill = %s", snap.Fill)
	}

	e := s.Edges("a", "b")[0]
	snap := r.Edge(e)
	if snap.Gradient != "cluster-gradient-0-1" {
		t.Errorf("edge gradient = %q", snap.Gradient)
	}
	if snap.Stroke == "#CCCCCC" {
		t.Error("cross-cluster edge should not use the default stroke")
	}
}

func TestResolver_EdgeDefaults(t *testing.T) {
	s := newStore(t)
	r := &Resolver{EdgeCaption: "caption"}
	e := s.Edges("a", "b")[0]

	snap := r.Edge(e)
	if snap.Stroke != "#CCCCCC" || snap.StrokeWidth != 4 || snap.Opacity != 0.2 || !snap.Directed || !snap.Curved {
		t.Errorf("edge snapshot = %+v", snap)
	}
	if snap.Caption != "uses" {
		t.Errorf("Caption = %q", snap.Caption)
	}
	e.State = graph.StateHighlighted
	if got := r.Edge(e).Opacity; got != 1 {
		t.Errorf("highlighted opacity = %v", got)
	}
	e.State = graph.StateHidden
	if got := r.Edge(e).Opacity; got != 0 {
		t.Errorf("hidden opacity = %v", got)
	}
}

func TestTablesFromSpecs(t *testing.T) {
	fill := "#ABCDEF"
	radius := 14.0
	opacity := 0.5
	nodes, err := NodeTableFromSpecs(map[string]Spec{
		"db": {Fill: &fill, Radius: &radius, States: map[string]Spec{"highlighted": {Opacity: &opacity}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	s := newStore(t)
	a, _ := s.Node("a")
	r := &Resolver{Nodes: nodes}
	if snap := r.Node(a); snap.Fill != fill || snap.Radius != radius {
		t.Errorf("spec node = %+v", snap)
	}
	a.State = graph.StateHighlighted
	if snap := r.Node(a); snap.Opacity != 0.5 {
		t.Errorf("spec highlighted opacity = %v", snap.Opacity)
	}

	width := 9.0
	edges, err := EdgeTableFromSpecs(map[string]Spec{graph.DefaultType: {StrokeWidth: &width}})
	if err != nil {
		t.Fatal(err)
	}
	if got := (&Resolver{Edges: edges}).Edge(s.Edges("a", "b")[0]).StrokeWidth; got != 9 {
		t.Errorf("spec edge width = %v", got)
	}

	if _, err := NodeTableFromSpecs(map[string]Spec{"db": {States: map[string]Spec{"glowing": {}}}}); !ferr.Is(err, ferr.ErrCodeInvalidState) {
		t.Errorf("unknown state error = %v", err)
	}
}
