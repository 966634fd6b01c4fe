package graph

import (
	"testing"

	ferr "github.com/matzehuels/forcegraph/pkg/errors"
)

func mustNode(t *testing.T, s *Store, kv ...any) *Node {
	t.Helper()
	n, err := s.CreateNode(NewProperties(kv...))
	if err != nil {
		t.Fatalf("CreateNode(%v): %v", kv, err)
	}
	return n
}

func mustEdge(t *testing.T, s *Store, kv ...any) *Edge {
	t.Helper()
	e, err := s.CreateEdge(NewProperties(kv...))
	if err != nil {
		t.Fatalf("CreateEdge(%v): %v", kv, err)
	}
	return e
}

func TestCreateNode_Duplicate(t *testing.T) {
	s := NewStore(Options{})
	mustNode(t, s, "id", "a", "name", "first")

	_, err := s.CreateNode(NewProperties("id", "a", "name", "second"))
	if !ferr.Is(err, ferr.ErrCodeDuplicateNode) {
		t.Fatalf("CreateNode duplicate error = %v, want DUPLICATE_NODE", err)
	}
	if s.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", s.NodeCount())
	}
	n, _ := s.Node("a")
	if got := n.Properties.String("name"); got != "first" {
		t.Errorf("original properties changed: name = %q", got)
	}
}

func TestCreateNode_InvalidID(t *testing.T) {
	s := NewStore(Options{})
	if _, err := s.CreateNode(NewProperties("name", "no id")); !ferr.Is(err, ferr.ErrCodeInvalidInput) {
		t.Errorf("missing id error = %v", err)
	}
	if _, err := s.CreateNode(nil); err == nil {
		t.Error("nil properties should fail")
	}
	if s.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0", s.NodeCount())
	}
}

func TestCreateNode_NumericID(t *testing.T) {
	s := NewStore(Options{})
	n := mustNode(t, s, "id", float64(7))
	if n.ID != "7" {
		t.Errorf("ID = %q, want 7", n.ID)
	}
}

func TestNodeType(t *testing.T) {
	tests := []struct {
		name string
		rule TypeRule
		kv   []any
		want string
	}{
		{"no rule", TypeRule{}, []any{"id", "a", "role", "db"}, "all"},
		{"rule hit", TypeRule{Key: "role"}, []any{"id", "a", "role", "db"}, "db"},
		{"missing property", TypeRule{Key: "role"}, []any{"id", "a"}, "all"},
		{"allowed value", TypeRule{Key: "role", Values: []string{"db"}}, []any{"id", "a", "role", "db"}, "db"},
		{"disallowed value", TypeRule{Key: "role", Values: []string{"web"}}, []any{"id", "a", "role", "db"}, "all"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(Options{NodeTypes: tt.rule})
			n := mustNode(t, s, tt.kv...)
			if n.Type != tt.want {
				t.Errorf("Type = %q, want %q", n.Type, tt.want)
			}
		})
	}
}

func TestCreateEdge_Parallel(t *testing.T) {
	s := NewStore(Options{})
	mustNode(t, s, "id", "A")
	mustNode(t, s, "id", "B")

	e0 := mustEdge(t, s, "source", "A", "target", "B")
	e1 := mustEdge(t, s, "source", "A", "target", "B")

	if e0.ID != "A-B" || e1.ID != "A-B" {
		t.Errorf("ids = %q, %q, want A-B", e0.ID, e1.ID)
	}
	if e0.Index != 0 || e1.Index != 1 {
		t.Errorf("indices = %d, %d, want 0, 1", e0.Index, e1.Index)
	}
	got := s.Edges("A", "B")
	if len(got) != 2 || got[0] != e0 || got[1] != e1 {
		t.Errorf("Edges(A, B) = %v", got)
	}
	if len(s.Edges("B", "A")) != 0 {
		t.Error("Edges(B, A) should be empty")
	}

	a, _ := s.Node("A")
	if a.Degree() != 2 {
		t.Errorf("A.Degree() = %d, want 2", a.Degree())
	}
}

func TestCreateEdge_ExplicitNamespace(t *testing.T) {
	s := NewStore(Options{})
	mustNode(t, s, "id", "A")
	mustNode(t, s, "id", "B")

	explicit := mustEdge(t, s, "id", "A-B", "source", "A", "target", "B")
	keyed := mustEdge(t, s, "source", "A", "target", "B")

	if !explicit.Explicit || keyed.Explicit {
		t.Fatal("namespace flags wrong")
	}
	if keyed.Index != 0 {
		t.Errorf("keyed Index = %d, want 0 (explicit edges do not count)", keyed.Index)
	}
	if e, _ := s.Edge("A-B"); e != explicit {
		t.Error("Edge(id) should prefer the explicit namespace")
	}
	if _, e, _ := s.Lookup(keyed.Ref()); e != keyed {
		t.Error("Lookup(keyed ref) failed")
	}
	if _, e, _ := s.Lookup(explicit.Ref()); e != explicit {
		t.Error("Lookup(explicit ref) failed")
	}

	_, err := s.CreateEdge(NewProperties("id", "A-B", "source", "B", "target", "A"))
	if !ferr.Is(err, ferr.ErrCodeDuplicateEdge) {
		t.Errorf("duplicate explicit id error = %v", err)
	}
	if s.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", s.EdgeCount())
	}
}

func TestCreateEdge_MissingEndpoint(t *testing.T) {
	s := NewStore(Options{})
	mustNode(t, s, "id", "A")

	for _, kv := range [][]any{
		{"source", "A", "target", "Z"},
		{"source", "Z", "target", "A"},
		{"id", "e1", "source", "A"},
	} {
		if _, err := s.CreateEdge(NewProperties(kv...)); !ferr.Is(err, ferr.ErrCodeMissingEndpoint) {
			t.Errorf("CreateEdge(%v) error = %v, want MISSING_ENDPOINT", kv, err)
		}
	}
	a, _ := s.Node("A")
	if s.EdgeCount() != 0 || a.Degree() != 0 {
		t.Error("failed creates must not mutate the store")
	}
}

func TestSelfLoopAttachesOnce(t *testing.T) {
	s := NewStore(Options{})
	a := mustNode(t, s, "id", "A")
	e := mustEdge(t, s, "source", "A", "target", "A")
	if a.Degree() != 1 {
		t.Errorf("Degree() = %d, want 1", a.Degree())
	}
	if !e.IsSelfLoop() {
		t.Error("IsSelfLoop() = false")
	}
	if _, ok := s.RemoveNode("A"); !ok {
		t.Fatal("RemoveNode failed")
	}
	if s.EdgeCount() != 0 {
		t.Error("self loop not removed")
	}
}

func TestRemoveNode_Cascade(t *testing.T) {
	s := NewStore(Options{})
	mustNode(t, s, "id", "A")
	b := mustNode(t, s, "id", "B")
	c := mustNode(t, s, "id", "C")
	mustEdge(t, s, "source", "A", "target", "B")
	mustEdge(t, s, "source", "A", "target", "C")
	mustEdge(t, s, "source", "B", "target", "C")

	r, ok := s.RemoveNode("A")
	if !ok {
		t.Fatal("RemoveNode(A) = false")
	}
	if len(r.Edges) != 2 {
		t.Errorf("removed %d edges, want 2", len(r.Edges))
	}
	if r.Node.Degree() != 0 {
		t.Error("A adjacency not empty")
	}
	if len(s.Edges("A", "B")) != 0 || len(s.Edges("A", "C")) != 0 {
		t.Error("A-B or A-C still stored")
	}
	if b.Degree() != 1 || c.Degree() != 1 {
		t.Errorf("B.Degree() = %d, C.Degree() = %d, want 1, 1", b.Degree(), c.Degree())
	}
	if _, ok := s.Node("A"); ok {
		t.Error("A still stored")
	}

	if _, ok := s.RemoveNode("A"); ok {
		t.Error("second RemoveNode(A) should be a no-op")
	}
}

func TestRemoveEdge_Renumbers(t *testing.T) {
	s := NewStore(Options{})
	mustNode(t, s, "id", "A")
	mustNode(t, s, "id", "B")
	e0 := mustEdge(t, s, "source", "A", "target", "B")
	e1 := mustEdge(t, s, "source", "A", "target", "B")
	e2 := mustEdge(t, s, "source", "A", "target", "B")

	renumbered, err := s.RemoveEdge(e0)
	if err != nil {
		t.Fatalf("RemoveEdge: %v", err)
	}
	if len(renumbered) != 2 || e1.Index != 0 || e2.Index != 1 {
		t.Errorf("after removal indices = %d, %d (renumbered %d)", e1.Index, e2.Index, len(renumbered))
	}
	e3 := mustEdge(t, s, "source", "A", "target", "B")
	if e3.Index != 2 {
		t.Errorf("new edge Index = %d, want 2", e3.Index)
	}

	if _, err := s.RemoveEdge(e0); !ferr.Is(err, ferr.ErrCodeUnknownElement) {
		t.Errorf("removing twice error = %v", err)
	}
}

func TestAllEdgesOrder(t *testing.T) {
	s := NewStore(Options{})
	for _, id := range []string{"A", "B", "C"} {
		mustNode(t, s, "id", id)
	}
	ab0 := mustEdge(t, s, "source", "A", "target", "B")
	bc := mustEdge(t, s, "source", "B", "target", "C")
	x := mustEdge(t, s, "id", "x", "source", "C", "target", "A")
	ab1 := mustEdge(t, s, "source", "A", "target", "B")

	want := []*Edge{ab0, ab1, bc, x}
	got := s.AllEdges()
	if len(got) != len(want) {
		t.Fatalf("AllEdges() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllEdges()[%d] = %s, want %s", i, got[i].Ref(), want[i].Ref())
		}
	}
}

func TestLookupsByTypeAndState(t *testing.T) {
	s := NewStore(Options{NodeTypes: TypeRule{Key: "kind"}, EdgeTypes: TypeRule{Key: "rel"}})
	a := mustNode(t, s, "id", "a", "kind", "svc")
	mustNode(t, s, "id", "b", "kind", "db")
	mustNode(t, s, "id", "c", "kind", "svc")
	e := mustEdge(t, s, "source", "a", "target", "b", "rel", "reads")

	if got := s.NodesByType("svc"); len(got) != 2 {
		t.Errorf("NodesByType(svc) = %d nodes", len(got))
	}
	if got := s.NodeTypes(); len(got) != 2 || got[0] != "svc" || got[1] != "db" {
		t.Errorf("NodeTypes() = %v", got)
	}
	if got := s.EdgesByType("reads"); len(got) != 1 || got[0] != e {
		t.Errorf("EdgesByType(reads) = %v", got)
	}
	a.State = StateSelected
	if got := s.NodesByState(StateSelected); len(got) != 1 || got[0] != a {
		t.Errorf("NodesByState(selected) = %v", got)
	}
	if got := s.EdgesByState(StateActive); len(got) != 1 {
		t.Errorf("EdgesByState(active) = %v", got)
	}
}

func TestParseState(t *testing.T) {
	for _, st := range States {
		if got, err := ParseState(string(st)); err != nil || got != st {
			t.Errorf("ParseState(%q) = %q, %v", st, got, err)
		}
	}
	if _, err := ParseState("faded"); !ferr.Is(err, ferr.ErrCodeInvalidState) {
		t.Errorf("ParseState(faded) error = %v", err)
	}
}

func TestElementRefString(t *testing.T) {
	tests := []struct {
		ref  ElementRef
		want string
	}{
		{NodeRef("a"), "node:a"},
		{ElementRef{Kind: KindEdge, ID: "a-b", Index: 1}, "edge:a-b#1"},
		{ElementRef{Kind: KindEdge, ID: "e1", Explicit: true}, "edge:e1"},
	}
	for _, tt := range tests {
		if got := tt.ref.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEdges_CompositeKeyCollision(t *testing.T) {
	s := NewStore(Options{})
	for _, id := range []string{"a", "b", "c", "a-b", "b-c"} {
		mustNode(t, s, "id", id)
	}
	other := mustEdge(t, s, "source", "a-b", "target", "c")
	e := mustEdge(t, s, "source", "a", "target", "b-c")

	if other.ID != e.ID {
		t.Fatalf("ids = %q, %q, want a shared composite key", other.ID, e.ID)
	}
	if got := s.Edges("a", "b-c"); len(got) != 1 || got[0] != e {
		t.Errorf("Edges(a, b-c) = %v", got)
	}
	if got := s.Edges("a-b", "c"); len(got) != 1 || got[0] != other {
		t.Errorf("Edges(a-b, c) = %v", got)
	}
	if got := s.Keyed("a-b-c"); len(got) != 2 {
		t.Errorf("Keyed(a-b-c) = %v", got)
	}

	if _, err := s.RemoveEdge(other); err != nil {
		t.Fatal(err)
	}
	if e.Index != 0 {
		t.Errorf("Index after removal = %d, want 0", e.Index)
	}
}

func TestCaptions(t *testing.T) {
	s := NewStore(Options{})
	a := mustNode(t, s, "id", "a")
	b := mustNode(t, s, "id", "b", "caption", "Beta")
	plain := mustEdge(t, s, "source", "a", "target", "b")
	named := mustEdge(t, s, "source", "b", "target", "a", "caption", "back")

	if got := a.Caption("caption"); got != "a" {
		t.Errorf("node caption = %q, want id fallback", got)
	}
	if got := b.Caption("caption"); got != "Beta" {
		t.Errorf("node caption = %q", got)
	}
	if got := plain.Caption("caption"); got != "" {
		t.Errorf("edge caption = %q, want empty", got)
	}
	if got := named.Caption("caption"); got != "back" {
		t.Errorf("edge caption = %q", got)
	}
}
