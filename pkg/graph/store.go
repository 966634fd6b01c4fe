package graph

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	ferr "github.com/matzehuels/forcegraph/pkg/errors"
)

// Options configures type derivation for a [Store].
type Options struct {
	NodeTypes TypeRule
	EdgeTypes TypeRule
}

// Store owns the nodes and edges of one diagram.
//
// The zero value is not usable - use NewStore.
// Store is not safe for concurrent use without external synchronization.
type Store struct {
	nodes    *orderedmap.OrderedMap[string, *Node]
	keyed    *orderedmap.OrderedMap[string, []*Edge] // composite key -> parallel edges
	explicit *orderedmap.OrderedMap[string, *Edge]
	opts     Options
}

// NewStore creates an empty store.
func NewStore(opts Options) *Store {
	return &Store{
		nodes:    orderedmap.New[string, *Node](),
		keyed:    orderedmap.New[string, []*Edge](),
		explicit: orderedmap.New[string, *Edge](),
		opts:     opts,
	}
}

// Options returns the type derivation rules of the store.
func (s *Store) Options() Options { return s.opts }

// =============================================================================
// Creation
// =============================================================================

// CreateNode inserts a node keyed by props["id"].
// Returns an INVALID_INPUT error if the id is missing or malformed and a
// DUPLICATE_NODE error if the id is taken. The store is unchanged on error.
func (s *Store) CreateNode(props *Properties) (*Node, error) {
	if props == nil {
		props = &Properties{}
	}
	id := props.String(PropID)
	if err := ferr.ValidateID("node", id); err != nil {
		return nil, err
	}
	if _, exists := s.nodes.Get(id); exists {
		return nil, ferr.New(ferr.ErrCodeDuplicateNode, "node %q already exists", id)
	}
	n := &Node{
		ID:         id,
		Type:       s.opts.NodeTypes.Derive(props),
		Properties: props,
		State:      StateActive,
	}
	s.nodes.Set(id, n)
	return n, nil
}

// CreateEdge inserts an edge between props["source"] and props["target"].
//
// With an explicit props["id"] the edge is stored in the explicit namespace
// and a taken id yields DUPLICATE_EDGE. Without one it is appended under the
// composite key "<source>-<target>" with Index equal to the number of edges
// already stored there. Unknown endpoints yield MISSING_ENDPOINT.
// The store is unchanged on error.
func (s *Store) CreateEdge(props *Properties) (*Edge, error) {
	if props == nil {
		props = &Properties{}
	}
	sourceID, targetID := props.String(PropSource), props.String(PropTarget)
	source, ok := s.nodes.Get(sourceID)
	if !ok {
		return nil, ferr.New(ferr.ErrCodeMissingEndpoint, "edge source %q does not exist", sourceID)
	}
	target, ok := s.nodes.Get(targetID)
	if !ok {
		return nil, ferr.New(ferr.ErrCodeMissingEndpoint, "edge target %q does not exist", targetID)
	}

	e := &Edge{
		Type:       s.opts.EdgeTypes.Derive(props),
		Properties: props,
		State:      StateActive,
		Source:     source,
		Target:     target,
	}

	if id := props.String(PropID); id != "" {
		if err := ferr.ValidateID("edge", id); err != nil {
			return nil, err
		}
		if _, exists := s.explicit.Get(id); exists {
			return nil, ferr.New(ferr.ErrCodeDuplicateEdge, "edge %q already exists", id)
		}
		e.ID = id
		e.Explicit = true
		s.explicit.Set(id, e)
	} else {
		key := CompositeKey(sourceID, targetID)
		list, _ := s.keyed.Get(key)
		e.ID = key
		e.Index = len(list)
		s.keyed.Set(key, append(list, e))
	}

	source.attach(e)
	target.attach(e)
	return e, nil
}

// =============================================================================
// Removal
// =============================================================================

// Removal describes the effect of [Store.RemoveNode].
type Removal struct {
	Node       *Node
	Edges      []*Edge // removed adjacent edges, in removal order
	Renumbered []*Edge // surviving parallel edges whose Index changed
}

// RemoveNode removes every adjacent edge and then the node itself.
// Returns false if the node does not exist.
func (s *Store) RemoveNode(id string) (Removal, bool) {
	n, ok := s.nodes.Get(id)
	if !ok {
		return Removal{}, false
	}
	r := Removal{Node: n}
	for len(n.adjacent) > 0 {
		e := n.adjacent[0]
		renumbered, err := s.RemoveEdge(e)
		if err != nil {
			// Adjacency points at an edge the tables no longer hold; drop the
			// dangling reference so the loop terminates.
			n.detach(e)
			continue
		}
		r.Edges = append(r.Edges, e)
		r.Renumbered = append(r.Renumbered, renumbered...)
	}
	seen := make(map[*Edge]bool, len(r.Renumbered))
	r.Renumbered = slices.DeleteFunc(r.Renumbered, func(e *Edge) bool {
		drop := seen[e] || !s.holds(e)
		seen[e] = true
		return drop
	})
	s.nodes.Delete(id)
	return r, true
}

// RemoveEdge deletes e from the store and from both endpoints' adjacency.
// Surviving parallel edges under the same composite key are renumbered so
// that Index equals their position; those edges are returned.
// Returns UNKNOWN_ELEMENT if e is not held by the store.
func (s *Store) RemoveEdge(e *Edge) ([]*Edge, error) {
	if e == nil || !s.holds(e) {
		return nil, ferr.New(ferr.ErrCodeUnknownElement, "edge is not part of this diagram")
	}

	var renumbered []*Edge
	if e.Explicit {
		s.explicit.Delete(e.ID)
	} else {
		list, _ := s.keyed.Get(e.ID)
		list = slices.DeleteFunc(list, func(x *Edge) bool { return x == e })
		for i, x := range list {
			if x.Index != i {
				x.Index = i
				renumbered = append(renumbered, x)
			}
		}
		if len(list) == 0 {
			s.keyed.Delete(e.ID)
		} else {
			s.keyed.Set(e.ID, list)
		}
	}

	e.Source.detach(e)
	e.Target.detach(e)
	return renumbered, nil
}

func (s *Store) holds(e *Edge) bool {
	if e.Explicit {
		x, ok := s.explicit.Get(e.ID)
		return ok && x == e
	}
	list, _ := s.keyed.Get(e.ID)
	return slices.Contains(list, e)
}

// =============================================================================
// Lookups
// =============================================================================

// Node returns the node with the given id.
func (s *Store) Node(id string) (*Node, bool) {
	return s.nodes.Get(id)
}

// Edge returns the explicit edge named id, or, if none exists, the first keyed
// edge under the composite key id.
func (s *Store) Edge(id string) (*Edge, bool) {
	if e, ok := s.explicit.Get(id); ok {
		return e, true
	}
	if list, ok := s.keyed.Get(id); ok && len(list) > 0 {
		return list[0], true
	}
	return nil, false
}

// Edges returns the keyed (parallel) edges from source to target, ordered by
// Index. Edges of other endpoint pairs sharing the composite key are skipped.
// The slice is a copy; nil if there are none.
func (s *Store) Edges(source, target string) []*Edge {
	list, _ := s.keyed.Get(CompositeKey(source, target))
	var out []*Edge
	for _, e := range list {
		if e.Source.ID == source && e.Target.ID == target {
			out = append(out, e)
		}
	}
	return out
}

// Keyed returns every keyed edge filed under the composite key, ordered by
// Index. Unlike [Store.Edges] it does not filter by endpoint.
func (s *Store) Keyed(key string) []*Edge {
	list, _ := s.keyed.Get(key)
	return slices.Clone(list)
}

// Lookup resolves an element reference. Exactly one of the results is non-nil
// when ok is true.
func (s *Store) Lookup(ref ElementRef) (*Node, *Edge, bool) {
	switch ref.Kind {
	case KindNode:
		n, ok := s.nodes.Get(ref.ID)
		return n, nil, ok
	case KindEdge:
		if ref.Explicit {
			e, ok := s.explicit.Get(ref.ID)
			return nil, e, ok
		}
		list, _ := s.keyed.Get(ref.ID)
		if ref.Index >= 0 && ref.Index < len(list) {
			return nil, list[ref.Index], true
		}
	}
	return nil, nil, false
}

// Nodes returns all nodes in creation order.
func (s *Store) Nodes() []*Node {
	nodes := make([]*Node, 0, s.nodes.Len())
	for pair := s.nodes.Oldest(); pair != nil; pair = pair.Next() {
		nodes = append(nodes, pair.Value)
	}
	return nodes
}

// AllEdges flattens the edge tables into one sequence: keyed edges grouped by
// composite key in key creation order, then explicit edges in creation order.
func (s *Store) AllEdges() []*Edge {
	edges := make([]*Edge, 0, s.EdgeCount())
	for pair := s.keyed.Oldest(); pair != nil; pair = pair.Next() {
		edges = append(edges, pair.Value...)
	}
	for pair := s.explicit.Oldest(); pair != nil; pair = pair.Next() {
		edges = append(edges, pair.Value)
	}
	return edges
}

// NodesByType returns the nodes of the given type in creation order.
func (s *Store) NodesByType(typ string) []*Node {
	return filterNodes(s.Nodes(), func(n *Node) bool { return n.Type == typ })
}

// NodesByState returns the nodes currently in state st.
func (s *Store) NodesByState(st State) []*Node {
	return filterNodes(s.Nodes(), func(n *Node) bool { return n.State == st })
}

// EdgesByType returns the edges of the given type.
func (s *Store) EdgesByType(typ string) []*Edge {
	return filterEdges(s.AllEdges(), func(e *Edge) bool { return e.Type == typ })
}

// EdgesByState returns the edges currently in state st.
func (s *Store) EdgesByState(st State) []*Edge {
	return filterEdges(s.AllEdges(), func(e *Edge) bool { return e.State == st })
}

// NodeTypes returns the distinct node types in first-seen order.
func (s *Store) NodeTypes() []string {
	var types []string
	for _, n := range s.Nodes() {
		if !slices.Contains(types, n.Type) {
			types = append(types, n.Type)
		}
	}
	return types
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return s.nodes.Len() }

// EdgeCount returns the number of edges across both namespaces.
func (s *Store) EdgeCount() int {
	count := s.explicit.Len()
	for pair := s.keyed.Oldest(); pair != nil; pair = pair.Next() {
		count += len(pair.Value)
	}
	return count
}

func filterNodes(nodes []*Node, keep func(*Node) bool) []*Node {
	var out []*Node
	for _, n := range nodes {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

func filterEdges(edges []*Edge, keep func(*Edge) bool) []*Edge {
	var out []*Edge
	for _, e := range edges {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
