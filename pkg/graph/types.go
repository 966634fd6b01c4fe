package graph

import (
	"fmt"
	"slices"

	ferr "github.com/matzehuels/forcegraph/pkg/errors"
)

// DefaultType is the type of every element whose type property is absent or
// when no type rule is configured.
const DefaultType = "all"

// =============================================================================
// State
// =============================================================================

// State is the visual state of a node or edge.
type State string

const (
	// StateActive is the visible baseline every element starts in.
	StateActive State = "active"
	// StateSelected marks the user-designated focus.
	StateSelected State = "selected"
	// StateHighlighted is transient hover emphasis.
	StateHighlighted State = "highlighted"
	// StateHidden keeps the element in the model but out of sight.
	StateHidden State = "hidden"
)

// States lists every state in a stable order.
var States = []State{StateActive, StateSelected, StateHighlighted, StateHidden}

// ParseState converts a string into a State.
func ParseState(s string) (State, error) {
	st := State(s)
	if slices.Contains(States, st) {
		return st, nil
	}
	return "", ferr.New(ferr.ErrCodeInvalidState, "unknown state %q", s)
}

// =============================================================================
// Element references
// =============================================================================

// Kind distinguishes nodes from edges in an [ElementRef].
type Kind string

const (
	KindNode Kind = "node"
	KindEdge Kind = "edge"
)

// ElementRef names a single element. For keyed edges ID is the composite key
// and Index the position among parallel edges; explicit edges set Explicit.
type ElementRef struct {
	Kind     Kind   `json:"kind"`
	ID       string `json:"id"`
	Index    int    `json:"index,omitempty"`
	Explicit bool   `json:"explicit,omitempty"`
}

// NodeRef returns the reference for node id.
func NodeRef(id string) ElementRef { return ElementRef{Kind: KindNode, ID: id} }

// String formats the reference as "node:a", "edge:a-b#1" or "edge:e1".
func (r ElementRef) String() string {
	if r.Kind == KindEdge && !r.Explicit {
		return fmt.Sprintf("edge:%s#%d", r.ID, r.Index)
	}
	return string(r.Kind) + ":" + r.ID
}

// =============================================================================
// Type derivation
// =============================================================================

// TypeRule derives an element type from a property. When Values is non-empty
// only listed values are accepted; anything else falls back to [DefaultType].
type TypeRule struct {
	Key    string   `json:"key" toml:"key"`
	Values []string `json:"values,omitempty" toml:"values"`
}

// Derive returns the element type for props.
func (r TypeRule) Derive(props *Properties) string {
	if r.Key == "" {
		return DefaultType
	}
	v := props.String(r.Key)
	if v == "" {
		return DefaultType
	}
	if len(r.Values) > 0 && !slices.Contains(r.Values, v) {
		return DefaultType
	}
	return v
}

// =============================================================================
// Node
// =============================================================================

// Node is a vertex of the diagram. Identity (ID, Type) is fixed at creation;
// Properties and State change over the diagram's life.
type Node struct {
	ID         string
	Type       string
	Properties *Properties
	State      State

	adjacent  []*Edge
	clusterID int
	clustered bool
}

// Ref returns the node's element reference.
func (n *Node) Ref() ElementRef { return NodeRef(n.ID) }

// AdjacentEdges returns the edges incident to this node in attach order.
// The slice is a copy.
func (n *Node) AdjacentEdges() []*Edge { return slices.Clone(n.adjacent) }

// Degree returns the number of distinct incident edges.
func (n *Node) Degree() int { return len(n.adjacent) }

// Cluster returns the cluster id assigned by the clustering engine.
func (n *Node) Cluster() (int, bool) { return n.clusterID, n.clustered }

// SetCluster assigns a cluster id.
func (n *Node) SetCluster(id int) {
	n.clusterID = id
	n.clustered = true
}

// ClearCluster removes any cluster assignment.
func (n *Node) ClearCluster() {
	n.clusterID = 0
	n.clustered = false
}

// IsRoot reports whether the node is flagged by the root property key.
func (n *Node) IsRoot(key string) bool {
	return key != "" && n.Properties.Truthy(key)
}

// Caption returns the value of the caption key, or the id.
func (n *Node) Caption(key string) string {
	if c := n.Properties.String(key); c != "" {
		return c
	}
	return n.ID
}

func (n *Node) attach(e *Edge) {
	if !slices.Contains(n.adjacent, e) {
		n.adjacent = append(n.adjacent, e)
	}
}

func (n *Node) detach(e *Edge) {
	n.adjacent = slices.DeleteFunc(n.adjacent, func(x *Edge) bool { return x == e })
}

// =============================================================================
// Edge
// =============================================================================

// Edge connects two nodes of the same store. Source and Target are owned by
// the store; an edge never outlives its endpoints.
type Edge struct {
	ID         string
	Index      int
	Explicit   bool
	Type       string
	Properties *Properties
	State      State

	Source *Node
	Target *Node
}

// CompositeKey returns "<source>-<target>".
func CompositeKey(source, target string) string { return source + "-" + target }

// Ref returns the edge's element reference.
func (e *Edge) Ref() ElementRef {
	if e.Explicit {
		return ElementRef{Kind: KindEdge, ID: e.ID, Explicit: true}
	}
	return ElementRef{Kind: KindEdge, ID: e.ID, Index: e.Index}
}

// Other returns the endpoint opposite n, or nil if n is not an endpoint.
func (e *Edge) Other(n *Node) *Node {
	switch n {
	case e.Source:
		return e.Target
	case e.Target:
		return e.Source
	}
	return nil
}

// IsSelfLoop reports whether both endpoints are the same node.
func (e *Edge) IsSelfLoop() bool { return e.Source == e.Target }

// Caption returns the value of the caption key. Unlike nodes, edges have no
// fallback: an uncaptioned edge is drawn without a label.
func (e *Edge) Caption(key string) string { return e.Properties.String(key) }
