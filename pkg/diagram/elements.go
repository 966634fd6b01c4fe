package diagram

import (
	ferr "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/observability"
)

// =============================================================================
// Creation
// =============================================================================

// CreateNode adds a node. props must contain a unique "id".
// Returns DUPLICATE_NODE or INVALID_INPUT on failure.
func (d *Diagram) CreateNode(props *graph.Properties) (*graph.Node, error) {
	n, err := d.store.CreateNode(props)
	if err != nil {
		return nil, d.reject("node", "create", props.String(graph.PropID), err)
	}
	if d.clustered {
		if id, added := d.engine.Assign(n); added {
			d.logger.Debug("new cluster", "value", d.engine.ValueOf(n), "cluster", id)
		}
	}
	d.rebuildLayout()
	observability.Diagram().OnElementCreated(d.id, n.Ref().String())
	d.notify([]graph.ElementRef{n.Ref()})
	return n, nil
}

// CreateEdge adds an edge between two existing nodes. props must contain
// "source" and "target" and may contain an explicit "id".
// Returns MISSING_ENDPOINT, DUPLICATE_EDGE or INVALID_INPUT on failure.
func (d *Diagram) CreateEdge(props *graph.Properties) (*graph.Edge, error) {
	e, err := d.store.CreateEdge(props)
	if err != nil {
		id := props.String(graph.PropID)
		if id == "" {
			id = graph.CompositeKey(props.String(graph.PropSource), props.String(graph.PropTarget))
		}
		return nil, d.reject("edge", "create", id, err)
	}
	observability.Diagram().OnElementCreated(d.id, e.Ref().String())
	d.notify([]graph.ElementRef{e.Ref()})
	return e, nil
}

// =============================================================================
// Removal
// =============================================================================

// RemoveNode removes a node and every edge touching it.
// Returns UNKNOWN_ELEMENT if the node does not exist.
func (d *Diagram) RemoveNode(id string) error {
	n, ok := d.store.Node(id)
	if !ok {
		err := ferr.New(ferr.ErrCodeUnknownElement, "node %q does not exist", id)
		return d.reject("node", "remove", id, err)
	}
	// Cascaded removals renumber parallel edges as they go; capture the refs
	// the renderer knows first.
	refs := []graph.ElementRef{n.Ref()}
	for _, e := range n.AdjacentEdges() {
		refs = append(refs, e.Ref())
	}
	r, _ := d.store.RemoveNode(id)
	d.rebuildLayout()
	d.removed(refs)
	for _, e := range r.Renumbered {
		refs = append(refs, e.Ref())
	}
	d.notify(dedupe(refs))
	return nil
}

// RemoveEdge removes the referenced edge.
// Returns UNKNOWN_ELEMENT if ref does not name an edge of this diagram.
func (d *Diagram) RemoveEdge(ref graph.ElementRef) error {
	_, e, ok := d.store.Lookup(ref)
	if !ok || e == nil {
		err := ferr.New(ferr.ErrCodeUnknownElement, "%s does not exist", ref)
		return d.reject("edge", "remove", ref.String(), err)
	}
	refs := []graph.ElementRef{e.Ref()}
	var shifted []graph.ElementRef
	if !e.Explicit {
		for _, x := range d.store.Keyed(e.ID) {
			if x.Index > e.Index {
				shifted = append(shifted, x.Ref())
			}
		}
	}
	renumbered, err := d.store.RemoveEdge(e)
	if err != nil {
		return d.reject("edge", "remove", ref.String(), err)
	}

	d.removed(refs)
	refs = append(refs, shifted...)
	for _, x := range renumbered {
		refs = append(refs, x.Ref())
	}
	d.notify(dedupe(refs))
	return nil
}

func (d *Diagram) removed(refs []graph.ElementRef) {
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.String()
	}
	observability.Diagram().OnElementRemoved(d.id, names)
}

func dedupe(refs []graph.ElementRef) []graph.ElementRef {
	seen := make(map[graph.ElementRef]bool, len(refs))
	out := refs[:0]
	for _, r := range refs {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// =============================================================================
// Lookups
// =============================================================================

// Node returns the node with the given id.
func (d *Diagram) Node(id string) (*graph.Node, bool) { return d.store.Node(id) }

// Edge returns the explicit edge named id, or the first edge under the
// composite key id.
func (d *Diagram) Edge(id string) (*graph.Edge, bool) { return d.store.Edge(id) }

// Edges returns the parallel edges from source to target.
func (d *Diagram) Edges(source, target string) []*graph.Edge {
	return d.store.Edges(source, target)
}

// Nodes returns all nodes in creation order.
func (d *Diagram) Nodes() []*graph.Node { return d.store.Nodes() }

// AllEdges returns all edges in store order.
func (d *Diagram) AllEdges() []*graph.Edge { return d.store.AllEdges() }

// NodeCount returns the number of nodes.
func (d *Diagram) NodeCount() int { return d.store.NodeCount() }

// EdgeCount returns the number of edges.
func (d *Diagram) EdgeCount() int { return d.store.EdgeCount() }
