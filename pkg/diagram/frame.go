package diagram

import (
	"github.com/matzehuels/forcegraph/pkg/cluster"
	ferr "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/layout"
	"github.com/matzehuels/forcegraph/pkg/style"
)

// Layout is the full simulation configuration of a diagram: the scalar
// parameters, one link per edge, and fixed positions for root nodes.
type Layout struct {
	Params  layout.Params   `json:"params"`
	Links   []layout.Link   `json:"links"`
	Anchors []layout.Anchor `json:"anchors,omitempty"`
}

// Parameterizer returns the current layout parameterizer. It is replaced,
// not mutated, when the diagram changes.
func (d *Diagram) Parameterizer() *layout.Parameterizer { return d.params }

// Layout returns the simulation configuration. Anchors are only present when
// root nodes are fixed.
func (d *Diagram) Layout() Layout {
	l := Layout{
		Params: d.params.Params(),
		Links:  d.params.Links(d.store.AllEdges()),
	}
	if d.opts.FixRootNodes {
		l.Anchors = d.params.Anchors(d.store.Nodes())
	}
	return l
}

// Snapshot resolves the current appearance of one element.
// Returns UNKNOWN_ELEMENT if ref does not resolve.
func (d *Diagram) Snapshot(ref graph.ElementRef) (style.Snapshot, error) {
	n, e, ok := d.store.Lookup(ref)
	switch {
	case !ok:
		return style.Snapshot{}, ferr.New(ferr.ErrCodeUnknownElement, "%s does not exist", ref)
	case n != nil:
		return d.styles.Node(n), nil
	default:
		return d.styles.Edge(e), nil
	}
}

// Gradients returns the gradient definitions needed by cross-cluster edges.
// It is empty while clustering is off.
func (d *Diagram) Gradients() []cluster.Gradient {
	if !d.clustered {
		return nil
	}
	return d.engine.Gradients(d.store.AllEdges())
}

// =============================================================================
// Frames
// =============================================================================

// Point is a position in viewport coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeFrame is one node as drawn in a frame.
type NodeFrame struct {
	style.Snapshot
	Position Point `json:"position"`
	Fixed    bool  `json:"fixed,omitempty"`
}

// EdgeFrame is one edge as drawn in a frame.
type EdgeFrame struct {
	style.Snapshot
	Source string `json:"source"`
	Target string `json:"target"`
	From   Point  `json:"from"`
	To     Point  `json:"to"`
}

// Frame is everything a renderer needs to draw one simulation tick.
type Frame struct {
	Nodes     []NodeFrame        `json:"nodes"`
	Edges     []EdgeFrame        `json:"edges"`
	Gradients []cluster.Gradient `json:"gradients,omitempty"`
}

// Frame combines simulator positions with resolved styles. Nodes missing from
// positions sit at the origin; fixed root nodes sit at the root anchor
// regardless of positions.
func (d *Diagram) Frame(positions map[string]Point) Frame {
	nodes := d.store.Nodes()
	edges := d.store.AllEdges()
	f := Frame{
		Nodes:     make([]NodeFrame, 0, len(nodes)),
		Edges:     make([]EdgeFrame, 0, len(edges)),
		Gradients: d.Gradients(),
	}

	ax, ay := d.params.RootAnchor()
	at := make(map[string]Point, len(nodes))
	for _, n := range nodes {
		p := positions[n.ID]
		fixed := d.opts.FixRootNodes && n.IsRoot(d.opts.RootNodes)
		if fixed {
			p = Point{X: ax, Y: ay}
		}
		at[n.ID] = p
		f.Nodes = append(f.Nodes, NodeFrame{Snapshot: d.styles.Node(n), Position: p, Fixed: fixed})
	}
	for _, e := range edges {
		f.Edges = append(f.Edges, EdgeFrame{
			Snapshot: d.styles.Edge(e),
			Source:   e.Source.ID,
			Target:   e.Target.ID,
			From:     at[e.Source.ID],
			To:       at[e.Target.ID],
		})
	}
	return f
}
