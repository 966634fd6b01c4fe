package style

import (
	"github.com/matzehuels/forcegraph/pkg/cluster"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Painter supplies cluster colours. *cluster.Engine satisfies it.
type Painter interface {
	ColourOf(n *graph.Node) string
	EdgePaint(e *graph.Edge) cluster.Paint
}

// Snapshot is the resolved appearance of one element, as handed to a renderer.
type Snapshot struct {
	Ref         graph.ElementRef `json:"ref"`
	Type        string           `json:"type"`
	State       graph.State      `json:"state"`
	Caption     string           `json:"caption,omitempty"`
	Fill        string           `json:"fill,omitempty"`
	Stroke      string           `json:"stroke"`
	StrokeWidth float64          `json:"strokeWidth"`
	Opacity     float64          `json:"opacity"`
	Radius      float64          `json:"radius,omitempty"`
	CaptionFill string           `json:"captionFill,omitempty"`
	Gradient    string           `json:"gradient,omitempty"`
	Directed    bool             `json:"directed,omitempty"`
	Curved      bool             `json:"curved,omitempty"`
}

// Visible reports whether the element should be drawn at all.
func (s Snapshot) Visible() bool { return s.State != graph.StateHidden }

// Resolver turns elements into snapshots.
type Resolver struct {
	Nodes       NodeTable
	Edges       EdgeTable
	NodeCaption string
	EdgeCaption string

	// Painter, when set, colours nodes and edges by cluster.
	Painter Painter
}

// Node resolves the appearance of n in its current state.
func (r *Resolver) Node(n *graph.Node) Snapshot {
	var clusterLayer NodeStyle
	if r.Painter != nil {
		if _, ok := n.Cluster(); ok {
			c := r.Painter.ColourOf(n)
			clusterLayer = NodeStyle{Fill: Constant(c), Stroke: Constant(c)}
		}
	}
	s := r.Nodes.layers(n.Type, n.State, clusterLayer)

	el := Element{Node: n}
	el.Radius = s.Radius.Resolve(el)
	return Snapshot{
		Ref:         n.Ref(),
		Type:        n.Type,
		State:       n.State,
		Caption:     n.Caption(r.NodeCaption),
		Fill:        s.Fill.Resolve(el),
		Stroke:      s.Stroke.Resolve(el),
		StrokeWidth: s.StrokeWidth.Resolve(el),
		Opacity:     s.Opacity.Resolve(el),
		Radius:      el.Radius,
		CaptionFill: s.CaptionColour.Resolve(el),
	}
}

// Edge resolves the appearance of e in its current state.
func (r *Resolver) Edge(e *graph.Edge) Snapshot {
	var (
		clusterLayer EdgeStyle
		gradient     string
	)
	if r.Painter != nil {
		_, ok1 := e.Source.Cluster()
		_, ok2 := e.Target.Cluster()
		if ok1 && ok2 {
			p := r.Painter.EdgePaint(e)
			clusterLayer = EdgeStyle{Stroke: Constant(p.Colour)}
			if p.Gradient != nil {
				gradient = p.Gradient.ID
			}
		}
	}
	s := r.Edges.layers(e.Type, e.State, clusterLayer)

	el := Element{Edge: e}
	return Snapshot{
		Ref:         e.Ref(),
		Type:        e.Type,
		State:       e.State,
		Caption:     e.Caption(r.EdgeCaption),
		Stroke:      s.Stroke.Resolve(el),
		StrokeWidth: s.Width.Resolve(el),
		Opacity:     s.Opacity.Resolve(el),
		Gradient:    gradient,
		Directed:    s.Directed.Resolve(el),
		Curved:      s.Curved.Resolve(el),
	}
}
