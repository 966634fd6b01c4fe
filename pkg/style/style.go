package style

import (
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// NodeStyle is one layer of node attributes.
type NodeStyle struct {
	Radius        Value[float64]
	Fill          Value[string]
	Stroke        Value[string]
	StrokeWidth   Value[float64]
	Opacity       Value[float64]
	CaptionColour Value[string]
}

// Over stacks s on top of base.
func (s NodeStyle) Over(base NodeStyle) NodeStyle {
	return NodeStyle{
		Radius:        s.Radius.Or(base.Radius),
		Fill:          s.Fill.Or(base.Fill),
		Stroke:        s.Stroke.Or(base.Stroke),
		StrokeWidth:   s.StrokeWidth.Or(base.StrokeWidth),
		Opacity:       s.Opacity.Or(base.Opacity),
		CaptionColour: s.CaptionColour.Or(base.CaptionColour),
	}
}

// EdgeStyle is one layer of edge attributes.
type EdgeStyle struct {
	Width    Value[float64]
	Stroke   Value[string]
	Opacity  Value[float64]
	Directed Value[bool]
	Curved   Value[bool]
}

// Over stacks s on top of base.
func (s EdgeStyle) Over(base EdgeStyle) EdgeStyle {
	return EdgeStyle{
		Width:    s.Width.Or(base.Width),
		Stroke:   s.Stroke.Or(base.Stroke),
		Opacity:  s.Opacity.Or(base.Opacity),
		Directed: s.Directed.Or(base.Directed),
		Curved:   s.Curved.Or(base.Curved),
	}
}

// NodeRule is the style of one node type: a base layer plus per-state layers.
type NodeRule struct {
	Base   NodeStyle
	States map[graph.State]NodeStyle
}

// EdgeRule is the style of one edge type.
type EdgeRule struct {
	Base   EdgeStyle
	States map[graph.State]EdgeStyle
}

// NodeTable maps node types to rules. The graph.DefaultType entry applies to
// every type.
type NodeTable map[string]NodeRule

// EdgeTable maps edge types to rules.
type EdgeTable map[string]EdgeRule

// DefaultNodeRule is the built-in node appearance.
func DefaultNodeRule() NodeRule {
	return NodeRule{
		Base: NodeStyle{
			Radius:        Constant(10.0),
			Fill:          Constant("#68B9FE"),
			Stroke:        Constant("#127DC1"),
			StrokeWidth:   Computed(func(el Element) float64 { return el.Radius / 3 }),
			Opacity:       Constant(1.0),
			CaptionColour: Constant("#FFFFFF"),
		},
		States: map[graph.State]NodeStyle{
			graph.StateSelected:    {Fill: Constant("#FFFFFF"), Stroke: Constant("#349FE3")},
			graph.StateHighlighted: {Fill: Constant("#EEEEFF")},
			graph.StateHidden:      {Fill: Constant("none"), Stroke: Constant("none"), Opacity: Constant(0.0)},
		},
	}
}

// DefaultEdgeRule is the built-in edge appearance.
func DefaultEdgeRule() EdgeRule {
	return EdgeRule{
		Base: EdgeStyle{
			Width:    Constant(4.0),
			Stroke:   Constant("#CCCCCC"),
			Opacity:  Constant(0.2),
			Directed: Constant(true),
			Curved:   Constant(true),
		},
		States: map[graph.State]EdgeStyle{
			graph.StateSelected:    {Opacity: Constant(1.0)},
			graph.StateHighlighted: {Opacity: Constant(1.0)},
			graph.StateHidden:      {Opacity: Constant(0.0)},
		},
	}
}

// layers returns the node style for typ and st, with the optional cluster
// layer sitting between the type layers and the state layers.
func (t NodeTable) layers(typ string, st graph.State, clusterLayer NodeStyle) NodeStyle {
	def := DefaultNodeRule()
	all := t[graph.DefaultType]
	own := t[typ]

	s := all.Base.Over(def.Base)
	if typ != graph.DefaultType {
		s = own.Base.Over(s)
	}
	s = clusterLayer.Over(s)
	s = def.States[st].Over(s)
	s = all.States[st].Over(s)
	if typ != graph.DefaultType {
		s = own.States[st].Over(s)
	}
	return s
}

func (t EdgeTable) layers(typ string, st graph.State, clusterLayer EdgeStyle) EdgeStyle {
	def := DefaultEdgeRule()
	all := t[graph.DefaultType]
	own := t[typ]

	s := all.Base.Over(def.Base)
	if typ != graph.DefaultType {
		s = own.Base.Over(s)
	}
	s = clusterLayer.Over(s)
	s = def.States[st].Over(s)
	s = all.States[st].Over(s)
	if typ != graph.DefaultType {
		s = own.States[st].Over(s)
	}
	return s
}
