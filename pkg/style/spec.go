package style

import (
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Spec is the file form of a style layer: constant overrides only. Node and
// edge attributes share one struct; fields that do not apply are ignored.
type Spec struct {
	Radius        *float64 `toml:"radius" json:"radius,omitempty"`
	Fill          *string  `toml:"fill" json:"fill,omitempty"`
	Stroke        *string  `toml:"stroke" json:"stroke,omitempty"`
	StrokeWidth   *float64 `toml:"stroke_width" json:"strokeWidth,omitempty"`
	Opacity       *float64 `toml:"opacity" json:"opacity,omitempty"`
	CaptionColour *string  `toml:"caption_colour" json:"captionColour,omitempty"`
	Directed      *bool    `toml:"directed" json:"directed,omitempty"`
	Curved        *bool    `toml:"curved" json:"curved,omitempty"`

	// States holds per-state overrides keyed by state name.
	States map[string]Spec `toml:"states" json:"states,omitempty"`
}

func (s Spec) nodeStyle() NodeStyle {
	return NodeStyle{
		Radius:        ptrValue(s.Radius),
		Fill:          ptrValue(s.Fill),
		Stroke:        ptrValue(s.Stroke),
		StrokeWidth:   ptrValue(s.StrokeWidth),
		Opacity:       ptrValue(s.Opacity),
		CaptionColour: ptrValue(s.CaptionColour),
	}
}

func (s Spec) edgeStyle() EdgeStyle {
	return EdgeStyle{
		Width:    ptrValue(s.StrokeWidth),
		Stroke:   ptrValue(s.Stroke),
		Opacity:  ptrValue(s.Opacity),
		Directed: ptrValue(s.Directed),
		Curved:   ptrValue(s.Curved),
	}
}

// NodeTableFromSpecs converts file specs keyed by node type into a table.
// Unknown state names are rejected.
func NodeTableFromSpecs(specs map[string]Spec) (NodeTable, error) {
	table := make(NodeTable, len(specs))
	for typ, spec := range specs {
		rule := NodeRule{Base: spec.nodeStyle(), States: map[graph.State]NodeStyle{}}
		for name, sub := range spec.States {
			st, err := graph.ParseState(name)
			if err != nil {
				return nil, err
			}
			rule.States[st] = sub.nodeStyle()
		}
		table[typ] = rule
	}
	return table, nil
}

// EdgeTableFromSpecs converts file specs keyed by edge type into a table.
func EdgeTableFromSpecs(specs map[string]Spec) (EdgeTable, error) {
	table := make(EdgeTable, len(specs))
	for typ, spec := range specs {
		rule := EdgeRule{Base: spec.edgeStyle(), States: map[graph.State]EdgeStyle{}}
		for name, sub := range spec.States {
			st, err := graph.ParseState(name)
			if err != nil {
				return nil, err
			}
			rule.States[st] = sub.edgeStyle()
		}
		table[typ] = rule
	}
	return table, nil
}
