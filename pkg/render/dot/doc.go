// Package dot renders diagram frames as Graphviz DOT and SVG.
//
// # Overview
//
// This is a reference renderer for the diagram core. It draws what a browser
// renderer would draw for one frame: visible nodes as filled circles sized by
// their radius, visible edges as strokes with their resolved colour and
// opacity. Hidden elements are left out.
//
// Graphviz has no gradient strokes on edges, so cross-cluster edges use the
// Lab-space midpoint of their gradient, which the style resolver already puts
// in the edge stroke.
//
// # Usage
//
//	frame := d.Frame(positions)
//	src := dot.ToDOT(frame, dot.Options{Positions: true})
//	svg, err := dot.RenderSVG(src)
//
// With Options.Positions the simulator positions are pinned and Graphviz only
// draws; without it Graphviz lays the graph out itself.
//
// [Sink] is a [diagram.RenderBridge] that keeps a DOT rendering of a diagram
// up to date with its dirty notifications.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering and [github.com/lucasb-eyer/go-colorful] for colour handling.
package dot
