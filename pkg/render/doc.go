// Package render groups the renderers that draw diagram frames.
//
// The diagram core never draws anything itself. It resolves a [diagram.Frame]
// per tick and tells a [diagram.RenderBridge] which elements went stale. A
// renderer implements that bridge and turns frames into output.
//
// Renderers:
//   - [dot]: Graphviz DOT source and in-process SVG via go-graphviz
//
// [diagram.Frame]: github.com/matzehuels/forcegraph/pkg/diagram.Frame
// [diagram.RenderBridge]: github.com/matzehuels/forcegraph/pkg/diagram.RenderBridge
// [dot]: github.com/matzehuels/forcegraph/pkg/render/dot
package render
