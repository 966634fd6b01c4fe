// Package pkg provides the core libraries for forcegraph diagrams.
//
// # Overview
//
// Forcegraph is the model behind an interactive force-directed diagram: it
// stores nodes and edges, tracks their visual state as the user clicks and
// hovers, groups nodes into coloured clusters, and derives the parameters a
// physics simulator needs. It never draws anything itself; a renderer is told
// which elements went stale and asks for resolved frames.
//
// # Architecture
//
// The typical data flow:
//
//	payload file / HTTP body
//	         ↓
//	    [payload] (decode, load elements in order)
//	         ↓
//	    [diagram] (store + state machine + clustering + layout)
//	         ↓
//	    RenderBridge notifications → [diagram.Frame]
//	         ↓
//	    [render/dot] (DOT, SVG) or a browser renderer (JSON frames)
//
// # Quick Start
//
//	d, err := diagram.New(config.Default())
//	if err != nil {
//	    return err
//	}
//	d.CreateNode(graph.NewProperties("id", "a", "cluster", "x"))
//	d.CreateNode(graph.NewProperties("id", "b", "cluster", "y"))
//	d.CreateEdge(graph.NewProperties("source", "a", "target", "b"))
//	d.EnableClustering(true)
//	d.Click(graph.NodeRef("a"))
//
//	svg, err := dot.RenderSVG(dot.ToDOT(d.Frame(nil), dot.Options{}))
//
// # Main Packages
//
// [graph] - The element store: nodes, keyed and explicit edges, parallel-edge
// indices, cascade removal and property maps that keep insertion order.
//
// [state] - The visual state machine (active, selected, highlighted, hidden)
// and the hide cascade from nodes to their edges.
//
// [cluster] - Cluster identification by property value, palette colours and
// cross-cluster edge gradients.
//
// [layout] - Force-layout parameters: k, charge, gravity, friction, per-edge
// link strength and distance, root anchors.
//
// [style] - Per-type, per-state style tables and the resolver that turns an
// element into a drawable snapshot.
//
// [diagram] - The facade tying the above together, plus the session registry
// used by the HTTP server.
//
// ## Supporting Packages
//
// [config] - Diagram options, loaded from TOML or embedded in payloads.
//
// [payload] - The JSON data-file format and its load report.
//
// [render/dot] - Graphviz renderer and a RenderBridge sink.
//
// [cache] - Render artifact cache used by the CLI.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for diagram and HTTP events.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/graph
// [state]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/state
// [cluster]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/cluster
// [layout]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/layout
// [style]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/style
// [diagram]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/diagram
// [diagram.Frame]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/diagram#Frame
// [config]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/config
// [payload]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/payload
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/render/dot
// [cache]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/forcegraph/pkg/observability
package pkg
