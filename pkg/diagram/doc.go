// Package diagram ties the diagram core together.
//
// A [Diagram] owns one graph store and everything derived from it: the
// element state machine, the clustering engine, the layout parameterizer and
// the style resolver. It is the only type hosting code needs to talk to.
//
// # Operations
//
// Hosting code creates and removes elements, forwards user interactions, and
// asks for layout parameters and per-tick frames:
//
//	d, err := diagram.New(config.Default(), diagram.WithBridge(renderer))
//	d.CreateNode(graph.NewProperties("id", "a", "caption", "Alpha"))
//	d.CreateNode(graph.NewProperties("id", "b"))
//	d.CreateEdge(graph.NewProperties("source", "a", "target", "b"))
//	d.Click(graph.NodeRef("a"))
//	frame := d.Frame(positions)
//
// # Render bridge
//
// Every mutation that changes what should be drawn ends with exactly one call
// to [RenderBridge.Dirty] listing the affected elements. Nothing is reported
// when an operation changes nothing. The renderer pulls the new appearance
// with [Diagram.Snapshot] or [Diagram.Frame].
//
// # Errors
//
// Failed operations leave the model untouched. They are logged as warnings,
// reported to the observability hooks and returned as coded errors from
// [github.com/matzehuels/forcegraph/pkg/errors].
//
// # Concurrency
//
// A Diagram is not safe for concurrent use. Concurrent adapters go through
// [Registry] and [Session.Do], which serialise access per diagram.
package diagram
