// Package graph provides the canonical node/edge store of a force-directed diagram.
//
// A [Store] owns every [Node] and [Edge] of one diagram and keeps three
// structures consistent with each other: the node table, the edge tables and
// the per-node adjacency lists. Nothing outside the store creates elements;
// callers go through [Store.CreateNode] and [Store.CreateEdge].
//
// # Identity
//
// Nodes are keyed by the "id" property and ids are unique within a store.
// Edges have two namespaces:
//
//   - Explicit edges carry an "id" property and are looked up by it.
//   - Keyed edges have no id; they live under the composite key
//     "<source>-<target>" together with every other parallel edge between the
//     same endpoints, disambiguated by [Edge.Index] (0, 1, 2, ...).
//
// Lookups in one namespace never see the other, so an explicit edge named
// "a-b" does not collide with the keyed edges between a and b.
//
// Composite keys are not unique per endpoint pair when ids contain dashes:
// "a-b" -> "c" and "a" -> "b-c" share the key "a-b-c" and one index sequence.
// [Store.Edges] filters by endpoint, so it only returns the pair asked for.
//
// # Ordering
//
// Node and edge tables are insertion-ordered maps (wk8/go-ordered-map), so
// [Store.Nodes] and [Store.AllEdges] return elements in creation order. The
// clustering engine relies on this for first-seen cluster numbering.
//
// # Properties
//
// [Properties] is an ordered string-keyed map holding arbitrary user data.
// JSON decoding preserves key order.
//
//	props := graph.NewProperties("id", "a", "cluster", "x")
//	n, err := store.CreateNode(props)
//
// # Concurrency
//
// A Store is not safe for concurrent use. It is meant to be owned by a single
// diagram context that serialises access.
package graph
