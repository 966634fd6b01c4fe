// Package payload reads and writes the JSON data format of diagrams.
//
// # JSON Format
//
// A payload has two arrays of flat property objects and an optional options
// object:
//
//	{
//	  "nodes": [
//	    {"id": "app", "caption": "App", "cluster": "frontend", "root": true},
//	    {"id": "db", "caption": "Database", "cluster": "backend"}
//	  ],
//	  "edges": [
//	    {"source": "app", "target": "db", "caption": "reads"},
//	    {"id": "e-2", "source": "app", "target": "db"}
//	  ],
//	  "options": {"cluster": true}
//	}
//
// Every node needs an "id". Every edge needs "source" and "target"; an "id"
// puts it in the explicit edge namespace, otherwise it is keyed by
// "<source>-<target>" and parallel edges are numbered. All other properties
// are kept as-is, in file order, and are available to type rules, captions
// and cluster keys.
//
// # Loading
//
// [Load] feeds a payload into a diagram element by element. Elements the
// diagram rejects (duplicate ids, unknown endpoints) are skipped and listed in
// the returned [Report]; loading never stops at the first bad element.
package payload
