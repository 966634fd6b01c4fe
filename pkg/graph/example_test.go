package graph_test

import (
	"fmt"

	"github.com/matzehuels/forcegraph/pkg/graph"
)

func ExampleStore_parallelEdges() {
	s := graph.NewStore(graph.Options{})
	_, _ = s.CreateNode(graph.NewProperties("id", "A"))
	_, _ = s.CreateNode(graph.NewProperties("id", "B"))
	_, _ = s.CreateEdge(graph.NewProperties("source", "A", "target", "B"))
	_, _ = s.CreateEdge(graph.NewProperties("source", "A", "target", "B"))

	for _, e := range s.Edges("A", "B") {
		fmt.Println(e.Ref())
	}
	// Output:
	// edge:A-B#0
	// edge:A-B#1
}

func ExampleStore_RemoveNode() {
	s := graph.NewStore(graph.Options{})
	for _, id := range []string{"A", "B", "C"} {
		_, _ = s.CreateNode(graph.NewProperties("id", id))
	}
	_, _ = s.CreateEdge(graph.NewProperties("source", "A", "target", "B"))
	_, _ = s.CreateEdge(graph.NewProperties("source", "A", "target", "C"))

	r, _ := s.RemoveNode("A")
	fmt.Println("Removed edges:", len(r.Edges))
	fmt.Println("Nodes:", s.NodeCount())
	fmt.Println("Edges:", s.EdgeCount())
	// Output:
	// Removed edges: 2
	// Nodes: 2
	// Edges: 0
}
