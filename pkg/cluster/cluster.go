// Package cluster assigns deterministic cluster identities to diagram nodes
// and maps them to colours and cross-cluster gradients.
//
// Clusters are the distinct values of one property (the cluster key) across
// all nodes. [Engine.Identify] numbers them 0..N-1 in first-seen order, where
// "first seen" follows node creation order in the store. Nodes without the
// property share the [graph.DefaultType] bucket.
//
// Colours come from a palette and wrap around:
//
//	colour(value) = palette[id(value) % len(palette)]
//
// Edges between clusters are painted with a linear gradient running from the
// target's colour to the source's colour. Gradient keys are directional
// ("<sourceID>-<targetID>"), so an edge running the other way registers its
// own, mirrored gradient.
package cluster

import (
	"fmt"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	ferr "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// DefaultKey is the property read when no cluster key is configured.
const DefaultKey = "cluster"

// FallbackColour is returned by [Engine.ColourOf] for unknown clusters.
const FallbackColour = "#CCCCCC"

// DefaultPalette is the palette used when none is configured.
var DefaultPalette = []string{
	"#DD79FF", "#FFFC00", "#00FF30", "#5168FF", "#00C0FF", "#FF004B", "#00CDCD",
	"#F83F00", "#F800DF", "#FF8D8F", "#FFCD00", "#184FFF", "#FF7E00",
}

// Options configures an [Engine].
type Options struct {
	Key     string   // property holding the cluster value; DefaultKey if empty
	Palette []string // hex colours; DefaultPalette if empty
	RootKey string   // property flagging root nodes, excluded from gradients

	// InclusiveRange reserves N+1 id slots for N clusters, matching the
	// numbering of older diagram exports. Assigned ids are unaffected.
	InclusiveRange bool
}

// Engine holds the cluster map of one diagram.
type Engine struct {
	opts   Options
	values []string       // cluster values in first-seen order
	ids    map[string]int // value -> id
}

// New creates an engine. Palette entries must be valid hex colours.
func New(opts Options) (*Engine, error) {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if len(opts.Palette) == 0 {
		opts.Palette = DefaultPalette
	}
	if err := ValidatePalette(opts.Palette); err != nil {
		return nil, err
	}
	return &Engine{opts: opts, ids: map[string]int{}}, nil
}

// ValidatePalette checks that every entry parses as a hex colour.
func ValidatePalette(palette []string) error {
	for i, c := range palette {
		if _, err := colorful.Hex(c); err != nil {
			return ferr.Wrap(ferr.ErrCodeInvalidConfig, err, "cluster colour %d (%q)", i, c)
		}
	}
	return nil
}

// Key returns the configured cluster key.
func (e *Engine) Key() string { return e.opts.Key }

// Palette returns a copy of the palette.
func (e *Engine) Palette() []string { return slices.Clone(e.opts.Palette) }

// SetKey changes the cluster key. Callers must run Identify afterwards.
func (e *Engine) SetKey(key string) {
	if key == "" {
		key = DefaultKey
	}
	e.opts.Key = key
}

// ValueOf returns the cluster value of n under the configured key.
func (e *Engine) ValueOf(n *graph.Node) string {
	if v := n.Properties.String(e.opts.Key); v != "" {
		return v
	}
	return graph.DefaultType
}

// Identify rebuilds the cluster map from the nodes of store and tags every
// node with its cluster id. Running it again on unchanged data yields the same
// map. It returns the cluster values in id order.
func (e *Engine) Identify(store *graph.Store) []string {
	e.values = e.values[:0]
	e.ids = make(map[string]int)
	for _, n := range store.Nodes() {
		e.Assign(n)
	}
	return slices.Clone(e.values)
}

// Assign tags n with the id of its cluster value, registering the value as a
// new cluster if it has not been seen. Existing ids never change.
func (e *Engine) Assign(n *graph.Node) (id int, added bool) {
	v := e.ValueOf(n)
	id, ok := e.ids[v]
	if !ok {
		id = len(e.values)
		e.ids[v] = id
		e.values = append(e.values, v)
	}
	n.SetCluster(id)
	return id, !ok
}

// Reset forgets the cluster map and clears node assignments.
func (e *Engine) Reset(store *graph.Store) {
	e.values = nil
	e.ids = map[string]int{}
	for _, n := range store.Nodes() {
		n.ClearCluster()
	}
}

// Len returns the number of clusters.
func (e *Engine) Len() int { return len(e.values) }

// Slots returns the size of the id range: Len, or Len+1 with InclusiveRange.
func (e *Engine) Slots() int {
	if e.opts.InclusiveRange && len(e.values) > 0 {
		return len(e.values) + 1
	}
	return len(e.values)
}

// Values returns the cluster values in id order.
func (e *Engine) Values() []string { return slices.Clone(e.values) }

// ID returns the cluster id of value.
func (e *Engine) ID(value string) (int, bool) {
	id, ok := e.ids[value]
	return id, ok
}

// Map returns a copy of the value -> id mapping.
func (e *Engine) Map() map[string]int {
	out := make(map[string]int, len(e.ids))
	for k, v := range e.ids {
		out[k] = v
	}
	return out
}

// Colour returns the palette colour of a cluster value.
// Returns UNKNOWN_ELEMENT if the value is not a known cluster.
func (e *Engine) Colour(value string) (string, error) {
	id, ok := e.ids[value]
	if !ok {
		return "", ferr.New(ferr.ErrCodeUnknownElement, "cluster %q is not known", value)
	}
	return e.ColourForID(id), nil
}

// ColourForID returns palette[id % len(palette)].
func (e *Engine) ColourForID(id int) string {
	n := len(e.opts.Palette)
	return e.opts.Palette[((id%n)+n)%n]
}

// ColourOf returns the colour of n's cluster, or FallbackColour if n has not
// been clustered.
func (e *Engine) ColourOf(n *graph.Node) string {
	if id, ok := n.Cluster(); ok {
		return e.ColourForID(id)
	}
	return FallbackColour
}

// SameCluster reports whether both endpoints of edge are in the same cluster.
// Assigned ids win over property values, so a property edited after
// identification changes nothing until clusters are identified again.
func (e *Engine) SameCluster(edge *graph.Edge) bool {
	src, ok1 := edge.Source.Cluster()
	dst, ok2 := edge.Target.Cluster()
	if ok1 && ok2 {
		return src == dst
	}
	return e.ValueOf(edge.Source) == e.ValueOf(edge.Target)
}

// =============================================================================
// Gradients
// =============================================================================

// Gradient is a linear gradient definition for cross-cluster edges.
type Gradient struct {
	Key   string `json:"key"`   // "<sourceClusterID>-<targetClusterID>"
	ID    string `json:"id"`    // "cluster-gradient-<key>"
	Start string `json:"start"` // colour of the target cluster
	End   string `json:"end"`   // colour of the source cluster
}

// Midpoint returns the Lab-space blend of Start and End, for renderers that
// cannot draw gradients.
func (g Gradient) Midpoint() string {
	start, err1 := colorful.Hex(g.Start)
	end, err2 := colorful.Hex(g.End)
	if err1 != nil || err2 != nil {
		return g.Start
	}
	return start.BlendLab(end, 0.5).Clamped().Hex()
}

// GradientKey returns the directional gradient key of edge.
func (e *Engine) GradientKey(edge *graph.Edge) string {
	src, _ := edge.Source.Cluster()
	dst, _ := edge.Target.Cluster()
	return fmt.Sprintf("%d-%d", src, dst)
}

// crossCluster reports whether edge gets a gradient.
func (e *Engine) crossCluster(edge *graph.Edge) bool {
	if edge.Source.IsRoot(e.opts.RootKey) || edge.Target.IsRoot(e.opts.RootKey) {
		return false
	}
	_, ok1 := edge.Source.Cluster()
	_, ok2 := edge.Target.Cluster()
	return ok1 && ok2 && !e.SameCluster(edge)
}

// Gradients computes the gradient definitions needed by edges, deduplicated
// by key, in first-use order.
func (e *Engine) Gradients(edges []*graph.Edge) []Gradient {
	var out []Gradient
	seen := make(map[string]bool)
	for _, edge := range edges {
		if !e.crossCluster(edge) {
			continue
		}
		key := e.GradientKey(edge)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Gradient{
			Key:   key,
			ID:    "cluster-gradient-" + key,
			Start: e.ColourOf(edge.Target),
			End:   e.ColourOf(edge.Source),
		})
	}
	return out
}

// Paint describes how an edge is stroked: a solid colour or a gradient.
type Paint struct {
	Colour   string    `json:"colour"`
	Gradient *Gradient `json:"gradient,omitempty"`
}

// EdgePaint returns the paint of edge. Cross-cluster edges get a gradient
// (Colour holds its midpoint); edges touching a root node take the colour of
// the non-root side; same-cluster edges take their cluster colour.
func (e *Engine) EdgePaint(edge *graph.Edge) Paint {
	if e.crossCluster(edge) {
		key := e.GradientKey(edge)
		g := Gradient{
			Key:   key,
			ID:    "cluster-gradient-" + key,
			Start: e.ColourOf(edge.Target),
			End:   e.ColourOf(edge.Source),
		}
		return Paint{Colour: g.Midpoint(), Gradient: &g}
	}
	side := edge.Source
	if side.IsRoot(e.opts.RootKey) && !edge.Target.IsRoot(e.opts.RootKey) {
		side = edge.Target
	}
	return Paint{Colour: e.ColourOf(side)}
}
