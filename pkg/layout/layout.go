// Package layout derives the force-simulation coefficients of a diagram.
//
// A [Parameterizer] is a set of pure functions over nodes and edges. It holds
// one scalar, k, computed at construction from the node count and viewport:
//
//	k = sqrt(ln(nodeCount) / (width * height))
//
// Two mutually exclusive formula sets exist. The plain set spreads the graph
// according to k; the clustered set pulls members of a cluster together and
// pushes clusters apart:
//
//	                 plain                     clustered
//	charge           -10/k                     -500
//	gravity          50k                       8k
//	friction         0.9                       0.7
//	link strength    1 (root) / 0.9            0.15 (same cluster) / 0
//	link distance    override or 1/(50k)       300 (root) / 10 (same) / 600
//	charge distance  500                       500
//
// Parameterizers are cheap; build a new one whenever the node count or
// cluster membership changes instead of mutating an existing one.
package layout

import (
	"math"

	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Default viewport used when a dimension is not positive.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

const (
	chargeDistance = 500.0

	clusterCharge        = -500.0
	clusterGravityFactor = 8.0
	clusterFriction      = 0.7
	clusterSameStrength  = 0.15
	clusterRootDistance  = 300.0
	clusterSameDistance  = 10.0
	clusterCrossDistance = 600.0

	plainChargeFactor   = -10.0
	plainGravityFactor  = 50.0
	plainFriction       = 0.9
	plainRootStrength   = 1.0
	plainStrength       = 0.9
	plainDistanceFactor = 50.0
)

// DistanceFunc computes a link distance for an edge.
type DistanceFunc func(e *graph.Edge) float64

// Distance configures plain-mode link distance: a constant, a function, or
// (zero value) the k-derived default.
type Distance struct {
	Constant float64
	Func     DistanceFunc
}

// Membership answers cluster questions for the clustered formulas.
// *cluster.Engine satisfies it.
type Membership interface {
	SameCluster(e *graph.Edge) bool
}

// Options configures a [Parameterizer].
type Options struct {
	Width, Height float64
	RootKey       string
	Distance      Distance

	// Clusters switches to the clustered formulas when non-nil.
	Clusters Membership
}

// Parameterizer computes simulation parameters for one diagram state.
type Parameterizer struct {
	k     float64
	nodes int
	opts  Options
}

// New creates a parameterizer for a diagram with nodeCount nodes.
// Node counts below 2 are treated as 2 and non-positive viewport dimensions
// fall back to the defaults so that every parameter is finite.
func New(nodeCount int, opts Options) *Parameterizer {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	return &Parameterizer{
		k:     K(nodeCount, opts.Width, opts.Height),
		nodes: nodeCount,
		opts:  opts,
	}
}

// K returns sqrt(ln(n) / (width*height)) with n clamped to at least 2.
func K(n int, width, height float64) float64 {
	if n < 2 {
		n = 2
	}
	return math.Sqrt(math.Log(float64(n)) / (width * height))
}

// K returns the scalar the plain formulas are built from.
func (p *Parameterizer) K() float64 { return p.k }

// Clustered reports whether the clustered formulas are in use.
func (p *Parameterizer) Clustered() bool { return p.opts.Clusters != nil }

// Charge returns the node repulsion strength.
func (p *Parameterizer) Charge() float64 {
	if p.Clustered() {
		return clusterCharge
	}
	return plainChargeFactor / p.k
}

// Gravity returns the pull towards the viewport centre.
func (p *Parameterizer) Gravity() float64 {
	if p.Clustered() {
		return clusterGravityFactor * p.k
	}
	return plainGravityFactor * p.k
}

// Friction returns the velocity decay.
func (p *Parameterizer) Friction() float64 {
	if p.Clustered() {
		return clusterFriction
	}
	return plainFriction
}

// ChargeDistance returns the maximum distance over which charge applies.
func (p *Parameterizer) ChargeDistance() float64 { return chargeDistance }

// LinkStrength returns the rigidity of edge.
func (p *Parameterizer) LinkStrength(e *graph.Edge) float64 {
	if p.Clustered() {
		if p.opts.Clusters.SameCluster(e) {
			return clusterSameStrength
		}
		return 0
	}
	if p.touchesRoot(e) {
		return plainRootStrength
	}
	return plainStrength
}

// LinkDistance returns the resting length of edge.
func (p *Parameterizer) LinkDistance(e *graph.Edge) float64 {
	if p.Clustered() {
		switch {
		case p.touchesRoot(e):
			return clusterRootDistance
		case p.opts.Clusters.SameCluster(e):
			return clusterSameDistance
		default:
			return clusterCrossDistance
		}
	}
	switch d := p.opts.Distance; {
	case d.Func != nil:
		return d.Func(e)
	case d.Constant > 0:
		return d.Constant
	}
	return 1 / (p.k * plainDistanceFactor)
}

// RootAnchor returns the viewport centre where root nodes are pinned.
func (p *Parameterizer) RootAnchor() (x, y float64) {
	return p.opts.Width / 2, p.opts.Height / 2
}

func (p *Parameterizer) touchesRoot(e *graph.Edge) bool {
	return e.Source.IsRoot(p.opts.RootKey) || e.Target.IsRoot(p.opts.RootKey)
}

// =============================================================================
// Snapshots
// =============================================================================

// Params is the scalar part of a simulation configuration.
type Params struct {
	Nodes          int     `json:"nodes"`
	K              float64 `json:"k"`
	Clustered      bool    `json:"clustered"`
	Charge         float64 `json:"charge"`
	Gravity        float64 `json:"gravity"`
	Friction       float64 `json:"friction"`
	ChargeDistance float64 `json:"chargeDistance"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
}

// Params returns the scalar parameters.
func (p *Parameterizer) Params() Params {
	return Params{
		Nodes:          p.nodes,
		K:              p.k,
		Clustered:      p.Clustered(),
		Charge:         p.Charge(),
		Gravity:        p.Gravity(),
		Friction:       p.Friction(),
		ChargeDistance: p.ChargeDistance(),
		Width:          p.opts.Width,
		Height:         p.opts.Height,
	}
}

// Link is the per-edge part of a simulation configuration.
type Link struct {
	Ref      graph.ElementRef `json:"ref"`
	Source   string           `json:"source"`
	Target   string           `json:"target"`
	Strength float64          `json:"strength"`
	Distance float64          `json:"distance"`
}

// Links returns strength and distance for every edge, in the given order.
func (p *Parameterizer) Links(edges []*graph.Edge) []Link {
	links := make([]Link, len(edges))
	for i, e := range edges {
		links[i] = Link{
			Ref:      e.Ref(),
			Source:   e.Source.ID,
			Target:   e.Target.ID,
			Strength: p.LinkStrength(e),
			Distance: p.LinkDistance(e),
		}
	}
	return links
}

// Anchor is a fixed position for a root node.
type Anchor struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Anchors pins every root node among nodes to the viewport centre.
func (p *Parameterizer) Anchors(nodes []*graph.Node) []Anchor {
	x, y := p.RootAnchor()
	var out []Anchor
	for _, n := range nodes {
		if n.IsRoot(p.opts.RootKey) {
			out = append(out, Anchor{ID: n.ID, X: x, Y: y})
		}
	}
	return out
}
