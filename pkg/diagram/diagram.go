package diagram

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/forcegraph/pkg/cluster"
	"github.com/matzehuels/forcegraph/pkg/config"
	ferr "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/layout"
	"github.com/matzehuels/forcegraph/pkg/observability"
	"github.com/matzehuels/forcegraph/pkg/state"
	"github.com/matzehuels/forcegraph/pkg/style"
)

// Diagram is one interactive node-link diagram.
type Diagram struct {
	id      string
	opts    config.Options
	store   *graph.Store
	machine *state.Machine
	engine  *cluster.Engine
	params  *layout.Parameterizer
	styles  *style.Resolver
	logger  *log.Logger
	bridge  RenderBridge

	clustered bool
}

// Option customises a Diagram.
type Option func(*Diagram)

// WithLogger sets the logger failures are reported to.
func WithLogger(l *log.Logger) Option {
	return func(d *Diagram) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithBridge sets the renderer that receives dirty notifications.
func WithBridge(b RenderBridge) Option {
	return func(d *Diagram) {
		if b != nil {
			d.bridge = b
		}
	}
}

// WithID sets the diagram identifier used in logs and hooks.
func WithID(id string) Option {
	return func(d *Diagram) {
		if id != "" {
			d.id = id
		}
	}
}

// New creates an empty diagram. Options are defaulted and validated; invalid
// options return INVALID_CONFIG.
func New(opts config.Options, options ...Option) (*Diagram, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	engine, err := cluster.New(opts.ClusterOptions())
	if err != nil {
		return nil, err
	}
	nodes, edges, err := opts.StyleTables()
	if err != nil {
		return nil, ferr.Wrap(ferr.ErrCodeInvalidConfig, err, "style tables")
	}

	store := graph.NewStore(opts.StoreOptions())
	d := &Diagram{
		id:      uuid.NewString(),
		opts:    opts,
		store:   store,
		machine: state.NewMachine(store),
		engine:  engine,
		styles: &style.Resolver{
			Nodes:       nodes,
			Edges:       edges,
			NodeCaption: opts.NodeCaption,
			EdgeCaption: opts.EdgeCaption,
		},
		logger: log.Default(),
		bridge: nopBridge{},
	}
	for _, o := range options {
		o(d)
	}
	d.logger = d.logger.With("diagram", d.id)
	if opts.Cluster {
		d.setClustered(true)
	}
	d.rebuildLayout()
	return d, nil
}

// ID returns the diagram identifier.
func (d *Diagram) ID() string { return d.id }

// Options returns the effective options.
func (d *Diagram) Options() config.Options { return d.opts }

// Store exposes the underlying graph for read access. Mutating it directly
// bypasses notifications.
func (d *Diagram) Store() *graph.Store { return d.store }

// Logger returns the diagram logger.
func (d *Diagram) Logger() *log.Logger { return d.logger }

// SetBridge replaces the render bridge. nil disables notifications.
func (d *Diagram) SetBridge(b RenderBridge) {
	if b == nil {
		b = nopBridge{}
	}
	d.bridge = b
}

// rebuildLayout replaces the parameterizer after the node count or cluster
// membership changed.
func (d *Diagram) rebuildLayout() {
	var membership layout.Membership
	if d.clustered {
		membership = d.engine
	}
	d.params = layout.New(d.store.NodeCount(), d.opts.LayoutOptions(membership))
}

func (d *Diagram) notify(refs []graph.ElementRef) {
	if len(refs) > 0 {
		d.bridge.Dirty(refs)
	}
}

// reject logs and reports a failed operation and returns err unchanged.
func (d *Diagram) reject(kind, op, id string, err error) error {
	d.logger.Warn(op+" rejected", "kind", kind, "id", id, "err", ferr.UserMessage(err))
	observability.Diagram().OnElementRejected(d.id, kind, string(ferr.GetCode(err)), err)
	return err
}

// everything returns refs to all elements in store order.
func (d *Diagram) everything() []graph.ElementRef {
	nodes := d.store.Nodes()
	edges := d.store.AllEdges()
	refs := make([]graph.ElementRef, 0, len(nodes)+len(edges))
	for _, n := range nodes {
		refs = append(refs, n.Ref())
	}
	for _, e := range edges {
		refs = append(refs, e.Ref())
	}
	return refs
}

// =============================================================================
// Clustering
// =============================================================================

// Clustered reports whether clustering is enabled.
func (d *Diagram) Clustered() bool { return d.clustered }

// EnableClustering switches clustering on or off. Turning it on identifies
// clusters from scratch; turning it off clears node assignments. Every element
// is reported dirty when the mode changes.
func (d *Diagram) EnableClustering(on bool) {
	if on == d.clustered {
		return
	}
	d.setClustered(on)
	d.opts.Cluster = on
	d.rebuildLayout()
	d.notify(d.everything())
}

func (d *Diagram) setClustered(on bool) {
	d.clustered = on
	if on {
		d.identify()
		d.styles.Painter = d.engine
		return
	}
	d.engine.Reset(d.store)
	d.styles.Painter = nil
}

func (d *Diagram) identify() []string {
	start := time.Now()
	values := d.engine.Identify(d.store)
	elapsed := time.Since(start)
	d.logger.Debug("clusters identified", "key", d.engine.Key(), "clusters", len(values), "took", elapsed)
	observability.Diagram().OnClustersIdentified(d.id, len(values), elapsed)
	return values
}

// IdentifyClusters rebuilds the cluster map from the current nodes and
// returns the cluster values in id order. It works whether or not clustering
// is enabled; colours only apply while it is.
func (d *Diagram) IdentifyClusters() []string {
	values := d.identify()
	if d.clustered {
		d.rebuildLayout()
		d.notify(d.everything())
	}
	return values
}

// SetClusterKey changes the property clusters are read from and re-identifies
// clusters.
func (d *Diagram) SetClusterKey(key string) error {
	if err := ferr.ValidatePropertyKey("cluster key", key); err != nil {
		return d.reject("cluster", "set cluster key", key, err)
	}
	d.engine.SetKey(key)
	d.opts.ClusterKey = key
	d.IdentifyClusters()
	return nil
}

// Clusters returns the cluster values in id order.
func (d *Diagram) Clusters() []string { return d.engine.Values() }

// ClusterMap returns the value -> id mapping.
func (d *Diagram) ClusterMap() map[string]int { return d.engine.Map() }

// ClusterColour returns the colour of a cluster value.
func (d *Diagram) ClusterColour(value string) (string, error) {
	return d.engine.Colour(value)
}

// ClusterEngine exposes the clustering engine for read access.
func (d *Diagram) ClusterEngine() *cluster.Engine { return d.engine }
