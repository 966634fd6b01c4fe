// Package config holds the options of a diagram and loads them from TOML.
//
// Every option is optional. [Options.SetDefaults] fills the gaps and
// [Options.Validate] rejects values that would make the diagram misbehave.
// [Load] does both after decoding a file:
//
//	opts, err := config.Load("diagram.toml")
//	if err != nil {
//	    return err
//	}
//	d := diagram.New(opts, diagram.WithLogger(logger))
//
// A minimal file:
//
//	cluster     = true
//	cluster_key = "team"
//	root_nodes  = "root"
//	link_distance = 120
//
//	[node_types]
//	key = "kind"
//
//	[node_style.db]
//	fill = "#FF8800"
//
//	[node_style.db.states.selected]
//	stroke = "#000000"
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/forcegraph/pkg/cluster"
	ferr "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/layout"
	"github.com/matzehuels/forcegraph/pkg/style"
)

// Defaults for optional settings.
const (
	DefaultCaptionKey = "caption"
	DefaultRootKey    = "root"
	DefaultWidth      = layout.DefaultWidth
	DefaultHeight     = layout.DefaultHeight
)

// Options configures one diagram.
type Options struct {
	NodeTypes   graph.TypeRule `toml:"node_types" json:"nodeTypes"`
	EdgeTypes   graph.TypeRule `toml:"edge_types" json:"edgeTypes"`
	NodeCaption string         `toml:"node_caption" json:"nodeCaption,omitempty"`
	EdgeCaption string         `toml:"edge_caption" json:"edgeCaption,omitempty"`

	Cluster               bool     `toml:"cluster" json:"cluster"`
	ClusterKey            string   `toml:"cluster_key" json:"clusterKey,omitempty"`
	ClusterColours        []string `toml:"cluster_colours" json:"clusterColours,omitempty"`
	ClusterRangeInclusive bool     `toml:"cluster_range_inclusive" json:"clusterRangeInclusive,omitempty"`

	RootNodes    string `toml:"root_nodes" json:"rootNodes,omitempty"`
	FixRootNodes bool   `toml:"fix_root_nodes" json:"fixRootNodes,omitempty"`

	LinkDistance LinkDistance `toml:"link_distance" json:"linkDistance"`
	GraphWidth   float64      `toml:"graph_width" json:"graphWidth,omitempty"`
	GraphHeight  float64      `toml:"graph_height" json:"graphHeight,omitempty"`

	NodeStyle map[string]style.Spec `toml:"node_style" json:"nodeStyle,omitempty"`
	EdgeStyle map[string]style.Spec `toml:"edge_style" json:"edgeStyle,omitempty"`

	// LinkDistanceFunc overrides LinkDistance in plain (unclustered) layout.
	// It cannot be set from a file.
	LinkDistanceFunc layout.DistanceFunc `toml:"-" json:"-"`
}

// Default returns options with every default applied.
func Default() Options {
	var o Options
	o.SetDefaults()
	return o
}

// SetDefaults fills unset fields. It is idempotent.
func (o *Options) SetDefaults() {
	if o.NodeCaption == "" {
		o.NodeCaption = DefaultCaptionKey
	}
	if o.EdgeCaption == "" {
		o.EdgeCaption = DefaultCaptionKey
	}
	if o.ClusterKey == "" {
		o.ClusterKey = cluster.DefaultKey
	}
	if len(o.ClusterColours) == 0 {
		o.ClusterColours = append([]string(nil), cluster.DefaultPalette...)
	}
	if o.RootNodes == "" {
		o.RootNodes = DefaultRootKey
	}
	if o.GraphWidth == 0 {
		o.GraphWidth = DefaultWidth
	}
	if o.GraphHeight == 0 {
		o.GraphHeight = DefaultHeight
	}
}

// Validate checks the options. Call SetDefaults first; blank keys are
// rejected.
func (o *Options) Validate() error {
	keys := []struct{ option, key string }{
		{"node_caption", o.NodeCaption},
		{"edge_caption", o.EdgeCaption},
		{"cluster_key", o.ClusterKey},
		{"root_nodes", o.RootNodes},
	}
	for _, k := range keys {
		if err := ferr.ValidatePropertyKey(k.option, k.key); err != nil {
			return err
		}
	}
	if o.GraphWidth < 0 || o.GraphHeight < 0 {
		return ferr.New(ferr.ErrCodeInvalidConfig, "graph dimensions must not be negative (%gx%g)", o.GraphWidth, o.GraphHeight)
	}
	if o.LinkDistance.Value < 0 {
		return ferr.New(ferr.ErrCodeInvalidConfig, "link_distance must not be negative (%g)", o.LinkDistance.Value)
	}
	if err := cluster.ValidatePalette(o.ClusterColours); err != nil {
		return err
	}
	if _, _, err := o.StyleTables(); err != nil {
		return ferr.Wrap(ferr.ErrCodeInvalidConfig, err, "style tables")
	}
	return nil
}

// =============================================================================
// Loading
// =============================================================================

// Load reads a TOML file, applies defaults and validates the result.
// Unknown keys are rejected so that typos do not pass silently.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes TOML text, applies defaults and validates the result.
func Parse(text string) (Options, error) {
	var o Options
	md, err := toml.Decode(text, &o)
	if err != nil {
		return Options{}, ferr.Wrap(ferr.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, ferr.New(ferr.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// =============================================================================
// Conversions
// =============================================================================

// ClusterOptions returns the clustering engine options.
func (o Options) ClusterOptions() cluster.Options {
	return cluster.Options{
		Key:            o.ClusterKey,
		Palette:        o.ClusterColours,
		RootKey:        o.RootNodes,
		InclusiveRange: o.ClusterRangeInclusive,
	}
}

// LayoutOptions returns the parameterizer options. clusters is nil when
// clustering is off.
func (o Options) LayoutOptions(clusters layout.Membership) layout.Options {
	return layout.Options{
		Width:   o.GraphWidth,
		Height:  o.GraphHeight,
		RootKey: o.RootNodes,
		Distance: layout.Distance{
			Constant: o.LinkDistance.Value,
			Func:     o.LinkDistanceFunc,
		},
		Clusters: clusters,
	}
}

// StoreOptions returns the graph store options.
func (o Options) StoreOptions() graph.Options {
	return graph.Options{NodeTypes: o.NodeTypes, EdgeTypes: o.EdgeTypes}
}

// StyleTables converts the file style sections into resolver tables.
func (o Options) StyleTables() (style.NodeTable, style.EdgeTable, error) {
	nodes, err := style.NodeTableFromSpecs(o.NodeStyle)
	if err != nil {
		return nil, nil, err
	}
	edges, err := style.EdgeTableFromSpecs(o.EdgeStyle)
	if err != nil {
		return nil, nil, err
	}
	return nodes, edges, nil
}

// =============================================================================
// Link distance
// =============================================================================

// LinkDistance is either "default" (zero Value) or a positive number.
type LinkDistance struct {
	Value float64
}

// IsDefault reports whether the k-derived distance is used.
func (d LinkDistance) IsDefault() bool { return d.Value == 0 }

// String returns "default" or the number.
func (d LinkDistance) String() string {
	if d.IsDefault() {
		return "default"
	}
	return strconv.FormatFloat(d.Value, 'f', -1, 64)
}

// Set parses s; it makes LinkDistance usable as a command-line flag.
func (d *LinkDistance) Set(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "default") {
		d.Value = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ferr.New(ferr.ErrCodeInvalidConfig, "link_distance must be \"default\" or a number, got %q", s)
	}
	d.Value = v
	return nil
}

// Type implements pflag.Value.
func (d *LinkDistance) Type() string { return "distance" }

// UnmarshalTOML accepts a string or a number.
func (d *LinkDistance) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		return d.Set(x)
	case int64:
		d.Value = float64(x)
	case float64:
		d.Value = x
	default:
		return ferr.New(ferr.ErrCodeInvalidConfig, "link_distance has unsupported type %T", v)
	}
	return nil
}

// MarshalJSON writes "default" or the number.
func (d LinkDistance) MarshalJSON() ([]byte, error) {
	if d.IsDefault() {
		return []byte(`"default"`), nil
	}
	return json.Marshal(d.Value)
}

// UnmarshalJSON accepts a string or a number.
func (d *LinkDistance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return d.Set(s)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return ferr.New(ferr.ErrCodeInvalidConfig, "link_distance must be \"default\" or a number")
	}
	d.Value = f
	return nil
}
