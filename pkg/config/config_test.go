package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/cluster"
	ferr "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/style"
)

func TestDefault(t *testing.T) {
	o := Default()
	if o.NodeCaption != "caption" || o.EdgeCaption != "caption" {
		t.Errorf("captions = %q/%q", o.NodeCaption, o.EdgeCaption)
	}
	if o.ClusterKey != cluster.DefaultKey || o.RootNodes != "root" {
		t.Errorf("keys = %q/%q", o.ClusterKey, o.RootNodes)
	}
	if o.GraphWidth != 800 || o.GraphHeight != 600 {
		t.Errorf("viewport = %vx%v", o.GraphWidth, o.GraphHeight)
	}
	if len(o.ClusterColours) != len(cluster.DefaultPalette) {
		t.Errorf("palette has %d colours", len(o.ClusterColours))
	}
	if o.Cluster || o.FixRootNodes || !o.LinkDistance.IsDefault() {
		t.Error("flags should default to off")
	}
	if err := o.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSetDefaultsIdempotent(t *testing.T) {
	o := Options{ClusterKey: "team"}
	o.SetDefaults()
	first := o
	o.SetDefaults()
	if o.ClusterKey != "team" || o.GraphWidth != first.GraphWidth || len(o.ClusterColours) != len(first.ClusterColours) {
		t.Error("SetDefaults should not change already-set fields")
	}
}

func TestParse(t *testing.T) {
	o, err := Parse(`
cluster = true
cluster_key = "team"
link_distance = 120
graph_width = 1024.0
cluster_colours = ["#112233", "#445566"]

[node_types]
key = "kind"
values = ["db", "svc"]

[node_style.db]
fill = "#FF8800"
radius = 14.0

[node_style.db.states.selected]
stroke = "#000000"
`)
	if err != nil {
		t.Fatal(err)
	}
	if !o.Cluster || o.ClusterKey != "team" {
		t.Errorf("cluster settings = %v %q", o.Cluster, o.ClusterKey)
	}
	if o.LinkDistance.Value != 120 {
		t.Errorf("link distance = %v", o.LinkDistance.Value)
	}
	if o.GraphWidth != 1024 || o.GraphHeight != 600 {
		t.Errorf("viewport = %vx%v", o.GraphWidth, o.GraphHeight)
	}
	if o.NodeTypes.Key != "kind" || len(o.NodeTypes.Values) != 2 {
		t.Errorf("node types = %+v", o.NodeTypes)
	}
	nodes, _, err := o.StyleTables()
	if err != nil {
		t.Fatal(err)
	}
	rule, ok := nodes["db"]
	if !ok || rule.Base.Fill.Resolve(style.Element{}) != "#FF8800" {
		t.Errorf("db rule = %+v", rule)
	}
	if _, ok := rule.States[graph.StateSelected]; !ok {
		t.Error("selected override missing")
	}
}

func TestParseLinkDistanceString(t *testing.T) {
	o, err := Parse(`link_distance = "default"`)
	if err != nil {
		t.Fatal(err)
	}
	if !o.LinkDistance.IsDefault() {
		t.Errorf("link distance = %v", o.LinkDistance)
	}
	o, err = Parse(`link_distance = "42.5"`)
	if err != nil {
		t.Fatal(err)
	}
	if o.LinkDistance.Value != 42.5 {
		t.Errorf("link distance = %v", o.LinkDistance)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"syntax", `cluster = `},
		{"unknown key", `clustr = true`},
		{"bad colour", `cluster_colours = ["#12", "#445566"]`},
		{"negative width", `graph_width = -1.0`},
		{"negative distance", `link_distance = -5`},
		{"bad distance", `link_distance = "far"`},
		{"blank key", `cluster_key = "   "`},
		{"bad state", "[node_style.db.states.glowing]\nfill = \"#000000\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if err == nil {
				t.Fatal("expected error")
			}
			if !ferr.Is(err, ferr.ErrCodeInvalidConfig) {
				t.Errorf("code = %q, want INVALID_CONFIG (%v)", ferr.GetCode(err), err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagram.toml")
	if err := os.WriteFile(path, []byte("fix_root_nodes = true\nroot_nodes = \"entry\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	o, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !o.FixRootNodes || o.RootNodes != "entry" {
		t.Errorf("root settings = %v %q", o.FixRootNodes, o.RootNodes)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestLinkDistanceJSON(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{`"default"`, 0},
		{`75`, 75},
		{`"30"`, 30},
	}
	for _, tt := range tests {
		var d LinkDistance
		if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if d.Value != tt.want {
			t.Errorf("%s: got %v, want %v", tt.in, d.Value, tt.want)
		}
	}

	out, _ := json.Marshal(LinkDistance{})
	if string(out) != `"default"` {
		t.Errorf("marshal default = %s", out)
	}
	out, _ = json.Marshal(LinkDistance{Value: 12})
	if string(out) != `12` {
		t.Errorf("marshal 12 = %s", out)
	}

	var d LinkDistance
	if err := json.Unmarshal([]byte(`true`), &d); err == nil {
		t.Error("bool should be rejected")
	}
}

func TestConversions(t *testing.T) {
	o := Default()
	o.ClusterRangeInclusive = true
	o.LinkDistance.Value = 50

	co := o.ClusterOptions()
	if co.Key != "cluster" || co.RootKey != "root" || !co.InclusiveRange {
		t.Errorf("cluster options = %+v", co)
	}
	lo := o.LayoutOptions(nil)
	if lo.Width != 800 || lo.Distance.Constant != 50 || lo.Clusters != nil {
		t.Errorf("layout options = %+v", lo)
	}
}
