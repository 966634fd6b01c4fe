package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/payload"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "dot", []string{"dot"}},
		{"multiple formats", "dot,json,payload", []string{"dot", "json", "payload"}},
		{"spaces trimmed", " dot , svg ", []string{"dot", "svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid all", []string{"dot", "svg", "json", "payload"}, false},
		{"invalid format", []string{"pdf"}, true},
		{"mixed valid invalid", []string{"dot", "png"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		format  string
		want    string
	}{
		{"derived from input", "", []string{"dot"}, "dot", "data.dot"},
		{"single format keeps -o", "out/graph.gv", []string{"dot"}, "dot", "out/graph.gv"},
		{"multiple formats use base", "out/graph.svg", []string{"dot", "svg"}, "dot", "out/graph.dot"},
		{"payload extension", "", []string{"json", "payload"}, "payload", "data.payload.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &renderOpts{output: tt.output, formats: tt.formats}
			if got := outputPath(opts, "/tmp/in/data.json", tt.format); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunRender(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)
	input := writeFile(t, "data.json", testPayload)
	base := filepath.Join(t.TempDir(), "graph")

	opts := &renderOpts{output: base, formats: []string{"dot", "json", "payload"}, cluster: true, clusterKey: "team"}
	ctx := withLogger(context.Background(), c.Logger)
	if err := c.runRender(ctx, input, opts); err != nil {
		t.Fatal(err)
	}

	src, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(src), `"a" -> "b"`) {
		t.Errorf("dot output:\n%s", src)
	}

	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	var doc frameDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Frame.Nodes) != 3 || len(doc.Layout.Links) != 2 || len(doc.Frame.Gradients) != 1 {
		t.Errorf("frame document = %+v", doc)
	}
	// a is a root, so only b -> c crosses clusters
	if len(doc.Frame.Gradients) == 1 && doc.Frame.Gradients[0].Key != "1-2" {
		t.Errorf("gradient key = %q, want 1-2", doc.Frame.Gradients[0].Key)
	}

	p, err := payload.ReadFile(base + ".payload.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Nodes) != 3 || p.Options == nil || !p.Options.Cluster || p.Options.ClusterKey != "team" {
		t.Errorf("payload = %+v", p)
	}
}

func TestRunRender_Cancelled(t *testing.T) {
	c := New(io.Discard, LogInfo)
	ctx, cancel := context.WithCancel(withLogger(context.Background(), c.Logger))
	cancel()

	opts := &renderOpts{output: filepath.Join(t.TempDir(), "graph"), formats: []string{"dot"}, noCache: true}
	if err := c.runRender(ctx, writeFile(t, "data.json", testPayload), opts); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRenderSVG_CacheHit(t *testing.T) {
	ctx := context.Background()
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := "digraph G { a -> b; }\n"
	if err := store.Set(ctx, cache.RenderKey(formatSVG, src), []byte("<svg>cached</svg>"), 0); err != nil {
		t.Fatal(err)
	}

	svg, err := renderSVG(ctx, store, src)
	if err != nil {
		t.Fatal(err)
	}
	if string(svg) != "<svg>cached</svg>" {
		t.Errorf("renderSVG() = %q, want the cached artifact", svg)
	}
}
