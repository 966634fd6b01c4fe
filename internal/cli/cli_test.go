package cli

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

const testPayload = `{
  "nodes": [
    {"id": "a", "caption": "Alpha", "team": "x", "root": true},
    {"id": "b", "team": "y"},
    {"id": "c", "team": "z"}
  ],
  "edges": [
    {"source": "a", "target": "b"},
    {"source": "b", "target": "c"},
    {"source": "c", "target": "ghost"}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"inspect", "render", "serve", "explore", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestOptions(t *testing.T) {
	c := New(io.Discard, LogInfo)
	opts, err := c.options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.ClusterKey != "cluster" {
		t.Errorf("default cluster key = %q", opts.ClusterKey)
	}

	c.configPath = writeFile(t, "forcegraph.toml", "cluster = true\ncluster_key = \"team\"\n")
	opts, err = c.options()
	if err != nil {
		t.Fatal(err)
	}
	if !opts.Cluster || opts.ClusterKey != "team" {
		t.Errorf("options = %+v", opts)
	}

	c.configPath = writeFile(t, "bad.toml", "no_such_option = 1\n")
	if _, err := c.options(); err == nil {
		t.Error("unknown option should fail")
	}
}

func TestOpen(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.configPath = writeFile(t, "forcegraph.toml", "cluster = true\ncluster_key = \"team\"\n")

	d, rep, err := c.open(writeFile(t, "data.json", testPayload))
	if err != nil {
		t.Fatal(err)
	}
	if d.NodeCount() != 3 || d.EdgeCount() != 2 {
		t.Errorf("counts = %d/%d", d.NodeCount(), d.EdgeCount())
	}
	if len(rep.Rejected) != 1 || rep.Rejected[0].Code != "MISSING_ENDPOINT" {
		t.Errorf("report = %+v", rep)
	}
	if !slices.Equal(d.Clusters(), []string{"x", "y", "z"}) {
		t.Errorf("clusters = %v", d.Clusters())
	}

	if _, _, err := c.open(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing payload should fail")
	}
}

func TestInspectCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"inspect", "--cluster", "--cluster-key", "team", writeFile(t, "data.json", testPayload)})
	root.SetOut(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
}
