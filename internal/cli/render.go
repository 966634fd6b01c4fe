package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/diagram"
	"github.com/matzehuels/forcegraph/pkg/payload"
	"github.com/matzehuels/forcegraph/pkg/render/dot"
)

const (
	formatDOT     = "dot"     // Graphviz source
	formatSVG     = "svg"     // Graphviz-rendered SVG
	formatJSON    = "json"    // resolved frame and layout for a browser renderer
	formatPayload = "payload" // re-exported payload with options
)

var validFormats = []string{formatDOT, formatSVG, formatJSON, formatPayload}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple outputs)
	formats    []string // output formats
	detailed   bool     // add type and state to labels
	cluster    bool     // force clustering on
	clusterKey string   // node property to cluster by
	noCache    bool     // bypass the SVG cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [payload]",
		Short: "Render a diagram payload to DOT, SVG or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", formatSVG, "output formats, comma separated: dot, svg, json, payload")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add element type and state to labels")
	cmd.Flags().BoolVar(&opts.cluster, "cluster", false, "colour nodes by cluster")
	cmd.Flags().StringVar(&opts.clusterKey, "cluster-key", "", "node property clusters are read from (default from options)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render SVG without the on-disk cache")
	return cmd
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(validFormats, f) {
			return fmt.Errorf("unknown format %q (valid: %s)", f, strings.Join(validFormats, ", "))
		}
	}
	return nil
}

// basePath strips the extension from output, or derives a base from input.
func basePath(output, input string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
}

// outputPath returns where one format is written. A single format honours
// -o verbatim.
func outputPath(opts *renderOpts, input, format string) string {
	if len(opts.formats) == 1 && opts.output != "" {
		return opts.output
	}
	ext := format
	if format == formatPayload {
		ext = "payload.json"
	}
	return basePath(opts.output, input) + "." + ext
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	store, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	d, rep, err := c.open(input)
	if err != nil {
		return err
	}
	if err := c.cluster(d, opts.clusterKey, opts.cluster); err != nil {
		return err
	}
	if !rep.OK() {
		printWarning("%d elements rejected", len(rep.Rejected))
	}

	for _, format := range opts.formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := renderFormat(ctx, store, d, format, opts)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		path := outputPath(opts, input, format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("wrote output", "format", format, "bytes", len(data))
		printFile(path)
	}
	return nil
}

// renderFormat produces one output format for d.
func renderFormat(ctx context.Context, store cache.Cache, d *diagram.Diagram, format string, opts *renderOpts) ([]byte, error) {
	switch format {
	case formatDOT:
		return []byte(dot.ToDOT(d.Frame(nil), dot.Options{Detailed: opts.detailed})), nil
	case formatSVG:
		return renderSVG(ctx, store, dot.ToDOT(d.Frame(nil), dot.Options{Detailed: opts.detailed}))
	case formatJSON:
		return json.MarshalIndent(frameDocument{
			ID:     d.ID(),
			Frame:  d.Frame(nil),
			Layout: d.Layout(),
		}, "", "  ")
	case formatPayload:
		p := payload.FromDiagram(d)
		o := d.Options()
		p.Options = &o
		var buf bytes.Buffer
		if err := payload.Encode(&buf, p); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// renderSVG runs Graphviz on src unless the result is already cached.
func renderSVG(ctx context.Context, store cache.Cache, src string) ([]byte, error) {
	logger := loggerFromContext(ctx)
	key := cache.RenderKey(formatSVG, src)
	if data, ok, err := store.Get(ctx, key); err != nil {
		logger.Warn("cache read failed", "error", err)
	} else if ok {
		logger.Debug("svg cache hit")
		return data, nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
	spinner.Start()
	svg, err := dot.RenderSVG(src)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	if err := store.Set(ctx, key, svg, 0); err != nil {
		logger.Warn("cache write failed", "error", err)
	}
	return svg, nil
}

// frameDocument is the JSON render output.
type frameDocument struct {
	ID     string         `json:"id"`
	Frame  diagram.Frame  `json:"frame"`
	Layout diagram.Layout `json:"layout"`
}
