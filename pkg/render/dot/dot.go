package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/forcegraph/pkg/diagram"
	"github.com/matzehuels/forcegraph/pkg/style"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds type and state to labels.
	Detailed bool

	// Positions pins nodes at their frame positions and switches the layout
	// engine to neato.
	Positions bool
}

// pointsPerInch converts style radii (pixels) to Graphviz inches.
const pointsPerInch = 72.0

// ToDOT converts a frame to Graphviz DOT source.
func ToDOT(f diagram.Frame, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Positions {
		buf.WriteString("  layout=neato;\n")
		buf.WriteString("  inputscale=72;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if curved(f.Edges) {
		buf.WriteString("  splines=curved;\n")
	}
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, fontsize=10];\n")
	buf.WriteString("\n")

	for _, n := range f.Nodes {
		if !n.Visible() {
			continue
		}
		attrs := nodeAttrs(n.Snapshot, opts.Detailed)
		if opts.Positions {
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", num(n.Position.X), num(-n.Position.Y)))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Ref.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range f.Edges {
		if !e.Visible() {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(e.Snapshot, opts.Detailed), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func curved(edges []diagram.EdgeFrame) bool {
	for _, e := range edges {
		if e.Visible() && e.Curved {
			return true
		}
	}
	return false
}

func label(s style.Snapshot, detailed bool) string {
	if !detailed {
		return s.Caption
	}
	return fmt.Sprintf("%s\n%s/%s", s.Caption, s.Type, s.State)
}

func nodeAttrs(s style.Snapshot, detailed bool) []string {
	attrs := []string{
		fmt.Sprintf("id=%q", s.Ref.String()),
		fmt.Sprintf("label=%q", label(s, detailed)),
		fmt.Sprintf("width=%s", num(2*s.Radius/pointsPerInch)),
		fmt.Sprintf("penwidth=%s", num(s.StrokeWidth)),
	}
	if c, ok := Colour(s.Fill, s.Opacity); ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
	} else {
		attrs = append(attrs, "style=\"\"")
	}
	if c, ok := Colour(s.Stroke, s.Opacity); ok {
		attrs = append(attrs, fmt.Sprintf("color=%q", c))
	}
	if c, ok := Colour(s.CaptionFill, 1); ok {
		attrs = append(attrs, fmt.Sprintf("fontcolor=%q", c))
	}
	return attrs
}

func edgeAttrs(s style.Snapshot, detailed bool) []string {
	attrs := []string{
		fmt.Sprintf("id=%q", s.Ref.String()),
		fmt.Sprintf("penwidth=%s", num(s.StrokeWidth)),
	}
	if c, ok := Colour(s.Stroke, s.Opacity); ok {
		attrs = append(attrs, fmt.Sprintf("color=%q", c))
	}
	if s.Caption != "" || detailed {
		attrs = append(attrs, fmt.Sprintf("label=%q", label(s, detailed)))
	}
	if !s.Directed {
		attrs = append(attrs, "dir=none")
	}
	return attrs
}

// Colour converts a hex colour and an opacity to Graphviz "#rrggbbaa" form.
// It returns false for "none", empty and unparsable colours.
func Colour(hex string, opacity float64) (string, bool) {
	if hex == "" || hex == "none" {
		return "", false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", false
	}
	opacity = max(0, min(1, opacity))
	return fmt.Sprintf("%s%02x", c.Clamped().Hex(), int(opacity*255+0.5)), true
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// =============================================================================
// SVG
// =============================================================================

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with one whose origin
// is 0,0 and whose size matches the viewBox, so the SVG scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
