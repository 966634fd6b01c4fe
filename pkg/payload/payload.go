package payload

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/diagram"
	ferr "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Payload is the decoded form of a diagram data file.
type Payload struct {
	Nodes   []*graph.Properties `json:"nodes"`
	Edges   []*graph.Properties `json:"edges"`
	Options *config.Options     `json:"options,omitempty"`
}

// Decode reads a payload from r. It does not close r.
func Decode(r io.Reader) (*Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, ferr.Wrap(ferr.ErrCodeInvalidInput, err, "decode payload")
	}
	return &p, nil
}

// ReadFile decodes the payload file at path.
func ReadFile(path string) (*Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Rejected is one element the diagram refused.
type Rejected struct {
	Kind  graph.Kind `json:"kind"`
	Index int        `json:"index"` // position in the payload array
	ID    string     `json:"id"`
	Code  string     `json:"code"`
	Error string     `json:"error"`
}

// Report summarises a Load.
type Report struct {
	Nodes    int        `json:"nodes"`
	Edges    int        `json:"edges"`
	Rejected []Rejected `json:"rejected,omitempty"`
}

// OK reports whether every element was accepted.
func (r Report) OK() bool { return len(r.Rejected) == 0 }

// Load creates the payload's nodes, then its edges, in file order.
func Load(d *diagram.Diagram, p *Payload) Report {
	var rep Report
	for i, props := range p.Nodes {
		if _, err := d.CreateNode(props); err != nil {
			rep.reject(graph.KindNode, i, props.String(graph.PropID), err)
			continue
		}
		rep.Nodes++
	}
	for i, props := range p.Edges {
		if _, err := d.CreateEdge(props); err != nil {
			id := props.String(graph.PropID)
			if id == "" {
				id = graph.CompositeKey(props.String(graph.PropSource), props.String(graph.PropTarget))
			}
			rep.reject(graph.KindEdge, i, id, err)
			continue
		}
		rep.Edges++
	}
	return rep
}

func (r *Report) reject(kind graph.Kind, index int, id string, err error) {
	r.Rejected = append(r.Rejected, Rejected{
		Kind:  kind,
		Index: index,
		ID:    id,
		Code:  string(ferr.GetCode(err)),
		Error: ferr.UserMessage(err),
	})
}

// Open builds a diagram from a payload. opts is used when the payload carries
// no options of its own.
func Open(p *Payload, opts config.Options, options ...diagram.Option) (*diagram.Diagram, Report, error) {
	if p.Options != nil {
		opts = *p.Options
	}
	d, err := diagram.New(opts, options...)
	if err != nil {
		return nil, Report{}, err
	}
	return d, Load(d, p), nil
}

// =============================================================================
// Export
// =============================================================================

// FromDiagram captures the current elements of d as a payload. Options are
// left out.
func FromDiagram(d *diagram.Diagram) *Payload {
	nodes := d.Nodes()
	edges := d.AllEdges()
	p := &Payload{
		Nodes: make([]*graph.Properties, len(nodes)),
		Edges: make([]*graph.Properties, len(edges)),
	}
	for i, n := range nodes {
		p.Nodes[i] = n.Properties.Clone()
	}
	for i, e := range edges {
		p.Edges[i] = e.Properties.Clone()
	}
	return p
}

// Encode writes p as indented JSON. The output can be read back with Decode.
func Encode(w io.Writer, p *Payload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
