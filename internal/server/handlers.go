package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/forcegraph/pkg/buildinfo"
	"github.com/matzehuels/forcegraph/pkg/diagram"
	ferr "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/payload"
	"github.com/matzehuels/forcegraph/pkg/render/dot"
	"github.com/matzehuels/forcegraph/pkg/state"
)

// =============================================================================
// Request and response bodies
// =============================================================================

// CreateResponse is returned when a diagram is created from a payload.
type CreateResponse struct {
	ID     string         `json:"id"`
	Report payload.Report `json:"report"`
}

// EventRequest drives one interaction. Event is one of click, hoverEnter,
// hoverLeave, toggleHidden, deselectAll or setState; State is only read for
// setState and Ref is ignored for deselectAll.
type EventRequest struct {
	Event string           `json:"event"`
	Ref   graph.ElementRef `json:"ref"`
	State string           `json:"state,omitempty"`
}

// EventResponse lists the state changes an event caused.
type EventResponse struct {
	Changes []state.Change `json:"changes"`
}

// ClusterRequest updates clustering. A nil Enable leaves it as is; a
// non-empty Key replaces the cluster key first.
type ClusterRequest struct {
	Enable *bool  `json:"enable,omitempty"`
	Key    string `json:"key,omitempty"`
}

// Cluster is one identified cluster.
type Cluster struct {
	ID     int    `json:"id"`
	Value  string `json:"value"`
	Colour string `json:"colour"`
}

// ClusterResponse describes the clustering of a diagram.
type ClusterResponse struct {
	Clustered bool      `json:"clustered"`
	Key       string    `json:"key"`
	Clusters  []Cluster `json:"clusters"`
}

// FrameRequest carries simulator positions keyed by node id.
type FrameRequest struct {
	Positions map[string]diagram.Point `json:"positions"`
}

// =============================================================================
// Health and collection
// =============================================================================

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  buildinfo.Version,
		"diagrams": s.reg.Len(),
	})
}

func (s *Server) listDiagrams(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"diagrams": s.reg.IDs()})
}

func (s *Server) createDiagram(w http.ResponseWriter, r *http.Request) {
	p, err := payload.Decode(http.MaxBytesReader(w, r.Body, s.opts.MaxPayloadBytes))
	if err != nil {
		respondErr(w, err)
		return
	}
	opts := s.opts.Defaults
	if p.Options != nil {
		opts = *p.Options
	}
	sess, err := s.reg.Create(opts)
	if err != nil {
		respondErr(w, err)
		return
	}

	var rep payload.Report
	_ = sess.Do(func(d *diagram.Diagram) error {
		rep = payload.Load(d, p)
		return nil
	})
	if !rep.OK() {
		s.logger.Warn("payload partially rejected", "diagram", sess.ID(), "rejected", len(rep.Rejected))
	}
	respondJSON(w, http.StatusCreated, CreateResponse{ID: sess.ID(), Report: rep})
}

func (s *Server) deleteDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.reg.Delete(id) {
		respondErr(w, ferr.New(ferr.ErrCodeUnknownElement, "diagram %q does not exist", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Per-diagram reads
// =============================================================================

// with runs fn inside the session named by the id URL parameter and writes
// its result, or the error it returns.
func (s *Server) with(w http.ResponseWriter, r *http.Request, status int, fn func(d *diagram.Diagram) (any, error)) {
	sess, err := s.reg.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	var out any
	err = sess.Do(func(d *diagram.Diagram) error {
		var err error
		out, err = fn(d)
		return err
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	if out == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, status, out)
}

func (s *Server) getFrame(w http.ResponseWriter, r *http.Request) {
	s.with(w, r, http.StatusOK, func(d *diagram.Diagram) (any, error) {
		return d.Frame(nil), nil
	})
}

func (s *Server) postFrame(w http.ResponseWriter, r *http.Request) {
	var req FrameRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondErr(w, err)
		return
	}
	s.with(w, r, http.StatusOK, func(d *diagram.Diagram) (any, error) {
		return d.Frame(req.Positions), nil
	})
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	s.with(w, r, http.StatusOK, func(d *diagram.Diagram) (any, error) {
		return d.Layout(), nil
	})
}

func (s *Server) getGradients(w http.ResponseWriter, r *http.Request) {
	s.with(w, r, http.StatusOK, func(d *diagram.Diagram) (any, error) {
		return map[string]any{"gradients": d.Gradients()}, nil
	})
}

func (s *Server) exportPayload(w http.ResponseWriter, r *http.Request) {
	s.with(w, r, http.StatusOK, func(d *diagram.Diagram) (any, error) {
		p := payload.FromDiagram(d)
		opts := d.Options()
		p.Options = &opts
		return p, nil
	})
}

func (s *Server) getDOT(w http.ResponseWriter, r *http.Request) {
	sess, err := s.reg.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	var src string
	_ = sess.Do(func(d *diagram.Diagram) error {
		src = dot.ToDOT(d.Frame(nil), dot.Options{Detailed: r.URL.Query().Get("detailed") == "true"})
		return nil
	})
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(src))
}

// =============================================================================
// Mutations
// =============================================================================

func (s *Server) createNode(w http.ResponseWriter, r *http.Request) {
	props := graph.NewProperties()
	if err := decodeBody(w, r, props); err != nil {
		respondErr(w, err)
		return
	}
	s.with(w, r, http.StatusCreated, func(d *diagram.Diagram) (any, error) {
		n, err := d.CreateNode(props)
		if err != nil {
			return nil, err
		}
		return d.Snapshot(n.Ref())
	})
}

func (s *Server) removeNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	s.with(w, r, http.StatusNoContent, func(d *diagram.Diagram) (any, error) {
		return nil, d.RemoveNode(nodeID)
	})
}

func (s *Server) createEdge(w http.ResponseWriter, r *http.Request) {
	props := graph.NewProperties()
	if err := decodeBody(w, r, props); err != nil {
		respondErr(w, err)
		return
	}
	s.with(w, r, http.StatusCreated, func(d *diagram.Diagram) (any, error) {
		e, err := d.CreateEdge(props)
		if err != nil {
			return nil, err
		}
		return d.Snapshot(e.Ref())
	})
}

func (s *Server) removeEdge(w http.ResponseWriter, r *http.Request) {
	var ref graph.ElementRef
	if err := decodeBody(w, r, &ref); err != nil {
		respondErr(w, err)
		return
	}
	s.with(w, r, http.StatusNoContent, func(d *diagram.Diagram) (any, error) {
		return nil, d.RemoveEdge(ref)
	})
}

func (s *Server) applyEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondErr(w, err)
		return
	}
	s.with(w, r, http.StatusOK, func(d *diagram.Diagram) (any, error) {
		var (
			changes []state.Change
			err     error
		)
		switch req.Event {
		case "toggleHidden":
			changes, err = d.ToggleHidden(req.Ref)
		case "deselectAll":
			changes = d.DeselectAll()
		case "setState":
			st, perr := graph.ParseState(req.State)
			if perr != nil {
				return nil, perr
			}
			changes, err = d.SetState(req.Ref, st)
		default:
			changes, err = d.Apply(req.Ref, state.Event(req.Event))
		}
		if err != nil {
			return nil, err
		}
		if changes == nil {
			changes = []state.Change{}
		}
		return EventResponse{Changes: changes}, nil
	})
}

func (s *Server) updateClusters(w http.ResponseWriter, r *http.Request) {
	var req ClusterRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondErr(w, err)
		return
	}
	s.with(w, r, http.StatusOK, func(d *diagram.Diagram) (any, error) {
		if req.Key != "" {
			if err := d.SetClusterKey(req.Key); err != nil {
				return nil, err
			}
		}
		if req.Enable != nil {
			d.EnableClustering(*req.Enable)
		}
		return clusterResponse(d)
	})
}

func clusterResponse(d *diagram.Diagram) (ClusterResponse, error) {
	resp := ClusterResponse{
		Clustered: d.Clustered(),
		Key:       d.Options().ClusterKey,
		Clusters:  []Cluster{},
	}
	ids := d.ClusterMap()
	for _, v := range d.Clusters() {
		c, err := d.ClusterColour(v)
		if err != nil {
			return ClusterResponse{}, err
		}
		resp.Clusters = append(resp.Clusters, Cluster{ID: ids[v], Value: v, Colour: c})
	}
	return resp, nil
}

// =============================================================================
// Helpers
// =============================================================================

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(v); err != nil {
		return ferr.Wrap(ferr.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

// statusFor maps an error code to an HTTP status. Oversized bodies are 413
// whatever code they were wrapped in.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch ferr.GetCode(err) {
	case ferr.ErrCodeDuplicateNode, ferr.ErrCodeDuplicateEdge:
		return http.StatusConflict
	case ferr.ErrCodeMissingEndpoint:
		return http.StatusUnprocessableEntity
	case ferr.ErrCodeUnknownElement:
		return http.StatusNotFound
	case ferr.ErrCodeInvalidInput, ferr.ErrCodeInvalidConfig, ferr.ErrCodeInvalidState:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondErr(w http.ResponseWriter, err error) {
	code := ferr.GetCode(err)
	if code == "" {
		code = ferr.ErrCodeInternal
	}
	respondJSON(w, statusFor(err), map[string]any{
		"error":   true,
		"code":    code,
		"message": ferr.UserMessage(err),
	})
}
