package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/dagmatch/pkg/buildinfo"
	"github.com/matzehuels/dagmatch/pkg/dag"
	"github.com/matzehuels/dagmatch/pkg/dag/transform"
	apperrors "github.com/matzehuels/dagmatch/pkg/errors"
	"github.com/matzehuels/dagmatch/pkg/graph"
	"github.com/matzehuels/dagmatch/pkg/pipeline"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// OrderResponse is the body of POST /order.
type OrderResponse struct {
	Mode  pipeline.OrderMode `json:"mode"`
	Order []string           `json:"order"`
	// Partial is set when a topological order skipped nodes on cycles.
	Partial bool `json:"partial,omitempty"`
}

// MatchRequest is the body of POST /match.
type MatchRequest struct {
	Pattern graph.Graph `json:"pattern"`
	Target  graph.Graph `json:"target"`
}

// TransformResponse is the body of POST /transform.
type TransformResponse struct {
	Graph  graph.Graph      `json:"graph"`
	Result transform.Result `json:"result"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   "dagmatch",
		Version:   buildinfo.Get().Version,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	g, err := graph.ReadGraph(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.runner.Validate(r.Context(), g)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.OrderOptions{
		Mode:  pipeline.OrderMode(r.URL.Query().Get("mode")),
		Start: splitList(r.URL.Query().Get("start")),
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, r, err)
		return
	}

	g, err := graph.ReadGraph(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, err := s.runner.Order(r.Context(), g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, OrderResponse{
		Mode:    opts.Mode,
		Order:   order,
		Partial: opts.Mode == pipeline.OrderTopological && len(order) < dag.FromGraph(g).NodeCount(),
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := graph.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode match request"))
		return
	}
	res, err := s.runner.Match(r.Context(), req.Pattern, req.Target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var opts pipeline.TransformOptions
	var err error
	if opts.BreakCycles, err = parseFlag(q.Get("break_cycles"), "break_cycles"); err != nil {
		writeError(w, r, err)
		return
	}
	if opts.Reduce, err = parseFlag(q.Get("reduce"), "reduce"); err != nil {
		writeError(w, r, err)
		return
	}

	g, err := graph.ReadGraph(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, res, err := s.runner.Transform(r.Context(), g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if out.Nodes == nil {
		out.Nodes = []graph.Node{}
	}
	if out.Edges == nil {
		out.Edges = []graph.Edge{}
	}
	writeJSON(w, http.StatusOK, TransformResponse{Graph: out, Result: res})
}

// splitList parses "a,b, c" into its non-empty trimmed elements.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFlag(v, name string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, apperrors.New(apperrors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
	}
	return b, nil
}
