package api

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dagmatch/internal/config"
	"github.com/matzehuels/dagmatch/pkg/cache"
	"github.com/matzehuels/dagmatch/pkg/dag/validate"
	"github.com/matzehuels/dagmatch/pkg/observability"
	"github.com/matzehuels/dagmatch/pkg/pipeline"
)

const diamondJSON = `{
	"nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}, {"id": "d"}],
	"edges": [
		{"from": "a", "to": "b"},
		{"from": "a", "to": "c"},
		{"from": "b", "to": "d"},
		{"from": "c", "to": "d"},
		{"from": "a", "to": "d"}
	]
}`

const cycleJSON = `{
	"nodes": [{"id": "x"}, {"id": "y"}, {"id": "z"}],
	"edges": [
		{"from": "x", "to": "y"},
		{"from": "y", "to": "z"},
		{"from": "z", "to": "x"}
	]
}`

func newTestServer(t *testing.T, mutate ...func(*pipeline.Runner, *config.ServerConfig)) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	cfg := config.Default().Server
	for _, m := range mutate {
		m(runner, &cfg)
	}
	return New(runner, logger, cfg)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "dagmatch", body.Service)
	assert.NotEmpty(t, body.Version)
	assert.False(t, body.Timestamp.IsZero())
}

func TestValidate(t *testing.T) {
	s := newTestServer(t)

	t.Run("acyclic", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/validate", diamondJSON)
		require.Equal(t, http.StatusOK, rec.Code)
		res := decode[validate.Result](t, rec)
		assert.True(t, res.IsValid)
		assert.True(t, res.IsAcyclic)
		assert.Empty(t, res.Cycles)
	})

	t.Run("cyclic", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/validate", cycleJSON)
		require.Equal(t, http.StatusOK, rec.Code)
		res := decode[validate.Result](t, rec)
		assert.False(t, res.IsValid)
		assert.False(t, res.IsAcyclic)
		assert.Equal(t, [][]string{{"x", "y", "z", "x"}}, res.Cycles)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/validate", `{"nodes": [`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[errorBody](t, rec)
		assert.Equal(t, "INVALID_FORMAT", body.Error.Code)
		assert.Equal(t, rec.Header().Get(RequestIDHeader), body.Error.RequestID)
	})

	t.Run("trailing data", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/validate", diamondJSON+` garbage`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_FORMAT", decode[errorBody](t, rec).Error.Code)
	})
}

func TestOrder(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		query   string
		body    string
		want    []string
		partial bool
	}{
		{name: "default topological", query: "", body: diamondJSON, want: []string{"a", "b", "c", "d"}},
		{name: "bfs", query: "?mode=bfs", body: diamondJSON, want: []string{"a", "b", "c", "d"}},
		{name: "dfs from start", query: "?mode=dfs&start=b", body: diamondJSON, want: []string{"d", "b"}},
		{name: "cycle is partial", query: "?mode=topo", body: cycleJSON, want: []string{}, partial: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/order"+tt.query, tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			res := decode[OrderResponse](t, rec)
			assert.Equal(t, tt.want, res.Order)
			assert.Equal(t, tt.partial, res.Partial)
		})
	}

	t.Run("unknown mode", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/order?mode=sideways", diamondJSON)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_INPUT", decode[errorBody](t, rec).Error.Code)
	})
}

func TestMatch(t *testing.T) {
	s := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		body := `{
			"pattern": {"nodes": [{"id": "p"}, {"id": "q"}], "edges": [{"from": "p", "to": "q"}]},
			"target": ` + diamondJSON + `
		}`
		rec := do(t, s, http.MethodPost, "/match", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		res := decode[pipeline.MatchResult](t, rec)
		assert.True(t, res.Found)
		assert.Len(t, res.Mapping, 2)
		assert.Positive(t, res.Stats.Checks)
	})

	t.Run("not found", func(t *testing.T) {
		body := `{
			"pattern": {"nodes": [{"id": "p", "data": "red"}]},
			"target": {"nodes": [{"id": "t", "data": "blue"}]}
		}`
		rec := do(t, s, http.MethodPost, "/match", body)
		require.Equal(t, http.StatusOK, rec.Code)
		res := decode[pipeline.MatchResult](t, rec)
		assert.False(t, res.Found)
	})

	t.Run("malformed", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/match", `[]`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("trailing data", func(t *testing.T) {
		body := `{"pattern": {"nodes": []}, "target": {"nodes": []}} {}`
		rec := do(t, s, http.MethodPost, "/match", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_FORMAT", decode[errorBody](t, rec).Error.Code)
	})

	t.Run("pattern over limit", func(t *testing.T) {
		small := newTestServer(t, func(r *pipeline.Runner, _ *config.ServerConfig) {
			r.Limits.MaxPatternNodes = 1
		})
		body := `{
			"pattern": {"nodes": [{"id": "p"}, {"id": "q"}]},
			"target": ` + diamondJSON + `
		}`
		rec := do(t, small, http.MethodPost, "/match", body)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "LIMIT_EXCEEDED", decode[errorBody](t, rec).Error.Code)
	})
}

func TestTransform(t *testing.T) {
	s := newTestServer(t)

	t.Run("reduce", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/transform?reduce=true", diamondJSON)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		res := decode[TransformResponse](t, rec)
		assert.Equal(t, 1, res.Result.TransitiveEdgesRemoved)
		assert.Len(t, res.Graph.Edges, 4)
	})

	t.Run("break cycles", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/transform?break_cycles=1", cycleJSON)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		res := decode[TransformResponse](t, rec)
		assert.Equal(t, 1, res.Result.CyclesRemoved)
		assert.Len(t, res.Graph.Edges, 2)
	})

	t.Run("reduce on cyclic graph", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/transform?reduce=true", cycleJSON)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad flag", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/transform?reduce=maybe", diamondJSON)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_INPUT", decode[errorBody](t, rec).Error.Code)
	})
}

func TestBodyLimit(t *testing.T) {
	s := newTestServer(t, func(_ *pipeline.Runner, cfg *config.ServerConfig) {
		cfg.MaxBodyBytes = 16
	})
	rec := do(t, s, http.MethodPost, "/validate", diamondJSON)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "LIMIT_EXCEEDED", decode[errorBody](t, rec).Error.Code)
}

func TestRouting(t *testing.T) {
	s := newTestServer(t)

	t.Run("unknown route", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decode[errorBody](t, rec).Error.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/validate", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, func(_ *pipeline.Runner, cfg *config.ServerConfig) {
		cfg.AllowedOrigin = "https://example.com"
	})

	t.Run("preflight", func(t *testing.T) {
		rec := do(t, s, http.MethodOptions, "/validate", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("simple request", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/health", "")
		assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	t.Run("generated", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/health", "")
		_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, id)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
	})

	t.Run("invalid id replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "not-a-uuid")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
	})
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

type recordingHTTPHooks struct {
	requests []string
	statuses []int
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, path string) {
	h.requests = append(h.requests, method+" "+path)
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	s := newTestServer(t)
	do(t, s, http.MethodGet, "/health", "")
	do(t, s, http.MethodPost, "/order?mode=nope", diamondJSON)

	assert.Equal(t, []string{"GET /health", "POST /order"}, hooks.requests)
	assert.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, hooks.statuses)
}
