package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dagmatch/pkg/cache"
	"github.com/matzehuels/dagmatch/pkg/dag"
	"github.com/matzehuels/dagmatch/pkg/dag/match"
	"github.com/matzehuels/dagmatch/pkg/dag/transform"
	"github.com/matzehuels/dagmatch/pkg/dag/traverse"
	"github.com/matzehuels/dagmatch/pkg/dag/validate"
	apperrors "github.com/matzehuels/dagmatch/pkg/errors"
	"github.com/matzehuels/dagmatch/pkg/graph"
	"github.com/matzehuels/dagmatch/pkg/observability"
)

// Runner executes analyses with limits, caching and instrumentation.
// Both CLI and API use it so the two never drift apart.
//
// The Runner holds no per-call state. Multiple goroutines can safely use the
// same Runner as long as its fields are not changed concurrently.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Limits Limits

	// TTL is the lifetime of cached results. Zero means no expiry.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Limits start at [DefaultLimits] and TTL at [cache.TTLResult].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Limits: DefaultLimits(),
		TTL:    cache.TTLResult,
	}
}

// Validate reports cycles, orphans and dangling references in g.
func (r *Runner) Validate(ctx context.Context, g graph.Graph) (validate.Result, error) {
	if err := r.checkGraph(ctx, g); err != nil {
		return validate.Result{}, err
	}

	start := time.Now()
	res, err := cached(ctx, r, "validate", []graph.Graph{g}, nil, func() (validate.Result, error) {
		return validate.Validate(g), nil
	})
	if err != nil {
		return validate.Result{}, err
	}
	elapsed := time.Since(start)

	observability.Analysis().OnValidate(ctx, len(g.Nodes), res.IsValid, elapsed)
	r.Logger.Info("validated graph",
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"valid", res.IsValid,
		"acyclic", res.IsAcyclic,
		"duration", elapsed)
	return res, nil
}

// Order returns the node IDs of g in the requested traversal order.
//
// A topological order shorter than the node list means g has a cycle; the
// partial order is still returned and a warning is logged.
func (r *Runner) Order(ctx context.Context, g graph.Graph, opts OrderOptions) ([]string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := r.checkGraph(ctx, g); err != nil {
		return nil, err
	}

	start := time.Now()
	order, err := cached(ctx, r, "order", []graph.Graph{g}, opts, func() ([]string, error) {
		switch opts.Mode {
		case OrderBFS:
			return traverse.BFS(g, opts.Start...), nil
		case OrderDFS:
			return traverse.DFSPostOrder(g, opts.Start...), nil
		default:
			return traverse.TopologicalSort(g), nil
		}
	})
	if err != nil {
		return nil, err
	}
	if order == nil {
		order = []string{}
	}
	elapsed := time.Since(start)

	if opts.Mode == OrderTopological {
		if nodes := dag.FromGraph(g).NodeCount(); len(order) < nodes {
			r.Logger.Warn("graph has cycles; topological order is partial",
				"ordered", len(order),
				"nodes", nodes)
		}
	}

	observability.Analysis().OnOrder(ctx, string(opts.Mode), len(g.Nodes), len(order), elapsed)
	r.Logger.Info("ordered graph",
		"mode", opts.Mode,
		"nodes", len(g.Nodes),
		"visited", len(order),
		"duration", elapsed)
	return order, nil
}

// Match searches for pattern inside target. Inputs larger than the
// configured limits are rejected with LIMIT_EXCEEDED before any search.
func (r *Runner) Match(ctx context.Context, pattern, target graph.Graph) (MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return MatchResult{}, err
	}
	if err := apperrors.CheckLimit("pattern", len(pattern.Nodes), r.Limits.MaxPatternNodes); err != nil {
		return MatchResult{}, err
	}
	if err := apperrors.CheckLimit("target", len(target.Nodes), r.Limits.MaxTargetNodes); err != nil {
		return MatchResult{}, err
	}

	observability.Analysis().OnMatchStart(ctx, len(pattern.Nodes), len(target.Nodes))
	start := time.Now()
	res, err := cached(ctx, r, "match", []graph.Graph{pattern, target}, nil, func() (MatchResult, error) {
		var st match.Stats
		m, ok := match.FindMapping(pattern, target, match.WithStats(&st))
		return MatchResult{Found: ok, Mapping: m, Stats: st}, nil
	})
	elapsed := time.Since(start)
	observability.Analysis().OnMatchComplete(ctx, res.Found, res.Stats.Checks, elapsed, err)
	if err != nil {
		return MatchResult{}, err
	}

	r.Logger.Info("matched pattern",
		"pattern", len(pattern.Nodes),
		"target", len(target.Nodes),
		"found", res.Found,
		"checks", res.Stats.Checks,
		"backtracks", res.Stats.Backtracks,
		"duration", elapsed)
	return res, nil
}

// transformOutput is the cached form of a transform.
type transformOutput struct {
	Graph  graph.Graph      `json:"graph"`
	Result transform.Result `json:"result"`
}

// Transform applies cycle breaking and transitive reduction to a copy of g.
// Dangling edges do not survive the round trip through the store.
//
// Reducing a cyclic graph without breaking its cycles is rejected with
// INVALID_INPUT, since reachability through a cycle would remove edges the
// cycle depends on.
func (r *Runner) Transform(ctx context.Context, g graph.Graph, opts TransformOptions) (graph.Graph, transform.Result, error) {
	if err := r.checkGraph(ctx, g); err != nil {
		return graph.Graph{}, transform.Result{}, err
	}
	if opts.Reduce && !opts.BreakCycles && len(validate.FindCycles(g)) > 0 {
		return graph.Graph{}, transform.Result{}, apperrors.New(apperrors.ErrCodeInvalidInput,
			"graph has cycles; transitive reduction needs cycle breaking")
	}

	start := time.Now()
	out, err := cached(ctx, r, "transform", []graph.Graph{g}, opts, func() (transformOutput, error) {
		s := dag.FromGraph(g)
		res := transform.Apply(s, transform.Options{
			BreakCycles: opts.BreakCycles,
			Reduce:      opts.Reduce,
		})
		return transformOutput{Graph: s.ToGraph(), Result: res}, nil
	})
	if err != nil {
		return graph.Graph{}, transform.Result{}, err
	}
	elapsed := time.Since(start)

	observability.Analysis().OnTransform(ctx, out.Result.Removed(), elapsed)
	r.Logger.Info("transformed graph",
		"steps", opts,
		"cycles_removed", out.Result.CyclesRemoved,
		"transitive_removed", out.Result.TransitiveEdgesRemoved,
		"duration", elapsed)
	return out.Graph, out.Result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) checkGraph(ctx context.Context, g graph.Graph) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return apperrors.CheckLimit("graph", len(g.Nodes), r.Limits.MaxGraphNodes)
}

// cached returns the stored result for op on graphs and opts, or computes
// and stores it. Cache failures are logged and treated as misses: a broken
// cache never fails an analysis.
func cached[T any](ctx context.Context, r *Runner, op string, graphs []graph.Graph, opts any, compute func() (T, error)) (T, error) {
	key, ok := r.resultKey(op, graphs, opts)
	if ok {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache get failed", "op", op, "err", err)
		}
		if hit {
			var v T
			if err := json.Unmarshal(data, &v); err == nil {
				observability.Cache().OnCacheHit(ctx, op)
				r.Logger.Debug("cache hit", "op", op)
				return v, nil
			}
			_ = r.Cache.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, op)
	}

	v, err := compute()
	if err != nil || !ok {
		return v, err
	}

	if data, err := json.Marshal(v); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache set failed", "op", op, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, op, len(data))
		}
	}
	return v, nil
}

// resultKey hashes the input graphs in order. It reports false when a
// graph cannot be encoded, in which case the call runs uncached.
func (r *Runner) resultKey(op string, graphs []graph.Graph, opts any) (string, bool) {
	var combined []byte
	for _, g := range graphs {
		h, err := cache.GraphHash(g)
		if err != nil {
			return "", false
		}
		combined = append(combined, h...)
	}
	return r.Keyer.ResultKey(op, cache.Hash(combined), opts), true
}
