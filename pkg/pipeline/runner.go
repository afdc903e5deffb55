package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gi-bielefeld/carp/pkg/bpg"
	"github.com/gi-bielefeld/carp/pkg/cache"
	"github.com/gi-bielefeld/carp/pkg/carp"
	"github.com/gi-bielefeld/carp/pkg/errors"
	"github.com/gi-bielefeld/carp/pkg/genome"
	"github.com/gi-bielefeld/carp/pkg/observability"
	"github.com/gi-bielefeld/carp/pkg/split"
)

// Runner executes analyses with caching. It holds no per-run state, so one
// Runner may serve concurrent analyses.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses cache.DefaultKeyer and a nil logger uses log.Default.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Analyze runs every enabled stage for one genome set. Verify always
// recomputes, since a cached result has no graph to check.
func (r *Runner) Analyze(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.loggerFor(opts)

	genomes, inputHash, err := loadGenomes(opts)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.AnalysisKey(inputHash, opts.AnalysisKeyOpts())

	if !opts.Refresh && !opts.Verify {
		if res, ok := r.cached(ctx, logger, key); ok {
			res.RunID = uuid.NewString()
			res.Splits = split.Top(res.Splits, opts.Top)
			logger.Debug("analysis cache hit", "key", key, "index", res.Index)
			return res, nil
		}
	}

	res, err := r.run(ctx, logger, genomes, opts)
	if err != nil {
		return nil, err
	}
	res.InputHash = inputHash

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, TTLAnalysis); err != nil {
			logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "analysis", len(data))
		}
	}

	res.Splits = split.Top(res.Splits, opts.Top)
	return res, nil
}

// loggerFor returns the per-run logger when one is set.
func (r *Runner) loggerFor(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func (r *Runner) cached(ctx context.Context, logger *log.Logger, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "analysis")
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		logger.Debug("discarding unreadable cache entry", "key", key, "error", err)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "analysis")
	res.CacheHit = true
	return &res, true
}

// run executes the stages without touching the cache.
func (r *Runner) run(ctx context.Context, logger *log.Logger, genomes []genome.Genome, opts Options) (*Result, error) {
	res := &Result{
		RunID:   uuid.NewString(),
		Genomes: genome.Colors(genomes),
	}
	res.Stats.Chromosomes, res.Stats.Markers = countChromosomes(genomes)
	logger.Debug("read genomes", "summary", genome.Summary(genomes))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	genomes, res.Stats.CoreMarkers = project(genomes, opts.Core)
	if opts.Core {
		logger.Debug("projected to core", "markers", res.Stats.CoreMarkers)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g, elapsed, err := r.build(ctx, logger, genomes)
	if err != nil {
		return nil, err
	}
	res.Graph = g
	res.Stats.BuildTime = elapsed
	res.Stats.Nodes, res.Stats.Edges = g.NodeCount(), g.EdgeCount()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	p := carp.Classify(g)
	res.Stats.ClassifyTime = time.Since(start)
	res.Index = p.Index()
	observability.Pipeline().OnClassifyComplete(ctx, res.Index, res.Stats.ClassifyTime)
	logger.Info("computed CARP index", "index", res.Index, "edges", g.EdgeCount(), "duration", res.Stats.ClassifyTime)

	if opts.Verify {
		if err := carp.Check(g, p); err != nil {
			return nil, err
		}
		logger.Debug("partition verified")
	}
	if opts.Partition {
		res.Partition = &p
	}

	if !opts.Splits {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	colors := genome.Colors(genomes)
	support := split.Analyze(g, colors)
	res.Splits = split.Ranked(support)
	if opts.Tree {
		res.Tree = split.TreeFilter(support)
	}
	if opts.Residuals {
		res.Residuals = split.Residuals(g, colors, support)
	}
	res.Stats.SplitTime = time.Since(start)
	observability.Pipeline().OnSplitsComplete(ctx, len(res.Splits), res.Stats.SplitTime)
	logger.Info("analyzed splits", "splits", len(res.Splits), "tree", len(res.Tree), "duration", res.Stats.SplitTime)

	return res, nil
}

func (r *Runner) build(ctx context.Context, logger *log.Logger, genomes []genome.Genome) (*bpg.Graph, time.Duration, error) {
	observability.Pipeline().OnBuildStart(ctx, len(genomes))
	start := time.Now()
	g, err := bpg.Build(genomes)
	elapsed := time.Since(start)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, 0, 0, elapsed, err)
		return nil, elapsed, errors.Wrap(errors.GetCode(err), err, "build graph")
	}
	observability.Pipeline().OnBuildComplete(ctx, g.NodeCount(), g.EdgeCount(), elapsed, nil)
	logger.Debug("built breakpoint graph", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "duration", elapsed)
	return g, elapsed, nil
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
