package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gi-bielefeld/carp/pkg/cache"
	"github.com/gi-bielefeld/carp/pkg/carp"
	"github.com/gi-bielefeld/carp/pkg/errors"
	"github.com/gi-bielefeld/carp/pkg/genome"
	"github.com/gi-bielefeld/carp/pkg/observability"
)

const (
	// DefaultScanDepth is the neighborhood radius in markers.
	DefaultScanDepth = 500

	// TTLScan is how long scan results stay cached.
	TTLScan = 7 * 24 * time.Hour

	// scanChunk is the number of markers one worker scores between
	// cancellation checks.
	scanChunk = 64
)

// ScanOptions configures a neighborhood scan.
type ScanOptions struct {
	// Depth is the neighborhood radius in markers. Zero scores only the
	// edges at each marker.
	Depth int
	// Workers bounds concurrent scoring (DefaultWorkers if < 1).
	Workers int
}

// ScanResult holds the local CARP index of every marker.
type ScanResult struct {
	RunID     string             `json:"run_id"`
	InputHash string             `json:"input_hash"`
	Genomes   []string           `json:"genomes"`
	Depth     int                `json:"depth"`
	Scores    []carp.MarkerScore `json:"scores"`
	Histogram []carp.Bin         `json:"histogram"`
	ScanTime  time.Duration      `json:"scan_ns"`
	CacheHit  bool               `json:"cache_hit"`
}

// Scan computes the local CARP index around every marker of the input.
// Scores are ordered by marker ID. Only, Core, Refresh and Logger apply;
// the other analysis options are ignored.
func (r *Runner) Scan(ctx context.Context, opts Options, sopts ScanOptions) (*ScanResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if sopts.Depth < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scan depth must not be negative, got %d", sopts.Depth)
	}
	if sopts.Workers < 1 {
		sopts.Workers = DefaultWorkers
	}
	logger := r.loggerFor(opts)

	genomes, inputHash, err := loadGenomes(opts)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ScanKey(inputHash, cache.ScanKeyOpts{
		Genomes: onlyKey(opts.Only),
		Core:    opts.Core,
		Depth:   sopts.Depth,
	})
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var res ScanResult
			if err := json.Unmarshal(data, &res); err == nil {
				observability.Cache().OnCacheHit(ctx, "scan")
				res.RunID = uuid.NewString()
				res.CacheHit = true
				logger.Debug("scan cache hit", "key", key, "markers", len(res.Scores))
				return &res, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "scan")
	}

	res := &ScanResult{
		RunID:     uuid.NewString(),
		InputHash: inputHash,
		Genomes:   genome.Colors(genomes),
		Depth:     sopts.Depth,
	}
	genomes, _ = project(genomes, opts.Core)
	g, _, err := r.build(ctx, logger, genomes)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	markers := carp.Markers(g)
	scores := make([]carp.MarkerScore, len(markers))
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(sopts.Workers)
	for lo := 0; lo < len(markers); lo += scanChunk {
		hi := min(lo+scanChunk, len(markers))
		eg.Go(func() error {
			if err := ectx.Err(); err != nil {
				return err
			}
			copy(scores[lo:hi], carp.ScoreMarkers(g, markers[lo:hi], sopts.Depth))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	res.Scores = scores
	res.Histogram = carp.Histogram(scores)
	res.ScanTime = time.Since(start)
	logger.Info("scanned neighborhoods", "markers", len(scores), "depth", sopts.Depth, "duration", res.ScanTime)

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, TTLScan); err != nil {
			logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "scan", len(data))
		}
	}
	return res, nil
}
