package pipeline

import (
	"context"

	"github.com/gi-bielefeld/carp/pkg/cache"
	"github.com/gi-bielefeld/carp/pkg/carp"
	"github.com/gi-bielefeld/carp/pkg/observability"
	"github.com/gi-bielefeld/carp/pkg/render/nodelink"
)

// RenderOptions configures a graph drawing.
type RenderOptions struct {
	Format string // dot or svg
	Colors bool   // label edges with genome names
}

// Render draws the breakpoint graph of the input with contested edges
// highlighted. The bool result reports a cache hit.
func (r *Runner) Render(ctx context.Context, opts Options, ropts RenderOptions) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if ropts.Format == "" {
		ropts.Format = FormatSVG
	}
	if err := ValidateFormat(ropts.Format); err != nil {
		return nil, false, err
	}

	genomes, inputHash, err := loadGenomes(opts)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(inputHash, cache.ArtifactKeyOpts{
		Genomes: onlyKey(opts.Only),
		Format:  ropts.Format,
		Core:    opts.Core,
		Colors:  ropts.Colors,
	})
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	logger := r.loggerFor(opts)
	genomes, _ = project(genomes, opts.Core)
	g, _, err := r.build(ctx, logger, genomes)
	if err != nil {
		return nil, false, err
	}
	p := carp.Classify(g)
	dot := nodelink.ToDOT(g, nodelink.Options{Partition: &p, Colors: ropts.Colors})

	out := []byte(dot)
	if ropts.Format == FormatSVG {
		if out, err = nodelink.RenderSVG(ctx, dot); err != nil {
			return nil, false, err
		}
	}
	logger.Info("rendered graph", "format", ropts.Format, "nodes", g.NodeCount(), "bytes", len(out))

	if err := r.Cache.Set(ctx, key, out, TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(out))
	}
	return out, false, nil
}
