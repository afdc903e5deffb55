// Package pipeline runs the CARP analysis end to end.
//
// The CLI and the HTTP API both go through this package so that caching,
// validation and stage ordering stay identical across entry points.
//
// # Stages
//
//  1. Read: decode UniMoG input and apply the genome filter
//  2. Project: optionally restrict every genome to the core markers
//  3. Build: construct the breakpoint graph
//  4. Classify: partition edges into contested and uncontested
//  5. Splits: optionally count split support, apply the tree filter and
//     compute residual indices
//
// Context cancellation is checked between stages. [Runner.Scan] shares
// stages 1 to 3 and then scores every marker's neighborhood.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Analyze(ctx, pipeline.Options{
//	    Input:  data,
//	    Core:   true,
//	    Splits: true,
//	})
//	fmt.Println(res.Index)
//
// Results are cached as JSON under a key derived from the input hash and
// every option that affects the result.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/gi-bielefeld/carp/pkg/bpg"
	"github.com/gi-bielefeld/carp/pkg/cache"
	"github.com/gi-bielefeld/carp/pkg/carp"
	"github.com/gi-bielefeld/carp/pkg/errors"
	"github.com/gi-bielefeld/carp/pkg/genome"
	"github.com/gi-bielefeld/carp/pkg/split"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWorkers bounds concurrent analyses in AnalyzeBatch.
	DefaultWorkers = 4

	// TTLAnalysis is how long analysis results stay cached.
	TTLAnalysis = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered graphs stay cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Format constants for rendered graph artifacts.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures one analysis. Exactly one of Input and Genomes is used;
// Input wins when both are non-nil. An empty non-nil input is an empty
// genome list.
type Options struct {
	// Input is UniMoG text.
	Input []byte `json:"-"`
	// Genomes is a pre-parsed genome list, used when Input is nil.
	Genomes []genome.Genome `json:"-"`
	// Only restricts the analysis to the named genomes.
	Only []string `json:"only,omitempty"`

	Core      bool    `json:"core"`
	Partition bool    `json:"partition"`
	Splits    bool    `json:"splits"`
	Tree      bool    `json:"tree"`
	Residuals bool    `json:"residuals"`
	Top       float64 `json:"top,omitempty"`

	// Verify re-checks the partition invariants after classification.
	Verify bool `json:"verify,omitempty"`
	// Refresh bypasses cached results and overwrites them.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives this run's logs instead of the runner's logger.
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in implied settings.
// Tree and Residuals imply Splits. Calling it twice is harmless.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == nil && o.Genomes == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if o.Top < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "top must not be negative, got %g", o.Top)
	}
	for _, name := range o.Only {
		if err := errors.ValidateGenomeName(name); err != nil {
			return err
		}
	}
	if o.Tree || o.Residuals {
		o.Splits = true
	}
	o.validated = true
	return nil
}

// AnalysisKeyOpts returns the cache key options for this analysis.
func (o *Options) AnalysisKeyOpts() cache.AnalysisKeyOpts {
	return cache.AnalysisKeyOpts{
		Genomes:   onlyKey(o.Only),
		Core:      o.Core,
		Partition: o.Partition,
		Splits:    o.Splits,
		Tree:      o.Tree,
		Residuals: o.Residuals,
	}
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of one analysis. Everything except Graph is
// serialized to the cache and to API responses.
type Result struct {
	RunID     string   `json:"run_id"`
	InputHash string   `json:"input_hash"`
	Genomes   []string `json:"genomes"`
	Index     int      `json:"index"`

	Partition *carp.Partition  `json:"partition,omitempty"`
	Splits    []split.Entry    `json:"splits,omitempty"`
	Tree      []split.Entry    `json:"tree,omitempty"`
	Residuals []split.Residual `json:"residuals,omitempty"`

	Stats    Stats `json:"stats"`
	CacheHit bool  `json:"cache_hit"`

	// Graph is the breakpoint graph. It is nil when the result came from
	// the cache.
	Graph *bpg.Graph `json:"-"`
}

// Stats contains input sizes and stage timings.
type Stats struct {
	Chromosomes  int           `json:"chromosomes"`
	Markers      int           `json:"markers"`
	CoreMarkers  int           `json:"core_markers,omitempty"`
	Nodes        int           `json:"nodes"`
	Edges        int           `json:"edges"`
	BuildTime    time.Duration `json:"build_ns"`
	ClassifyTime time.Duration `json:"classify_ns"`
	SplitTime    time.Duration `json:"split_ns,omitempty"`
}
