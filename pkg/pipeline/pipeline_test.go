package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/gi-bielefeld/carp/pkg/cache"
	"github.com/gi-bielefeld/carp/pkg/errors"
	"github.com/gi-bielefeld/carp/pkg/genome"
)

// Two clades {A,B} and {C,D}; see split tests for the hand count.
const twoClades = `>A
1 2 3 |
>B
1 2 3 |
>C
1 -2 3 |
>D
1 -2 3 |
`

const scenarioA = `>G1
+1 +2 -3 |
>G2
+3 +2 +2 |
`

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr errors.Code
	}{
		{"no input", Options{}, errors.ErrCodeInvalidInput},
		{"negative top", Options{Input: []byte(""), Top: -1}, errors.ErrCodeInvalidInput},
		{"bad filter name", Options{Input: []byte(""), Only: []string{"a\tb"}}, errors.ErrCodeInvalidGenomeName},
		{"empty input", Options{Input: []byte("")}, ""},
		{"genomes", Options{Genomes: []genome.Genome{}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %s", err, tt.wantErr)
			}
		})
	}
}

func TestTreeImpliesSplits(t *testing.T) {
	o := Options{Input: []byte(""), Tree: true}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if !o.Splits {
		t.Error("Tree should enable Splits")
	}
}

func TestAnalyzeRunLogger(t *testing.T) {
	var runnerLog, runLog bytes.Buffer
	r := NewRunner(nil, nil, log.New(&runnerLog))
	opts := Options{Input: []byte(scenarioA), Logger: log.New(&runLog)}

	if _, err := r.Analyze(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(runLog.String(), "computed CARP index") {
		t.Errorf("run logger got %q", runLog.String())
	}
	if runnerLog.Len() != 0 {
		t.Errorf("runner logger should stay quiet, got %q", runnerLog.String())
	}

	if _, err := r.Analyze(context.Background(), Options{Input: []byte(scenarioA)}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(runnerLog.String(), "computed CARP index") {
		t.Error("runner logger should be used without a run logger")
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"dot", "svg"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	for _, f := range []string{"", "png", "SVG"} {
		if err := ValidateFormat(f); err == nil {
			t.Errorf("ValidateFormat(%q) should fail", f)
		}
	}
}

func TestAnalyzeIndex(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Analyze(context.Background(), Options{Input: []byte(scenarioA), Partition: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Index != 4 {
		t.Errorf("Index = %d, want 4", res.Index)
	}
	if res.Partition == nil || res.Partition.Index() != 4 {
		t.Errorf("Partition = %+v", res.Partition)
	}
	if res.Graph == nil || res.CacheHit {
		t.Error("fresh run should carry its graph")
	}
	if len(res.RunID) != 36 {
		t.Errorf("RunID = %q, want a uuid", res.RunID)
	}
	if res.Stats.BuildTime <= 0 {
		t.Errorf("BuildTime = %v, want > 0", res.Stats.BuildTime)
	}
	if res.Stats.Markers != 6 || res.Stats.Chromosomes != 2 {
		t.Errorf("Stats = %+v", res.Stats)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Analyze(context.Background(), Options{Genomes: []genome.Genome{}, Splits: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Index != 0 || len(res.Splits) != 0 || res.Stats.Edges != 0 {
		t.Errorf("empty analysis = %+v", res)
	}
}

func TestAnalyzeSplits(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Analyze(context.Background(), Options{Input: []byte(twoClades), Tree: true, Residuals: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Splits) != 1 || res.Splits[0].ID != "C...D" || res.Splits[0].Support != 4 {
		t.Fatalf("Splits = %+v", res.Splits)
	}
	if len(res.Tree) != 1 || len(res.Residuals) != 1 {
		t.Errorf("Tree = %+v, Residuals = %+v", res.Tree, res.Residuals)
	}
}

func TestAnalyzeCore(t *testing.T) {
	input := ">A\n1 2 9 |\n>B\n1 2 |\n"
	r := NewRunner(nil, nil, nil)

	res, err := r.Analyze(context.Background(), Options{Input: []byte(input), Core: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.CoreMarkers != 2 || res.Index != 0 {
		t.Errorf("core: markers=%d index=%d", res.Stats.CoreMarkers, res.Index)
	}

	res, err = r.Analyze(context.Background(), Options{Input: []byte(input)})
	if err != nil {
		t.Fatal(err)
	}
	if res.Index == 0 {
		t.Error("without core projection marker 9 should create contested edges")
	}
}

func TestAnalyzeFilter(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Analyze(context.Background(), Options{Input: []byte(twoClades), Only: []string{"A", "B"}})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(res.Genomes, ",") != "A,B" || res.Index != 0 {
		t.Errorf("filtered = %v index %d", res.Genomes, res.Index)
	}
}

func TestAnalyzeSpacedGenomeNames(t *testing.T) {
	r := NewRunner(nil, nil, log.New(io.Discard))
	res, err := r.Analyze(context.Background(), Options{Input: []byte(">E coli K12\n1 2 |\n>B\n1 -2 |\n")})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Genomes) != 2 || res.Genomes[0] != "E coli K12" {
		t.Errorf("Genomes = %q", res.Genomes)
	}
}

func TestAnalyzeRejectsDuplicates(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Analyze(context.Background(), Options{Input: []byte(">A\n1 |\n>A\n1 |\n")})
	if !errors.Is(err, errors.ErrCodeDuplicateGenome) {
		t.Errorf("error = %v, want DUPLICATE_GENOME", err)
	}
}

func TestAnalyzeVerify(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Analyze(context.Background(), Options{Input: []byte(scenarioA), Verify: true}); err != nil {
		t.Errorf("verify: %v", err)
	}
}

func TestAnalyzeCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Input: []byte(twoClades), Splits: true, Partition: true}

	first, err := r.Analyze(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Analyze(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit || !second.CacheHit {
		t.Errorf("CacheHit = %v, %v; want false, true", first.CacheHit, second.CacheHit)
	}
	if second.Graph != nil {
		t.Error("cached result should not carry a graph")
	}
	if first.RunID == second.RunID {
		t.Error("each run needs its own id")
	}
	if second.Index != first.Index || len(second.Splits) != len(first.Splits) {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}
	if second.Partition == nil || len(second.Partition.Contested) != len(first.Partition.Contested) {
		t.Error("partition should survive the cache round trip")
	}

	opts.Refresh = true
	third, err := r.Analyze(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestAnalyzeVerifySkipsCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, log.New(io.Discard))
	ctx := context.Background()

	if _, err := r.Analyze(ctx, Options{Input: []byte(scenarioA)}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Analyze(ctx, Options{Input: []byte(scenarioA), Verify: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit || res.Graph == nil {
		t.Errorf("Verify should rebuild: CacheHit=%v graph=%v", res.CacheHit, res.Graph != nil)
	}
}

func TestAnalyzeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, nil)
	if _, err := r.Analyze(ctx, Options{Input: []byte(scenarioA)}); err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestAnalyzeBatch(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := []Options{
		{Input: []byte(scenarioA)},
		{Input: []byte(twoClades)},
		{Input: []byte("")},
	}
	results, err := r.AnalyzeBatch(context.Background(), opts, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{4, 4, 0}
	for i, res := range results {
		if res.Index != want[i] {
			t.Errorf("results[%d].Index = %d, want %d", i, res.Index, want[i])
		}
	}

	opts = append(opts, Options{Input: []byte(">A\n1 2\n")})
	if _, err := r.AnalyzeBatch(context.Background(), opts, 0); !errors.Is(err, errors.ErrCodeInvalidChromosomeType) {
		t.Errorf("batch error = %v", err)
	}
}

func TestRenderDOT(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Input: []byte(scenarioA)}

	out, hit, err := r.Render(ctx, opts, RenderOptions{Format: FormatDOT})
	if err != nil {
		t.Fatal(err)
	}
	if hit || !strings.HasPrefix(string(out), "graph G {") || !strings.Contains(string(out), "color=red") {
		t.Errorf("Render = hit %v:\n%s", hit, out)
	}
	if _, hit, _ := r.Render(ctx, opts, RenderOptions{Format: FormatDOT}); !hit {
		t.Error("second render should hit the cache")
	}
	if _, _, err := r.Render(ctx, opts, RenderOptions{Format: "png"}); err == nil {
		t.Error("png should be rejected")
	}
}

func TestRenderCacheKeyedByFilter(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, log.New(io.Discard))
	ctx := context.Background()
	ropts := RenderOptions{Format: FormatDOT}

	one, _, err := r.Render(ctx, Options{Input: []byte(scenarioA), Only: []string{"G1"}}, ropts)
	if err != nil {
		t.Fatal(err)
	}
	both, hit, err := r.Render(ctx, Options{Input: []byte(scenarioA)}, ropts)
	if err != nil {
		t.Fatal(err)
	}
	if hit || bytes.Equal(one, both) {
		t.Errorf("unfiltered render reused the filtered drawing (hit=%v)", hit)
	}
	if _, hit, _ := r.Render(ctx, Options{Input: []byte(scenarioA), Only: []string{"G1"}}, ropts); !hit {
		t.Error("repeated filtered render should hit the cache")
	}
}
