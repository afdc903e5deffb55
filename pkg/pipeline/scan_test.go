package pipeline

import (
	"context"
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/gi-bielefeld/carp/pkg/cache"
	"github.com/gi-bielefeld/carp/pkg/carp"
	"github.com/gi-bielefeld/carp/pkg/errors"
)

func TestScan(t *testing.T) {
	r := NewRunner(nil, nil, log.New(io.Discard))
	res, err := r.Scan(context.Background(), Options{Input: []byte(scenarioA)}, ScanOptions{Depth: 0, Workers: 2})
	if err != nil {
		t.Fatal(err)
	}
	want := []carp.MarkerScore{{Marker: "1", Index: 0}, {Marker: "2", Index: 4}, {Marker: "3", Index: 2}}
	if !slices.Equal(res.Scores, want) {
		t.Errorf("Scores = %v, want %v", res.Scores, want)
	}
	if len(res.Histogram) != 3 {
		t.Errorf("Histogram = %v", res.Histogram)
	}
	if res.RunID == "" || res.InputHash == "" || res.CacheHit {
		t.Errorf("result = %+v", res)
	}
}

func TestScanDepth(t *testing.T) {
	r := NewRunner(nil, nil, log.New(io.Discard))
	ctx := context.Background()
	in := Options{Input: []byte(">A\n1 2 3 4 |\n>B\n1 -2 3 4 |\n")}

	tests := []struct {
		depth int
		want  int // local index at marker 4
	}{
		{0, 0},
		{1, 2},
		{2, 4},
	}
	for _, tt := range tests {
		res, err := r.Scan(ctx, in, ScanOptions{Depth: tt.depth})
		if err != nil {
			t.Fatal(err)
		}
		if got := res.Scores[3]; got.Marker != "4" || got.Index != tt.want {
			t.Errorf("depth %d: score = %+v, want index %d", tt.depth, got, tt.want)
		}
	}
}

func TestScanCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, log.New(io.Discard))
	ctx := context.Background()
	opts := Options{Input: []byte(scenarioA)}

	first, err := r.Scan(ctx, opts, ScanOptions{Depth: 1})
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Scan(ctx, opts, ScanOptions{Depth: 1})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit || !second.CacheHit {
		t.Errorf("CacheHit = %v, %v; want false, true", first.CacheHit, second.CacheHit)
	}
	if !slices.Equal(first.Scores, second.Scores) {
		t.Errorf("cached scores differ: %v vs %v", second.Scores, first.Scores)
	}

	other, err := r.Scan(ctx, opts, ScanOptions{Depth: 0})
	if err != nil {
		t.Fatal(err)
	}
	if other.CacheHit {
		t.Error("a different depth must not hit the cache")
	}
}

func TestScanErrors(t *testing.T) {
	r := NewRunner(nil, nil, log.New(io.Discard))
	_, err := r.Scan(context.Background(), Options{Input: []byte(scenarioA)}, ScanOptions{Depth: -1})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative depth error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Scan(ctx, Options{Input: []byte(scenarioA)}, ScanOptions{}); err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
