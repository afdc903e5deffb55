package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var errTransient = errors.New("connection reset")

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Fatal("empty cache should miss")
	}
	if err := c.Set(ctx, "k", []byte("report"), 0); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "report" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want silent miss", hit, err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*FileCache); !ok {
		t.Errorf("default backend = %T, want *FileCache", c)
	}

	c, err = Open(ctx, Options{Backend: BackendNone})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*NullCache); !ok {
		t.Errorf("none backend = %T, want *NullCache", c)
	}

	if _, err := Open(ctx, Options{Backend: "memcached"}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("unknown backend error = %v", err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "http://localhost:6379")
	if err == nil || !strings.Contains(err.Error(), "parse redis url") {
		t.Errorf("error = %v, want parse failure", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	a1 := k.AnalysisKey("h", AnalysisKeyOpts{Core: true})
	a2 := k.AnalysisKey("h", AnalysisKeyOpts{Core: false})
	if a1 == a2 {
		t.Error("different AnalysisKeyOpts should produce different keys")
	}
	if a1 != k.AnalysisKey("h", AnalysisKeyOpts{Core: true}) {
		t.Error("AnalysisKey should be deterministic")
	}
	if !strings.HasPrefix(a1, "analysis:") {
		t.Errorf("AnalysisKey = %s", a1)
	}

	f1 := k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"})
	f2 := k.ArtifactKey("h", ArtifactKeyOpts{Format: "dot"})
	if f1 == f2 || !strings.HasPrefix(f1, "artifact:") {
		t.Errorf("ArtifactKey = %s, %s", f1, f2)
	}
	if f3 := k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg", Genomes: []string{"A"}}); f3 == f1 {
		t.Error("genome filter must change the artifact key")
	}

	s1 := k.ScanKey("h", ScanKeyOpts{Depth: 500})
	s2 := k.ScanKey("h", ScanKeyOpts{Depth: 10})
	if s1 == s2 || !strings.HasPrefix(s1, "scan:") {
		t.Errorf("ScanKey = %s, %s", s1, s2)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "api:")
	plain := NewDefaultKeyer()
	opts := AnalysisKeyOpts{Splits: true}

	if got, want := scoped.AnalysisKey("h", opts), "api:"+plain.AnalysisKey("h", opts); got != want {
		t.Errorf("AnalysisKey = %s, want %s", got, want)
	}
	if got := scoped.ArtifactKey("h", ArtifactKeyOpts{}); !strings.HasPrefix(got, "api:artifact:") {
		t.Errorf("ArtifactKey = %s", got)
	}
	if got := scoped.ScanKey("h", ScanKeyOpts{}); !strings.HasPrefix(got, "api:scan:") {
		t.Errorf("ScanKey = %s", got)
	}
}

func TestTransient(t *testing.T) {
	if Transient(nil) != nil {
		t.Error("Transient(nil) should return nil")
	}
	err := Transient(errTransient)
	if !IsTransient(err) || !errors.Is(err, errTransient) {
		t.Errorf("Transient should wrap: %v", err)
	}
	if err.Error() != errTransient.Error() {
		t.Errorf("message changed: %s", err)
	}
	if IsTransient(errTransient) {
		t.Error("unmarked error reported as transient")
	}
}

func TestBackoffRetry(t *testing.T) {
	ctx := context.Background()
	b := Backoff{Attempts: 3, Delay: time.Millisecond}

	tests := []struct {
		name      string
		failFirst int
		transient bool
		wantCalls int
		wantErr   bool
	}{
		{"success", 0, true, 1, false},
		{"permanent failure", 5, false, 1, true},
		{"recovers", 2, true, 3, false},
		{"exhausted", 5, true, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Retry(ctx, func() error {
				calls++
				if calls <= tt.failFirst {
					if tt.transient {
						return Transient(errTransient)
					}
					return ErrUnavailable
				}
				return nil
			})
			if (err != nil) != tt.wantErr || calls != tt.wantCalls {
				t.Errorf("err=%v calls=%d, want err=%v calls=%d", err, calls, tt.wantErr, tt.wantCalls)
			}
		})
	}
}

func TestBackoffRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := DefaultBackoff.Retry(ctx, func() error {
		calls++
		return Transient(errTransient)
	})
	if err != context.Canceled || calls != 1 {
		t.Errorf("err=%v calls=%d, want context.Canceled after one call", err, calls)
	}
}
