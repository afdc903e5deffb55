package observability

import (
	"context"
	"testing"
	"time"
)

type countingCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string) { h.hits++ }

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnBuildStart(ctx, 3)
	p.OnBuildComplete(ctx, 10, 12, time.Second, nil)
	p.OnClassifyComplete(ctx, 4, time.Millisecond)
	p.OnSplitsComplete(ctx, 2, time.Millisecond)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "analysis")
	c.OnCacheMiss(ctx, "analysis")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/analyze")
	h.OnResponse(ctx, "POST", "/v1/analyze", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	custom := &countingCacheHooks{}
	SetCacheHooks(custom)
	Cache().OnCacheHit(context.Background(), "analysis")
	if custom.hits != 1 {
		t.Errorf("hits = %d, want 1", custom.hits)
	}

	SetCacheHooks(nil)
	if Cache() != CacheHooks(custom) {
		t.Error("SetCacheHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset should restore defaults")
	}
}
