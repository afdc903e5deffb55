package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSpinnerStop(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerWithContext(context.Background(), "Working...")
	s.w = &buf
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
	s.Stop()

	if !bytes.Contains(buf.Bytes(), []byte("Working...")) {
		t.Errorf("spinner output = %q", buf.String())
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Working...")
	s.w = &bytes.Buffer{}
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after cancellation")
	}
	s.Stop()
}
