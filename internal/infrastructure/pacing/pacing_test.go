package pacing

import (
	"context"
	"testing"
	"time"
)

func TestZeroIntervalDoesNotWait(t *testing.T) {
	t.Parallel()

	for _, interval := range []time.Duration{0, -time.Second} {
		p := New(interval)
		start := time.Now()
		for i := 0; i < 100; i++ {
			p.Pace(context.Background())
		}
		if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
			t.Errorf("interval %v: expected no pacing, took %v", interval, elapsed)
		}
	}
}

func TestIntervalSpacesCalls(t *testing.T) {
	t.Parallel()

	interval := 20 * time.Millisecond
	p := New(interval)
	start := time.Now()
	for i := 0; i < 3; i++ {
		p.Pace(context.Background())
	}
	if elapsed := time.Since(start); elapsed < 2*interval {
		t.Errorf("Expected at least %v between three calls, got %v", 2*interval, elapsed)
	}
}

func TestCancelledContextStopsWaiting(t *testing.T) {
	t.Parallel()

	p := New(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		p.Pace(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Pace did not return after cancellation")
	}
}
