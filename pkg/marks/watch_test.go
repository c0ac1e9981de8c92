package marks

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchSignalsFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cal.ics")
	if err := os.WriteFile(path, []byte(sampleICS), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Watch(ctx, []string{path}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to start before writing.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(path, []byte(sampleICS+"\r\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case _, ok := <-ch:
		if !ok {
			t.Fatal("channel closed before a change was reported")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestWatchRequiresPaths(t *testing.T) {
	if _, err := Watch(context.Background(), nil, time.Millisecond); err == nil {
		t.Fatalf("expected an error without paths")
	}
}

func TestThrottleCoalescesBursts(t *testing.T) {
	var calls atomic.Int32
	th := newThrottle(20 * time.Millisecond)
	for i := 0; i < 5; i++ {
		th.Enqueue(func() { calls.Add(1) })
	}
	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one call for the burst, got %d", got)
	}
	th.Stop()
}

func TestThrottleNeverSendsAfterStop(t *testing.T) {
	var calls atomic.Int32
	pending := newThrottle(10 * time.Millisecond)
	pending.Enqueue(func() { calls.Add(1) })
	pending.Stop()
	pending.Enqueue(func() { calls.Add(1) })
	time.Sleep(50 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Fatalf("expected no calls after Stop, got %d", got)
	}

	// A timer firing while Stop runs must not write to the closed channel.
	for i := 0; i < 200; i++ {
		th := newThrottle(time.Microsecond)
		ch := make(chan struct{}, 1)
		send := func() {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
		th.Enqueue(send)
		time.Sleep(time.Duration(i%3) * time.Microsecond)
		th.Stop()
		close(ch)
	}
	time.Sleep(20 * time.Millisecond)
}
