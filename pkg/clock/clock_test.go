package clock

import (
	"context"
	"testing"
	"time"
)

func TestNextMidnight(t *testing.T) {
	now := time.Date(2024, time.March, 15, 13, 30, 0, 0, time.UTC)
	c, err := New(Midnight, time.UTC, func(time.Time) {}, WithNow(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	want := time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)
	if got := c.Next(); !got.Equal(want) {
		t.Fatalf("expected next tick %s, got %s", want, got)
	}
}

func TestBadSpec(t *testing.T) {
	if _, err := New("not a schedule", nil, func(time.Time) {}); err == nil {
		t.Fatalf("expected an error for a bad schedule")
	}
}

func TestRunFires(t *testing.T) {
	fired := make(chan time.Time, 1)
	c, err := New("@every 1s", time.UTC, func(now time.Time) {
		select {
		case fired <- now:
		default:
		}
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	select {
	case now := <-fired:
		if now.Location() != time.UTC {
			t.Fatalf("expected the tick in UTC, got %s", now.Location())
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a tick")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
