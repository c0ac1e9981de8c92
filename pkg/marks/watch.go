package marks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/calscroll/pkg/logging"
)

// Watch signals on the returned channel whenever one of paths is written,
// created, renamed or removed. Bursts are coalesced. The directories are
// watched rather than the files so editors that replace files on save keep
// being tracked. The channel is closed once ctx is done or the watcher
// fails.
func Watch(ctx context.Context, paths []string, delay time.Duration) (<-chan struct{}, error) {
	if len(paths) == 0 {
		return nil, errors.New("marks: nothing to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("marks: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				logging.Error("marks: watcher close", err)
			}
		})
	}

	files := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			closeWatcher()
			return nil, fmt.Errorf("marks: resolve %s: %w", p, err)
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("marks: watch %s: %w", dir, err)
		}
	}

	changes := make(chan struct{}, 1)
	send := func() {
		select {
		case changes <- struct{}{}:
		default:
			// A reload is already pending.
		}
	}

	go func() {
		defer close(changes)
		defer closeWatcher()

		throttle := newThrottle(delay)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Error("marks: watcher", err)
				throttle.Enqueue(send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if _, tracked := files[filepath.Clean(evt.Name)]; !tracked {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				logging.Debug("marks: file changed", "path", evt.Name, "op", evt.Op.String())
				throttle.Enqueue(send)
			}
		}
	}()

	return changes, nil
}

// throttle coalesces rapid change notifications so marks are reloaded once
// per burst of writes. Once stopped it never calls send again, so the caller
// may close what send writes to right after Stop returns.
type throttle struct {
	mu      sync.Mutex
	timer   *time.Timer
	delay   time.Duration
	stopped bool
}

func newThrottle(delay time.Duration) *throttle {
	return &throttle{delay: delay}
}

func (t *throttle) Enqueue(send func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.timer != nil {
		return
	}
	t.timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.stopped {
			return
		}
		t.timer = nil
		// send must not block.
		send()
	})
}

func (t *throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
