// ABOUTME: Polling config watcher that reloads Settings when a config file changes
// ABOUTME: Compares file mtimes at an interval; results arrive on a channel until ctx ends

package config

import (
	"context"
	"os"
	"time"
)

const defaultWatchInterval = 2 * time.Second

// Reload is one reload attempt triggered by a file change.
type Reload struct {
	Settings *Settings
	Err      error
}

// Watcher polls config files and re-runs a loader when any of them changes.
// A Watcher is owned by a single goroutine; Watch starts that goroutine.
type Watcher struct {
	paths    []string
	load     func() (*Settings, error)
	interval time.Duration
	mtimes   map[string]time.Time
}

// NewWatcher creates a watcher over paths. Missing files are watched for creation.
func NewWatcher(paths []string, load func() (*Settings, error)) *Watcher {
	w := &Watcher{
		paths:    paths,
		load:     load,
		interval: defaultWatchInterval,
		mtimes:   make(map[string]time.Time),
	}
	w.snapshot()
	return w
}

// SetInterval overrides the default polling interval (2s). Call before Watch.
func (w *Watcher) SetInterval(d time.Duration) {
	if d > 0 {
		w.interval = d
	}
}

// Paths returns the watched files.
func (w *Watcher) Paths() []string {
	return append([]string(nil), w.paths...)
}

// Watch polls until ctx is done. Each detected change runs the loader and
// delivers its result; the channel is closed when polling stops.
func (w *Watcher) Watch(ctx context.Context) <-chan Reload {
	out := make(chan Reload, 1)
	go func() {
		defer close(out)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !w.Changed() {
					continue
				}
				s, err := w.load()
				select {
				case out <- Reload{Settings: s, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Changed reports whether any file was created, modified, or removed since
// the last call, and records the current state.
func (w *Watcher) Changed() bool {
	changed := false
	for _, path := range w.paths {
		info, err := os.Stat(path)
		prev, existed := w.mtimes[path]
		switch {
		case err != nil:
			if existed {
				changed = true
				delete(w.mtimes, path)
			}
		case !existed || !info.ModTime().Equal(prev):
			changed = true
			w.mtimes[path] = info.ModTime()
		}
	}
	return changed
}

func (w *Watcher) snapshot() {
	for _, path := range w.paths {
		if info, err := os.Stat(path); err == nil {
			w.mtimes[path] = info.ModTime()
		}
	}
}
