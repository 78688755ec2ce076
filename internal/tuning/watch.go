package tuning

import (
	"os"
	"time"
)

// Watcher polls tuning file mtimes and fires a callback when one changes.
// Polling keeps it dependency-free and is plenty for a handful of yaml files.
type Watcher struct {
	paths    []string
	interval time.Duration
	onChange func(path string)

	stop  chan struct{}
	mtime map[string]time.Time
}

// NewWatcher builds a watcher over the given paths. The callback runs on the
// watcher goroutine; keep it short (typically Loader.Invalidate plus a
// re-resolve).
func NewWatcher(paths []string, interval time.Duration, onChange func(string)) *Watcher {
	return &Watcher{
		paths:    paths,
		interval: interval,
		onChange: onChange,
		stop:     make(chan struct{}),
		mtime:    make(map[string]time.Time),
	}
}

// Start primes the mtime cache and begins polling in a goroutine.
func (w *Watcher) Start() {
	w.scan(true)
	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-w.stop:
				return
			}
		}
	}()
}

// Stop ends polling. Must not be called twice.
func (w *Watcher) Stop() {
	close(w.stop)
}

func (w *Watcher) scan(prime bool) {
	for _, p := range w.paths {
		fi, err := os.Stat(p)
		if err != nil {
			// missing file: forget it so its reappearance counts as a change
			delete(w.mtime, p)
			continue
		}
		mt := fi.ModTime()
		last, seen := w.mtime[p]
		w.mtime[p] = mt
		if prime {
			continue
		}
		if !seen || mt.After(last) {
			if w.onChange != nil {
				w.onChange(p)
			}
		}
	}
}
