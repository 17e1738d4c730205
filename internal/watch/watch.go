// Package watch observes a directory for new media files and hands them to
// a callback for transcription.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"video-to-transcript/internal/media"
)

// settleDelay gives the writer time to finish before the file is picked up.
const settleDelay = 500 * time.Millisecond

// Watcher reports supported media files appearing in one directory. Each
// path is reported at most once per Watcher lifetime; fsnotify events are
// backed by a polling sweep so slow network mounts are still picked up.
type Watcher struct {
	dir          string
	pollInterval time.Duration
	onFile       func(path string)

	mu   sync.Mutex
	seen map[string]bool
}

// NewWatcher creates a watcher over dir invoking onFile per new media file.
func NewWatcher(dir string, onFile func(path string)) *Watcher {
	return &Watcher{
		dir:          dir,
		pollInterval: 2 * time.Second,
		onFile:       onFile,
		seen:         make(map[string]bool),
	}
}

// Run blocks watching the directory until ctx is cancelled. Files already
// present at start are reported first.
func (w *Watcher) Run(ctx context.Context) error {
	w.sweep()

	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		// fsnotify unavailable on this platform, poll only.
		return w.pollLoop(ctx)
	}
	defer notifier.Close()

	if err := notifier.Add(w.dir); err != nil {
		return w.pollLoop(ctx)
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-notifier.Events:
			if !ok {
				return w.pollLoop(ctx)
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.report(event.Name)
			}
		case <-ticker.C:
			// Catches files fsnotify missed.
			w.sweep()
		case _, ok := <-notifier.Errors:
			if !ok {
				return w.pollLoop(ctx)
			}
		}
	}
}

func (w *Watcher) pollLoop(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *Watcher) sweep() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w.report(filepath.Join(w.dir, entry.Name()))
	}
}

// report invokes the callback once per supported path.
func (w *Watcher) report(path string) {
	if !media.IsSupportedFile(path) {
		return
	}

	w.mu.Lock()
	if w.seen[path] {
		w.mu.Unlock()
		return
	}
	w.seen[path] = true
	w.mu.Unlock()

	time.Sleep(settleDelay)
	w.onFile(path)
}
