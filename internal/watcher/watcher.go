// Package watcher reports changes to a fixed set of files by polling.
package watcher

import (
	"context"
	"os"
	"sort"
	"sync"
	"time"
)

// Event represents a file change event.
type Event struct {
	Path string
	Op   string // "create", "write", "remove"
}

// DefaultPollInterval is the default polling interval for file change detection.
const DefaultPollInterval = 500 * time.Millisecond

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches files for changes using a polling approach.
type Watcher struct {
	files        []string
	debounce     time.Duration
	pollInterval time.Duration
	onChange     func(events []Event)

	mu      sync.Mutex
	pending []Event
	timer   *time.Timer
}

// New creates a watcher over files. Paths that do not exist yet are watched
// for creation.
func New(files []string, debounce time.Duration, onChange func(events []Event)) *Watcher {
	return &Watcher{
		files:        files,
		debounce:     debounce,
		pollInterval: DefaultPollInterval,
		onChange:     onChange,
	}
}

// SetPollInterval sets the polling interval for file change detection.
func (w *Watcher) SetPollInterval(d time.Duration) {
	w.pollInterval = d
}

// Watch polls until ctx is cancelled. Changes seen within the debounce window
// are delivered to onChange as one batch. It always returns ctx.Err().
func (w *Watcher) Watch(ctx context.Context) error {
	snapshot := w.buildSnapshot()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	defer w.cancelPending()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			newSnapshot := w.buildSnapshot()
			if events := diff(snapshot, newSnapshot); len(events) > 0 {
				w.schedule(ctx, events)
			}
			snapshot = newSnapshot
		}
	}
}

func (w *Watcher) schedule(ctx context.Context, events []Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = append(w.pending, events...)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		pending := w.pending
		w.pending = nil
		w.mu.Unlock()
		if len(pending) > 0 && ctx.Err() == nil {
			w.onChange(pending)
		}
	})
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending = nil
}

type fileInfo struct {
	modTime time.Time
	size    int64
}

func (w *Watcher) buildSnapshot() map[string]fileInfo {
	snap := make(map[string]fileInfo, len(w.files))
	for _, path := range w.files {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		snap[path] = fileInfo{modTime: info.ModTime(), size: info.Size()}
	}
	return snap
}

// diff returns the changes between two snapshots, sorted by path.
func diff(old, new map[string]fileInfo) []Event {
	var events []Event

	for path, newInfo := range new {
		if oldInfo, ok := old[path]; ok {
			if !newInfo.modTime.Equal(oldInfo.modTime) || newInfo.size != oldInfo.size {
				events = append(events, Event{Path: path, Op: "write"})
			}
		} else {
			events = append(events, Event{Path: path, Op: "create"})
		}
	}

	for path := range old {
		if _, ok := new[path]; !ok {
			events = append(events, Event{Path: path, Op: "remove"})
		}
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Path < events[j].Path })
	return events
}
