// Package watch re-runs a callback whenever files in a watched directory
// change. It uses fsnotify for efficient change detection and debounces
// rapid event bursts (editors typically emit several events per save).
package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the delay between the last file event and the re-run.
const DefaultDebounce = 200 * time.Millisecond

// Watcher re-runs a callback on changes to *.txt and *.json files in a
// directory.
type Watcher struct {
	dir      string
	debounce time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a Watcher for the given directory.
func New(dir string, opts ...Option) *Watcher {
	w := &Watcher{dir: dir, debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks, invoking fn once per debounced batch of relevant file events,
// until the context is cancelled. The event name of the first change in the
// batch is passed to fn.
func (w *Watcher) Run(ctx context.Context, fn func(event string) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		pending string
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if !relevant(event) {
				continue
			}
			if pending == "" {
				pending = event.Name
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerCh:
			name := pending
			pending = ""
			timer = nil
			timerCh = nil
			if err := fn(name); err != nil {
				return err
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// relevant filters events down to content changes of notes and index files.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return strings.HasSuffix(event.Name, ".txt") || strings.HasSuffix(event.Name, ".json")
}
