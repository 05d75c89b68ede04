// Package watcher implements file-watcher-driven reanalysis with a
// debounce combinator (§5: "File-watcher-driven reanalysis is debounced
// (default 500 ms): multiple change events within the window collapse to
// a single run; the debounce timer is restarted on each event and fires
// once"). Built on github.com/fsnotify/fsnotify, the same inotify/kqueue
// wrapper the teacher's dependency graph already pulls in (via viper's
// config-reload support) but never exercises directly — this is that
// library's first direct caller in the module.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Timer is the subset of time.Timer the debouncer depends on, so tests
// can drive it with a fake instead of sleeping real wall-clock time
// (§9: "testable with virtual clock").
type Timer interface {
	Stop() bool
	C() <-chan time.Time
}

// realTimer adapts *time.Timer to the Timer interface.
type realTimer struct{ t *time.Timer }

func (r realTimer) Stop() bool            { return r.t.Stop() }
func (r realTimer) C() <-chan time.Time   { return r.t.C }

// NewRealTimer is the production Timer factory.
func NewRealTimer(d time.Duration) Timer {
	return realTimer{t: time.NewTimer(d)}
}

// Debouncer collapses a burst of Trigger calls within window into a
// single fire on Events, restarting its timer on every call (§5).
type Debouncer struct {
	window   time.Duration
	newTimer func(time.Duration) Timer
	timer    Timer
	events   chan struct{}
}

// NewDebouncer creates a Debouncer with the given window and timer
// factory. Production code passes NewRealTimer; tests pass a fake.
func NewDebouncer(window time.Duration, newTimer func(time.Duration) Timer) *Debouncer {
	return &Debouncer{window: window, newTimer: newTimer, events: make(chan struct{}, 1)}
}

// Trigger registers one change event, restarting the debounce timer.
func (d *Debouncer) Trigger() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.newTimer(d.window)
	go func(t Timer) {
		<-t.C()
		select {
		case d.events <- struct{}{}:
		default:
		}
	}(d.timer)
}

// Events fires once per debounce window after the last Trigger.
func (d *Debouncer) Events() <-chan struct{} {
	return d.events
}

// Watcher watches a directory for crash-log changes and emits a debounced
// stream of paths to reanalyze.
type Watcher struct {
	fsw       *fsnotify.Watcher
	debounced map[string]*Debouncer
	newTimer  func(time.Duration) Timer
	window    time.Duration
	out       chan string
}

// New creates a Watcher over dir with the given debounce window.
func New(dir string, window time.Duration, newTimer func(time.Duration) Timer) (*Watcher, error) {
	if newTimer == nil {
		newTimer = NewRealTimer
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: creating fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watcher: watching %s: %w", dir, err)
	}
	return &Watcher{
		fsw:       fsw,
		debounced: make(map[string]*Debouncer),
		newTimer:  newTimer,
		window:    window,
		out:       make(chan string, 16),
	}, nil
}

// Run dispatches fsnotify events into per-path debouncers until ctx is
// cancelled.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.fsw.Close()
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceFor(ev.Name)
		case <-w.fsw.Errors:
			// Watcher errors are drained and discarded; the watcher
			// keeps running.
		}
	}
}

func (w *Watcher) debounceFor(path string) {
	d, ok := w.debounced[path]
	if !ok {
		d = NewDebouncer(w.window, w.newTimer)
		w.debounced[path] = d
		go func() {
			for range d.Events() {
				select {
				case w.out <- path:
				default:
				}
			}
		}()
	}
	d.Trigger()
}

// Changes returns the debounced stream of paths that changed.
func (w *Watcher) Changes() <-chan string {
	return w.out
}
