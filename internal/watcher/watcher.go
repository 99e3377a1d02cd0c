// Package watcher wraps fsnotify into the single-channel event source the
// session event loop listens to: it posts a directory path whenever that
// directory's own entries change, coalescing bursts of events (editors
// that write-rename-chmod on every save) into a single refresh signal per
// debounce window.
package watcher

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 150 * time.Millisecond

// Watcher tracks a set of directories and reports, on Events, the path of
// a directory whose contents changed.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan string
	watched map[string]bool
}

// New starts a watcher with an empty watch set.
func New() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{fs: fw, events: make(chan string, 16), watched: make(map[string]bool)}
	go w.run()
	return w, nil
}

// Add starts watching dir, a no-op if it's already watched.
func (w *Watcher) Add(dir string) error {
	if w.watched[dir] {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return err
	}
	w.watched[dir] = true
	return nil
}

// Remove stops watching dir.
func (w *Watcher) Remove(dir string) {
	if !w.watched[dir] {
		return
	}
	_ = w.fs.Remove(dir)
	delete(w.watched, dir)
}

// Events is the channel the event loop listens to, one path per
// coalesced burst of filesystem activity.
func (w *Watcher) Events() <-chan string { return w.events }

// Close releases the underlying inotify/kqueue descriptor.
func (w *Watcher) Close() error { return w.fs.Close() }

func (w *Watcher) run() {
	pending := map[string]*time.Timer{}
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			dir := dirOf(ev.Name)
			if t, exists := pending[dir]; exists {
				t.Reset(debounce)
				continue
			}
			pending[dir] = time.AfterFunc(debounce, func() {
				select {
				case w.events <- dir:
				default:
				}
				delete(pending, dir)
			})
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

func dirOf(path string) string {
	i := len(path) - 1
	for i >= 0 && path[i] != '/' {
		i--
	}
	if i <= 0 {
		return "/"
	}
	return path[:i]
}
