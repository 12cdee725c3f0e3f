// Package watcher provides file system watching with debouncing for checklist manifests.
package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/requisite/internal/log"
)

// ErrNothingToWatch is returned by Start when none of the configured paths exist.
var ErrNothingToWatch = errors.New("no manifest paths to watch")

// Watcher monitors manifest files for changes and sends notifications.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	paths     []string
	debounce  time.Duration
	// dirs maps each watched directory to the file names of interest in it.
	// A nil slice means every manifest file in the directory.
	dirs     map[string][]string
	onChange chan struct{}
	done     chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	// Paths are manifest files or directories. Missing paths are skipped.
	Paths       []string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(paths ...string) Config {
	return Config{
		Paths:       paths,
		DebounceDur: 200 * time.Millisecond,
	}
}

// New creates a new manifest watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		paths:     cfg.Paths,
		debounce:  cfg.DebounceDur,
		dirs:      make(map[string][]string),
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the configured paths. Files are watched through their
// parent directory so editors that replace files on save are still seen.
// Returns a channel that receives a signal when a manifest changes.
func (w *Watcher) Start() (<-chan struct{}, error) {
	for _, p := range w.paths {
		info, err := os.Stat(p)
		if err != nil {
			log.Debug(log.CatWatcher, "Skipping missing manifest path", "path", p)
			continue
		}
		if info.IsDir() {
			w.dirs[filepath.Clean(p)] = nil
			continue
		}
		dir := filepath.Dir(p)
		names, seen := w.dirs[dir]
		if seen && names == nil {
			continue // whole directory already watched
		}
		w.dirs[dir] = append(names, filepath.Base(p))
	}
	if len(w.dirs) == 0 {
		return nil, ErrNothingToWatch
	}

	for dir := range w.dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
		log.Debug(log.CatWatcher, "Watching manifests", "dir", dir)
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if !w.isRelevantEvent(event) {
				continue
			}

			// Reset or start debounce timer
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					// Drain the timer channel if it already fired
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				// Non-blocking send - drop if channel full
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatWatcher, "File watcher error", "error", err.Error())

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent checks if the event should trigger a reload.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	names, ok := w.dirs[filepath.Dir(event.Name)]
	if !ok {
		return false
	}
	base := filepath.Base(event.Name)
	if names != nil {
		return slices.Contains(names, base)
	}
	ext := filepath.Ext(base)
	return ext == ".yaml" || ext == ".yml"
}
