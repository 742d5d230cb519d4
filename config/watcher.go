package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/xraph/depot"
)

// Reload reports the outcome of one reload.
type Reload struct {
	Config depot.Config
	Err    error
}

// WatcherConfig holds watcher configuration options.
type WatcherConfig struct {
	// Paths are the payload files, merged in order on every reload.
	Paths []string

	// Debounce is how long the files must stay quiet before reloading.
	Debounce time.Duration
}

// DefaultWatcherConfig returns sensible defaults for the watcher.
func DefaultWatcherConfig(paths ...string) WatcherConfig {
	return WatcherConfig{
		Paths:    paths,
		Debounce: 250 * time.Millisecond,
	}
}

// Watcher reloads payload files when they change and merges them into a
// live container. Merging only adds or overrides entries: identifiers
// removed from the files stay configured, and instances already cached
// keep being returned by Get.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	depot     depot.Depot
	loader    *Loader
	logger    *zap.Logger
	paths     []string
	watched   map[string]bool // absolute file paths
	debounce  time.Duration
	reloads   chan Reload
	done      chan struct{}
	stopOnce  sync.Once
}

// NewWatcher creates a watcher merging into d with loader.
func NewWatcher(d depot.Depot, loader *Loader, cfg WatcherConfig) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, depot.ErrInvalidArgument("watcher needs at least one path")
	}
	if loader == nil {
		loader = NewLoader()
	}

	watched := make(map[string]bool, len(cfg.Paths))
	for _, path := range cfg.Paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		watched[abs] = true
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		depot:     d,
		loader:    loader,
		logger:    loader.logger,
		paths:     cfg.Paths,
		watched:   watched,
		debounce:  cfg.Debounce,
		reloads:   make(chan Reload, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the directories holding the payload files.
// Returns a channel that receives the outcome of every reload; outcomes
// are dropped while the previous one is unread.
func (w *Watcher) Start() (<-chan Reload, error) {
	dirs := make(map[string]bool)
	for path := range w.watched {
		dirs[filepath.Dir(path)] = true
	}

	// Watch directories so editors that replace files are still seen
	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}

	go w.loop()

	return w.reloads, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
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
				w.publish(w.reload())
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// reload loads every path and merges the result.
func (w *Watcher) reload() Reload {
	configs, err := w.loader.LoadEach(w.paths...)
	if err == nil {
		err = depot.MergeAll(w.depot, configs...)
	}

	if err != nil {
		w.logger.Error("config reload failed", zap.Strings("paths", w.paths), zap.Error(err))
		return Reload{Err: err}
	}

	w.logger.Info("config reloaded", zap.Strings("paths", w.paths))

	return Reload{Config: depot.Combine(configs...)}
}

// publish sends r without blocking, dropping it if the channel is full.
func (w *Watcher) publish(r Reload) {
	select {
	case w.reloads <- r:
	default:
	}
}

// isRelevantEvent checks if the event should trigger a reload.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	return w.watched[abs]
}
