// Package watcher triggers route generation when files under the routes
// directory change.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/abdul-hamid-achik/typedroutes/pkg/logger"
	"github.com/abdul-hamid-achik/typedroutes/pkg/scanner"
)

// DefaultDebounce is the quiet period before a batch of changes fires.
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc receives the changed paths of one debounced batch.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher watches a routes directory recursively.
type Watcher struct {
	dir      string
	debounce time.Duration
	log      *logger.Logger
	filter   *scanner.Scanner
	onChange ChangeFunc
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithExtensions limits events to files with the given extensions.
func WithExtensions(exts []string) Option {
	return func(w *Watcher) {
		if len(exts) > 0 {
			w.filter.SetExtensions(exts)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(w *Watcher) { w.log = log }
}

// New creates a watcher for dir.
func New(dir string, onChange ChangeFunc, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		debounce: DefaultDebounce,
		log:      logger.Discard(),
		filter:   scanner.NewScanner(dir),
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is done. Batches are delivered from the Run
// goroutine, so onChange never runs concurrently with itself.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := w.addTree(fw, w.dir); err != nil {
		return err
	}
	w.log.Debug("watching %s", w.dir)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(fw, event) {
				continue
			}
			w.log.Debug("changed: %s", event.Name)
			pending[event.Name] = true
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)
			w.onChange(ctx, changed)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error: %v", err)
		}
	}
}

// addTree adds dir and its non-private subdirectories.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && scanner.IsPrivateFolder(d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// relevant reports whether event can change the route set. New
// directories are added to the watch list.
func (w *Watcher) relevant(fw *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	name := filepath.Base(event.Name)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if scanner.IsPrivateFolder(name) {
				return false
			}
			if err := w.addTree(fw, event.Name); err != nil {
				w.log.Warn("%v", err)
			}
			return true
		}
	}

	if w.filter.IsRouteFile(name) {
		return true
	}

	// a removed or renamed directory takes its routes with it
	return event.Has(fsnotify.Remove|fsnotify.Rename) && filepath.Ext(name) == "" && !scanner.IsPrivateFolder(name)
}
