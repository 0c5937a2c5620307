// Package watch reruns generation when model files change.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/apimd/internal/foundation/errors"
	"git.home.luguber.info/inful/apimd/internal/logfields"
)

// DefaultDebounce is the quiet period after the last change before the
// handler runs.
const DefaultDebounce = 500 * time.Millisecond

// Handler is called with the sorted set of files that changed during the
// debounce window. Calls never overlap.
type Handler func(ctx context.Context, changed []string) error

type Options struct {
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher monitors a fixed set of files. It watches their directories,
// which survives editors that replace files on save.
type Watcher struct {
	files    map[string]struct{}
	watcher  *fsnotify.Watcher
	handler  Handler
	debounce time.Duration
	logger   *slog.Logger
}

// New starts watching the directories of paths. Events that occur before
// Run is called are not lost.
func New(paths []string, handler Handler, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to create file watcher").Build()
	}

	w := &Watcher{
		files:    make(map[string]struct{}, len(paths)),
		watcher:  fw,
		handler:  handler,
		debounce: opts.Debounce,
		logger:   opts.Logger,
	}
	dirs := map[string]struct{}{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fw.Close()
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve watched path").
				WithContext(errors.ContextPath, p).
				Build()
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to watch directory").
				WithContext(errors.ContextPath, dir).
				Build()
		}
	}
	return w, nil
}

// Run dispatches debounced changes to the handler until ctx is done. Handler
// errors are logged and do not stop the watcher. The watcher is closed when
// Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	pending := map[string]struct{}{}
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(event.Name)
			if _, watched := w.files[name]; !watched {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				w.logger.Debug("Model file change detected", logfields.Path(name), slog.String("op", event.Op.String()))
				pending[name] = struct{}{}
				timer.Reset(w.debounce)
			case event.Has(fsnotify.Remove):
				w.logger.Warn("Model file removed", logfields.Path(name))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)

			if err := w.handler(ctx, changed); err != nil {
				w.logger.Error("Regeneration failed", logfields.Error(err), logfields.Count(len(changed)))
			}
		}
	}
}
