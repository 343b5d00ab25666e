package shaders

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads shader sources from a directory when they change.
// Reloaded sources are delivered on Updates; compiling them is left to the
// render thread.
type Watcher struct {
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration

	updates chan Source
}

// NewWatcher creates a watcher for dir. Bursts of events within debounce
// collapse into a single reload.
func NewWatcher(logger *zap.Logger, dir string, debounce time.Duration) (*Watcher, error) {
	if dir == "" {
		return nil, fmt.Errorf("shader watch requires a shader directory")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	return &Watcher{
		logger:   logger,
		watcher:  w,
		dir:      dir,
		debounce: debounce,
		updates:  make(chan Source, 1),
	}, nil
}

// Updates delivers freshly read sources. Only the latest pending source is
// kept if the consumer falls behind.
func (sw *Watcher) Updates() <-chan Source {
	return sw.updates
}

// Run processes file events until ctx is cancelled or the watcher is closed.
func (sw *Watcher) Run(ctx context.Context) error {
	sw.logger.Info("Watching shader sources", zap.String("dir", sw.dir))

	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C // drain the timer

	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return nil
			}
			if shouldReload(event) {
				sw.logger.Debug("Shader change detected",
					zap.String("file", event.Name),
					zap.String("op", event.Op.String()))
				debounceTimer.Reset(sw.debounce)
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return nil
			}
			sw.logger.Error("Watcher error", zap.Error(err))

		case <-debounceTimer.C:
			sw.reload()

		case <-ctx.Done():
			sw.logger.Info("Stopping shader watcher")
			return ctx.Err()
		}
	}
}

// Close stops the underlying file watcher.
func (sw *Watcher) Close() error {
	return sw.watcher.Close()
}

func (sw *Watcher) reload() {
	src, err := Load(sw.dir)
	if err != nil {
		sw.logger.Error("Failed to read shader sources", zap.Error(err))
		return
	}

	// Replace any undelivered source with the newer one
	select {
	case <-sw.updates:
	default:
	}
	sw.updates <- src
}

// shouldReload reports whether an event touches one of the shader files.
// Editors that save via rename produce Create events, so those count too.
func shouldReload(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	switch filepath.Base(event.Name) {
	case VertexFile, FragmentFile:
		return true
	}
	return false
}
