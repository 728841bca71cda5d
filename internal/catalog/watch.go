package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 250 * time.Millisecond

// Watch reloads store whenever its catalog file is written, created or
// renamed into place. It watches the parent directory so editors that
// replace the file atomically are handled. onReload, if set, is called
// after every successful reload. Watch blocks until ctx is done.
func Watch(ctx context.Context, store *Store, log *zap.Logger, onReload func(*Catalog)) error {
	if log == nil {
		log = zap.NewNop()
	}

	path, err := filepath.Abs(store.Snapshot().Path)
	if err != nil {
		return fmt.Errorf("resolve catalog path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Editors often emit several events per save.
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			cat, err := store.Reload()
			if err != nil {
				log.Warn("catalog reload failed, keeping previous catalog", zap.Error(err))
				continue
			}
			log.Info("catalog reloaded", zap.Int("records", cat.Len()), zap.Int("skipped", cat.Skipped))
			if onReload != nil {
				onReload(cat)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("catalog watcher error", zap.Error(err))
		}
	}
}
