package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/searchbox/internal/logger"
)

// Watch calls onChange whenever the file at path is written, created or
// renamed into place. The parent directory is watched so editors that
// replace the file atomically are still seen. Bursts are not coalesced;
// callers wanting one reload per save should debounce onChange.
//
// Watch returns once the watcher is installed and stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %q: %w", dir, err)
	}

	target := filepath.Clean(path)

	go func() {
		defer w.Close()

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				logger.Debug("config watcher: %s", ev)
				onChange()

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher failed: %v", err)

			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}
