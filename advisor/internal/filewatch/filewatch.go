package filewatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a file must stay quiet after a write before it
// is re-read. Editors and station writers often emit several events for one
// save (truncate, write, rename, chmod).
const DefaultSettle = 200 * time.Millisecond

// Watch calls reload once path has been written or replaced and then left
// alone for settle. Events closer together than settle collapse into a
// single call. A settle of zero reloads on every event.
//
// The watch is re-armed after each reload so that a file replaced by an
// atomic rename keeps being followed. Watch runs until ctx is cancelled and
// returns an error only if path cannot be watched at all.
func Watch(ctx context.Context, path string, settle time.Duration, reload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("filewatch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("filewatch: watch %s: %w", path, err)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if settle <= 0 {
				reload()
				_ = watcher.Add(path)
				continue
			}
			pending = time.After(settle)

		case <-pending:
			pending = nil
			reload()
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("filewatch: watcher error", "path", path, "err", err)
		}
	}
}
