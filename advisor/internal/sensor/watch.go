package sensor

import (
	"context"
	"log/slog"

	"github.com/cropadvisor/cropadvisor/advisor/internal/filewatch"
	"github.com/cropadvisor/cropadvisor/pkg/types"
)

// Watch follows the observation file at path and calls onChange with the
// conditions read after each settled write. It runs until ctx is cancelled.
//
// A file that fails to read or parse (a station mid-write, a missing factor)
// is logged and skipped; onChange is not called for it.
func Watch(ctx context.Context, path string, opts Options, onChange func(types.Conditions)) error {
	slog.Info("sensor: watching for changes", "path", path)
	return filewatch.Watch(ctx, path, filewatch.DefaultSettle, func() {
		c, err := Read(path, opts)
		if err != nil {
			slog.Warn("sensor: read failed, skipping update", "path", path, "err", err)
			return
		}
		slog.Debug("sensor: conditions updated", "path", path)
		onChange(c)
	})
}
