package config

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/cropadvisor/cropadvisor/advisor/internal/filewatch"
)

// Watch follows the config file at path and calls onChange with each new
// Config. It runs until ctx is cancelled.
//
// A file that no longer loads (bad YAML, a rule that does not parse, an
// invalid cron spec) is logged and ignored, leaving the caller on its last
// good config. A save that leaves the effective config unchanged does not
// call onChange, so alert cooldowns and state survive cosmetic edits.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	current, err := Load(path)
	if err != nil {
		slog.Warn("config: current file does not load, next valid save will apply",
			"path", path, "err", err)
	}

	slog.Info("config: watching for changes", "path", path)
	return filewatch.Watch(ctx, path, filewatch.DefaultSettle, func() {
		cfg, err := Load(path)
		if err != nil {
			slog.Error("config: reload failed, keeping previous config", "path", path, "err", err)
			return
		}
		if current != nil && reflect.DeepEqual(cfg, current) {
			slog.Debug("config: file saved without changes", "path", path)
			return
		}
		current = cfg
		slog.Info("config: reloaded", "path", path, "alert_rules", len(cfg.Alerts.Rules))
		onChange(cfg)
	})
}
