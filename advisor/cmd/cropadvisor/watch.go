package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cropadvisor/cropadvisor/advisor/internal/config"
	"github.com/cropadvisor/cropadvisor/advisor/internal/sensor"
	"github.com/cropadvisor/cropadvisor/pkg/types"
)

func newWatchCmd(a *app) *cobra.Command {
	var file, format string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-evaluate every time the observation file changes",
		Long: `Watch the sensor file (sensor.path, or --file) and print a new
recommendation each time it is rewritten. Scores are exported to
output.textfile when set, and alert rules are evaluated on every update.
The config file is watched too: alert rules and the textfile path reload
without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := a.cfg.Sensor.Options()
			path := a.cfg.Sensor.Path
			if file != "" {
				path = file
			}
			if format != "" {
				opts.Format = format
			}

			ev, err := newEvaluator(a, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if err := ev.evaluateFile(path, opts); err != nil {
				slog.Warn("watch: initial evaluation failed", "path", path, "err", err)
			}

			if a.configPath != "" {
				go func() {
					if err := config.Watch(ctx, a.configPath, ev.reload); err != nil {
						slog.Error("config watcher stopped", "err", err)
					}
				}()
			}

			err = sensor.Watch(ctx, path, opts, func(c types.Conditions) {
				if err := ev.evaluate(c); err != nil {
					slog.Error("watch: evaluation failed", "err", err)
				}
			})
			slog.Info("cropadvisor watch shutting down")
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "observation file (default sensor.path)")
	cmd.Flags().StringVar(&format, "format", "", "observation format: yaml | json | prometheus")
	return cmd
}
