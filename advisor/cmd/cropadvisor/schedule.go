package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

func newScheduleCmd(a *app) *cobra.Command {
	var spec, file string
	var runNow bool
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Evaluate the observation file on a cron schedule",
		Long: `Read the sensor file on every tick of schedule.spec (or --spec) and print
and export a recommendation, for stations that update their textfile
without an event the watch command could see.

Examples:
  cropadvisor schedule --spec "0 6 * * *"
  cropadvisor schedule --spec "@every 15m" --now`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if spec == "" {
				spec = a.cfg.Schedule.Spec
			}
			path := a.cfg.Sensor.Path
			if file != "" {
				path = file
			}
			opts := a.cfg.Sensor.Options()

			ev, err := newEvaluator(a, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			job := func() {
				if err := ev.evaluateFile(path, opts); err != nil {
					slog.Error("schedule: evaluation failed", "path", path, "err", err)
				}
			}

			c := cron.New()
			if _, err := c.AddFunc(spec, job); err != nil {
				return fmt.Errorf("schedule: invalid spec %q: %w", spec, err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if runNow {
				job()
			}
			c.Start()
			slog.Info("schedule: started", "spec", spec, "path", path)

			<-ctx.Done()
			<-c.Stop().Done()
			slog.Info("cropadvisor schedule shutting down")
			return nil
		},
	}
	cmd.Flags().StringVar(&spec, "spec", "", "cron spec (default schedule.spec)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "observation file (default sensor.path)")
	cmd.Flags().BoolVar(&runNow, "now", false, "also evaluate once at startup")
	return cmd
}
