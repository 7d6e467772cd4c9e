package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cropadvisor/cropadvisor/advisor/internal/report"
)

func newRecommendCmd(a *app) *cobra.Command {
	var cf conditionFlags
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend the best crop for the given conditions",
		Long: `Score every crop in the table and print the best match, the top three,
the crop's optimal ranges and its fielding, management and maintenance guidance.

Examples:
  cropadvisor recommend -t 22 -u 65 -r 60 --ph 6.5 -N 110 -P 70 -K 60
  cropadvisor recommend -f station.prom -o json
  cropadvisor recommend -f field.yaml --humidity 80`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := cf.conditions(cmd, a.cfg.Sensor.Metrics)
			if err != nil {
				return err
			}
			res, err := a.rec.Recommend(c)
			if err != nil {
				return err
			}
			env := report.NewEnvelope(res, time.Now())
			slog.Debug("recommendation computed", "id", env.ID, "crop", res.RecommendedCrop)
			return report.Write(cmd.OutOrStdout(), a.output, env)
		},
	}
	cf.register(cmd)
	return cmd
}
