package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cropadvisor/cropadvisor/advisor/internal/croptable"
	"github.com/cropadvisor/cropadvisor/advisor/internal/report"
)

func newScoreCmd(a *app) *cobra.Command {
	var cf conditionFlags
	cmd := &cobra.Command{
		Use:   "score <crop>",
		Short: "Score one crop and show the per-factor breakdown",
		Long: `Score the conditions against one crop. Factors outside the optimal
interval are marked with *. Crop ids are matched exactly, as the table
stores them (lowercase).

Example:
  cropadvisor score apple -t 22 -u 65 -r 60 --ph 6.5 -N 110 -P 70 -K 60`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cf.conditions(cmd, a.cfg.Sensor.Metrics)
			if err != nil {
				return err
			}
			crop := args[0]
			out, ok := a.rec.Scorer().Breakdown(crop, c)
			if !ok {
				return fmt.Errorf("%w: %q (see 'cropadvisor crops')", croptable.ErrUnknownCrop, crop)
			}
			if a.output == report.FormatText {
				return report.WriteBreakdown(cmd.OutOrStdout(), crop, out)
			}
			return report.WriteValue(cmd.OutOrStdout(), a.output, struct {
				Crop       string `json:"crop" yaml:"crop"`
				Conditions any    `json:"input_conditions" yaml:"input_conditions"`
				Breakdown  any    `json:"breakdown" yaml:"breakdown"`
			}{crop, c, out})
		},
	}
	cf.register(cmd)
	return cmd
}
