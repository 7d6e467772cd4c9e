package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cropadvisor/cropadvisor/advisor/internal/report"
	"github.com/cropadvisor/cropadvisor/pkg/types"
)

func newGuidanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "guidance <crop> <" + strings.Join(types.GuidanceKinds, "|") + ">",
		Short: "Show one guidance group for a crop",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.table.Guidance(args[0], args[1])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if a.output != report.FormatText {
				return report.WriteValue(w, a.output, struct {
					Crop     string         `json:"crop" yaml:"crop"`
					Type     string         `json:"guidance_type" yaml:"guidance_type"`
					Guidance types.Guidance `json:"guidance" yaml:"guidance"`
				}{strings.ToLower(args[0]), strings.ToLower(args[1]), g})
			}
			return report.WriteGuidance(w, report.Title(strings.ToLower(args[1])), g)
		},
	}
}
