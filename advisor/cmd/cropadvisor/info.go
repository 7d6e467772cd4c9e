package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cropadvisor/cropadvisor/advisor/internal/croptable"
	"github.com/cropadvisor/cropadvisor/advisor/internal/report"
	"github.com/cropadvisor/cropadvisor/pkg/types"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <crop>",
		Short: "Show a crop's optimal conditions and guidance",
		Long: `Show everything the table holds for one crop. The name is matched
without regard to case, so "Rice" and "RICE" both find rice.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, ok := a.rec.CropInfo(args[0])
			if !ok {
				return fmt.Errorf("%w: %q (available: %s)", croptable.ErrUnknownCrop, args[0],
					strings.Join(a.rec.ListCrops(), ", "))
			}
			w := cmd.OutOrStdout()
			if a.output != report.FormatText {
				return report.WriteValue(w, a.output, rec)
			}

			fmt.Fprintf(w, "%s (%s)\n", rec.Name, rec.Category)
			if rec.Description != "" {
				fmt.Fprintf(w, "%s\n", rec.Description)
			}
			fmt.Fprintln(w, "\nOptimal conditions:")
			for _, f := range types.Factors {
				fmt.Fprintf(w, "- %-12s %s\n", string(f)+":", rec.Optimal.Range(f))
			}
			for _, kind := range types.GuidanceKinds {
				g, _ := rec.Guidance(kind)
				fmt.Fprintln(w)
				if err := report.WriteGuidance(w, report.Title(kind), g); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
