package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cropadvisor/cropadvisor/advisor/internal/advice"
	"github.com/cropadvisor/cropadvisor/advisor/internal/report"
)

func newAdviceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "advice [topic]",
		Short: "General agronomy advice by topic",
		Long: `Print advice on a topic such as planting, weed_control or irrigation.
Without a topic, list the topics. An unknown topic prints general advice.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := advice.Default()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if len(args) == 0 {
				if a.output != report.FormatText {
					return report.WriteValue(w, a.output, map[string][]string{"topics": book.Topics()})
				}
				for _, t := range book.Topics() {
					fmt.Fprintln(w, t)
				}
				return nil
			}

			ans := book.Lookup(args[0])
			if a.output != report.FormatText {
				return report.WriteValue(w, a.output, ans)
			}
			if !ans.Found() {
				fmt.Fprintln(w, ans.Fallback)
				return nil
			}
			fmt.Fprintf(w, "%s\n", ans.Entry.Title)
			for _, line := range ans.Entry.Advice {
				fmt.Fprintf(w, "- %s\n", line)
			}
			return nil
		},
	}
}
