package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cropadvisor/cropadvisor/advisor/internal/croptable"
	"github.com/cropadvisor/cropadvisor/advisor/internal/report"
	"github.com/cropadvisor/cropadvisor/pkg/types"
)

func newCropsCmd(a *app) *cobra.Command {
	var byCategory bool
	cmd := &cobra.Command{
		Use:   "crops",
		Short: "List the crops in the table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			ids := a.rec.ListCrops()
			cats := a.table.Categories()

			if a.output != report.FormatText {
				return report.WriteValue(w, a.output, cropListing(ids, cats))
			}
			if !byCategory {
				for _, id := range ids {
					fmt.Fprintln(w, id)
				}
				return nil
			}
			for _, c := range cats {
				fmt.Fprintf(w, "%s: %s\n", c.Name, strings.Join(c.Crops, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&byCategory, "by-category", false, "group crops by category")
	return cmd
}

type categoryEntry struct {
	Name  string   `json:"name" yaml:"name"`
	Crops []string `json:"crops" yaml:"crops"`
}

type listing struct {
	Crops            []string        `json:"crops" yaml:"crops"`
	Categories       []categoryEntry `json:"categories" yaml:"categories"`
	TotalCrops       int             `json:"total_crops" yaml:"total_crops"`
	EnhancedFeatures []string        `json:"enhanced_features" yaml:"enhanced_features"`
}

func cropListing(ids []string, cats []croptable.Category) listing {
	out := listing{Crops: ids, TotalCrops: len(ids), EnhancedFeatures: types.GuidanceKinds}
	for _, c := range cats {
		out.Categories = append(out.Categories, categoryEntry{Name: c.Name, Crops: c.Crops})
	}
	return out
}
