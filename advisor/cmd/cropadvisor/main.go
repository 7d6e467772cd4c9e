// Cropadvisor scores field conditions against crop requirements and
// recommends what to plant.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envConfig = "CROPADVISOR_CONFIG"
	envTable  = "CROPADVISOR_TABLE"
)

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "cropadvisor",
		Short: "Offline crop suitability scoring and recommendation.",
		Long: `cropadvisor compares observed soil and climate conditions (temperature,
humidity, rainfall, pH, N, P, K) against each crop's optimal intervals,
ranks the crops by suitability and explains the best match.

Everything runs locally from an embedded crop table; no network access.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (or "+envConfig+" env)")
	pf.StringVar(&a.tablePath, "table", "", "crop table YAML file (or "+envTable+" env; default embedded)")
	pf.StringVarP(&a.output, "output", "o", "", "output format: text | json | yaml (default from config)")
	pf.StringVar(&a.logFormat, "log-format", "json", "log format: json | text")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level: debug | info | warn | error")

	root.AddCommand(
		newRecommendCmd(a),
		newScoreCmd(a),
		newCropsCmd(a),
		newInfoCmd(a),
		newGuidanceCmd(a),
		newAdviceCmd(a),
		newWatchCmd(a),
		newScheduleCmd(a),
		newVersionCmd(),
	)
	return root
}

func init() {
	_ = godotenv.Load()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
