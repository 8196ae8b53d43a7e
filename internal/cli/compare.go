package cli

import (
	"github.com/spf13/cobra"

	"eepe-mcerror/internal/app"
)

var (
	compareCommon    commonFlags
	compareRuns      int
	compareScenarios int
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare both error estimates on the same synthetic parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.CompareOptions{
			CommonOptions: compareCommon.options(cmd),
			Runs:          changed(cmd, "runs", compareRuns),
			Scenarios:     changed(cmd, "scenarios", compareScenarios),
		}
		return getApp().Compare(cmd.Context(), opts)
	},
}

func init() {
	compareCommon.bind(compareCmd)
	compareCmd.Flags().IntVar(&compareRuns, "runs", 0, "Number of MC runs m for method 1 (defaults to config)")
	compareCmd.Flags().IntVar(&compareScenarios, "scenarios", 0, "Number of scenarios N for method 2 (defaults to config)")
}
