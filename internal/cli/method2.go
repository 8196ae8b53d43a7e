package cli

import (
	"github.com/spf13/cobra"

	"eepe-mcerror/internal/app"
)

var (
	method2Common       commonFlags
	method2Scenarios    int
	method2MaxScenarios int
)

var method2Cmd = &cobra.Command{
	Use:   "method2",
	Short: "Estimate the error from a single run of N scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.Method2Options{
			CommonOptions: method2Common.options(cmd),
			Scenarios:     changed(cmd, "scenarios", method2Scenarios),
			MaxScenarios:  changed(cmd, "max-scenarios", method2MaxScenarios),
		}
		return getApp().Method2(cmd.Context(), opts)
	},
}

func init() {
	method2Common.bind(method2Cmd)
	method2Cmd.Flags().IntVar(&method2Scenarios, "scenarios", 0, "Number of scenarios N (defaults to config)")
	method2Cmd.Flags().IntVar(&method2MaxScenarios, "max-scenarios", 0, "Upper bound of the scenario sweep (defaults to config)")
}
