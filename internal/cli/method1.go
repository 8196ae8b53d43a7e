package cli

import (
	"github.com/spf13/cobra"

	"eepe-mcerror/internal/app"
)

var (
	method1Common  commonFlags
	method1Runs    int
	method1MaxRuns int
)

var method1Cmd = &cobra.Command{
	Use:   "method1",
	Short: "Estimate the error from m independent Monte Carlo runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.Method1Options{
			CommonOptions: method1Common.options(cmd),
			Runs:          changed(cmd, "runs", method1Runs),
			MaxRuns:       changed(cmd, "max-runs", method1MaxRuns),
		}
		return getApp().Method1(cmd.Context(), opts)
	},
}

func init() {
	method1Common.bind(method1Cmd)
	method1Cmd.Flags().IntVar(&method1Runs, "runs", 0, "Number of MC runs m (defaults to config)")
	method1Cmd.Flags().IntVar(&method1MaxRuns, "max-runs", 0, "Upper bound of the run sweep (defaults to config)")
}
