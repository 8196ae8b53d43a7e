package cli

import (
	"github.com/spf13/cobra"

	"eepe-mcerror/internal/app"
)

var (
	convAdjMaxRuns int
	convAdjCSVPath string
	convAdjPNGDir  string
	convAdjOutput  string
)

var convAdjCmd = &cobra.Command{
	Use:   "convadj",
	Short: "Tabulate the convergence adjustment factor over the run grid",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().ConvAdj(app.ConvAdjOptions{
			MaxRuns: changed(cmd, "max-runs", convAdjMaxRuns),
			CSVPath: convAdjCSVPath,
			PNGDir:  convAdjPNGDir,
			Output:  convAdjOutput,
		})
	},
}

func init() {
	convAdjCmd.Flags().IntVar(&convAdjMaxRuns, "max-runs", 0, "Upper bound of the run grid (defaults to config)")
	convAdjCmd.Flags().StringVar(&convAdjCSVPath, "csv", "", "Path to write CSV data")
	convAdjCmd.Flags().StringVar(&convAdjPNGDir, "png-dir", "", "Directory to write the PNG chart")
	convAdjCmd.Flags().StringVarP(&convAdjOutput, "output", "o", "", "Report format: table, json or yaml (defaults to config)")
}
