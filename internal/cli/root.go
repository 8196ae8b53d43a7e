package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"eepe-mcerror/internal/app"
	"eepe-mcerror/internal/config"
	"eepe-mcerror/internal/logging"
	"eepe-mcerror/internal/version"
)

var (
	cfgFile   string
	logLevel  string
	appHandle *app.App
)

var rootCmd = &cobra.Command{
	Use:   "eepeerr",
	Short: "Estimate the Monte Carlo error of EEPE",
	Long: "eepeerr estimates the Monte Carlo error of Effective Expected Positive Exposure\n" +
		"with two methods: repeated independent runs (method1) and a single run of\n" +
		"N scenarios (method2), and compares them on synthetic data.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if appHandle != nil {
			return nil
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}

		logger := logging.NewLogger(cfg.Logging)
		appHandle = app.NewApp(cfg, logger)
		appHandle.SetOutput(cmd.OutOrStdout())
		appHandle.Logger.Debug().Str("version", version.Version).Str("command", cmd.Name()).Msg("starting")
		return nil
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel running sweeps.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level defined in config")

	rootCmd.AddCommand(method1Cmd)
	rootCmd.AddCommand(method2Cmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(convAdjCmd)
	rootCmd.AddCommand(versionCmd)
}

func getApp() *app.App {
	if appHandle == nil {
		panic("application not initialized; PersistentPreRunE not executed")
	}
	return appHandle
}

// commonFlags holds the synthetic data and export flags shared by the
// estimation commands.
type commonFlags struct {
	mean       float64
	volatility float64
	seed       uint64
	csvPath    string
	pngDir     string
	output     string
}

func (f *commonFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.mean, "mean", 0, "Mean of the synthetic exposures (defaults to config)")
	cmd.Flags().Float64Var(&f.volatility, "volatility", 0, "Standard deviation of the synthetic exposures (defaults to config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Random seed; 0 seeds from the clock (defaults to config)")
	cmd.Flags().StringVar(&f.csvPath, "csv", "", "Path to write CSV data")
	cmd.Flags().StringVar(&f.pngDir, "png-dir", "", "Directory to write PNG charts")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Report format: table, json or yaml (defaults to config)")
}

func (f *commonFlags) options(cmd *cobra.Command) app.CommonOptions {
	return app.CommonOptions{
		Mean:       changed(cmd, "mean", f.mean),
		Volatility: changed(cmd, "volatility", f.volatility),
		Seed:       changed(cmd, "seed", f.seed),
		CSVPath:    f.csvPath,
		PNGDir:     f.pngDir,
		Output:     f.output,
	}
}

// changed returns the flag value only when the user set it, so that an
// explicit zero or negative value reaches validation instead of falling
// back to config.
func changed[T any](cmd *cobra.Command, name string, v T) *T {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
