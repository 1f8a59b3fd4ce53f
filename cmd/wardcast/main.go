package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sanyamj894/ward-wise-insights-dash/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:               "wardcast",
		Short:             "Ward-level population, infrastructure and happiness forecasting",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultPath, "config file (TOML)")
	rootCmd.PersistentFlags().StringVarP(&a.dataset, "dataset", "d", "", "historical dataset (.csv, .xlsx or .json); overrides config")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level; overrides config")

	rootCmd.AddCommand(forecastCmd(a))
	rootCmd.AddCommand(analyzeCmd(a))
	rootCmd.AddCommand(evaluateCmd(a))
	rootCmd.AddCommand(outliersCmd(a))
	rootCmd.AddCommand(optimizeCmd(a))
	rootCmd.AddCommand(validateCmd(a))
	rootCmd.AddCommand(serveCmd(a))
	rootCmd.AddCommand(configCmd(a))
	return rootCmd
}

func forecastCmd(a *app) *cobra.Command {
	var (
		sf     scenarioFlags
		remote string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project every ward's latest record to the scenario year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sf.resolve(cmd, a.cfg.Scenario)
			if err != nil {
				return err
			}
			return a.runForecast(cmd.Context(), s, sf.forecaster(cmd), remote, asJSON)
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVar(&remote, "remote", "", "forecast on a remote server at this URL instead of locally")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func analyzeCmd(a *app) *cobra.Command {
	var (
		sf        scenarioFlags
		metric    string
		threshold float64
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full dashboard pipeline for a scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sf.resolve(cmd, a.cfg.Scenario)
			if err != nil {
				return err
			}
			opts, err := a.analysisOptions(cmd, metric, threshold)
			if err != nil {
				return err
			}
			return a.runAnalyze(s, sf.forecaster(cmd), opts, asJSON)
		},
	}
	sf.register(cmd)
	cmd.Flags().StringVarP(&metric, "metric", "m", "", "metric for accuracy and outliers; overrides config")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "happiness threshold for the benchmark; overrides config")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a summary")
	return cmd
}

func evaluateCmd(a *app) *cobra.Command {
	var metric string

	cmd := &cobra.Command{
		Use:   "evaluate [predicted-file]",
		Short: "Score predicted records against the historical dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.analysisOptions(cmd, metric, 0)
			if err != nil {
				return err
			}
			return a.runEvaluate(args[0], opts.Metric)
		},
	}
	cmd.Flags().StringVarP(&metric, "metric", "m", "", "metric to score; overrides config")
	return cmd
}

func outliersCmd(a *app) *cobra.Command {
	var metric string

	cmd := &cobra.Command{
		Use:   "outliers",
		Short: "List wards whose metric falls outside the IQR fences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := a.analysisOptions(cmd, metric, 0)
			if err != nil {
				return err
			}
			return a.runOutliers(opts.Metric)
		},
	}
	cmd.Flags().StringVarP(&metric, "metric", "m", "", "metric to scan; overrides config")
	return cmd
}

func optimizeCmd(a *app) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Derive the facility benchmark from the happiest wards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := a.analysisOptions(cmd, "", threshold)
			if err != nil {
				return err
			}
			return a.runOptimize(opts.HappinessThreshold)
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "only records with happiness above this are benchmarked; overrides config")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	var sf scenarioFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the dataset and scenario without forecasting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sf.resolve(cmd, a.cfg.Scenario)
			if err != nil {
				return err
			}
			return a.runValidate(s)
		},
	}
	sf.register(cmd)
	return cmd
}

func serveCmd(a *app) *cobra.Command {
	var (
		port int
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP forecasting service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return a.runServe(cmd.Context(), newForecaster(cmd.Flags().Changed("seed"), seed))
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8000, "HTTP server port; overrides config")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed the forecast noise for reproducible responses")
	return cmd
}

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := a.configPath
			if len(args) == 1 {
				path = args[0]
			}
			return a.runConfigInit(path)
		},
	})
	return cmd
}
