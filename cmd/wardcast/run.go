package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sanyamj894/ward-wise-insights-dash/internal/config"
	"github.com/sanyamj894/ward-wise-insights-dash/internal/logging"
	"github.com/sanyamj894/ward-wise-insights-dash/internal/server"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/accuracy"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/analytics"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/client"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/forecast"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ingest"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/optimize"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/outlier"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/validation"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	dataset    string
	logLevel   string

	cfg    *config.AppConfig
	logger *zap.Logger
}

func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataset != "" {
		cfg.Data.Dataset = a.dataset
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// loadHistory reads the configured dataset and reports record problems.
// Invalid records fail the load.
func (a *app) loadHistory() ([]ward.Record, error) {
	records, err := ingest.LoadFile(a.cfg.Data.Dataset)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	report := validation.ValidateRecords(records)
	if err := report.Err(); err != nil {
		printValidationReport(report)
		return nil, fmt.Errorf("dataset %s: %w", a.cfg.Data.Dataset, err)
	}
	a.logger.Debug("dataset loaded",
		zap.String("path", a.cfg.Data.Dataset),
		zap.Int("records", len(records)),
		zap.Int("warnings", len(report.Warnings)))
	return records, nil
}

// analysisOptions applies explicitly set --metric and --threshold flags over
// the configured options.
func (a *app) analysisOptions(cmd *cobra.Command, metric string, threshold float64) (analytics.Options, error) {
	opts := a.cfg.Analysis
	if cmd.Flags().Changed("metric") {
		m, err := ward.ParseMetric(metric)
		if err != nil {
			return opts, err
		}
		opts.Metric = m
	}
	if cmd.Flags().Changed("threshold") {
		opts.HappinessThreshold = threshold
	}
	return opts, nil
}

func checkScenario(s ward.Scenario) error {
	report := validation.ValidateScenario(s)
	if err := report.Err(); err != nil {
		printValidationReport(report)
		return fmt.Errorf("scenario: %w", err)
	}
	return nil
}

func (a *app) runForecast(ctx context.Context, s ward.Scenario, f *forecast.Forecaster, remote string, asJSON bool) error {
	if err := checkScenario(s); err != nil {
		return err
	}

	var (
		predicted []ward.Record
		err       error
	)
	if remote != "" {
		a.logger.Debug("remote forecast", zap.String("endpoint", remote))
		predicted, err = client.New(remote, nil).Predict(ctx, s)
		if err != nil {
			return fmt.Errorf("remote forecast: %w", err)
		}
	} else {
		history, err := a.loadHistory()
		if err != nil {
			return err
		}
		predicted = f.Forecast(history, s)
	}

	if asJSON {
		return printJSON(predicted)
	}
	printScenario(s)
	fmt.Println()
	printRecords(predicted)
	return nil
}

func (a *app) runAnalyze(s ward.Scenario, f *forecast.Forecaster, opts analytics.Options, asJSON bool) error {
	history, err := a.loadHistory()
	if err != nil {
		return err
	}

	res, report := analytics.Analyze(f, history, s, opts)
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("analysis failed")
	}
	if asJSON {
		return printJSON(map[string]any{
			"result":     res,
			"validation": report,
		})
	}

	printAnalysis(res)
	if len(report.Warnings) > 0 || len(report.Info) > 0 {
		fmt.Println()
		printValidationReport(report)
	}
	return nil
}

func (a *app) runEvaluate(predictedPath string, metric ward.Metric) error {
	history, err := a.loadHistory()
	if err != nil {
		return err
	}
	predicted, err := ingest.LoadFile(predictedPath)
	if err != nil {
		return fmt.Errorf("loading predictions: %w", err)
	}

	printErrorMetrics(metric, accuracy.Evaluate(history, predicted, metric))
	return nil
}

func (a *app) runOutliers(metric ward.Metric) error {
	history, err := a.loadHistory()
	if err != nil {
		return err
	}
	printOutliers(outlier.Analyze(history, metric))
	return nil
}

func (a *app) runOptimize(threshold float64) error {
	history, err := a.loadHistory()
	if err != nil {
		return err
	}

	benchmark := ward.Filter(history, func(r ward.Record) bool {
		return r.HappinessIndex > threshold
	})
	profile := optimize.Recommend(benchmark)

	fmt.Printf("Benchmark: %d of %d records with happiness > %.1f\n\n", len(benchmark), len(history), threshold)
	printProfile(optimize.Mix(profile))

	for _, r := range forecast.Latest(history) {
		fmt.Println()
		printTargets(r, optimize.Targets(r, profile))
	}
	return nil
}

func (a *app) runValidate(s ward.Scenario) error {
	records, err := ingest.LoadFile(a.cfg.Data.Dataset)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	report := validation.ValidateRecords(records)
	report.Merge(validation.ValidateScenario(s))

	printValidationReport(report)
	if wards := report.Wards(); len(wards) > 0 {
		fmt.Printf("Wards with findings: %s\n", strings.Join(wards, ", "))
	}

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func (a *app) runServe(ctx context.Context, f *forecast.Forecaster) error {
	history, err := a.loadHistory()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(history, f, server.Options{
		Port:     a.cfg.Server.Port,
		DevMode:  a.cfg.Server.DevMode,
		Analysis: a.cfg.Analysis,
	}, a.logger)
	return srv.Start(ctx)
}

func (a *app) runConfigInit(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
