package analytics

import (
	"fmt"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/optimize"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/outlier"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/validation"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// validateAnalytical records the degenerate conditions behind zero or empty
// results so callers can tell them apart from genuine zeros.
func validateAnalytical(res *Result, benchmark []ward.Record, opts Options, report *validation.Report) {
	validateForecastCoverage(res, report)
	validateAccuracyPairs(res, report)
	validateOutlierSample(res, report)
	validateBenchmark(benchmark, opts, report)
}

func validateForecastCoverage(res *Result, report *validation.Report) {
	if len(res.Forecast) == 0 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelAnalytical,
			Message:     "no records match the selected wards; forecast is empty",
			Path:        "selectedWards",
			ActualValue: res.Scenario.SelectedWards,
			Suggestions: []string{"Check ward names against the dataset"},
		})
		return
	}
	if n := len(res.Unprojected); n > 0 {
		report.AddInfo(validation.Result{
			Level:       validation.LevelAnalytical,
			Message:     fmt.Sprintf("%d ward(s) already have data at or after %d and were not projected", n, res.Scenario.Year),
			Path:        "year",
			ActualValue: res.Scenario.Year,
		})
	}
}

func validateAccuracyPairs(res *Result, report *validation.Report) {
	if res.Accuracy.Matched == 0 {
		report.AddInfo(validation.Result{
			Level:    validation.LevelAnalytical,
			Message:  fmt.Sprintf("no historical records for %d to compare against; error metrics are 0", res.Scenario.Year),
			Path:     "year",
			Expected: "historical records sharing ward and year with the forecast",
		})
	}
}

func validateOutlierSample(res *Result, report *validation.Report) {
	if res.Outliers.Fences == nil {
		report.AddInfo(validation.Result{
			Level:       validation.LevelAnalytical,
			Message:     fmt.Sprintf("outlier detection needs at least %d forecast records", outlier.MinRecords),
			Path:        "selectedWards",
			ActualValue: len(res.Wards),
			Expected:    fmt.Sprintf(">= %d", outlier.MinRecords),
		})
	}
}

func validateBenchmark(benchmark []ward.Record, opts Options, report *validation.Report) {
	if len(benchmark) == 0 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelAnalytical,
			Message:     fmt.Sprintf("no historical records have happiness above %.1f; optimization profile is zero", opts.HappinessThreshold),
			Path:        "happiness_threshold",
			ActualValue: opts.HappinessThreshold,
			Suggestions: []string{"Lower the happiness threshold"},
		})
		return
	}
	for _, r := range optimize.Top(benchmark, optimize.TopWards) {
		if r.Population == 0 {
			report.AddWarning(validation.Result{
				Level:       validation.LevelAnalytical,
				Message:     fmt.Sprintf("benchmark ward %s (%d) has zero population and contributes 0 to every ratio", r.Ward, r.Year),
				Path:        "Population",
				ActualValue: r.Population,
				Expected:    "> 0",
			})
		}
	}
}
