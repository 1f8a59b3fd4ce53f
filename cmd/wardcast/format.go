package main

import (
	"fmt"
	"strings"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/analytics"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/optimize"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/outlier"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/validation"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(e)
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			printResult(w)
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(res validation.Result) {
	if res.Ward != "" {
		fmt.Printf("  [%s] %s %d: %s\n", res.Level, res.Ward, res.Year, res.Message)
	} else {
		fmt.Printf("  [%s] %s\n", res.Level, res.Message)
	}
	if res.Path != "" {
		fmt.Printf("    -> %s = %v\n", res.Path, res.ActualValue)
	}
	if res.Expected != "" {
		fmt.Printf("    expected: %s\n", res.Expected)
	}
	if res.ConflictWith != "" {
		fmt.Printf("    conflicts with: %s\n", res.ConflictWith)
	}
	for _, s := range res.Suggestions {
		fmt.Printf("    * %s\n", s)
	}
}

func printScenario(s ward.Scenario) {
	fmt.Printf("Forecast for %d\n", s.Year)
	fmt.Println("=================")
	fmt.Printf("  Population growth:        %.1f%%/yr\n", s.PopulationGrowthRate)
	fmt.Printf("  Infrastructure investment: %.1f%%/yr\n", s.InfrastructureInvestment)
	fmt.Printf("  Policy effectiveness:     %.0f%%\n", s.PolicyEffectiveness)
	if len(s.SelectedWards) > 0 {
		fmt.Printf("  Wards:                    %s\n", strings.Join(s.SelectedWards, ", "))
	}
}

func printRecords(records []ward.Record) {
	if len(records) == 0 {
		fmt.Println("No wards to show.")
		return
	}

	fmt.Printf("%-22s %6s %12s %7s %7s %8s %6s %5s %6s %9s\n",
		"Ward", "Year", "Population", "Parks", "Gardens", "Theatres", "Malls", "Aud.", "Total", "Happiness")
	fmt.Printf("%-22s %6s %12s %7s %7s %8s %6s %5s %6s %9s\n",
		"----------------------", "------", "------------", "-------", "-------", "--------", "------", "-----", "------", "---------")
	for _, r := range records {
		fmt.Printf("%-22s %6d %12d %7d %7d %8d %6d %5d %6d %9.1f\n",
			r.Ward, r.Year, r.Population, r.Parks, r.Gardens, r.Theatres, r.Malls, r.Auditoriums,
			r.TotalInfrastructure, r.HappinessIndex)
	}
}

func printErrorMetrics(metric ward.Metric, m ward.ErrorMetrics) {
	fmt.Printf("Accuracy (%s)\n", metric)
	fmt.Println("--------")
	if m.Matched == 0 {
		fmt.Println("  No (ward, year) pairs in common; all errors reported as 0.")
	}
	fmt.Printf("  Matched pairs:  %d\n", m.Matched)
	fmt.Printf("  RMSE:           %.4f\n", m.RMSE)
	fmt.Printf("  MAE:            %.4f\n", m.MAE)
	fmt.Printf("  MAPE:           %.2f%%\n", m.MAPE)
}

func printOutliers(res outlier.Result) {
	fmt.Printf("Outliers (%s)\n", res.Metric)
	fmt.Println("--------")
	if res.Fences == nil {
		fmt.Printf("  Fewer than %d records; no quartiles estimated.\n", outlier.MinRecords)
		return
	}
	f := res.Fences
	fmt.Printf("  Q1 = %g, Q3 = %g, IQR = %g\n", f.Q1, f.Q3, f.IQR)
	fmt.Printf("  Fences: [%g, %g]\n", f.Lower, f.Upper)
	if len(res.Wards) == 0 {
		fmt.Println("  No outliers.")
		return
	}
	for _, w := range res.Wards {
		fmt.Printf("  * %s\n", w)
	}
}

func printProfile(mix []optimize.Share) {
	fmt.Println("Optimization Profile (per 10,000 residents)")
	fmt.Println("===========================================")
	fmt.Printf("%-14s %10s %8s\n", "Facility", "Ratio", "Share")
	fmt.Printf("%-14s %10s %8s\n", "--------------", "----------", "--------")
	for _, s := range mix {
		fmt.Printf("%-14s %10.2f %7.1f%%\n", s.Facility, s.Ratio, s.Percent)
	}
}

func printTargets(r ward.Record, targets []optimize.Target) {
	fmt.Printf("%s (%d, population %d)\n", r.Ward, r.Year, r.Population)
	fmt.Printf("  %-14s %8s %8s %8s\n", "Facility", "Current", "Target", "Gap")
	for _, t := range targets {
		fmt.Printf("  %-14s %8d %8.2f %+8.2f\n", t.Facility, t.Current, t.Target, t.Gap)
	}
}

func printAnalysis(res *analytics.Result) {
	printScenario(res.Scenario)
	fmt.Println()
	printRecords(res.Forecast)
	if len(res.Unprojected) > 0 {
		fmt.Printf("\nAlready at or past %d (shown unchanged): %s\n", res.Scenario.Year, strings.Join(res.Unprojected, ", "))
	}

	fmt.Println()
	printErrorMetrics(res.Metric, res.Accuracy)
	fmt.Println()
	printOutliers(res.Outliers)
	fmt.Println()
	fmt.Printf("Benchmark records: %d\n", res.Benchmark)
	printProfile(res.Mix)

	if len(res.Comparisons) > 0 {
		fmt.Println()
		fmt.Println("Forecast vs Historical")
		fmt.Println("----------------------")
		fmt.Printf("%-22s %-20s %12s %12s\n", "Ward", "Metric", "Historical", "Predicted")
		for _, c := range res.Comparisons {
			fmt.Printf("%-22s %-20s %12s %12s\n", c.Ward, c.Metric, formatValue(c.Historical), formatValue(c.Predicted))
		}
	}
}

func formatValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}
