package analytics

import (
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/accuracy"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/forecast"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/optimize"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/outlier"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/validation"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// comparedMetrics are the fields shown side by side for each ward.
var comparedMetrics = []ward.Metric{
	ward.MetricHappinessIndex,
	ward.MetricTotalInfrastructure,
	ward.MetricPopulation,
}

// Analyze runs a scenario end to end: forecast, accuracy against history,
// outliers within the forecast, and the optimization profile of the
// happiest historical records. Degenerate inputs produce zero or empty
// values and a finding in the returned report, never a failure.
func Analyze(f *forecast.Forecaster, history []ward.Record, s ward.Scenario, opts Options) (*Result, *validation.Report) {
	report := validation.ValidateScenario(s)
	if opts.Metric == "" {
		opts.Metric = ward.MetricHappinessIndex
	}

	// 1. Forecast
	predicted := f.Forecast(history, s)
	var unprojected []string
	for _, base := range forecast.Latest(ward.Filter(history, func(r ward.Record) bool { return s.Selects(r.Ward) })) {
		if base.Year >= s.Year {
			unprojected = append(unprojected, base.Ward)
		}
	}

	// 2. Wards under analysis; all forecast wards when none are selected.
	wards := s.SelectedWards
	if len(wards) == 0 {
		wards = ward.Wards(predicted)
	}
	selected := make(map[string]bool, len(wards))
	for _, w := range wards {
		selected[w] = true
	}
	inSelection := func(r ward.Record) bool { return selected[r.Ward] }
	selectedHistory := ward.Filter(history, inSelection)
	selectedForecast := ward.Filter(predicted, inSelection)

	// 3. Accuracy
	metrics := accuracy.Evaluate(selectedHistory, selectedForecast, opts.Metric)

	// 4. Outliers
	outliers := outlier.Analyze(selectedForecast, opts.Metric)

	// 5. Optimization profile
	benchmark := ward.Filter(history, func(r ward.Record) bool {
		return r.HappinessIndex > opts.HappinessThreshold
	})
	profile := optimize.Recommend(benchmark)

	res := &Result{
		Scenario:    s,
		Metric:      opts.Metric,
		Wards:       wards,
		Forecast:    predicted,
		Unprojected: unprojected,
		Accuracy:    metrics,
		Outliers:    outliers,
		Benchmark:   len(benchmark),
		Profile:     profile,
		Mix:         optimize.Mix(profile),
		Comparisons: compare(wards, selectedHistory, selectedForecast, s.Year),
	}

	// 6. Analytical findings
	validateAnalytical(res, benchmark, opts, report)

	return res, report
}

// compare builds one row per ward and compared metric.
func compare(wards []string, history, predicted []ward.Record, year int) []Comparison {
	rows := make([]Comparison, 0, len(wards)*len(comparedMetrics))
	for _, w := range wards {
		hist := findRecord(history, w, year)
		pred := findRecord(predicted, w, year)
		for _, m := range comparedMetrics {
			row := Comparison{Ward: w, Metric: m}
			if hist != nil {
				v := m.Value(*hist)
				row.Historical = &v
			}
			if pred != nil {
				v := m.Value(*pred)
				row.Predicted = &v
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func findRecord(records []ward.Record, name string, year int) *ward.Record {
	for i := range records {
		if records[i].Ward == name && records[i].Year == year {
			return &records[i]
		}
	}
	return nil
}
