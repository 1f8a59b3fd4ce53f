package analytics

import (
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/optimize"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/outlier"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// Result holds everything the dashboard shows for one scenario run.
type Result struct {
	Scenario    ward.Scenario     `json:"scenario"`
	Metric      ward.Metric       `json:"metric"`
	Wards       []string          `json:"wards"`
	Forecast    []ward.Record     `json:"forecast"`
	Unprojected []string          `json:"unprojected,omitempty"`
	Accuracy    ward.ErrorMetrics `json:"accuracy"`
	Outliers    outlier.Result    `json:"outliers"`
	Benchmark   int               `json:"benchmark_records"`
	Profile     ward.Profile      `json:"profile"`
	Mix         []optimize.Share  `json:"mix"`
	Comparisons []Comparison      `json:"comparisons"`
}

// Comparison pairs a ward's historical value at the scenario year with its
// forecast value. Either side is nil when no record exists for it.
type Comparison struct {
	Ward       string      `json:"ward"`
	Metric     ward.Metric `json:"metric"`
	Historical *float64    `json:"historical,omitempty"`
	Predicted  *float64    `json:"predicted,omitempty"`
}

// Options tunes an analysis run.
type Options struct {
	// Metric is evaluated for accuracy and outliers.
	Metric ward.Metric `toml:"metric"`
	// HappinessThreshold selects the historical records the optimization
	// profile is derived from: only records strictly above it are used.
	HappinessThreshold float64 `toml:"happiness_threshold"`
}

// DefaultOptions mirrors the dashboard: happiness index, threshold 6.0.
func DefaultOptions() Options {
	return Options{
		Metric:             ward.MetricHappinessIndex,
		HappinessThreshold: 6.0,
	}
}
