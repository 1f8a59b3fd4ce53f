package ward

import (
	"errors"
	"fmt"
	"strings"
)

// Facility names one of the five infrastructure types tracked per ward.
type Facility string

const (
	Parks       Facility = "parks"
	Theatres    Facility = "theatres"
	Malls       Facility = "malls"
	Gardens     Facility = "gardens"
	Auditoriums Facility = "auditoriums"
)

// Facilities lists every facility type in a fixed order.
var Facilities = []Facility{Parks, Theatres, Malls, Gardens, Auditoriums}

// Metric selects a numeric field of a Record.
type Metric string

const (
	MetricPopulation          Metric = "Population"
	MetricTheatres            Metric = "Theatres"
	MetricMalls               Metric = "Malls"
	MetricParks               Metric = "Parks"
	MetricGardens             Metric = "Gardens"
	MetricAuditoriums         Metric = "Auditoriums"
	MetricTotalInfrastructure Metric = "TotalInfrastructure"
	MetricHappinessIndex      Metric = "HappinessIndex"
	MetricYear                Metric = "Year"
)

// Metrics lists every selectable metric.
var Metrics = []Metric{
	MetricPopulation, MetricTheatres, MetricMalls, MetricParks, MetricGardens,
	MetricAuditoriums, MetricTotalInfrastructure, MetricHappinessIndex, MetricYear,
}

// ErrUnknownMetric is returned when a metric name matches no record field.
var ErrUnknownMetric = errors.New("unknown metric")

// ParseMetric resolves a metric name. Matching ignores case, spaces,
// underscores and hyphens, so "happiness_index" selects HappinessIndex.
func ParseMetric(name string) (Metric, error) {
	key := normalize(name)
	for _, m := range Metrics {
		if normalize(string(m)) == key {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// Value returns the metric's value on r. Unknown metrics yield 0.
func (m Metric) Value(r Record) float64 {
	switch m {
	case MetricPopulation:
		return float64(r.Population)
	case MetricTheatres:
		return float64(r.Theatres)
	case MetricMalls:
		return float64(r.Malls)
	case MetricParks:
		return float64(r.Parks)
	case MetricGardens:
		return float64(r.Gardens)
	case MetricAuditoriums:
		return float64(r.Auditoriums)
	case MetricTotalInfrastructure:
		return float64(r.TotalInfrastructure)
	case MetricHappinessIndex:
		return r.HappinessIndex
	case MetricYear:
		return float64(r.Year)
	}
	return 0
}

func normalize(s string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}
