package outlier

import (
	"math"
	"slices"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// MinRecords is the smallest dataset for which quartiles are estimated.
const MinRecords = 5

// fenceFactor scales the IQR to obtain the outlier bounds.
const fenceFactor = 1.5

// Fences describes the quartile estimate and the resulting bounds.
type Fences struct {
	Q1    float64 `json:"q1"`
	Q3    float64 `json:"q3"`
	IQR   float64 `json:"iqr"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Result is the outcome of an outlier scan.
// Fences is nil when there were too few records to estimate quartiles.
type Result struct {
	Metric ward.Metric `json:"metric"`
	Fences *Fences     `json:"fences,omitempty"`
	Wards  []string    `json:"wards"`
}

// Compute estimates positional quartiles of values: Q1 and Q3 are the
// elements at floor(n*0.25) and floor(n*0.75) of the sorted values, with no
// interpolation. It returns false if there are fewer than MinRecords values.
func Compute(values []float64) (Fences, bool) {
	if len(values) < MinRecords {
		return Fences{}, false
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	n := float64(len(sorted))
	q1 := sorted[int(math.Floor(n*0.25))]
	q3 := sorted[int(math.Floor(n*0.75))]
	iqr := q3 - q1
	return Fences{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - fenceFactor*iqr,
		Upper: q3 + fenceFactor*iqr,
	}, true
}

// Outside reports whether v falls strictly outside the fences.
func (f Fences) Outside(v float64) bool {
	return v < f.Lower || v > f.Upper
}

// Analyze scans data for records whose metric value falls strictly outside
// the IQR fences. Each ward is listed once, in order of first appearance.
func Analyze(data []ward.Record, metric ward.Metric) Result {
	res := Result{Metric: metric, Wards: []string{}}

	values := make([]float64, len(data))
	for i, r := range data {
		values[i] = metric.Value(r)
	}
	fences, ok := Compute(values)
	if !ok {
		return res
	}
	res.Fences = &fences

	seen := make(map[string]bool)
	for i, r := range data {
		if !fences.Outside(values[i]) || seen[r.Ward] {
			continue
		}
		seen[r.Ward] = true
		res.Wards = append(res.Wards, r.Ward)
	}
	return res
}

// Detect returns the names of wards with an anomalous metric value.
// Fewer than MinRecords records yield an empty result.
func Detect(data []ward.Record, metric ward.Metric) []string {
	return Analyze(data, metric).Wards
}
