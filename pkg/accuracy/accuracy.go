package accuracy

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

type key struct {
	ward string
	year int
}

// Pair is an actual record matched with the prediction for the same ward and year.
type Pair struct {
	Actual    ward.Record
	Predicted ward.Record
}

// Match pairs each actual record with the first predicted record sharing its
// ward and year. Actual records without a prediction are dropped.
func Match(actual, predicted []ward.Record) []Pair {
	index := make(map[key]int, len(predicted))
	for i, p := range predicted {
		k := key{p.Ward, p.Year}
		if _, ok := index[k]; !ok {
			index[k] = i
		}
	}

	pairs := make([]Pair, 0, len(actual))
	for _, a := range actual {
		if i, ok := index[key{a.Ward, a.Year}]; ok {
			pairs = append(pairs, Pair{Actual: a, Predicted: predicted[i]})
		}
	}
	return pairs
}

// Evaluate computes RMSE, MAE and MAPE of predicted against actual for the
// given metric. With no matched pairs every measure is 0.
//
// The percentage error of a pair whose actual value is 0 counts as 0 rather
// than being excluded, which pulls MAPE toward 0 on such datasets.
func Evaluate(actual, predicted []ward.Record, metric ward.Metric) ward.ErrorMetrics {
	pairs := Match(actual, predicted)
	if len(pairs) == 0 {
		return ward.ErrorMetrics{}
	}

	squared := make([]float64, len(pairs))
	absolute := make([]float64, len(pairs))
	percent := make([]float64, len(pairs))
	for i, p := range pairs {
		actualValue := metric.Value(p.Actual)
		e := metric.Value(p.Predicted) - actualValue

		squared[i] = e * e
		absolute[i] = math.Abs(e)
		if actualValue != 0 {
			percent[i] = math.Abs(e/actualValue) * 100
		}
	}

	return ward.ErrorMetrics{
		RMSE:    math.Sqrt(stat.Mean(squared, nil)),
		MAE:     stat.Mean(absolute, nil),
		MAPE:    stat.Mean(percent, nil),
		Matched: len(pairs),
	}
}
