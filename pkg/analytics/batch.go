package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/forecast"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// ForecastScenarios forecasts history under each scenario concurrently, at
// most limit at a time (unbounded when limit <= 0). Results are in scenario
// order. It stops early and returns the context's error when ctx is done.
func ForecastScenarios(ctx context.Context, f *forecast.Forecaster, history []ward.Record, scenarios []ward.Scenario, limit int) ([][]ward.Record, error) {
	results := make([][]ward.Record, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, s := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = f.Forecast(history, s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
