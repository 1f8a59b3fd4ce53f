package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/forecast"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// scenarioFlags are the command-line overrides for a forecast scenario.
type scenarioFlags struct {
	file       string
	year       int
	growth     float64
	investment float64
	policy     float64
	wards      []string
	seed       uint64
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "scenario", "s", "", "scenario file (YAML)")
	cmd.Flags().IntVarP(&f.year, "year", "y", 0, "target year")
	cmd.Flags().Float64Var(&f.growth, "growth", 0, "annual population growth rate, percent")
	cmd.Flags().Float64Var(&f.investment, "investment", 0, "annual infrastructure investment rate, percent")
	cmd.Flags().Float64Var(&f.policy, "policy", 0, "policy effectiveness, 0-100")
	cmd.Flags().StringSliceVarP(&f.wards, "wards", "w", nil, "wards to include (default all)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed the forecast noise for a reproducible run")
}

// resolve layers the scenario: base (from config), then the scenario file,
// then any flags set explicitly. A directory given as the scenario file is
// read for its scenario.yaml.
func (f *scenarioFlags) resolve(cmd *cobra.Command, base ward.Scenario) (ward.Scenario, error) {
	s := base
	if f.file != "" {
		load := ward.LoadScenario
		if info, err := os.Stat(f.file); err == nil && info.IsDir() {
			load = ward.LoadProjectScenario
		}
		loaded, err := load(f.file)
		if err != nil {
			return ward.Scenario{}, fmt.Errorf("loading scenario: %w", err)
		}
		s = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("year") {
		s.Year = f.year
	}
	if flags.Changed("growth") {
		s.PopulationGrowthRate = f.growth
	}
	if flags.Changed("investment") {
		s.InfrastructureInvestment = f.investment
	}
	if flags.Changed("policy") {
		s.PolicyEffectiveness = f.policy
	}
	if flags.Changed("wards") {
		s.SelectedWards = f.wards
	}
	return s, nil
}

func (f *scenarioFlags) forecaster(cmd *cobra.Command) *forecast.Forecaster {
	return newForecaster(cmd.Flags().Changed("seed"), f.seed)
}

func newForecaster(seeded bool, seed uint64) *forecast.Forecaster {
	if seeded {
		return forecast.New(forecast.Seeded(seed))
	}
	return forecast.New(nil)
}
