package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanyamj894/ward-wise-insights-dash/internal/config"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

func newFlagCmd(sf *scenarioFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	sf.register(cmd)
	return cmd
}

func TestResolveKeepsBaseWithoutFlags(t *testing.T) {
	var sf scenarioFlags
	cmd := newFlagCmd(&sf)
	require.NoError(t, cmd.ParseFlags(nil))

	base := config.Default().Scenario
	got, err := sf.resolve(cmd, base)
	require.NoError(t, err)
	assert.Equal(t, base, got)
}

func TestResolveExplicitFlagsOverride(t *testing.T) {
	var sf scenarioFlags
	cmd := newFlagCmd(&sf)
	require.NoError(t, cmd.ParseFlags([]string{"--year", "2041", "--growth", "0", "--wards", "Aundh,Kothrud"}))

	got, err := sf.resolve(cmd, config.Default().Scenario)
	require.NoError(t, err)
	assert.Equal(t, 2041, got.Year)
	assert.Equal(t, 0.0, got.PopulationGrowthRate)
	assert.Equal(t, 5.0, got.InfrastructureInvestment)
	assert.Equal(t, 70.0, got.PolicyEffectiveness)
	assert.Equal(t, []string{"Aundh", "Kothrud"}, got.SelectedWards)
}

func TestResolveScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("year: 2026\npopulation_growth_rate: 1.5\npolicy_effectiveness: 40\n"), 0o644))

	var sf scenarioFlags
	cmd := newFlagCmd(&sf)
	require.NoError(t, cmd.ParseFlags([]string{"--scenario", path, "--policy", "90"}))

	got, err := sf.resolve(cmd, config.Default().Scenario)
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year)
	assert.Equal(t, 1.5, got.PopulationGrowthRate)
	assert.Equal(t, 0.0, got.InfrastructureInvestment)
	assert.Equal(t, 90.0, got.PolicyEffectiveness)
}

func TestResolveScenarioDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scenario.yaml"), []byte("year: 2036\nselected_wards: [Aundh]\n"), 0o644))

	var sf scenarioFlags
	cmd := newFlagCmd(&sf)
	require.NoError(t, cmd.ParseFlags([]string{"--scenario", dir}))

	got, err := sf.resolve(cmd, config.Default().Scenario)
	require.NoError(t, err)
	assert.Equal(t, 2036, got.Year)
	assert.Equal(t, []string{"Aundh"}, got.SelectedWards)
}

func TestResolveMissingScenarioFile(t *testing.T) {
	var sf scenarioFlags
	cmd := newFlagCmd(&sf)
	require.NoError(t, cmd.ParseFlags([]string{"--scenario", filepath.Join(t.TempDir(), "nope.yaml")}))

	_, err := sf.resolve(cmd, ward.Scenario{})
	assert.ErrorContains(t, err, "loading scenario")
}

func TestSeededForecasterIsReproducible(t *testing.T) {
	history := []ward.Record{{Ward: "Aundh", Population: 50000, Parks: 4, TotalInfrastructure: 4, HappinessIndex: 6, Year: 2021}}
	s := config.Default().Scenario

	a := newForecaster(true, 42).Forecast(history, s)
	b := newForecaster(true, 42).Forecast(history, s)
	assert.Equal(t, a, b)
}

func TestAnalysisOptions(t *testing.T) {
	a := &app{cfg: config.Default()}

	cmd := &cobra.Command{Use: "test"}
	var metric string
	var threshold float64
	cmd.Flags().StringVar(&metric, "metric", "", "")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "")
	require.NoError(t, cmd.ParseFlags([]string{"--metric", "total-infrastructure", "--threshold", "7.5"}))

	opts, err := a.analysisOptions(cmd, metric, threshold)
	require.NoError(t, err)
	assert.Equal(t, ward.MetricTotalInfrastructure, opts.Metric)
	assert.Equal(t, 7.5, opts.HappinessThreshold)

	require.NoError(t, cmd.ParseFlags([]string{"--metric", "rainfall"}))
	_, err = a.analysisOptions(cmd, metric, threshold)
	assert.ErrorIs(t, err, ward.ErrUnknownMetric)
}
