package validation

import (
	"fmt"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// Ranges offered by the dashboard's scenario controls.
const (
	MaxGrowthRate = 10.0
	MaxInvestment = 20.0
	MaxPolicy     = 100.0
)

// ValidateRecords checks a dataset for values the engine does not guard
// against. Records are never modified.
func ValidateRecords(records []ward.Record) *Report {
	r := NewReport()

	if len(records) == 0 {
		r.AddWarning(Result{
			Level:    LevelRecord,
			Message:  "dataset contains no records",
			Path:     "records",
			Expected: "at least 1 record",
		})
		return r
	}

	seen := make(map[string]int, len(records))
	for i, rec := range records {
		validateWardName(i, rec, r)
		validateCounts(i, rec, r)
		validateHappiness(i, rec, r)
		validateTotal(i, rec, r)

		key := fmt.Sprintf("%s/%d", rec.Ward, rec.Year)
		if first, dup := seen[key]; dup {
			r.AddWarning(Result{
				Level:        LevelRecord,
				Ward:         rec.Ward,
				Year:         rec.Year,
				Message:      fmt.Sprintf("duplicate record for %s in %d", rec.Ward, rec.Year),
				Path:         fmt.Sprintf("records[%d]", i),
				ConflictWith: fmt.Sprintf("records[%d]", first),
				Suggestions:  []string{"Keep one record per ward and year; forecasts keep the first"},
			})
			continue
		}
		seen[key] = i
	}

	return r
}

func validateWardName(i int, rec ward.Record, r *Report) {
	if rec.Ward == "" {
		r.AddError(Result{
			Level:    LevelRecord,
			Year:     rec.Year,
			Message:  fmt.Sprintf("records[%d]: ward name is empty", i),
			Path:     fmt.Sprintf("records[%d].Ward", i),
			Expected: "non-empty name",
		})
	}
}

func validateCounts(i int, rec ward.Record, r *Report) {
	counts := []struct {
		field string
		value int
	}{
		{"Population", rec.Population},
		{"Theatres", rec.Theatres},
		{"Malls", rec.Malls},
		{"Parks", rec.Parks},
		{"Gardens", rec.Gardens},
		{"Auditoriums", rec.Auditoriums},
		{"TotalInfrastructure", rec.TotalInfrastructure},
	}
	for _, c := range counts {
		if c.value < 0 {
			r.AddError(Result{
				Level:       LevelRecord,
				Ward:        rec.Ward,
				Year:        rec.Year,
				Message:     fmt.Sprintf("records[%d] (%s): %s must be non-negative", i, rec.Ward, c.field),
				Path:        fmt.Sprintf("records[%d].%s", i, c.field),
				ActualValue: c.value,
				Expected:    ">= 0",
			})
		}
	}
}

func validateHappiness(i int, rec ward.Record, r *Report) {
	if rec.HappinessIndex < 0 || rec.HappinessIndex > 10 {
		r.AddWarning(Result{
			Level:       LevelRecord,
			Ward:        rec.Ward,
			Year:        rec.Year,
			Message:     fmt.Sprintf("records[%d] (%s): happiness index %.1f is outside [0, 10]", i, rec.Ward, rec.HappinessIndex),
			Path:        fmt.Sprintf("records[%d].HappinessIndex", i),
			ActualValue: rec.HappinessIndex,
			Expected:    "0-10",
		})
	}
}

func validateTotal(i int, rec ward.Record, r *Report) {
	if sum := rec.FacilitySum(); sum != rec.TotalInfrastructure {
		r.AddInfo(Result{
			Level:        LevelRecord,
			Ward:         rec.Ward,
			Year:         rec.Year,
			Message:      fmt.Sprintf("records[%d] (%s): total infrastructure %d differs from facility sum %d", i, rec.Ward, rec.TotalInfrastructure, sum),
			Path:         fmt.Sprintf("records[%d].TotalInfrastructure", i),
			ActualValue:  rec.TotalInfrastructure,
			ConflictWith: fmt.Sprintf("facility sum %d", sum),
		})
	}
}

// ValidateScenario checks scenario parameters. Negative rates and a policy
// effectiveness outside [0, 100] are errors; rates beyond the dashboard's
// control ranges are warnings.
func ValidateScenario(s ward.Scenario) *Report {
	r := NewReport()

	validateRate(r, "populationGrowthRate", s.PopulationGrowthRate, MaxGrowthRate)
	validateRate(r, "infrastructureInvestment", s.InfrastructureInvestment, MaxInvestment)

	if s.PolicyEffectiveness < 0 || s.PolicyEffectiveness > MaxPolicy {
		r.AddError(Result{
			Level:       LevelScenario,
			Message:     fmt.Sprintf("policy effectiveness %.1f%% is outside [0, 100]", s.PolicyEffectiveness),
			Path:        "policyEffectiveness",
			ActualValue: s.PolicyEffectiveness,
			Expected:    "0-100",
		})
	}

	return r
}

func validateRate(r *Report, path string, value, limit float64) {
	if value < 0 {
		r.AddError(Result{
			Level:       LevelScenario,
			Message:     fmt.Sprintf("%s must be non-negative", path),
			Path:        path,
			ActualValue: value,
			Expected:    ">= 0",
		})
		return
	}
	if value > limit {
		r.AddWarning(Result{
			Level:       LevelScenario,
			Message:     fmt.Sprintf("%s %.1f%% exceeds the usual range of 0-%.0f%%", path, value, limit),
			Path:        path,
			ActualValue: value,
			Expected:    fmt.Sprintf("0-%.0f", limit),
		})
	}
}
