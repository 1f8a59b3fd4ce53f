package validation

import (
	"errors"
	"fmt"
	"slices"
)

// Level indicates which check produced a finding.
type Level string

const (
	// LevelRecord findings come from a single dataset row.
	LevelRecord Level = "record"
	// LevelScenario findings come from forecast parameters.
	LevelScenario Level = "scenario"
	// LevelAnalytical findings explain degenerate analysis results.
	LevelAnalytical Level = "analytical"
)

// Severity indicates how critical a finding is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ErrInvalid is wrapped by Report.Err when a report holds errors.
var ErrInvalid = errors.New("validation failed")

// Result is a single finding. Ward and Year locate record findings in the
// dataset and are empty for scenario-wide ones.
type Result struct {
	Level        Level    `json:"level"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	Path         string   `json:"path"`
	Ward         string   `json:"ward,omitempty"`
	Year         int      `json:"year,omitempty"`
	ActualValue  any      `json:"actual_value,omitempty"`
	Expected     string   `json:"expected,omitempty"`
	ConflictWith string   `json:"conflict_with,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

// Report collects findings by severity. Only errors make it invalid.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	r := &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
	r.updateSummary()
	return r
}

// AddError adds an error finding and marks the report invalid.
func (r *Report) AddError(result Result) { r.add(SeverityError, result) }

// AddWarning adds a warning finding.
func (r *Report) AddWarning(result Result) { r.add(SeverityWarning, result) }

// AddInfo adds an informational finding.
func (r *Report) AddInfo(result Result) { r.add(SeverityInfo, result) }

func (r *Report) add(sev Severity, result Result) {
	result.Severity = sev
	switch sev {
	case SeverityError:
		r.Errors = append(r.Errors, result)
		r.Valid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, result)
	default:
		r.Info = append(r.Info, result)
	}
	r.updateSummary()
}

// Merge appends the findings of other. A nil other is ignored.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	if !other.Valid {
		r.Valid = false
	}
	r.updateSummary()
}

// ByLevel returns the findings produced at level: errors first, then
// warnings, then info.
func (r *Report) ByLevel(level Level) []Result {
	var out []Result
	for _, group := range [][]Result{r.Errors, r.Warnings, r.Info} {
		for _, res := range group {
			if res.Level == level {
				out = append(out, res)
			}
		}
	}
	return out
}

// Wards lists the wards named by any finding, errors first, each once.
func (r *Report) Wards() []string {
	var wards []string
	for _, group := range [][]Result{r.Errors, r.Warnings, r.Info} {
		for _, res := range group {
			if res.Ward != "" && !slices.Contains(wards, res.Ward) {
				wards = append(wards, res.Ward)
			}
		}
	}
	return wards
}

// Err returns nil for a valid report, otherwise an error wrapping ErrInvalid
// that quotes the first error.
func (r *Report) Err() error {
	if r.Valid {
		return nil
	}
	if len(r.Errors) == 0 {
		return ErrInvalid
	}
	if n := len(r.Errors) - 1; n > 0 {
		return fmt.Errorf("%w: %s (and %d more)", ErrInvalid, r.Errors[0].Message, n)
	}
	return fmt.Errorf("%w: %s", ErrInvalid, r.Errors[0].Message)
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}
