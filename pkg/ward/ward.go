package ward

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadScenario reads forecast scenario parameters from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}

	return &s, nil
}

// LoadProjectScenario loads scenario.yaml from a project directory.
func LoadProjectScenario(projectDir string) (*Scenario, error) {
	return LoadScenario(filepath.Join(projectDir, "scenario.yaml"))
}

// Wards returns the distinct ward names in order of first appearance.
func Wards(records []Record) []string {
	seen := make(map[string]bool, len(records))
	names := make([]string, 0, len(records))
	for _, r := range records {
		if seen[r.Ward] {
			continue
		}
		seen[r.Ward] = true
		names = append(names, r.Ward)
	}
	return names
}

// Filter returns the records for which keep reports true.
func Filter(records []Record, keep func(Record) bool) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
