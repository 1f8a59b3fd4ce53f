package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// ParseJSON reads a JSON array of records using the dashboard's field names.
func ParseJSON(r io.Reader) ([]ward.Record, error) {
	var records []ward.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return records, nil
}
