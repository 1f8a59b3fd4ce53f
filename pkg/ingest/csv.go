package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// ParseCSV reads a comma-separated file whose first row is a header.
// Rows may have fewer or more cells than the header.
func ParseCSV(r io.Reader) ([]ward.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing CSV: %w", ErrEmpty)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	records, err := decodeRows(header, rows)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	return records, nil
}
