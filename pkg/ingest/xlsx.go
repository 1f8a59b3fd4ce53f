package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// ParseXLSX reads the first worksheet of a workbook whose first row is a header.
func ParseXLSX(r io.Reader) ([]ward.Record, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("parsing XLSX: %w", ErrEmpty)
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parsing XLSX: %w", ErrEmpty)
	}

	records, err := decodeRows(rows[0], rows[1:])
	if err != nil {
		return nil, fmt.Errorf("parsing XLSX sheet %q: %w", sheets[0], err)
	}
	return records, nil
}
