package ingest

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

var (
	// ErrUnsupportedFormat is returned for file extensions with no parser.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoWardColumn is returned when the header has no ward column.
	ErrNoWardColumn = errors.New("missing Ward column")
	// ErrEmpty is returned when the input has no header row.
	ErrEmpty = errors.New("no header row")
)

// LoadFile parses the file at path, choosing a parser by extension.
func LoadFile(path string) ([]ward.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return Parse(filepath.Base(path), f)
}

// Parse reads records from r, choosing a parser from name's extension:
// .csv, .xlsx or .json.
//
// Numeric cells are coerced: missing or unparseable values become 0 and
// fractional counts are rounded. The ward name is passed through unchanged.
// Any structural problem fails the whole file; no partial result is returned.
func Parse(name string, r io.Reader) ([]ward.Record, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx":
		return ParseXLSX(r)
	case ".json":
		return ParseJSON(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// column identifies which record field a header cell feeds.
type column int

const (
	colIgnored column = iota
	colWard
	colPopulation
	colTheatres
	colMalls
	colParks
	colGardens
	colAuditoriums
	colTotal
	colHappiness
	colYear
)

var headerNames = map[string]column{
	"ward":                colWard,
	"population":          colPopulation,
	"theatres":            colTheatres,
	"theaters":            colTheatres,
	"malls":               colMalls,
	"parks":               colParks,
	"gardens":             colGardens,
	"auditoriums":         colAuditoriums,
	"totalinfrastructure": colTotal,
	"happinessindex":      colHappiness,
	"year":                colYear,
}

// decodeRows maps a header row and data rows onto records. Rows whose cells
// are all blank are skipped.
func decodeRows(header []string, rows [][]string) ([]ward.Record, error) {
	if len(header) == 0 {
		return nil, ErrEmpty
	}
	cols := make([]column, len(header))
	hasWard := false
	for i, h := range header {
		cols[i] = headerNames[normalizeHeader(h)]
		if cols[i] == colWard {
			hasWard = true
		}
	}
	if !hasWard {
		return nil, fmt.Errorf("%w in header %v", ErrNoWardColumn, header)
	}

	records := make([]ward.Record, 0, len(rows))
	for _, row := range rows {
		if blank(row) {
			continue
		}
		var rec ward.Record
		for i, cell := range row {
			if i >= len(cols) {
				break
			}
			assign(&rec, cols[i], cell)
		}
		records = append(records, rec)
	}
	return records, nil
}

func assign(rec *ward.Record, col column, cell string) {
	switch col {
	case colWard:
		rec.Ward = cell
	case colPopulation:
		rec.Population = toInt(cell)
	case colTheatres:
		rec.Theatres = toInt(cell)
	case colMalls:
		rec.Malls = toInt(cell)
	case colParks:
		rec.Parks = toInt(cell)
	case colGardens:
		rec.Gardens = toInt(cell)
	case colAuditoriums:
		rec.Auditoriums = toInt(cell)
	case colTotal:
		rec.TotalInfrastructure = toInt(cell)
	case colHappiness:
		rec.HappinessIndex = toFloat(cell)
	case colYear:
		rec.Year = toInt(cell)
	}
}

func toFloat(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// toInt rounds a numeric cell to the nearest integer. Values outside the int
// range are treated as unparseable.
func toInt(cell string) int {
	v := math.Round(toFloat(cell))
	if v < math.MinInt || v >= math.MaxInt {
		return 0
	}
	return int(v)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(h)))
}
