package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

const header = "Ward,Population,Theatres,Malls,Parks,Gardens,Auditoriums,TotalInfrastructure,HappinessIndex,Year\n"

func TestLoadFileExample(t *testing.T) {
	records, err := LoadFile("../../examples/pune/wards.csv")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(records) != 8 {
		t.Fatalf("records = %d, want 8", len(records))
	}
	last := records[7]
	want := ward.Record{Ward: "Shivajinagar", Population: 195000, Theatres: 3, Malls: 3, Parks: 9, Gardens: 4, TotalInfrastructure: 19, HappinessIndex: 7.8, Year: 2021}
	if last != want {
		t.Errorf("last record = %+v, want %+v", last, want)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/wards.csv"); err == nil {
		t.Error("expected error for missing dataset")
	}
}

func TestParseCSVCoercesNumbers(t *testing.T) {
	input := header +
		"Kothrud,,3,abc,2.6,1,0,6,not-a-number,1981\n" +
		"\n" +
		"Aundh,30000,1\n"
	records, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2 (blank row skipped)", len(records))
	}

	k := records[0]
	if k.Population != 0 {
		t.Errorf("missing population = %d, want 0", k.Population)
	}
	if k.Malls != 0 {
		t.Errorf("unparseable malls = %d, want 0", k.Malls)
	}
	if k.Parks != 3 {
		t.Errorf("fractional parks = %d, want 3", k.Parks)
	}
	if k.HappinessIndex != 0 {
		t.Errorf("unparseable happiness = %v, want 0", k.HappinessIndex)
	}
	if k.Year != 1981 {
		t.Errorf("year = %d, want 1981", k.Year)
	}

	a := records[1]
	if a.Ward != "Aundh" || a.Population != 30000 || a.Theatres != 1 || a.Year != 0 {
		t.Errorf("short row = %+v, want trailing fields defaulted to 0", a)
	}
}

func TestParseCSVOutOfRangeCounts(t *testing.T) {
	input := header + "Hadapsar,1e20,-1e20,9.3e18,2,0,0,2,6.1,1e300\n"
	records, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	r := records[0]
	if r.Population != 0 || r.Theatres != 0 || r.Malls != 0 || r.Year != 0 {
		t.Errorf("out-of-range cells = %+v, want 0 for each", r)
	}
	if r.Parks != 2 || r.HappinessIndex != 6.1 {
		t.Errorf("in-range cells = %+v, want parks 2 happiness 6.1", r)
	}
}

func TestParseCSVHeaderVariants(t *testing.T) {
	input := "\ufeffward, Total Infrastructure ,happiness_index,YEAR,Notes\n" +
		"Baner,12,6.7,2011,new ward\n"
	records, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	r := records[0]
	if r.Ward != "Baner" || r.TotalInfrastructure != 12 || r.HappinessIndex != 6.7 || r.Year != 2011 {
		t.Errorf("record = %+v", r)
	}
}

func TestParseCSVKeepsWardNameVerbatim(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(header + "\"Pune Cantonment \",1,0,0,0,0,0,0,0,1981\n"))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if records[0].Ward != "Pune Cantonment " {
		t.Errorf("ward = %q, want name unchanged", records[0].Ward)
	}
}

func TestParseCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmpty},
		{"no ward column", "Population,Year\n100,1981\n", ErrNoWardColumn},
		{"bad quoting", header + "\"Kothrud,1,2\n\"x\"y,3\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseCSV(strings.NewReader(tt.input))
			if err == nil {
				t.Fatalf("expected error, got %d records", len(records))
			}
			if records != nil {
				t.Errorf("expected no partial result, got %v", records)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Ward", "Population", "Parks", "Gardens", "TotalInfrastructure", "HappinessIndex", "Year"},
		{"Kothrud", 42000, 2, 1, 6, 5.0, 1981},
		{"Aundh", 30000, 1, 1, 3, 6.4, 1991},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	records, err := Parse("wards.xlsx", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Parse xlsx failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[1].Ward != "Aundh" || records[1].HappinessIndex != 6.4 || records[1].Year != 1991 {
		t.Errorf("record = %+v", records[1])
	}
}

func TestParseXLSXNotAWorkbook(t *testing.T) {
	if _, err := ParseXLSX(strings.NewReader("plain text")); err == nil {
		t.Error("expected error for non-workbook input")
	}
}

func TestParseJSON(t *testing.T) {
	input := `[{"Ward":"Kothrud","Population":42000,"Parks":2,"HappinessIndex":5,"Year":1981}]`
	records, err := Parse("wards.JSON", strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse json failed: %v", err)
	}
	if len(records) != 1 || records[0].Population != 42000 {
		t.Errorf("records = %+v", records)
	}

	if _, err := ParseJSON(strings.NewReader(`{"Ward":`)); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestParseUnsupported(t *testing.T) {
	_, err := Parse("wards.parquet", strings.NewReader(""))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}
