package forecast

import (
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

func shivajinagar() ward.Record {
	return ward.Record{
		Ward:                "Shivajinagar",
		Population:          195000,
		Theatres:            3,
		Malls:               3,
		Parks:               9,
		Gardens:             4,
		Auditoriums:         0,
		TotalInfrastructure: 19,
		HappinessIndex:      6.4,
		Year:                2021,
	}
}

func defaultScenario() ward.Scenario {
	return ward.Scenario{
		Year:                     2031,
		PopulationGrowthRate:     2.0,
		InfrastructureInvestment: 5.0,
		PolicyEffectiveness:      70.0,
	}
}

func TestForecastShivajinagar(t *testing.T) {
	f := New(Quiet)
	got := f.Forecast([]ward.Record{shivajinagar()}, defaultScenario())
	if len(got) != 1 {
		t.Fatalf("forecast count = %d, want 1", len(got))
	}
	r := got[0]

	if r.Year != 2031 {
		t.Errorf("year = %d, want 2031", r.Year)
	}
	// 195000 * 1.02^10 = 237703.9
	if r.Population != 237704 {
		t.Errorf("population = %d, want 237704", r.Population)
	}
	// round(10 * 0.05 * 1.70) = 1
	if r.TotalInfrastructure != 20 {
		t.Errorf("total infrastructure = %d, want 20", r.TotalInfrastructure)
	}
	// A delta of 1 floors to 0 for every facility type.
	if r.Parks != 9 || r.Gardens != 4 || r.Theatres != 3 || r.Malls != 3 || r.Auditoriums != 0 {
		t.Errorf("facilities changed: %+v", r)
	}
	if r.HappinessIndex < 1 || r.HappinessIndex > 10 {
		t.Errorf("happiness = %v, want within [1, 10]", r.HappinessIndex)
	}
	if r.HappinessIndex != 4.3 {
		t.Errorf("happiness = %v, want 4.3 with zero noise", r.HappinessIndex)
	}
}

func TestForecastNoiseBounds(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want float64
	}{
		{"low", Fixed(0), 4.1},
		{"zero", Quiet, 4.3},
		{"high", Fixed(1), 4.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.src).Forecast([]ward.Record{shivajinagar()}, defaultScenario())
			if got[0].HappinessIndex != tt.want {
				t.Errorf("happiness = %v, want %v", got[0].HappinessIndex, tt.want)
			}
		})
	}
}

func TestForecastIdentityWhenNotInFuture(t *testing.T) {
	base := shivajinagar()
	for _, year := range []int{2021, 2015, 1981} {
		s := defaultScenario()
		s.Year = year
		got := New(nil).Forecast([]ward.Record{base}, s)
		if len(got) != 1 {
			t.Fatalf("year %d: forecast count = %d, want 1", year, len(got))
		}
		if diff := cmp.Diff(base, got[0]); diff != "" {
			t.Errorf("year %d: base record changed (-want +got):\n%s", year, diff)
		}
	}
}

func TestForecastPopulationMonotonic(t *testing.T) {
	base := shivajinagar()
	for _, rate := range []float64{0, 0.5, 2, 10} {
		for _, year := range []int{2022, 2030, 2051} {
			s := ward.Scenario{Year: year, PopulationGrowthRate: rate}
			r := New(Quiet).Forecast([]ward.Record{base}, s)[0]
			if r.Population < base.Population {
				t.Errorf("rate %v year %d: population %d < base %d", rate, year, r.Population, base.Population)
			}
		}
	}
}

func TestForecastLatestRecordWins(t *testing.T) {
	history := []ward.Record{
		{Ward: "Kothrud", Population: 42000, TotalInfrastructure: 6, Year: 1981},
		{Ward: "Aundh", Population: 30000, TotalInfrastructure: 4, Year: 2001},
		{Ward: "Kothrud", Population: 120000, TotalInfrastructure: 15, Year: 2011},
		{Ward: "Kothrud", Population: 90000, TotalInfrastructure: 10, Year: 2001},
	}
	// Every latest record is at or after the target year, so none is projected.
	s := ward.Scenario{Year: 2001}
	got := New(Quiet).Forecast(history, s)

	want := []ward.Record{history[2], history[1]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("latest records mismatch (-want +got):\n%s", diff)
	}
}

func TestForecastSelectedWards(t *testing.T) {
	history := []ward.Record{
		{Ward: "Kothrud", Population: 42000, Year: 2011},
		{Ward: "Aundh", Population: 30000, Year: 2011},
		{Ward: "Baner", Population: 25000, Year: 2011},
	}
	s := ward.Scenario{Year: 2021, SelectedWards: []string{"Baner", "Kothrud"}}
	got := New(Quiet).Forecast(history, s)
	if len(got) != 2 {
		t.Fatalf("forecast count = %d, want 2", len(got))
	}
	if got[0].Ward != "Kothrud" || got[1].Ward != "Baner" {
		t.Errorf("wards = [%s %s], want [Kothrud Baner]", got[0].Ward, got[1].Ward)
	}

	s.SelectedWards = []string{"Unknown"}
	if got := New(Quiet).Forecast(history, s); len(got) != 0 {
		t.Errorf("forecast for unknown ward = %d records, want 0", len(got))
	}
}

func TestForecastInfrastructureDrift(t *testing.T) {
	base := ward.Record{Ward: "Hadapsar", Population: 100000, Parks: 2, Gardens: 2, Theatres: 1, Malls: 1, Auditoriums: 1, TotalInfrastructure: 7, Year: 2011}
	s := ward.Scenario{Year: 2031, InfrastructureInvestment: 20, PolicyEffectiveness: 100}
	r := New(Quiet).Forecast([]ward.Record{base}, s)[0]

	// round(20 * 0.20 * 2.0) = 8; floored shares are 1, 1, 2, 1, 1.
	if r.TotalInfrastructure != 15 {
		t.Errorf("total infrastructure = %d, want 15", r.TotalInfrastructure)
	}
	if r.Theatres != 2 || r.Malls != 2 || r.Parks != 4 || r.Gardens != 3 || r.Auditoriums != 2 {
		t.Errorf("facilities = %+v, want theatres 2 malls 2 parks 4 gardens 3 auditoriums 2", r)
	}
	if r.FacilitySum() == r.TotalInfrastructure {
		t.Errorf("facility sum %d should drift from total %d", r.FacilitySum(), r.TotalInfrastructure)
	}
}

func TestForecastHappinessClamped(t *testing.T) {
	green := ward.Record{Ward: "Green", Population: 1000, Parks: 100, Gardens: 100, TotalInfrastructure: 200, Year: 2011}
	empty := ward.Record{Ward: "Empty", Population: 0, Year: 2011}
	s := ward.Scenario{Year: 2021, PolicyEffectiveness: 100}

	got := New(Fixed(1)).Forecast([]ward.Record{green, empty}, s)
	if got[0].HappinessIndex != 10 {
		t.Errorf("green happiness = %v, want 10", got[0].HappinessIndex)
	}
	if got[1].HappinessIndex != 1 {
		t.Errorf("zero-population happiness = %v, want 1", got[1].HappinessIndex)
	}
	if math.IsNaN(got[1].HappinessIndex) {
		t.Error("zero-population happiness is NaN")
	}
}

func TestForecastDoesNotMutateInput(t *testing.T) {
	history := []ward.Record{shivajinagar()}
	before := history[0]
	New(nil).Forecast(history, defaultScenario())
	if diff := cmp.Diff(before, history[0]); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestForecastRandomNoiseInRange(t *testing.T) {
	f := New(Seeded(42))
	quiet := New(Quiet).Forecast([]ward.Record{shivajinagar()}, defaultScenario())[0].HappinessIndex
	for i := 0; i < 200; i++ {
		h := f.Forecast([]ward.Record{shivajinagar()}, defaultScenario())[0].HappinessIndex
		if math.Abs(h-quiet) > 0.35 {
			t.Fatalf("happiness %v strays more than the noise amplitude from %v", h, quiet)
		}
	}
}

func TestSeededReproducible(t *testing.T) {
	a := New(Seeded(7)).Forecast([]ward.Record{shivajinagar()}, defaultScenario())
	b := New(Seeded(7)).Forecast([]ward.Record{shivajinagar()}, defaultScenario())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("seeded forecasts differ (-a +b):\n%s", diff)
	}
}

func TestForecasterConcurrentUse(t *testing.T) {
	f := New(Seeded(1))
	history := []ward.Record{shivajinagar()}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := f.Forecast(history, defaultScenario()); len(got) != 1 {
				t.Errorf("forecast count = %d, want 1", len(got))
			}
		}()
	}
	wg.Wait()
}

func TestProjectRoundsStoredHappiness(t *testing.T) {
	// With a population of 1 and no facilities every factor is 0, so the
	// happiness index equals the noise term before rounding.
	base := ward.Record{Ward: "Tiny", Population: 1, Year: 2020}
	s := ward.Scenario{Year: 2030}

	tests := []struct {
		noise float64
		want  float64
	}{
		{1.45, 1.4},
		{4.35, 4.3},
		{2.35, 2.4},
		{8.15, 8.2},
	}
	for _, tt := range tests {
		if got := Project(base, s, tt.noise).HappinessIndex; got != tt.want {
			t.Errorf("noise %v: happiness = %v, want %v", tt.noise, got, tt.want)
		}
	}
}
