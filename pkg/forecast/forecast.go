package forecast

import (
	"math"
	"sync"

	"github.com/sanyamj894/ward-wise-insights-dash/internal/round"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// Share of new infrastructure assigned to each facility type. Per-type deltas
// are floored independently, so they need not add up to the total delta.
const (
	theatreWeight    = 0.20
	mallWeight       = 0.15
	parkWeight       = 0.30
	gardenWeight     = 0.20
	auditoriumWeight = 0.15
)

const (
	minHappiness   = 1.0
	maxHappiness   = 10.0
	noiseAmplitude = 0.25
)

// Forecaster produces scenario forecasts. It is safe for concurrent use.
type Forecaster struct {
	mu  sync.Mutex
	src Source
}

// New returns a Forecaster drawing happiness noise from src.
// A nil src uses the process-wide random generator.
func New(src Source) *Forecaster {
	if src == nil {
		src = globalSource{}
	}
	return &Forecaster{src: src}
}

// Forecast returns one record per ward in the scenario's selection, projected
// to s.Year from that ward's latest record. Wards appear in the order they are
// first seen in history. Wards whose latest record is at or after s.Year are
// returned unchanged.
func (f *Forecaster) Forecast(history []ward.Record, s ward.Scenario) []ward.Record {
	bases := Latest(ward.Filter(history, func(r ward.Record) bool { return s.Selects(r.Ward) }))

	out := make([]ward.Record, 0, len(bases))
	for _, base := range bases {
		if s.Year-base.Year <= 0 {
			out = append(out, base)
			continue
		}
		out = append(out, Project(base, s, f.noise()))
	}
	return out
}

func (f *Forecaster) noise() float64 {
	f.mu.Lock()
	u := f.src.Float64()
	f.mu.Unlock()
	return u*2*noiseAmplitude - noiseAmplitude
}

// Latest reduces records to the one with the greatest Year per ward, in order
// of each ward's first appearance. On a Year tie the earlier record is kept.
func Latest(records []ward.Record) []ward.Record {
	index := make(map[string]int, len(records))
	out := make([]ward.Record, 0, len(records))
	for _, r := range records {
		i, ok := index[r.Ward]
		if !ok {
			index[r.Ward] = len(out)
			out = append(out, r)
			continue
		}
		if out[i].Year < r.Year {
			out[i] = r
		}
	}
	return out
}

// Project extrapolates base to s.Year with the given noise term added to the
// happiness index. It does not check that s.Year is after base.Year.
func Project(base ward.Record, s ward.Scenario, noise float64) ward.Record {
	yearDiff := float64(s.Year - base.Year)

	population := float64(base.Population) * math.Pow(1+s.PopulationGrowthRate/100, yearDiff)

	growthRate := (s.InfrastructureInvestment / 100) * (1 + s.PolicyEffectiveness/100)
	growth := int(roundHalfUp(yearDiff * growthRate))

	// TotalInfrastructure grows by the raw delta, not by the sum of the
	// floored per-type shares.
	next := ward.Record{
		Ward:                base.Ward,
		Population:          int(roundHalfUp(population)),
		Theatres:            base.Theatres + share(growth, theatreWeight),
		Malls:               base.Malls + share(growth, mallWeight),
		Parks:               base.Parks + share(growth, parkWeight),
		Gardens:             base.Gardens + share(growth, gardenWeight),
		Auditoriums:         base.Auditoriums + share(growth, auditoriumWeight),
		TotalInfrastructure: base.TotalInfrastructure + growth,
		Year:                s.Year,
	}

	next.HappinessIndex = happiness(population, next, s.PolicyEffectiveness, noise)
	return next
}

// happiness combines population, infrastructure and green-space factors, then
// clamps to [1, 10] and rounds to one decimal.
func happiness(population float64, r ward.Record, policy, noise float64) float64 {
	populationFactor := math.Log10(population) * 0.2
	infrastructureFactor := float64(r.TotalInfrastructure) / math.Sqrt(population) * 15
	greenFactor := float64(r.Parks+r.Gardens) * 0.5

	h := (populationFactor+infrastructureFactor+greenFactor)/10 + policy/20 + noise

	// A zero population makes the factors non-finite.
	if math.IsNaN(h) {
		h = minHappiness
	}
	h = math.Max(minHappiness, math.Min(maxHappiness, h))
	return round.Fixed(h, 1)
}

func share(growth int, weight float64) int {
	return int(math.Floor(float64(growth) * weight))
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
