package optimize

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/sanyamj894/ward-wise-insights-dash/internal/round"
	"github.com/sanyamj894/ward-wise-insights-dash/pkg/ward"
)

// TopWards is the number of happiest records used as the benchmark.
const TopWards = 3

// perResidents is the population base of every benchmark ratio.
const perResidents = 10000.0

// Recommend derives a benchmark profile from the happiest records: for each
// facility type, the mean over the top records of each record's own count per
// 10,000 residents, rounded to two decimals. Callers normally pre-filter data
// to records above a happiness threshold.
//
// Empty data yields a zero profile. A top record with zero population
// contributes 0 to every mean.
func Recommend(data []ward.Record) ward.Profile {
	profile := ward.ZeroProfile()
	top := Top(data, TopWards)
	if len(top) == 0 {
		return profile
	}

	terms := make([]float64, len(top))
	for _, f := range ward.Facilities {
		for i, r := range top {
			terms[i] = perCapita(r.FacilityCount(f), r.Population)
		}
		profile[f] = round.Fixed(stat.Mean(terms, nil), 2)
	}
	return profile
}

// Top returns up to n records with the highest happiness index, highest
// first. Records with equal happiness keep their input order.
func Top(data []ward.Record, n int) []ward.Record {
	sorted := slices.Clone(data)
	slices.SortStableFunc(sorted, func(a, b ward.Record) int {
		return cmp.Compare(b.HappinessIndex, a.HappinessIndex)
	})
	return sorted[:min(n, len(sorted))]
}

func perCapita(count, population int) float64 {
	if population == 0 {
		return 0
	}
	return float64(count) / float64(population) * perResidents
}

// Share is one facility's part of the benchmark mix.
type Share struct {
	Facility ward.Facility `json:"facility"`
	Ratio    float64       `json:"ratio"`
	Percent  float64       `json:"percent"`
}

// Mix returns each facility's share of the profile total, largest ratio
// first. Percentages are 0 when the profile total is 0.
func Mix(p ward.Profile) []Share {
	total := 0.0
	for _, f := range ward.Facilities {
		total += p[f]
	}

	shares := make([]Share, 0, len(ward.Facilities))
	for _, f := range ward.Facilities {
		s := Share{Facility: f, Ratio: p[f]}
		if total > 0 {
			s.Percent = p[f] / total * 100
		}
		shares = append(shares, s)
	}
	slices.SortStableFunc(shares, func(a, b Share) int {
		return cmp.Compare(b.Ratio, a.Ratio)
	})
	return shares
}

// Target compares a ward's facility count with the benchmark count for its
// population.
type Target struct {
	Facility ward.Facility `json:"facility"`
	Current  int           `json:"current"`
	Target   float64       `json:"target"`
	Gap      float64       `json:"gap"`
}

// Targets returns, for every facility type, the count r would need to match
// the profile and the signed gap from its current count.
func Targets(r ward.Record, p ward.Profile) []Target {
	out := make([]Target, 0, len(ward.Facilities))
	for _, f := range ward.Facilities {
		want := p[f] * float64(r.Population) / perResidents
		have := r.FacilityCount(f)
		out = append(out, Target{
			Facility: f,
			Current:  have,
			Target:   round.Fixed(want, 2),
			Gap:      round.Fixed(want-float64(have), 2),
		})
	}
	return out
}
