package ward

// Record is one observation of a ward in a year.
type Record struct {
	Ward                string  `yaml:"ward" json:"Ward"`
	Population          int     `yaml:"population" json:"Population"`
	Theatres            int     `yaml:"theatres" json:"Theatres"`
	Malls               int     `yaml:"malls" json:"Malls"`
	Parks               int     `yaml:"parks" json:"Parks"`
	Gardens             int     `yaml:"gardens" json:"Gardens"`
	Auditoriums         int     `yaml:"auditoriums" json:"Auditoriums"`
	TotalInfrastructure int     `yaml:"total_infrastructure" json:"TotalInfrastructure"`
	HappinessIndex      float64 `yaml:"happiness_index" json:"HappinessIndex"`
	Year                int     `yaml:"year" json:"Year"`
}

// FacilityCount returns the count for one facility type.
func (r Record) FacilityCount(f Facility) int {
	switch f {
	case Parks:
		return r.Parks
	case Theatres:
		return r.Theatres
	case Malls:
		return r.Malls
	case Gardens:
		return r.Gardens
	case Auditoriums:
		return r.Auditoriums
	}
	return 0
}

// FacilitySum is the sum of the five facility counts. It is not required to
// equal TotalInfrastructure.
func (r Record) FacilitySum() int {
	return r.Parks + r.Theatres + r.Malls + r.Gardens + r.Auditoriums
}

// Scenario holds the inputs of a forecast run.
type Scenario struct {
	Year                     int      `yaml:"year" json:"year" toml:"year"`
	PopulationGrowthRate     float64  `yaml:"population_growth_rate" json:"populationGrowthRate" toml:"population_growth_rate"`
	InfrastructureInvestment float64  `yaml:"infrastructure_investment" json:"infrastructureInvestment" toml:"infrastructure_investment"`
	PolicyEffectiveness      float64  `yaml:"policy_effectiveness" json:"policyEffectiveness" toml:"policy_effectiveness"`
	SelectedWards            []string `yaml:"selected_wards" json:"selectedWards" toml:"selected_wards"`
}

// Selects reports whether the scenario includes the named ward.
// An empty selection includes every ward.
func (s Scenario) Selects(name string) bool {
	if len(s.SelectedWards) == 0 {
		return true
	}
	for _, w := range s.SelectedWards {
		if w == name {
			return true
		}
	}
	return false
}

// ErrorMetrics aggregates prediction error over matched (ward, year) pairs.
type ErrorMetrics struct {
	RMSE    float64 `json:"rmse"`
	MAE     float64 `json:"mae"`
	MAPE    float64 `json:"mape"`
	Matched int     `json:"matched"`
}

// Profile maps each facility type to its benchmark count per 10,000 residents.
type Profile map[Facility]float64

// ZeroProfile returns a profile with every facility type set to 0.
func ZeroProfile() Profile {
	p := make(Profile, len(Facilities))
	for _, f := range Facilities {
		p[f] = 0
	}
	return p
}
