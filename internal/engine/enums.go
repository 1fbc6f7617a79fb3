package engine

// String backed enums for DB and JSON interoperability.

type PathogenKind string
type DrugKind string
type Tier string
type MovementPolicy string
type HealthKind string

const (
	PathogenSeasonalFlu PathogenKind = "seasonal_flu"
	PathogenSARSCoV2    PathogenKind = "sars_cov_2"
	PathogenCholera     PathogenKind = "cholera"
)

var AllPathogenKinds = []PathogenKind{PathogenSeasonalFlu, PathogenSARSCoV2, PathogenCholera}

const (
	DrugAspirin              DrugKind = "aspirin"
	DrugIbuprofen            DrugKind = "ibuprofen"
	DrugGlucose              DrugKind = "glucose"
	DrugRehydron             DrugKind = "rehydron"
	DrugPlacebo              DrugKind = "placebo"
	DrugAntivirusSeasonalFlu DrugKind = "antivirus_seasonal_flu"
	DrugAntivirusSARSCoV2    DrugKind = "antivirus_sars_cov_2"
	DrugAntivirusCholera     DrugKind = "antivirus_cholera"
)

var AllDrugKinds = []DrugKind{DrugAspirin, DrugIbuprofen, DrugGlucose, DrugRehydron, DrugPlacebo, DrugAntivirusSeasonalFlu, DrugAntivirusSARSCoV2, DrugAntivirusCholera}

const (
	TierCheap     Tier = "cheap"
	TierExpensive Tier = "expensive"
)

var AllTiers = []Tier{TierCheap, TierExpensive}

const (
	MovementRoaming   MovementPolicy = "roaming"
	MovementCommunity MovementPolicy = "community"
)

var AllMovementPolicies = []MovementPolicy{MovementRoaming, MovementCommunity}

const (
	HealthHealthy      HealthKind = "healthy"
	HealthAsymptomatic HealthKind = "asymptomatic"
	HealthSymptomatic  HealthKind = "symptomatic"
	HealthDead         HealthKind = "dead"
)

var AllHealthKinds = []HealthKind{HealthHealthy, HealthAsymptomatic, HealthSymptomatic, HealthDead}

// Generic helpers
func contains[T ~string](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func (k PathogenKind) Validate() bool   { return contains(AllPathogenKinds, k) }
func (d DrugKind) Validate() bool       { return contains(AllDrugKinds, d) }
func (t Tier) Validate() bool           { return contains(AllTiers, t) }
func (m MovementPolicy) Validate() bool { return contains(AllMovementPolicies, m) }
func (h HealthKind) Validate() bool     { return contains(AllHealthKinds, h) }

// List helpers
func ListPathogenKinds() []PathogenKind { return append([]PathogenKind{}, AllPathogenKinds...) }
func ListTiers() []Tier                 { return append([]Tier{}, AllTiers...) }

// Label returns a human readable name used by reports.
func (k PathogenKind) Label() string {
	switch k {
	case PathogenSeasonalFlu:
		return "Seasonal flu"
	case PathogenSARSCoV2:
		return "SARS-CoV-2"
	case PathogenCholera:
		return "Cholera"
	}
	return string(k)
}

func invalidKind[T ~string](what string, v T) {
	panic("invalid " + what + " kind: " + string(v))
}
