package engine

import "math"

// Drug is a prescribed drug kind with its dose.
type Drug struct {
	Kind DrugKind `json:"kind"`
	Dose float64  `json:"dose"`
}

// drug efficiencies
const (
	aspirinEfficiency           = 0.5
	glucoseEfficiency           = 0.1
	seasonalAntivirusEfficiency = 1.0
	sarsAntivirusEfficiency     = 0.1
	choleraAntivirusEfficiency  = 0.1
	// the seasonal flu antivirus also suppresses SARS-CoV-2 at a tenth of its potency
	seasonalOnSARSFactor = 0.1
)

// Apply mutates the patient's vitals or pathogen strength.
func (d Drug) Apply(p *Person) {
	switch d.Kind {
	case DrugAspirin:
		p.Temperature = math.Max(NormalTemperature, p.Temperature-d.Dose*aspirinEfficiency)
	case DrugIbuprofen:
		if p.Temperature > NormalTemperature {
			p.Temperature = NormalTemperature
		}
	case DrugGlucose:
		p.Water = math.Min(p.Water+d.Dose*glucoseEfficiency, p.NormalWater())
	case DrugRehydron:
		if p.Water < p.NormalWater() {
			p.Water = p.NormalWater()
		}
	case DrugPlacebo:
	case DrugAntivirusSeasonalFlu:
		switch {
		case carries(p, PathogenSeasonalFlu):
			p.Pathogen.Strength -= d.Dose * seasonalAntivirusEfficiency
		case carries(p, PathogenSARSCoV2):
			p.Pathogen.Strength -= d.Dose * seasonalAntivirusEfficiency * seasonalOnSARSFactor
		}
	case DrugAntivirusSARSCoV2:
		if carries(p, PathogenSARSCoV2) {
			p.Pathogen.Strength -= d.Dose * sarsAntivirusEfficiency
		}
	case DrugAntivirusCholera:
		if carries(p, PathogenCholera) {
			p.Pathogen.Strength -= d.Dose * choleraAntivirusEfficiency
		}
	default:
		invalidKind("drug", d.Kind)
	}
}

func carries(p *Person, k PathogenKind) bool {
	return p.Pathogen != nil && p.Pathogen.Kind == k
}

// Catalog maps each treatment slot to a drug kind for one price tier.
type Catalog struct {
	Tier        Tier
	antifever   DrugKind
	rehydration DrugKind
	antivirus   map[PathogenKind]DrugKind
}

var (
	// CheapCatalog uses low efficiency symptom relief and placebo antivirals.
	CheapCatalog = Catalog{
		Tier:        TierCheap,
		antifever:   DrugAspirin,
		rehydration: DrugGlucose,
		antivirus: map[PathogenKind]DrugKind{
			PathogenSeasonalFlu: DrugPlacebo,
			PathogenSARSCoV2:    DrugPlacebo,
			PathogenCholera:     DrugPlacebo,
		},
	}
	// ExpensiveCatalog resets vitals outright and has disease specific antivirals.
	ExpensiveCatalog = Catalog{
		Tier:        TierExpensive,
		antifever:   DrugIbuprofen,
		rehydration: DrugRehydron,
		antivirus: map[PathogenKind]DrugKind{
			PathogenSeasonalFlu: DrugAntivirusSeasonalFlu,
			PathogenSARSCoV2:    DrugAntivirusSARSCoV2,
			PathogenCholera:     DrugAntivirusCholera,
		},
	}
)

// CatalogFor returns the catalog of a tier.
func CatalogFor(t Tier) Catalog {
	switch t {
	case TierCheap:
		return CheapCatalog
	case TierExpensive:
		return ExpensiveCatalog
	}
	invalidKind("tier", t)
	return Catalog{}
}

func (c Catalog) Antifever(dose float64) Drug   { return Drug{Kind: c.antifever, Dose: dose} }
func (c Catalog) Rehydration(dose float64) Drug { return Drug{Kind: c.rehydration, Dose: dose} }
func (c Catalog) SeasonalAntivirus(dose float64) Drug {
	return c.Antivirus(PathogenSeasonalFlu, dose)
}
func (c Catalog) SARSAntivirus(dose float64) Drug { return c.Antivirus(PathogenSARSCoV2, dose) }
func (c Catalog) CholeraAntivirus(dose float64) Drug {
	return c.Antivirus(PathogenCholera, dose)
}

// Antivirus looks up the antiviral slot for a disease kind.
func (c Catalog) Antivirus(k PathogenKind, dose float64) Drug {
	kind, ok := c.antivirus[k]
	if !ok {
		invalidKind("pathogen", k)
	}
	return Drug{Kind: kind, Dose: dose}
}
