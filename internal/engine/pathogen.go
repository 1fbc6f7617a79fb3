package engine

const (
	defaultPathogenStrength         = 1.5
	defaultPathogenTransmissibility = 1.0
)

// Pathogen is a disease agent carried by exactly one person. Strength falls under
// treatment and immune response; at or below zero the pathogen is cleared.
// Transmissibility is carried but not used by the contact model.
type Pathogen struct {
	Kind             PathogenKind `json:"kind"`
	Strength         float64      `json:"strength"`
	Transmissibility float64      `json:"transmissibility"`
}

// NewPathogen builds a pathogen with the default potency used for seed infections.
func NewPathogen(kind PathogenKind) *Pathogen {
	if !kind.Validate() {
		invalidKind("pathogen", kind)
	}
	return &Pathogen{Kind: kind, Strength: defaultPathogenStrength, Transmissibility: defaultPathogenTransmissibility}
}

// exponential rates for sampled strength and transmissibility
var sampleRates = map[PathogenKind]float64{
	PathogenSeasonalFlu: 10.0,
	PathogenSARSCoV2:    2.0,
	PathogenCholera:     2.0,
}

// SamplePathogen draws strength and transmissibility from the kind's exponential
// distribution. Flu is drawn with a much higher rate and so is usually mild.
func SamplePathogen(r *Stream, kind PathogenKind) *Pathogen {
	rate, ok := sampleRates[kind]
	if !ok {
		invalidKind("pathogen", kind)
	}
	return &Pathogen{Kind: kind, Strength: r.ExpFloat64(rate), Transmissibility: r.ExpFloat64(rate)}
}

// Cleared reports whether the pathogen has been beaten.
func (v *Pathogen) Cleared() bool { return v.Strength <= 0 }

func (v *Pathogen) clone() *Pathogen {
	c := *v
	return &c
}

// causeSymptoms applies one day of illness to the carrier's vitals.
func (v *Pathogen) causeSymptoms(p *Person) {
	switch v.Kind {
	case PathogenSeasonalFlu:
		p.Temperature += 0.3
	case PathogenSARSCoV2:
		p.Temperature += 0.5
	case PathogenCholera:
		p.Temperature += 0.2
		p.Water -= 1.0
	default:
		invalidKind("pathogen", v.Kind)
	}
}
