package engine

// Doses are the fixed tier doses chosen from a patient's vitals.
type Doses struct {
	Antifever   float64
	Antivirus   float64
	Rehydration float64
}

// DosesFor picks doses: fever at or above the critical temperature doubles the
// antifever and antivirus doses; any water deficit gets a full rehydration dose.
func DosesFor(p *Person) Doses {
	d := Doses{Antifever: 0.0, Antivirus: 1.0, Rehydration: 0.5}
	if p.Temperature >= CriticalTemperature {
		d.Antifever = 2.0
		d.Antivirus = 2.0
	}
	if p.Water <= p.NormalWater() {
		d.Rehydration = 1.0
	}
	return d
}

type slot int

const (
	slotAntifever slot = iota
	slotRehydration
	slotAntivirus
)

// prescriptionTable lists, per disease, the catalog slots administered in order.
var prescriptionTable = map[PathogenKind][]slot{
	PathogenSeasonalFlu: {slotAntifever, slotAntivirus},
	PathogenSARSCoV2:    {slotAntifever, slotAntivirus},
	PathogenCholera:     {slotRehydration, slotAntivirus},
}

// Prescribe returns the ordered drugs for a disease from catalog c.
func Prescribe(kind PathogenKind, c Catalog, d Doses) []Drug {
	slots, ok := prescriptionTable[kind]
	if !ok {
		invalidKind("pathogen", kind)
	}
	out := make([]Drug, 0, len(slots))
	for _, s := range slots {
		switch s {
		case slotAntifever:
			out = append(out, c.Antifever(d.Antifever))
		case slotRehydration:
			out = append(out, c.Rehydration(d.Rehydration))
		case slotAntivirus:
			out = append(out, c.Antivirus(kind, d.Antivirus))
		}
	}
	return out
}
