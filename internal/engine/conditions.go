package engine

// Vital thresholds.
const (
	NormalTemperature   = 36.6
	CriticalTemperature = 40.0
	LethalTemperature   = 44.0

	NormalWaterRatio   = 0.6
	CriticalWaterRatio = 0.5
	LethalWaterRatio   = 0.4
)

// Condition classifies a person's vitals.
type Condition int

const (
	ConditionStable Condition = iota
	ConditionCritical
	ConditionLethal
)

func (c Condition) String() string {
	switch c {
	case ConditionCritical:
		return "critical"
	case ConditionLethal:
		return "lethal"
	}
	return "stable"
}

// Condition evaluates temperature and hydration against the thresholds above.
// Lethal implies critical.
func (p *Person) Condition() Condition {
	ratio := p.waterRatio()
	switch {
	case p.Temperature >= LethalTemperature || ratio <= LethalWaterRatio:
		return ConditionLethal
	case p.Temperature >= CriticalTemperature || ratio <= CriticalWaterRatio:
		return ConditionCritical
	}
	return ConditionStable
}

func (p *Person) waterRatio() float64 {
	if p.Weight <= 0 {
		return 0
	}
	return p.Water / p.Weight
}

// NormalWater is the fully hydrated water level for the person's weight.
func (p *Person) NormalWater() float64 { return NormalWaterRatio * p.Weight }

func (p *Person) goToNormal() {
	p.Temperature = NormalTemperature
	p.Water = p.NormalWater()
}

// fightPathogen is the nightly immune response; younger bodies clear faster.
func (p *Person) fightPathogen() {
	if p.Pathogen == nil {
		return
	}
	age := p.Age
	if age < 1 {
		age = 1
	}
	p.Pathogen.Strength -= 3.0 / float64(age)
}

func (p *Person) progressDisease() {
	if p.Pathogen != nil {
		p.Pathogen.causeSymptoms(p)
	}
}
