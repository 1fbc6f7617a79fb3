package engine

// DaysSickToFeelBad is the number of nights an asymptomatic carrier spends
// before symptoms appear.
const DaysSickToFeelBad = 2

// HealthState is the tagged variant owned by a person. Only the asymptomatic
// variant carries data. Values are replaced on transition, never mutated by callers.
type HealthState struct {
	Kind     HealthKind `json:"kind"`
	DaysSick int        `json:"days_sick,omitempty"`
}

// Trigger is an event that may move a person between health states.
type Trigger int

const (
	TriggerInfected Trigger = iota
	TriggerNightElapsed
	TriggerLethal
	TriggerCleared
)

func (t Trigger) String() string {
	switch t {
	case TriggerInfected:
		return "infected"
	case TriggerNightElapsed:
		return "night_elapsed"
	case TriggerLethal:
		return "lethal"
	case TriggerCleared:
		return "cleared"
	}
	return "unknown"
}

// Healthy is the state every person starts in.
func Healthy() HealthState { return HealthState{Kind: HealthHealthy} }

// Next is the pure transition table. Triggers that do not apply to the current
// variant return it unchanged. Dead never changes.
//
//	healthy      --infected-->      asymptomatic(0)
//	asymptomatic --night_elapsed--> asymptomatic(n+1) | symptomatic once n+1 == DaysSickToFeelBad
//	symptomatic  --lethal-->        dead
//	symptomatic  --cleared-->       healthy
func (h HealthState) Next(t Trigger) HealthState {
	switch h.Kind {
	case HealthHealthy:
		if t == TriggerInfected {
			return HealthState{Kind: HealthAsymptomatic}
		}
	case HealthAsymptomatic:
		if t == TriggerNightElapsed {
			days := h.DaysSick + 1
			if days >= DaysSickToFeelBad {
				return HealthState{Kind: HealthSymptomatic}
			}
			return HealthState{Kind: HealthAsymptomatic, DaysSick: days}
		}
	case HealthSymptomatic:
		switch t {
		case TriggerLethal:
			return HealthState{Kind: HealthDead}
		case TriggerCleared:
			return Healthy()
		}
	case HealthDead:
	default:
		invalidKind("health", h.Kind)
	}
	return h
}

// Contagious reports whether contact with this state transmits the pathogen.
// Symptomatic persons are isolated at home and do not transmit.
func (h HealthState) Contagious() bool { return h.Kind == HealthAsymptomatic }

// Mobile reports whether the state moves around during the day.
func (h HealthState) Mobile() bool {
	return h.Kind == HealthHealthy || h.Kind == HealthAsymptomatic
}
