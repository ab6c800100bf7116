package model

// State is a vehicle unit's lifecycle state.
type State int

const (
	StateFlying State = iota
	StateAwaitingCharge
	StateCharging
	// StateDepleted is terminal: the simulated window ran out.
	StateDepleted
	// StateStalled is terminal: a charge attempt timed out or was infeasible.
	StateStalled
)

var stateNames = map[State]string{
	StateFlying:         "Flying",
	StateAwaitingCharge: "AwaitingCharge",
	StateCharging:       "Charging",
	StateDepleted:       "Depleted",
	StateStalled:        "Stalled",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "Unknown"
}

// Terminal reports whether the state ends a unit's lifecycle.
func (s State) Terminal() bool {
	return s == StateDepleted || s == StateStalled
}
