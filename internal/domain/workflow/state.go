package workflow

// State represents one phase of the estimate lifecycle.
type State string

const (
	// StateIdle means no calculation has run for the current inputs.
	StateIdle State = "IDLE"
	// StateLoading means a calculation is in flight.
	StateLoading State = "LOADING"
	// StateDone means the shown result matches the current inputs.
	StateDone State = "DONE"
	// StateStale means the inputs changed after the shown result was
	// produced; the result is kept visible but marked outdated.
	StateStale State = "STALE"
)

var validStates = map[State]bool{
	StateIdle:    true,
	StateLoading: true,
	StateDone:    true,
	StateStale:   true,
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a known lifecycle state.
func (s State) IsValid() bool {
	return validStates[s]
}
