// Package game provides the combat engine, the session loop and state management.
package game

// State represents the current session state.
type State int

const (
	// StateCombat is an encounter in progress.
	StateCombat State = iota
	// StateReward follows a won encounter: pick a card for the deck or skip.
	StateReward
	// StateDefeat follows a lost encounter. The run is over.
	StateDefeat
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCombat:
		return "combat"
	case StateReward:
		return "reward"
	case StateDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}
