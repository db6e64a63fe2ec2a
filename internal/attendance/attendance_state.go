package attendance

import "fmt"

// State is the attendance state of one employee for one day.
type State int

const (
	StateNotStarted State = iota
	StateLoggedIn
	StateLoggedOut
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NOT_STARTED"
	case StateLoggedIn:
		return "LOGGED_IN"
	case StateLoggedOut:
		return "LOGGED_OUT"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StateOf derives the state from the day's record, nil meaning no record.
func StateOf(rec *Record) State {
	switch {
	case rec == nil:
		return StateNotStarted
	case rec.LogoutTime == nil:
		return StateLoggedIn
	default:
		return StateLoggedOut
	}
}

// Next returns the state an accepted action moves to. ok is false for the
// terminal state.
func (s State) Next() (next State, ok bool) {
	switch s {
	case StateNotStarted:
		return StateLoggedIn, true
	case StateLoggedIn:
		return StateLoggedOut, true
	case StateLoggedOut:
		return StateLoggedOut, false
	default:
		panic(fmt.Sprintf("attendance: unknown state %d", int(s)))
	}
}
