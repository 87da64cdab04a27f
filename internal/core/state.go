package core

type State int

const (
	StateOngoing State = iota
	StateRedWins
	StateBlackWins
)

func (s State) String() string {
	switch s {
	case StateRedWins:
		return "red wins"
	case StateBlackWins:
		return "black wins"
	case StateOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// WinState maps a winner to its terminal state
func WinState(winner Player) State {
	if winner == PlayerRed {
		return StateRedWins
	}
	return StateBlackWins
}
