package core

// Player identifies one side of the board. The zero value is PlayerNone and
// marks an empty square.
type Player byte

const (
	PlayerNone Player = iota
	PlayerRed
	PlayerBlack
)

// StartingPlayer moves first in every game and after every reset
const StartingPlayer = PlayerRed

func (p Player) String() string {
	switch p {
	case PlayerRed:
		return "red"
	case PlayerBlack:
		return "black"
	default:
		return "-"
	}
}

// Symbol returns the single-letter notation for a man of this player
func (p Player) Symbol() byte {
	switch p {
	case PlayerRed:
		return 'r'
	case PlayerBlack:
		return 'b'
	default:
		return '.'
	}
}

func Opponent(p Player) Player {
	if p == PlayerRed {
		return PlayerBlack
	}
	return PlayerRed
}

// ParsePlayer accepts "red"/"r" and "black"/"b"
func ParsePlayer(s string) (Player, bool) {
	switch s {
	case "red", "r":
		return PlayerRed, true
	case "black", "b":
		return PlayerBlack, true
	default:
		return PlayerNone, false
	}
}
