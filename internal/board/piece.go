package board

import "checkers/internal/core"

// Piece is a value: moving a piece copies it, it is never shared between cells
type Piece struct {
	Owner core.Player
	King  bool
}

func Man(owner core.Player) Piece {
	return Piece{Owner: owner}
}

func King(owner core.Player) Piece {
	return Piece{Owner: owner, King: true}
}

// Symbol returns 'r'/'b' for men and 'R'/'B' for kings
func (p Piece) Symbol() byte {
	s := p.Owner.Symbol()
	if p.King {
		s -= 'a' - 'A'
	}
	return s
}

// Forward is the row delta a man of this owner advances by
func Forward(owner core.Player) int {
	if owner == core.PlayerRed {
		return -1
	}
	return 1
}

// PromotionRow is the farthest row from the owner's starting side
func PromotionRow(owner core.Player) int {
	if owner == core.PlayerRed {
		return 0
	}
	return Size - 1
}
