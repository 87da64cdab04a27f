package engine

import (
	"fmt"

	"checkers/internal/board"
	"checkers/internal/core"
)

// Move describes one applied step or capture
type Move struct {
	Player   core.Player
	From     board.Position
	To       board.Position
	Capture  bool
	Jumped   board.Position // Valid only when Capture is set
	Promoted bool
}

// String renders the move as "c3-d4" for a step or "c3xe5" for a capture
func (m Move) String() string {
	sep := "-"
	if m.Capture {
		sep = "x"
	}
	return m.From.String() + sep + m.To.String()
}

// performMove applies start->end if legal for the player to move and reports
// whether it did. A rejected move leaves every piece of state untouched.
func (e *Engine) performMove(start, end board.Position) bool {
	piece, ok := e.board.At(start)
	if !ok || piece.Owner != e.current {
		return false
	}

	forward := board.Forward(piece.Owner)
	if piece.King {
		return e.performDirected(start, end, forward) || e.performDirected(start, end, -forward)
	}
	return e.performDirected(start, end, forward)
}

// performDirected tries start->end moving dir rows per step
func (e *Engine) performDirected(start, end board.Position, dir int) bool {
	if _, occupied := e.board.At(end); occupied || !end.Valid() {
		return false
	}

	dr := end.Row - start.Row
	dc := end.Col - start.Col

	switch {
	case dr == dir && abs(dc) == 1:
		// A step can only be the player's sole action in a turn
		if e.hasMoved {
			return false
		}
		promoted := e.relocate(start, end)
		e.lastMoveWasCapture = false
		e.lastMove = &Move{Player: e.current, From: start, To: end, Promoted: promoted}
		return true

	case dr == 2*dir && abs(dc) == 2:
		mid := board.Pos(start.Row+dir, start.Col+dc/2)
		jumped, ok := e.board.At(mid)
		if !ok || jumped.Owner == e.current {
			return false
		}
		e.board.Remove(mid)
		promoted := e.relocate(start, end)
		e.lastMoveWasCapture = true
		e.lastMove = &Move{Player: e.current, From: start, To: end, Capture: true, Jumped: mid, Promoted: promoted}
		e.adjustCount(jumped.Owner, -1)
		return true
	}

	return false
}

// relocate moves the piece value from -> to, crowning it on its far row.
// Reports whether the piece was promoted by this move.
func (e *Engine) relocate(from, to board.Position) bool {
	piece, _ := e.board.Remove(from)
	promoted := false
	if !piece.King && to.Row == board.PromotionRow(piece.Owner) {
		piece.King = true
		promoted = true
	}
	e.board.Place(to, piece)
	return promoted
}

// adjustCount is the only place live piece counts change after setup
func (e *Engine) adjustCount(player core.Player, delta int) {
	e.counts[player] += delta

	n := e.counts[player]
	if n < 0 {
		panic(fmt.Sprintf("engine: %s piece count is negative (%d), capture bookkeeping is broken", player, n))
	}
	if n == 0 && delta < 0 {
		e.winner = core.Opponent(player)
		e.notifyPlayerWon(e.winner)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
