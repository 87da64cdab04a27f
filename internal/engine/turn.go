package engine

import (
	"checkers/internal/board"
	"checkers/internal/core"
)

// SelectCell is the single input of the engine: a cell was chosen.
//
// With a piece selected and a legal move to pos, the move is applied and the
// selection cleared, or kept on pos after a capture so the same piece can keep
// jumping. Otherwise a piece of the player to move is selected if the player has
// not moved yet, and choosing the selected cell again re-announces it. Anything
// else is ignored without notification.
func (e *Engine) SelectCell(pos board.Position) {
	if e.winner != core.PlayerNone || !pos.Valid() {
		return
	}

	if e.hasSelection && e.performMove(e.selected, pos) {
		e.clearSelection()
		e.hasMoved = true
		if e.lastMoveWasCapture {
			e.selectAt(pos)
		}
		e.notifyBoardUpdated()
		return
	}

	if e.board.Owner(pos) == e.current && !e.hasMoved {
		e.selectAt(pos)
		e.notifyPieceSelected(pos)
		return
	}

	if e.hasSelection && pos == e.selected {
		e.notifyPieceSelected(pos)
	}
}

// EndTurn passes the move to the opponent. It does nothing until the current
// player has moved at least once.
func (e *Engine) EndTurn() {
	if !e.hasMoved || e.winner != core.PlayerNone {
		return
	}

	e.current = core.Opponent(e.current)
	e.hasMoved = false
	e.lastMoveWasCapture = false
	e.clearSelection()

	e.notifyTurnChanged(e.current)
}

// Reset restores the starting layout with the starting player to move
func (e *Engine) Reset() {
	e.setup(board.New(), core.StartingPlayer)

	e.notifyBoardUpdated()
	e.notifyTurnChanged(core.StartingPlayer)
}
