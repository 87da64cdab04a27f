// Package engine implements the checkers rules: selection, move legality,
// multi-jump continuation, explicit turn switching and win detection.
//
// The engine is synchronous and not safe for concurrent use. Every call runs to
// completion and notifies the registered Observer before returning.
package engine

import (
	"checkers/internal/board"
	"checkers/internal/core"
)

// Observer is notified synchronously from within the call that caused the change
type Observer interface {
	// BoardUpdated signals that board contents changed
	BoardUpdated()
	// PlayerWon signals the game ended with winner
	PlayerWon(winner core.Player)
	// TurnChanged signals player is now to move
	TurnChanged(player core.Player)
	// PieceSelected signals pos was selected or reselected
	PieceSelected(pos board.Position)
}

// Engine owns one board and the per-turn state of the game played on it
type Engine struct {
	board    board.Board
	current  core.Player
	selected board.Position

	hasSelection       bool
	hasMoved           bool
	lastMoveWasCapture bool

	counts   [3]int // indexed by core.Player
	winner   core.Player
	lastMove *Move

	observer Observer
}

// New creates an engine on the standard starting layout with Red to move
func New(observer Observer) *Engine {
	e := &Engine{observer: observer}
	e.setup(board.New(), core.StartingPlayer)
	return e
}

// NewFromBoard creates an engine on an arbitrary position. Piece counts are
// taken from the board.
func NewFromBoard(b board.Board, toMove core.Player, observer Observer) *Engine {
	if toMove != core.PlayerBlack {
		toMove = core.PlayerRed
	}
	e := &Engine{observer: observer}
	e.setup(b, toMove)
	return e
}

func (e *Engine) setup(b board.Board, toMove core.Player) {
	e.board = b
	e.current = toMove
	e.clearSelection()
	e.hasMoved = false
	e.lastMoveWasCapture = false
	e.counts[core.PlayerRed] = b.Count(core.PlayerRed)
	e.counts[core.PlayerBlack] = b.Count(core.PlayerBlack)
	e.winner = core.PlayerNone
	e.lastMove = nil
}

// SetObserver replaces the registered observer; nil disables notifications
func (e *Engine) SetObserver(observer Observer) {
	e.observer = observer
}

// Board returns a copy of the current board
func (e *Engine) Board() board.Board {
	return e.board
}

func (e *Engine) CurrentPlayer() core.Player {
	return e.current
}

// Selected returns the selected position, if any
func (e *Engine) Selected() (board.Position, bool) {
	return e.selected, e.hasSelection
}

// HasMoved reports whether the current player already moved this turn
func (e *Engine) HasMoved() bool {
	return e.hasMoved
}

func (e *Engine) LastMoveWasCapture() bool {
	return e.lastMoveWasCapture
}

// PieceCount returns the live piece count of player
func (e *Engine) PieceCount(player core.Player) int {
	if player != core.PlayerRed && player != core.PlayerBlack {
		return 0
	}
	return e.counts[player]
}

// Winner returns the winning player once a side has lost its last piece
func (e *Engine) Winner() (core.Player, bool) {
	return e.winner, e.winner != core.PlayerNone
}

// LastMove returns the most recently applied move since construction or reset
func (e *Engine) LastMove() (Move, bool) {
	if e.lastMove == nil {
		return Move{}, false
	}
	return *e.lastMove, true
}

func (e *Engine) selectAt(pos board.Position) {
	e.selected = pos
	e.hasSelection = true
}

func (e *Engine) clearSelection() {
	e.selected = board.Position{}
	e.hasSelection = false
}

func (e *Engine) notifyBoardUpdated() {
	if e.observer != nil {
		e.observer.BoardUpdated()
	}
}

func (e *Engine) notifyPlayerWon(winner core.Player) {
	if e.observer != nil {
		e.observer.PlayerWon(winner)
	}
}

func (e *Engine) notifyTurnChanged(player core.Player) {
	if e.observer != nil {
		e.observer.TurnChanged(player)
	}
}

func (e *Engine) notifyPieceSelected(pos board.Position) {
	if e.observer != nil {
		e.observer.PieceSelected(pos)
	}
}
