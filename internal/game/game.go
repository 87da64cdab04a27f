package game

import (
	"fmt"

	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/engine"
)

type Snapshot struct {
	Layout       string      // Board after this point
	PreviousMove string      // Move that created this position (empty for initial)
	Mover        core.Player // Player who made PreviousMove
}

// Game is one checkers session: the rules engine plus the history and event
// log an outer layer needs. It is not safe for concurrent use.
type Game struct {
	engine    *engine.Engine
	snapshots []Snapshot
	state     core.State
	pending   []Event
	version   int
	listener  engine.Observer
}

// New starts a game from the standard layout. listener, if not nil, receives
// every engine notification after the game has recorded it.
func New(listener engine.Observer) *Game {
	g := &Game{listener: listener}
	g.engine = engine.New(g)
	g.snapshots = []Snapshot{{Layout: board.StartingLayout}}
	return g
}

// NewFromLayout starts a game from a layout string with toMove to play
func NewFromLayout(layout string, toMove core.Player, listener engine.Observer) (*Game, error) {
	b, err := board.Parse(layout)
	if err != nil {
		return nil, err
	}
	if toMove != core.PlayerRed && toMove != core.PlayerBlack {
		return nil, fmt.Errorf("invalid player to move: %s", toMove)
	}

	g := &Game{listener: listener}
	g.engine = engine.NewFromBoard(b, toMove, g)
	g.snapshots = []Snapshot{{Layout: b.String()}}
	return g, nil
}

// SetListener replaces the downstream observer
func (g *Game) SetListener(listener engine.Observer) {
	g.listener = listener
}

// Select forwards a cell choice to the engine and returns the events it produced
func (g *Game) Select(pos board.Position) []Event {
	g.engine.SelectCell(pos)
	events := g.drain()

	for _, ev := range events {
		if ev.Kind == EventBoardUpdated {
			g.recordMove()
			break
		}
	}
	return events
}

// EndTurn passes the turn and returns the events produced
func (g *Game) EndTurn() []Event {
	g.engine.EndTurn()
	return g.drain()
}

// Reset restores the starting position and clears history
func (g *Game) Reset() []Event {
	g.engine.Reset()
	g.snapshots = []Snapshot{{Layout: board.StartingLayout}}
	g.state = core.StateOngoing
	return g.drain()
}

func (g *Game) recordMove() {
	move, ok := g.engine.LastMove()
	if !ok {
		return
	}
	b := g.engine.Board()
	g.snapshots = append(g.snapshots, Snapshot{
		Layout:       b.String(),
		PreviousMove: move.String(),
		Mover:        move.Player,
	})
}

func (g *Game) drain() []Event {
	events := g.pending
	g.pending = nil
	g.version += len(events)
	return events
}

// LastMove returns the most recent move applied by the engine
func (g *Game) LastMove() (engine.Move, bool) {
	return g.engine.LastMove()
}

func (g *Game) Board() board.Board {
	return g.engine.Board()
}

func (g *Game) Turn() core.Player {
	return g.engine.CurrentPlayer()
}

func (g *Game) State() core.State {
	return g.state
}

// Version counts every event emitted so far; it only grows
func (g *Game) Version() int {
	return g.version
}

func (g *Game) Selected() (board.Position, bool) {
	return g.engine.Selected()
}

func (g *Game) CurrentSnapshot() Snapshot {
	return g.snapshots[len(g.snapshots)-1]
}

func (g *Game) CurrentLayout() string {
	return g.CurrentSnapshot().Layout
}

func (g *Game) InitialLayout() string {
	if len(g.snapshots) > 0 {
		return g.snapshots[0].Layout
	}
	return board.StartingLayout
}

// Snapshots returns a copy of the position history
func (g *Game) Snapshots() []Snapshot {
	out := make([]Snapshot, len(g.snapshots))
	copy(out, g.snapshots)
	return out
}

func (g *Game) Moves() []string {
	moves := []string{}
	for i := 1; i < len(g.snapshots); i++ {
		if g.snapshots[i].PreviousMove != "" {
			moves = append(moves, g.snapshots[i].PreviousMove)
		}
	}
	return moves
}
