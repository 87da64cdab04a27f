package game

import (
	"checkers/internal/board"
	"checkers/internal/core"
)

type EventKind string

const (
	EventBoardUpdated  EventKind = "board_updated"
	EventPieceSelected EventKind = "piece_selected"
	EventTurnChanged   EventKind = "turn_changed"
	EventPlayerWon     EventKind = "player_won"
)

// Event is one engine notification as recorded by a Game
type Event struct {
	Kind   EventKind
	Player core.Player    // EventTurnChanged, EventPlayerWon
	Square board.Position // EventPieceSelected
}

// Info converts the event to its API form
func (e Event) Info() core.EventInfo {
	info := core.EventInfo{Kind: string(e.Kind)}
	switch e.Kind {
	case EventTurnChanged, EventPlayerWon:
		info.Player = e.Player.String()
	case EventPieceSelected:
		info.Square = SquareOf(e.Square)
	}
	return info
}

func SquareOf(p board.Position) *core.Square {
	return &core.Square{Row: p.Row, Col: p.Col, Name: p.String()}
}

// Engine observer implementation: record, update session state, forward.

func (g *Game) BoardUpdated() {
	g.pending = append(g.pending, Event{Kind: EventBoardUpdated})
	if g.listener != nil {
		g.listener.BoardUpdated()
	}
}

func (g *Game) PlayerWon(winner core.Player) {
	g.state = core.WinState(winner)
	g.pending = append(g.pending, Event{Kind: EventPlayerWon, Player: winner})
	if g.listener != nil {
		g.listener.PlayerWon(winner)
	}
}

func (g *Game) TurnChanged(player core.Player) {
	g.pending = append(g.pending, Event{Kind: EventTurnChanged, Player: player})
	if g.listener != nil {
		g.listener.TurnChanged(player)
	}
}

func (g *Game) PieceSelected(pos board.Position) {
	g.pending = append(g.pending, Event{Kind: EventPieceSelected, Square: pos})
	if g.listener != nil {
		g.listener.PieceSelected(pos)
	}
}
