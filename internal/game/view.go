package game

import (
	"checkers/internal/board"
	"checkers/internal/core"
)

// View is a detached copy of a game's observable state
type View struct {
	Layout     string
	Board      board.Board
	Turn       core.Player
	State      core.State
	Winner     core.Player
	Selected   *board.Position
	HasMoved   bool
	Captured   bool
	RedCount   int
	BlackCount int
	Moves      []string
	Version    int
}

func (g *Game) View() View {
	b := g.engine.Board()
	v := View{
		Layout:     b.String(),
		Board:      b,
		Turn:       g.engine.CurrentPlayer(),
		State:      g.state,
		HasMoved:   g.engine.HasMoved(),
		Captured:   g.engine.LastMoveWasCapture(),
		RedCount:   g.engine.PieceCount(core.PlayerRed),
		BlackCount: g.engine.PieceCount(core.PlayerBlack),
		Moves:      g.Moves(),
		Version:    g.version,
	}
	if winner, ok := g.engine.Winner(); ok {
		v.Winner = winner
	}
	if pos, ok := g.engine.Selected(); ok {
		v.Selected = &pos
	}
	return v
}

// Response converts the view to the API game representation
func (v View) Response(gameID string) core.GameResponse {
	resp := core.GameResponse{
		GameID:     gameID,
		Layout:     v.Layout,
		Turn:       v.Turn.String(),
		State:      v.State.String(),
		HasMoved:   v.HasMoved,
		Captured:   v.Captured,
		RedCount:   v.RedCount,
		BlackCount: v.BlackCount,
		Moves:      v.Moves,
		Version:    v.Version,
	}
	if v.Winner != core.PlayerNone {
		resp.Winner = v.Winner.String()
	}
	if v.Selected != nil {
		resp.Selected = SquareOf(*v.Selected)
	}
	return resp
}
