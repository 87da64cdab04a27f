package transport

import (
	"checkers/internal/core"
	"checkers/internal/engine"
	"checkers/internal/game"
)

// View is a presentation layer for a local game. It receives engine
// notifications as they happen and renders on demand.
type View interface {
	engine.Observer

	DisplayBoard()
	ShowMessage(msg string)
	ShowError(err error)
	ShowGameHistory(snapshots []game.Snapshot, state core.State)
	ShowPrompt(prompt string)
}
