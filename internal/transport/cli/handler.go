package cli

import (
	"fmt"

	"checkers/internal/board"
	"checkers/internal/cli"
	"checkers/internal/core"
	"checkers/internal/game"
	"checkers/internal/transport"
)

// CLIHandler runs a hot-seat game in the terminal
type CLIHandler struct {
	game *game.Game
	term *cli.CLI
	view transport.View
}

func New(term *cli.CLI) *CLIHandler {
	h := &CLIHandler{term: term, view: term}
	h.start(game.New(term))
	return h
}

func (h *CLIHandler) start(g *game.Game) {
	h.game = g
	h.term.Attach(g)
}

// Game returns the game being played
func (h *CLIHandler) Game() *game.Game {
	return h.game
}

// Run is the main loop; it returns on quit or end of input
func (h *CLIHandler) Run() error {
	h.view.DisplayBoard()
	h.view.TurnChanged(h.game.Turn())

	for {
		h.view.ShowPrompt(h.getPrompt())

		cmd, err := h.term.GetCommand()
		if err != nil {
			return err
		}

		if !h.ProcessCommand(cmd) {
			return nil
		}
	}
}

func (h *CLIHandler) getPrompt() string {
	if h.game.State() != core.StateOngoing {
		return "[over]> "
	}
	if pos, ok := h.game.Selected(); ok {
		return fmt.Sprintf("[%s %s]> ", h.game.Turn(), pos)
	}
	return fmt.Sprintf("[%s]> ", h.game.Turn())
}

// ProcessCommand handles one command and returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:

	case cli.CmdSelect:
		pos, err := board.ParseSquare(cmd.Args[0])
		if err != nil {
			h.view.ShowError(fmt.Errorf("unknown command or square %q, type 'help'", cmd.Args[0]))
			return true
		}
		if h.game.State() != core.StateOngoing {
			h.view.ShowMessage("The game is over. Type 'reset' to play again.")
			return true
		}
		// Notifications draw the result; silence means the choice was rejected
		if events := h.game.Select(pos); len(events) == 0 {
			h.view.ShowMessage(fmt.Sprintf("Nothing to do at %s.", pos))
		}

	case cli.CmdEnd:
		if h.game.State() != core.StateOngoing {
			h.view.ShowMessage("The game is over. Type 'reset' to play again.")
			return true
		}
		if events := h.game.EndTurn(); len(events) == 0 {
			h.view.ShowMessage("Make a move before ending the turn.")
		}

	case cli.CmdReset:
		h.game.Reset()

	case cli.CmdLoad:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: load <layout> [red|black]")
			return true
		}
		toMove := core.StartingPlayer
		if len(cmd.Args) > 1 {
			p, ok := core.ParsePlayer(cmd.Args[1])
			if !ok {
				h.view.ShowError(fmt.Errorf("invalid player: %s", cmd.Args[1]))
				return true
			}
			toMove = p
		}
		g, err := game.NewFromLayout(cmd.Args[0], toMove, h.term)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.start(g)
		h.view.ShowMessage("Position loaded.")
		h.view.DisplayBoard()

	case cli.CmdShow:
		h.view.DisplayBoard()

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}

		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.term.SetTheme(theme); err != nil {
			h.view.ShowError(err)
		} else {
			h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
			h.view.DisplayBoard()
		}

	case cli.CmdVerbose:
		verbose := h.term.ToggleVerbose()
		h.view.ShowMessage(fmt.Sprintf("Verbose mode: %t", verbose))

	case cli.CmdHistory:
		h.view.ShowGameHistory(h.game.Snapshots(), h.game.State())

	case cli.CmdHelp:
		h.term.ShowHelp()
	}

	return true
}
