package commands

import (
	"encoding/json"
	"fmt"

	"checkers/internal/board"
	"checkers/internal/client/display"
	"checkers/internal/core"
	"checkers/internal/game"
)

func (r *Registry) registerGameCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Create a new game",
		Usage:       "new [layout] [red|black]",
		Handler:     newGameHandler,
	})

	r.Register(&Command{
		Name:        "join",
		ShortName:   "j",
		Description: "Set current game ID and seat token",
		Usage:       "join <gameId> [token]",
		Handler:     joinGameHandler,
	})

	r.Register(&Command{
		Name:        "select",
		ShortName:   "m",
		Description: "Select a square (pick a piece or move the selected one)",
		Usage:       "select <square>",
		Handler:     selectHandler,
	})

	r.Register(&Command{
		Name:        "end",
		ShortName:   "e",
		Description: "End the current turn",
		Usage:       "end",
		Handler:     endTurnHandler,
	})

	r.Register(&Command{
		Name:        "reset",
		ShortName:   "r",
		Description: "Reset the game to the starting position",
		Usage:       "reset",
		Handler:     resetHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Show board and game state",
		Usage:       "show",
		Handler:     showBoardHandler,
	})

	r.Register(&Command{
		Name:        "state",
		ShortName:   "s",
		Description: "Show raw game JSON",
		Usage:       "state",
		Handler:     gameStateHandler,
	})

	r.Register(&Command{
		Name:        "poll",
		ShortName:   "p",
		Description: "Wait for the game to change",
		Usage:       "poll",
		Handler:     pollHandler,
	})

	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Description: "Delete a game",
		Usage:       "delete [gameId]",
		Handler:     deleteGameHandler,
	})
}

func isSquare(s string) bool {
	_, err := board.ParseSquare(s)
	return err == nil
}

func requireGame(s *Session) error {
	if s.GameID == "" {
		return fmt.Errorf("no current game, use 'new' or 'join'")
	}
	return nil
}

func newGameHandler(s *Session, args []string) error {
	var req core.CreateGameRequest
	for _, arg := range args {
		if p, ok := core.ParsePlayer(arg); ok {
			req.Turn = p.String()
		} else {
			req.Layout = arg
		}
	}

	resp, err := s.Client.CreateGame(req)
	if err != nil {
		return err
	}

	s.GameID = resp.GameID
	s.Version = resp.Version
	fmt.Fprintf(s.Out, "%sGame created: %s%s\n", display.Green, resp.GameID, display.Reset)
	fmt.Fprintf(s.Out, "Seat token: %s\n", resp.Token)
	return printGame(s, resp)
}

func joinGameHandler(s *Session, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: join <gameId> [token]")
	}

	resp, err := s.Client.GetGame(args[0])
	if err != nil {
		return err
	}

	s.GameID = resp.GameID
	s.Version = resp.Version
	if len(args) > 1 {
		s.Client.SetToken(args[1])
	} else {
		s.Client.SetToken("")
		fmt.Fprintf(s.Out, "%sJoined read-only, pass the seat token to play%s\n", display.Yellow, display.Reset)
	}
	return printGame(s, resp)
}

func selectHandler(s *Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: select <square>")
	}

	pos, err := board.ParseSquare(args[0])
	if err != nil {
		return err
	}

	resp, err := s.Client.SelectCell(s.GameID, pos.Row, pos.Col)
	if err != nil {
		return err
	}
	return printAction(s, resp, fmt.Sprintf("Nothing to do at %s", pos))
}

func endTurnHandler(s *Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}
	resp, err := s.Client.EndTurn(s.GameID)
	if err != nil {
		return err
	}
	return printAction(s, resp, "Make a move before ending the turn")
}

func resetHandler(s *Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}
	resp, err := s.Client.ResetGame(s.GameID)
	if err != nil {
		return err
	}
	return printAction(s, resp, "")
}

func showBoardHandler(s *Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}
	resp, err := s.Client.GetGame(s.GameID)
	if err != nil {
		return err
	}
	s.Version = resp.Version
	return printGame(s, resp)
}

func gameStateHandler(s *Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}
	resp, err := s.Client.GetGame(s.GameID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(s.Out, string(data))
	return nil
}

func pollHandler(s *Session, args []string) error {
	if err := requireGame(s); err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "Waiting for changes (version %d)...\n", s.Version)
	resp, err := s.Client.WaitGame(s.GameID, s.Version)
	if err != nil {
		return err
	}
	if resp.Version == s.Version {
		fmt.Fprintln(s.Out, "No changes")
		return nil
	}
	s.Version = resp.Version
	return printGame(s, resp)
}

func deleteGameHandler(s *Session, args []string) error {
	gameID := s.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if gameID == "" {
		return fmt.Errorf("usage: delete [gameId]")
	}

	if err := s.Client.DeleteGame(gameID); err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "%sGame deleted: %s%s\n", display.Green, gameID, display.Reset)
	if gameID == s.GameID {
		s.GameID = ""
		s.Version = 0
		s.Client.SetToken("")
	}
	return nil
}

func printAction(s *Session, resp *core.ActionResponse, unchanged string) error {
	s.Version = resp.Game.Version
	if !resp.Changed {
		if unchanged != "" {
			fmt.Fprintf(s.Out, "%s%s%s\n", display.Yellow, unchanged, display.Reset)
		}
		return nil
	}

	redraw := false
	for _, ev := range resp.Events {
		switch ev.Kind {
		case string(game.EventBoardUpdated):
			redraw = true
		case string(game.EventPieceSelected):
			if ev.Square != nil {
				fmt.Fprintf(s.Out, "Selected %s\n", ev.Square.Name)
			}
		case string(game.EventTurnChanged):
			fmt.Fprintf(s.Out, "%s to move\n", display.ColorForTurn(ev.Player))
		case string(game.EventPlayerWon):
			fmt.Fprintf(s.Out, "%sGame over: %s wins!%s\n", display.Green, ev.Player, display.Reset)
		}
	}

	if redraw {
		return display.RenderBoard(s.Out, resp.Game.Layout, resp.Game.Selected)
	}
	return nil
}

func printGame(s *Session, resp *core.GameResponse) error {
	if err := display.RenderBoard(s.Out, resp.Layout, resp.Selected); err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "Game: %s  version %d\n", resp.GameID, resp.Version)
	fmt.Fprintf(s.Out, "Pieces: red %d, black %d\n", resp.RedCount, resp.BlackCount)
	if len(resp.Moves) > 0 {
		fmt.Fprintf(s.Out, "Moves: %v\n", resp.Moves)
	}
	if resp.Winner != "" {
		fmt.Fprintf(s.Out, "%sGame over: %s wins!%s\n", display.Green, resp.Winner, display.Reset)
	} else {
		fmt.Fprintf(s.Out, "%s to move\n", display.ColorForTurn(resp.Turn))
	}
	return nil
}
