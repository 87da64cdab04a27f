package service

import (
	"fmt"

	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/game"
	"checkers/internal/server/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Result is what a game action produced, copied out while the lock was held
type Result struct {
	Events []game.Event
	View   game.View
}

// Changed reports whether the action had any observable effect
func (r Result) Changed() bool {
	return len(r.Events) > 0
}

// CreateGame registers a new game and returns its ID and seat token. An empty
// layout means the standard starting position with Red to move.
func (s *Service) CreateGame(layout string, toMove core.Player) (string, string, game.View, error) {
	var g *game.Game
	if layout == "" && (toMove == core.PlayerNone || toMove == core.StartingPlayer) {
		g = game.New(nil)
	} else {
		if layout == "" {
			layout = board.StartingLayout
		}
		if toMove == core.PlayerNone {
			toMove = core.StartingPlayer
		}
		var err error
		if g, err = game.NewFromLayout(layout, toMove, nil); err != nil {
			return "", "", game.View{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.games) >= MaxGames {
		return "", "", game.View{}, ErrTooManyGames
	}

	id := s.generateGameID()
	token, err := s.issueSeatToken(id)
	if err != nil {
		return "", "", game.View{}, fmt.Errorf("failed to issue seat token: %w", err)
	}

	s.games[id] = &session{game: g, touched: s.now()}

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:         id,
			InitialLayout:  g.InitialLayout(),
			StartingPlayer: g.Turn().String(),
			StartTimeUTC:   s.now().UTC(),
		})
	}

	log.Debug().Str("game", id).Str("layout", g.InitialLayout()).Msg("game created")
	return id, token, g.View(), nil
}

// generateGameID creates a new unique game ID; caller holds mu
func (s *Service) generateGameID() string {
	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// GetGame returns a snapshot of the game
func (s *Service) GetGame(gameID string) (game.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.games[gameID]
	if !ok {
		return game.View{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return sess.game.View(), nil
}

// SelectCell feeds a board cell choice to the game's engine
func (s *Service) SelectCell(gameID string, pos board.Position) (Result, error) {
	return s.act(gameID, false, func(g *game.Game) []game.Event {
		return g.Select(pos)
	})
}

// EndTurn passes the turn to the other player
func (s *Service) EndTurn(gameID string) (Result, error) {
	return s.act(gameID, false, func(g *game.Game) []game.Event {
		return g.EndTurn()
	})
}

// ResetGame restores the standard starting position
func (s *Service) ResetGame(gameID string) (Result, error) {
	return s.act(gameID, true, func(g *game.Game) []game.Event {
		return g.Reset()
	})
}

// act runs fn against a game under the write lock, then archives and
// broadcasts whatever it produced. Only reset may touch a finished game.
func (s *Service) act(gameID string, reset bool, fn func(*game.Game) []game.Event) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.games[gameID]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	g := sess.game
	if !reset && g.State() != core.StateOngoing {
		return Result{}, ErrGameOver
	}

	events := fn(g)
	sess.touched = s.now()

	if len(events) > 0 {
		s.archive(gameID, g, events, reset)
		s.waiter.NotifyGame(gameID, g.Version())
	}

	return Result{Events: events, View: g.View()}, nil
}

// archive mirrors the outcome of one action into storage
func (s *Service) archive(gameID string, g *game.Game, events []game.Event, reset bool) {
	if s.store == nil {
		return
	}
	if reset {
		s.store.RecordReset(gameID, g.InitialLayout(), g.Turn().String())
		return
	}
	at := s.now().UTC()

	for _, ev := range events {
		switch ev.Kind {
		case game.EventBoardUpdated:
			move, ok := g.LastMove()
			if !ok {
				continue
			}
			s.store.RecordMove(storage.MoveRecord{
				GameID:          gameID,
				MoveNumber:      len(g.Moves()),
				Notation:        move.String(),
				LayoutAfterMove: g.CurrentLayout(),
				Player:          move.Player.String(),
				Capture:         move.Capture,
				Promoted:        move.Promoted,
				MoveTimeUTC:     at,
			})
		case game.EventPlayerWon:
			s.store.RecordOutcome(gameID, ev.Player.String(), at)
		}
	}
}

// GetBoard returns the layout and ASCII diagram of a game's board
func (s *Service) GetBoard(gameID string) (string, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.games[gameID]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	b := sess.game.Board()
	return b.String(), b.ToASCII(), nil
}

// DeleteGame removes a game from memory
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	// Wake all long-pollers before the game disappears
	s.waiter.RemoveGame(gameID)

	delete(s.games, gameID)
	return nil
}
