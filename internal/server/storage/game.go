package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// RecordNewGame asynchronously records a new game
func (s *Store) RecordNewGame(record GameRecord) {
	s.enqueue("game", func(tx *sql.Tx) error {
		query := `INSERT INTO games (
			game_id, initial_layout, starting_player, start_time_utc
		) VALUES (?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.InitialLayout, record.StartingPlayer, record.StartTimeUTC,
		)
		return err
	})
}

// RecordMove asynchronously records a move
func (s *Store) RecordMove(record MoveRecord) {
	s.enqueue("move", func(tx *sql.Tx) error {
		query := `INSERT INTO moves (
			game_id, move_number, notation, layout_after_move, player, capture, promoted, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.MoveNumber, record.Notation, record.LayoutAfterMove,
			record.Player, record.Capture, record.Promoted, record.MoveTimeUTC,
		)
		return err
	})
}

// RecordOutcome asynchronously stores the winner of a game
func (s *Store) RecordOutcome(gameID, winner string, at time.Time) {
	s.enqueue("outcome", func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE games SET winner = ?, end_time_utc = ? WHERE game_id = ?`, winner, at, gameID)
		return err
	})
}

// RecordReset asynchronously drops the move history of a game that was reset
func (s *Store) RecordReset(gameID, initialLayout, startingPlayer string) {
	s.enqueue("reset", func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM moves WHERE game_id = ?`, gameID); err != nil {
			return err
		}
		_, err := tx.Exec(`UPDATE games SET
			initial_layout = ?, starting_player = ?, winner = '', end_time_utc = NULL, resets = resets + 1
			WHERE game_id = ?`, initialLayout, startingPlayer, gameID)
		return err
	})
}

// QueryGames retrieves games with optional filtering; "" or "*" match everything
func (s *Store) QueryGames(gameID, winner string) ([]GameRecord, error) {
	query := `SELECT
		game_id, initial_layout, starting_player, start_time_utc, winner, end_time_utc, resets
	FROM games WHERE 1=1`

	var args []any

	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}

	if winner != "" && winner != "*" {
		query += " AND winner = ?"
		args = append(args, winner)
	}

	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		var end sql.NullTime
		if err := rows.Scan(
			&g.GameID, &g.InitialLayout, &g.StartingPlayer, &g.StartTimeUTC, &g.Winner, &end, &g.Resets,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if end.Valid {
			t := end.Time
			g.EndTimeUTC = &t
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// QueryMoves returns the recorded moves of a game in order
func (s *Store) QueryMoves(gameID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(`SELECT
		move_id, game_id, move_number, notation, layout_after_move, player, capture, promoted, move_time_utc
	FROM moves WHERE game_id = ? ORDER BY move_number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(
			&m.MoveID, &m.GameID, &m.MoveNumber, &m.Notation, &m.LayoutAfterMove,
			&m.Player, &m.Capture, &m.Promoted, &m.MoveTimeUTC,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return moves, nil
}
