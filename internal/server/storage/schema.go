package storage

import "time"

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID         string     `db:"game_id"`
	InitialLayout  string     `db:"initial_layout"`
	StartingPlayer string     `db:"starting_player"`
	StartTimeUTC   time.Time  `db:"start_time_utc"`
	Winner         string     `db:"winner"` // empty while ongoing
	EndTimeUTC     *time.Time `db:"end_time_utc"`
	Resets         int        `db:"resets"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID          int64     `db:"move_id"`
	GameID          string    `db:"game_id"`
	MoveNumber      int       `db:"move_number"`
	Notation        string    `db:"notation"`
	LayoutAfterMove string    `db:"layout_after_move"`
	Player          string    `db:"player"`
	Capture         bool      `db:"capture"`
	Promoted        bool      `db:"promoted"`
	MoveTimeUTC     time.Time `db:"move_time_utc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	initial_layout TEXT NOT NULL,
	starting_player TEXT NOT NULL CHECK(starting_player IN ('red', 'black')),
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	winner TEXT NOT NULL DEFAULT '' CHECK(winner IN ('', 'red', 'black')),
	end_time_utc DATETIME,
	resets INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	notation TEXT NOT NULL,
	layout_after_move TEXT NOT NULL,
	player TEXT NOT NULL CHECK(player IN ('red', 'black')),
	capture INTEGER NOT NULL DEFAULT 0,
	promoted INTEGER NOT NULL DEFAULT 0,
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_winner ON games(winner);
`
