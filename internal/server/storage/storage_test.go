package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := NewStore(path, false)
	require.NoError(t, err)
	require.NoError(t, s.InitDB())
	return s
}

func TestArchiveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	s := openStore(t, path)
	s.RecordNewGame(GameRecord{
		GameID:         "g1",
		InitialLayout:  "8/8/8/8/3b4/2r5/8/8",
		StartingPlayer: "red",
		StartTimeUTC:   start,
	})
	s.RecordMove(MoveRecord{
		GameID:          "g1",
		MoveNumber:      1,
		Notation:        "c3xe5",
		LayoutAfterMove: "8/8/8/4r3/8/8/8/8",
		Player:          "red",
		Capture:         true,
		MoveTimeUTC:     start.Add(time.Second),
	})
	s.RecordOutcome("g1", "red", start.Add(2*time.Second))
	require.NoError(t, s.Close())
	assert.True(t, s.IsHealthy())

	// Reopen: Close drained the writer queue
	s = openStore(t, path)
	defer s.Close()

	games, err := s.QueryGames("*", "")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "g1", games[0].GameID)
	assert.Equal(t, "red", games[0].Winner)
	require.NotNil(t, games[0].EndTimeUTC)
	assert.Equal(t, 0, games[0].Resets)

	moves, err := s.QueryMoves("g1")
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, "c3xe5", moves[0].Notation)
	assert.True(t, moves[0].Capture)
	assert.False(t, moves[0].Promoted)

	games, err = s.QueryGames("", "black")
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestRecordReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")

	s := openStore(t, path)
	s.RecordNewGame(GameRecord{GameID: "g2", InitialLayout: "8/8/8/8/8/8/8/8", StartingPlayer: "black", StartTimeUTC: time.Now().UTC()})
	s.RecordMove(MoveRecord{GameID: "g2", MoveNumber: 1, Notation: "b6-a5", LayoutAfterMove: "x", Player: "black", MoveTimeUTC: time.Now().UTC()})
	s.RecordOutcome("g2", "black", time.Now().UTC())
	s.RecordReset("g2", "start", "red")
	require.NoError(t, s.Close())

	s = openStore(t, path)
	defer s.Close()

	games, err := s.QueryGames("g2", "*")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "", games[0].Winner)
	assert.Nil(t, games[0].EndTimeUTC)
	assert.Equal(t, 1, games[0].Resets)
	assert.Equal(t, "red", games[0].StartingPlayer)
	assert.Equal(t, "start", games[0].InitialLayout)

	moves, err := s.QueryMoves("g2")
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestFailedWriteDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	s := openStore(t, path)

	// Move for a game that does not exist violates the foreign key
	s.RecordMove(MoveRecord{GameID: "missing", MoveNumber: 1, Notation: "a3-b4", LayoutAfterMove: "x", Player: "red", MoveTimeUTC: time.Now().UTC()})
	require.NoError(t, s.Close())
	assert.False(t, s.IsHealthy())
}

func TestDeleteDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	s := openStore(t, path)
	require.NoError(t, s.DeleteDB())
	assert.NoFileExists(t, path)
}
