package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/game"
	"checkers/internal/server/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

const duel = "8/8/8/8/3b4/2r5/8/8" // red c3 can jump black d4

func kinds(events []game.Event) []game.EventKind {
	out := make([]game.EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestCreateAndGet(t *testing.T) {
	s := New(nil, testSecret)

	id, token, view, err := s.CreateGame("", core.PlayerNone)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NotEmpty(t, token)
	assert.Equal(t, board.StartingLayout, view.Layout)
	assert.Equal(t, core.PlayerRed, view.Turn)
	assert.Equal(t, 12, view.RedCount)
	assert.Equal(t, 12, view.BlackCount)

	got, err := s.GetGame(id)
	require.NoError(t, err)
	assert.Equal(t, view.Layout, got.Layout)
	assert.Equal(t, 1, s.GameCount())

	_, err = s.GetGame("nope")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestCreateFromLayout(t *testing.T) {
	s := New(nil, testSecret)

	_, _, view, err := s.CreateGame(duel, core.PlayerBlack)
	require.NoError(t, err)
	assert.Equal(t, duel, view.Layout)
	assert.Equal(t, core.PlayerBlack, view.Turn)
	assert.Equal(t, 1, view.RedCount)

	_, _, _, err = s.CreateGame("garbage", core.PlayerRed)
	assert.Error(t, err)
	assert.Equal(t, 1, s.GameCount())
}

func TestGameLimit(t *testing.T) {
	s := New(nil, testSecret)
	for i := 0; i < MaxGames; i++ {
		_, _, _, err := s.CreateGame("", core.PlayerNone)
		require.NoError(t, err)
	}
	_, _, _, err := s.CreateGame("", core.PlayerNone)
	assert.ErrorIs(t, err, ErrTooManyGames)
}

func TestPlayThroughService(t *testing.T) {
	s := New(nil, testSecret)
	id, _, _, err := s.CreateGame("", core.PlayerNone)
	require.NoError(t, err)

	// Illegal: select an opponent piece
	res, err := s.SelectCell(id, board.Pos(2, 1))
	require.NoError(t, err)
	assert.False(t, res.Changed())

	res, err = s.SelectCell(id, board.Pos(5, 2))
	require.NoError(t, err)
	assert.Equal(t, []game.EventKind{game.EventPieceSelected}, kinds(res.Events))

	res, err = s.SelectCell(id, board.Pos(4, 3))
	require.NoError(t, err)
	assert.Equal(t, []game.EventKind{game.EventBoardUpdated}, kinds(res.Events))
	assert.True(t, res.View.HasMoved)
	assert.Equal(t, []string{"c3-d4"}, res.View.Moves)

	res, err = s.EndTurn(id)
	require.NoError(t, err)
	assert.Equal(t, []game.EventKind{game.EventTurnChanged}, kinds(res.Events))
	assert.Equal(t, core.PlayerBlack, res.View.Turn)

	// Nothing moved yet for black
	res, err = s.EndTurn(id)
	require.NoError(t, err)
	assert.False(t, res.Changed())

	_, err = s.SelectCell("missing", board.Pos(0, 0))
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestFinishedGameRejectsPlay(t *testing.T) {
	s := New(nil, testSecret)
	id, _, _, err := s.CreateGame(duel, core.PlayerRed)
	require.NoError(t, err)

	_, err = s.SelectCell(id, board.Pos(5, 2))
	require.NoError(t, err)
	res, err := s.SelectCell(id, board.Pos(3, 4))
	require.NoError(t, err)
	assert.Equal(t, []game.EventKind{game.EventPlayerWon, game.EventBoardUpdated}, kinds(res.Events))
	assert.Equal(t, core.StateRedWins, res.View.State)

	_, err = s.SelectCell(id, board.Pos(3, 4))
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = s.EndTurn(id)
	assert.ErrorIs(t, err, ErrGameOver)

	res, err = s.ResetGame(id)
	require.NoError(t, err)
	assert.Equal(t, []game.EventKind{game.EventBoardUpdated, game.EventTurnChanged}, kinds(res.Events))
	assert.Equal(t, core.StateOngoing, res.View.State)
	assert.Equal(t, board.StartingLayout, res.View.Layout)
}

func TestSeatTokens(t *testing.T) {
	s := New(nil, testSecret)
	id1, tok1, _, err := s.CreateGame("", core.PlayerNone)
	require.NoError(t, err)
	id2, tok2, _, err := s.CreateGame("", core.PlayerNone)
	require.NoError(t, err)

	assert.NoError(t, s.ValidateSeatToken(id1, tok1))
	assert.NoError(t, s.ValidateSeatToken(id2, tok2))
	assert.ErrorIs(t, s.ValidateSeatToken(id1, tok2), ErrInvalidSeat)
	assert.ErrorIs(t, s.ValidateSeatToken(id1, "not-a-token"), ErrInvalidSeat)

	other := New(nil, []byte("fedcba9876543210fedcba9876543210"))
	assert.ErrorIs(t, other.ValidateSeatToken(id1, tok1), ErrInvalidSeat)
}

func TestDeleteGame(t *testing.T) {
	s := New(nil, testSecret)
	id, _, view, err := s.CreateGame("", core.PlayerNone)
	require.NoError(t, err)

	ch := s.RegisterWait(context.Background(), id, view.Version)
	require.NoError(t, s.DeleteGame(id))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("waiter not released on delete")
	}

	assert.ErrorIs(t, s.DeleteGame(id), ErrGameNotFound)
}

func TestLongPollOnMissingGame(t *testing.T) {
	s := New(nil, testSecret)
	s.waiter.timeout = time.Minute

	for _, version := range []int{-1, 0, 7} {
		ch := s.RegisterWait(context.Background(), "6f1c2a8e-3d4b-4c5a-9e7f-0a1b2c3d4e5f", version)
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("wait on missing game with version %d did not return", version)
		}
	}
	assert.Zero(t, s.waiter.Waiting("6f1c2a8e-3d4b-4c5a-9e7f-0a1b2c3d4e5f"))
}

func TestLongPollRacingActions(t *testing.T) {
	s := New(nil, testSecret)
	s.waiter.timeout = time.Minute
	id, _, _, err := s.CreateGame("", core.PlayerNone)
	require.NoError(t, err)

	// Each wait starts from a version read before a concurrent move; none may be lost
	for i := 0; i < 20; i++ {
		view, err := s.GetGame(id)
		require.NoError(t, err)

		done := make(chan struct{})
		go func() {
			defer close(done)
			square := board.Pos(5, 0)
			if i%2 == 1 {
				square = board.Pos(5, 2)
			}
			_, _ = s.SelectCell(id, square)
		}()

		ch := s.RegisterWait(context.Background(), id, view.Version)
		<-done
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("round %d: wakeup lost", i)
		}
	}

	require.NoError(t, s.Shutdown(time.Second))
}

func TestLongPollWakesOnEvent(t *testing.T) {
	s := New(nil, testSecret)
	id, _, view, err := s.CreateGame("", core.PlayerNone)
	require.NoError(t, err)

	ch := s.RegisterWait(context.Background(), id, view.Version)
	select {
	case <-ch:
		t.Fatal("woke without a change")
	case <-time.After(20 * time.Millisecond):
	}

	// Rejected selection produces no events and must not wake anyone
	_, err = s.SelectCell(id, board.Pos(0, 0))
	require.NoError(t, err)
	select {
	case <-ch:
		t.Fatal("woke on a rejected selection")
	case <-time.After(20 * time.Millisecond):
	}

	_, err = s.SelectCell(id, board.Pos(5, 0))
	require.NoError(t, err)
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("waiter not woken")
	}

	// A stale version returns immediately
	stale := s.RegisterWait(context.Background(), id, view.Version)
	select {
	case <-stale:
	case <-time.After(time.Second):
		t.Fatal("stale waiter not released")
	}

	require.NoError(t, s.Shutdown(time.Second))
}

func TestCleanupIdle(t *testing.T) {
	s := New(nil, testSecret)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	idle, _, _, err := s.CreateGame("", core.PlayerNone)
	require.NoError(t, err)
	clock = clock.Add(IdleGameTTL / 2)
	busy, _, _, err := s.CreateGame("", core.PlayerNone)
	require.NoError(t, err)

	clock = clock.Add(IdleGameTTL/2 + time.Minute)
	assert.Equal(t, 1, s.cleanupIdle())

	_, err = s.GetGame(idle)
	assert.ErrorIs(t, err, ErrGameNotFound)
	_, err = s.GetGame(busy)
	assert.NoError(t, err)
}

func TestArchiveRecordsGame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")
	store, err := storage.NewStore(path, false)
	require.NoError(t, err)
	require.NoError(t, store.InitDB())

	s := New(store, testSecret)
	assert.Equal(t, "ok", s.GetStorageHealth())

	id, _, _, err := s.CreateGame(duel, core.PlayerRed)
	require.NoError(t, err)
	_, err = s.SelectCell(id, board.Pos(5, 2))
	require.NoError(t, err)
	_, err = s.SelectCell(id, board.Pos(3, 4))
	require.NoError(t, err)

	require.NoError(t, s.Shutdown(time.Second))

	store, err = storage.NewStore(path, false)
	require.NoError(t, err)
	defer store.Close()

	games, err := store.QueryGames(id, "")
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, duel, games[0].InitialLayout)
	assert.Equal(t, "red", games[0].Winner)

	moves, err := store.QueryMoves(id)
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, "c3xe5", moves[0].Notation)
	assert.True(t, moves[0].Capture)
	assert.Equal(t, 1, moves[0].MoveNumber)
}
