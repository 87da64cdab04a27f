package api

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"checkers/internal/core"
	"checkers/internal/server/http"
	"checkers/internal/server/processor"
	"checkers/internal/server/service"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	svc := service.New(nil, []byte("0123456789abcdef0123456789abcdef"))
	app := http.NewFiberApp(processor.New(svc), svc, http.Config{RateLimit: 1000})
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestClientGameFlow(t *testing.T) {
	c := newTestClient(t)

	game, err := c.CreateGame(core.CreateGameRequest{})
	require.NoError(t, err)
	assert.Equal(t, game.Token, c.Token)
	assert.Equal(t, "red", game.Turn)

	act, err := c.SelectCell(game.GameID, 5, 2)
	require.NoError(t, err)
	assert.True(t, act.Changed)
	require.NotNil(t, act.Game.Selected)
	assert.Equal(t, "c3", act.Game.Selected.Name)

	act, err = c.SelectCell(game.GameID, 4, 3)
	require.NoError(t, err)
	assert.True(t, act.Game.HasMoved)

	act, err = c.EndTurn(game.GameID)
	require.NoError(t, err)
	assert.Equal(t, "black", act.Game.Turn)

	b, err := c.GetBoard(game.GameID)
	require.NoError(t, err)
	assert.Equal(t, act.Game.Layout, b.Layout)
	assert.NotEmpty(t, b.Board)

	act, err = c.ResetGame(game.GameID)
	require.NoError(t, err)
	assert.Equal(t, game.Layout, act.Game.Layout)

	require.NoError(t, c.DeleteGame(game.GameID))

	_, err = c.GetGame(game.GameID)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, core.ErrGameNotFound, apiErr.Response.Code)
}

func TestClientWaitGame(t *testing.T) {
	c := newTestClient(t)

	game, err := c.CreateGame(core.CreateGameRequest{})
	require.NoError(t, err)

	done := make(chan *core.GameResponse, 1)
	go func() {
		resp, err := c.WaitGame(game.GameID, game.Version)
		if err == nil {
			done <- resp
		}
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	_, err = c.SelectCell(game.GameID, 5, 2)
	require.NoError(t, err)

	select {
	case resp := <-done:
		require.NotNil(t, resp)
		assert.Greater(t, resp.Version, game.Version)
	case <-time.After(5 * time.Second):
		t.Fatal("long poll did not return")
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Status: 400, Response: core.ErrorResponse{
		Error: "invalid layout", Code: core.ErrInvalidLayout, Details: "expected 8 rows",
	}}
	assert.Equal(t, "400 invalid layout (INVALID_LAYOUT): expected 8 rows", err.Error())
}
