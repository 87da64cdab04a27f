package commands

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"checkers/internal/client/api"
	"checkers/internal/server/http"
	"checkers/internal/server/processor"
	"checkers/internal/server/service"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Registry, *Session, *bytes.Buffer) {
	t.Helper()

	svc := service.New(nil, []byte("0123456789abcdef0123456789abcdef"))
	app := http.NewFiberApp(processor.New(svc), svc, http.Config{RateLimit: 1000})
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	s := &Session{Client: api.New(srv.URL), Out: &out}
	return NewRegistry(s), s, &out
}

func TestNewGameAndMove(t *testing.T) {
	r, s, out := newTestSession(t)

	require.NoError(t, r.Execute("new"))
	require.NotEmpty(t, s.GameID)
	assert.NotEmpty(t, s.Client.Token)
	assert.Contains(t, out.String(), "Game created")
	assert.Contains(t, out.String(), "Pieces: red 12, black 12")

	out.Reset()
	require.NoError(t, r.Execute("c3"))
	assert.Contains(t, out.String(), "Selected c3")

	out.Reset()
	require.NoError(t, r.Execute("select d4"))
	assert.Contains(t, out.String(), "a  b  c")

	out.Reset()
	require.NoError(t, r.Execute("end"))
	assert.Contains(t, out.String(), "Black")
	assert.Contains(t, out.String(), "to move")
}

func TestUnchangedActions(t *testing.T) {
	r, _, out := newTestSession(t)
	require.NoError(t, r.Execute("new"))

	out.Reset()
	require.NoError(t, r.Execute("end"))
	assert.Contains(t, out.String(), "Make a move before ending the turn")

	out.Reset()
	require.NoError(t, r.Execute("e5"))
	assert.Contains(t, out.String(), "Nothing to do at e5")
}

func TestCustomLayoutWin(t *testing.T) {
	r, s, out := newTestSession(t)

	require.NoError(t, r.Execute("new 8/8/8"))
	assert.Contains(t, out.String(), "invalid layout")
	assert.Empty(t, s.GameID)

	out.Reset()
	require.NoError(t, r.Execute("new 8/8/1b6/2r5/8/8/8/8 red"))
	require.NotEmpty(t, s.GameID)

	out.Reset()
	require.NoError(t, r.Execute("c5"))
	require.NoError(t, r.Execute("a7"))
	assert.Contains(t, out.String(), "Game over: red wins!")

	out.Reset()
	require.NoError(t, r.Execute("show"))
	assert.Contains(t, out.String(), "Moves: [c5xa7]")

	out.Reset()
	require.NoError(t, r.Execute("c5"))
	assert.Contains(t, out.String(), "GAME_OVER")
}

func TestCommandsNeedGame(t *testing.T) {
	r, _, out := newTestSession(t)

	for _, cmd := range []string{"show", "end", "reset", "poll", "state", "c3"} {
		out.Reset()
		require.NoError(t, r.Execute(cmd))
		assert.Contains(t, out.String(), "no current game", cmd)
	}
}

func TestJoinReadOnly(t *testing.T) {
	r, s, out := newTestSession(t)
	require.NoError(t, r.Execute("new"))
	gameID := s.GameID
	token := s.Client.Token

	out.Reset()
	require.NoError(t, r.Execute("join "+gameID))
	assert.Contains(t, out.String(), "read-only")

	out.Reset()
	require.NoError(t, r.Execute("c3"))
	assert.Contains(t, out.String(), "401")

	out.Reset()
	require.NoError(t, r.Execute("join "+gameID+" "+token))
	require.NoError(t, r.Execute("c3"))
	assert.Contains(t, out.String(), "Selected c3")
}

func TestDeleteClearsGame(t *testing.T) {
	r, s, out := newTestSession(t)
	require.NoError(t, r.Execute("new"))

	require.NoError(t, r.Execute("delete"))
	assert.Contains(t, out.String(), "Game deleted")
	assert.Empty(t, s.GameID)
	assert.Empty(t, s.Client.Token)
}

func TestUtilityCommands(t *testing.T) {
	r, s, out := newTestSession(t)

	require.NoError(t, r.Execute("health"))
	assert.Contains(t, out.String(), "games: 0")

	out.Reset()
	require.NoError(t, r.Execute("bogus"))
	assert.Contains(t, out.String(), "Unknown command: bogus")

	out.Reset()
	require.NoError(t, r.Execute("help"))
	assert.Contains(t, out.String(), "select")
	assert.Contains(t, out.String(), "poll")

	out.Reset()
	require.NoError(t, r.Execute("v"))
	assert.True(t, s.Verbose)
	require.NoError(t, r.Execute("health"))
	assert.Contains(t, out.String(), "[API] GET /health")

	assert.ErrorIs(t, r.Execute("exit"), ErrExit)
}
