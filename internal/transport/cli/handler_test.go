package cli

import (
	"bytes"
	"strings"
	"testing"

	"checkers/internal/board"
	"checkers/internal/cli"
	"checkers/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, script ...string) (*CLIHandler, string) {
	t.Helper()
	var out bytes.Buffer
	term := cli.New(cli.NewScannerReader(strings.NewReader(strings.Join(script, "\n")+"\n")), &out)
	h := New(term)
	require.NoError(t, h.Run())
	return h, out.String()
}

func TestOpeningMove(t *testing.T) {
	h, out := run(t, "c3", "d4", "end")

	g := h.Game()
	assert.Equal(t, core.PlayerBlack, g.Turn())
	assert.Equal(t, []string{"c3-d4"}, g.Moves())
	assert.Contains(t, out, "[red]> ")
	assert.Contains(t, out, "[red c3]> ")
	assert.Contains(t, out, "Black to move.")
	assert.Contains(t, out, "[black]> ")
}

func TestRejectedInput(t *testing.T) {
	h, out := run(t, "end", "b6", "z9", "c3", "c5")

	assert.Contains(t, out, "Make a move before ending the turn.")
	assert.Contains(t, out, "Nothing to do at b6.")
	assert.Contains(t, out, `unknown command or square "z9"`)
	assert.Contains(t, out, "Nothing to do at c5.")

	// c3 is still selected
	pos, ok := h.Game().Selected()
	require.True(t, ok)
	assert.Equal(t, board.Pos(5, 2), pos)
}

func TestLoadAndWin(t *testing.T) {
	h, out := run(t,
		"load 8/8/8/8/3b4/2r5/8/8",
		"c3", "e5",
		"e5",
		"end",
		"history",
		"reset",
	)

	assert.Contains(t, out, "Position loaded.")
	assert.Contains(t, out, "Game over: red wins!")
	assert.Contains(t, out, "[over]> ")
	assert.Contains(t, out, "The game is over.")
	assert.Contains(t, out, "1. red c3xe5")

	g := h.Game()
	assert.Equal(t, core.StateOngoing, g.State())
	assert.Equal(t, board.StartingLayout, g.CurrentLayout())
	assert.Equal(t, core.PlayerRed, g.Turn())
}

func TestLoadErrors(t *testing.T) {
	h, out := run(t, "load", "load 8/8 red", "load 8/8/8/8/8/8/8/8 green")

	assert.Contains(t, out, "Usage: load <layout> [red|black]")
	assert.Contains(t, out, "invalid layout")
	assert.Contains(t, out, "invalid player: green")
	assert.Equal(t, board.StartingLayout, h.Game().CurrentLayout())
}

func TestSettings(t *testing.T) {
	_, out := run(t, "color gray", "color pink", "color", "verbose", "c3", "help", "quit", "c3")

	assert.Contains(t, out, "Color theme set to: gray")
	assert.Contains(t, out, "invalid theme: pink")
	assert.Contains(t, out, "Usage: color")
	assert.Contains(t, out, "Verbose mode: true")
	assert.Contains(t, out, "Selected c3")
	assert.Contains(t, out, "Commands:")
	// quit stops before the last line is read
	assert.Equal(t, 1, strings.Count(out, "Selected c3"))
}
