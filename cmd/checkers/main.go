// Package main runs a two-player checkers game in the terminal.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"checkers/internal/cli"
	clitransport "checkers/internal/transport/cli"

	"github.com/chzyer/readline"
)

// lineReader ends the session on ^C the same way as on EOF
type lineReader struct {
	*readline.Instance
}

func (r lineReader) Readline() (string, error) {
	line, err := r.Instance.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

func main() {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".checkers_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	view := cli.New(lineReader{rl}, rl.Stdout())
	if err := view.SetTheme(cli.DefaultTheme(os.Stdout)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set theme: %v\n", err)
	}

	handler := clitransport.New(view)

	view.ShowWelcome()
	if err := handler.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Input error: %v\n", err)
		os.Exit(1)
	}
}
