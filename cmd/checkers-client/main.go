// Package main is an interactive terminal client for the checkers server API.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"checkers/internal/client/api"
	"checkers/internal/client/commands"
	"checkers/internal/client/display"

	"github.com/chzyer/readline"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "checkers server base URL")
	flag.Parse()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("checkers"),
		HistoryFile:     ".checkers_client_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	session := &commands.Session{
		Client: api.New(*apiURL),
		Out:    rl.Stdout(),
	}
	registry := commands.NewRegistry(session)

	fmt.Fprintf(session.Out, "%sCheckers API client%s - server %s\n", display.Cyan, display.Reset, session.Client.BaseURL)
	fmt.Fprintf(session.Out, "Type 'help' for available commands\n")

	for {
		rl.SetPrompt(prompt(session))
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Input error: %v\n", err)
			os.Exit(1)
		}

		if errors.Is(registry.Execute(strings.TrimSpace(line)), commands.ErrExit) {
			return
		}
	}
}

func prompt(s *commands.Session) string {
	if s.GameID == "" {
		return display.Prompt("checkers")
	}
	return display.Prompt("checkers:" + s.GameID[:8])
}
