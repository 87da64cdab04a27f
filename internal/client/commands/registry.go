// Package commands implements the checkers client REPL commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"checkers/internal/client/api"
	"checkers/internal/client/display"
)

// ErrExit is returned by Execute when the user asks to leave
var ErrExit = errors.New("exit")

// Session is the client state shared by all commands
type Session struct {
	Client  *api.Client
	Out     io.Writer
	GameID  string
	Version int // last game version seen, for poll
	Verbose bool
}

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(*Session, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  *Session
	commands map[string]*Command
}

func NewRegistry(session *Session) *Registry {
	r := &Registry{
		session:  session,
		commands: make(map[string]*Command),
	}

	r.registerGameCommands()

	r.Register(&Command{
		Name:        "health",
		ShortName:   ".",
		Description: "Check server health",
		Usage:       "health",
		Handler:     healthHandler,
	})

	r.Register(&Command{
		Name:        "url",
		ShortName:   "/",
		Description: "Show or set the API base URL",
		Usage:       "url [base-url]",
		Handler:     urlHandler,
	})

	r.Register(&Command{
		Name:        "verbose",
		ShortName:   "v",
		Description: "Toggle request tracing",
		Usage:       "verbose",
		Handler:     verboseHandler,
	})

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     r.helpHandler,
	})

	r.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Description: "Exit the client",
		Usage:       "exit",
		Handler:     exitHandler,
	})

	return r
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// Execute runs one input line. It returns ErrExit when the client should stop.
// A bare square name such as "c3" is shorthand for "select c3".
func (r *Registry) Execute(input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	cmdName := strings.ToLower(parts[0])
	args := parts[1:]

	cmd, exists := r.commands[cmdName]
	if !exists {
		if isSquare(cmdName) {
			cmd, args = r.commands["select"], parts
		} else {
			fmt.Fprintf(r.session.Out, "%sUnknown command: %s%s\n", display.Red, cmdName, display.Reset)
			fmt.Fprintf(r.session.Out, "Type 'help' for available commands\n")
			return nil
		}
	}

	r.session.Client.Verbose = r.session.Verbose
	r.session.Client.Trace = r.session.Out

	err := cmd.Handler(r.session, args)
	if errors.Is(err, ErrExit) {
		return err
	}
	if err != nil {
		fmt.Fprintf(r.session.Out, "%sError: %s%s\n", display.Red, err.Error(), display.Reset)
	}
	return nil
}

func (r *Registry) helpHandler(s *Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(s.Out, "\n%s%s%s - %s\n", display.Cyan, cmd.Name, display.Reset, cmd.Description)
		if cmd.ShortName != "" {
			fmt.Fprintf(s.Out, "Short form: %s%s%s\n", display.Cyan, cmd.ShortName, display.Reset)
		}
		fmt.Fprintf(s.Out, "Usage: %s\n", cmd.Usage)
		return nil
	}

	fmt.Fprintf(s.Out, "\n%sAvailable Commands:%s\n\n", display.Cyan, display.Reset)

	seen := make(map[string]bool)
	var names []string
	for _, cmd := range r.commands {
		if !seen[cmd.Name] {
			seen[cmd.Name] = true
			names = append(names, cmd.Name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := r.commands[name]
		shortPart := "    "
		if cmd.ShortName != "" {
			shortPart = fmt.Sprintf("[%s%s%s] ", display.Cyan, cmd.ShortName, display.Reset)
		}
		fmt.Fprintf(s.Out, "  %s%-10s %s\n", shortPart, cmd.Name, cmd.Description)
	}

	fmt.Fprintf(s.Out, "\nA square name alone (e.g. c3) selects it\n")
	fmt.Fprintf(s.Out, "Type 'help <command>' for detailed usage\n")
	return nil
}

func healthHandler(s *Session, args []string) error {
	resp, err := s.Client.Health()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "%sServer: %s%s  games: %d  storage: %s\n",
		display.Green, resp.Status, display.Reset, resp.Games, resp.Storage)
	return nil
}

func urlHandler(s *Session, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(s.Out, "API URL: %s\n", s.Client.BaseURL)
		return nil
	}
	s.Client.SetBaseURL(args[0])
	fmt.Fprintf(s.Out, "API URL set to %s\n", s.Client.BaseURL)
	return nil
}

func verboseHandler(s *Session, args []string) error {
	s.Verbose = !s.Verbose
	state := "off"
	if s.Verbose {
		state = "on"
	}
	fmt.Fprintf(s.Out, "Verbose %s\n", state)
	return nil
}

func exitHandler(s *Session, args []string) error {
	fmt.Fprintf(s.Out, "%sGoodbye!%s\n", display.Cyan, display.Reset)
	return ErrExit
}
