package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/game"

	"golang.org/x/term"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdSelect
	CmdEnd
	CmdReset
	CmdLoad
	CmdShow
	CmdColor
	CmdVerbose
	CmdHistory
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
}

// LineReader is satisfied by *readline.Instance
type LineReader interface {
	Readline() (string, error)
}

// Prompter is implemented by line readers that draw their own prompt
type Prompter interface {
	SetPrompt(prompt string)
}

// scannerReader adapts an io.Reader to LineReader for pipes and tests
type scannerReader struct {
	s *bufio.Scanner
}

func NewScannerReader(r io.Reader) LineReader {
	return &scannerReader{s: bufio.NewScanner(r)}
}

func (r *scannerReader) Readline() (string, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.s.Text(), nil
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg    string
	darkBg     string
	selectedBg string
	red        string
	black      string
	reset      string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg:    "\033[48;5;230m", // Beige
		darkBg:     "\033[48;5;94m",  // Brown
		selectedBg: "\033[48;5;178m", // Gold
		red:        "\033[1;91m",
		black:      "\033[1;30m",
		reset:      "\033[0m",
	},
	ThemeGreen: {
		lightBg:    "\033[48;5;157m", // Light green
		darkBg:     "\033[48;5;22m",  // Dark green
		selectedBg: "\033[48;5;178m",
		red:        "\033[1;91m",
		black:      "\033[1;30m",
		reset:      "\033[0m",
	},
	ThemeGray: {
		lightBg:    "\033[48;5;251m", // Light gray
		darkBg:     "\033[48;5;240m", // Dark gray
		selectedBg: "\033[48;5;178m",
		red:        "\033[1;91m",
		black:      "\033[1;30m",
		reset:      "\033[0m",
	},
}

// DefaultTheme picks colors only when f is a terminal
func DefaultTheme(f *os.File) ColorTheme {
	if term.IsTerminal(int(f.Fd())) {
		return ThemeBrown
	}
	return ThemeOff
}

// Source is the game state the view draws from
type Source interface {
	Board() board.Board
	Selected() (board.Position, bool)
	Turn() core.Player
}

// CLI is the terminal view. It reacts to engine notifications by redrawing
// the board and printing status lines.
type CLI struct {
	input   LineReader
	output  io.Writer
	theme   ColorTheme
	verbose bool
	source  Source
}

func New(input LineReader, output io.Writer) *CLI {
	return &CLI{
		input:  input,
		output: output,
		theme:  ThemeOff,
	}
}

// Attach sets the game the view renders
func (c *CLI) Attach(src Source) {
	c.source = src
}

// GetCommand reads one command; end of input reads as quit
func (c *CLI) GetCommand() (*Command, error) {
	line, err := c.input.Readline()
	if err != nil {
		if err == io.EOF {
			return &Command{Type: CmdQuit}, nil
		}
		return nil, err
	}

	return ParseCommand(line), nil
}

func ParseCommand(input string) *Command {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "end", "e":
		return &Command{Type: CmdEnd}
	case "reset":
		return &Command{Type: CmdReset}
	case "load":
		return &Command{Type: CmdLoad, Args: args}
	case "show", "board":
		return &Command{Type: CmdShow}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "verbose":
		return &Command{Type: CmdVerbose}
	case "history":
		return &Command{Type: CmdHistory}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		// Anything else is a square
		return &Command{Type: CmdSelect, Args: []string{parts[0]}}
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) Theme() ColorTheme {
	return c.theme
}

func (c *CLI) ToggleVerbose() bool {
	c.verbose = !c.verbose
	return c.verbose
}

func (c *CLI) IsVerbose() bool {
	return c.verbose
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

func (c *CLI) ShowPrompt(prompt string) {
	if p, ok := c.input.(Prompter); ok {
		p.SetPrompt(prompt)
		return
	}
	fmt.Fprint(c.output, prompt)
}

// Engine notifications

func (c *CLI) BoardUpdated() {
	c.DisplayBoard()
}

func (c *CLI) PieceSelected(pos board.Position) {
	if c.verbose {
		c.ShowMessage(fmt.Sprintf("Selected %s", pos))
	}
	c.DisplayBoard()
}

func (c *CLI) TurnChanged(player core.Player) {
	c.ShowMessage(fmt.Sprintf("%s to move.", title(player)))
}

func (c *CLI) PlayerWon(winner core.Player) {
	c.ShowMessage(fmt.Sprintf("\nGame over: %s wins!", winner))
	c.ShowMessage("Type 'reset' to play again.")
}

// DisplayBoard draws the attached game with the selection highlighted
func (c *CLI) DisplayBoard() {
	if c.source == nil {
		return
	}
	b := c.source.Board()
	selected, hasSelection := c.source.Selected()

	theme := themes[c.theme]
	var sb strings.Builder

	sb.WriteString("\n   a  b  c  d  e  f  g  h\n")

	for r := 0; r < board.Size; r++ {
		sb.WriteString(fmt.Sprintf("%d ", board.Size-r))
		for col := 0; col < board.Size; col++ {
			p := board.Pos(r, col)
			piece, occupied := b.At(p)
			isSelected := hasSelection && p == selected

			if c.theme == ThemeOff {
				switch {
				case !occupied && p.Dark():
					sb.WriteString(" . ")
				case !occupied:
					sb.WriteString("   ")
				case isSelected:
					sb.WriteString(fmt.Sprintf("[%c]", piece.Symbol()))
				default:
					sb.WriteString(fmt.Sprintf(" %c ", piece.Symbol()))
				}
				continue
			}

			bg := theme.lightBg
			if p.Dark() {
				bg = theme.darkBg
			}
			if isSelected {
				bg = theme.selectedBg
			}

			if !occupied {
				sb.WriteString(fmt.Sprintf("%s   %s", bg, theme.reset))
				continue
			}
			color := theme.black
			if piece.Owner == core.PlayerRed {
				color = theme.red
			}
			sb.WriteString(fmt.Sprintf("%s%s %c %s", bg, color, piece.Symbol(), theme.reset))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", board.Size-r))
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")

	if c.verbose {
		sb.WriteString(fmt.Sprintf("red %d, black %d\n", b.Count(core.PlayerRed), b.Count(core.PlayerBlack)))
	}

	c.ShowMessage(sb.String())
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  <square>         - Select a cell (e.g., c3); selecting a target moves the selected piece
  end              - End your turn after moving
  reset            - Start over from the standard position
  load <layout> [red|black]
                   - Start from a layout (e.g., 8/8/8/8/3b4/2r5/8/8)
  show             - Redraw the board
  color <theme>    - Set board color theme (off|brown|green|gray)
  verbose          - Toggle selection and piece count details
  history          - Show moves and positions so far
  quit/exit        - Exit the program
  help/?           - Show this help message

Red moves up the board, Black moves down. After a capture the piece stays
selected so you can keep jumping; type 'end' when you are done.`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Checkers! Two players, one keyboard.")
	c.ShowMessage("Select a piece by its square, then its destination. Type 'end' to pass the turn.")
	c.ShowMessage("Commands: <square>, end, reset, load, show, color, verbose, history, help/?, quit")
	c.ShowMessage("")
}

func (c *CLI) ShowGameHistory(snapshots []game.Snapshot, state core.State) {
	if len(snapshots) == 0 {
		return
	}
	c.ShowMessage(fmt.Sprintf("Starting layout: %s", snapshots[0].Layout))

	for i, snap := range snapshots[1:] {
		line := fmt.Sprintf("%d. %s %s", i+1, snap.Mover, snap.PreviousMove)
		if c.verbose {
			line += "  " + snap.Layout
		}
		c.ShowMessage(line)
	}
	c.ShowMessage(fmt.Sprintf("Current layout: %s", snapshots[len(snapshots)-1].Layout))
	c.ShowMessage(fmt.Sprintf("Game state: %s", state))
}

func title(p core.Player) string {
	s := p.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
