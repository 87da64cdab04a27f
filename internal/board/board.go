package board

import (
	"errors"
	"fmt"
	"strings"

	"checkers/internal/core"
)

const (
	// HomeRows is the number of rows each side fills at setup
	HomeRows = Size/2 - 1

	// PiecesPerSide at setup
	PiecesPerSide = HomeRows * Size / 2

	StartingLayout = "1b1b1b1b/b1b1b1b1/1b1b1b1b/8/8/r1r1r1r1/1r1r1r1r/r1r1r1r1"
)

// Board is a flat array of optional pieces. It is a value type; assigning a
// Board copies every cell.
type Board struct {
	squares [Size * Size]Piece
}

// New returns the standard starting layout: Black on the top rows, Red on the
// bottom rows, every piece on a dark cell, the two middle rows empty.
func New() Board {
	var b Board
	for r := 0; r < Size; r++ {
		var owner core.Player
		switch {
		case r < HomeRows:
			owner = core.PlayerBlack
		case r >= Size-HomeRows:
			owner = core.PlayerRed
		default:
			continue
		}
		for c := 0; c < Size; c++ {
			if p := Pos(r, c); p.Dark() {
				b.squares[p.index()] = Man(owner)
			}
		}
	}
	return b
}

// Empty returns a board with no pieces
func Empty() Board {
	return Board{}
}

// At returns the piece on p, if any
func (b Board) At(p Position) (Piece, bool) {
	if !p.Valid() {
		return Piece{}, false
	}
	piece := b.squares[p.index()]
	return piece, piece.Owner != core.PlayerNone
}

// Owner returns the owner of the piece on p or PlayerNone
func (b Board) Owner(p Position) core.Player {
	piece, _ := b.At(p)
	return piece.Owner
}

// Place puts piece on p, replacing whatever was there
func (b *Board) Place(p Position, piece Piece) {
	if !p.Valid() {
		panic(fmt.Sprintf("board: place outside board at %v", p))
	}
	b.squares[p.index()] = piece
}

// Remove clears p and returns what was there
func (b *Board) Remove(p Position) (Piece, bool) {
	piece, ok := b.At(p)
	if ok {
		b.squares[p.index()] = Piece{}
	}
	return piece, ok
}

// Count returns the number of pieces owned by player
func (b Board) Count(player core.Player) int {
	n := 0
	for _, piece := range b.squares {
		if piece.Owner == player {
			n++
		}
	}
	return n
}

// Occupied returns the number of non-empty cells
func (b Board) Occupied() int {
	return b.Count(core.PlayerRed) + b.Count(core.PlayerBlack)
}

// String returns the layout notation: rows top to bottom separated by '/',
// pieces as r/b (men) or R/B (kings), digits for runs of empty cells.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Size; c++ {
			piece, ok := b.At(Pos(r, c))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.Symbol())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	return sb.String()
}

// ErrInvalidLayout wraps every Parse failure
var ErrInvalidLayout = errors.New("invalid layout")

// Parse reads the layout notation produced by String. Pieces on light cells
// are rejected since no legal sequence of diagonal moves can reach them.
func Parse(layout string) (Board, error) {
	var b Board

	rows := strings.Split(layout, "/")
	if len(rows) != Size {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidLayout, Size, len(rows))
	}

	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if ch >= '1' && ch <= '0'+Size {
				c += int(ch - '0')
				continue
			}
			if c >= Size {
				return b, fmt.Errorf("%w: too many cells in row %d", ErrInvalidLayout, r)
			}

			var piece Piece
			switch ch {
			case 'r':
				piece = Man(core.PlayerRed)
			case 'b':
				piece = Man(core.PlayerBlack)
			case 'R':
				piece = King(core.PlayerRed)
			case 'B':
				piece = King(core.PlayerBlack)
			default:
				return b, fmt.Errorf("%w: unexpected %q in row %d", ErrInvalidLayout, ch, r)
			}

			p := Pos(r, c)
			if !p.Dark() {
				return b, fmt.Errorf("%w: piece on light cell %s", ErrInvalidLayout, p)
			}
			b.Place(p, piece)
			c++
		}
		if c != Size {
			return b, fmt.Errorf("%w: row %d has %d cells", ErrInvalidLayout, r, c)
		}
	}

	return b, nil
}

// ToASCII creates an ASCII representation of the board
func (b Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 0; r < Size; r++ {
		sb.WriteString(fmt.Sprintf("%d ", Size-r))
		for c := 0; c < Size; c++ {
			piece, ok := b.At(Pos(r, c))
			if !ok {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", piece.Symbol()))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", Size-r))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
