package board

import "fmt"

// Size is the number of rows and columns on the board
const Size = 8

// Position addresses one cell by row and column, both in [0, Size)
type Position struct {
	Row int
	Col int
}

func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Valid reports whether the position lies on the board
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Dark reports whether the cell belongs to the playable parity class
func (p Position) Dark() bool {
	return (p.Row+p.Col)%2 == 1
}

// String renders the algebraic square name: file from the column, rank counted
// from the bottom row, so (7,0) is "a1" and (0,7) is "h8".
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%c", 'a'+p.Col, '0'+Size-p.Row)
}

func (p Position) index() int {
	return p.Row*Size + p.Col
}

// ParseSquare converts an algebraic square name such as "c3" into a Position
func ParseSquare(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("invalid square %q: expected file and rank", s)
	}
	file, rank := s[0], s[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'a'+Size-1 || rank < '1' || rank > '0'+Size {
		return Position{}, fmt.Errorf("invalid square %q: out of range a1-h8", s)
	}
	return Position{Row: Size - int(rank-'0'), Col: int(file - 'a')}, nil
}
