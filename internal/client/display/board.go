package display

import (
	"fmt"
	"io"
	"strings"

	"checkers/internal/board"
	"checkers/internal/core"
)

// RenderBoard draws a layout string, marking the selected square if any
func RenderBoard(w io.Writer, layout string, selected *core.Square) error {
	b, err := board.Parse(layout)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(Cyan + "   a  b  c  d  e  f  g  h" + Reset + "\n")
	for r := 0; r < board.Size; r++ {
		sb.WriteString(fmt.Sprintf("%s%d%s ", Cyan, board.Size-r, Reset))
		for c := 0; c < board.Size; c++ {
			p := board.Pos(r, c)
			piece, ok := b.At(p)
			isSelected := selected != nil && selected.Row == r && selected.Col == c

			switch {
			case !ok && p.Dark():
				sb.WriteString(" . ")
			case !ok:
				sb.WriteString("   ")
			default:
				color := White
				if piece.Owner == core.PlayerRed {
					color = Red
				}
				left, right := " ", " "
				if isSelected {
					left, right = "[", "]"
				}
				sb.WriteString(fmt.Sprintf("%s%s%c%s%s", left, color, piece.Symbol(), Reset, right))
			}
		}
		sb.WriteString(fmt.Sprintf(" %s%d%s\n", Cyan, board.Size-r, Reset))
	}
	sb.WriteString(Cyan + "   a  b  c  d  e  f  g  h" + Reset + "\n")

	_, err = io.WriteString(w, sb.String())
	return err
}
