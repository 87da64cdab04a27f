package display

// Terminal color codes
const (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

// Prompt returns a colored prompt string
func Prompt(text string) string {
	return Yellow + text + " > " + Reset
}

// ColorForTurn returns a colored player name
func ColorForTurn(turn string) string {
	switch turn {
	case "red":
		return Red + "Red" + Reset
	case "black":
		return White + "Black" + Reset
	default:
		return turn
	}
}
