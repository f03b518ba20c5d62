package canvas

import "github.com/robalobadob/wordle/apps/go-term/internal/game"

// Style names one entry of the SGR table.
type Style uint8

const (
	Reset Style = iota
	Bold
	SlowBlink
	GreenBg
	YellowBg
	WhiteBg
	GrayBg
	GreenFg
	BlackFg
	RedFg
	BlackBold
	GreenBold
	RedBold
	numStyles
)

// sgr holds the literal escape sequence for every Style.
//
// The *Bold entries are a color followed by a separate bold sequence in one
// string. Some terminals drop one of the attributes when they arrive as a
// single stacked sequence like ESC[1;30m.
var sgr = [numStyles]string{
	Reset:     "\x1b[0m",
	Bold:      "\x1b[1m",
	SlowBlink: "\x1b[5m",
	GreenBg:   "\x1b[102m",
	YellowBg:  "\x1b[103m",
	WhiteBg:   "\x1b[47m",
	GrayBg:    "\x1b[100m",
	GreenFg:   "\x1b[0;92m",
	BlackFg:   "\x1b[0;30m",
	RedFg:     "\x1b[0;31m",
	BlackBold: "\x1b[0;30m" + "\x1b[1m",
	GreenBold: "\x1b[0;92m" + "\x1b[1m",
	RedBold:   "\x1b[0;31m" + "\x1b[1m",
}

// String returns the escape sequence for s.
func (s Style) String() string {
	if s >= numStyles {
		return ""
	}
	return sgr[s]
}

// Paint wraps text in style and a trailing reset.
func Paint(s Style, text string) string {
	return s.String() + text + Reset.String()
}

// cellBackground maps each classification to its cell background.
var cellBackground = [...]Style{
	game.Unset:   WhiteBg,
	game.Absent:  GrayBg,
	game.Present: YellowBg,
	game.Correct: GreenBg,
}

// Background returns the cell background style for c.
func Background(c game.Classification) Style {
	if int(c) >= len(cellBackground) {
		return WhiteBg
	}
	return cellBackground[c]
}
