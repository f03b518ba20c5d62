// apps/go-term/internal/game/types.go
//
// Core type definitions for the terminal game.
// Defines:
//   - Classification: per-letter result of a guess (correct/present/absent),
//     plus Unset for cells that have not been played yet.
//   - Letter: one board cell (glyph + classification).
//   - Row: one attempt, exactly WordLength letters.

package game

const (
	// WordLength is the number of letters in every candidate and solution.
	WordLength = 5
	// MaxAttempts is the number of rows on the board.
	MaxAttempts = 6
)

// Classification represents the evaluation result for a single letter.
type Classification uint8

const (
	Unset   Classification = iota // cell not yet played
	Absent                        // letter not in the solution (after tally)
	Present                       // letter in the solution, other position
	Correct                       // letter in the correct position
)

func (c Classification) String() string {
	switch c {
	case Unset:
		return "unset"
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	default:
		return "unknown"
	}
}

// Letter is a single board cell. It is a value type: cells are replaced,
// never edited in place.
type Letter struct {
	Glyph rune
	Class Classification
}

// Blank is the letter used for cells before any guess is recorded.
var Blank = Letter{Glyph: ' ', Class: Unset}

// Row holds one attempt.
type Row [WordLength]Letter

// BlankRow returns a row made only of Blank letters.
func BlankRow() Row {
	var r Row
	for i := range r {
		r[i] = Blank
	}
	return r
}

// Word returns the glyphs of the row as a string.
func (r Row) Word() string {
	b := make([]rune, 0, WordLength)
	for _, l := range r {
		b = append(b, l.Glyph)
	}
	return string(b)
}
