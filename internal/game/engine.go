// apps/go-term/internal/game/engine.go
//
// Guess evaluation and board bookkeeping for a single game.
// Responsibilities:
//   - Classify a candidate against the solution with the two-pass algorithm.
//   - Record classified rows on a fixed 6x5 board, in attempt order.
//   - Report whether a row solves the game.
//
// Notes:
//   - Classify is pure and safe for concurrent use.
//   - Board is owned by one session and is not safe for concurrent use.
package game

import (
	"errors"
	"fmt"
)

var (
	ErrLength        = errors.New("game: word length mismatch")
	ErrAlphabet      = errors.New("game: word must be lowercase a-z")
	ErrOutOfRange    = errors.New("game: attempt out of range")
	ErrOutOfOrder    = errors.New("game: attempts must be recorded in order")
	ErrIncompleteRow = errors.New("game: row has unset letters")
)

// Classify scores candidate against solution.
//
// Pass 1:
//   - Mark exact matches Correct.
//   - Count the solution letters that were not matched.
//
// Pass 2:
//   - For each remaining candidate letter: if the count for that letter is
//     positive, mark Present and decrement; otherwise mark Absent.
//
// A letter is therefore never marked Correct or Present more times than it
// occurs in the solution.
func Classify(candidate, solution string) (Row, error) {
	var row Row
	if len(candidate) != WordLength || len(solution) != WordLength {
		return row, fmt.Errorf("%w: candidate %d, solution %d, want %d",
			ErrLength, len(candidate), len(solution), WordLength)
	}
	if !isAlpha(candidate) || !isAlpha(solution) {
		return row, ErrAlphabet
	}

	// Remaining solution letters, indexed a..z.
	var counts [26]int

	// First pass: correct positions; tally the rest of the solution.
	for i := 0; i < WordLength; i++ {
		row[i].Glyph = rune(candidate[i])
		if candidate[i] == solution[i] {
			row[i].Class = Correct
		} else {
			counts[idx(solution[i])]++
		}
	}

	// Second pass: present/absent for the non-correct positions.
	for i := 0; i < WordLength; i++ {
		if row[i].Class == Correct {
			continue
		}
		j := idx(candidate[i])
		if counts[j] > 0 {
			row[i].Class = Present
			counts[j]--
		} else {
			row[i].Class = Absent
		}
	}
	return row, nil
}

// IsSolved reports whether every letter in row is Correct.
func IsSolved(row Row) bool {
	for _, l := range row {
		if l.Class != Correct {
			return false
		}
	}
	return true
}

// Board is the attempt history of one game.
type Board struct {
	rows   [MaxAttempts]Row
	played int
}

// NewBoard returns a board with every row blank.
func NewBoard() *Board {
	b := &Board{}
	for i := range b.rows {
		b.rows[i] = BlankRow()
	}
	return b
}

// Record stores row as attempt number attempt (1-based).
//
// Attempts must be recorded in order with no gaps, and the row must be fully
// classified. Only the addressed row changes.
func (b *Board) Record(attempt int, row Row) error {
	if attempt < 1 || attempt > MaxAttempts {
		return fmt.Errorf("%w: %d (max %d)", ErrOutOfRange, attempt, MaxAttempts)
	}
	if attempt != b.played+1 {
		return fmt.Errorf("%w: got %d, next is %d", ErrOutOfOrder, attempt, b.played+1)
	}
	for _, l := range row {
		if l.Class == Unset {
			return ErrIncompleteRow
		}
	}
	b.rows[attempt-1] = row
	b.played = attempt
	return nil
}

// Played returns the number of recorded attempts.
func (b *Board) Played() int { return b.played }

// Rows returns a copy of every row in attempt order, played or not.
func (b *Board) Rows() []Row {
	out := make([]Row, MaxAttempts)
	copy(out, b.rows[:])
	return out
}

// idx maps a lowercase ASCII letter to 0..25.
// Assumes the input was checked with isAlpha.
func idx(c byte) int { return int(c - 'a') }

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
