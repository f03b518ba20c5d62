// apps/go-term/internal/session/session.go
//
// Turn loop for one game.
// Responsibilities:
//   - Read a candidate per turn; re-prompt inline on invalid input without
//     consuming an attempt.
//   - Classify, record, and repaint after each valid guess.
//   - Announce the result and release the canvas.
//
// State transitions:
//   - All letters Correct → won.
//   - MaxAttempts rows without a win → lost, solution revealed.
//   - Render failure → aborted; the canvas is left as is.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-term/internal/canvas"
	"github.com/robalobadob/wordle/apps/go-term/internal/game"
)

const guessPrompt = "Enter a word guess:"

// shownInput is how much of a rejected line is quoted back to the player.
const shownInput = 16

// ErrInput is returned when the input stream fails or ends mid-game.
var ErrInput = errors.New("session: input unavailable")

var wordRe = regexp.MustCompile(`^[a-z]{5}$`)

// Renderer is the drawing surface a Session repaints after every turn.
type Renderer interface {
	DrawLogo() error
	DrawBoard(rows []game.Row) error
	DrawInputError(message string) error
	Prompt(message string) error
	Echoed(input string)
	Announce(message string) error
	Teardown() error
}

// Dictionary answers whether a candidate is an accepted word.
type Dictionary interface {
	Contains(w string) bool
}

// Result summarizes a finished game.
type Result struct {
	Won      bool
	Attempts int
	Solution string
}

// Session plays one game. It owns its board and renderer exclusively.
type Session struct {
	solution string
	dict     Dictionary
	render   Renderer
	in       *bufio.Scanner
	board    *game.Board
}

// New prepares a session for solution. The renderer must already be
// initialized.
func New(solution string, dict Dictionary, r Renderer, in io.Reader) *Session {
	return &Session{
		solution: strings.ToLower(solution),
		dict:     dict,
		render:   r,
		in:       bufio.NewScanner(in),
		board:    game.NewBoard(),
	}
}

// Board returns the session's board.
func (s *Session) Board() *game.Board { return s.board }

// Run plays until the game is won, lost, or aborted. ctx is checked between
// turns only.
func (s *Session) Run(ctx context.Context) (Result, error) {
	res := Result{Solution: s.solution}

	if err := s.render.DrawLogo(); err != nil {
		return res, err
	}
	if err := s.render.DrawBoard(s.board.Rows()); err != nil {
		return res, err
	}

	for attempt := 1; attempt <= game.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return res, s.abort(err)
		}

		guess, err := s.readGuess()
		if err != nil {
			return res, s.abort(err)
		}
		row, err := game.Classify(guess, s.solution)
		if err != nil {
			return res, s.abort(err)
		}
		if err := s.board.Record(attempt, row); err != nil {
			return res, s.abort(err)
		}
		res.Attempts = attempt
		log.Debug().Int("attempt", attempt).Str("guess", guess).Msg("guess recorded")

		if err := s.render.DrawBoard(s.board.Rows()); err != nil {
			return res, err
		}
		if game.IsSolved(row) {
			res.Won = true
			break
		}
	}

	if err := s.render.Announce(s.summary(res)); err != nil {
		return res, err
	}
	return res, s.render.Teardown()
}

// readGuess prompts until the player enters an acceptable word.
func (s *Session) readGuess() (string, error) {
	if err := s.render.Prompt(guessPrompt); err != nil {
		return "", err
	}
	for {
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return "", fmt.Errorf("%w: %v", ErrInput, err)
			}
			return "", fmt.Errorf("%w: %v", ErrInput, io.EOF)
		}
		s.render.Echoed(s.in.Text())
		raw := strings.TrimSpace(s.in.Text())
		guess := strings.ToLower(raw)
		if s.acceptable(guess) {
			return guess, nil
		}
		msg := fmt.Sprintf("Invalid word %q! Please enter a new guess:", ansi.Truncate(raw, shownInput, "..."))
		if err := s.render.DrawInputError(msg); err != nil {
			return "", err
		}
	}
}

// acceptable checks shape and dictionary membership. The solution itself is
// always accepted, since a remote solution may be missing from the list.
func (s *Session) acceptable(guess string) bool {
	if !wordRe.MatchString(guess) {
		return false
	}
	return guess == s.solution || s.dict.Contains(guess)
}

func (s *Session) summary(res Result) string {
	if res.Won {
		return canvas.Paint(canvas.GreenBold, "WINNER!") +
			" Word was \"" + canvas.Paint(canvas.Bold, strings.ToUpper(s.solution)) + "\""
	}
	return fmt.Sprintf("Failed to guess in %d tries! Word was %q", game.MaxAttempts, s.solution)
}

// abort releases the canvas after a non-render failure. Render failures are
// returned as they are: the cursor can no longer be trusted.
func (s *Session) abort(cause error) error {
	if isRenderFailure(cause) {
		return cause
	}
	if err := s.render.Teardown(); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func isRenderFailure(err error) bool {
	return errors.Is(err, canvas.ErrRender) ||
		errors.Is(err, canvas.ErrFailed) ||
		errors.Is(err, canvas.ErrGeometry)
}
