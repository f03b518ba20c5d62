// Package canvas draws the game into a fixed region of the terminal.
//
// The region is reserved once by printing blank lines, and every later draw
// moves the cursor relative to the region top. The Canvas tracks the cursor
// row itself and never asks the terminal where the cursor is, so it must be
// the only writer to the terminal while it is Ready.
package canvas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-term/internal/game"
)

var (
	ErrTerminal = errors.New("canvas: terminal unavailable")
	ErrTooSmall = errors.New("canvas: terminal too small")
	ErrRender   = errors.New("canvas: render failed")
	ErrGeometry = errors.New("canvas: cursor outside reserved region")
	ErrState    = errors.New("canvas: operation not allowed in current state")
	ErrFailed   = errors.New("canvas: unusable after render failure")
)

const (
	// boardHeight is one line per attempt plus a blank separator.
	boardHeight = game.MaxAttempts * 2
	// promptHeight covers the prompt and the echoed input line.
	promptHeight = 2
	// cellWidth is " g " plus the gap after the cell.
	cellWidth = 4
)

// Geometry is the layout of the reserved region, in lines from its top.
// Width is the widest drawn line; Columns is the terminal width.
type Geometry struct {
	LogoHeight   int
	BoardHeight  int
	PromptHeight int
	Width        int
	Columns      int
}

// Height is the total number of reserved lines.
func (g Geometry) Height() int { return g.LogoHeight + g.BoardHeight + g.PromptHeight }

// BoardTop is the first line of the board.
func (g Geometry) BoardTop() int { return g.LogoHeight }

// PromptTop is the first line under the board.
func (g Geometry) PromptTop() int { return g.LogoHeight + g.BoardHeight }

type state uint8

const (
	uninitialized state = iota
	ready
	terminated
	failed
)

func (s state) String() string {
	switch s {
	case uninitialized:
		return "uninitialized"
	case ready:
		return "ready"
	case terminated:
		return "terminated"
	default:
		return "failed"
	}
}

// Canvas renders the logo, board, and prompt lines into the reserved region.
// It is not safe for concurrent use.
type Canvas struct {
	term  Terminal
	state state
	geo   Geometry
	logo  []string
	row   int // cursor line, relative to the region top
}

// New returns an uninitialized Canvas drawing on t.
func New(t Terminal) *Canvas {
	return &Canvas{term: t}
}

// Geometry returns the layout fixed by Initialize.
func (c *Canvas) Geometry() Geometry { return c.geo }

// Initialize reserves the region: it saves the cursor, then prints one
// newline per reserved line so the region exists even at the bottom of the
// screen. The cursor ends at the region bottom.
func (c *Canvas) Initialize(offline bool) error {
	if err := c.expect(uninitialized); err != nil {
		return err
	}
	width, height, err := c.term.Size()
	if err != nil {
		return fmt.Errorf("%w: query size: %v", ErrTerminal, err)
	}

	c.logo = Logo(offline)
	c.geo = Geometry{
		LogoHeight:   len(c.logo),
		BoardHeight:  boardHeight,
		PromptHeight: promptHeight,
		Width:        widest(c.logo),
		Columns:      width,
	}
	if height < c.geo.Height() || width < c.geo.Width {
		return fmt.Errorf("%w: need %dx%d, have %dx%d",
			ErrTooSmall, c.geo.Width, c.geo.Height(), width, height)
	}

	var b strings.Builder
	b.WriteString(ansi.SaveCursor)
	b.WriteString(strings.Repeat("\n", c.geo.Height()))
	if err := c.flush(&b); err != nil {
		return err
	}
	c.row = c.geo.Height()
	c.state = ready
	log.Debug().Int("height", c.geo.Height()).Int("width", c.geo.Width).Bool("offline", offline).Msg("canvas reserved")
	return nil
}

// DrawLogo writes the bold logo at the region top and leaves the cursor at
// the top of the board zone.
func (c *Canvas) DrawLogo() error {
	if err := c.expect(ready); err != nil {
		return err
	}
	var b strings.Builder
	if err := c.moveTo(&b, 0); err != nil {
		return err
	}
	b.WriteString(Bold.String())
	for _, l := range c.logo {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString(Reset.String())
	return c.commit(&b, c.geo.BoardTop())
}

// DrawBoard clears everything from the board top down and writes rows, one
// styled cell per letter with a blank line after each row. The cursor ends
// just below the board and is made visible.
func (c *Canvas) DrawBoard(rows []game.Row) error {
	if err := c.expect(ready); err != nil {
		return err
	}
	if len(rows)*2 > c.geo.BoardHeight {
		return fmt.Errorf("%w: %d rows do not fit", ErrGeometry, len(rows))
	}
	var b strings.Builder
	if err := c.moveTo(&b, c.geo.BoardTop()); err != nil {
		return err
	}
	b.WriteString(ansi.HideCursor)
	b.WriteString(ansi.EraseScreenBelow)

	pad := strings.Repeat(" ", max(0, (c.geo.Width-game.WordLength*cellWidth)/2))
	for _, row := range rows {
		b.WriteString(pad)
		for _, l := range row {
			b.WriteString(BlackBold.String())
			b.WriteString(Background(l.Class).String())
			b.WriteByte(' ')
			b.WriteRune(l.Glyph)
			b.WriteByte(' ')
			b.WriteString(Reset.String())
			b.WriteByte(' ')
		}
		b.WriteString("\n\n")
	}
	b.WriteString(ansi.ShowCursor)
	return c.commit(&b, c.geo.BoardTop()+len(rows)*2)
}

// Prompt writes message on the line under the board and accounts for the
// player's echoed input line.
func (c *Canvas) Prompt(message string) error {
	if err := c.expect(ready); err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(c.clip(message))
	b.WriteByte('\n')
	return c.commit(&b, c.row+1+c.echoLines())
}

// Echoed accounts for a line the player typed, as the terminal echoed it.
// Prompt and DrawInputError already count one echoed line; a line wider
// than the terminal wraps and leaves the cursor further down. The extra
// lines may fall below the region. Later draws move up from there and
// erase them.
func (c *Canvas) Echoed(input string) {
	if c.state != ready || !c.term.Echo() {
		return
	}
	if extra := c.wrapped(input) - 1; extra > 0 {
		log.Debug().Int("lines", extra).Msg("echoed input wrapped")
		c.row += extra
	}
}

// DrawInputError replaces the prompt and any echoed input with message in
// red. The player's next input goes on the line after it.
func (c *Canvas) DrawInputError(message string) error {
	if err := c.expect(ready); err != nil {
		return err
	}
	var b strings.Builder
	if err := c.moveTo(&b, c.geo.PromptTop()); err != nil {
		return err
	}
	b.WriteString(ansi.EraseScreenBelow)
	b.WriteString(Paint(RedFg, c.clip(message)))
	b.WriteByte('\n')
	return c.commit(&b, c.geo.PromptTop()+1+c.echoLines())
}

// Announce writes a single result line at the cursor.
func (c *Canvas) Announce(message string) error {
	if err := c.expect(ready); err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(c.clip(message))
	b.WriteByte('\n')
	return c.commit(&b, c.row+1)
}

// Teardown returns to the region top, prints one newline per reserved line,
// and restores the cursor saved by Initialize. The Canvas cannot be used
// afterwards.
func (c *Canvas) Teardown() error {
	if err := c.expect(ready); err != nil {
		return err
	}
	var b strings.Builder
	if err := c.moveTo(&b, 0); err != nil {
		return err
	}
	b.WriteString(strings.Repeat("\n", c.geo.Height()))
	b.WriteString(ansi.RestoreCursor)
	if err := c.flush(&b); err != nil {
		return err
	}
	c.row = 0
	c.state = terminated
	log.Debug().Msg("canvas released")
	return nil
}

// expect checks the lifecycle state before an operation.
func (c *Canvas) expect(want state) error {
	switch {
	case c.state == want:
		return nil
	case c.state == failed:
		return ErrFailed
	default:
		return fmt.Errorf("%w: %s, want %s", ErrState, c.state, want)
	}
}

// moveTo appends the relative movement from the tracked row to target. The
// tracked row only changes once the frame is written.
func (c *Canvas) moveTo(b *strings.Builder, target int) error {
	if target < 0 || target > c.geo.Height() {
		return fmt.Errorf("%w: row %d of %d", ErrGeometry, target, c.geo.Height())
	}
	b.WriteByte('\r')
	// CursorUp(0) and CursorDown(0) still move one line.
	switch d := target - c.row; {
	case d < 0:
		b.WriteString(ansi.CursorUp(-d))
	case d > 0:
		b.WriteString(ansi.CursorDown(d))
	}
	return nil
}

// commit writes the frame and records where it left the cursor.
func (c *Canvas) commit(b *strings.Builder, end int) error {
	if end < 0 || end > c.geo.Height() {
		return fmt.Errorf("%w: frame ends at row %d of %d", ErrGeometry, end, c.geo.Height())
	}
	if err := c.flush(b); err != nil {
		return err
	}
	c.row = end
	return nil
}

// flush writes the frame in one call. Any failure leaves the Canvas failed:
// the real cursor position is unknown after a partial write.
func (c *Canvas) flush(b *strings.Builder) error {
	if _, err := c.term.Write([]byte(b.String())); err != nil {
		c.state = failed
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

func (c *Canvas) echoLines() int {
	if c.term.Echo() {
		return 1
	}
	return 0
}

// wrapped is the number of screen lines input takes when echoed.
func (c *Canvas) wrapped(input string) int {
	w := ansi.StringWidth(strings.TrimRight(input, "\r\n"))
	if c.geo.Columns <= 0 || w <= c.geo.Columns {
		return 1
	}
	return (w + c.geo.Columns - 1) / c.geo.Columns
}

// clip keeps a message on a single terminal line. The last column stays
// free so the newline after it never follows an auto-wrap.
func (c *Canvas) clip(s string) string {
	s = oneLine(s)
	clipped := ansi.Truncate(s, max(1, c.geo.Columns-1), "")
	if clipped != s {
		clipped += Reset.String()
	}
	return clipped
}

func oneLine(s string) string {
	s = strings.TrimRight(s, "\r\n")
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
