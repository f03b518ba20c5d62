package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/robalobadob/wordle/apps/go-term/internal/canvas"
	"github.com/robalobadob/wordle/apps/go-term/internal/game"
)

var _ Renderer = (*canvas.Canvas)(nil)

type dict map[string]bool

func (d dict) Contains(w string) bool { return d[w] }

// recorder is a Renderer that logs calls and can fail on demand.
type recorder struct {
	calls     []string
	errors    []string
	announced []string
	boards    [][]game.Row
	echoed    []string
	failBoard int // fail the n-th DrawBoard call (1-based), 0 never
}

func (r *recorder) DrawLogo() error { r.calls = append(r.calls, "logo"); return nil }

func (r *recorder) DrawBoard(rows []game.Row) error {
	r.calls = append(r.calls, "board")
	r.boards = append(r.boards, rows)
	if r.failBoard == len(r.boards) {
		return canvas.ErrRender
	}
	return nil
}

func (r *recorder) DrawInputError(m string) error {
	r.calls = append(r.calls, "error")
	r.errors = append(r.errors, m)
	return nil
}

func (r *recorder) Prompt(string) error { r.calls = append(r.calls, "prompt"); return nil }

func (r *recorder) Echoed(in string) { r.echoed = append(r.echoed, in) }

func (r *recorder) Announce(m string) error {
	r.calls = append(r.calls, "announce")
	r.announced = append(r.announced, m)
	return nil
}

func (r *recorder) Teardown() error { r.calls = append(r.calls, "teardown"); return nil }

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

var words = dict{"nouns": true, "crane": true, "snaps": true, "slate": true}

func TestRunWinAfterInvalidInput(t *testing.T) {
	r := &recorder{}
	in := strings.NewReader("hello\nab\nnouns\n  SNAPS \n")
	s := New("snaps", words, r, in)

	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.Won || res.Attempts != 2 || res.Solution != "snaps" {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := r.count("error"); got != 2 {
		t.Fatalf("input errors: got %d want 2", got)
	}
	if r.errors[0] != `Invalid word "hello"! Please enter a new guess:` {
		t.Fatalf("error message: %q", r.errors[0])
	}
	if got := r.count("board"); got != 3 {
		t.Fatalf("board draws: got %d want 3", got)
	}
	if r.calls[0] != "logo" || r.calls[len(r.calls)-1] != "teardown" {
		t.Fatalf("call order: %v", r.calls)
	}
	if len(r.announced) != 1 || !strings.Contains(r.announced[0], "WINNER!") || !strings.Contains(r.announced[0], "SNAPS") {
		t.Fatalf("announcement: %q", r.announced)
	}

	rows := s.Board().Rows()
	if rows[0].Word() != "nouns" || rows[1].Word() != "snaps" || rows[2] != game.BlankRow() {
		t.Fatalf("board rows: %q %q %q", rows[0].Word(), rows[1].Word(), rows[2].Word())
	}
	want := []game.Classification{game.Present, game.Absent, game.Absent, game.Absent, game.Correct}
	for i, l := range rows[0] {
		if l.Class != want[i] {
			t.Fatalf("row 1 letter %d: got %s want %s", i, l.Class, want[i])
		}
	}
}

func TestRunQuotesLongInputShortened(t *testing.T) {
	r := &recorder{}
	long := strings.Repeat("x", 70)
	s := New("snaps", words, r, strings.NewReader(long+"\nsnaps\n"))
	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(r.echoed) != 2 || r.echoed[0] != long {
		t.Fatalf("every typed line should be reported as echoed: %q", r.echoed)
	}
	if len(r.errors) != 1 || strings.Contains(r.errors[0], long) {
		t.Fatalf("error message should not quote the whole line: %q", r.errors)
	}
	if !strings.HasPrefix(r.errors[0], `Invalid word "xxxx`) {
		t.Fatalf("error message: %q", r.errors[0])
	}
}

func TestRunLossRevealsSolution(t *testing.T) {
	r := &recorder{}
	in := strings.NewReader(strings.Repeat("crane\n", game.MaxAttempts+1))
	s := New("snaps", words, r, in)

	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Won || res.Attempts != game.MaxAttempts {
		t.Fatalf("unexpected result %+v", res)
	}
	if s.Board().Played() != game.MaxAttempts {
		t.Fatalf("played: got %d", s.Board().Played())
	}
	if len(r.announced) != 1 || r.announced[0] != `Failed to guess in 6 tries! Word was "snaps"` {
		t.Fatalf("announcement: %q", r.announced)
	}
	if r.count("teardown") != 1 {
		t.Fatalf("teardown calls: %d", r.count("teardown"))
	}
}

func TestRunAcceptsSolutionOutsideDictionary(t *testing.T) {
	r := &recorder{}
	s := New("qajaq", words, r, strings.NewReader("qajaq\n"))
	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.Won || res.Attempts != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunInputEnds(t *testing.T) {
	r := &recorder{}
	s := New("snaps", words, r, strings.NewReader("crane\n"))
	res, err := s.Run(context.Background())
	if !errors.Is(err, ErrInput) {
		t.Fatalf("got %v want ErrInput", err)
	}
	if res.Attempts != 1 {
		t.Fatalf("attempts: got %d want 1", res.Attempts)
	}
	if r.count("teardown") != 1 {
		t.Fatalf("canvas should be released after input failure")
	}
}

func TestRunRenderFailureSkipsTeardown(t *testing.T) {
	r := &recorder{failBoard: 2}
	s := New("snaps", words, r, strings.NewReader("crane\nsnaps\n"))
	if _, err := s.Run(context.Background()); !errors.Is(err, canvas.ErrRender) {
		t.Fatalf("got %v want ErrRender", err)
	}
	if r.count("teardown") != 0 {
		t.Fatalf("teardown must not run after a render failure")
	}
}

func TestRunStopsBetweenTurnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &recorder{}
	s := New("snaps", words, r, strings.NewReader("crane\n"))
	if _, err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v want context.Canceled", err)
	}
	if r.count("prompt") != 0 || r.count("teardown") != 1 {
		t.Fatalf("calls: %v", r.calls)
	}
}

// pipeTerminal is a non-echoing terminal for driving a real canvas.
type pipeTerminal struct {
	bytes.Buffer
	width int
}

func (p *pipeTerminal) Size() (int, int, error) { return p.width, 50, nil }
func (*pipeTerminal) Echo() bool                { return false }

func TestRunWithCanvas(t *testing.T) {
	term := &pipeTerminal{width: 100}
	c := canvas.New(term)
	if err := c.Initialize(true); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	s := New("snaps", words, c, strings.NewReader("zzzzz\nslate\nsnaps\n"))
	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.Won || res.Attempts != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	out := term.String()
	if !strings.Contains(out, "WINNER!") || !strings.Contains(out, canvas.Paint(canvas.RedFg, `Invalid word "zzzzz"! Please enter a new guess:`)) {
		t.Fatalf("output missing expected text:\n%q", out)
	}
	if err := c.DrawLogo(); !errors.Is(err, canvas.ErrState) {
		t.Fatalf("canvas should be terminated after the game, got %v", err)
	}
}

func TestRunWithCanvasKeepsLinesInsideNarrowTerminal(t *testing.T) {
	const width = 60
	term := &pipeTerminal{width: width}
	c := canvas.New(term)
	if err := c.Initialize(false); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	in := strings.NewReader(strings.Repeat("x", 70) + "\nsnaps\n")
	if _, err := New("snaps", words, c, in).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, line := range strings.Split(term.String(), "\n") {
		if w := ansi.StringWidth(line); w >= width {
			t.Fatalf("line of %d cells on a %d-column terminal: %q", w, width, line)
		}
	}
}
