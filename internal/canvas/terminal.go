package canvas

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Terminal is the device a Canvas draws on.
type Terminal interface {
	io.Writer
	// Size reports the terminal dimensions in cells.
	Size() (width, height int, err error)
	// Echo reports whether typed input is echoed back, taking one line.
	Echo() bool
}

// StdTerminal is a Terminal backed by the process's standard streams.
type StdTerminal struct {
	out *os.File
	in  *os.File
}

// NewStdTerminal checks that out is a terminal and wraps it. in is only
// inspected for echo.
func NewStdTerminal(out, in *os.File) (*StdTerminal, error) {
	if !isTTY(out) {
		return nil, fmt.Errorf("%w: %s is not a terminal", ErrTerminal, out.Name())
	}
	return &StdTerminal{out: out, in: in}, nil
}

func (t *StdTerminal) Write(p []byte) (int, error) { return t.out.Write(p) }

func (t *StdTerminal) Size() (int, int, error) {
	return term.GetSize(int(t.out.Fd()))
}

func (t *StdTerminal) Echo() bool { return t.in != nil && isTTY(t.in) }

func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
