// Package stream writes frames as plain text to any io.Writer, homing the
// cursor with an ANSI escape before each frame. It suits pipes, recordings
// and terminals that tcell cannot drive.
package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"golang.org/x/term"

	"consolefps/internal/engine"
	"consolefps/internal/frame"
)

// ErrNotTerminal is returned by TerminalSize for files that are not a TTY.
var ErrNotTerminal = errors.New("not a terminal")

const (
	home       = "\x1b[H"
	clearAll   = "\x1b[2J"
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

// Writer is an engine.Display over an io.Writer.
type Writer struct {
	bw      *bufio.Writer
	ansi    bool
	started bool
}

// New returns a Writer. With ansi set every frame starts by homing the
// cursor; otherwise frames are separated by a blank line.
func New(w io.Writer, ansi bool) *Writer {
	return &Writer{bw: bufio.NewWriter(w), ansi: ansi}
}

// Present implements engine.Display. A closed pipe reports engine.ErrClosed.
func (s *Writer) Present(buf *frame.Buffer) error {
	eol := "\n"
	if s.ansi {
		// The terminal may be in raw mode, which needs the carriage return.
		eol = "\r\n"
		if !s.started {
			s.bw.WriteString(hideCursor + clearAll)
		}
		s.bw.WriteString(home)
	} else if s.started {
		s.bw.WriteString(eol)
	}
	s.started = true

	for y := 0; y < buf.Height(); y++ {
		s.bw.WriteString(buf.Row(y))
		s.bw.WriteString(eol)
	}
	if err := s.bw.Flush(); err != nil {
		if errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed) {
			return fmt.Errorf("%w: %v", engine.ErrClosed, err)
		}
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close restores the cursor.
func (s *Writer) Close() error {
	if s.ansi && s.started {
		s.bw.WriteString(showCursor)
	}
	return s.bw.Flush()
}

// TerminalSize reports the size of f when it is a terminal.
func TerminalSize(f *os.File) (width, height int, err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, fmt.Errorf("%s: %w", f.Name(), ErrNotTerminal)
	}
	return term.GetSize(fd)
}
