// Package console is the line-oriented terminal front end: it asks the human
// for moves and confirmations and renders the board and results.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

const defaultPlayerName = "You"

var quitCommands = map[string]struct{}{
	"q":    {},
	"quit": {},
	"exit": {},
}

type line struct {
	text string
	err  error
}

type Option func(console *Console)

// WithoutColor renders plain ASCII regardless of the terminal.
func WithoutColor() Option {
	return func(console *Console) {
		console.color = false
	}
}

// WithoutClear keeps previous output instead of clearing the screen before
// each board.
func WithoutClear() Option {
	return func(console *Console) {
		console.clear = false
	}
}

// WithPlayerName labels the human in the score board.
func WithPlayerName(name string) Option {
	return func(console *Console) {
		if name != "" {
			console.playerName = name
		}
	}
}

type Console struct {
	logger *slog.Logger
	in     io.Reader
	out    *termenv.Output

	playerName string
	color      bool
	clear      bool

	startReader sync.Once
	lines       chan line
	closeOnce   sync.Once
	done        chan struct{}
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, options ...Option) *Console {
	console := &Console{
		logger: logger.With("component", "console"),
		in:     in,
		lines:  make(chan line),
		done:   make(chan struct{}),

		playerName: defaultPlayerName,
		color:      true,
		clear:      true,
	}

	for _, option := range options {
		option(console)
	}

	detected := termenv.NewOutput(out)

	// Escape sequences are only understood by a color capable terminal.
	if detected.Profile == termenv.Ascii {
		console.clear = false
	}

	if console.color {
		console.out = detected
	} else {
		console.out = termenv.NewOutput(out, termenv.WithProfile(termenv.Ascii))
	}

	return console
}

// readLine waits for the next input line. The blocking read runs on its own
// goroutine so that ctx can interrupt the wait. End of input is a quit.
func (that *Console) readLine(ctx context.Context) (string, error) {
	that.startReader.Do(func() {
		go that.scan()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-that.done:
		return "", apperror.ErrQuit
	case l, ok := <-that.lines:
		if !ok {
			return "", apperror.ErrQuit
		}
		if l.err != nil {
			return "", fmt.Errorf("failed to read input: %w", l.err)
		}
		return strings.TrimSpace(l.text), nil
	}
}

// scan reads whole lines of any length. A final line without a newline is
// still delivered before end of input.
func (that *Console) scan() {
	defer close(that.lines)

	reader := bufio.NewReader(that.in)
	for {
		select {
		case <-that.done:
			return
		default:
		}

		text, err := reader.ReadString('\n')
		if text != "" && !that.send(line{text: text}) {
			return
		}

		if errors.Is(err, io.EOF) {
			return
		}

		if err != nil {
			that.send(line{err: err})
			return
		}
	}
}

func (that *Console) send(l line) bool {
	select {
	case that.lines <- l:
		return true
	case <-that.done:
		return false
	}
}

// Close stops the input reader once its pending read returns. Prompts after
// Close report a quit.
func (that *Console) Close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

func isQuit(input string) bool {
	_, ok := quitCommands[strings.ToLower(input)]
	return ok
}

func (that *Console) println(a ...any) {
	fmt.Fprintln(that.out, a...)
}

func (that *Console) printf(format string, a ...any) {
	fmt.Fprintf(that.out, format, a...)
}
