package listener

import (
	"context"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// ConsoleListener plays one session on the process's stdin and stdout.
// When that session ends it calls done so the process can exit.
type ConsoleListener struct {
	in   *os.File
	out  *os.File
	cm   *ConnectionManager
	done func()
}

func NewConsoleListener(cm *ConnectionManager, done func()) *ConsoleListener {
	return &ConsoleListener{
		in:   os.Stdin,
		out:  os.Stdout,
		cm:   cm,
		done: done,
	}
}

// TerminalWidth returns the column count of f, or 0 when f is not a
// terminal.
func TerminalWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

func (l *ConsoleListener) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "starting console session", "terminal", term.IsTerminal(int(l.in.Fd())))

	rw := struct {
		io.Reader
		io.Writer
	}{l.in, l.out}

	l.cm.AcceptConnection(ctx, rw)

	if l.done != nil {
		l.done()
	}
	return nil
}
