package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-adventure/internal"
	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/storage"
)

type menuChoice int

const (
	menuNew menuChoice = iota + 1
	menuLoad
	menuQuit
)

var menuWords = map[string]menuChoice{
	"1":    menuNew,
	"new":  menuNew,
	"2":    menuLoad,
	"load": menuLoad,
	"3":    menuQuit,
	"quit": menuQuit,
}

// Session is one connection: a main menu and the game it starts.
type Session struct {
	slot
	term *internal.Terminal
}

func newSession(m *Manager, rw io.ReadWriter) *Session {
	return &Session{
		slot: slot{m: m, id: newSlotId()},
		term: internal.NewTerminal(rw),
	}
}

func (s *Session) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := s.menu()
		if err != nil {
			return ignoreEOF(err)
		}

		switch choice {
		case menuNew:
			err = s.newGame()
			if err != nil {
				return err
			}

		case menuLoad:
			ok, err := s.chooseSave(ctx)
			if err != nil {
				return ignoreEOF(err)
			}
			if !ok {
				continue
			}

		case menuQuit:
			return s.writeLine("Goodbye!")
		}

		err = s.play(ctx)
		if err != nil {
			return ignoreEOF(err)
		}
		if s.quit {
			return nil
		}
	}
}

func (s *Session) menu() (menuChoice, error) {
	_, err := fmt.Fprintf(s.term, "\n%s\n\n  1. New game\n  2. Load game\n  3. Quit\n\n", s.m.title)
	if err != nil {
		return 0, err
	}

	str, err := s.term.Prompt("Make your selection: ", internal.WithValidator(
		func(str string) (bool, string) {
			if _, ok := menuWords[strings.ToLower(str)]; !ok {
				return false, "Invalid selection!\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return 0, err
	}

	return menuWords[strings.ToLower(str)], nil
}

// chooseSave lets the player pick a save. It reports false when there is
// nothing to load or the player backed out.
func (s *Session) chooseSave(ctx context.Context) (bool, error) {
	sel := storage.NewSelectableStorer(s.m.saves)
	if sel.Len() == 0 {
		return false, s.writeLine("There are no saved games.")
	}

	id, err := sel.Prompt(s.term, "Saved games (blank line to go back):")
	if err != nil {
		return false, err
	}
	if id == "" {
		return false, nil
	}

	err = s.load(id)
	if err != nil {
		slog.WarnContext(ctx, "loading save", "session", s.id, "save", id, "error", err)
		return false, s.writeLine("That save can't be loaded.")
	}
	return true, nil
}

func (s *Session) play(ctx context.Context) error {
	base := commands.CommandContext{
		Game:    s.game,
		Session: s,
		Out:     s.term,
		Width:   s.m.width,
	}

	err := base.PrintOutcome(s.game.Look())
	if err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.game.IsOver() {
			return s.writeLine("\nThe game is over.")
		}

		err = s.prompt()
		if err != nil {
			return err
		}

		line, err := s.term.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.quit = true
			}
			return err
		}

		err = s.m.cmds.ExecLine(ctx, base, line)
		if err != nil {
			var userErr *commands.UserError
			if !errors.As(err, &userErr) {
				// System error - log and disconnect
				return fmt.Errorf("command execution failed: %w", err)
			}
			err = s.writeLine(userErr.Message)
			if err != nil {
				return err
			}
		}

		if s.quit {
			return s.writeLine("Goodbye!")
		}
	}
}

func (s *Session) prompt() error {
	p := s.game.Player()
	_, err := fmt.Fprintf(s.term, "[%d/%dHP] > ", p.Health(), p.MaxHealth())
	return err
}

func (s *Session) writeLine(msg string) error {
	_, err := io.WriteString(s.term, msg+"\n")
	return err
}

// ignoreEOF treats a closed connection as a normal end of session.
func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
