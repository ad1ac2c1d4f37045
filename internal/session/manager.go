package session

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/storage"
)

// SinkFactory hands out an event sink for each session.
type SinkFactory interface {
	ForSession(id string) game.EventSink
}

type Manager struct {
	dict  *game.Dictionary
	cfg   game.Config
	cmds  *commands.Handler
	saves storage.Storer[*game.SaveGame]

	sinks SinkFactory
	width int
	title string

	mu       sync.Mutex
	sessions map[string]*Session
}

type ManagerOpt func(*Manager)

// WithEventSinks publishes every session's game events through f.
func WithEventSinks(f SinkFactory) ManagerOpt {
	return func(m *Manager) {
		m.sinks = f
	}
}

// WithWidth sets the column every session wraps text at.
func WithWidth(w int) ManagerOpt {
	return func(m *Manager) {
		m.width = w
	}
}

// WithTitle sets the banner shown above the main menu.
func WithTitle(t string) ManagerOpt {
	return func(m *Manager) {
		m.title = t
	}
}

func NewManager(dict *game.Dictionary, cfg game.Config, cmds *commands.Handler, saves storage.Storer[*game.SaveGame], opts ...ManagerOpt) *Manager {
	m := &Manager{
		dict:     dict,
		cfg:      cfg,
		cmds:     cmds,
		saves:    saves,
		title:    "Welcome, adventurer!",
		sessions: map[string]*Session{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RunSession plays games over rw until the player quits or disconnects.
func (m *Manager) RunSession(ctx context.Context, rw io.ReadWriter) error {
	s := newSession(m, rw)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.sessions, s.id)
		m.mu.Unlock()
	}()

	slog.InfoContext(ctx, "session started", "session", s.id)
	defer slog.InfoContext(ctx, "session ended", "session", s.id)

	return s.run(ctx)
}

// Active returns the number of sessions currently running.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) gameOpts(id string) []game.GameOpt {
	if m.sinks == nil {
		return nil
	}
	return []game.GameOpt{game.WithEventSink(m.sinks.ForSession(id))}
}

func newSlotId() string {
	return uuid.New().String()
}
