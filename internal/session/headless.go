package session

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/pixil98/go-adventure/internal/commands"
)

// Headless plays a single game one command at a time without a terminal.
// It is safe for concurrent use.
type Headless struct {
	slot
	mu sync.Mutex
}

func (m *Manager) NewHeadless() *Headless {
	return &Headless{slot: slot{m: m, id: newSlotId()}}
}

// Reset starts a new game and returns the opening description.
func (h *Headless) Reset() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.newGame()
	if err != nil {
		return "", err
	}
	return h.game.Look().String(), nil
}

// Load replaces the game with a saved one and returns its description.
func (h *Headless) Load(id string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.load(id)
	if err != nil {
		return "", err
	}
	return h.game.Look().String(), nil
}

// Exec runs one line of input and returns what the game printed. A new game
// is started when none is running or the last one was quit. Player mistakes
// come back as output, not errors.
func (h *Headless) Exec(ctx context.Context, line string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf bytes.Buffer

	if h.game == nil || h.quit {
		err := h.newGame()
		if err != nil {
			return "", err
		}
		buf.WriteString(h.game.Look().String() + "\n")
	}

	base := commands.CommandContext{
		Game:    h.game,
		Session: h,
		Out:     &buf,
		Width:   h.m.width,
	}

	err := h.m.cmds.ExecLine(ctx, base, line)
	if err != nil {
		var userErr *commands.UserError
		if !errors.As(err, &userErr) {
			return "", err
		}
		buf.WriteString(userErr.Message + "\n")
	}

	return buf.String(), nil
}

// Over reports whether the current game has ended.
func (h *Headless) Over() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.game != nil && h.game.IsOver()
}

// Summary is a compact view of a headless game.
type Summary struct {
	Room      string   `json:"room"`
	Health    int      `json:"health"`
	MaxHealth int      `json:"max_health"`
	Level     int      `json:"level"`
	Turn      int      `json:"turn"`
	Phase     string   `json:"phase"`
	Inventory []string `json:"inventory"`
	Enemies   []string `json:"enemies"`
}

// Summary describes the current game. It is the zero Summary before the
// first game starts.
func (h *Headless) Summary() Summary {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.game == nil {
		return Summary{}
	}

	p := h.game.Player()
	room := h.game.CurrentRoom()
	s := Summary{
		Room:      room.Id,
		Health:    p.Health(),
		MaxHealth: p.MaxHealth(),
		Level:     p.Level(),
		Turn:      h.game.Turn(),
		Phase:     h.game.Phase().String(),
		Inventory: []string{},
		Enemies:   []string{},
	}
	for _, i := range p.Inventory().Items() {
		s.Inventory = append(s.Inventory, i.Name)
	}
	for _, e := range room.Enemies() {
		s.Enemies = append(s.Enemies, e.Name())
	}
	return s
}
