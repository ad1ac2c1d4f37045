package session

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/storage"
)

var nonIdentifier = regexp.MustCompile(`[^a-z0-9]+`)

// slot holds the one game a session is playing. It implements
// commands.Session.
type slot struct {
	m    *Manager
	id   string
	game *game.GameState
	quit bool

	// saveName is shown in the load picker; saveId is its storage key.
	saveName string
	saveId   string
}

func (s *slot) ID() string {
	return s.id
}

func (s *slot) Quit() {
	s.quit = true
}

// Save snapshots the game. An empty name overwrites the last save, or
// falls back to the player's name.
func (s *slot) Save(name string) error {
	if s.game == nil {
		return commands.NewUserError("There is no game to save.")
	}

	id := s.saveId
	switch {
	case name != "":
		id = slugify(name)
	case id != "":
		name = s.saveName
	default:
		name = s.game.Player().Name()
		id = slugify(name)
	}

	if !storage.Identifier(id).Valid() {
		return commands.NewUserError(fmt.Sprintf("%q is not a valid save name.", name))
	}

	err := s.m.saves.Save(id, s.game.Snapshot(name))
	if err != nil {
		return err
	}

	s.saveName = name
	s.saveId = id
	return nil
}

func (s *slot) newGame() error {
	g, err := s.m.dict.NewGame(s.m.cfg, s.m.gameOpts(s.id)...)
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}

	s.game = g
	s.saveName = ""
	s.saveId = ""
	s.quit = false
	return nil
}

func (s *slot) load(id string) error {
	save := s.m.saves.Get(id)
	if save == nil {
		return commands.NewUserError(fmt.Sprintf("There is no save called %q.", id))
	}

	g, err := s.m.dict.Restore(s.m.cfg, save, s.m.gameOpts(s.id)...)
	if err != nil {
		return fmt.Errorf("restoring save %q: %w", id, err)
	}

	s.game = g
	s.saveName = save.Name
	s.saveId = id
	s.quit = false
	return nil
}

// slugify turns a save name into a storage identifier.
func slugify(name string) string {
	return strings.Trim(nonIdentifier.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
