package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/storage"
)

type memStore[T storage.ValidatingSpec] struct {
	records map[string]T
}

func newMemStore[T storage.ValidatingSpec](records map[string]T) *memStore[T] {
	if records == nil {
		records = map[string]T{}
	}
	return &memStore[T]{records: records}
}

func (m *memStore[T]) Save(id string, o T) error {
	m.records[id] = o
	return nil
}

func (m *memStore[T]) Get(id string) T {
	return m.records[id]
}

func (m *memStore[T]) GetAll() map[string]T {
	out := make(map[string]T, len(m.records))
	for k, v := range m.records {
		out[k] = v
	}
	return out
}

type fakeSession struct {
	saved   []string
	quit    bool
	saveErr error
}

func (s *fakeSession) ID() string { return "test" }

func (s *fakeSession) Save(name string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, name)
	return nil
}

func (s *fakeSession) Quit() { s.quit = true }

// testCommands mirrors the shipped command assets.
func testCommands() map[string]*Command {
	dir := []InputSpec{{Name: "direction", Type: InputTypeDirection, Required: true}}
	item := []InputSpec{{Name: "item", Type: InputTypeString, Required: true, Rest: true}}

	return map[string]*Command{
		"go":        {Handler: "move", Summary: "walk through an exit", Inputs: dir, Config: map[string]any{"direction": "{{ .Inputs.direction }}"}},
		"north":     {Handler: "move", Aliases: []string{"n"}, Config: map[string]any{"direction": "north"}},
		"south":     {Handler: "move", Aliases: []string{"s"}, Config: map[string]any{"direction": "south"}},
		"look":      {Handler: "look", Aliases: []string{"l"}, Summary: "describe the room"},
		"take":      {Handler: "take", Aliases: []string{"get"}, Inputs: item},
		"drop":      {Handler: "drop", Inputs: item},
		"use":       {Handler: "use", Inputs: item},
		"inventory": {Handler: "inventory", Aliases: []string{"i"}},
		"status":    {Handler: "status", Aliases: []string{"score"}},
		"attack": {Handler: "attack", Aliases: []string{"kill"}, Inputs: []InputSpec{
			{Name: "enemy", Type: InputTypeString, Rest: true},
		}},
		"talk": {Handler: "talk", Inputs: []InputSpec{
			{Name: "npc", Type: InputTypeString},
			{Name: "message", Type: InputTypeString, Rest: true},
		}},
		"save": {Handler: "save", Inputs: []InputSpec{{Name: "name", Type: InputTypeString}}},
		"help": {Handler: "help", Inputs: []InputSpec{{Name: "command", Type: InputTypeString}}},
		"quit": {Handler: "quit", Config: map[string]any{"message": "Farewell, {{ .Player }}."}},
		"wave": {Handler: "message", Config: map[string]any{"text": "{{ .Player }} waves in the {{ .Room | lower }}."}},
	}
}

// testGame builds start --north--> forest with a potion and a hermit in
// the start room and a weak rat in the forest.
func testGame(t *testing.T) *game.GameState {
	t.Helper()

	start := &game.Room{
		Name:        "Start",
		Description: "A quiet clearing.",
		Exits:       map[string]game.Exit{"north": {RoomId: "forest"}},
		Items: []storage.SmartIdentifier[*game.Item]{
			storage.NewResolvedSmartIdentifier("potion", game.NewItem("potion", "Potion", game.EffectHeal, 20)),
		},
		NPCs: []storage.SmartIdentifier[*game.NPC]{
			storage.NewResolvedSmartIdentifier("hermit", &game.NPC{Name: "Hermit"}),
		},
	}
	forest := &game.Room{
		Name:        "Forest",
		Description: "Tall trees.",
		Exits:       map[string]game.Exit{"south": {RoomId: "start"}},
		Enemies: []storage.SmartIdentifier[*game.Enemy]{
			storage.NewResolvedSmartIdentifier("rat", &game.Enemy{Name: "Rat", Variant: game.VariantBasic, Health: ptr(5), AttackPower: ptr(2)}),
		},
	}

	world := game.NewWorldMap(
		game.NewRoomInstance("start", start),
		game.NewRoomInstance("forest", forest),
	)
	player := game.NewPlayer(game.DefaultPlayerPreset, 0, "start")

	g, err := game.New(world, player, game.WithRoller(game.NewRoller(1)))
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	return g
}

func testHandler(t *testing.T) *Handler {
	t.Helper()

	h := NewHandler(newMemStore(testCommands()))
	if err := h.CompileAll(); err != nil {
		t.Fatalf("compiling commands: %v", err)
	}
	return h
}

// runner executes lines against one game and collects the output.
type runner struct {
	h    *Handler
	base CommandContext
	out  *bytes.Buffer
	sess *fakeSession
}

func newRunner(t *testing.T) *runner {
	out := &bytes.Buffer{}
	sess := &fakeSession{}
	return &runner{
		h:    testHandler(t),
		out:  out,
		sess: sess,
		base: CommandContext{
			Game:    testGame(t),
			Session: sess,
			Out:     out,
			Width:   80,
		},
	}
}

// run executes line and returns what it printed.
func (r *runner) run(line string) (string, error) {
	r.out.Reset()
	err := r.h.ExecLine(context.Background(), r.base, line)
	return r.out.String(), err
}

func ptr[T any](v T) *T { return &v }
