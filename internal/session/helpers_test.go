package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pixil98/go-adventure/internal/commands"
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

type fakeConn struct {
	in  *strings.Reader
	out *bytes.Buffer
}

func newFakeConn(input string) *fakeConn {
	return &fakeConn{in: strings.NewReader(input), out: &bytes.Buffer{}}
}

func (c *fakeConn) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c *fakeConn) Write(p []byte) (int, error) { return c.out.Write(p) }

type recordingSinks struct {
	events map[string][]game.Event
}

func (r *recordingSinks) ForSession(id string) game.EventSink {
	return game.EventSinkFunc(func(e game.Event) {
		r.events[id] = append(r.events[id], e)
	})
}

func testDictionary(t *testing.T) *game.Dictionary {
	t.Helper()

	d := &game.Dictionary{
		Items: newMemStore(map[string]*game.Item{
			"potion": {Name: "Potion", Effect: game.EffectHeal, Magnitude: 20},
		}),
		Enemies: newMemStore(map[string]*game.Enemy{
			"rat": {Name: "Rat", Variant: game.VariantBasic, Health: ptr(5), AttackPower: ptr(2)},
		}),
		NPCs: newMemStore[*game.NPC](nil),
		Rooms: newMemStore(map[string]*game.Room{
			"start": {
				Name:        "Start",
				Description: "A quiet clearing.",
				Exits:       map[string]game.Exit{"north": {RoomId: "forest"}},
				Items:       []storage.SmartIdentifier[*game.Item]{storage.NewSmartIdentifier[*game.Item]("potion")},
			},
			"forest": {
				Name:        "Forest",
				Description: "Tall trees.",
				Exits:       map[string]game.Exit{"south": {RoomId: "start"}},
				Enemies:     []storage.SmartIdentifier[*game.Enemy]{storage.NewSmartIdentifier[*game.Enemy]("rat")},
			},
		}),
	}

	if err := d.Resolve(); err != nil {
		t.Fatalf("resolving dictionary: %v", err)
	}
	return d
}

func testHandler(t *testing.T) *commands.Handler {
	t.Helper()

	h := commands.NewHandler(newMemStore(map[string]*commands.Command{
		"north": {Handler: "move", Aliases: []string{"n"}, Config: map[string]any{"direction": "north"}},
		"look":  {Handler: "look"},
		"take": {Handler: "take", Inputs: []commands.InputSpec{
			{Name: "item", Type: commands.InputTypeString, Required: true, Rest: true},
		}},
		"attack": {Handler: "attack", Aliases: []string{"kill"}, Inputs: []commands.InputSpec{
			{Name: "enemy", Type: commands.InputTypeString, Rest: true},
		}},
		"save": {Handler: "save", Inputs: []commands.InputSpec{
			{Name: "name", Type: commands.InputTypeString, Rest: true},
		}},
		"quit": {Handler: "quit"},
	}))
	if err := h.CompileAll(); err != nil {
		t.Fatalf("compiling commands: %v", err)
	}
	return h
}

func testManager(t *testing.T, opts ...ManagerOpt) (*Manager, *storage.FileStore[*game.SaveGame]) {
	t.Helper()

	saves, err := storage.NewFileStore[*game.SaveGame](t.TempDir())
	if err != nil {
		t.Fatalf("creating save store: %v", err)
	}

	cfg := game.Config{
		StartRoom: "start",
		Player:    game.DefaultPlayerPreset,
		Seed:      1,
	}

	return NewManager(testDictionary(t), cfg, testHandler(t), saves, opts...), saves
}

func ptr[T any](v T) *T { return &v }
