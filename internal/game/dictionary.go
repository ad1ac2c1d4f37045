package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-adventure/internal/storage"
	"github.com/pixil98/go-errors"
)

// Dictionary holds all game definition stores. It provides a single
// reference that can be passed to resolution methods so they all
// share the same signature.
type Dictionary struct {
	Rooms   storage.Storer[*Room]
	Items   storage.Storer[*Item]
	Enemies storage.Storer[*Enemy]
	NPCs    storage.Storer[*NPC]
}

// Resolve stamps asset ids onto definitions and resolves every foreign key.
func (d *Dictionary) Resolve() error {
	for id, item := range d.Items.GetAll() {
		item.id = id
	}
	for id, npc := range d.NPCs.GetAll() {
		npc.id = id
	}

	el := errors.NewErrorList()
	for id, enemy := range d.Enemies.GetAll() {
		enemy.id = id
		if err := enemy.Resolve(d); err != nil {
			el.Add(fmt.Errorf("enemy %s: %w", id, err))
		}
	}
	for id, room := range d.Rooms.GetAll() {
		if err := room.Resolve(d); err != nil {
			el.Add(fmt.Errorf("room %s: %w", id, err))
		}
	}
	return el.Err()
}

// NewWorld spawns a fresh instance of every room. Spawn tables are rolled
// in room id order so a seeded roller always builds the same world.
func (d *Dictionary) NewWorld(r Roller) *WorldMap {
	all := d.Rooms.GetAll()
	var rooms []*RoomInstance
	for _, id := range slices.Sorted(maps.Keys(all)) {
		room := all[id]
		ri := NewRoomInstance(id, room)
		if room.Spawn != nil {
			room.Spawn.spawn(ri, r)
		}
		rooms = append(rooms, ri)
	}
	return NewWorldMap(rooms...)
}

// Config describes how a new game starts and how it is won.
type Config struct {
	StartRoom string       `json:"start_room"`
	Player    PlayerPreset `json:"player"`

	// InventoryCapacity bounds the player's inventory; 0 is unbounded.
	InventoryCapacity int `json:"inventory_capacity"`

	Win WinCondition `json:"win"`

	// Seed fixes the dice for reproducible games; 0 picks a random seed.
	Seed uint64 `json:"seed"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()
	if c.StartRoom == "" {
		el.Add(fmt.Errorf("start_room is required"))
	}
	if c.InventoryCapacity < 0 {
		el.Add(fmt.Errorf("inventory_capacity must not be negative"))
	}
	el.Add(c.Player.Validate())
	return el.Err()
}

// Check verifies the config's references against the loaded assets.
func (c *Config) Check(d *Dictionary) error {
	el := errors.NewErrorList()
	if d.Rooms.Get(c.StartRoom) == nil {
		el.Add(fmt.Errorf("start room %q not found", c.StartRoom))
	}
	if c.Win.Room != "" && d.Rooms.Get(c.Win.Room) == nil {
		el.Add(fmt.Errorf("win room %q not found", c.Win.Room))
	}
	for _, id := range c.Win.Items {
		if d.Items.Get(id) == nil {
			el.Add(fmt.Errorf("win item %q not found", id))
		}
	}
	return el.Err()
}

// NewGame starts a fresh game from the dictionary.
func (d *Dictionary) NewGame(cfg Config, opts ...GameOpt) (*GameState, error) {
	player := NewPlayer(cfg.Player, cfg.InventoryCapacity, cfg.StartRoom)
	roller := NewRoller(cfg.Seed)

	opts = append([]GameOpt{
		WithWinCondition(cfg.Win),
		WithRoller(roller),
	}, opts...)

	g, err := New(d.NewWorld(roller), player, opts...)
	if err != nil {
		return nil, err
	}
	g.emit(EventGameStarted, nil)
	return g, nil
}
