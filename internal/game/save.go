package game

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

// SaveGame is a snapshot of a game in progress.
type SaveGame struct {
	Name    string                  `json:"name"`
	SavedAt time.Time               `json:"saved_at"`
	Turn    int                     `json:"turn"`
	Phase   Phase                   `json:"phase"`
	Player  PlayerSnapshot          `json:"player"`
	Rooms   map[string]RoomSnapshot `json:"rooms"`
}

type PlayerSnapshot struct {
	Name              string   `json:"name"`
	Room              string   `json:"room"`
	Health            int      `json:"health"`
	MaxHealth         int      `json:"max_health"`
	AttackPower       int      `json:"attack_power"`
	Defense           int      `json:"defense"`
	Level             int      `json:"level"`
	Experience        int      `json:"experience"`
	ExperienceToLevel int      `json:"experience_to_level"`
	Capacity          int      `json:"capacity"`
	Inventory         []string `json:"inventory,omitempty"`
	Weapon            string   `json:"weapon,omitempty"`
	Armor             string   `json:"armor,omitempty"`
}

type RoomSnapshot struct {
	Items    []string        `json:"items,omitempty"`
	Enemies  []EnemySnapshot `json:"enemies,omitempty"`
	Unlocked []string        `json:"unlocked,omitempty"`
}

type EnemySnapshot struct {
	Id       string `json:"id"`
	Health   int    `json:"health"`
	Cooldown int    `json:"cooldown,omitempty"`
}

// Selector satisfies storage.SelectableStorer.
func (s *SaveGame) Selector() string {
	return fmt.Sprintf("%s (turn %d, %s)", s.Name, s.Turn, s.SavedAt.Format("2006-01-02 15:04"))
}

// Validate satisfies storage.ValidatingSpec
func (s *SaveGame) Validate() error {
	el := errors.NewErrorList()
	if s.Name == "" {
		el.Add(fmt.Errorf("save name is required"))
	}
	if s.Player.Room == "" {
		el.Add(fmt.Errorf("player room is required"))
	}
	if s.Player.MaxHealth <= 0 {
		el.Add(fmt.Errorf("player max health must be positive"))
	}
	if s.Player.Health < 0 || s.Player.Health > s.Player.MaxHealth {
		el.Add(fmt.Errorf("player health must be between 0 and max health"))
	}
	if s.Player.Level < 1 {
		el.Add(fmt.Errorf("player level must be at least 1"))
	}
	if s.Player.ExperienceToLevel <= 0 {
		el.Add(fmt.Errorf("player experience_to_level must be positive"))
	}
	if s.Player.Experience < 0 {
		el.Add(fmt.Errorf("player experience must not be negative"))
	}
	if s.Player.Capacity < 0 {
		el.Add(fmt.Errorf("player capacity must not be negative"))
	}
	if s.Turn < 0 {
		el.Add(fmt.Errorf("turn must not be negative"))
	}
	return el.Err()
}

func itemIds(items []*Item) []string {
	ids := make([]string, 0, len(items))
	for _, i := range items {
		ids = append(ids, i.ID())
	}
	return ids
}

// Snapshot captures everything needed to restore the game.
func (g *GameState) Snapshot(name string) *SaveGame {
	p := g.player
	s := &SaveGame{
		Name:    name,
		SavedAt: time.Now().UTC(),
		Turn:    g.turn,
		Phase:   g.phase,
		Player: PlayerSnapshot{
			Name:              p.name,
			Room:              p.CurrentRoom,
			Health:            p.health,
			MaxHealth:         p.maxHealth,
			AttackPower:       p.attackPower,
			Defense:           p.defense,
			Level:             p.level,
			Experience:        p.experience,
			ExperienceToLevel: p.experienceToLevel,
			Capacity:          p.inventory.Capacity(),
			Inventory:         itemIds(p.inventory.Items()),
		},
		Rooms: map[string]RoomSnapshot{},
	}
	if p.weapon != nil {
		s.Player.Weapon = p.weapon.ID()
	}
	if p.armor != nil {
		s.Player.Armor = p.armor.ID()
	}

	for _, id := range g.world.RoomIds() {
		room := g.world.Room(id)
		rs := RoomSnapshot{
			Items:    itemIds(room.Items()),
			Unlocked: room.UnlockedDirections(),
		}
		for _, e := range room.Enemies() {
			rs.Enemies = append(rs.Enemies, EnemySnapshot{
				Id:       e.Enemy.ID(),
				Health:   e.Health(),
				Cooldown: e.Cooldown(),
			})
		}
		s.Rooms[id] = rs
	}

	return s
}

// Restore rebuilds a game from a save. Rooms missing from the save start fresh.
func (d *Dictionary) Restore(cfg Config, save *SaveGame, opts ...GameOpt) (*GameState, error) {
	if err := save.Validate(); err != nil {
		return nil, fmt.Errorf("invalid save: %w", err)
	}

	el := errors.NewErrorList()

	item := func(id string) *Item {
		i := d.Items.Get(id)
		if i == nil {
			el.Add(fmt.Errorf("item %q not found", id))
		}
		return i
	}

	roller := NewRoller(cfg.Seed)
	world := d.NewWorld(roller)
	for id, rs := range save.Rooms {
		room := world.Room(id)
		if room == nil {
			el.Add(fmt.Errorf("room %q not found", id))
			continue
		}

		room.items = nil
		for _, iid := range rs.Items {
			if i := item(iid); i != nil {
				room.items = append(room.items, i)
			}
		}

		room.enemies = nil
		for _, es := range rs.Enemies {
			def := d.Enemies.Get(es.Id)
			if def == nil {
				el.Add(fmt.Errorf("enemy %q not found", es.Id))
				continue
			}
			e := NewEnemyInstance(def)
			e.restore(es.Health, es.Cooldown)
			room.enemies = append(room.enemies, e)
		}

		for _, dir := range rs.Unlocked {
			room.unlocked[dir] = true
		}
	}

	ps := save.Player
	player := &Player{
		name:              ps.Name,
		health:            ps.Health,
		maxHealth:         ps.MaxHealth,
		attackPower:       ps.AttackPower,
		defense:           ps.Defense,
		level:             ps.Level,
		experience:        ps.Experience,
		experienceToLevel: ps.ExperienceToLevel,
		inventory:         NewInventory(ps.Capacity),
		CurrentRoom:       ps.Room,
	}
	for _, iid := range ps.Inventory {
		if i := item(iid); i != nil {
			player.inventory.items = append(player.inventory.items, i)
		}
	}
	if ps.Weapon != "" {
		if i := item(ps.Weapon); i != nil {
			player.weapon = i
		}
	}
	if ps.Armor != "" {
		if i := item(ps.Armor); i != nil {
			player.armor = i
		}
	}

	if err := el.Err(); err != nil {
		return nil, fmt.Errorf("restoring %s: %w", save.Name, err)
	}

	opts = append([]GameOpt{
		WithWinCondition(cfg.Win),
		WithRoller(roller),
	}, opts...)

	g, err := New(world, player, opts...)
	if err != nil {
		return nil, err
	}
	g.turn = save.Turn
	g.emit(EventGameLoaded, map[string]any{"save": save.Name})
	return g, nil
}
