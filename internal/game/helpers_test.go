package game

import "github.com/pixil98/go-adventure/internal/storage"

// fixedRoller always rolls the same value.
type fixedRoller float64

func (f fixedRoller) Float64() float64 { return float64(f) }

// seqRoller returns its values in order, then repeats the last one.
type seqRoller struct {
	vals []float64
	i    int
}

func (s *seqRoller) Float64() float64 {
	v := s.vals[min(s.i, len(s.vals)-1)]
	s.i++
	return v
}

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

func room(name string, exits map[string]Exit) *Room {
	return &Room{Name: name, Description: "The " + name + ".", Exits: exits}
}

// testDictionary builds a small resolved world:
//
//	start --north--> forest --east--> (locked: iron) vault
//	forest has a goblin dropping a rusty key; vault has a dragon.
func testDictionary() *Dictionary {
	d := &Dictionary{
		Items: newMemStore(map[string]*Item{
			"potion":   {Name: "Potion", Effect: EffectHeal, Magnitude: 20},
			"sword":    {Name: "Sword", Effect: EffectWeapon, Magnitude: 5},
			"shield":   {Name: "Shield", Effect: EffectArmor, Magnitude: 3},
			"bomb":     {Name: "Bomb", Effect: EffectDamage, Magnitude: 50},
			"iron-key": {Name: "Iron Key", Aliases: []string{"key"}, Effect: EffectUnlock, Unlocks: "iron"},
			"crown":    {Name: "Crown"},
		}),
		Enemies: newMemStore(map[string]*Enemy{
			"goblin": {
				Name:    "Goblin",
				Variant: VariantGoblin,
				Loot:    []storage.SmartIdentifier[*Item]{storage.NewSmartIdentifier[*Item]("iron-key")},
			},
			"dragon": {Name: "Dragon", Variant: VariantDragon},
		}),
		NPCs: newMemStore(map[string]*NPC{
			"hermit": {Name: "Hermit", Aliases: []string{"old man"}},
		}),
		Rooms: newMemStore(map[string]*Room{
			"start": {
				Name:        "Clearing",
				Description: "A quiet clearing.",
				Exits:       map[string]Exit{"north": {RoomId: "forest"}},
				Items: []storage.SmartIdentifier[*Item]{
					storage.NewSmartIdentifier[*Item]("potion"),
					storage.NewSmartIdentifier[*Item]("sword"),
				},
				NPCs: []storage.SmartIdentifier[*NPC]{storage.NewSmartIdentifier[*NPC]("hermit")},
			},
			"forest": {
				Name:        "Forest",
				Description: "Dark trees.",
				Exits: map[string]Exit{
					"south": {RoomId: "start"},
					"east":  {RoomId: "vault", Key: "iron"},
				},
				Enemies: []storage.SmartIdentifier[*Enemy]{storage.NewSmartIdentifier[*Enemy]("goblin")},
			},
			"vault": {
				Name:        "Vault",
				Description: "Gold everywhere.",
				Exits:       map[string]Exit{"west": {RoomId: "forest"}},
				Items:       []storage.SmartIdentifier[*Item]{storage.NewSmartIdentifier[*Item]("crown")},
			},
		}),
	}
	if err := d.Resolve(); err != nil {
		panic(err)
	}
	return d
}

func testConfig() Config {
	return Config{
		StartRoom: "start",
		Player:    DefaultPlayerPreset,
		Win:       WinCondition{Room: "vault", Items: []string{"crown"}},
		Seed:      1,
	}
}

func ptr[T any](v T) *T { return &v }
