package game

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/pixil98/go-adventure/internal/storage"
	"github.com/pixil98/go-errors"
)

// Exit defines a destination for movement from a room.
type Exit struct {
	RoomId string `json:"room_id" yaml:"room_id"`

	// Key is the unlock id of the item that opens this exit. An exit with a
	// key starts locked.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
}

// Room defines a location loaded from asset files.
type Room struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Exits       map[string]Exit `json:"exits" yaml:"exits"` // direction -> destination

	Items   []storage.SmartIdentifier[*Item]  `json:"items,omitempty" yaml:"items,omitempty"`
	Enemies []storage.SmartIdentifier[*Enemy] `json:"enemies,omitempty" yaml:"enemies,omitempty"` // list duplicates for multiple
	NPCs    []storage.SmartIdentifier[*NPC]   `json:"npcs,omitempty" yaml:"npcs,omitempty"`

	Spawn *SpawnTable `json:"spawn,omitempty" yaml:"spawn,omitempty"`
}

// Resolve resolves foreign keys from the dictionary.
func (r *Room) Resolve(dict *Dictionary) error {
	el := errors.NewErrorList()
	for i := range r.Items {
		el.Add(r.Items[i].Resolve(dict.Items))
	}
	for i := range r.Enemies {
		el.Add(r.Enemies[i].Resolve(dict.Enemies))
	}
	for i := range r.NPCs {
		el.Add(r.NPCs[i].Resolve(dict.NPCs))
	}
	if r.Spawn != nil {
		el.Add(r.Spawn.Resolve(dict))
	}
	for dir, exit := range r.Exits {
		if dict.Rooms.Get(exit.RoomId) == nil {
			el.Add(fmt.Errorf("exit %s: room %q not found", dir, exit.RoomId))
		}
	}
	return el.Err()
}

// Validate satisfies storage.ValidatingSpec.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}

	for dir, exit := range r.Exits {
		if dir == "" || dir != strings.ToLower(dir) {
			el.Add(fmt.Errorf("exit %q: direction must be lowercase", dir))
		}
		if exit.RoomId == "" {
			el.Add(fmt.Errorf("exit %s: room_id is required", dir))
		}
	}

	if r.Spawn != nil {
		el.Add(r.Spawn.Validate())
	}

	return el.Err()
}

// RoomInstance is the live state of a room during a game.
type RoomInstance struct {
	Id   string
	Room *Room

	items    []*Item
	enemies  []*EnemyInstance
	npcs     []*NPC
	unlocked map[string]bool // direction -> unlocked
}

// NewRoomInstance spawns the room's starting contents. The room's references
// must already be resolved.
func NewRoomInstance(id string, room *Room) *RoomInstance {
	ri := &RoomInstance{
		Id:       id,
		Room:     room,
		unlocked: map[string]bool{},
	}
	for _, i := range room.Items {
		ri.items = append(ri.items, i.Id())
	}
	for _, e := range room.Enemies {
		ri.enemies = append(ri.enemies, NewEnemyInstance(e.Id()))
	}
	for _, n := range room.NPCs {
		ri.npcs = append(ri.npcs, n.Id())
	}
	return ri
}

func (ri *RoomInstance) Name() string {
	return ri.Room.Name
}

func (ri *RoomInstance) Items() []*Item {
	return slices.Clone(ri.items)
}

func (ri *RoomInstance) Enemies() []*EnemyInstance {
	return slices.Clone(ri.enemies)
}

func (ri *RoomInstance) NPCs() []*NPC {
	return slices.Clone(ri.npcs)
}

func (ri *RoomInstance) HasEnemies() bool {
	return len(ri.enemies) > 0
}

func (ri *RoomInstance) AddItem(item *Item) {
	ri.items = append(ri.items, item)
}

// RemoveItem takes one occurrence of item out of the room.
func (ri *RoomInstance) RemoveItem(item *Item) bool {
	idx := slices.Index(ri.items, item)
	if idx < 0 {
		return false
	}
	ri.items = slices.Delete(ri.items, idx, idx+1)
	return true
}

func (ri *RoomInstance) FindItem(name string) *Item {
	for _, i := range ri.items {
		if i.MatchName(name) {
			return i
		}
	}
	return nil
}

func (ri *RoomInstance) AddEnemy(e *EnemyInstance) {
	ri.enemies = append(ri.enemies, e)
}

// RemoveEnemy takes e out of the room.
func (ri *RoomInstance) RemoveEnemy(e *EnemyInstance) bool {
	idx := slices.Index(ri.enemies, e)
	if idx < 0 {
		return false
	}
	ri.enemies = slices.Delete(ri.enemies, idx, idx+1)
	return true
}

// FindEnemy matches by name or alias. An empty name picks the first enemy.
func (ri *RoomInstance) FindEnemy(name string) *EnemyInstance {
	for _, e := range ri.enemies {
		if name == "" || e.Enemy.MatchName(name) {
			return e
		}
	}
	return nil
}

// FindNPC matches by name or alias. An empty name picks the first NPC.
func (ri *RoomInstance) FindNPC(name string) *NPC {
	for _, n := range ri.npcs {
		if name == "" || n.MatchName(name) {
			return n
		}
	}
	return nil
}

// Exit looks up the exit in direction dir.
func (ri *RoomInstance) Exit(dir string) (Exit, bool) {
	e, ok := ri.Room.Exits[strings.ToLower(dir)]
	return e, ok
}

// IsLocked reports whether the exit in dir is still locked.
func (ri *RoomInstance) IsLocked(dir string) bool {
	dir = strings.ToLower(dir)
	e, ok := ri.Room.Exits[dir]
	return ok && e.Key != "" && !ri.unlocked[dir]
}

// Unlock opens every locked exit whose key matches and returns how many
// were opened.
func (ri *RoomInstance) Unlock(key string) int {
	n := 0
	for dir, e := range ri.Room.Exits {
		if key != "" && e.Key == key && !ri.unlocked[dir] {
			ri.unlocked[dir] = true
			n++
		}
	}
	return n
}

// Directions returns the room's exit directions in sorted order.
func (ri *RoomInstance) Directions() []string {
	dirs := make([]string, 0, len(ri.Room.Exits))
	for dir := range ri.Room.Exits {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// UnlockedDirections returns the keyed exits that have been opened.
func (ri *RoomInstance) UnlockedDirections() []string {
	var dirs []string
	for dir, ok := range ri.unlocked {
		if ok {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}

// Describe renders what the player sees on entering or looking.
func (ri *RoomInstance) Describe() string {
	var sb strings.Builder
	sb.WriteString(ri.Room.Name)
	sb.WriteString("\n")
	sb.WriteString(ri.Room.Description)
	sb.WriteString("\n")

	for _, i := range ri.items {
		fmt.Fprintf(&sb, "There is %s here.\n", i.Name)
	}
	for _, n := range ri.npcs {
		fmt.Fprintf(&sb, "%s is here.\n", n.Name)
	}
	for _, e := range ri.enemies {
		fmt.Fprintf(&sb, "A hostile %s blocks your way! (%d/%d)\n", e.Name(), e.Health(), e.MaxHealth())
	}

	var exits []string
	for _, dir := range ri.Directions() {
		if ri.IsLocked(dir) {
			exits = append(exits, dir+" (locked)")
		} else {
			exits = append(exits, dir)
		}
	}
	if len(exits) == 0 {
		sb.WriteString("There are no obvious exits.")
	} else {
		fmt.Fprintf(&sb, "Exits: %s", strings.Join(exits, ", "))
	}

	return sb.String()
}
