package game

import (
	"fmt"
	"sort"
)

// WorldMap owns every room of a game.
type WorldMap struct {
	rooms map[string]*RoomInstance
}

func NewWorldMap(rooms ...*RoomInstance) *WorldMap {
	w := &WorldMap{rooms: make(map[string]*RoomInstance, len(rooms))}
	for _, r := range rooms {
		w.rooms[r.Id] = r
	}
	return w
}

// Room returns the room with id, or nil.
func (w *WorldMap) Room(id string) *RoomInstance {
	return w.rooms[id]
}

// RoomIds returns every room id in sorted order.
func (w *WorldMap) RoomIds() []string {
	ids := make([]string, 0, len(w.rooms))
	for id := range w.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Move returns the room reached by leaving current through dir.
func (w *WorldMap) Move(current string, dir string) (string, error) {
	room := w.rooms[current]
	if room == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoom, current)
	}

	exit, ok := room.Exit(dir)
	if !ok {
		return "", ErrNoExit
	}
	if room.IsLocked(dir) {
		return "", ErrExitLocked
	}
	if w.rooms[exit.RoomId] == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoom, exit.RoomId)
	}

	return exit.RoomId, nil
}

// Unlock opens the exits in room locked by key.
func (w *WorldMap) Unlock(roomId string, key string) (int, error) {
	room := w.rooms[roomId]
	if room == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRoom, roomId)
	}
	return room.Unlock(key), nil
}
