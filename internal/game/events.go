package game

// EventKind names a game event.
type EventKind string

const (
	EventMoved       EventKind = "moved"
	EventTook        EventKind = "took"
	EventDropped     EventKind = "dropped"
	EventUsed        EventKind = "used"
	EventAttacked    EventKind = "attacked"
	EventStruck      EventKind = "struck"
	EventDefeated    EventKind = "defeated"
	EventLevelUp     EventKind = "level_up"
	EventTalked      EventKind = "talked"
	EventPhase       EventKind = "phase"
	EventGameStarted EventKind = "game_started"
	EventGameLoaded  EventKind = "game_loaded"
)

// Event is a record of something that happened in a game.
type Event struct {
	Kind   EventKind      `json:"kind"`
	Turn   int            `json:"turn"`
	Room   string         `json:"room"`
	Detail map[string]any `json:"detail,omitempty"`
}

// EventSink receives game events.
type EventSink interface {
	Emit(Event)
}

// EventSinkFunc adapts a function to an EventSink.
type EventSinkFunc func(Event)

func (f EventSinkFunc) Emit(e Event) {
	f(e)
}

type nopSink struct{}

func (nopSink) Emit(Event) {}
