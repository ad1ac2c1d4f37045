package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-adventure/internal/game"
)

const subjectPrefix = "adventure"

// Publisher sends raw data to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// EventPublisher turns game events into bus messages on
// "adventure.<session>.<kind>".
type EventPublisher struct {
	pub Publisher
}

func NewEventPublisher(pub Publisher) *EventPublisher {
	return &EventPublisher{pub: pub}
}

// Subject returns the subject events of kind from session are published on.
func Subject(session string, kind game.EventKind) string {
	return fmt.Sprintf("%s.%s.%s", subjectPrefix, session, kind)
}

// AllEvents matches every event of every session.
const AllEvents = subjectPrefix + ".>"

// ForSession returns a sink that publishes one session's events. Publish
// failures are logged and never reach the game.
func (p *EventPublisher) ForSession(id string) game.EventSink {
	return game.EventSinkFunc(func(e game.Event) {
		data, err := json.Marshal(e)
		if err != nil {
			slog.Warn("marshalling game event", "session", id, "kind", e.Kind, "error", err)
			return
		}

		err = p.pub.Publish(Subject(id, e.Kind), data)
		if err != nil {
			slog.Warn("publishing game event", "session", id, "kind", e.Kind, "error", err)
		}
	})
}
