package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pixil98/go-adventure/internal/game"
)

// EventLogger writes every game event on the bus to the debug log.
type EventLogger struct {
	server *NatsServer
	poll   time.Duration
}

func NewEventLogger(server *NatsServer) *EventLogger {
	return &EventLogger{server: server, poll: 100 * time.Millisecond}
}

func (l *EventLogger) Start(ctx context.Context) error {
	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	// The server worker starts alongside this one.
	for !l.server.Ready() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}

	unsub, err := l.server.Subscribe(AllEvents, func(subject string, data []byte) {
		var e game.Event
		if err := json.Unmarshal(data, &e); err != nil {
			slog.WarnContext(ctx, "decoding game event", "subject", subject, "error", err)
			return
		}
		slog.DebugContext(ctx, "game event", "subject", subject, "kind", e.Kind, "turn", e.Turn, "room", e.Room)
	})
	if err != nil {
		return err
	}
	defer unsub()

	<-ctx.Done()
	return nil
}
