package command

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-errors"
)

type Config struct {
	Title     string           `json:"title"`
	Width     int              `json:"width"`
	LogLevel  string           `json:"log_level"`
	Storage   StorageConfig    `json:"storage"`
	Game      game.Config      `json:"game"`
	Console   ConsoleConfig    `json:"console"`
	Listeners []ListenerConfig `json:"listeners"`
	Nats      NatsConfig       `json:"nats"`
	Mcp       McpConfig        `json:"mcp"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.Width < 0 {
		el.Add(fmt.Errorf("width must not be negative"))
	}

	if c.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
			el.Add(fmt.Errorf("parsing log_level: %w", err))
		}
	}

	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	if !c.Console.Enabled && len(c.Listeners) == 0 && !c.Mcp.Enabled {
		el.Add(fmt.Errorf("nothing to serve: enable the console, a listener, or mcp"))
	}

	if err := c.Game.Validate(); err != nil {
		el.Add(fmt.Errorf("game: %w", err))
	}
	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Mcp.validate())

	return el.Err()
}

type ConsoleConfig struct {
	Enabled bool `json:"enabled"`
}
