package command

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pixil98/go-adventure/internal/commands"
	"github.com/pixil98/go-adventure/internal/listener"
	"github.com/pixil98/go-adventure/internal/messaging"
	"github.com/pixil98/go-adventure/internal/session"
	"github.com/pixil98/go-service"
)

// WorkerBuilder returns a builder for service.NewApp. stop is called when the
// console session ends.
func WorkerBuilder(stop func()) func(config any) (service.WorkerList, error) {
	return func(config any) (service.WorkerList, error) {
		return BuildWorkers(config, stop)
	}
}

func BuildWorkers(config any, stop func()) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	if cfg.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			return nil, fmt.Errorf("parsing log_level: %w", err)
		}
		slog.SetLogLoggerLevel(lvl)
	}

	// Load definitions
	dict, err := cfg.Storage.BuildDictionary()
	if err != nil {
		return nil, err
	}
	if err := cfg.Game.Check(dict); err != nil {
		return nil, fmt.Errorf("checking game config: %w", err)
	}

	cmdStore, err := cfg.Storage.Commands.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating command store: %w", err)
	}
	cmdHandler := commands.NewHandler(cmdStore)
	if err := cmdHandler.CompileAll(); err != nil {
		return nil, fmt.Errorf("compiling commands: %w", err)
	}

	saves, err := cfg.Storage.Saves.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating save store: %w", err)
	}

	workers := service.WorkerList{}

	// Event bus
	var opts []session.ManagerOpt
	if cfg.Nats.Enabled {
		natsServer, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = natsServer
		opts = append(opts, session.WithEventSinks(messaging.NewEventPublisher(natsServer)))

		if cfg.Nats.LogEvents {
			workers["event-logger"] = messaging.NewEventLogger(natsServer)
		}
	}

	width := cfg.Width
	if width == 0 && cfg.Console.Enabled {
		width = listener.TerminalWidth(os.Stdout)
	}
	opts = append(opts, session.WithWidth(width))
	if cfg.Title != "" {
		opts = append(opts, session.WithTitle(cfg.Title))
	}

	sessions := session.NewManager(dict, cfg.Game, cmdHandler, saves, opts...)
	cm := listener.NewConnectionManager(sessions)

	// Create Listeners
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		workers[fmt.Sprintf("listener-%d", i)] = w
	}

	if cfg.Console.Enabled {
		workers["console"] = listener.NewConsoleListener(cm, stop)
	}

	if cfg.Mcp.Enabled {
		workers["mcp"] = cfg.Mcp.buildServer(sessions.NewHeadless())
	}

	return workers, nil
}
