package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pixil98/go-adventure/internal/display"
	"github.com/pixil98/go-adventure/internal/storage"
)

// HelpHandlerFactory creates handlers that display command help.
// Inputs:
//   - command (optional): show only this command
type HelpHandlerFactory struct {
	commands storage.Storer[*Command]
}

// NewHelpHandlerFactory creates a new HelpHandlerFactory.
func NewHelpHandlerFactory(commands storage.Storer[*Command]) *HelpHandlerFactory {
	return &HelpHandlerFactory{commands: commands}
}

func (f *HelpHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *HelpHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if name := cmdCtx.Input("command"); name != "" {
			return f.showCommand(cmdCtx, name)
		}
		return f.listCommands(cmdCtx)
	}, nil
}

func (f *HelpHandlerFactory) listCommands(cmdCtx *CommandContext) error {
	all := f.commands.GetAll()

	names := make([]string, 0, len(all))
	for id := range all {
		names = append(names, strings.ToLower(id))
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, usageLine(name, all[name]))
	}

	return cmdCtx.Print("Available commands:\n" + display.List(lines, ""))
}

func (f *HelpHandlerFactory) showCommand(cmdCtx *CommandContext, name string) error {
	name = strings.ToLower(name)

	cmd := f.commands.Get(name)
	if cmd == nil {
		for id, c := range f.commands.GetAll() {
			for _, a := range c.Aliases {
				if strings.EqualFold(a, name) {
					name, cmd = id, c
				}
			}
		}
	}
	if cmd == nil {
		return NewUserError(fmt.Sprintf("Command %q is unknown.", name))
	}

	lines := []string{usageLine(name, cmd)}
	if len(cmd.Aliases) > 0 {
		lines = append(lines, fmt.Sprintf("Aliases: %s", strings.Join(cmd.Aliases, ", ")))
	}
	return cmdCtx.Print(strings.Join(lines, "\n"))
}
