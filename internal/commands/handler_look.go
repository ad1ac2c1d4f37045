package commands

import (
	"context"
	"fmt"

	"github.com/pixil98/go-adventure/internal/display"
)

// LookHandlerFactory creates handlers that describe the current room.
type LookHandlerFactory struct{}

func (f *LookHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *LookHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		return cmdCtx.PrintOutcome(cmdCtx.Game.Look())
	}, nil
}

// StatusHandlerFactory creates handlers that show the player's stats.
type StatusHandlerFactory struct{}

func (f *StatusHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *StatusHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		return cmdCtx.PrintOutcome(cmdCtx.Game.Status())
	}, nil
}

// InventoryHandlerFactory creates handlers that list carried items.
type InventoryHandlerFactory struct{}

func (f *InventoryHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *InventoryHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		p := cmdCtx.Game.Player()
		inv := p.Inventory()

		lines := make([]string, 0, inv.Len())
		for _, item := range inv.Items() {
			line := item.Name
			switch item {
			case p.Weapon():
				line += " (wielded)"
			case p.Armor():
				line += " (worn)"
			}
			lines = append(lines, line)
		}

		header := "You are carrying:"
		if inv.Capacity() > 0 {
			header = fmt.Sprintf("You are carrying (%d/%d):", inv.Len(), inv.Capacity())
		}
		if len(lines) == 0 {
			return cmdCtx.Print("You are carrying nothing.")
		}
		return cmdCtx.Print(header + "\n" + display.List(lines, ""))
	}, nil
}
