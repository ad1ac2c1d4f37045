package commands

import (
	"context"
	"strings"
)

// TakeHandlerFactory creates handlers that pick an item up from the room.
// Inputs:
//   - item (required): name or alias of the item
type TakeHandlerFactory struct{}

func (f *TakeHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *TakeHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		name := cmdCtx.Input("item")
		if name == "" {
			return NewUserError("Take what?")
		}

		o, err := cmdCtx.Game.Take(name)
		if err != nil {
			return err
		}
		return cmdCtx.PrintOutcome(o)
	}, nil
}

// DropHandlerFactory creates handlers that put a held item down.
// Inputs:
//   - item (required): name or alias of the item
type DropHandlerFactory struct{}

func (f *DropHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *DropHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		name := cmdCtx.Input("item")
		if name == "" {
			return NewUserError("Drop what?")
		}

		o, err := cmdCtx.Game.Drop(name)
		if err != nil {
			return err
		}
		return cmdCtx.PrintOutcome(o)
	}, nil
}

// UseHandlerFactory creates handlers that use a held item.
// Inputs:
//   - item (required): "<item>" or "<item> on <target>"
type UseHandlerFactory struct{}

func (f *UseHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *UseHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		name, target := splitTarget(cmdCtx.Input("item"))
		if name == "" {
			return NewUserError("Use what?")
		}

		o, err := cmdCtx.Game.Use(name, target)
		if err != nil {
			return err
		}
		return cmdCtx.PrintOutcome(o)
	}, nil
}

// splitTarget splits "potion on goblin" into its item and target parts.
func splitTarget(s string) (string, string) {
	lower := strings.ToLower(s)
	if i := strings.Index(lower, " on "); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(" on "):])
	}
	return strings.TrimSpace(s), ""
}
