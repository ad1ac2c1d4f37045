package commands

import (
	"context"
	"fmt"
)

// MoveHandlerFactory creates handlers that walk the player through an exit.
// Config:
//   - direction (required): exit to take, usually "{{ .Inputs.direction }}"
type MoveHandlerFactory struct{}

func (f *MoveHandlerFactory) ValidateConfig(config map[string]any) error {
	if dir, _ := config["direction"].(string); dir == "" {
		return fmt.Errorf("direction is required")
	}
	return nil
}

func (f *MoveHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		dir := cmdCtx.Config["direction"]
		if dir == "" {
			return NewUserError("Go where?")
		}

		o, err := cmdCtx.Game.Move(dir)
		if err != nil {
			return err
		}
		return cmdCtx.PrintOutcome(o)
	}, nil
}
