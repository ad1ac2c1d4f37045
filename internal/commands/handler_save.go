package commands

import (
	"context"
	"fmt"
)

// SaveHandlerFactory creates handlers that save the session's game.
// Inputs:
//   - name (optional): save name; the session picks one when omitted
type SaveHandlerFactory struct{}

func (f *SaveHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *SaveHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if cmdCtx.Session == nil {
			return NewUserError("This game can't be saved.")
		}

		name := cmdCtx.Input("name")
		if err := cmdCtx.Session.Save(name); err != nil {
			return fmt.Errorf("saving game: %w", err)
		}
		return cmdCtx.Print("Game saved.")
	}, nil
}

// QuitHandlerFactory creates handlers that end the session.
// Config:
//   - message (optional): farewell text
type QuitHandlerFactory struct{}

func (f *QuitHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *QuitHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		if err := cmdCtx.Print(cmdCtx.Config["message"]); err != nil {
			return err
		}
		if cmdCtx.Session != nil {
			cmdCtx.Session.Quit()
		}
		return nil
	}, nil
}
