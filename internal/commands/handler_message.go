package commands

import (
	"context"
	"fmt"
)

// MessageHandlerFactory creates handlers that print templated text.
// Config:
//   - text (required): template for the message
type MessageHandlerFactory struct{}

func (f *MessageHandlerFactory) ValidateConfig(config map[string]any) error {
	if text, _ := config["text"].(string); text == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}

func (f *MessageHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		// Config values are already expanded by the framework
		return cmdCtx.Print(cmdCtx.Config["text"])
	}, nil
}
