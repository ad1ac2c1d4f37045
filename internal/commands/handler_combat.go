package commands

import (
	"context"
)

// AttackHandlerFactory creates handlers that attack an enemy in the room.
// Inputs:
//   - enemy (optional): name or alias; the first enemy when omitted
type AttackHandlerFactory struct{}

func (f *AttackHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *AttackHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		o, err := cmdCtx.Game.Attack(cmdCtx.Input("enemy"))
		if err != nil {
			return err
		}
		return cmdCtx.PrintOutcome(o)
	}, nil
}

// TalkHandlerFactory creates handlers that speak to an NPC.
// Inputs:
//   - npc (optional): name or alias; the first NPC when omitted
//   - message (optional): what to say; the NPC greets when empty
type TalkHandlerFactory struct{}

func (f *TalkHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *TalkHandlerFactory) Create() (CommandFunc, error) {
	return func(ctx context.Context, cmdCtx *CommandContext) error {
		o, err := cmdCtx.Game.Talk(cmdCtx.Input("npc"), cmdCtx.Input("message"))
		if err != nil {
			return err
		}
		return cmdCtx.PrintOutcome(o)
	}, nil
}
