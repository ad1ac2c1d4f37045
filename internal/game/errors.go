package game

import "errors"

var (
	ErrNoExit           = errors.New("you can't go that way")
	ErrNotFound         = errors.New("not found")
	ErrNotUsable        = errors.New("that can't be used")
	ErrCapacityExceeded = errors.New("inventory is full")
	ErrExitLocked       = errors.New("the way is locked")
	ErrInCombat         = errors.New("you are in combat")
	ErrGameOver         = errors.New("the game is over")
	ErrNoTarget         = errors.New("no target")
	ErrUnknownRoom      = errors.New("unknown room")
)
