package commands

import (
	"errors"
	"strings"

	"github.com/pixil98/go-adventure/internal/display"
	"github.com/pixil98/go-adventure/internal/game"
)

// UserError represents an error that should be displayed to the user.
// These are not system failures - just invalid input or usage.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

var gameErrorMessages = []struct {
	err error
	msg string
}{
	{game.ErrGameOver, "The game is over."},
	{game.ErrInCombat, "You can't leave while enemies block your way!"},
	{game.ErrNoExit, "You can't go that way."},
	{game.ErrExitLocked, "The way is locked."},
	{game.ErrCapacityExceeded, "You can't carry any more."},
	{game.ErrNoTarget, "There is nobody like that here."},
	{game.ErrNotUsable, "You can't use that."},
	{game.ErrNotFound, "You don't see that here."},
}

// translateError turns recoverable game errors into user errors. Anything
// else is returned unchanged.
func translateError(err error) error {
	var userErr *UserError
	if err == nil || errors.As(err, &userErr) {
		return err
	}

	for _, m := range gameErrorMessages {
		if !errors.Is(err, m.err) {
			continue
		}
		// Not-usable errors carry a useful reason after the sentinel.
		if m.err == game.ErrNotUsable {
			if reason := reasonAfter(err, m.err); reason != "" {
				return NewUserError(display.Capitalize(reason) + ".")
			}
		}
		return NewUserError(m.msg)
	}
	return err
}

// reasonAfter extracts "reason" from an error formatted as "<sentinel>: reason".
func reasonAfter(err error, sentinel error) string {
	_, reason, _ := strings.Cut(err.Error(), sentinel.Error()+": ")
	return reason
}
