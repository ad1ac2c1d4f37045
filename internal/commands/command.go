package commands

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// InputType represents the type of a command input parameter.
type InputType string

const (
	InputTypeString    InputType = "string"    // Text input (single word if rest=false, multi-word if rest=true)
	InputTypeNumber    InputType = "number"    // Integer
	InputTypeDirection InputType = "direction" // Exit direction; short forms are expanded
)

// InputSpec defines an input parameter that a command accepts from user input.
type InputSpec struct {
	Name     string    `json:"name" yaml:"name"`
	Type     InputType `json:"type" yaml:"type"`
	Required bool      `json:"required" yaml:"required"`
	Rest     bool      `json:"rest" yaml:"rest"` // If true, captures all remaining input
}

// Command defines a command loaded from asset files. The asset id is the
// word the player types.
type Command struct {
	Handler string         `json:"handler" yaml:"handler"`
	Aliases []string       `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Summary string         `json:"summary,omitempty" yaml:"summary,omitempty"`
	Config  map[string]any `json:"config,omitempty" yaml:"config,omitempty"` // Config passed to handler, may contain templates
	Inputs  []InputSpec    `json:"inputs,omitempty" yaml:"inputs,omitempty"`
}

func (c *Command) Validate() error {
	el := errors.NewErrorList()

	if c.Handler == "" {
		el.Add(fmt.Errorf("command handler not set"))
	}

	for _, a := range c.Aliases {
		if a == "" || strings.ContainsAny(a, " \t") {
			el.Add(fmt.Errorf("alias %q must be a single word", a))
		}
	}

	for i, input := range c.Inputs {
		if input.Name == "" {
			el.Add(fmt.Errorf("input %d: name is required", i))
		}
		switch input.Type {
		case InputTypeString, InputTypeNumber, InputTypeDirection:
		case "":
			el.Add(fmt.Errorf("input %q: type is required", input.Name))
		default:
			el.Add(fmt.Errorf("input %q: unknown type %q", input.Name, input.Type))
		}
		if input.Rest && i != len(c.Inputs)-1 {
			el.Add(fmt.Errorf("input %q: only the last input can have rest=true", input.Name))
		}
	}

	return el.Err()
}
