package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pixil98/go-adventure/internal/display"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/storage"
)

// Session is the part of a player session that commands can act on.
type Session interface {
	ID() string
	Save(name string) error
	Quit()
}

// CommandContext is what a compiled command runs against.
type CommandContext struct {
	Game    *game.GameState
	Session Session
	Out     io.Writer
	Width   int

	Config map[string]string // Expanded config values
	Inputs map[string]any    // Parsed inputs keyed by name
}

// Print writes text to the player, wrapped to the session width.
func (c *CommandContext) Print(text string) error {
	if text == "" {
		return nil
	}
	_, err := io.WriteString(c.Out, display.Wrap(text, c.Width)+"\n")
	return err
}

// PrintOutcome writes every message of an action outcome.
func (c *CommandContext) PrintOutcome(o *game.Outcome) error {
	if o == nil {
		return nil
	}
	return c.Print(o.String())
}

// Input returns a string input or "" when it was not given.
func (c *CommandContext) Input(name string) string {
	s, _ := c.Inputs[name].(string)
	return s
}

// CommandFunc is the signature for compiled command functions.
type CommandFunc func(ctx context.Context, cmdCtx *CommandContext) error

// HandlerFactory creates CommandFuncs from command configurations.
type HandlerFactory interface {
	// ValidateConfig validates that the config contains required fields.
	ValidateConfig(config map[string]any) error
	// Create creates a CommandFunc. Config values arrive expanded in the
	// CommandContext on every call.
	Create() (CommandFunc, error)
}

// compiledCommand holds a command that's been validated and compiled.
type compiledCommand struct {
	name    string
	cmd     *Command
	cmdFunc CommandFunc
}

type Handler struct {
	store     storage.Storer[*Command]
	factories map[string]HandlerFactory
	compiled  map[string]*compiledCommand
	aliases   map[string]string
}

func NewHandler(store storage.Storer[*Command]) *Handler {
	h := &Handler{
		store:     store,
		factories: make(map[string]HandlerFactory),
		compiled:  make(map[string]*compiledCommand),
		aliases:   make(map[string]string),
	}

	// Register built-in handlers
	_ = h.RegisterFactory("move", &MoveHandlerFactory{})
	_ = h.RegisterFactory("look", &LookHandlerFactory{})
	_ = h.RegisterFactory("take", &TakeHandlerFactory{})
	_ = h.RegisterFactory("drop", &DropHandlerFactory{})
	_ = h.RegisterFactory("use", &UseHandlerFactory{})
	_ = h.RegisterFactory("attack", &AttackHandlerFactory{})
	_ = h.RegisterFactory("talk", &TalkHandlerFactory{})
	_ = h.RegisterFactory("inventory", &InventoryHandlerFactory{})
	_ = h.RegisterFactory("status", &StatusHandlerFactory{})
	_ = h.RegisterFactory("save", &SaveHandlerFactory{})
	_ = h.RegisterFactory("help", NewHelpHandlerFactory(store))
	_ = h.RegisterFactory("message", &MessageHandlerFactory{})
	_ = h.RegisterFactory("quit", &QuitHandlerFactory{})
	return h
}

// RegisterFactory registers a handler factory by name.
// The name must match the "handler" field in command definitions.
func (h *Handler) RegisterFactory(name string, factory HandlerFactory) error {
	if name == "" {
		return fmt.Errorf("handler name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	if _, exists := h.factories[name]; exists {
		return fmt.Errorf("handler factory %q already registered", name)
	}
	h.factories[name] = factory
	return nil
}

// CompileAll compiles all commands from the store.
// Call this after all handler factories have been registered.
func (h *Handler) CompileAll() error {
	all := h.store.GetAll()

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		err := h.compile(id, all[id])
		if err != nil {
			return fmt.Errorf("compiling command %q: %w", id, err)
		}
	}
	return nil
}

func (h *Handler) compile(id string, cmd *Command) error {
	factory, ok := h.factories[cmd.Handler]
	if !ok {
		return fmt.Errorf("unknown handler %q", cmd.Handler)
	}

	if err := factory.ValidateConfig(cmd.Config); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	cmdFunc, err := factory.Create()
	if err != nil {
		return fmt.Errorf("creating handler: %w", err)
	}

	name := strings.ToLower(id)
	if other, ok := h.aliases[name]; ok {
		return fmt.Errorf("command shadows alias of %q", other)
	}
	for _, a := range cmd.Aliases {
		a = strings.ToLower(a)
		if other, ok := h.aliases[a]; ok && other != name {
			return fmt.Errorf("alias %q already used by %q", a, other)
		}
		if _, ok := h.compiled[a]; ok {
			return fmt.Errorf("alias %q shadows a command", a)
		}
		h.aliases[a] = name
	}

	h.compiled[name] = &compiledCommand{
		name:    name,
		cmd:     cmd,
		cmdFunc: cmdFunc,
	}
	return nil
}

func (h *Handler) lookup(word string) *compiledCommand {
	word = strings.ToLower(word)
	if c, ok := h.compiled[word]; ok {
		return c
	}
	if name, ok := h.aliases[word]; ok {
		return h.compiled[name]
	}
	return nil
}

// ExecLine splits a line of player input and executes it. Blank lines do
// nothing.
func (h *Handler) ExecLine(ctx context.Context, base CommandContext, line string) error {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}
	return h.Exec(ctx, base, words[0], words[1:]...)
}

// Exec executes a command with the given arguments. Recoverable game errors
// are returned as *UserError.
func (h *Handler) Exec(ctx context.Context, base CommandContext, cmdName string, rawArgs ...string) error {
	compiled := h.lookup(cmdName)
	if compiled == nil {
		return NewUserError(fmt.Sprintf("Unknown command: %s", cmdName))
	}

	inputs, err := h.parseInputs(compiled.cmd.Inputs, rawArgs)
	if err != nil {
		return err
	}

	config, err := expandConfig(compiled.cmd.Config, newRuntimeContext(base.Game, inputs))
	if err != nil {
		return fmt.Errorf("command %q: %w", compiled.name, err)
	}

	cmdCtx := base
	cmdCtx.Config = config
	cmdCtx.Inputs = inputs

	return translateError(compiled.cmdFunc(ctx, &cmdCtx))
}

// parseInputs validates raw string arguments against input specs.
func (h *Handler) parseInputs(specs []InputSpec, rawArgs []string) (map[string]any, error) {
	hasRest := len(specs) > 0 && specs[len(specs)-1].Rest
	if !hasRest && len(rawArgs) > len(specs) {
		return nil, NewUserError(fmt.Sprintf("Expected at most %d argument(s), got %d.", len(specs), len(rawArgs)))
	}

	inputs := make(map[string]any, len(specs))
	argIndex := 0

	for i := range specs {
		spec := &specs[i]

		if argIndex >= len(rawArgs) {
			if spec.Required {
				return nil, NewUserError(fmt.Sprintf("Missing %s.", spec.Name))
			}
			continue
		}

		var raw string
		if spec.Rest {
			raw = strings.Join(rawArgs[argIndex:], " ")
			argIndex = len(rawArgs)
		} else {
			raw = rawArgs[argIndex]
			argIndex++
		}

		value, err := h.parseValue(spec.Type, raw)
		if err != nil {
			return nil, err
		}
		inputs[spec.Name] = value
	}

	return inputs, nil
}

var directionAbbrev = map[string]string{
	"n": "north",
	"s": "south",
	"e": "east",
	"w": "west",
	"u": "up",
	"d": "down",
}

// parseValue parses a raw string into the appropriate type.
func (h *Handler) parseValue(inputType InputType, raw string) (any, error) {
	switch inputType {
	case InputTypeString:
		return raw, nil

	case InputTypeNumber:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, NewUserError(fmt.Sprintf("%q is not a valid number.", raw))
		}
		return n, nil

	case InputTypeDirection:
		dir := strings.ToLower(raw)
		if long, ok := directionAbbrev[dir]; ok {
			dir = long
		}
		return dir, nil

	default:
		return nil, fmt.Errorf("unknown input type %q", inputType)
	}
}

func usageLine(name string, cmd *Command) string {
	parts := []string{name}
	for _, input := range cmd.Inputs {
		if input.Required {
			parts = append(parts, fmt.Sprintf("<%s>", input.Name))
		} else {
			parts = append(parts, fmt.Sprintf("[%s]", input.Name))
		}
	}
	line := strings.Join(parts, " ")
	if cmd.Summary != "" {
		line += ": " + cmd.Summary
	}
	return line
}
