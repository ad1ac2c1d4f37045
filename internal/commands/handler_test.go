package commands

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestHandler_parseValue(t *testing.T) {
	h := &Handler{}

	tests := map[string]struct {
		inputType InputType
		raw       string
		exp       any
		expErr    string
	}{
		"string type": {
			inputType: InputTypeString,
			raw:       "hello world",
			exp:       "hello world",
		},
		"number type valid": {
			inputType: InputTypeNumber,
			raw:       "42",
			exp:       42,
		},
		"number type invalid": {
			inputType: InputTypeNumber,
			raw:       "abc",
			expErr:    `"abc" is not a valid number.`,
		},
		"direction short form": {
			inputType: InputTypeDirection,
			raw:       "N",
			exp:       "north",
		},
		"direction long form": {
			inputType: InputTypeDirection,
			raw:       "Down",
			exp:       "down",
		},
		"direction unknown passes through": {
			inputType: InputTypeDirection,
			raw:       "Portal",
			exp:       "portal",
		},
		"unknown type": {
			inputType: InputType("bogus"),
			raw:       "test",
			expErr:    `unknown input type "bogus"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := h.parseValue(tt.inputType, tt.raw)

			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.exp {
				t.Errorf("got %v, expected %v", got, tt.exp)
			}
		})
	}
}

func TestHandler_parseInputs(t *testing.T) {
	h := &Handler{}

	talk := []InputSpec{
		{Name: "npc", Type: InputTypeString},
		{Name: "message", Type: InputTypeString, Rest: true},
	}

	tests := map[string]struct {
		specs  []InputSpec
		args   []string
		exp    map[string]any
		expErr string
	}{
		"no inputs": {
			exp: map[string]any{},
		},
		"too many args": {
			specs:  []InputSpec{{Name: "direction", Type: InputTypeDirection}},
			args:   []string{"north", "east"},
			expErr: "Expected at most 1 argument(s), got 2.",
		},
		"missing required": {
			specs:  []InputSpec{{Name: "item", Type: InputTypeString, Required: true}},
			expErr: "Missing item.",
		},
		"optional omitted": {
			specs: talk,
			exp:   map[string]any{},
		},
		"rest joins words": {
			specs: talk,
			args:  []string{"hermit", "how", "are", "you"},
			exp:   map[string]any{"npc": "hermit", "message": "how are you"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := h.parseInputs(tt.specs, tt.args)

			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "inputs", fmt.Sprint(got), fmt.Sprint(tt.exp))
		})
	}
}

func TestHandler_Exec(t *testing.T) {
	tests := map[string]struct {
		setup  []string
		line   string
		expOut []string
		expErr string
	}{
		"look": {
			line:   "look",
			expOut: []string{"Start\nA quiet clearing.\n", "There is Potion here.", "Hermit is here.", "Exits: north"},
		},
		"look alias upper case": {
			line:   "L",
			expOut: []string{"Start"},
		},
		"blank line": {
			line: "   ",
		},
		"unknown command": {
			line:   "dance",
			expErr: "Unknown command: dance",
		},
		"move by alias": {
			line:   "n",
			expOut: []string{"Forest", "A hostile Rat blocks your way! (5/5)"},
		},
		"move with short direction input": {
			line:   "go n",
			expOut: []string{"Forest"},
		},
		"move without direction": {
			line:   "go",
			expErr: "Missing direction.",
		},
		"move nowhere": {
			line:   "go s",
			expErr: "You can't go that way.",
		},
		"leave during combat": {
			setup:  []string{"north"},
			line:   "south",
			expErr: "You can't leave while enemies block your way!",
		},
		"take": {
			line:   "get potion",
			expOut: []string{"You take the Potion."},
		},
		"take twice": {
			setup:  []string{"take potion"},
			line:   "take potion",
			expErr: "You don't see that here.",
		},
		"use at full health": {
			setup:  []string{"take potion"},
			line:   "use potion",
			expErr: "Already at full health.",
		},
		"inventory empty": {
			line:   "i",
			expOut: []string{"You are carrying nothing."},
		},
		"inventory": {
			setup:  []string{"take potion"},
			line:   "inventory",
			expOut: []string{"You are carrying:\n  Potion"},
		},
		"drop": {
			setup:  []string{"take potion"},
			line:   "drop potion",
			expOut: []string{"You drop the Potion."},
		},
		"attack": {
			setup:  []string{"n"},
			line:   "kill rat",
			expOut: []string{"You attack the Rat for 10 damage.", "You defeated the Rat!", "The room falls quiet."},
		},
		"attack nothing": {
			line:   "attack",
			expErr: "There is nobody like that here.",
		},
		"talk": {
			line:   "talk hermit hello",
			expOut: []string{`Hermit says, "Hello! Nice to meet you!"`},
		},
		"talk to nobody": {
			setup:  []string{"n"},
			line:   "talk",
			expErr: "There is nobody like that here.",
		},
		"status": {
			line:   "score",
			expOut: []string{"Adventurer, level 1", "Health: 100/100"},
		},
		"message template": {
			line:   "wave",
			expOut: []string{"Adventurer waves in the start."},
		},
		"help": {
			line:   "help",
			expOut: []string{"Available commands:", "  go <direction>: walk through an exit", "  look: describe the room"},
		},
		"help for alias": {
			line:   "help l",
			expOut: []string{"look: describe the room\nAliases: l"},
		},
		"help for unknown": {
			line:   "help dance",
			expErr: `Command "dance" is unknown.`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := newRunner(t)
			for _, line := range tt.setup {
				if _, err := r.run(line); err != nil {
					t.Fatalf("setup %q: %v", line, err)
				}
			}

			out, err := r.run(tt.line)

			if tt.expErr != "" {
				var userErr *UserError
				if !errors.As(err, &userErr) {
					t.Fatalf("expected *UserError, got %v", err)
				}
				testutil.AssertEqual(t, "error", userErr.Message, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, exp := range tt.expOut {
				if !strings.Contains(out, exp) {
					t.Errorf("output %q does not contain %q", out, exp)
				}
			}
		})
	}
}

func TestHandler_SaveAndQuit(t *testing.T) {
	r := newRunner(t)

	out, err := r.run("save mygame")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "save output", out, "Game saved.\n")
	testutil.AssertEqual(t, "saved", strings.Join(r.sess.saved, ","), "mygame")

	r.sess.saveErr = fmt.Errorf("disk full")
	_, err = r.run("save")
	testutil.AssertErrorContains(t, err, "disk full")

	out, err = r.run("quit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "quit output", out, "Farewell, Adventurer.\n")
	testutil.AssertEqual(t, "quit", r.sess.quit, true)
}

func TestHandler_GameOverActions(t *testing.T) {
	r := newRunner(t)
	p := r.base.Game.Player()
	p.TakeDamage(p.Health() + p.Defense())

	out, err := r.run("n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "You have died.") {
		t.Errorf("output %q does not mention death", out)
	}

	_, err = r.run("kill rat")
	var userErr *UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected *UserError, got %v", err)
	}
	testutil.AssertEqual(t, "error", userErr.Message, "The game is over.")

	if _, err := r.run("look"); err != nil {
		t.Errorf("look after death: %v", err)
	}
}

func TestHandler_CompileAll(t *testing.T) {
	tests := map[string]struct {
		commands map[string]*Command
		expErr   string
	}{
		"unknown handler": {
			commands: map[string]*Command{"fly": {Handler: "fly"}},
			expErr:   `compiling command "fly": unknown handler "fly"`,
		},
		"invalid config": {
			commands: map[string]*Command{"go": {Handler: "move"}},
			expErr:   "direction is required",
		},
		"alias shadows command": {
			commands: map[string]*Command{
				"look": {Handler: "look"},
				"peek": {Handler: "look", Aliases: []string{"look"}},
			},
			expErr: `alias "look" shadows a command`,
		},
		"alias reused": {
			commands: map[string]*Command{
				"look":  {Handler: "look", Aliases: []string{"l"}},
				"leave": {Handler: "quit", Aliases: []string{"l"}},
			},
			expErr: `alias "l" already used by "leave"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := NewHandler(newMemStore(tt.commands))
			testutil.AssertErrorContains(t, h.CompileAll(), tt.expErr)
		})
	}
}

func TestHandler_RegisterFactory(t *testing.T) {
	h := NewHandler(newMemStore[*Command](nil))

	testutil.AssertErrorContains(t, h.RegisterFactory("", &LookHandlerFactory{}), "cannot be empty")
	testutil.AssertErrorContains(t, h.RegisterFactory("custom", nil), "cannot be nil")
	testutil.AssertErrorContains(t, h.RegisterFactory("look", &LookHandlerFactory{}), `"look" already registered`)

	if err := h.RegisterFactory("custom", &LookHandlerFactory{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSplitTarget(t *testing.T) {
	tests := map[string]struct {
		in        string
		expItem   string
		expTarget string
	}{
		"item only":        {in: "potion", expItem: "potion"},
		"item on target":   {in: "bomb on goblin", expItem: "bomb", expTarget: "goblin"},
		"multi word parts": {in: "iron key ON old door", expItem: "iron key", expTarget: "old door"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			item, target := splitTarget(tt.in)
			testutil.AssertEqual(t, "item", item, tt.expItem)
			testutil.AssertEqual(t, "target", target, tt.expTarget)
		})
	}
}
