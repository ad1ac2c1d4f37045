package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// Response is a canned reply triggered by any of its keywords.
type Response struct {
	Keywords []string `json:"keywords" yaml:"keywords"`
	Reply    string   `json:"reply" yaml:"reply"`
}

var defaultResponses = []Response{
	{Keywords: []string{"hello", "hi"}, Reply: "Hello! Nice to meet you!"},
	{Keywords: []string{"how are you"}, Reply: "I'm doing well, thanks for asking!"},
	{Keywords: []string{"bye", "goodbye"}, Reply: "Goodbye! Take care!"},
	{Keywords: []string{"name"}, Reply: "My name is {name}."},
	{Keywords: []string{"help"}, Reply: "I'm here to help you find your way."},
	{Keywords: []string{"class", "object"}, Reply: "Yes! I'm an object created from the NPC class, just like you're an object from the Player class!"},
}

const defaultFallback = "Interesting... Tell me more about that!"

// NPC defines a non-player character that can be talked to.
type NPC struct {
	id string

	Name        string   `json:"name" yaml:"name"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`

	// Greeting is said when the player talks without a message.
	Greeting string `json:"greeting,omitempty" yaml:"greeting,omitempty"`

	// Responses are checked in order; the first keyword found in the
	// message wins. When empty the built-in responses are used.
	Responses []Response `json:"responses,omitempty" yaml:"responses,omitempty"`

	Fallback string `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

func (n *NPC) ID() string {
	return n.id
}

// Respond picks the reply to message. "{name}" in a reply is replaced by the
// NPC's name.
func (n *NPC) Respond(message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))

	if msg == "" && n.Greeting != "" {
		return n.fill(n.Greeting)
	}

	responses := n.Responses
	if len(responses) == 0 {
		responses = defaultResponses
	}

	for _, r := range responses {
		for _, kw := range r.Keywords {
			if kw != "" && strings.Contains(msg, strings.ToLower(kw)) {
				return n.fill(r.Reply)
			}
		}
	}

	if n.Fallback != "" {
		return n.fill(n.Fallback)
	}
	return defaultFallback
}

func (n *NPC) fill(s string) string {
	return strings.ReplaceAll(s, "{name}", n.Name)
}

// MatchName returns true if name matches the NPC's name or any alias (case-insensitive).
func (n *NPC) MatchName(name string) bool {
	if strings.EqualFold(n.Name, name) {
		return true
	}
	for _, alias := range n.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// Validate satisfies storage.ValidatingSpec
func (n *NPC) Validate() error {
	el := errors.NewErrorList()
	if n.Name == "" {
		el.Add(fmt.Errorf("npc name is required"))
	}
	for i, r := range n.Responses {
		if len(r.Keywords) == 0 {
			el.Add(fmt.Errorf("response %d: at least one keyword is required", i))
		}
		if r.Reply == "" {
			el.Add(fmt.Errorf("response %d: reply is required", i))
		}
	}
	return el.Err()
}
