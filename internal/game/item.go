package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// Effect is what happens when an item is used.
type Effect int

const (
	EffectNone Effect = iota
	EffectHeal
	EffectDamage
	EffectUnlock
	EffectWeapon
	EffectArmor
)

var effectNames = map[Effect]string{
	EffectNone:   "none",
	EffectHeal:   "heal",
	EffectDamage: "damage",
	EffectUnlock: "unlock",
	EffectWeapon: "weapon",
	EffectArmor:  "armor",
}

func (e Effect) String() string {
	if s, ok := effectNames[e]; ok {
		return s
	}
	return fmt.Sprintf("effect(%d)", int(e))
}

func (e Effect) MarshalText() ([]byte, error) {
	if _, ok := effectNames[e]; !ok {
		return nil, fmt.Errorf("unknown effect %d", int(e))
	}
	return []byte(e.String()), nil
}

func (e *Effect) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	if s == "" {
		*e = EffectNone
		return nil
	}
	for k, v := range effectNames {
		if v == s {
			*e = k
			return nil
		}
	}
	return fmt.Errorf("unknown effect %q", s)
}

// Item defines a collectible loaded from asset files. Items are shared by
// every room and inventory that holds them and never change after loading.
type Item struct {
	id string

	// Name is shown to the player and used for lookups.
	Name string `json:"name" yaml:"name"`

	// Aliases are extra keywords that match this item (e.g. ["potion", "red"]).
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`

	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Effect      Effect `json:"effect" yaml:"effect"`
	Magnitude   int    `json:"magnitude" yaml:"magnitude"`

	// Consumable overrides the effect's default. Heal and damage items are
	// used up; everything else is kept.
	Consumable *bool `json:"consumable,omitempty" yaml:"consumable,omitempty"`

	// Unlocks is the key id of the exits this item opens.
	Unlocks string `json:"unlocks,omitempty" yaml:"unlocks,omitempty"`
}

type ItemOpt func(*Item)

func WithAliases(aliases ...string) ItemOpt {
	return func(i *Item) {
		i.Aliases = aliases
	}
}

func WithDescription(desc string) ItemOpt {
	return func(i *Item) {
		i.Description = desc
	}
}

func WithConsumable(b bool) ItemOpt {
	return func(i *Item) {
		i.Consumable = &b
	}
}

func WithUnlocks(key string) ItemOpt {
	return func(i *Item) {
		i.Unlocks = key
	}
}

func NewItem(id string, name string, effect Effect, magnitude int, opts ...ItemOpt) *Item {
	i := &Item{
		id:        id,
		Name:      name,
		Effect:    effect,
		Magnitude: magnitude,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ID returns the asset id the item was loaded under.
func (i *Item) ID() string {
	return i.id
}

func (i *Item) IsConsumable() bool {
	if i.Consumable != nil {
		return *i.Consumable
	}
	return i.Effect == EffectHeal || i.Effect == EffectDamage
}

// MatchName returns true if name matches the item's name or any alias (case-insensitive).
func (i *Item) MatchName(name string) bool {
	if strings.EqualFold(i.Name, name) {
		return true
	}
	for _, alias := range i.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// Validate satisfies storage.ValidatingSpec
func (i *Item) Validate() error {
	el := errors.NewErrorList()
	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if i.Magnitude < 0 {
		el.Add(fmt.Errorf("item magnitude must not be negative"))
	}
	if _, ok := effectNames[i.Effect]; !ok {
		el.Add(fmt.Errorf("item effect %d is invalid", int(i.Effect)))
	}
	if i.Effect == EffectUnlock && i.Unlocks == "" {
		el.Add(fmt.Errorf("unlock item must name the key it unlocks"))
	}
	if (i.Effect == EffectWeapon || i.Effect == EffectArmor) && i.IsConsumable() {
		el.Add(fmt.Errorf("%s items can't be consumable", i.Effect))
	}
	return el.Err()
}
