package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pixil98/go-adventure/internal/storage"
	"github.com/pixil98/go-errors"
)

// Variant selects an enemy's preset stats and special ability.
type Variant string

const (
	VariantBasic  Variant = "basic"
	VariantSlime  Variant = "slime"
	VariantGoblin Variant = "goblin"
	VariantDragon Variant = "dragon"
)

type preset struct {
	health   int
	attack   int
	defense  int
	chance   float64
	cooldown int
}

var presets = map[Variant]preset{
	VariantBasic:  {},
	VariantSlime:  {health: 15, attack: 3, defense: 1, chance: 0.3},
	VariantGoblin: {health: 25, attack: 6, defense: 2, chance: 0.2},
	VariantDragon: {health: 100, attack: 15, defense: 8, chance: 0.3, cooldown: 5},
}

// Enemy defines a type of enemy loaded from asset files. Stats left out of
// the asset fall back to the variant preset; a stat set to 0 stays 0.
type Enemy struct {
	id string

	Name        string   `json:"name" yaml:"name"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Variant     Variant  `json:"variant,omitempty" yaml:"variant,omitempty"`

	Health      *int `json:"health,omitempty" yaml:"health,omitempty"`
	AttackPower *int `json:"attack_power,omitempty" yaml:"attack_power,omitempty"`
	Defense     *int `json:"defense,omitempty" yaml:"defense,omitempty"`

	// Experience awarded on defeat; defaults to health + attack + defense.
	Experience *int `json:"experience,omitempty" yaml:"experience,omitempty"`

	// AbilityChance is the probability of the variant's special ability firing.
	AbilityChance *float64 `json:"ability_chance,omitempty" yaml:"ability_chance,omitempty"`

	// Cooldown is the number of turns an ability needs to recharge.
	Cooldown *int `json:"cooldown,omitempty" yaml:"cooldown,omitempty"`

	// Loot is dropped into the room when the enemy is defeated.
	Loot []storage.SmartIdentifier[*Item] `json:"loot,omitempty" yaml:"loot,omitempty"`
}

func (e *Enemy) ID() string {
	return e.id
}

// EnemyStats are an enemy's effective stats after presets are applied.
type EnemyStats struct {
	Health        int
	AttackPower   int
	Defense       int
	Experience    int
	AbilityChance float64
	Cooldown      int
}

func orDefault[T any](v *T, def T) T {
	if v != nil {
		return *v
	}
	return def
}

// Stats merges the asset's stats over its variant preset. Definitions are
// shared between games, so this never writes to e.
func (e *Enemy) Stats() EnemyStats {
	p := presets[e.variant()]
	s := EnemyStats{
		Health:        orDefault(e.Health, p.health),
		AttackPower:   orDefault(e.AttackPower, p.attack),
		Defense:       orDefault(e.Defense, p.defense),
		AbilityChance: orDefault(e.AbilityChance, p.chance),
		Cooldown:      orDefault(e.Cooldown, p.cooldown),
	}
	s.Experience = orDefault(e.Experience, s.Health+s.AttackPower+s.Defense)
	return s
}

func (e *Enemy) variant() Variant {
	if e.Variant == "" {
		return VariantBasic
	}
	return e.Variant
}

// Resolve resolves foreign keys from the dictionary.
func (e *Enemy) Resolve(dict *Dictionary) error {
	el := errors.NewErrorList()
	for i := range e.Loot {
		el.Add(e.Loot[i].Resolve(dict.Items))
	}
	if e.Stats().Health <= 0 {
		el.Add(fmt.Errorf("enemy health must be positive"))
	}
	return el.Err()
}

// MatchName returns true if name matches the enemy's name or any alias (case-insensitive).
func (e *Enemy) MatchName(name string) bool {
	if strings.EqualFold(e.Name, name) {
		return true
	}
	for _, alias := range e.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// Validate satisfies storage.ValidatingSpec
func (e *Enemy) Validate() error {
	el := errors.NewErrorList()
	if e.Name == "" {
		el.Add(fmt.Errorf("enemy name is required"))
	}
	if _, ok := presets[e.Variant]; e.Variant != "" && !ok {
		el.Add(fmt.Errorf("enemy variant %q is invalid", e.Variant))
	}
	for _, v := range []*int{e.Health, e.AttackPower, e.Defense, e.Experience, e.Cooldown} {
		if v != nil && *v < 0 {
			el.Add(fmt.Errorf("enemy stats must not be negative"))
			break
		}
	}
	if c := e.AbilityChance; c != nil && (*c < 0 || *c > 1) {
		el.Add(fmt.Errorf("enemy ability chance must be between 0 and 1"))
	}
	for i, l := range e.Loot {
		if err := l.Validate(); err != nil {
			el.Add(fmt.Errorf("loot %d: %w", i, err))
		}
	}
	return el.Err()
}

// EnemyInstance is a single live enemy spawned from an Enemy definition.
type EnemyInstance struct {
	InstanceId string
	Enemy      *Enemy

	stats    EnemyStats
	health   int
	cooldown int
}

func NewEnemyInstance(def *Enemy) *EnemyInstance {
	stats := def.Stats()
	return &EnemyInstance{
		InstanceId: uuid.New().String(),
		Enemy:      def,
		stats:      stats,
		health:     stats.Health,
	}
}

func (e *EnemyInstance) Name() string      { return e.Enemy.Name }
func (e *EnemyInstance) Variant() Variant  { return e.Enemy.variant() }
func (e *EnemyInstance) Stats() EnemyStats { return e.stats }
func (e *EnemyInstance) Health() int       { return e.health }
func (e *EnemyInstance) MaxHealth() int    { return e.stats.Health }
func (e *EnemyInstance) Defense() int      { return e.stats.Defense }
func (e *EnemyInstance) AttackPower() int  { return e.stats.AttackPower }
func (e *EnemyInstance) Experience() int   { return e.stats.Experience }
func (e *EnemyInstance) Cooldown() int     { return e.cooldown }
func (e *EnemyInstance) IsAlive() bool     { return e.health > 0 }

// TakeDamage lowers health by max(1, amount-defense), never below zero.
func (e *EnemyInstance) TakeDamage(amount int) int {
	dealt := max(1, amount-e.stats.Defense)
	e.health = max(0, e.health-dealt)
	return dealt
}

// Heal raises health, clamped to the maximum.
func (e *EnemyInstance) Heal(amount int) int {
	healed := min(amount, e.stats.Health-e.health)
	if healed < 0 {
		healed = 0
	}
	e.health += healed
	return healed
}

// Attack runs the variant's ability against target.
func (e *EnemyInstance) Attack(target Damageable, r Roller) []Strike {
	ab, ok := abilities[e.Variant()]
	if !ok {
		ab = basicAttack
	}
	return ab(e, target, r)
}

// Tick advances ability cooldowns by one turn.
func (e *EnemyInstance) Tick() {
	if e.cooldown > 0 {
		e.cooldown--
	}
}

// restore sets the mutable state from a save.
func (e *EnemyInstance) restore(health, cooldown int) {
	e.health = min(max(health, 0), e.stats.Health)
	e.cooldown = max(cooldown, 0)
}
