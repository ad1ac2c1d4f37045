package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// PlayerPreset holds the starting stats for a new player.
type PlayerPreset struct {
	Name              string `json:"name"`
	MaxHealth         int    `json:"max_health"`
	AttackPower       int    `json:"attack_power"`
	Defense           int    `json:"defense"`
	ExperienceToLevel int    `json:"experience_to_level"`
}

// DefaultPlayerPreset is a level 1 adventurer.
var DefaultPlayerPreset = PlayerPreset{
	Name:              "Adventurer",
	MaxHealth:         100,
	AttackPower:       10,
	Defense:           5,
	ExperienceToLevel: 100,
}

func (p *PlayerPreset) Validate() error {
	el := errors.NewErrorList()
	if p.MaxHealth <= 0 {
		el.Add(fmt.Errorf("max_health must be positive"))
	}
	if p.AttackPower < 0 || p.Defense < 0 {
		el.Add(fmt.Errorf("attack_power and defense must not be negative"))
	}
	if p.ExperienceToLevel <= 0 {
		el.Add(fmt.Errorf("experience_to_level must be positive"))
	}
	return el.Err()
}

// LevelUp describes a level gained.
type LevelUp struct {
	Level     int
	MaxHealth int
}

// Player is the adventurer. CurrentRoom is kept valid by GameState.
type Player struct {
	name string

	health      int
	maxHealth   int
	attackPower int
	defense     int

	level             int
	experience        int
	experienceToLevel int

	inventory *Inventory
	weapon    *Item
	armor     *Item

	CurrentRoom string
}

func NewPlayer(preset PlayerPreset, capacity int, room string) *Player {
	if preset.Name == "" {
		preset.Name = DefaultPlayerPreset.Name
	}
	if preset.ExperienceToLevel <= 0 {
		preset.ExperienceToLevel = DefaultPlayerPreset.ExperienceToLevel
	}
	return &Player{
		name:              preset.Name,
		health:            preset.MaxHealth,
		maxHealth:         preset.MaxHealth,
		attackPower:       preset.AttackPower,
		defense:           preset.Defense,
		level:             1,
		experienceToLevel: preset.ExperienceToLevel,
		inventory:         NewInventory(capacity),
		CurrentRoom:       room,
	}
}

func (p *Player) Name() string           { return p.name }
func (p *Player) Health() int            { return p.health }
func (p *Player) MaxHealth() int         { return p.maxHealth }
func (p *Player) Level() int             { return p.level }
func (p *Player) Experience() int        { return p.experience }
func (p *Player) ExperienceToLevel() int { return p.experienceToLevel }
func (p *Player) Inventory() *Inventory  { return p.inventory }
func (p *Player) Weapon() *Item          { return p.weapon }
func (p *Player) Armor() *Item           { return p.armor }
func (p *Player) IsAlive() bool          { return p.health > 0 }
func (p *Player) BaseAttackPower() int   { return p.attackPower }
func (p *Player) BaseDefense() int       { return p.defense }

// AttackPower is the damage the player deals before the target's defense.
func (p *Player) AttackPower() int {
	if p.weapon != nil {
		return p.attackPower + p.weapon.Magnitude
	}
	return p.attackPower
}

func (p *Player) Defense() int {
	if p.armor != nil {
		return p.defense + p.armor.Magnitude
	}
	return p.defense
}

// TakeDamage lowers health by max(1, amount-defense), never below zero.
func (p *Player) TakeDamage(amount int) int {
	dealt := max(1, amount-p.Defense())
	p.health = max(0, p.health-dealt)
	return dealt
}

// Heal raises health, clamped to the maximum.
func (p *Player) Heal(amount int) int {
	healed := max(0, min(amount, p.maxHealth-p.health))
	p.health += healed
	return healed
}

// Equip puts a weapon or armor item in its slot and returns what was there.
// Equipped items stay in the inventory.
func (p *Player) Equip(item *Item) *Item {
	var prev *Item
	switch item.Effect {
	case EffectWeapon:
		prev, p.weapon = p.weapon, item
	case EffectArmor:
		prev, p.armor = p.armor, item
	}
	return prev
}

// Unequip clears whichever slot holds item.
func (p *Player) Unequip(item *Item) bool {
	switch {
	case p.weapon == item:
		p.weapon = nil
	case p.armor == item:
		p.armor = nil
	default:
		return false
	}
	return true
}

// GainExperience adds xp and applies any level ups it earns.
func (p *Player) GainExperience(xp int) []LevelUp {
	var ups []LevelUp
	p.experience += xp
	for p.experienceToLevel > 0 && p.experience >= p.experienceToLevel {
		p.experience -= p.experienceToLevel
		p.level++
		p.maxHealth += 10
		p.health = p.maxHealth
		p.attackPower += 2
		p.defense++
		p.experienceToLevel = p.experienceToLevel * 3 / 2
		ups = append(ups, LevelUp{Level: p.level, MaxHealth: p.maxHealth})
	}
	return ups
}
