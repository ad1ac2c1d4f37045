package game

import "math/rand/v2"

// Roller supplies the random numbers used by enemy abilities.
type Roller interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
}

// NewRoller returns a Roller seeded with seed. A zero seed picks a random one.
func NewRoller(seed uint64) Roller {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Combatant is anything that can fight.
type Combatant interface {
	Damageable
	Name() string
	Attack(target Damageable, r Roller) []Strike
}

// Strike is one hit landed during an attack.
type Strike struct {
	Attacker string
	Ability  string
	Power    int
	Dealt    int
}

type ability func(e *EnemyInstance, target Damageable, r Roller) []Strike

var abilities = map[Variant]ability{
	VariantBasic:  basicAttack,
	VariantSlime:  slimeAttack,
	VariantGoblin: goblinAttack,
	VariantDragon: dragonAttack,
}

func strike(e *EnemyInstance, target Damageable, name string, power int) Strike {
	return Strike{
		Attacker: e.Name(),
		Ability:  name,
		Power:    power,
		Dealt:    target.TakeDamage(power),
	}
}

func basicAttack(e *EnemyInstance, target Damageable, _ Roller) []Strike {
	return []Strike{strike(e, target, "attack", e.AttackPower())}
}

func slimeAttack(e *EnemyInstance, target Damageable, r Roller) []Strike {
	if r.Float64() < e.stats.AbilityChance {
		return []Strike{strike(e, target, "weak attack", max(1, e.AttackPower()/2))}
	}
	return basicAttack(e, target, r)
}

func goblinAttack(e *EnemyInstance, target Damageable, r Roller) []Strike {
	strikes := basicAttack(e, target, r)
	if r.Float64() < e.stats.AbilityChance {
		strikes = append(strikes, strike(e, target, "second attack", max(1, e.AttackPower()/2)))
	}
	return strikes
}

func dragonAttack(e *EnemyInstance, target Damageable, r Roller) []Strike {
	if e.cooldown <= 0 && r.Float64() < e.stats.AbilityChance {
		e.cooldown = e.stats.Cooldown
		return []Strike{strike(e, target, "fire breath", e.AttackPower()*2)}
	}
	return basicAttack(e, target, r)
}
