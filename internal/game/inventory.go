package game

import (
	"fmt"
	"slices"
)

// Healer is anything whose health can be restored. Heal returns the amount
// actually restored.
type Healer interface {
	Heal(amount int) int
}

// Damageable is anything that can be hurt. TakeDamage returns the damage
// actually dealt after defense.
type Damageable interface {
	TakeDamage(amount int) int
}

// Equipper can wield weapons and wear armor. Equip returns the item that was
// previously in the slot, if any.
type Equipper interface {
	Equip(item *Item) *Item
}

// Unlocker opens exits locked by key and reports how many were opened.
type Unlocker interface {
	Unlock(key string) int
}

// UseResult describes what using an item did.
type UseResult struct {
	Item     *Item
	Amount   int
	Consumed bool

	// Previous is the item replaced in an equipment slot.
	Previous *Item
}

// Inventory is an ordered multiset of items. A capacity of 0 means unbounded.
type Inventory struct {
	items    []*Item
	capacity int
}

func NewInventory(capacity int) *Inventory {
	return &Inventory{capacity: capacity}
}

func (inv *Inventory) Capacity() int {
	return inv.capacity
}

func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Items returns a copy of the held items in the order they were added.
func (inv *Inventory) Items() []*Item {
	return slices.Clone(inv.items)
}

// Add appends item, failing with ErrCapacityExceeded when full.
func (inv *Inventory) Add(item *Item) error {
	if inv.capacity > 0 && len(inv.items) >= inv.capacity {
		return ErrCapacityExceeded
	}
	inv.items = append(inv.items, item)
	return nil
}

// Remove drops one occurrence of item.
func (inv *Inventory) Remove(item *Item) error {
	idx := slices.Index(inv.items, item)
	if idx < 0 {
		return fmt.Errorf("%s: %w", item.Name, ErrNotFound)
	}
	inv.items = slices.Delete(inv.items, idx, idx+1)
	return nil
}

func (inv *Inventory) Contains(item *Item) bool {
	return slices.Contains(inv.items, item)
}

// Count returns how many times item is held.
func (inv *Inventory) Count(item *Item) int {
	n := 0
	for _, i := range inv.items {
		if i == item {
			n++
		}
	}
	return n
}

// Find returns the first held item matching name, or nil.
func (inv *Inventory) Find(name string) *Item {
	for _, i := range inv.items {
		if i.MatchName(name) {
			return i
		}
	}
	return nil
}

// Use applies item to target and removes it if it is consumable. The item
// is only consumed when the effect succeeds.
func (inv *Inventory) Use(item *Item, target any) (*UseResult, error) {
	if !inv.Contains(item) {
		return nil, fmt.Errorf("%s: %w", item.Name, ErrNotFound)
	}

	res := &UseResult{Item: item}

	switch item.Effect {
	case EffectHeal:
		h, ok := target.(Healer)
		if !ok {
			return nil, fmt.Errorf("%w: %s can't heal that", ErrNotUsable, item.Name)
		}
		res.Amount = h.Heal(item.Magnitude)
		if res.Amount == 0 {
			return nil, fmt.Errorf("%w: already at full health", ErrNotUsable)
		}

	case EffectDamage:
		d, ok := target.(Damageable)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs something to hit", ErrNotUsable, item.Name)
		}
		res.Amount = d.TakeDamage(item.Magnitude)

	case EffectWeapon, EffectArmor:
		e, ok := target.(Equipper)
		if !ok {
			return nil, fmt.Errorf("%w: %s can't be equipped by that", ErrNotUsable, item.Name)
		}
		res.Previous = e.Equip(item)
		res.Amount = item.Magnitude

	case EffectUnlock:
		u, ok := target.(Unlocker)
		if !ok {
			return nil, fmt.Errorf("%w: there is nothing to unlock", ErrNotUsable)
		}
		res.Amount = u.Unlock(item.Unlocks)
		if res.Amount == 0 {
			return nil, fmt.Errorf("%w: %s doesn't fit anything here", ErrNotUsable, item.Name)
		}

	default:
		return nil, fmt.Errorf("%w: %s does nothing", ErrNotUsable, item.Name)
	}

	if item.IsConsumable() {
		res.Consumed = true
		if err := inv.Remove(item); err != nil {
			return nil, err
		}
	}

	return res, nil
}
