package game

import (
	"fmt"

	"github.com/pixil98/go-adventure/internal/storage"
	"github.com/pixil98/go-errors"
)

// SpawnEntry is one weighted choice in a spawn table.
type SpawnEntry[T storage.ValidatingSpec] struct {
	Id     storage.SmartIdentifier[T] `json:"id" yaml:"id"`
	Weight int                        `json:"weight" yaml:"weight"`
}

// SpawnTable adds random contents to a room when a world is built. Each of
// Rolls rolls succeeds with Chance and then picks one enemy or item, weighted
// across both lists.
type SpawnTable struct {
	Rolls   int                  `json:"rolls" yaml:"rolls"`
	Chance  float64              `json:"chance" yaml:"chance"`
	Enemies []SpawnEntry[*Enemy] `json:"enemies,omitempty" yaml:"enemies,omitempty"`
	Items   []SpawnEntry[*Item]  `json:"items,omitempty" yaml:"items,omitempty"`
}

func (t *SpawnTable) Resolve(dict *Dictionary) error {
	el := errors.NewErrorList()
	for i := range t.Enemies {
		el.Add(t.Enemies[i].Id.Resolve(dict.Enemies))
	}
	for i := range t.Items {
		el.Add(t.Items[i].Id.Resolve(dict.Items))
	}
	return el.Err()
}

func (t *SpawnTable) Validate() error {
	el := errors.NewErrorList()

	if t.Rolls < 0 {
		el.Add(fmt.Errorf("spawn rolls must not be negative"))
	}
	if t.Chance < 0 || t.Chance > 1 {
		el.Add(fmt.Errorf("spawn chance must be between 0 and 1"))
	}
	if t.Rolls > 0 && len(t.Enemies)+len(t.Items) == 0 {
		el.Add(fmt.Errorf("spawn table has rolls but no entries"))
	}
	for i, e := range t.Enemies {
		el.Add(validateEntry("enemy", i, e.Id.Validate(), e.Weight))
	}
	for i, e := range t.Items {
		el.Add(validateEntry("item", i, e.Id.Validate(), e.Weight))
	}

	return el.Err()
}

func validateEntry(kind string, i int, idErr error, weight int) error {
	el := errors.NewErrorList()
	if idErr != nil {
		el.Add(fmt.Errorf("spawn %s %d: %w", kind, i, idErr))
	}
	if weight <= 0 {
		el.Add(fmt.Errorf("spawn %s %d: weight must be positive", kind, i))
	}
	return el.Err()
}

func (t *SpawnTable) totalWeight() int {
	total := 0
	for _, e := range t.Enemies {
		total += e.Weight
	}
	for _, e := range t.Items {
		total += e.Weight
	}
	return total
}

// spawn rolls the table into ri. The table's references must be resolved.
func (t *SpawnTable) spawn(ri *RoomInstance, r Roller) {
	total := t.totalWeight()
	if total == 0 {
		return
	}

	for range t.Rolls {
		if r.Float64() >= t.Chance {
			continue
		}

		pick := int(r.Float64() * float64(total))
		if def, ok := pickEntry(t.Enemies, &pick); ok {
			ri.AddEnemy(NewEnemyInstance(def))
			continue
		}
		if def, ok := pickEntry(t.Items, &pick); ok {
			ri.AddItem(def)
		}
	}
}

// pickEntry walks entries spending pick against each weight.
func pickEntry[T storage.ValidatingSpec](entries []SpawnEntry[T], pick *int) (T, bool) {
	for _, e := range entries {
		if *pick < e.Weight {
			return e.Id.Id(), true
		}
		*pick -= e.Weight
	}
	var zero T
	return zero, false
}
