package world

import "reflect"

// WorldBuilderOption is a functional option for configuring a World via NewWorld.
type WorldBuilderOption func(*world)

// WithCapacity pre-sizes the entity table.
//
// Parameters:
//   - n: the expected number of entities
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithCapacity(n int) WorldBuilderOption {
	return func(w *world) {
		if n > 0 {
			w.entities = make(map[EntityID]map[reflect.Type]any, n)
		}
	}
}
