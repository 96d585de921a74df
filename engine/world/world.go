// Package world implements the entity-component store that scene loading populates.
// Entities are opaque identifiers; components are arbitrary Go values keyed by their
// concrete type, so an entity holds at most one component of each type.
package world

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// ErrNoEntity is returned when an operation addresses an entity that does not exist.
var ErrNoEntity = errors.New("world: no such entity")

// EntityID identifies an entity in a World. The zero value never names a live entity.
type EntityID uint64

// world is the implementation of the World interface.
type world struct {
	mu *sync.RWMutex

	entities map[EntityID]map[reflect.Type]any
	nextID   EntityID
}

// World defines the entity-store boundary consumed by the scene loader.
// Components are stored by pointer: attaching a value stores a pointer to a copy, attaching a
// pointer stores that pointer. Reads return the stored pointer so callers can mutate in place.
// Thread-safe for concurrent access; component values themselves are not synchronised.
type World interface {
	// Spawn creates a new entity carrying the given components.
	//
	// Parameters:
	//   - components: the components to attach to the new entity
	//
	// Returns:
	//   - EntityID: the identifier of the new entity
	Spawn(components ...any) EntityID

	// Attach adds components to an existing entity, replacing any component of the same type.
	//
	// Parameters:
	//   - id: the entity to attach to
	//   - components: the components to attach
	//
	// Returns:
	//   - error: ErrNoEntity if the entity does not exist
	Attach(id EntityID, components ...any) error

	// Despawn removes an entity and all of its components.
	//
	// Parameters:
	//   - id: the entity to remove
	//
	// Returns:
	//   - bool: true if the entity existed
	Despawn(id EntityID) bool

	// Alive reports whether the entity exists.
	Alive(id EntityID) bool

	// Count returns the number of live entities.
	Count() int

	// Entities returns all live entity identifiers in ascending order.
	Entities() []EntityID

	// Component returns the stored pointer for the component of type t on the entity.
	//
	// Parameters:
	//   - id: the entity to read from
	//   - t: the component's value type (not the pointer type)
	//
	// Returns:
	//   - any: a pointer to the component
	//   - bool: false if the entity or component does not exist
	Component(id EntityID, t reflect.Type) (any, bool)

	// With returns, in ascending order, every entity carrying a component of type t.
	With(t reflect.Type) []EntityID
}

var _ World = &world{}

// NewWorld creates an empty World with the given options applied.
//
// Parameters:
//   - options: a variadic list of WorldBuilderOption functions
//
// Returns:
//   - World: the new store
func NewWorld(options ...WorldBuilderOption) World {
	w := &world{
		mu:       &sync.RWMutex{},
		entities: make(map[EntityID]map[reflect.Type]any),
		nextID:   1,
	}

	for _, option := range options {
		option(w)
	}
	return w
}

func (w *world) Spawn(components ...any) EntityID {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextID
	w.nextID++

	set := make(map[reflect.Type]any, len(components))
	for _, c := range components {
		if c == nil {
			continue
		}
		t, ptr := componentPointer(c)
		set[t] = ptr
	}
	w.entities[id] = set
	return id
}

func (w *world) Attach(id EntityID, components ...any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	set, ok := w.entities[id]
	if !ok {
		return fmt.Errorf("attach to entity %d: %w", id, ErrNoEntity)
	}
	for _, c := range components {
		if c == nil {
			continue
		}
		t, ptr := componentPointer(c)
		set[t] = ptr
	}
	return nil
}

func (w *world) Despawn(id EntityID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.entities[id]; !ok {
		return false
	}
	delete(w.entities, id)
	return true
}

func (w *world) Alive(id EntityID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.entities[id]
	return ok
}

func (w *world) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entities)
}

func (w *world) Entities() []EntityID {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ids := make([]EntityID, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (w *world) Component(id EntityID, t reflect.Type) (any, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	set, ok := w.entities[id]
	if !ok {
		return nil, false
	}
	c, ok := set[t]
	return c, ok
}

func (w *world) With(t reflect.Type) []EntityID {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var ids []EntityID
	for id, set := range w.entities {
		if _, ok := set[t]; ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// componentPointer normalises a component to (value type, pointer to value).
// Non-pointer values are copied into freshly allocated storage.
func componentPointer(c any) (reflect.Type, any) {
	v := reflect.ValueOf(c)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		return v.Type().Elem(), c
	}
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	return v.Type(), ptr.Interface()
}
