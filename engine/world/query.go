package world

import "reflect"

// Get returns the component of type T attached to the entity.
//
// Parameters:
//   - w: the world to read from
//   - id: the entity to read
//
// Returns:
//   - *T: the stored component, mutations are visible to later reads
//   - bool: false if the entity or component does not exist
func Get[T any](w World, id EntityID) (*T, bool) {
	c, ok := w.Component(id, reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}
	v, ok := c.(*T)
	return v, ok
}

// Has reports whether the entity carries a component of type T.
func Has[T any](w World, id EntityID) bool {
	_, ok := w.Component(id, reflect.TypeFor[T]())
	return ok
}

// Query returns every entity carrying a component of type T, in ascending order.
func Query[T any](w World) []EntityID {
	return w.With(reflect.TypeFor[T]())
}
