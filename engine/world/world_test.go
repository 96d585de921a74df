package world

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y, Z float32 }

type label struct{ Name string }

func TestSpawnAndGet(t *testing.T) {
	w := NewWorld(WithCapacity(4))

	a := w.Spawn(position{X: 1}, label{Name: "a"})
	b := w.Spawn(&position{X: 2})

	assert.NotZero(t, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, w.Count())

	p, ok := Get[position](w, a)
	require.True(t, ok)
	assert.Equal(t, float32(1), p.X)

	l, ok := Get[label](w, a)
	require.True(t, ok)
	assert.Equal(t, "a", l.Name)

	_, ok = Get[label](w, b)
	assert.False(t, ok)
	assert.True(t, Has[position](w, b))
}

func TestComponentsAreStoredByPointer(t *testing.T) {
	w := NewWorld()

	src := &position{X: 1}
	id := w.Spawn(src)
	src.X = 5

	p, ok := Get[position](w, id)
	require.True(t, ok)
	assert.Equal(t, float32(5), p.X)

	p.Y = 3
	again, _ := Get[position](w, id)
	assert.Equal(t, float32(3), again.Y)

	val := position{Z: 1}
	other := w.Spawn(val)
	val.Z = 9
	q, _ := Get[position](w, other)
	assert.Equal(t, float32(1), q.Z)
}

func TestAttachReplacesSameType(t *testing.T) {
	w := NewWorld()
	id := w.Spawn(label{Name: "old"})

	require.NoError(t, w.Attach(id, label{Name: "new"}, position{X: 1}))
	l, _ := Get[label](w, id)
	assert.Equal(t, "new", l.Name)
	assert.True(t, Has[position](w, id))

	err := w.Attach(EntityID(999), label{})
	assert.ErrorIs(t, err, ErrNoEntity)
}

func TestDespawn(t *testing.T) {
	w := NewWorld()
	a := w.Spawn(label{Name: "a"})
	b := w.Spawn(label{Name: "b"})

	assert.True(t, w.Despawn(a))
	assert.False(t, w.Despawn(a))
	assert.False(t, w.Alive(a))
	assert.True(t, w.Alive(b))
	assert.Equal(t, []EntityID{b}, w.Entities())

	c := w.Spawn()
	assert.Greater(t, c, b, "identifiers are never reused")
}

func TestQueryIsSorted(t *testing.T) {
	w := NewWorld()
	var want []EntityID
	for i := 0; i < 20; i++ {
		id := w.Spawn(label{})
		if i%2 == 0 {
			require.NoError(t, w.Attach(id, position{}))
			want = append(want, id)
		}
	}
	assert.Equal(t, want, Query[position](w))
	assert.Len(t, Query[label](w), 20)
	assert.Empty(t, Query[struct{ Unused int }](w))
}

func TestSpawnSkipsNilComponents(t *testing.T) {
	w := NewWorld()
	id := w.Spawn(nil, label{Name: "x"})
	assert.True(t, Has[label](w, id))
}

func TestConcurrentSpawn(t *testing.T) {
	w := NewWorld()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				w.Spawn(position{X: float32(j)})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, w.Count())
	assert.Len(t, Query[position](w), 800)
}
