package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaAcquireRelease(t *testing.T) {
	a := NewArena()

	h1 := a.Acquire("one")
	h2 := a.Acquire("two")
	assert.True(t, h1.Valid())
	assert.Equal(t, 2, a.Live())

	got, ok := a.Get(h1)
	assert.True(t, ok)
	assert.Equal(t, "one", got)

	payload, ok := a.Release(h1)
	assert.True(t, ok)
	assert.Equal(t, "one", payload)
	assert.Equal(t, 1, a.Live())

	_, ok = a.Get(h1)
	assert.False(t, ok, "released handle must not resolve")
	_, ok = a.Release(h1)
	assert.False(t, ok, "double release must fail")

	got, ok = a.Get(h2)
	assert.True(t, ok)
	assert.Equal(t, "two", got)
}

func TestArenaStaleGeneration(t *testing.T) {
	a := NewArena()

	h1 := a.Acquire("old")
	a.Release(h1)

	// The slot is recycled with a bumped generation; the old handle must
	// not alias the new occupant.
	h2 := a.Acquire("new")
	assert.Equal(t, h1.index, h2.index)

	_, ok := a.Get(h1)
	assert.False(t, ok)
	got, ok := a.Get(h2)
	assert.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestArenaZeroHandle(t *testing.T) {
	a := NewArena()
	a.Acquire("x")

	var zero Handle
	assert.False(t, zero.Valid())
	_, ok := a.Get(zero)
	assert.False(t, ok)
	_, ok = a.Release(zero)
	assert.False(t, ok)
}
