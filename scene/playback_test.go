package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaybackPausedByDefault(t *testing.T) {
	v := New(testTrajectory(), newFakeCanvas(), DefaultConfig())
	p := NewPlayback(v, 1)

	assert.False(t, p.Playing())
	for i := 0; i < 5; i++ {
		p.Tick()
	}
	assert.Equal(t, 0, v.TimeIndex(), "paused playback must not advance")
}

func TestPlaybackCadence(t *testing.T) {
	v := New(testTrajectory(), newFakeCanvas(), DefaultConfig())
	p := NewPlayback(v, 3)
	p.Toggle()

	p.Tick()
	p.Tick()
	assert.Equal(t, 0, v.TimeIndex(), "cursor holds until the divisor frame")
	p.Tick()
	assert.Equal(t, 1, v.TimeIndex())

	// Three timesteps total: two more advances wrap back to the start.
	for i := 0; i < 6; i++ {
		p.Tick()
	}
	assert.Equal(t, 0, v.TimeIndex())
}

func TestPlaybackStepClamps(t *testing.T) {
	v := New(testTrajectory(), newFakeCanvas(), DefaultConfig())
	p := NewPlayback(v, 1)

	p.Step(-1)
	assert.Equal(t, 0, v.TimeIndex())
	p.Step(100)
	assert.Equal(t, v.TimeStepCount()-1, v.TimeIndex())
}
