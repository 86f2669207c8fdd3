package kinematics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/orbvis/event"
	"github.com/phil-mansfield/orbvis/geom"
	"github.com/phil-mansfield/orbvis/trajectory"
)

func TestPairCoMOrderInvariant(t *testing.T) {
	p1 := trajectory.Record{
		ID: 1, Mass: 3,
		X: geom.Vec{1, 0, 0}, V: geom.Vec{0, 2, 0},
	}
	p2 := trajectory.Record{
		ID: 2, Mass: 1,
		X: geom.Vec{-3, 0, 0}, V: geom.Vec{0, -2, 0},
	}

	x12, v12 := PairCoM(p1, p2)
	x21, v21 := PairCoM(p2, p1)
	assert.Equal(t, x12, x21)
	assert.Equal(t, v12, v21)

	assert.InDelta(t, 0, x12[0], 1e-12)
	assert.InDelta(t, 1, v12[1], 1e-12)
}

func TestCoMVelocity(t *testing.T) {
	p1 := trajectory.Record{ID: 1, Mass: 1, V: geom.Vec{1, 0, 0}}
	p2 := trajectory.Record{ID: 2, Mass: 1, V: geom.Vec{3, 0, 0}}

	a, ok := CoMVelocity(p1, p2)
	assert.True(t, ok)
	assert.InDelta(t, 2, a.Dir[0], 1e-12)

	// A pair at mutual rest has no velocity arrow.
	_, ok = CoMVelocity(
		trajectory.Record{ID: 1, Mass: 1},
		trajectory.Record{ID: 2, Mass: 1},
	)
	assert.False(t, ok)
}

func TestSpinArrows(t *testing.T) {
	// Relative motion in the xy plane, angular momentum along +z.
	p1 := trajectory.Record{
		ID: 1, Mass: 2,
		X: geom.Vec{1, 0, 0}, V: geom.Vec{0, 1, 0},
	}
	p2 := trajectory.Record{ID: 2, Mass: 3}
	params := Params{SpinParameter: 0.5}

	arrows, ok := SpinArrows(p1, p2, params)
	assert.True(t, ok)

	// Shared direction, per-body m^2 magnitude.
	n1, _ := arrows[0].Dir.Normalize()
	n2, _ := arrows[1].Dir.Normalize()
	assert.Equal(t, n1, n2)
	assert.InDelta(t, 1, n1[2], 1e-12)
	assert.InDelta(t, 0.5*4, arrows[0].Dir.Norm(), 1e-12)
	assert.InDelta(t, 0.5*9, arrows[1].Dir.Norm(), 1e-12)
	assert.Equal(t, p1.X, arrows[0].Origin)
	assert.Equal(t, p2.X, arrows[1].Origin)

	// Radial relative motion has no angular momentum.
	p3 := trajectory.Record{ID: 3, Mass: 1, X: geom.Vec{1, 0, 0}, V: geom.Vec{1, 0, 0}}
	p4 := trajectory.Record{ID: 4, Mass: 1}
	_, ok = SpinArrows(p3, p4, params)
	assert.False(t, ok)
}

// mergeTrajectory builds a three-step history where ids 1 and 2 merge into 1
// between t=10 and t=20. The remnant's velocity at t=20 is chosen by the
// caller.
func mergeTrajectory(vRemnant geom.Vec) *trajectory.Trajectory {
	return trajectory.New([]trajectory.Record{
		{ID: 1, Time: 0, Mass: 10, X: geom.Vec{1, 0, 0}, V: geom.Vec{0, 1, 0}},
		{ID: 2, Time: 0, Mass: 10, X: geom.Vec{-1, 0, 0}, V: geom.Vec{0, -1, 0}},
		{ID: 1, Time: 10, Mass: 10, X: geom.Vec{0, 1, 0}, V: geom.Vec{1, 1, 0}},
		{ID: 2, Time: 10, Mass: 10, X: geom.Vec{0, -1, 0}, V: geom.Vec{0, -1, 0}},
		{ID: 1, Time: 20, Mass: 20, X: geom.Vec{1, 1, 0}, V: vRemnant},
	})
}

func TestMergeKick(t *testing.T) {
	// Pre-merger CoM velocity at t=10 is {0.5, 0, 0}.
	traj := mergeTrajectory(geom.Vec{0.5, 0, 0.5})
	ev := event.Event{Kind: event.Merge, Time: 15, Old1: 1, Old2: 2}

	a, ok := MergeKick(traj, ev, 20)
	assert.True(t, ok)
	assert.InDelta(t, 0, a.Dir[0], 1e-12)
	assert.InDelta(t, 0, a.Dir[1], 1e-12)
	assert.InDelta(t, 0.5, a.Dir[2], 1e-12)
	assert.Equal(t, geom.Vec{1, 1, 0}, a.Origin)
}

func TestMergeKickZero(t *testing.T) {
	// Remnant velocity equal to the pre-merger CoM velocity: the kick is
	// exactly zero and must be suppressed.
	traj := mergeTrajectory(geom.Vec{0.5, 0, 0})
	ev := event.Event{Kind: event.Merge, Time: 15, Old1: 1, Old2: 2}

	_, ok := MergeKick(traj, ev, 20)
	assert.False(t, ok)
}

func TestMergeKickNoPreStep(t *testing.T) {
	traj := mergeTrajectory(geom.Vec{0.5, 0, 0.5})

	// Event at the first sample: no step strictly before it.
	ev := event.Event{Kind: event.Merge, Time: 0, Old1: 1, Old2: 2}
	_, ok := MergeKick(traj, ev, 20)
	assert.False(t, ok)
}

func TestMergeKickMalformed(t *testing.T) {
	// Both progenitors still live at t=10: no unambiguous remnant.
	traj := mergeTrajectory(geom.Vec{0.5, 0, 0.5})
	ev := event.Event{Kind: event.Merge, Time: 5, Old1: 1, Old2: 2}

	_, ok := MergeKick(traj, ev, 10)
	assert.False(t, ok)
}

func TestMergeSpin(t *testing.T) {
	traj := mergeTrajectory(geom.Vec{0.5, 0, 0.5})
	ev := event.Event{Kind: event.Merge, Time: 15, Old1: 1, Old2: 2}
	params := Params{SpinParameter: 0.25}

	a, ok := MergeSpin(traj, ev, 20, params)
	assert.True(t, ok)

	// Pre-merger relative state at t=10: r_rel = {0,2,0}, v_rel = {1,2,0},
	// so the spin points along r_rel x v_rel = {0,0,-2}.
	n, _ := a.Dir.Normalize()
	assert.InDelta(t, -1, n[2], 1e-12)
	assert.InDelta(t, 0, n[0], 1e-12)
	assert.InDelta(t, 0, n[1], 1e-12)

	// Magnitude scales with the remnant mass squared.
	assert.InDelta(t, 0.25*400, a.Dir.Norm(), 1e-9)
	assert.Equal(t, geom.Vec{1, 1, 0}, a.Origin)
}
