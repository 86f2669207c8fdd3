/*package kinematics derives the auxiliary display vectors of a selected
event: center-of-mass motion, pseudo-spin directions, and the merger recoil
("kick") velocity.

The spin vectors are a visualization proxy, not simulated physics: both
members of a pair share the direction of their relative orbital angular
momentum, scaled by a fixed spin parameter and their own mass squared. The
spin parameter and the overall arrow scales are presentation constants, not
quantities to validate against the simulation.*/
package kinematics

import (
	"github.com/phil-mansfield/orbvis/event"
	"github.com/phil-mansfield/orbvis/geom"
	"github.com/phil-mansfield/orbvis/trajectory"
)

// Params are the presentation constants of the derived vectors.
type Params struct {
	// SpinParameter is the fixed dimensionless spin in [0, 1] attributed to
	// every body.
	SpinParameter float64
}

// Arrow is a derived vector anchored at a point, in simulation units. The
// view applies its own display scaling before drawing.
type Arrow struct {
	Origin, Dir geom.Vec
}

// valid rejects arrows with non-finite components or (near) zero length, so
// degenerate renders are suppressed instead of drawn.
func (a Arrow) valid() bool {
	const minLen = 1e-12
	return a.Origin.IsFinite() && a.Dir.IsFinite() && a.Dir.Norm() > minLen
}

// PairCoM returns the mass-weighted mean position and velocity of a pair.
// The result does not depend on the order of the two records.
func PairCoM(p1, p2 trajectory.Record) (pos, vel geom.Vec) {
	m := p1.Mass + p2.Mass
	pos = p1.X.Scale(p1.Mass / m).Add(p2.X.Scale(p2.Mass / m))
	vel = p1.V.Scale(p1.Mass / m).Add(p2.V.Scale(p2.Mass / m))
	return pos, vel
}

// CoMVelocity returns the pair's center-of-mass velocity as an arrow rooted
// at the center of mass. ok is false when the arrow is degenerate.
func CoMVelocity(p1, p2 trajectory.Record) (Arrow, bool) {
	pos, vel := PairCoM(p1, p2)
	a := Arrow{Origin: pos, Dir: vel}
	return a, a.valid()
}

// SpinArrows returns a pseudo-spin arrow for each body of a pre-merger
// pair. Both arrows point along the unit relative orbital angular momentum;
// each is scaled by the spin parameter and that body's mass squared. ok is
// false when the relative motion has no well-defined angular momentum.
func SpinArrows(p1, p2 trajectory.Record, p Params) ([2]Arrow, bool) {
	rRel := p1.X.Sub(p2.X)
	vRel := p1.V.Sub(p2.V)
	dir, ok := rRel.Cross(vRel).Normalize()
	if !ok {
		return [2]Arrow{}, false
	}

	a1 := Arrow{Origin: p1.X, Dir: dir.Scale(p.SpinParameter * p1.Mass * p1.Mass)}
	a2 := Arrow{Origin: p2.X, Dir: dir.Scale(p.SpinParameter * p2.Mass * p2.Mass)}
	if !a1.valid() || !a2.valid() {
		return [2]Arrow{}, false
	}
	return [2]Arrow{a1, a2}, true
}

// MergeKick returns the remnant's recoil velocity at playback time t: its
// current velocity minus the progenitor pair's center-of-mass velocity at
// the last sampled time strictly before the merger. ok is false when the
// event precedes the first sample, when either progenitor is missing from
// the pre-merger step, when no unambiguous remnant is live at t, or when
// the arrow is degenerate.
func MergeKick(traj *trajectory.Trajectory, ev event.Event, t float64) (Arrow, bool) {
	_, p1, p2, ok := preMergeState(traj, ev)
	if !ok {
		return Arrow{}, false
	}

	id, ok := event.RemnantOf(ev, traj.LiveIDs(t))
	if !ok {
		return Arrow{}, false
	}
	rem, ok := traj.Find(id, t)
	if !ok {
		return Arrow{}, false
	}

	_, vCom := PairCoM(p1, p2)
	a := Arrow{Origin: rem.X, Dir: rem.V.Sub(vCom)}
	return a, a.valid()
}

// MergeSpin returns the remnant's pseudo-spin at playback time t: the
// direction of the progenitors' pre-merger relative angular momentum, scaled
// by the spin parameter and the remnant's mass squared.
func MergeSpin(traj *trajectory.Trajectory, ev event.Event, t float64, p Params) (Arrow, bool) {
	_, p1, p2, ok := preMergeState(traj, ev)
	if !ok {
		return Arrow{}, false
	}

	id, ok := event.RemnantOf(ev, traj.LiveIDs(t))
	if !ok {
		return Arrow{}, false
	}
	rem, ok := traj.Find(id, t)
	if !ok {
		return Arrow{}, false
	}

	dir, ok := p1.X.Sub(p2.X).Cross(p1.V.Sub(p2.V)).Normalize()
	if !ok {
		return Arrow{}, false
	}
	a := Arrow{Origin: rem.X, Dir: dir.Scale(p.SpinParameter * rem.Mass * rem.Mass)}
	return a, a.valid()
}

// preMergeState finds the last sampled time strictly before the merger and
// both progenitors' records there.
func preMergeState(
	traj *trajectory.Trajectory, ev event.Event,
) (t float64, p1, p2 trajectory.Record, ok bool) {
	if ev.Kind != event.Merge {
		return 0, p1, p2, false
	}
	t, ok = traj.LastTimeBefore(ev.Time)
	if !ok {
		return 0, p1, p2, false
	}
	p1, ok = traj.Find(ev.Old1, t)
	if !ok {
		return 0, p1, p2, false
	}
	p2, ok = traj.Find(ev.Old2, t)
	if !ok {
		return 0, p1, p2, false
	}
	return t, p1, p2, true
}
