/*package orbit reconstructs two-body Keplerian orbit geometry from the
instantaneous state vectors of a particle pair. The reconstruction is purely
analytic and exists only for display: nothing here integrates equations of
motion.

The reduction follows the classical two-body treatment. The pair's relative
state gives specific orbital energy and the eccentricity vector; bound pairs
yield a closed ellipse which is then split into the two similar per-body
ellipses around the barycenter.*/
package orbit

import (
	"math"

	"github.com/phil-mansfield/orbvis/geom"
	"github.com/phil-mansfield/orbvis/trajectory"
)

// G is the gravitational constant in pc^3 Msun^-1 Myr^-2.
const G = 4.4985e-3

// Geometry describes the closed orbit of a bound pair at one sampled time.
// It is recomputed every timestep and never persisted.
type Geometry struct {
	// A, E, and B are the semi-major axis, eccentricity, and semi-minor
	// axis of the relative orbit, with B = A*sqrt(1 - E^2).
	A, E, B float64

	// Normal is the unit orbital-plane normal, along the relative angular
	// momentum.
	Normal geom.Vec

	// Periapsis is the unit vector from the focus towards periapsis. For a
	// circular orbit it falls back to the in-plane reference axis.
	Periapsis geom.Vec

	// ArgPeriapsis is the signed angle from the in-plane reference axis to
	// Periapsis, measured around Normal.
	ArgPeriapsis float64

	// Center is the center of mass of the pair, the common focus of the two
	// per-body ellipses.
	Center geom.Vec

	// M1 and M2 are the two masses, in the order the records were given.
	M1, M2 float64
}

// Reconstruct derives the orbit geometry of two particles from their state
// at a shared sampled time. ok is false when the pair is unbound, marginally
// bound, coincident, or numerically degenerate; no geometry is drawn then.
func Reconstruct(p1, p2 trajectory.Record) (g *Geometry, ok bool) {
	r := p1.X.Sub(p2.X)
	v := p1.V.Sub(p2.V)
	m := p1.Mass + p2.Mass
	mu := G * m

	rNorm := r.Norm()
	if rNorm == 0 {
		return nil, false
	}

	// Specific orbital energy. Non-negative energy means the pair is not on
	// a closed orbit.
	eps := 0.5*v.NormSq() - mu/rNorm
	if eps >= 0 {
		return nil, false
	}

	a := -mu / (2 * eps)

	h := r.Cross(v)
	eVec := v.Cross(h).Scale(1 / mu).Sub(r.Scale(1 / rNorm))
	e := eVec.Norm()
	// eps < 0 nominally implies e < 1, but guard against roundoff anyway.
	if e >= 1 {
		return nil, false
	}

	b := a * math.Sqrt(1-e*e)
	if !isFinite(a) || !isFinite(b) {
		return nil, false
	}

	normal, ok := h.Normalize()
	if !ok {
		return nil, false
	}

	ref := geom.PlaneBasis(normal)
	periapsis, ok := eVec.Normalize()
	if !ok {
		// Circular orbit: periapsis is undefined, any in-plane direction
		// gives the same ellipse.
		periapsis = ref
	}

	g = &Geometry{
		A:            a,
		E:            e,
		B:            b,
		Normal:       normal,
		Periapsis:    periapsis,
		ArgPeriapsis: geom.SignedAngle(ref, periapsis, normal),
		Center:       CenterOfMass(p1, p2),
		M1:           p1.Mass,
		M2:           p2.Mass,
	}
	return g, true
}

// CenterOfMass returns the mass-weighted mean position of a pair.
func CenterOfMass(p1, p2 trajectory.Record) geom.Vec {
	m := p1.Mass + p2.Mass
	return p1.X.Scale(p1.Mass / m).Add(p2.X.Scale(p2.Mass / m))
}

// BodyPaths samples the orbits of the two bodies as closed n-point
// polylines. Each body traces an ellipse similar to the relative orbit,
// scaled by the opposite body's mass fraction, with the center of mass at a
// focus; the two ellipses point 180 degrees apart. path1 belongs to the
// first record passed to Reconstruct, path2 to the second.
func (g *Geometry) BodyPaths(n int) (path1, path2 []geom.Vec) {
	if n < 3 {
		n = 3
	}

	p := g.Periapsis
	q := g.Normal.Cross(p)
	m := g.M1 + g.M2
	s1, s2 := g.M2/m, g.M1/m

	path1 = make([]geom.Vec, n+1)
	path2 = make([]geom.Vec, n+1)
	for i := 0; i <= n; i++ {
		th := 2 * math.Pi * float64(i) / float64(n)
		// Point on the relative ellipse, focus at the origin.
		rel := p.Scale(g.A*math.Cos(th) - g.A*g.E).
			Add(q.Scale(g.B * math.Sin(th)))
		path1[i] = g.Center.Add(rel.Scale(s1))
		path2[i] = g.Center.Sub(rel.Scale(s2))
	}
	return path1, path2
}

// Foci returns the two focus points of the relative orbit's ellipse,
// translated so the occupied focus sits at the center of mass.
func (g *Geometry) Foci() (f1, f2 geom.Vec) {
	f1 = g.Center
	f2 = g.Center.Sub(g.Periapsis.Scale(2 * g.A * g.E))
	return f1, f2
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
