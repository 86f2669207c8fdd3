/*package geom contains double-precision vector routines used for orbital
reconstruction and kinematic displays.*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// Add returns the component-wise sum of v and u.
func (v Vec) Add(u Vec) Vec {
	return Vec{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns the component-wise difference of v and u.
func (v Vec) Sub(u Vec) Vec {
	return Vec{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Scale returns v multiplied by the scalar s.
func (v Vec) Scale(s float64) Vec {
	return Vec{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the inner product of v and u.
func (v Vec) Dot(u Vec) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Cross returns the cross product of v and u.
func (v Vec) Cross(u Vec) Vec {
	return Vec{
		v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0],
	}
}

// NormSq returns the squared length of v.
func (v Vec) NormSq() float64 {
	return v.Dot(v)
}

// Norm returns the length of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v.NormSq())
}

// Normalize returns the unit vector pointing along v. ok is false if v has
// zero or non-finite length, in which case the zero vector is returned.
func (v Vec) Normalize() (u Vec, ok bool) {
	n := v.Norm()
	if n == 0 || math.IsInf(n, 0) || math.IsNaN(n) {
		return Vec{}, false
	}
	return v.Scale(1 / n), true
}

// IsFinite returns true if every component of v is finite.
func (v Vec) IsFinite() bool {
	for i := 0; i < 3; i++ {
		if math.IsInf(v[i], 0) || math.IsNaN(v[i]) {
			return false
		}
	}
	return true
}

// SignedAngle returns the angle from u to v measured in the plane whose unit
// normal is n. The sign follows the right-hand rule around n, so the result
// is in (-pi, pi].
func SignedAngle(u, v, n Vec) float64 {
	return math.Atan2(u.Cross(v).Dot(n), u.Dot(v))
}

// PlaneBasis returns a unit vector lying in the plane with unit normal n. The
// axis is the projection of x-hat onto the plane, or y-hat's projection when
// n is too close to x-hat for that to be stable. It is the in-plane reference
// axis used when orienting ellipses, and is deterministic for a fixed n.
func PlaneBasis(n Vec) Vec {
	ref := Vec{1, 0, 0}
	if math.Abs(n[0]) > 0.9 {
		ref = Vec{0, 1, 0}
	}
	inPlane := ref.Sub(n.Scale(ref.Dot(n)))
	u, _ := inPlane.Normalize()
	return u
}
