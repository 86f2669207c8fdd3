/*package scene reconciles the set of live visual objects against the
current timestep of a trajectory and the classification of the selected
event. It owns every visual it creates: persistent spheres follow particle
ids across their lifetime, transient orbits and arrows are rebuilt from
scratch every timestep, and every create is matched by a release on all
paths. The rendering backend sits behind the Canvas interface and never
holds visuals across frames on its own.*/
package scene

import (
	"github.com/phil-mansfield/orbvis/geom"
)

// Color is an opaque display color.
type Color struct {
	R, G, B uint8
}

// Canvas is the capability the renderer provides: positioned, scaled,
// colored spheres for particles, polylines for orbits, arrows for derived
// vectors, a movable reference-frame box, and a camera look-at target.
//
// The backend does not garbage-collect its resources; every handle returned
// by a Create call must eventually be passed to Destroy.
type Canvas interface {
	CreateSphere(pos geom.Vec, radius float64, col Color, opacity float64) Handle
	UpdateSphere(h Handle, pos geom.Vec, radius float64, col Color, opacity float64) bool
	CreatePolyline(points []geom.Vec, col Color) Handle
	CreateArrow(from, to geom.Vec, col Color) Handle
	Destroy(h Handle) bool

	// SetFrameOffset repositions the reference-frame box to the negated
	// offset; rendered object positions are shifted by the caller.
	SetFrameOffset(off geom.Vec)
	SetLookTarget(p geom.Vec)
}

// Handle identifies one visual owned by a Canvas. The zero Handle is
// invalid. Handles carry a generation counter so a handle kept after its
// slot was released and recycled is detected as stale instead of silently
// aliasing the new occupant.
type Handle struct {
	index, gen uint32
}

// Valid reports whether h was ever issued by an arena.
func (h Handle) Valid() bool {
	return h.gen != 0
}

type slot struct {
	gen     uint32
	payload interface{}
	live    bool
}

// Arena is a generation-counted slot allocator canvas backends use to mint
// and validate handles.
type Arena struct {
	slots []slot
	free  []uint32
}

func NewArena() *Arena {
	return &Arena{}
}

// Acquire stores a payload and returns its handle.
func (a *Arena) Acquire(payload interface{}) Handle {
	if n := len(a.free); n > 0 {
		i := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[i].payload = payload
		a.slots[i].live = true
		return Handle{index: i, gen: a.slots[i].gen}
	}

	a.slots = append(a.slots, slot{gen: 1, payload: payload, live: true})
	return Handle{index: uint32(len(a.slots) - 1), gen: 1}
}

// Get returns the payload behind a handle, or ok=false for stale or invalid
// handles.
func (a *Arena) Get(h Handle) (interface{}, bool) {
	if !a.owns(h) {
		return nil, false
	}
	return a.slots[h.index].payload, true
}

// Release frees a handle's slot, returning its payload so the caller can
// release backend resources. Releasing a stale or invalid handle is a no-op
// with ok=false.
func (a *Arena) Release(h Handle) (interface{}, bool) {
	if !a.owns(h) {
		return nil, false
	}
	s := &a.slots[h.index]
	payload := s.payload
	s.payload = nil
	s.live = false
	s.gen++
	a.free = append(a.free, h.index)
	return payload, true
}

// Each calls fn with every held payload, in slot order.
func (a *Arena) Each(fn func(payload interface{})) {
	for i := range a.slots {
		if a.slots[i].live {
			fn(a.slots[i].payload)
		}
	}
}

// Live returns the number of held payloads.
func (a *Arena) Live() int {
	return len(a.slots) - len(a.free)
}

func (a *Arena) owns(h Handle) bool {
	return h.Valid() && int(h.index) < len(a.slots) &&
		a.slots[h.index].live && a.slots[h.index].gen == h.gen
}
