package scene

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/orbvis/event"
	"github.com/phil-mansfield/orbvis/geom"
	"github.com/phil-mansfield/orbvis/orbit"
	"github.com/phil-mansfield/orbvis/trajectory"
)

// fakeCanvas records every visual behind a real Arena so tests can check
// lifetime discipline and rendered state.
type fakeCanvas struct {
	arena   *Arena
	offset  geom.Vec
	look    geom.Vec
	lookSet bool
}

type fakeSphere struct {
	pos     geom.Vec
	radius  float64
	col     Color
	opacity float64
}

type fakeShape struct {
	kind     string
	from, to geom.Vec
	points   []geom.Vec
	col      Color
}

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{arena: NewArena()}
}

func (c *fakeCanvas) CreateSphere(
	pos geom.Vec, radius float64, col Color, opacity float64,
) Handle {
	return c.arena.Acquire(&fakeSphere{pos, radius, col, opacity})
}

func (c *fakeCanvas) UpdateSphere(
	h Handle, pos geom.Vec, radius float64, col Color, opacity float64,
) bool {
	payload, ok := c.arena.Get(h)
	if !ok {
		return false
	}
	*payload.(*fakeSphere) = fakeSphere{pos, radius, col, opacity}
	return true
}

func (c *fakeCanvas) CreatePolyline(points []geom.Vec, col Color) Handle {
	return c.arena.Acquire(&fakeShape{kind: "polyline", points: points, col: col})
}

func (c *fakeCanvas) CreateArrow(from, to geom.Vec, col Color) Handle {
	return c.arena.Acquire(&fakeShape{kind: "arrow", from: from, to: to, col: col})
}

func (c *fakeCanvas) Destroy(h Handle) bool {
	_, ok := c.arena.Release(h)
	return ok
}

func (c *fakeCanvas) SetFrameOffset(off geom.Vec) { c.offset = off }
func (c *fakeCanvas) SetLookTarget(p geom.Vec)    { c.look = p; c.lookSet = true }

// snapshot returns a canonical description of every live visual.
func (c *fakeCanvas) snapshot() []string {
	var out []string
	for i := range c.arena.slots {
		s := &c.arena.slots[i]
		if !s.live {
			continue
		}
		switch obj := s.payload.(type) {
		case *fakeSphere:
			out = append(out, fmt.Sprintf("sphere %v r=%.6g c=%v o=%.3g",
				obj.pos, obj.radius, obj.col, obj.opacity))
		case *fakeShape:
			out = append(out, fmt.Sprintf("%s n=%d %v %v c=%v",
				obj.kind, len(obj.points), obj.from, obj.to, obj.col))
		}
	}
	sort.Strings(out)
	return out
}

func (c *fakeCanvas) spheres() []*fakeSphere {
	var out []*fakeSphere
	for i := range c.arena.slots {
		if c.arena.slots[i].live {
			if s, ok := c.arena.slots[i].payload.(*fakeSphere); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func (c *fakeCanvas) countKind(kind string) int {
	n := 0
	for i := range c.arena.slots {
		if c.arena.slots[i].live {
			if s, ok := c.arena.slots[i].payload.(*fakeShape); ok && s.kind == kind {
				n++
			}
		}
	}
	return n
}

// boundPair returns records of a bound circular pair at the given time.
func boundPair(t float64) []trajectory.Record {
	sep := 0.01
	vRel := math.Sqrt(orbit.G * 20 / sep)
	return []trajectory.Record{
		{ID: 1, Time: t, Mass: 10,
			X: geom.Vec{sep / 2, 0, 0}, V: geom.Vec{0, vRel / 2, 0}},
		{ID: 2, Time: t, Mass: 10,
			X: geom.Vec{-sep / 2, 0, 0}, V: geom.Vec{0, -vRel / 2, 0}},
	}
}

func testTrajectory() *trajectory.Trajectory {
	recs := append(boundPair(0), trajectory.Record{
		ID: 3, Time: 0, Mass: 5, Kind: trajectory.NeutronStar,
		X: geom.Vec{2, 0, 0}, V: geom.Vec{1, 0, 0},
	})
	recs = append(recs, boundPair(10)...)
	recs = append(recs, boundPair(20)[0]) // id 2 vanishes at t=20
	return trajectory.New(recs)
}

func TestSphereLifecycle(t *testing.T) {
	canvas := newFakeCanvas()
	v := New(testTrajectory(), canvas, DefaultConfig())

	assert.Len(t, canvas.spheres(), 3, "three particles at t=0")

	v.SetTimeIndex(1)
	assert.Len(t, canvas.spheres(), 2, "id 3 vanished at t=10")

	v.SetTimeIndex(2)
	assert.Len(t, canvas.spheres(), 1, "id 2 vanished at t=20")

	v.SetTimeIndex(0)
	assert.Len(t, canvas.spheres(), 3, "all ids reappear when scrubbing back")

	v.Close()
	assert.Equal(t, 0, canvas.arena.Live(), "Close must release every visual")
}

func TestSetTimeIndexIdempotent(t *testing.T) {
	canvas := newFakeCanvas()
	v := New(testTrajectory(), canvas, DefaultConfig())
	ev := &event.Event{Kind: event.Merge, Time: 15, Old1: 1, Old2: 2}
	v.SelectEvent(ev)

	v.SetTimeIndex(1)
	once := canvas.snapshot()
	live := canvas.arena.Live()

	v.SetTimeIndex(1)
	assert.Equal(t, once, canvas.snapshot())
	assert.Equal(t, live, canvas.arena.Live(), "repeat sync must not leak")
}

func TestTransientsRebuiltNotLeaked(t *testing.T) {
	canvas := newFakeCanvas()
	v := New(testTrajectory(), canvas, DefaultConfig())

	ev := &event.Event{Kind: event.Merge, Time: 15, Old1: 1, Old2: 2}
	v.SelectEvent(ev)
	assert.Equal(t, 2, canvas.countKind("polyline"), "two barycentric ellipses")

	v.SetTimeIndex(1)
	before := canvas.arena.Live()
	for i := 0; i < 10; i++ {
		v.SetTimeIndex(1)
	}
	assert.Equal(t, before, canvas.arena.Live())

	v.SelectEvent(nil)
	assert.Equal(t, 0, canvas.countKind("polyline"))
	assert.Equal(t, 0, canvas.countKind("arrow"))
}

func TestRoleColoring(t *testing.T) {
	canvas := newFakeCanvas()
	v := New(testTrajectory(), canvas, DefaultConfig())

	v.SelectEvent(&event.Event{Kind: event.Merge, Time: 15, Old1: 1, Old2: 2})

	counts := map[Color]int{}
	for _, s := range canvas.spheres() {
		counts[s.col]++
		if s.col == colBinary {
			assert.Equal(t, fullOpacity, s.opacity)
		} else {
			assert.Equal(t, dimOpacity, s.opacity, "non-actors dim, not hidden")
		}
	}
	assert.Equal(t, 2, counts[colBinary])
	assert.Equal(t, 1, counts[colNeutron])
}

func TestMergePostRemnant(t *testing.T) {
	canvas := newFakeCanvas()
	v := New(testTrajectory(), canvas, DefaultConfig())

	v.SelectEvent(&event.Event{Kind: event.Merge, Time: 15, Old1: 1, Old2: 2})
	v.SetTimeIndex(2)

	spheres := canvas.spheres()
	assert.Len(t, spheres, 1)
	assert.Equal(t, colRemnant, spheres[0].col)
	assert.Equal(t, 0, canvas.countKind("polyline"), "no orbit after the merger")
}

func TestEventOutsideRangeNotSelectable(t *testing.T) {
	canvas := newFakeCanvas()
	v := New(testTrajectory(), canvas, DefaultConfig())

	v.SelectEvent(&event.Event{Kind: event.Merge, Time: 99, Old1: 1, Old2: 2})
	assert.Nil(t, v.Selected())
}

func TestComFrameToggleRestoresPositions(t *testing.T) {
	canvas := newFakeCanvas()
	v := New(testTrajectory(), canvas, DefaultConfig())
	raw := canvas.snapshot()

	v.SetComFrameEnabled(true)
	assert.NotEqual(t, geom.Vec{}, canvas.offset,
		"asymmetric particle set must have a nonzero CoM offset")
	assert.NotEqual(t, raw, canvas.snapshot())

	v.SetComFrameEnabled(false)
	assert.Equal(t, geom.Vec{}, canvas.offset)
	assert.Equal(t, raw, canvas.snapshot(),
		"disabling the CoM frame must restore simulation-frame positions")
}

func TestMassFilterAndHighlight(t *testing.T) {
	canvas := newFakeCanvas()
	v := New(testTrajectory(), canvas, DefaultConfig())

	min, max := 4.0, 6.0
	v.SetMassFilter(&min, &max)
	n := 0
	for _, s := range canvas.spheres() {
		if s.col == colMassMatch {
			n++
		}
	}
	assert.Equal(t, 1, n, "only id 3 has mass in [4, 6]")

	id := int64(3)
	v.SetHighlightedID(&id)
	n = 0
	for _, s := range canvas.spheres() {
		if s.col == colHighlight {
			n++
		}
	}
	assert.Equal(t, 1, n, "highlight overrides the mass filter")

	// Filters are inert while an event is selected.
	v.SelectEvent(&event.Event{Kind: event.Merge, Time: 15, Old1: 1, Old2: 2})
	for _, s := range canvas.spheres() {
		assert.NotEqual(t, colHighlight, s.col)
		assert.NotEqual(t, colMassMatch, s.col)
	}
}

func TestCameraTracking(t *testing.T) {
	canvas := newFakeCanvas()
	cfg := DefaultConfig()
	cfg.CameraBlend = 1 // no easing, the target lands immediately
	v := New(testTrajectory(), canvas, cfg)

	id := int64(3)
	v.SetHighlightedID(&id)
	assert.True(t, canvas.lookSet)
	assert.InDelta(t, 2, canvas.look[0], 1e-12,
		"camera must land on the highlighted particle")

	v.SetHighlightedID(nil)
	assert.InDelta(t, 0, canvas.look[0], 1e-12,
		"camera falls back to the origin")

	canvas.lookSet = false
	v.SetImmersive(true)
	v.SetTimeIndex(0)
	assert.False(t, canvas.lookSet,
		"auto-tracking is suspended in immersive mode")
}
