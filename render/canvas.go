/*package render draws the scene package's visuals with raylib. It is a
thin presentation wrapper: all reconstruction and classification happens in
the core packages, and the Canvas here only retains the shape records the
scene synchronizer owns through its handles.*/
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/phil-mansfield/orbvis/geom"
	"github.com/phil-mansfield/orbvis/scene"
)

var colFrameBox = rl.NewColor(60, 60, 70, 255)

type sphere struct {
	pos     geom.Vec
	radius  float64
	col     scene.Color
	opacity float64
}

type polyline struct {
	points []geom.Vec
	col    scene.Color
}

type arrow struct {
	from, to geom.Vec
	col      scene.Color
}

// Canvas retains the live shape set between frames and draws it inside the
// caller's 3D mode. Simulation coordinates (pc) are multiplied by a uniform
// world scale before drawing.
type Canvas struct {
	arena      *scene.Arena
	worldScale float64
	boxSize    float64
	offset     geom.Vec
	look       geom.Vec
}

// NewCanvas builds a canvas drawing boxSize-pc reference-frame box edges,
// with worldScale raylib units per pc.
func NewCanvas(worldScale, boxSize float64) *Canvas {
	return &Canvas{
		arena:      scene.NewArena(),
		worldScale: worldScale,
		boxSize:    boxSize,
	}
}

func (c *Canvas) CreateSphere(
	pos geom.Vec, radius float64, col scene.Color, opacity float64,
) scene.Handle {
	return c.arena.Acquire(&sphere{pos, radius, col, opacity})
}

func (c *Canvas) UpdateSphere(
	h scene.Handle, pos geom.Vec, radius float64,
	col scene.Color, opacity float64,
) bool {
	payload, ok := c.arena.Get(h)
	if !ok {
		return false
	}
	*payload.(*sphere) = sphere{pos, radius, col, opacity}
	return true
}

func (c *Canvas) CreatePolyline(points []geom.Vec, col scene.Color) scene.Handle {
	return c.arena.Acquire(&polyline{points, col})
}

func (c *Canvas) CreateArrow(from, to geom.Vec, col scene.Color) scene.Handle {
	return c.arena.Acquire(&arrow{from, to, col})
}

func (c *Canvas) Destroy(h scene.Handle) bool {
	_, ok := c.arena.Release(h)
	return ok
}

func (c *Canvas) SetFrameOffset(off geom.Vec) { c.offset = off }
func (c *Canvas) SetLookTarget(p geom.Vec)    { c.look = p }

// LookTarget returns the camera target in world units.
func (c *Canvas) LookTarget() rl.Vector3 {
	return c.vec(c.look)
}

// Draw renders every live shape. Must be called between BeginMode3D and
// EndMode3D.
func (c *Canvas) Draw() {
	c.drawFrameBox()

	c.arena.Each(func(payload interface{}) {
		switch obj := payload.(type) {
		case *sphere:
			rl.DrawSphereEx(
				c.vec(obj.pos), float32(obj.radius*c.worldScale),
				8, 12, c.color(obj.col, obj.opacity),
			)
		case *polyline:
			col := c.color(obj.col, 1)
			for i := 1; i < len(obj.points); i++ {
				rl.DrawLine3D(
					c.vec(obj.points[i-1]), c.vec(obj.points[i]), col,
				)
			}
		case *arrow:
			col := c.color(obj.col, 1)
			from, to := c.vec(obj.from), c.vec(obj.to)
			rl.DrawLine3D(from, to, col)
			// Head marker; cheap stand-in for a cone.
			head := rl.Vector3Length(rl.Vector3Subtract(to, from)) * 0.04
			rl.DrawSphere(to, head, col)
		}
	})
}

// drawFrameBox draws the reference-frame box repositioned to the negated
// CoM offset, so the frame itself shows the shift.
func (c *Canvas) drawFrameBox() {
	center := c.vec(geom.Vec{}.Sub(c.offset))
	size := float32(c.boxSize * c.worldScale)
	rl.DrawCubeWires(center, size, size, size, colFrameBox)
}

func (c *Canvas) vec(v geom.Vec) rl.Vector3 {
	return rl.NewVector3(
		float32(v[0]*c.worldScale),
		float32(v[1]*c.worldScale),
		float32(v[2]*c.worldScale),
	)
}

func (c *Canvas) color(col scene.Color, opacity float64) rl.Color {
	return rl.NewColor(col.R, col.G, col.B, uint8(opacity*255))
}
