package scene

import (
	"math"

	"github.com/phil-mansfield/orbvis/event"
	"github.com/phil-mansfield/orbvis/geom"
	"github.com/phil-mansfield/orbvis/kinematics"
	"github.com/phil-mansfield/orbvis/orbit"
	"github.com/phil-mansfield/orbvis/trajectory"
)

// Role and filter colors.
var (
	colBlackHole = Color{220, 220, 220}
	colNeutron   = Color{120, 160, 255}
	colBinary    = Color{250, 200, 60}
	colInterlope = Color{80, 230, 120}
	colEjected   = Color{240, 90, 70}
	colRemnant   = Color{230, 110, 240}
	colHighlight = Color{90, 255, 90}
	colMassMatch = Color{255, 160, 40}
	colOrbitPre  = Color{200, 200, 200}
	colOrbitPost = Color{90, 210, 230}
	colVelocity  = Color{250, 250, 120}
	colSpin      = Color{150, 120, 255}
	colKick      = Color{255, 80, 160}
)

const (
	dimOpacity  = 0.15
	fullOpacity = 1.0

	// Base sphere radius in pc for a 1 Msun particle; radii grow with the
	// cube root of the mass.
	baseRadius = 0.01
)

// Config holds the presentation parameters of a View.
type Config struct {
	ParticleSizeScale   float64
	VelocityVectorScale float64
	SpinVectorScale     float64

	// SpinParameter is the fixed dimensionless spin in [0, 1].
	SpinParameter float64

	// EllipsePoints is the sample count of each rendered orbit.
	EllipsePoints int

	// CameraBlend is the per-frame exponential smoothing factor of the
	// look-at target, in (0, 1].
	CameraBlend float64

	// MinArrowLength suppresses arrows shorter than this after display
	// scaling, in pc.
	MinArrowLength float64

	ComFrame bool
}

// DefaultConfig returns the presentation parameters used when a config file
// leaves them unset.
func DefaultConfig() Config {
	return Config{
		ParticleSizeScale:   1,
		VelocityVectorScale: 1,
		SpinVectorScale:     1,
		SpinParameter:       0.7,
		EllipsePoints:       128,
		CameraBlend:         0.08,
		MinArrowLength:      1e-4,
	}
}

// View is the session state of one visualization: the time cursor, the
// selected event, the display filters, and every live visual. All mutation
// happens synchronously inside the single frame-driven update cycle, so a
// View needs no locking.
type View struct {
	traj   *trajectory.Trajectory
	canvas Canvas
	cfg    Config

	timeIndex int
	selected  *event.Event
	highlight *int64
	massMin   *float64
	massMax   *float64
	comFrame  bool
	immersive bool

	spheres    map[int64]Handle
	transients []Handle
	lookTarget geom.Vec
}

// New builds a View over a loaded trajectory and synchronizes the canvas to
// the first timestep.
func New(traj *trajectory.Trajectory, canvas Canvas, cfg Config) *View {
	v := &View{
		traj:     traj,
		canvas:   canvas,
		cfg:      cfg,
		comFrame: cfg.ComFrame,
		spheres:  make(map[int64]Handle),
	}
	v.sync()
	return v
}

// TimeIndex returns the current position of the time cursor.
func (v *View) TimeIndex() int {
	return v.timeIndex
}

// TimeStepCount returns the number of sampled epochs.
func (v *View) TimeStepCount() int {
	return len(v.traj.SortedTimes())
}

// CurrentTime returns the sampled time under the cursor.
func (v *View) CurrentTime() float64 {
	times := v.traj.SortedTimes()
	if len(times) == 0 {
		return 0
	}
	return times[v.timeIndex]
}

// Selected returns the selected event, or nil.
func (v *View) Selected() *event.Event {
	return v.selected
}

// SetTimeIndex moves the time cursor to the given sampled epoch, clamped to
// the valid range, and resynchronizes the scene.
func (v *View) SetTimeIndex(i int) {
	if n := v.TimeStepCount(); n == 0 {
		return
	} else if i < 0 {
		i = 0
	} else if i >= n {
		i = n - 1
	}
	v.timeIndex = i
	v.sync()
}

// SelectEvent selects an event, or clears the selection when ev is nil.
// Events whose time falls outside the sampled range are not selectable and
// leave the selection cleared. Selection never carries state over: the
// previous event's derived visuals are discarded on the next sync.
func (v *View) SelectEvent(ev *event.Event) {
	if ev != nil && !v.traj.Contains(ev.Time) {
		ev = nil
	}
	v.selected = ev
	v.sync()
}

// SetHighlightedID highlights a single particle, or clears the highlight
// when id is nil. The highlight only shows while no event is selected.
func (v *View) SetHighlightedID(id *int64) {
	v.highlight = id
	v.sync()
}

// SetMassFilter colors particles whose mass falls inside [min, max]. A nil
// bound is open. The filter only shows while no event is selected.
func (v *View) SetMassFilter(min, max *float64) {
	v.massMin, v.massMax = min, max
	v.sync()
}

// SetComFrameEnabled toggles the center-of-mass reference frame.
func (v *View) SetComFrameEnabled(on bool) {
	v.comFrame = on
	v.sync()
}

// ComFrameEnabled reports whether the center-of-mass frame is active.
func (v *View) ComFrameEnabled() bool {
	return v.comFrame
}

// SetParticleSizeScale rescales every particle sphere.
func (v *View) SetParticleSizeScale(f float64) {
	v.cfg.ParticleSizeScale = f
	v.sync()
}

// SetVelocityVectorScale rescales the velocity and kick arrows.
func (v *View) SetVelocityVectorScale(f float64) {
	v.cfg.VelocityVectorScale = f
	v.sync()
}

// SetSpinVectorScale rescales the pseudo-spin arrows.
func (v *View) SetSpinVectorScale(f float64) {
	v.cfg.SpinVectorScale = f
	v.sync()
}

// SetImmersive marks an immersive head-tracked display as active, which
// suspends camera auto-tracking; head position already steers the view.
func (v *View) SetImmersive(on bool) {
	v.immersive = on
}

// Close releases every live visual. The View must not be used afterwards.
func (v *View) Close() {
	v.destroyTransients()
	for id, h := range v.spheres {
		v.canvas.Destroy(h)
		delete(v.spheres, id)
	}
}

// sync is the complete synchronous recomputation of the scene for the
// current cursor, selection, and filters.
func (v *View) sync() {
	times := v.traj.SortedTimes()
	if len(times) == 0 {
		return
	}
	t := times[v.timeIndex]
	recs := v.traj.RecordsAt(t)

	off := v.frameOffset(recs)
	v.canvas.SetFrameOffset(off)

	// Transients are never diffed, only rebuilt.
	v.destroyTransients()

	var rm *event.RoleMap
	if v.selected != nil {
		m := event.Classify(*v.selected, t, v.traj.LiveIDs(t))
		rm = &m
	}

	v.reconcileSpheres(recs, rm, off)
	if rm != nil {
		v.drawEventVisuals(t, rm, off)
	}
	v.updateCamera(t, rm, off)
}

// frameOffset returns the mass-weighted mean position of every live
// particle when CoM-frame mode is on, and the zero vector otherwise.
func (v *View) frameOffset(recs []trajectory.Record) geom.Vec {
	if !v.comFrame || len(recs) == 0 {
		return geom.Vec{}
	}
	var sum geom.Vec
	var m float64
	for _, rec := range recs {
		sum = sum.Add(rec.X.Scale(rec.Mass))
		m += rec.Mass
	}
	if m == 0 {
		return geom.Vec{}
	}
	return sum.Scale(1 / m)
}

// reconcileSpheres creates a sphere for every id that newly appeared,
// updates the spheres of ids that persist, and destroys the spheres of ids
// that vanished from this timestep.
func (v *View) reconcileSpheres(
	recs []trajectory.Record, rm *event.RoleMap, off geom.Vec,
) {
	seen := make(map[int64]bool, len(recs))
	for _, rec := range recs {
		seen[rec.ID] = true
		col, opacity := v.style(rec, rm)
		radius := baseRadius * math.Cbrt(rec.Mass) * v.cfg.ParticleSizeScale
		pos := rec.X.Sub(off)

		if h, ok := v.spheres[rec.ID]; ok {
			v.canvas.UpdateSphere(h, pos, radius, col, opacity)
		} else {
			v.spheres[rec.ID] = v.canvas.CreateSphere(pos, radius, col, opacity)
		}
	}

	for id, h := range v.spheres {
		if !seen[id] {
			v.canvas.Destroy(h)
			delete(v.spheres, id)
		}
	}
}

// style maps a particle to its color and opacity. With an event selected,
// roles decide: actors get highlight colors at full opacity and everything
// else dims to keep spatial context without hiding. Without a selection the
// highlight id and the mass filter apply.
func (v *View) style(rec trajectory.Record, rm *event.RoleMap) (Color, float64) {
	if rm != nil {
		switch rm.RoleOf(rec.ID) {
		case event.BinaryMember:
			return colBinary, fullOpacity
		case event.Interloper:
			return colInterlope, fullOpacity
		case event.Ejected:
			return colEjected, fullOpacity
		case event.Remnant:
			return colRemnant, fullOpacity
		}
		return v.kindColor(rec), dimOpacity
	}

	if v.highlight != nil && *v.highlight == rec.ID {
		return colHighlight, fullOpacity
	}
	if v.massMatches(rec.Mass) {
		return colMassMatch, fullOpacity
	}
	return v.kindColor(rec), fullOpacity
}

func (v *View) kindColor(rec trajectory.Record) Color {
	if rec.Kind == trajectory.NeutronStar {
		return colNeutron
	}
	return colBlackHole
}

func (v *View) massMatches(m float64) bool {
	if v.massMin == nil && v.massMax == nil {
		return false
	}
	if v.massMin != nil && m < *v.massMin {
		return false
	}
	if v.massMax != nil && m > *v.massMax {
		return false
	}
	return true
}

// drawEventVisuals rebuilds the per-frame orbit ellipses and derived-vector
// arrows of the selected event.
func (v *View) drawEventVisuals(t float64, rm *event.RoleMap, off geom.Vec) {
	ev := *v.selected

	if rm.HasPair {
		p1, ok1 := v.traj.Find(rm.Pair[0], t)
		p2, ok2 := v.traj.Find(rm.Pair[1], t)
		if ok1 && ok2 {
			v.drawPair(p1, p2, rm.Phase, off)
			if ev.Kind == event.Merge && rm.Phase == event.Pre {
				v.drawSpinArrows(p1, p2, off)
			}
		}
	}

	if ev.Kind == event.Merge && rm.Phase == event.Post {
		params := kinematics.Params{SpinParameter: v.cfg.SpinParameter}
		if a, ok := kinematics.MergeKick(v.traj, ev, t); ok {
			v.drawArrow(a, v.cfg.VelocityVectorScale, colKick, off)
		}
		if a, ok := kinematics.MergeSpin(v.traj, ev, t, params); ok {
			v.drawArrow(a, v.cfg.SpinVectorScale, colSpin, off)
		}
	}
}

// drawPair rebuilds the two barycentric orbit ellipses of a bound pair and
// its center-of-mass velocity arrow. Unbound and degenerate pairs draw
// nothing.
func (v *View) drawPair(
	p1, p2 trajectory.Record, phase event.Phase, off geom.Vec,
) {
	col := colOrbitPre
	if phase == event.Post {
		col = colOrbitPost
	}

	if g, ok := orbit.Reconstruct(p1, p2); ok {
		path1, path2 := g.BodyPaths(v.cfg.EllipsePoints)
		v.transients = append(v.transients,
			v.canvas.CreatePolyline(shift(path1, off), col),
			v.canvas.CreatePolyline(shift(path2, off), col),
		)
	}

	if a, ok := kinematics.CoMVelocity(p1, p2); ok {
		v.drawArrow(a, v.cfg.VelocityVectorScale, colVelocity, off)
	}
}

func (v *View) drawSpinArrows(p1, p2 trajectory.Record, off geom.Vec) {
	params := kinematics.Params{SpinParameter: v.cfg.SpinParameter}
	arrows, ok := kinematics.SpinArrows(p1, p2, params)
	if !ok {
		return
	}
	for _, a := range arrows {
		v.drawArrow(a, v.cfg.SpinVectorScale, colSpin, off)
	}
}

// drawArrow draws a derived vector after display scaling, suppressing
// arrows that end up too short or non-finite to render meaningfully.
func (v *View) drawArrow(a kinematics.Arrow, scale float64, col Color, off geom.Vec) {
	dir := a.Dir.Scale(scale)
	if !dir.IsFinite() || dir.Norm() < v.cfg.MinArrowLength {
		return
	}
	from := a.Origin.Sub(off)
	v.transients = append(v.transients,
		v.canvas.CreateArrow(from, from.Add(dir), col))
}

func (v *View) destroyTransients() {
	for _, h := range v.transients {
		v.canvas.Destroy(h)
	}
	v.transients = v.transients[:0]
}

// updateCamera eases the look-at target toward the highlighted particle,
// else toward the mean position of the selected event's in-bounds actors,
// else toward the origin. Auto-tracking is suspended while an immersive
// display drives the viewpoint.
func (v *View) updateCamera(t float64, rm *event.RoleMap, off geom.Vec) {
	if v.immersive {
		return
	}

	target := geom.Vec{}
	switch {
	case v.highlight != nil:
		if rec, ok := v.traj.Find(*v.highlight, t); ok {
			target = rec.X.Sub(off)
		}
	case rm != nil:
		var sum geom.Vec
		n := 0
		for _, id := range rm.ActorIDs() {
			rec, ok := v.traj.Find(id, t)
			if !ok || rec.X.Norm() > v.traj.Bounds() {
				continue
			}
			sum = sum.Add(rec.X.Sub(off))
			n++
		}
		if n > 0 {
			target = sum.Scale(1 / float64(n))
		}
	}

	blend := v.cfg.CameraBlend
	v.lookTarget = v.lookTarget.Add(target.Sub(v.lookTarget).Scale(blend))
	v.canvas.SetLookTarget(v.lookTarget)
}

func shift(points []geom.Vec, off geom.Vec) []geom.Vec {
	if off == (geom.Vec{}) {
		return points
	}
	out := make([]geom.Vec, len(points))
	for i, p := range points {
		out[i] = p.Sub(off)
	}
	return out
}
