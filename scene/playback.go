package scene

// Playback advances a View's time cursor on a fixed display-frame cadence,
// decoupling simulation-time stepping from the display refresh rate.
type Playback struct {
	view    *View
	divisor int
	frame   int
	playing bool
}

// NewPlayback wraps a view with a paused playback cursor that advances one
// timestep every divisor display frames.
func NewPlayback(v *View, divisor int) *Playback {
	if divisor < 1 {
		divisor = 1
	}
	return &Playback{view: v, divisor: divisor}
}

// Playing reports whether playback is running.
func (p *Playback) Playing() bool {
	return p.playing
}

// Toggle starts or pauses playback.
func (p *Playback) Toggle() {
	p.playing = !p.playing
}

// Step scrubs the cursor by di timesteps, clamped by the view.
func (p *Playback) Step(di int) {
	p.view.SetTimeIndex(p.view.TimeIndex() + di)
}

// Tick is called once per display frame. Every divisor frames of running
// playback the cursor advances one timestep, wrapping at the end.
func (p *Playback) Tick() {
	if !p.playing {
		return
	}
	p.frame++
	if p.frame%p.divisor != 0 {
		return
	}

	n := p.view.TimeStepCount()
	if n == 0 {
		return
	}
	p.view.SetTimeIndex((p.view.TimeIndex() + 1) % n)
}
