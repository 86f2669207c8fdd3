/*package io loads the viewer's inputs: the per-kind trajectory history
tables, the interaction-event catalog, and the configuration file.*/
package io

import (
	"fmt"

	"github.com/phil-mansfield/orbvis/scene"
)

const ExampleConfigFile = `[Input]

#######################
# Required Parameters #
#######################

# History tables extracted from the simulation snapshots, one per particle
# kind. CSV with a header row; columns: time_myr, bh_id (or ns_id),
# mass_msun, vx, vy, vz, x, y, z.
BlackHoleFile  = path/to/bh_history.csv
NeutronStarFile = path/to/ns_history.csv

#######################
# Optional Parameters #
#######################

# Interaction-event catalog. Whitespace-delimited numeric table with six
# columns: kind (1 = exchange, 2 = merge), time, id1, id2, id3, id4. Merge
# rows pad id3 and id4 with -1. Lines starting with # are skipped.
# EventFile = path/to/events.txt

[View]

# All parameters in this section are optional presentation settings.

# Number of display frames per simulation timestep during playback.
# PlaybackDivisor = 4

# Start in the center-of-mass reference frame.
# ComFrame = false

# Display scaling of particle spheres, velocity/kick arrows, and spin
# arrows.
# ParticleSizeScale = 1.0
# VelocityVectorScale = 1.0
# SpinVectorScale = 1.0

# Fixed dimensionless spin parameter in [0, 1] used by the pseudo-spin
# display. This is a presentation constant, not simulated physics.
# SpinParameter = 0.7

# Sample count of each rendered orbit ellipse.
# EllipsePoints = 128

# Exponential smoothing factor of the camera's look-at target, in (0, 1].
# CameraBlend = 0.08`

// ViewerWrapper is the top-level layout of the config file.
type ViewerWrapper struct {
	Input InputConfig
	View  ViewConfig
}

type InputConfig struct {
	// Required
	BlackHoleFile   string
	NeutronStarFile string

	// Optional
	EventFile string
}

type ViewConfig struct {
	// Optional; zero values fall back to the defaults below.
	PlaybackDivisor     int
	ComFrame            bool
	ParticleSizeScale   float64
	VelocityVectorScale float64
	SpinVectorScale     float64
	SpinParameter       float64
	EllipsePoints       int
	CameraBlend         float64
	MinArrowLength      float64
}

// DefaultViewerWrapper returns a wrapper preloaded with the default view
// parameters, so a config file only needs to name what it changes.
func DefaultViewerWrapper() *ViewerWrapper {
	def := scene.DefaultConfig()
	return &ViewerWrapper{
		View: ViewConfig{
			PlaybackDivisor:     4,
			ParticleSizeScale:   def.ParticleSizeScale,
			VelocityVectorScale: def.VelocityVectorScale,
			SpinVectorScale:     def.SpinVectorScale,
			SpinParameter:       def.SpinParameter,
			EllipsePoints:       def.EllipsePoints,
			CameraBlend:         def.CameraBlend,
			MinArrowLength:      def.MinArrowLength,
		},
	}
}

func (con *InputConfig) CheckInit() error {
	if con.BlackHoleFile == "" {
		return fmt.Errorf("Need to specify a 'BlackHoleFile' value.")
	}
	if con.NeutronStarFile == "" {
		return fmt.Errorf("Need to specify a 'NeutronStarFile' value.")
	}
	return nil
}

func (con *ViewConfig) CheckInit() error {
	if con.PlaybackDivisor < 1 {
		return fmt.Errorf(
			"'PlaybackDivisor' must be at least 1, but is %d.",
			con.PlaybackDivisor,
		)
	}
	if con.SpinParameter < 0 || con.SpinParameter > 1 {
		return fmt.Errorf(
			"'SpinParameter' must be in [0, 1], but is %g.",
			con.SpinParameter,
		)
	}
	if con.CameraBlend <= 0 || con.CameraBlend > 1 {
		return fmt.Errorf(
			"'CameraBlend' must be in (0, 1], but is %g.",
			con.CameraBlend,
		)
	}
	if con.EllipsePoints < 3 {
		return fmt.Errorf(
			"'EllipsePoints' must be at least 3, but is %d.",
			con.EllipsePoints,
		)
	}
	if con.ParticleSizeScale <= 0 || con.VelocityVectorScale <= 0 ||
		con.SpinVectorScale <= 0 {
		return fmt.Errorf("Display scales must be positive.")
	}
	return nil
}

// SceneConfig converts the view section into the scene package's config.
func (con *ViewConfig) SceneConfig() scene.Config {
	return scene.Config{
		ParticleSizeScale:   con.ParticleSizeScale,
		VelocityVectorScale: con.VelocityVectorScale,
		SpinVectorScale:     con.SpinVectorScale,
		SpinParameter:       con.SpinParameter,
		EllipsePoints:       con.EllipsePoints,
		CameraBlend:         con.CameraBlend,
		MinArrowLength:      con.MinArrowLength,
		ComFrame:            con.ComFrame,
	}
}
