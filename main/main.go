package main

import (
	"flag"
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/orbvis/event"
	"github.com/phil-mansfield/orbvis/io"
	"github.com/phil-mansfield/orbvis/render"
	"github.com/phil-mansfield/orbvis/scene"
)

const (
	windowWidth  = 1280
	windowHeight = 720

	// Raylib units per pc, and the drawn reference-box edge in pc.
	worldScale = 10.0
	boxSize    = 20.0
)

func main() {
	var config, exampleConfig string
	flag.StringVar(&config, "Config", "", "Viewer configuration file.")
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file to stdout and exits. "+
			"The only accepted argument is 'Viewer'.",
	)
	flag.Parse()

	if exampleConfig != "" {
		if exampleConfig != "Viewer" {
			log.Fatalf("Unrecognized config type '%s'.", exampleConfig)
		}
		fmt.Println(io.ExampleConfigFile)
		return
	}
	if config == "" {
		log.Fatal("Must supply a -Config file.")
	}

	wrap := io.DefaultViewerWrapper()
	if err := gcfg.ReadFileInto(wrap, config); err != nil {
		log.Fatal(err.Error())
	}
	if err := wrap.Input.CheckInit(); err != nil {
		log.Fatal(err.Error())
	}
	if err := wrap.View.CheckInit(); err != nil {
		log.Fatal(err.Error())
	}

	traj, err := io.ReadTrajectory(
		wrap.Input.BlackHoleFile, wrap.Input.NeutronStarFile,
	)
	if err != nil {
		log.Fatal(err.Error())
	}
	if len(traj.SortedTimes()) == 0 {
		log.Fatal("History tables contain no records.")
	}

	var events []event.Event
	if wrap.Input.EventFile != "" {
		events, err = io.ReadEvents(wrap.Input.EventFile)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	rl.InitWindow(windowWidth, windowHeight, "orbvis")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	canvas := render.NewCanvas(worldScale, boxSize)
	view := scene.New(traj, canvas, wrap.View.SceneConfig())
	defer view.Close()
	playback := scene.NewPlayback(view, wrap.View.PlaybackDivisor)

	camera := rl.NewCamera3D(
		rl.NewVector3(0, 0, float32(2*boxSize*worldScale)),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		45.0,
		rl.CameraPerspective,
	)

	selected := -1
	for !rl.WindowShouldClose() {
		selected = handleInput(view, playback, events, selected)
		steerCamera(&camera)
		playback.Tick()
		camera.Target = canvas.LookTarget()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(8, 8, 12, 255))
		rl.BeginMode3D(camera)
		canvas.Draw()
		rl.EndMode3D()
		drawHUD(view, playback, events, selected)
		rl.EndDrawing()
	}
}

// handleInput maps keys to the view's operations and returns the index of
// the selected event, -1 for none.
func handleInput(
	view *scene.View, playback *scene.Playback,
	events []event.Event, selected int,
) int {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		playback.Toggle()
	case rl.IsKeyPressed(rl.KeyRight):
		playback.Step(1)
	case rl.IsKeyPressed(rl.KeyLeft):
		playback.Step(-1)
	case rl.IsKeyPressed(rl.KeyC):
		view.SetComFrameEnabled(!view.ComFrameEnabled())
	case rl.IsKeyPressed(rl.KeyN) && len(events) > 0:
		selected = (selected + 1) % len(events)
		view.SelectEvent(&events[selected])
	case rl.IsKeyPressed(rl.KeyX):
		selected = -1
		view.SelectEvent(nil)
	}
	return selected
}

// steerCamera applies the manual orbit controls: right-drag pans, the wheel
// zooms toward the target.
func steerCamera(camera *rl.Camera3D) {
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		camera.Position.X -= delta.X * 0.2
		camera.Position.Y += delta.Y * 0.2
	}

	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		zoom := wheel * 8.0
		diff := rl.Vector3Subtract(camera.Target, camera.Position)
		if rl.Vector3Length(diff) > 10.0 || wheel < 0 {
			dir := rl.Vector3Normalize(diff)
			camera.Position = rl.Vector3Add(
				camera.Position, rl.Vector3Scale(dir, zoom),
			)
		}
	}
}

func drawHUD(
	view *scene.View, playback *scene.Playback,
	events []event.Event, selected int,
) {
	status := "paused"
	if playback.Playing() {
		status = "playing"
	}
	rl.DrawText(
		fmt.Sprintf("t = %.2f Myr  (%d/%d, %s)",
			view.CurrentTime(), view.TimeIndex()+1,
			view.TimeStepCount(), status),
		10, 10, 20, rl.RayWhite,
	)

	if selected >= 0 && view.Selected() != nil {
		ev := events[selected]
		rl.DrawText(
			fmt.Sprintf("event %d/%d: %s at t = %.2f Myr",
				selected+1, len(events), ev.Kind, ev.Time),
			10, 36, 20, rl.RayWhite,
		)
	}

	rl.DrawText(
		"space play/pause   left/right scrub   n next event   "+
			"x clear   c com frame",
		10, windowHeight-28, 16, rl.Gray,
	)
}
