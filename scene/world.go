package scene

import (
	"github.com/achilleasa/lumen/input"
	"github.com/achilleasa/lumen/log"
)

// A MovableCamera is a camera that moves in response to input and collides
// with the world.
type MovableCamera interface {
	Movable

	// Move the camera for a frame. Returns false if the move was reverted
	// because of a collision.
	Move(dt float32, in input.State, query CollisionQuery) bool

	// Get the underlying camera parameters.
	View() *Camera
}

// Per-frame time steps for each entity class.
type TimeStep struct {
	Camera  float32
	Lights  float32
	Objects float32
}

// The default time steps used by the frame loop.
var DefaultTimeStep = TimeStep{
	Camera:  0.008,
	Lights:  0.001,
	Objects: 0.001,
}

// Summary of a single World.Step call.
type StepStats struct {
	// True if the camera pose changed.
	CameraMoved bool

	// True if a camera move was rejected because of a collision.
	CameraReverted bool

	// Number of objects that were updated.
	Objects int
}

// A World holds everything that is simulated and drawn each frame.
type World struct {
	logger log.Logger

	Camera  MovableCamera
	Lights  []LightSource
	Objects *Registry

	TimeStep TimeStep
}

// Create an empty world without a camera.
func NewWorld() *World {
	return &World{
		logger:   log.New("world"),
		Lights:   make([]LightSource, 0),
		Objects:  NewRegistry(),
		TimeStep: DefaultTimeStep,
	}
}

// Add a light to the world.
func (w *World) AddLight(l LightSource) {
	w.Lights = append(w.Lights, l)
}

// Advance the world by one frame.
//
// Updates are sequential: the camera moves first and is tested against
// the object colliders as they were left by the previous frame, then the
// lights move, then each object (in ascending id order) re-applies its
// pose to its collider and advances its own motion. Results therefore
// depend on this order; no collider snapshot is taken at frame start.
func (w *World) Step(in input.State) StepStats {
	var stats StepStats

	if w.Camera != nil {
		before := w.Camera.Snapshot()
		stats.CameraReverted = !w.Camera.Move(w.TimeStep.Camera, in, w.Objects)
		stats.CameraMoved = w.Camera.Snapshot() != before
	}

	for _, l := range w.Lights {
		l.Move(w.TimeStep.Lights)
	}

	w.Objects.ForEach(func(obj *Object) bool {
		obj.UpdateCollider()
		obj.Move(w.TimeStep.Objects)
		stats.Objects++
		return true
	})

	return stats
}
