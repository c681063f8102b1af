package renderer

import (
	"time"

	"github.com/achilleasa/lumen/types"
)

type FrameStats struct {
	// Number of rendered frames.
	Frames uint64

	// Number of frames where the camera move was reverted.
	Reverts uint64

	// Number of world rebuilds triggered by asset changes.
	Reloads uint64

	// Camera position after the last frame.
	CameraPosition types.Vec3

	// Time spent on the last frame and on all frames.
	LastFrameTime time.Duration
	TotalTime     time.Duration
}
