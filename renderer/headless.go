package renderer

import (
	"github.com/achilleasa/lumen/input"
	"github.com/achilleasa/lumen/scene"
)

// A renderer that runs the frame loop without a window. Input is replayed
// from a script.
type headlessRenderer struct {
	*FrameLoop

	script *input.Script
}

// Create a headless renderer. The frame loop runs for MaxFrames frames or
// for the length of the script if MaxFrames is 0.
func NewHeadless(world *scene.World, script *input.Script, opts Options) (Renderer, error) {
	loop, err := NewFrameLoop("headless renderer", world, opts)
	if err != nil {
		return nil, err
	}

	if script == nil {
		script = input.NewScript()
	}

	return &headlessRenderer{
		FrameLoop: loop,
		script:    script,
	}, nil
}

func (r *headlessRenderer) Render() error {
	frames := r.Options.MaxFrames
	if frames == 0 {
		frames = uint64(r.script.Len())
	}

	for frame := uint64(0); frame < frames; frame++ {
		if r.Interrupted() {
			return ErrInterrupted
		}
		r.ReloadAssets()

		stepStats := r.Step(r.script.Frame(int(frame)))
		pos := r.World().Camera.View().Position
		if stepStats.CameraReverted {
			r.Logger.Infof("frame %d: camera move reverted at %v", frame, pos)
		} else {
			r.Logger.Debugf("frame %d: camera at %v", frame, pos)
		}
	}

	stats := r.Stats()
	r.Logger.Noticef(
		"simulated %d frames in %s (%d camera reverts)",
		stats.Frames, stats.TotalTime, stats.Reverts,
	)
	return nil
}
