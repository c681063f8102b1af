package renderer

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/achilleasa/lumen/input"
	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/scene"
)

type Renderer interface {
	// Run the frame loop.
	Render() error

	// Stop the frame loop and release any resources.
	Close()

	// Get render statistics.
	Stats() FrameStats
}

// A FrameLoop holds the frame loop state shared by all renderers: the
// world, the frame statistics and the reload machinery.
type FrameLoop struct {
	Logger  log.Logger
	Options Options

	world *scene.World
	stats FrameStats

	interrupted int32
}

// Create a frame loop for world. The logger is named after the renderer.
func NewFrameLoop(name string, world *scene.World, opts Options) (*FrameLoop, error) {
	if world == nil {
		return nil, ErrNoWorld
	}
	if world.Camera == nil {
		return nil, ErrNoCamera
	}

	return &FrameLoop{
		Logger:  log.New(name),
		Options: opts,
		world:   world,
	}, nil
}

// Get the current world. The world may be replaced by ReloadAssets.
func (l *FrameLoop) World() *scene.World {
	return l.world
}

// Get render statistics.
func (l *FrameLoop) Stats() FrameStats {
	return l.stats
}

// Request the frame loop to stop.
func (l *FrameLoop) Close() {
	atomic.StoreInt32(&l.interrupted, 1)
}

// Returns true if Close was called.
func (l *FrameLoop) Interrupted() bool {
	return atomic.LoadInt32(&l.interrupted) == 1
}

// Returns true if the MaxFrames limit has been reached.
func (l *FrameLoop) FrameLimitReached() bool {
	return l.Options.MaxFrames != 0 && l.stats.Frames >= l.Options.MaxFrames
}

// Advance the world by one frame and update the frame statistics.
func (l *FrameLoop) Step(in input.State) scene.StepStats {
	start := time.Now()
	stepStats := l.world.Step(in)

	l.stats.Frames++
	if stepStats.CameraReverted {
		l.stats.Reverts++
	}
	l.stats.CameraPosition = l.world.Camera.View().Position
	l.stats.LastFrameTime = time.Since(start)
	l.stats.TotalTime += l.stats.LastFrameTime
	return stepStats
}

// Rebuild the world if the watcher reported any asset changes. The camera
// of the current world is carried over so the view does not jump. Returns
// true if the world was replaced.
func (l *FrameLoop) ReloadAssets() bool {
	if l.Options.Watcher == nil || l.Options.Reload == nil {
		return false
	}

	changed := l.Options.Watcher.Drain()
	if len(changed) == 0 {
		return false
	}

	l.Logger.Noticef("reloading world; changed assets: %s", strings.Join(changed, ", "))
	world, err := l.Options.Reload()
	if err != nil {
		l.Logger.Warningf("could not reload world; keeping current world: %s", err)
		return false
	}
	if world == nil {
		l.Logger.Warning("reload returned no world; keeping current world")
		return false
	}

	world.Camera = l.world.Camera
	l.world = world
	l.stats.Reloads++
	return true
}
