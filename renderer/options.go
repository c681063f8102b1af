package renderer

import (
	"github.com/achilleasa/lumen/asset"
	"github.com/achilleasa/lumen/scene"
)

// A ReloadFunc rebuilds the world after one of its assets changed.
type ReloadFunc func() (*scene.World, error)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Window title.
	Title string

	// Directory with shader.vert and shader.frag. If empty, the built-in
	// shaders are used.
	ShaderDir string

	// Stop after this many frames; 0 runs until the window is closed or
	// the input script is exhausted.
	MaxFrames uint64

	// If both are set, changed assets reported by the watcher trigger a
	// world rebuild between frames.
	Watcher *asset.Watcher
	Reload  ReloadFunc
}
