package cmd

import (
	"github.com/achilleasa/lumen/asset"
	"github.com/achilleasa/lumen/renderer"
	"github.com/achilleasa/lumen/scene"
	"github.com/achilleasa/lumen/scene/config"
	"github.com/urfave/cli"
)

// A RendererFactory creates the renderer that RunScene drives.
type RendererFactory func(world *scene.World, opts renderer.Options) (renderer.Renderer, error)

// Create an action that runs the interactive frame loop for a scene using
// the renderer returned by newRenderer.
func RunScene(newRenderer RendererFactory) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		return runScene(ctx, newRenderer)
	}
}

func runScene(ctx *cli.Context, newRenderer RendererFactory) error {
	setupLogging(ctx)

	cfg, err := loadSceneConfig(ctx)
	if err != nil {
		return err
	}

	world, err := buildWorld(cfg)
	if err != nil {
		return err
	}

	opts := renderer.Options{
		FrameW:    uint32(cfg.Window.Width),
		FrameH:    uint32(cfg.Window.Height),
		Title:     cfg.Window.Title,
		ShaderDir: ctx.String("shaders"),
		MaxFrames: uint64(ctx.Int("frames")),
	}

	if ctx.Bool("watch") {
		watcher, err := watchScene(ctx.Args().First(), cfg)
		if err != nil {
			return err
		}
		defer watcher.Close()

		opts.Watcher = watcher
		opts.Reload = reloadFunc(ctx, watcher)
	}

	r, err := newRenderer(world, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	if err = r.Render(); err != nil {
		return err
	}

	displayFrameStats(r.Stats())
	return nil
}

// Watch the scene file and all assets it references.
func watchScene(sceneFile string, cfg *config.Config) (*asset.Watcher, error) {
	paths := append([]string{sceneFile}, cfg.AssetPaths()...)
	watcher, err := asset.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			logger.Warningf("not watching %s: %s", path, err)
		}
	}
	return watcher, nil
}

// Reload the scene config and rebuild the world. Newly referenced assets
// are added to the watcher.
func reloadFunc(ctx *cli.Context, watcher *asset.Watcher) renderer.ReloadFunc {
	return func() (*scene.World, error) {
		cfg, err := loadSceneConfig(ctx)
		if err != nil {
			return nil, err
		}
		for _, path := range cfg.AssetPaths() {
			if err := watcher.Add(path); err != nil {
				logger.Warningf("not watching %s: %s", path, err)
			}
		}
		return buildWorld(cfg)
	}
}
