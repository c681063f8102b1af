package cmd

import (
	"github.com/achilleasa/lumen/input"
	"github.com/achilleasa/lumen/renderer"
	"github.com/urfave/cli"
)

// Run the frame loop for a scene without a window, replaying scripted
// input.
func SimulateScene(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadSceneConfig(ctx)
	if err != nil {
		return err
	}

	world, err := buildWorld(cfg)
	if err != nil {
		return err
	}

	script, err := simulationScript(ctx)
	if err != nil {
		return err
	}

	r, err := renderer.NewHeadless(world, script, renderer.Options{
		MaxFrames: uint64(ctx.Int("frames")),
	})
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

// Build the input script from the --script flag or, if it is empty, by
// holding the --key keys for --frames frames.
func simulationScript(ctx *cli.Context) (*input.Script, error) {
	if def := ctx.String("script"); def != "" {
		return input.ParseScript(def)
	}

	names := ctx.StringSlice("key")
	if len(names) == 0 {
		names = []string{"w"}
	}

	keys := make([]input.Key, 0, len(names))
	for _, name := range names {
		key, err := input.ParseKey(name)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return input.NewScript().Hold(ctx.Int("frames"), keys...), nil
}
