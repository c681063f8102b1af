package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/achilleasa/lumen/renderer"
	"github.com/achilleasa/lumen/scene"
	"github.com/achilleasa/lumen/scene/config"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Load the scene config passed as the first command argument and apply the
// window and camera collider overrides from the command flags.
func loadSceneConfig(ctx *cli.Context) (*config.Config, error) {
	if ctx.NArg() != 1 {
		return nil, errors.New("missing scene file argument")
	}

	cfg, err := config.Load(ctx.Args().First())
	if err != nil {
		return nil, err
	}

	if width := ctx.Int("width"); width > 0 {
		cfg.Window.Width = width
	}
	if height := ctx.Int("height"); height > 0 {
		cfg.Window.Height = height
	}
	if collider := ctx.String("collider"); collider != "" {
		cfg.Camera.Collider = collider
	}
	return cfg, nil
}

// Build a world and log a summary of its colliders.
func buildWorld(cfg *config.Config) (*scene.World, error) {
	world, err := cfg.Build(nil)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = renderer.DumpColliders(&buf, world); err != nil {
		return nil, err
	}
	logger.Infof("scene colliders\n%s", buf.String())
	return world, nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var avgFrameTime string
	if stats.Frames != 0 {
		avgFrameTime = (stats.TotalTime / time.Duration(stats.Frames)).String()
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frames", "Camera reverts", "Reloads", "Camera position", "Avg. frame time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.Frames),
		fmt.Sprintf("%d", stats.Reverts),
		fmt.Sprintf("%d", stats.Reloads),
		fmt.Sprintf("(%.3f, %.3f, %.3f)", stats.CameraPosition[0], stats.CameraPosition[1], stats.CameraPosition[2]),
		avgFrameTime,
	})
	table.SetFooter([]string{"", "", "", "TOTAL", stats.TotalTime.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
