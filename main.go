package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/lumen/cmd"
	"github.com/achilleasa/lumen/renderer/opengl"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "lumen"
	app.Usage = "real-time rendering of scenes with bounding volume collisions"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "render an interactive view of a scene",
			Description: `
Load a scene description, build the object colliders and open a window.
The camera is moved with WASD (first person) or the arrow keys (fixed camera)
and is kept from entering any object collider. Press ESC to exit.`,
			ArgsUsage: "scene.yaml",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width; overrides the scene window width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height; overrides the scene window height",
				},
				cli.IntFlag{
					Name:  "frames",
					Usage: "exit after this many frames (0 runs until the window is closed)",
				},
				cli.StringFlag{
					Name:  "collider",
					Usage: "camera collider: sphere, box or none",
				},
				cli.StringFlag{
					Name:  "shaders",
					Usage: "directory with shader.vert and shader.frag to use instead of the built-in shaders",
				},
				cli.BoolFlag{
					Name:  "watch",
					Usage: "rebuild the scene when the scene file or any of its assets change",
				},
			},
			Action: cmd.RunScene(opengl.NewInteractive),
		},
		{
			Name:  "simulate",
			Usage: "run the frame loop for a scene without a window",
			Description: `
Run the frame loop with scripted input and report camera collisions. The
script is a comma separated list of keys:frames steps where keys is a '+'
separated key list or idle, e.g. w:120,w+r:30,idle:10,a:60.`,
			ArgsUsage: "scene.yaml",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "frames",
					Value: 600,
					Usage: "number of frames to simulate",
				},
				cli.StringSliceFlag{
					Name:  "key, k",
					Usage: "key to hold for all frames if no script is specified (default: w)",
				},
				cli.StringFlag{
					Name:  "script, s",
					Usage: "input script",
				},
				cli.StringFlag{
					Name:  "collider",
					Usage: "camera collider: sphere, box or none",
				},
			},
			Action: cmd.SimulateScene,
		},
		{
			Name:  "inspect",
			Usage: "display the colliders of a scene or a set of meshes",
			Description: `
Build the bounding volume hierarchies for all objects in a scene description
or for each of the supplied fiis/obj mesh files and display their structure.`,
			ArgsUsage: "scene.yaml | mesh1.obj mesh2.fiis ...",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "collider",
					Value: "sphere",
					Usage: "collider type for mesh files: sphere or box (camera collider for scenes)",
				},
			},
			Action: cmd.InspectAsset,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
