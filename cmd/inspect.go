package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/achilleasa/lumen/asset/mesh"
	"github.com/achilleasa/lumen/collision"
	"github.com/achilleasa/lumen/renderer"
	"github.com/achilleasa/lumen/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Build the colliders for a scene config or for one or more mesh files and
// display their bounding volume hierarchies.
func InspectAsset(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing scene or mesh file argument")
	}

	first := ctx.Args().First()
	switch strings.ToLower(filepath.Ext(first)) {
	case ".yaml", ".yml":
		cfg, err := loadSceneConfig(ctx)
		if err != nil {
			return err
		}
		world, err := cfg.Build(nil)
		if err != nil {
			return err
		}
		return displayColliders(world)
	}

	colliderType, err := collision.ParseVolumeType(ctx.String("collider"))
	if err != nil {
		return err
	}

	world := scene.NewWorld()
	var ids scene.IDAllocator
	for idx := 0; idx < ctx.NArg(); idx++ {
		meshFile := ctx.Args().Get(idx)
		m, err := mesh.ReadMesh(meshFile)
		if err != nil {
			return err
		}

		displayMeshInfo(meshFile, m)
		world.Objects.Put(scene.NewObjectFromMesh(ids.Next(), m, colliderType))
	}
	return displayColliders(world)
}

func displayColliders(world *scene.World) error {
	var buf bytes.Buffer
	if err := renderer.DumpColliders(&buf, world); err != nil {
		return err
	}
	logger.Noticef("colliders\n%s", buf.String())
	return nil
}

func displayMeshInfo(meshFile string, m *mesh.Mesh) {
	bbox := m.BBox()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Mesh", "Vertices", "Triangles", "BBox min", "BBox max", "Texture"})
	table.Append([]string{
		m.Name,
		fmt.Sprintf("%d", len(m.Vertices)),
		fmt.Sprintf("%d", m.TriangleCount()),
		fmt.Sprintf("%v", bbox[0]),
		fmt.Sprintf("%v", bbox[1]),
		m.TexturePath,
	})
	table.Render()
	logger.Noticef("mesh information for %s\n%s", meshFile, buf.String())
}
