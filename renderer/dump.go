package renderer

import (
	"fmt"
	"io"

	"github.com/achilleasa/lumen/collision"
	"github.com/achilleasa/lumen/scene"
	"github.com/achilleasa/lumen/types"
	"github.com/olekukonko/tablewriter"
)

// Write a table describing the camera and object colliders of world.
func DumpColliders(w io.Writer, world *scene.World) error {
	if world == nil {
		return ErrNoWorld
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Entity", "Type", "Center", "Size", "Nodes", "Leaves", "Depth", "Samples"})

	if world.Camera != nil {
		camera := world.Camera.View()
		table.Append(colliderRow(camera.ID(), "camera", camera.Collider()))
	}

	var totalNodes, totalSamples int
	world.Objects.ForEach(func(obj *scene.Object) bool {
		name := "-"
		if m := obj.Mesh(); m != nil && m.Name != "" {
			name = m.Name
		}
		if c := obj.Collider(); c != nil {
			stats := c.Stats()
			totalNodes += stats.Nodes
			totalSamples += stats.Samples
		}
		table.Append(colliderRow(obj.ID(), name, obj.Collider()))
		return true
	})
	table.SetFooter([]string{"", fmt.Sprintf("%d objects", world.Objects.Len()), "", "", "", fmt.Sprintf("%d", totalNodes), "", "", fmt.Sprintf("%d", totalSamples)})

	table.Render()
	return nil
}

func colliderRow(id int, name string, c *collision.Volume) []string {
	if c == nil {
		return []string{fmt.Sprintf("%d", id), name, "none", "-", "-", "-", "-", "-", "-"}
	}

	stats := c.Stats()
	return []string{
		fmt.Sprintf("%d", id),
		name,
		c.Type().String(),
		fmtVec3(c.Center()),
		fmtVec3(c.Size()),
		fmt.Sprintf("%d", stats.Nodes),
		fmt.Sprintf("%d", stats.Leaves),
		fmt.Sprintf("%d", stats.MaxDepth),
		fmt.Sprintf("%d", stats.Samples),
	}
}

func fmtVec3(v types.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}
