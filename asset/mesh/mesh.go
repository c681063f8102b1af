package mesh

import (
	"fmt"
	"math"

	"github.com/achilleasa/lumen/types"
)

// A mesh vertex. All attributes are stored as 4 component vectors so the
// vertex buffer can be uploaded without repacking.
type Vertex struct {
	Pos    types.Vec4
	Color  types.Vec4
	Normal types.Vec4
	UV     types.Vec4
}

// A triangulated mesh.
type Mesh struct {
	Name string

	Vertices []Vertex

	// Triangle list with 3 zero-based vertex indices per face.
	Indices []uint32

	// Optional path to the diffuse texture, resolved relative to the
	// mesh file.
	TexturePath string
}

// Get the vertex positions.
func (m *Mesh) Positions() []types.Vec3 {
	out := make([]types.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Pos.Vec3()
	}
	return out
}

// Get the mesh bounding box. An empty mesh yields a zero box.
func (m *Mesh) BBox() [2]types.Vec3 {
	if len(m.Vertices) == 0 {
		return [2]types.Vec3{}
	}

	bbox := [2]types.Vec3{
		{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	for _, v := range m.Vertices {
		p := v.Pos.Vec3()
		bbox[0] = types.MinVec3(bbox[0], p)
		bbox[1] = types.MaxVec3(bbox[1], p)
	}
	return bbox
}

// Get the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Check that the index list only references existing vertices and is
// made up of whole triangles.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q: index count %d is not a multiple of 3", m.Name, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("mesh %q: index %d at position %d out of range; mesh has %d vertices", m.Name, idx, i, len(m.Vertices))
		}
	}
	return nil
}
