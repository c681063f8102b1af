package collision

import (
	"fmt"

	"github.com/achilleasa/lumen/types"
)

type SampleType uint8

// The kinds of geometry that can be fed to a bounding volume.
const (
	// A single 3D vertex; Min == Max.
	VertexSample SampleType = iota

	// A 3D triangle; Min/Max hold the per-axis extents of its vertices.
	TriangleSample

	// A 2D pixel; Min == Max and Color carries the pixel color so
	// callers can skip transparent pixels.
	PixelSample
)

func (t SampleType) String() string {
	switch t {
	case VertexSample:
		return "vertex"
	case TriangleSample:
		return "triangle"
	case PixelSample:
		return "pixel"
	}
	return fmt.Sprintf("SampleType(%d)", uint8(t))
}

// A Sample (particle) is the minimal geometric unit a bounding volume is
// built from. Samples are values and are never modified after creation.
type Sample struct {
	Type  SampleType
	Min   types.Vec3
	Max   types.Vec3
	Color types.Vec4
}

// Create a sample for a single vertex.
func NewVertexSample(pos types.Vec3) Sample {
	return Sample{
		Type: VertexSample,
		Min:  pos,
		Max:  pos,
	}
}

// Create a sample for a triangle.
func NewTriangleSample(v0, v1, v2 types.Vec3) Sample {
	return Sample{
		Type: TriangleSample,
		Min:  types.MinVec3(v0, types.MinVec3(v1, v2)),
		Max:  types.MaxVec3(v0, types.MaxVec3(v1, v2)),
	}
}

// Create a sample for a 2D pixel.
func NewPixelSample(pos types.Vec2, color types.Vec4) Sample {
	p := pos.Vec3(0)
	return Sample{
		Type:  PixelSample,
		Min:   p,
		Max:   p,
		Color: color,
	}
}

// Get the sample center.
func (s Sample) Center() types.Vec3 {
	return s.Min.Add(s.Max).Mul(0.5)
}

// Get the extent the sample contributes to a bounding volume. Vertices and
// pixels only contribute their position.
func (s Sample) extent() (min, max types.Vec3) {
	if s.Type == TriangleSample {
		return s.Min, s.Max
	}
	return s.Min, s.Min
}
