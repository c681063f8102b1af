package collision

import (
	"fmt"
	"math"
	"strings"

	"github.com/achilleasa/lumen/types"
)

type VolumeType uint8

// The supported bounding volume primitives.
const (
	SphereVolume VolumeType = iota
	BoxVolume
)

func (t VolumeType) String() string {
	switch t {
	case SphereVolume:
		return "sphere"
	case BoxVolume:
		return "box"
	}
	return fmt.Sprintf("VolumeType(%d)", uint8(t))
}

// Parse a volume type name ("sphere", "box" or "aabb").
func ParseVolumeType(name string) (VolumeType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sphere", "":
		return SphereVolume, nil
	case "box", "aabb":
		return BoxVolume, nil
	}
	return SphereVolume, fmt.Errorf("%w: %q", ErrUnknownVolumeType, name)
}

// A Volume is a bounding volume hierarchy node. Depending on its type it
// wraps either a sphere or a box. Each node tracks two extents: the origin
// extent computed from the untransformed samples and the current extent
// obtained by applying the latest transform to the origin extent.
//
// A node is either a leaf or owns exactly two children that partition its
// samples.
type Volume struct {
	kind VolumeType

	sphere       Sphere
	sphereOrigin Sphere

	box       Box
	boxOrigin Box

	samples []Sample

	left  *Volume
	right *Volume
}

// Create an empty volume of the given type. Unknown types fall back to a
// sphere volume.
func NewVolume(kind VolumeType) *Volume {
	if kind != SphereVolume && kind != BoxVolume {
		kind = SphereVolume
	}
	v := &Volume{kind: kind}
	v.RecomputeExtent()
	return v
}

// Create a sphere volume with an explicit extent and no samples.
func NewSphereVolume(center types.Vec3, radius float32) *Volume {
	s := Sphere{Center: center, Radius: radius}
	return &Volume{
		kind:         SphereVolume,
		sphere:       s,
		sphereOrigin: s,
	}
}

// Create a box volume with an explicit extent and no samples.
func NewBoxVolume(min, max types.Vec3) *Volume {
	b := Box{Min: types.MinVec3(min, max), Max: types.MaxVec3(min, max)}
	return &Volume{
		kind:      BoxVolume,
		box:       b,
		boxOrigin: b,
	}
}

// Get the volume type.
func (v *Volume) Type() VolumeType {
	return v.kind
}

// Returns true if this node has no children.
func (v *Volume) IsLeaf() bool {
	return v.left == nil
}

// Get the node children. Both are nil for leafs.
func (v *Volume) Children() (left, right *Volume) {
	return v.left, v.right
}

// Get a copy of the samples this node was built from.
func (v *Volume) Samples() []Sample {
	out := make([]Sample, len(v.samples))
	copy(out, v.samples)
	return out
}

// Add a vertex sample.
func (v *Volume) AddVertex(pos types.Vec3) {
	v.AddSample(NewVertexSample(pos))
}

// Add a triangle sample.
func (v *Volume) AddTriangle(v0, v1, v2 types.Vec3) {
	v.AddSample(NewTriangleSample(v0, v1, v2))
}

// Add a pixel sample.
func (v *Volume) AddPixel(pos types.Vec2, color types.Vec4) {
	v.AddSample(NewPixelSample(pos, color))
}

// Append a sample and recompute the node extent from the full sample list.
func (v *Volume) AddSample(s Sample) {
	v.samples = append(v.samples, s)
	v.RecomputeExtent()
}

// Append a batch of samples and recompute the node extent once. The
// resulting extent is identical to adding the samples one at a time.
func (v *Volume) AddSamples(samples []Sample) {
	v.samples = append(v.samples, samples...)
	v.RecomputeExtent()
}

// Recompute the origin extent from the sample list. The current extent is
// reset to the origin extent. An empty sample list yields a zero-sized
// volume at the origin.
func (v *Volume) RecomputeExtent() {
	if len(v.samples) == 0 {
		switch v.kind {
		case SphereVolume:
			v.sphereOrigin = Sphere{}
			v.sphere = Sphere{}
		case BoxVolume:
			v.boxOrigin = Box{}
			v.box = Box{}
		}
		return
	}

	min := types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	max := types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, s := range v.samples {
		sMin, sMax := s.extent()
		min = types.MinVec3(min, sMin)
		max = types.MaxVec3(max, sMax)
	}

	switch v.kind {
	case SphereVolume:
		center := min.Add(max).Mul(0.5)
		v.sphereOrigin = Sphere{Center: center, Radius: center.Distance(max)}
		v.sphere = v.sphereOrigin
	case BoxVolume:
		v.boxOrigin = Box{Min: min, Max: max}
		v.box = v.boxOrigin
	}
}

// Recalculate the current extent of this node and all its children by
// applying m to their origin extents.
func (v *Volume) ApplyTransform(m types.Mat4) {
	switch v.kind {
	case SphereVolume:
		v.sphere = v.sphereOrigin.Transform(m)
	case BoxVolume:
		v.box = v.boxOrigin.Transform(m)
	}

	if !v.IsLeaf() {
		v.left.ApplyTransform(m)
		v.right.ApplyTransform(m)
	}
}

// Get the center of the current extent.
func (v *Volume) Center() types.Vec3 {
	switch v.kind {
	case SphereVolume:
		return v.sphere.Center
	case BoxVolume:
		return v.box.Center()
	}
	return types.Vec3{}
}

// Get the size of the current extent. For spheres this is the diameter
// along every axis.
func (v *Volume) Size() types.Vec3 {
	switch v.kind {
	case SphereVolume:
		return v.sphere.Size()
	case BoxVolume:
		return v.box.Size()
	}
	return types.Vec3{}
}

// Get the AABB that encloses the current extent.
func (v *Volume) Bounds() Box {
	switch v.kind {
	case SphereVolume:
		return v.sphere.Bounds()
	case BoxVolume:
		return v.box
	}
	return Box{}
}

// Test whether this hierarchy overlaps other. The primitives of both nodes
// are tested first; on a hit the test descends into the children and only
// reports a collision when two overlapping leafs are found.
func (v *Volume) Test(other *Volume) bool {
	if v == nil || other == nil {
		return false
	}

	if !v.overlaps(other) {
		return false
	}

	switch {
	case v.IsLeaf() && other.IsLeaf():
		return true
	case !v.IsLeaf() && !other.IsLeaf():
		return v.left.Test(other.left) ||
			v.left.Test(other.right) ||
			v.right.Test(other.left) ||
			v.right.Test(other.right)
	case !v.IsLeaf():
		return v.left.Test(other) || v.right.Test(other)
	default:
		return other.left.Test(v) || other.right.Test(v)
	}
}

// Test the current primitives of two nodes.
func (v *Volume) overlaps(other *Volume) bool {
	switch v.kind {
	case SphereVolume:
		switch other.kind {
		case SphereVolume:
			return SphereVsSphere(v.sphere, other.sphere)
		case BoxVolume:
			return SphereVsBox(v.sphere, other.box)
		}
	case BoxVolume:
		switch other.kind {
		case SphereVolume:
			return BoxVsSphere(v.box, other.sphere)
		case BoxVolume:
			return BoxVsBox(v.box, other.box)
		}
	}
	return false
}

func (v *Volume) String() string {
	switch v.kind {
	case SphereVolume:
		return v.sphere.String()
	case BoxVolume:
		return v.box.String()
	}
	return v.kind.String()
}
