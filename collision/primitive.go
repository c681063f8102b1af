package collision

import (
	"fmt"
	"math"

	"github.com/achilleasa/lumen/types"
)

// A bounding sphere.
type Sphere struct {
	Center types.Vec3
	Radius float32
}

// An axis-aligned bounding box.
type Box struct {
	Min types.Vec3
	Max types.Vec3
}

// Get the full extent of the sphere along each axis.
func (s Sphere) Size() types.Vec3 {
	d := s.Radius * 2
	return types.Vec3{d, d, d}
}

// Get the sphere transformed by m. The radius is scaled by the largest
// basis vector of m so non-uniform scales inflate the sphere.
func (s Sphere) Transform(m types.Mat4) Sphere {
	return Sphere{
		Center: m.MulPoint(s.Center),
		Radius: s.Radius * m.MaxScale(),
	}
}

// Get the AABB enclosing the sphere.
func (s Sphere) Bounds() Box {
	r := types.Vec3{s.Radius, s.Radius, s.Radius}
	return Box{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

func (s Sphere) String() string {
	return fmt.Sprintf("sphere(center: %v, radius: %.3f)", s.Center, s.Radius)
}

// Get the box center.
func (b Box) Center() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get the box size along each axis.
func (b Box) Size() types.Vec3 {
	return b.Max.Sub(b.Min)
}

// Get the 8 box corners.
func (b Box) Corners() [8]types.Vec3 {
	return [8]types.Vec3{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
	}
}

// Get the point inside the box that is closest to p.
func (b Box) ClosestPoint(p types.Vec3) types.Vec3 {
	return types.MaxVec3(b.Min, types.MinVec3(p, b.Max))
}

// Transform the 8 box corners by m and fit a new AABB around them. An AABB
// is not closed under rotation so the corners must be re-fitted.
func (b Box) Transform(m types.Mat4) Box {
	out := Box{
		Min: types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	for _, corner := range b.Corners() {
		p := m.MulPoint(corner)
		out.Min = types.MinVec3(out.Min, p)
		out.Max = types.MaxVec3(out.Max, p)
	}
	return out
}

func (b Box) String() string {
	return fmt.Sprintf("box(min: %v, max: %v)", b.Min, b.Max)
}

// Check whether two spheres overlap. Touching spheres overlap.
func SphereVsSphere(a, b Sphere) bool {
	return a.Center.Distance(b.Center) <= a.Radius+b.Radius
}

// Check whether two boxes overlap using a per-axis separating test.
// Touching boxes overlap.
func BoxVsBox(a, b Box) bool {
	for axis := 0; axis < 3; axis++ {
		if a.Min[axis] > b.Max[axis] || a.Max[axis] < b.Min[axis] {
			return false
		}
	}
	return true
}

// Check whether a sphere overlaps a box by clamping the sphere center into
// the box and comparing the distance to the clamped point with the radius.
func SphereVsBox(s Sphere, b Box) bool {
	return b.ClosestPoint(s.Center).Distance(s.Center) <= s.Radius
}

// Check whether a box overlaps a sphere.
func BoxVsSphere(b Box, s Sphere) bool {
	return SphereVsBox(s, b)
}
