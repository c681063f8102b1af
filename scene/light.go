package scene

import "github.com/achilleasa/lumen/types"

type LightType int32

// The values match the light type constants expected by the shaders.
const (
	DirectionalLight LightType = iota
	PointLight
)

func (t LightType) String() string {
	if t == DirectionalLight {
		return "directional"
	}
	return "point"
}

// A LightSource is a light that can be animated by the frame loop.
type LightSource interface {
	// Advance the light state by dt seconds.
	Move(dt float32)

	// Get the current light parameters.
	Params() *Light
}

// A static light.
type Light struct {
	Type      LightType
	Position  types.Vec3
	Direction types.Vec3
	Color     types.Vec4
	Intensity float32
}

// Create a light. Negative intensities are clamped to 0 and colors
// specified in the 0-255 range are normalized.
func NewLight(kind LightType, pos types.Vec3, color types.Vec4, intensity float32) *Light {
	if intensity < 0 {
		intensity = 0
	}
	return &Light{
		Type:      kind,
		Position:  pos,
		Color:     normalizeColor(color),
		Intensity: intensity,
	}
}

// Move implements LightSource. Static lights do not move.
func (l *Light) Move(dt float32) {}

// Params implements LightSource.
func (l *Light) Params() *Light {
	return l
}

// Colors with an rgb component above 1 are assumed to use the 0-255 range.
// The alpha channel is only rescaled when it is also above 1.
func normalizeColor(c types.Vec4) types.Vec4 {
	if c[0] <= 1 && c[1] <= 1 && c[2] <= 1 {
		return c
	}
	out := types.Vec4{c[0] / 255, c[1] / 255, c[2] / 255, c[3]}
	if c[3] > 1 {
		out[3] = c[3] / 255
	}
	return out
}

// A point light orbiting around a center point. The orbit starts at
// center + (radius, 0, 0) and rotates around Axis.
type OrbitalLight struct {
	Light

	Center types.Vec3
	Radius float32

	// Angular speed in radians per second.
	Speed float32

	// Unit rotation axis.
	Axis types.Vec3

	angle float32
}

// Create an orbital light. A zero axis defaults to the Y axis.
func NewOrbitalLight(center types.Vec3, radius, speed float32, color types.Vec4, intensity float32, axis types.Vec3) *OrbitalLight {
	axis = axis.Normalize()
	if axis == (types.Vec3{}) {
		axis = types.Vec3{0, 1, 0}
	}
	l := &OrbitalLight{
		Light:  *NewLight(PointLight, center, color, intensity),
		Center: center,
		Radius: radius,
		Speed:  speed,
		Axis:   axis,
	}
	l.Position = l.orbitPosition()
	return l
}

// Move implements LightSource.
func (l *OrbitalLight) Move(dt float32) {
	l.angle += l.Speed * dt
	l.Position = l.orbitPosition()
}

// Get the accumulated orbit angle in radians.
func (l *OrbitalLight) Angle() float32 {
	return l.angle
}

func (l *OrbitalLight) orbitPosition() types.Vec3 {
	q := types.QuatFromAxisAngle(l.Axis, l.angle)
	return l.Center.Add(q.Rotate(types.Vec3{l.Radius, 0, 0}))
}
