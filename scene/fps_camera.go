package scene

import (
	"math"

	"github.com/achilleasa/lumen/input"
	"github.com/achilleasa/lumen/types"
)

const (
	// Degrees of yaw/pitch per pixel of cursor movement.
	fpsMouseSensitivity float32 = 0.2

	// Movement speed in units per second.
	fpsMoveSpeed float32 = 0.5

	// Extra forward speed multiplier while sprinting.
	fpsSprintFactor float32 = 3

	fpsMaxPitch float32 = 89
)

// A first person camera steered by cursor movement (yaw/pitch) and WASD.
// Space moves the camera down and left shift moves it up; holding R while
// moving forward sprints.
type FirstPersonCamera struct {
	*Camera

	// Angles in degrees.
	Yaw   float32
	Pitch float32

	Sensitivity float32

	lastX, lastY float64
	haveCursor   bool
}

// Create a first person camera at pos facing down the -Z axis.
func NewFirstPersonCamera(pos, up types.Vec3, fov, aspect, near, far float32) *FirstPersonCamera {
	c := &FirstPersonCamera{
		Camera:      NewCamera(pos, pos.Add(types.Vec3{0, 0, -1}), up, fov, aspect, near, far),
		Yaw:         -90,
		Sensitivity: fpsMouseSensitivity,
	}
	c.Speed = fpsMoveSpeed
	c.LookAt = c.Position.Add(c.forward())
	c.Update()
	return c
}

// Apply the cursor delta to the camera orientation and move the camera. The
// orientation change is always kept; the translation is reverted if the
// camera collider hits any object reported by query. Returns false if the
// move was reverted.
func (c *FirstPersonCamera) Move(dt float32, in input.State, query CollisionQuery) bool {
	c.look(in.CursorX, in.CursorY)
	c.LookAt = c.Position.Add(c.forward())

	forward := c.forward()
	right := forward.Cross(c.Up).Normalize()
	step := dt * c.Speed

	var delta types.Vec3
	if in.Pressed(input.KeyW) {
		delta = delta.Add(forward.Mul(step))
		if in.Pressed(input.KeyR) {
			delta = delta.Add(forward.Mul(step * fpsSprintFactor))
		}
	}
	if in.Pressed(input.KeyS) {
		delta = delta.Sub(forward.Mul(step))
	}
	if in.Pressed(input.KeyA) {
		delta = delta.Sub(right.Mul(step))
	}
	if in.Pressed(input.KeyD) {
		delta = delta.Add(right.Mul(step))
	}
	if in.Pressed(input.KeySpace) {
		delta[1] -= step
	}
	if in.Pressed(input.KeyLeftShift) {
		delta[1] += step
	}

	committed := MoveWithCollision(c, query, func() {
		c.Position = c.Position.Add(delta)
		c.LookAt = c.Position.Add(forward)
	})
	c.logMove(committed)
	c.Update()
	return committed
}

// Point the camera at target by deriving yaw and pitch from the direction
// towards it.
func (c *FirstPersonCamera) Face(target types.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	if dir == (types.Vec3{}) {
		return
	}

	c.Yaw = float32(math.Atan2(float64(dir[2]), float64(dir[0])) * 180 / math.Pi)
	c.Pitch = float32(math.Asin(float64(dir[1])) * 180 / math.Pi)
	if c.Pitch > fpsMaxPitch {
		c.Pitch = fpsMaxPitch
	} else if c.Pitch < -fpsMaxPitch {
		c.Pitch = -fpsMaxPitch
	}
	c.LookAt = c.Position.Add(c.forward())
	c.Update()
}

// Update yaw and pitch from the cursor position. The first cursor sample
// only establishes the reference position.
func (c *FirstPersonCamera) look(x, y float64) {
	if !c.haveCursor {
		c.lastX, c.lastY = x, y
		c.haveCursor = true
		return
	}

	dx := float32(x-c.lastX) * c.Sensitivity
	dy := float32(y-c.lastY) * c.Sensitivity
	c.lastX, c.lastY = x, y

	c.Yaw += dx
	c.Pitch -= dy
	if c.Pitch > fpsMaxPitch {
		c.Pitch = fpsMaxPitch
	} else if c.Pitch < -fpsMaxPitch {
		c.Pitch = -fpsMaxPitch
	}
}

// Get the view direction for the current yaw and pitch.
func (c *FirstPersonCamera) forward() types.Vec3 {
	yaw := float64(types.DegToRad(c.Yaw))
	pitch := float64(types.DegToRad(c.Pitch))
	return types.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}
