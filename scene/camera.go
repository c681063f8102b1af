package scene

import (
	"github.com/achilleasa/lumen/collision"
	"github.com/achilleasa/lumen/input"
	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/types"
)

// The registry id reported by cameras. Object ids are never negative so a
// camera never matches an object during collision queries.
const CameraID = -1

// The half extent of the cube that bounds the camera.
const cameraColliderHalfExtent float32 = 0.125

// Movement speed (units per second) for arrow key camera moves.
const cameraMoveSpeed float32 = 0.1

// The shape used for the camera collider.
type CameraColliderType uint8

const (
	// The sphere inscribed in the camera cube.
	CameraColliderSphere CameraColliderType = iota

	// The camera cube itself.
	CameraColliderBox
)

// The camera type controls the scene camera.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	ViewMat types.Mat4
	ProjMat types.Mat4

	// Vertical FOV in degrees.
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	// Movement speed in units per second.
	Speed float32

	logger   log.Logger
	collider *collision.Volume
}

// Create a camera at pos looking at lookAt. A sphere collider is attached
// to the camera.
func NewCamera(pos, lookAt, up types.Vec3, fov, aspect, near, far float32) *Camera {
	c := &Camera{
		Position: pos,
		LookAt:   lookAt,
		Up:       up,
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Speed:    cameraMoveSpeed,
		logger:   log.New("camera"),
	}
	c.SetColliderType(CameraColliderSphere)
	c.Update()
	return c
}

// Setup camera projection matrix.
func (c *Camera) SetupProjection(aspect float32) {
	c.Aspect = aspect
	c.Update()
}

// Update the view and projection matrices.
func (c *Camera) Update() {
	c.ViewMat = c.ViewMatrix()
	c.ProjMat = c.ProjectionMatrix()
}

// Get the view matrix for the current camera pose.
func (c *Camera) ViewMatrix() types.Mat4 {
	return types.LookAtV(c.Position, c.LookAt, c.Up)
}

// Get the perspective projection matrix.
func (c *Camera) ProjectionMatrix() types.Mat4 {
	return types.Perspective4(c.FOV, c.Aspect, c.Near, c.Far)
}

// Get the normalized view direction.
func (c *Camera) Direction() types.Vec3 {
	return c.LookAt.Sub(c.Position).Normalize()
}

// Replace the camera collider. The collider is built around the origin and
// moved to the camera position by UpdateCollider.
func (c *Camera) SetColliderType(kind CameraColliderType) {
	h := cameraColliderHalfExtent
	switch kind {
	case CameraColliderBox:
		c.collider = collision.NewBoxVolume(types.Vec3{-h, -h, -h}, types.Vec3{h, h, h})
	default:
		c.collider = collision.NewSphereVolume(types.Vec3{}, h)
	}
	c.UpdateCollider()
}

// Remove the camera collider. A camera without a collider moves freely.
func (c *Camera) DisableCollider() {
	c.collider = nil
}

// ID implements Collidable.
func (c *Camera) ID() int {
	return CameraID
}

// Collider implements Collidable.
func (c *Camera) Collider() *collision.Volume {
	return c.collider
}

// Move the collider to the camera position. Camera orientation does not
// affect the collider.
func (c *Camera) UpdateCollider() {
	if c.collider == nil {
		return
	}
	c.collider.ApplyTransform(types.Translate4(c.Position))
}

// Snapshot implements Movable.
func (c *Camera) Snapshot() Pose {
	return Pose{Position: c.Position, LookAt: c.LookAt}
}

// Restore implements Movable.
func (c *Camera) Restore(p Pose) {
	c.Position = p.Position
	c.LookAt = p.LookAt
}

// View implements MovableCamera.
func (c *Camera) View() *Camera {
	return c
}

// Translate the camera along the x and z axes using the arrow keys. The move
// is reverted if the camera collider hits any object reported by query.
// Returns false if the move was reverted.
func (c *Camera) Move(dt float32, in input.State, query CollisionQuery) bool {
	var delta types.Vec3
	step := dt * c.Speed
	if in.Pressed(input.KeyLeft) {
		delta[0] -= step
	}
	if in.Pressed(input.KeyRight) {
		delta[0] += step
	}
	if in.Pressed(input.KeyUp) {
		delta[2] += step
	}
	if in.Pressed(input.KeyDown) {
		delta[2] -= step
	}

	committed := MoveWithCollision(c, query, func() {
		c.Position = c.Position.Add(delta)
		c.LookAt = c.LookAt.Add(delta)
	})
	c.logMove(committed)
	c.Update()
	return committed
}

func (c *Camera) logMove(committed bool) {
	if !committed {
		c.logger.Infof("collision detected; camera reverted to %v", c.Position)
		return
	}
	c.logger.Debugf("camera moved to %v", c.Position)
}
