package scene

import (
	"sync"

	"github.com/achilleasa/lumen/asset/mesh"
	"github.com/achilleasa/lumen/collision"
	"github.com/achilleasa/lumen/types"
)

// Meshes with more vertices than this get a bounding volume hierarchy; the
// rest use a single bounding volume.
const colliderSubdivideThreshold = 10

// An IDAllocator hands out monotonically increasing object ids starting
// at 0.
type IDAllocator struct {
	mu   sync.Mutex
	next int
}

// Allocate the next id.
func (a *IDAllocator) Next() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.next
	a.next++
	return id
}

// An Object is a mesh placed in the world. Its pose is described by a
// position, a per-axis scale and euler rotation angles in degrees that are
// combined into a T * R * S model matrix.
type Object struct {
	id int

	Position types.Vec3
	Scale    types.Vec3
	Rotation types.Vec3

	// Constant angular velocity in degrees per second applied by Move.
	Spin types.Vec3

	Material Material

	mesh     *mesh.Mesh
	modelMat types.Mat4

	colliderType collision.VolumeType
	collider     *collision.Volume
}

// Create an object without a mesh at the origin.
func NewObject(id int) *Object {
	obj := &Object{
		id:       id,
		Scale:    types.Vec3{1, 1, 1},
		Material: DefaultMaterial(),
	}
	obj.UpdateModelMatrix()
	return obj
}

// Create an object for a mesh. The collider is created from the mesh
// vertices using the specified volume type.
func NewObjectFromMesh(id int, m *mesh.Mesh, colliderType collision.VolumeType) *Object {
	obj := NewObject(id)
	obj.colliderType = colliderType
	obj.SetMesh(m)
	obj.UpdateCollider()
	return obj
}

// ID implements Collidable.
func (o *Object) ID() int {
	return o.id
}

// Get the object mesh.
func (o *Object) Mesh() *mesh.Mesh {
	return o.mesh
}

// Replace the object mesh. The collider is rebuilt on the next
// UpdateCollider call.
func (o *Object) SetMesh(m *mesh.Mesh) {
	o.mesh = m
	o.collider = nil
	if m != nil && m.TexturePath != "" && o.Material.TexturePath == "" {
		o.Material.TexturePath = m.TexturePath
	}
}

// Get the volume type used for the object collider.
func (o *Object) ColliderType() collision.VolumeType {
	return o.colliderType
}

// Get the model matrix computed by the last UpdateModelMatrix call.
func (o *Object) ModelMatrix() types.Mat4 {
	return o.modelMat
}

// Get the matrix that transforms mesh normals into world space.
func (o *Object) NormalMatrix() types.Mat3 {
	return o.modelMat.NormalMat3()
}

// Recompute the model matrix as T * R * S.
func (o *Object) UpdateModelMatrix() {
	t := types.Translate4(o.Position)
	r := types.RotateEuler4(o.Rotation)
	s := types.Scale4(o.Scale)
	o.modelMat = t.Mul4(r).Mul4(s)
}

// Build the object collider from the mesh vertices. Objects without
// vertices have no collider.
func (o *Object) CreateCollider(kind collision.VolumeType) {
	o.colliderType = kind
	o.collider = nil
	if o.mesh == nil || len(o.mesh.Vertices) == 0 {
		return
	}

	samples := make([]collision.Sample, len(o.mesh.Vertices))
	for i, v := range o.mesh.Vertices {
		samples[i] = collision.NewVertexSample(v.Pos.Vec3())
	}

	o.collider = collision.NewVolume(kind)
	o.collider.AddSamples(samples)
	if len(samples) > colliderSubdivideThreshold {
		o.collider.BuildHierarchy()
	}
}

// Collider implements Collidable.
func (o *Object) Collider() *collision.Volume {
	return o.collider
}

// Recompute the model matrix and apply it to the collider. The collider is
// created on first use if the object has a mesh.
func (o *Object) UpdateCollider() {
	o.UpdateModelMatrix()
	if o.collider == nil {
		o.CreateCollider(o.colliderType)
	}
	if o.collider != nil {
		o.collider.ApplyTransform(o.modelMat)
	}
}

// Snapshot implements Movable.
func (o *Object) Snapshot() Pose {
	return Pose{Position: o.Position}
}

// Restore implements Movable.
func (o *Object) Restore(p Pose) {
	o.Position = p.Position
}

// Advance the object spin by dt seconds.
func (o *Object) Move(dt float32) {
	if o.Spin != (types.Vec3{}) {
		o.Rotation = o.Rotation.Add(o.Spin.Mul(dt))
	}
	o.UpdateModelMatrix()
}
