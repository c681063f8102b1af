package scene

import (
	"testing"

	"github.com/achilleasa/lumen/asset/mesh"
	"github.com/achilleasa/lumen/collision"
	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/types"
)

func init() {
	log.Discard()
}

// Build a mesh whose vertex sphere is centered at center with the given
// radius along the z axis.
func sphereMesh(center types.Vec3, radius float32) *mesh.Mesh {
	return &mesh.Mesh{
		Name: "sphere",
		Vertices: []mesh.Vertex{
			{Pos: center.Sub(types.Vec3{0, 0, radius}).Vec4(1)},
			{Pos: center.Add(types.Vec3{0, 0, radius}).Vec4(1)},
		},
	}
}

func TestMoveWithCollisionReverts(t *testing.T) {
	reg := NewRegistry()
	reg.Put(NewObjectFromMesh(0, sphereMesh(types.Vec3{0, 0, 0.5}, 1), collision.SphereVolume))

	cam := NewCamera(types.Vec3{}, types.Vec3{0, 0, -1}, types.Vec3{0, 1, 0}, 90, 1, 0.01, 100)
	committed := MoveWithCollision(cam, reg, func() {
		cam.Position = types.Vec3{0, 0, 0.05}
	})

	if committed {
		t.Fatal("expected move into an overlapping collider to be reverted")
	}
	if cam.Position != (types.Vec3{}) {
		t.Fatalf("expected camera to remain at the origin; got %v", cam.Position)
	}
	if exp := (types.Vec3{0, 0, -1}); cam.LookAt != exp {
		t.Fatalf("expected look-at to be restored to %v; got %v", exp, cam.LookAt)
	}

	// The collider must be re-synced with the restored pose
	got := cam.Collider().Bounds().Center()
	if !got.ApproxEqual(types.Vec3{}) {
		t.Fatalf("expected collider to follow the restored pose; got center %v", got)
	}
}

func TestMoveWithCollisionCommits(t *testing.T) {
	reg := NewRegistry()
	reg.Put(NewObjectFromMesh(0, sphereMesh(types.Vec3{0, 0, 10}, 1), collision.SphereVolume))

	cam := NewCamera(types.Vec3{}, types.Vec3{0, 0, -1}, types.Vec3{0, 1, 0}, 90, 1, 0.01, 100)
	exp := types.Vec3{0, 0, 0.05}
	if !MoveWithCollision(cam, reg, func() { cam.Position = exp }) {
		t.Fatal("expected move in free space to be committed")
	}
	if cam.Position != exp {
		t.Fatalf("expected camera at %v; got %v", exp, cam.Position)
	}
	if got := cam.Collider().Bounds().Center(); !got.ApproxEqual(exp) {
		t.Fatalf("expected collider center %v; got %v", exp, got)
	}
}

func TestMoveWithCollisionFreeMoves(t *testing.T) {
	reg := NewRegistry()
	reg.Put(NewObjectFromMesh(0, sphereMesh(types.Vec3{}, 5), collision.SphereVolume))

	type spec struct {
		descr  string
		query  CollisionQuery
		noColl bool
	}
	var nilReg *Registry
	specs := []spec{
		{"nil query", nil, false},
		{"typed nil registry", nilReg, false},
		{"camera without collider", reg, true},
	}

	for index, s := range specs {
		cam := NewCamera(types.Vec3{}, types.Vec3{0, 0, -1}, types.Vec3{0, 1, 0}, 90, 1, 0.01, 100)
		if s.noColl {
			cam.DisableCollider()
		}
		exp := types.Vec3{1, 0, 0}
		if !MoveWithCollision(cam, s.query, func() { cam.Position = exp }) {
			t.Fatalf("[spec %d] expected move with %s to be committed", index, s.descr)
		}
		if cam.Position != exp {
			t.Fatalf("[spec %d] expected camera at %v; got %v", index, exp, cam.Position)
		}
	}
}

func TestCameraBoxCollider(t *testing.T) {
	reg := NewRegistry()
	reg.Put(NewObjectFromMesh(0, sphereMesh(types.Vec3{0, 0, 1.2}, 1), collision.BoxVolume))

	cam := NewCamera(types.Vec3{}, types.Vec3{0, 0, 1}, types.Vec3{0, 1, 0}, 90, 1, 0.01, 100)
	cam.SetColliderType(CameraColliderBox)
	if got := cam.Collider().Type(); got != collision.BoxVolume {
		t.Fatalf("expected a box collider; got %s", got)
	}

	// Object box spans z in [0.2, 2.2]; the camera box reaches z = 0.125
	if !MoveWithCollision(cam, reg, func() {}) {
		t.Fatal("expected camera to start outside the object box")
	}
	if MoveWithCollision(cam, reg, func() { cam.Position = types.Vec3{0, 0, 0.1} }) {
		t.Fatal("expected move into the object box to be reverted")
	}
}
