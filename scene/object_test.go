package scene

import (
	"testing"

	"github.com/achilleasa/lumen/asset/mesh"
	"github.com/achilleasa/lumen/collision"
	"github.com/achilleasa/lumen/types"
)

func lineMesh(vertexCount int) *mesh.Mesh {
	m := &mesh.Mesh{Name: "line"}
	for i := 0; i < vertexCount; i++ {
		m.Vertices = append(m.Vertices, mesh.Vertex{Pos: types.Vec4{float32(i), 0, 0, 1}})
	}
	return m
}

func TestObjectModelMatrix(t *testing.T) {
	obj := NewObject(0)
	obj.Position = types.Vec3{1, 2, 3}
	obj.Scale = types.Vec3{2, 2, 2}
	obj.Rotation = types.Vec3{0, 90, 0}
	obj.UpdateModelMatrix()

	// S then R then T: (1,0,0) -> (2,0,0) -> (0,0,-2) -> (1,2,1)
	got := obj.ModelMatrix().MulPoint(types.Vec3{1, 0, 0})
	if exp := (types.Vec3{1, 2, 1}); !got.ApproxEqual(exp) {
		t.Fatalf("expected transformed point %v; got %v", exp, got)
	}

	// Uniform scale only changes the normal length; the direction follows R
	normal := obj.NormalMatrix()
	got = types.Vec3{
		normal[0]*1 + normal[3]*0 + normal[6]*0,
		normal[1]*1 + normal[4]*0 + normal[7]*0,
		normal[2]*1 + normal[5]*0 + normal[8]*0,
	}
	if exp := (types.Vec3{0, 0, -0.5}); !got.ApproxEqual(exp) {
		t.Fatalf("expected transformed normal %v; got %v", exp, got)
	}
}

func TestObjectLazyCollider(t *testing.T) {
	obj := NewObject(0)
	obj.UpdateCollider()
	if obj.Collider() != nil {
		t.Fatal("expected object without mesh to have no collider")
	}

	obj.SetMesh(lineMesh(4))
	if obj.Collider() != nil {
		t.Fatal("expected collider to be created lazily")
	}

	obj.Position = types.Vec3{0, 5, 0}
	obj.UpdateCollider()
	if obj.Collider() == nil {
		t.Fatal("expected UpdateCollider to create the collider")
	}
	if got, exp := obj.Collider().Bounds().Center(), (types.Vec3{1.5, 5, 0}); !got.ApproxEqual(exp) {
		t.Fatalf("expected collider center %v; got %v", exp, got)
	}
}

func TestObjectColliderHierarchyThreshold(t *testing.T) {
	type spec struct {
		vertices int
		leaf     bool
	}
	specs := []spec{
		{1, true},
		{colliderSubdivideThreshold, true},
		{colliderSubdivideThreshold + 1, false},
	}

	for index, s := range specs {
		obj := NewObjectFromMesh(index, lineMesh(s.vertices), collision.BoxVolume)
		if got := obj.Collider().IsLeaf(); got != s.leaf {
			t.Fatalf("[spec %d] expected collider for %d vertices to be a leaf: %t; got %t", index, s.vertices, s.leaf, got)
		}
		if got := obj.Collider().Stats().Samples; got != s.vertices {
			t.Fatalf("[spec %d] expected %d collider samples; got %d", index, s.vertices, got)
		}
	}
}

func TestObjectSpin(t *testing.T) {
	obj := NewObject(0)
	obj.Spin = types.Vec3{0, 90, 0}
	obj.Move(0.5)

	if exp := (types.Vec3{0, 45, 0}); !obj.Rotation.ApproxEqual(exp) {
		t.Fatalf("expected rotation %v; got %v", exp, obj.Rotation)
	}
	if got := obj.ModelMatrix(); !got.ApproxEqual(types.RotateEuler4(obj.Rotation)) {
		t.Fatalf("expected Move to refresh the model matrix; got %v", got)
	}
}

func TestObjectMaterialTexture(t *testing.T) {
	m := lineMesh(3)
	m.TexturePath = "cube.png"

	obj := NewObjectFromMesh(0, m, collision.SphereVolume)
	if obj.Material.TexturePath != "cube.png" {
		t.Fatalf("expected material to pick up the mesh texture; got %q", obj.Material.TexturePath)
	}
	if obj.Material.Kd != DefaultKd || obj.Material.Ks != DefaultKs || obj.Material.Shininess != DefaultShininess {
		t.Fatalf("expected default material coefficients; got %+v", obj.Material)
	}
}

func TestIDAllocator(t *testing.T) {
	var alloc IDAllocator
	for exp := 0; exp < 3; exp++ {
		if got := alloc.Next(); got != exp {
			t.Fatalf("expected id %d; got %d", exp, got)
		}
	}
}
