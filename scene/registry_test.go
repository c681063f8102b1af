package scene

import (
	"reflect"
	"testing"

	"github.com/achilleasa/lumen/collision"
	"github.com/achilleasa/lumen/types"
)

func TestRegistryOrder(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []int{5, 1, 3, 0} {
		reg.Put(NewObject(id))
	}

	if exp, got := []int{0, 1, 3, 5}, reg.IDs(); !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected ids %v; got %v", exp, got)
	}

	visited := make([]int, 0)
	reg.ForEach(func(obj *Object) bool {
		visited = append(visited, obj.ID())
		return obj.ID() < 3
	})
	if exp := []int{0, 1, 3}; !reflect.DeepEqual(exp, visited) {
		t.Fatalf("expected ForEach to stop after id 3; visited %v", visited)
	}
}

func TestRegistryReplaceAndRemove(t *testing.T) {
	reg := NewRegistry()
	reg.Put(NewObject(2))

	replacement := NewObject(2)
	replacement.Position = types.Vec3{1, 2, 3}
	reg.Put(replacement)

	if reg.Len() != 1 {
		t.Fatalf("expected replacing an object to keep the registry size at 1; got %d", reg.Len())
	}
	if got, _ := reg.Get(2); got != replacement {
		t.Fatal("expected Get to return the replacement object")
	}

	// A stale handle must not remove the replacement
	if reg.Remove(NewObject(2)) {
		t.Fatal("expected Remove to ignore an object that is not registered")
	}
	if !reg.Remove(replacement) {
		t.Fatal("expected Remove to report the removed object")
	}
	if reg.Remove(replacement) {
		t.Fatal("expected second Remove to report a missing object")
	}
	if _, found := reg.Get(2); found || reg.Len() != 0 {
		t.Fatal("expected registry to be empty")
	}

	var nilReg *Registry
	if nilReg.Len() != 0 || nilReg.Remove(replacement) {
		t.Fatal("expected nil registry to be empty")
	}
}

func TestRegistryPutSyncsCollider(t *testing.T) {
	reg := NewRegistry()
	obj := NewObjectFromMesh(0, sphereMesh(types.Vec3{}, 1), collision.SphereVolume)
	obj.Position = types.Vec3{10, 0, 0}
	reg.Put(obj)

	if got := obj.Collider().Bounds().Center(); !got.ApproxEqual(obj.Position) {
		t.Fatalf("expected collider center %v; got %v", obj.Position, got)
	}

	atOrigin := NewObjectFromMesh(1, sphereMesh(types.Vec3{}, 1), collision.SphereVolume)
	if reg.Collides(atOrigin) {
		t.Fatal("expected no collision against the stale pose of a registered object")
	}
}

func TestRegistryCollides(t *testing.T) {
	reg := NewRegistry()
	self := NewObjectFromMesh(0, sphereMesh(types.Vec3{}, 1), collision.SphereVolume)
	reg.Put(self)
	reg.Put(NewObject(1))

	// Objects never collide with themselves and objects without a mesh
	// have no collider.
	if reg.Collides(self) {
		t.Fatal("expected object not to collide with itself")
	}

	other := NewObjectFromMesh(7, sphereMesh(types.Vec3{0, 0, 1.5}, 1), collision.SphereVolume)
	if !reg.Collides(other) {
		t.Fatal("expected overlapping object to collide")
	}

	other.Position = types.Vec3{10, 0, 0}
	other.UpdateCollider()
	if reg.Collides(other) {
		t.Fatal("expected moved object not to collide")
	}
}
