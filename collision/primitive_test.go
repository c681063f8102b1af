package collision

import (
	"testing"

	"github.com/achilleasa/lumen/types"
)

func TestSphereVsSphere(t *testing.T) {
	type spec struct {
		a, b Sphere
		exp  bool
	}
	specs := []spec{
		// Touching spheres collide
		{Sphere{types.Vec3{0, 0, 0}, 1}, Sphere{types.Vec3{2, 0, 0}, 1}, true},
		{Sphere{types.Vec3{0, 0, 0}, 1}, Sphere{types.Vec3{2.01, 0, 0}, 1}, false},
		{Sphere{types.Vec3{0, 0, 0}, 0.5}, Sphere{types.Vec3{0, 0.5, 0}, 0.1}, true},
		{Sphere{types.Vec3{0, 0, 0}, 0}, Sphere{types.Vec3{0, 0, 0}, 0}, true},
		{Sphere{types.Vec3{-3, 4, 0}, 2}, Sphere{types.Vec3{0, 0, 0}, 3}, true},
	}

	for index, s := range specs {
		if got := SphereVsSphere(s.a, s.b); got != s.exp {
			t.Fatalf("[spec %d] expected SphereVsSphere to return %t; got %t", index, s.exp, got)
		}
		if got := SphereVsSphere(s.b, s.a); got != s.exp {
			t.Fatalf("[spec %d] expected swapped SphereVsSphere to return %t; got %t", index, s.exp, got)
		}
	}
}

func TestBoxVsBox(t *testing.T) {
	type spec struct {
		a, b Box
		exp  bool
	}
	specs := []spec{
		// Touching corner
		{Box{types.Vec3{0, 0, 0}, types.Vec3{1, 1, 1}}, Box{types.Vec3{1, 1, 1}, types.Vec3{2, 2, 2}}, true},
		{Box{types.Vec3{0, 0, 0}, types.Vec3{1, 1, 1}}, Box{types.Vec3{1.01, 1.01, 1.01}, types.Vec3{2, 2, 2}}, false},
		// Separated along a single axis
		{Box{types.Vec3{0, 0, 0}, types.Vec3{1, 1, 1}}, Box{types.Vec3{0, 0, 2}, types.Vec3{1, 1, 3}}, false},
		{Box{types.Vec3{0, 0, 0}, types.Vec3{1, 1, 1}}, Box{types.Vec3{0, -3, 0}, types.Vec3{1, -2, 1}}, false},
		// Containment
		{Box{types.Vec3{-5, -5, -5}, types.Vec3{5, 5, 5}}, Box{types.Vec3{0, 0, 0}, types.Vec3{1, 1, 1}}, true},
	}

	for index, s := range specs {
		if got := BoxVsBox(s.a, s.b); got != s.exp {
			t.Fatalf("[spec %d] expected BoxVsBox to return %t; got %t", index, s.exp, got)
		}
		if got := BoxVsBox(s.b, s.a); got != s.exp {
			t.Fatalf("[spec %d] expected swapped BoxVsBox to return %t; got %t", index, s.exp, got)
		}
	}
}

func TestSphereVsBox(t *testing.T) {
	box := Box{types.Vec3{0, 0, 0}, types.Vec3{2, 2, 2}}

	type spec struct {
		s   Sphere
		exp bool
	}
	specs := []spec{
		// Closest point is (2, 1, 1) at distance 1
		{Sphere{types.Vec3{3, 1, 1}, 1.0}, true},
		{Sphere{types.Vec3{3, 1, 1}, 0.99}, false},
		// Center inside the box
		{Sphere{types.Vec3{1, 1, 1}, 0.01}, true},
		// Corner region
		{Sphere{types.Vec3{3, 3, 3}, 1.7}, false},
		{Sphere{types.Vec3{3, 3, 3}, 1.75}, true},
	}

	for index, s := range specs {
		if got := SphereVsBox(s.s, box); got != s.exp {
			t.Fatalf("[spec %d] expected SphereVsBox to return %t; got %t", index, s.exp, got)
		}
		if got := BoxVsSphere(box, s.s); got != s.exp {
			t.Fatalf("[spec %d] expected BoxVsSphere to return %t; got %t", index, s.exp, got)
		}
	}
}

func TestBoxTransformRefit(t *testing.T) {
	cube := Box{types.Vec3{-1, -1, -1}, types.Vec3{1, 1, 1}}

	got := cube.Transform(types.RotateEuler4(types.Vec3{0, 90, 0}))
	if !got.Min.ApproxEqual(cube.Min) || !got.Max.ApproxEqual(cube.Max) {
		t.Fatalf("expected rotated symmetric cube to remain %v; got %v", cube, got)
	}

	// A 45 degree rotation grows the XZ extent by sqrt(2)
	got = cube.Transform(types.RotateEuler4(types.Vec3{0, 45, 0}))
	exp := Box{types.Vec3{-1.4142135, -1, -1.4142135}, types.Vec3{1.4142135, 1, 1.4142135}}
	if !got.Min.ApproxEqual(exp.Min) || !got.Max.ApproxEqual(exp.Max) {
		t.Fatalf("expected rotated cube to be re-fitted to %v; got %v", exp, got)
	}
}

func TestSphereTransform(t *testing.T) {
	s := Sphere{types.Vec3{1, 0, 0}, 2}

	m := types.Translate4(types.Vec3{0, 5, 0}).Mul4(types.Scale4(types.Vec3{1, 3, 2}))
	got := s.Transform(m)

	if exp := (types.Vec3{1, 5, 0}); !got.Center.ApproxEqual(exp) {
		t.Fatalf("expected transformed center %v; got %v", exp, got.Center)
	}
	if got.Radius != 6 {
		t.Fatalf("expected radius to be scaled by the largest axis scale to 6; got %f", got.Radius)
	}
}
