package mesh

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/achilleasa/lumen/asset"
	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/types"
)

func init() {
	log.Discard()
}

const triangleFiis = `// vertices
1 0,0,0
2 1,0,0
3 0,1,0
end
// colors
1; 1,0,0,1
2; 0,1,0
3; 0,0,1,0.5
end
1: 0,0,1
end
1: 0,0
2: 1,0
3: 0,1
end
wood.png
end
1 1,2,3
end
`

func TestReadFiis(t *testing.T) {
	res := asset.NewResourceFromStream("meshes/triangle.fiis", strings.NewReader(triangleFiis))
	m, err := ReadMeshResource(res)
	if err != nil {
		t.Fatal(err)
	}

	if m.Name != "triangle" {
		t.Fatalf("expected mesh name to be triangle; got %q", m.Name)
	}
	if len(m.Vertices) != 3 {
		t.Fatalf("expected 3 vertices; got %d", len(m.Vertices))
	}
	if exp := []uint32{0, 1, 2}; len(m.Indices) != 3 || m.Indices[0] != exp[0] || m.Indices[1] != exp[1] || m.Indices[2] != exp[2] {
		t.Fatalf("expected indices %v; got %v", exp, m.Indices)
	}

	type spec struct {
		pos, color types.Vec4
	}
	specs := []spec{
		{types.Vec4{0, 0, 0, 1}, types.Vec4{1, 0, 0, 1}},
		{types.Vec4{1, 0, 0, 1}, types.Vec4{0, 1, 0, 1}},
		{types.Vec4{0, 1, 0, 1}, types.Vec4{0, 0, 1, 0.5}},
	}
	for index, s := range specs {
		if m.Vertices[index].Pos != s.pos {
			t.Fatalf("[vertex %d] expected pos %v; got %v", index, s.pos, m.Vertices[index].Pos)
		}
		if m.Vertices[index].Color != s.color {
			t.Fatalf("[vertex %d] expected color %v; got %v", index, s.color, m.Vertices[index].Color)
		}
	}

	if exp := (types.Vec4{0, 0, 1, 0}); m.Vertices[0].Normal != exp {
		t.Fatalf("expected normal %v; got %v", exp, m.Vertices[0].Normal)
	}
	if exp := (types.Vec4{0, 1, 0, 0}); m.Vertices[2].UV != exp {
		t.Fatalf("expected uv %v; got %v", exp, m.Vertices[2].UV)
	}
	if !strings.HasSuffix(m.TexturePath, filepath.Join("meshes", "wood.png")) {
		t.Fatalf("expected texture to be resolved next to the mesh; got %q", m.TexturePath)
	}
}

func TestReadFiisWithMissingSections(t *testing.T) {
	payload := "1 0,0,0\n2 1,1,1\n3 2,2,2\nend\n"
	res := asset.NewResourceFromStream("points.fiis", strings.NewReader(payload))
	m, err := ReadMeshResource(res)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 3 || len(m.Indices) != 0 {
		t.Fatalf("expected 3 vertices and no faces; got %d vertices and %d indices", len(m.Vertices), len(m.Indices))
	}
	if exp := [2]types.Vec3{{0, 0, 0}, {2, 2, 2}}; m.BBox() != exp {
		t.Fatalf("expected bbox %v; got %v", exp, m.BBox())
	}
}

func TestFiisErrors(t *testing.T) {
	type spec struct {
		payload string
		expErr  string
	}
	specs := []spec{
		{
			"1 0,0,0\n2 1,0\nend\n",
			"[bad.fiis: 2] error: vertices section: expected 3 to 3 comma separated values; got 2",
		},
		{
			"1 0,0,0\nend\n4; 1,1,1\nend\n",
			"[bad.fiis: 3] error: colors section: vertex id 4 out of range; mesh has 1 vertices",
		},
		{
			"1 0,0,0\n2 1,0,0\n3 0,1,0\nend\nend\nend\nend\nend\n// faces\n1 1,2,4\nend\n",
			"[bad.fiis: 10] error: faces section: vertex id 4 out of range; mesh has 3 vertices",
		},
		{
			"1 0,0,0\nend\nend\nend\nend\nend\n1 1,1\nend\n",
			"[bad.fiis: 7] error: faces section: expected 3 vertex ids for triangular face; got 2",
		},
	}

	for index, s := range specs {
		res := asset.NewResourceFromStream("bad.fiis", strings.NewReader(s.payload))
		_, err := ReadMeshResource(res)
		if err == nil || err.Error() != s.expErr {
			t.Fatalf("[spec %d] expected error %q; got %v", index, s.expErr, err)
		}
	}
}

const quadObj = `# a quad and a triangle
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl unused
f 1/1/1 2/2/1 3/3/1 4/4/1
f -4 -3 -2
`

func TestReadWavefront(t *testing.T) {
	res := asset.NewResourceFromStream("quad.obj", strings.NewReader(quadObj))
	m, err := ReadMeshResource(res)
	if err != nil {
		t.Fatal(err)
	}

	if m.Name != "quad" {
		t.Fatalf("expected mesh name quad; got %q", m.Name)
	}
	if m.TriangleCount() != 3 {
		t.Fatalf("expected 3 triangles; got %d", m.TriangleCount())
	}

	// 4 shared quad corners plus 3 corners with generated normals.
	if len(m.Vertices) != 7 {
		t.Fatalf("expected 7 vertices; got %d", len(m.Vertices))
	}

	expIndices := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6}
	for i, exp := range expIndices {
		if m.Indices[i] != exp {
			t.Fatalf("expected indices %v; got %v", expIndices, m.Indices)
		}
	}

	if exp := (types.Vec4{1, 1, 0, 0}); m.Vertices[2].UV != exp {
		t.Fatalf("expected uv %v; got %v", exp, m.Vertices[2].UV)
	}
	if exp := (types.Vec4{0, 0, 1, 0}); m.Vertices[5].Normal != exp {
		t.Fatalf("expected generated normal %v; got %v", exp, m.Vertices[5].Normal)
	}
	if exp := (types.Vec4{0, 0, 0, 1}); m.Vertices[4].Pos != exp {
		t.Fatalf("expected negative index to select the first vertex; got %v", m.Vertices[4].Pos)
	}
}

func TestWavefrontErrors(t *testing.T) {
	type spec struct {
		payload string
		expErr  string
	}
	specs := []spec{
		{"v 0 0 0\nv 1 1 1\nf 1 2 9\n", "[bad.obj: 3] error: could not parse vertex coord for face argument 2: index out of bounds"},
		{"v 0 0\n", `[bad.obj: 1] error: unsupported syntax for "v"; expected 3 arguments; got 2`},
		{"v 0 0 0\nf 1 1\n", `[bad.obj: 2] error: unsupported syntax for "f"; expected 3 arguments for triangular face or 4 arguments for a quad face; got 2. Select the triangulation option in your exporter`},
		{"v 0 0 0\nvt 0 0\nf 1/1 1 1\n", "[bad.obj: 3] error: expected each face argument to contain 2 indices; arg 1 contains 1 indices"},
	}

	for index, s := range specs {
		res := asset.NewResourceFromStream("bad.obj", strings.NewReader(s.payload))
		_, err := ReadMeshResource(res)
		if err == nil || err.Error() != s.expErr {
			t.Fatalf("[spec %d] expected error %q; got %v", index, s.expErr, err)
		}
	}
}

func TestWavefrontMaterialTexture(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"tri.obj": "mtllib tri.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n",
		"tri.mtl": "newmtl base\nKd 1 1 1\nmap_Kd stone.png\n",
	}
	for name, payload := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(payload), 0644); err != nil {
			t.Fatal(err)
		}
	}

	m, err := ReadMesh(filepath.Join(dir, "tri.obj"))
	if err != nil {
		t.Fatal(err)
	}
	if exp := filepath.Join(dir, "stone.png"); m.TexturePath != exp {
		t.Fatalf("expected texture path %s; got %s", exp, m.TexturePath)
	}
}

func TestUnsupportedMeshFormat(t *testing.T) {
	res := asset.NewResourceFromStream("model.stl", strings.NewReader(""))
	_, err := ReadMeshResource(res)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat; got %v", err)
	}
}

func TestValidate(t *testing.T) {
	m := &Mesh{
		Name:     "broken",
		Vertices: make([]Vertex, 3),
		Indices:  []uint32{0, 1, 5},
	}
	expErr := `mesh "broken": index 5 at position 2 out of range; mesh has 3 vertices`
	if err := m.Validate(); err == nil || err.Error() != expErr {
		t.Fatalf("expected error %q; got %v", expErr, err)
	}

	m.Indices = []uint32{0, 1}
	if err := m.Validate(); err == nil {
		t.Fatal("expected error for partial triangle")
	}
}
