package asset

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLocalResource(t *testing.T) {
	_, thisFile, _, _ := runtime.Caller(0)
	res, err := NewResource(thisFile, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if res.IsRemote() {
		t.Fatal("expected local resource")
	}
	if got, ok := res.LocalPath(); !ok || got != filepath.Clean(thisFile) {
		t.Fatalf("expected local path %s; got %s (%t)", thisFile, got, ok)
	}
	if res.Ext() != ".go" {
		t.Fatalf("expected extension .go; got %s", res.Ext())
	}
}

func TestMissingLocalResource(t *testing.T) {
	_, err := NewResource("/definitely/not/here.fiis", nil)
	if err == nil || !strings.HasPrefix(err.Error(), "resource: could not open '/definitely/not/here.fiis'") {
		t.Fatalf("expected open error; got %v", err)
	}
}

func TestRelativeLocalResource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mesh.fiis"), []byte("mesh"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "wood.png"), []byte("texture"), 0644); err != nil {
		t.Fatal(err)
	}

	meshRes, err := NewResource(filepath.Join(dir, "mesh.fiis"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer meshRes.Close()

	texRes, err := NewResource("wood.png", meshRes)
	if err != nil {
		t.Fatal(err)
	}
	data, err := texRes.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "texture" {
		t.Fatalf("expected to read the texture payload; got %q", string(data))
	}
	if texRes.Name() != "wood.png" {
		t.Fatalf("expected name wood.png; got %s", texRes.Name())
	}
}

func TestHttpResource(t *testing.T) {
	_, thisFile, _, _ := runtime.Caller(0)
	thisDir := filepath.Dir(thisFile)

	server := httptest.NewServer(http.FileServer(http.Dir(thisDir)))
	defer server.Close()

	fetchUrl := server.URL + "/" + filepath.Base(thisFile)
	res, err := NewResource(fetchUrl, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if !res.IsRemote() {
		t.Fatal("expected remote resource")
	}
	if _, ok := res.LocalPath(); ok {
		t.Fatal("expected remote resource to have no local path")
	}

	fetchUrl = server.URL + "/file-not-found.foo"
	expError := fmt.Sprintf("resource: could not fetch '%s': status %d", fetchUrl, 404)
	_, err = NewResource(fetchUrl, nil)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}

func TestRelativeRemoteResources(t *testing.T) {
	serverHits := 0
	serverFn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serverHits++
		switch r.URL.Path {
		case "/meshes/cube.obj", "/meshes/cube.png":
			w.Write([]byte("OK"))
		default:
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(serverFn)
	defer server.Close()

	res1, err := NewResource(server.URL+"/meshes/cube.obj", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res1.Close()
	res2, err := NewResource("cube.png", res1)
	if err != nil {
		t.Fatal(err)
	}
	defer res2.Close()

	if serverHits != 2 {
		t.Fatalf("expected server to receive 2 requests; got %d", serverHits)
	}
}

func TestUnsupportedResourceScheme(t *testing.T) {
	expError := "resource: unsupported scheme 'gopher'"
	_, err := NewResource("gopher://digging.go", nil)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}

func TestStreamResource(t *testing.T) {
	res := NewResourceFromStream("embedded/plane.OBJ", strings.NewReader("v 0 0 0"))
	if res.Ext() != ".obj" {
		t.Fatalf("expected extension .obj; got %s", res.Ext())
	}
	if _, ok := res.LocalPath(); ok {
		t.Fatal("expected stream resource to have no local path")
	}
	data, err := res.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v 0 0 0" {
		t.Fatalf("expected stream payload; got %q", string(data))
	}
}

func TestResolvePath(t *testing.T) {
	parent := NewResourceFromStream("/assets/meshes/cube.fiis", strings.NewReader(""))
	remote := NewResourceFromStream("http://example.com/meshes/cube.obj", strings.NewReader(""))

	type spec struct {
		in    string
		relTo *Resource
		exp   string
	}
	specs := []spec{
		{"wood.png", parent, "/assets/meshes/wood.png"},
		{"../tex/wood.png", parent, "/assets/tex/wood.png"},
		{"/abs/wood.png", parent, "/abs/wood.png"},
		{"wood.png", remote, "http://example.com/meshes/wood.png"},
		{"https://cdn.example.com/wood.png", parent, "https://cdn.example.com/wood.png"},
		{"wood.png", nil, "wood.png"},
	}

	for index, s := range specs {
		got, err := ResolvePath(s.in, s.relTo)
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if got != s.exp {
			t.Fatalf("[spec %d] expected resolved path %s; got %s", index, s.exp, got)
		}
	}
}
