package mesh

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/lumen/asset"
	"github.com/achilleasa/lumen/types"
)

// The Reader interface is implemented by all mesh readers.
type Reader interface {
	// Read a mesh from a resource.
	Read(*asset.Resource) (*Mesh, error)
}

// Read mesh from file or URL. The reader is selected based on the file
// extension.
func ReadMesh(filename string) (*Mesh, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return ReadMeshResource(res)
}

// Read mesh from an already opened resource.
func ReadMeshResource(res *asset.Resource) (*Mesh, error) {
	var reader Reader
	switch res.Ext() {
	case ".fiis":
		reader = newFiisReader()
	case ".obj":
		reader = newWavefrontReader()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, res.Path())
	}

	m, err := reader.Read(res)
	if err != nil {
		return nil, err
	}
	if err = m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Generate a parse error message in "[file: line] error: msg" format.
func emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)
	if file != "" {
		return fmt.Errorf("[%s: %d] error: %s", file, line, msg)
	}
	return fmt.Errorf("error: %s", msg)
}

// Resolve a texture reference relative to the mesh resource.
func resolveTexture(name string, meshRes *asset.Resource) string {
	resolved, err := asset.ResolvePath(name, meshRes)
	if err != nil {
		return name
	}
	return resolved
}

// Parse a list of comma separated floats. Between min and len(out)
// components must be present; missing components keep their value in out.
func parseFloatList(token string, min int, out []float32) error {
	parts := strings.Split(token, ",")
	if len(parts) < min || len(parts) > len(out) {
		return fmt.Errorf("expected %d to %d comma separated values; got %d", min, len(out), len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return err
		}
		out[i] = float32(v)
	}
	return nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}

// Parse a Vec2 row.
func parseVec2(lineTokens []string) (types.Vec2, error) {
	if len(lineTokens) < 3 {
		return types.Vec2{}, fmt.Errorf(`unsupported syntax for "%s"; expected 2 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec2{}
	for tokIdx := 1; tokIdx <= 2; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}
