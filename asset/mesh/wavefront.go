package mesh

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/lumen/asset"
	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/types"
)

// A face corner referencing position, uv and normal lists. Unused
// references are set to -1.
type faceCorner [3]int

type wavefrontReader struct {
	logger log.Logger

	mesh *Mesh

	// List of vertices, normals and uv coords.
	vertexList []types.Vec3
	normalList []types.Vec3
	uvList     []types.Vec2

	// Face corners that have already been emitted as mesh vertices.
	cornerToIndex map[faceCorner]uint32
}

func newWavefrontReader() *wavefrontReader {
	return &wavefrontReader{
		logger:        log.New("wavefront reader"),
		vertexList:    make([]types.Vec3, 0),
		normalList:    make([]types.Vec3, 0),
		uvList:        make([]types.Vec2, 0),
		cornerToIndex: make(map[faceCorner]uint32),
	}
}

// Read mesh definition. All groups and objects in the file are merged into
// a single mesh; material libraries are ignored except for the first
// map_Kd entry which is used as the mesh texture.
func (r *wavefrontReader) Read(res *asset.Resource) (*Mesh, error) {
	r.logger.Noticef(`parsing mesh from "%s"`, res.Path())
	start := time.Now()

	r.mesh = &Mesh{
		Name:     strings.TrimSuffix(res.Name(), res.Ext()),
		Vertices: make([]Vertex, 0),
		Indices:  make([]uint32, 0),
	}

	if err := r.parse(res); err != nil {
		return nil, err
	}

	r.logger.Infof(
		"parsed mesh %q in %d ms; vertices: %d, triangles: %d",
		r.mesh.Name, time.Since(start).Nanoseconds()/1e6, len(r.mesh.Vertices), r.mesh.TriangleCount(),
	)
	return r.mesh, nil
}

func (r *wavefrontReader) parse(res *asset.Resource) error {
	var lineNum int
	var namedObject bool

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return emitError(res.Path(), lineNum, "%s", err)
			}
			r.vertexList = append(r.vertexList, v)
		case "vn":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return emitError(res.Path(), lineNum, "%s", err)
			}
			r.normalList = append(r.normalList, v)
		case "vt":
			v, err := parseVec2(lineTokens)
			if err != nil {
				return emitError(res.Path(), lineNum, "%s", err)
			}
			r.uvList = append(r.uvList, v)
		case "o", "g":
			if len(lineTokens) < 2 {
				return emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument for object name; got %d`, lineTokens[0], len(lineTokens)-1)
			}
			if !namedObject {
				r.mesh.Name = lineTokens[1]
				namedObject = true
			}
		case "f":
			if err := r.parseFace(lineTokens); err != nil {
				return emitError(res.Path(), lineNum, "%s", err)
			}
		case "mtllib":
			if len(lineTokens) != 2 {
				return emitError(res.Path(), lineNum, `unsupported syntax for "mtllib"; expected 1 argument; got %d`, len(lineTokens)-1)
			}
			if err := r.parseMaterialTexture(lineTokens[1], res); err != nil {
				r.logger.Warningf("[%s: %d] ignoring material library: %s", res.Path(), lineNum, err)
			}
		default:
			r.logger.Debugf("[%s: %d] skipping unsupported statement %q", res.Path(), lineNum, lineTokens[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return emitError(res.Path(), lineNum, "%s", err)
	}
	return nil
}

// Scan a material library for the first diffuse texture map.
func (r *wavefrontReader) parseMaterialTexture(libName string, objRes *asset.Resource) error {
	if r.mesh.TexturePath != "" {
		return nil
	}

	libRes, err := asset.NewResource(libName, objRes)
	if err != nil {
		return err
	}
	defer libRes.Close()

	scanner := bufio.NewScanner(libRes)
	for scanner.Scan() {
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 2 && lineTokens[0] == "map_Kd" {
			r.mesh.TexturePath = resolveTexture(lineTokens[1], libRes)
			return nil
		}
	}
	return scanner.Err()
}

// Parse face definition. Each face definition consists of 3 or 4 vertex
// arguments. Each vertex argument is comprised of 1, 2 or 3 indices
// separated by a slash character:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Indices start from 1 and may be negative to indicate an offset off the
// end of the vertex/uv/normal list. Quad faces are split into 2 triangles.
func (r *wavefrontReader) parseFace(lineTokens []string) error {
	if len(lineTokens) < 4 || len(lineTokens) > 5 {
		return fmt.Errorf(`unsupported syntax for "f"; expected 3 arguments for triangular face or 4 arguments for a quad face; got %d. Select the triangulation option in your exporter`, len(lineTokens)-1)
	}

	var corners [4]faceCorner
	expIndices := 0
	for arg := 0; arg < len(lineTokens)-1; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first arg defines the format for the following args
		if arg == 0 {
			expIndices = len(vTokens)
		} else if len(vTokens) != expIndices {
			return fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}

		if vTokens[0] == "" {
			return fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		corner := faceCorner{-1, -1, -1}
		var err error
		if corner[0], err = selectFaceCoordIndex(vTokens[0], len(r.vertexList)); err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err)
		}
		if expIndices > 1 && vTokens[1] != "" {
			if corner[1], err = selectFaceCoordIndex(vTokens[1], len(r.uvList)); err != nil {
				return fmt.Errorf("could not parse tex coord for face argument %d: %s", arg, err)
			}
		}
		if expIndices > 2 && vTokens[2] != "" {
			if corner[2], err = selectFaceCoordIndex(vTokens[2], len(r.normalList)); err != nil {
				return fmt.Errorf("could not parse normal coord for face argument %d: %s", arg, err)
			}
		}
		corners[arg] = corner
	}

	triangles := [][3]int{{0, 1, 2}}
	if len(lineTokens) == 5 {
		triangles = append(triangles, [3]int{0, 2, 3})
	}

	for _, tri := range triangles {
		// Generate a face normal for corners that do not define one
		e01 := r.vertexList[corners[tri[1]][0]].Sub(r.vertexList[corners[tri[0]][0]])
		e02 := r.vertexList[corners[tri[2]][0]].Sub(r.vertexList[corners[tri[0]][0]])
		faceNormal := e01.Cross(e02).Normalize()

		for _, c := range tri {
			r.mesh.Indices = append(r.mesh.Indices, r.emitVertex(corners[c], faceNormal))
		}
	}
	return nil
}

// Get the mesh index for a face corner, appending a new vertex if the
// corner has not been seen before.
func (r *wavefrontReader) emitVertex(corner faceCorner, faceNormal types.Vec3) uint32 {
	// Generated normals depend on the face so such corners are never shared.
	shared := corner[2] >= 0
	if index, exists := r.cornerToIndex[corner]; shared && exists {
		return index
	}

	v := Vertex{
		Pos:    r.vertexList[corner[0]].Vec4(1),
		Color:  types.Vec4{1, 1, 1, 1},
		Normal: faceNormal.Vec4(0),
	}
	if corner[1] >= 0 {
		v.UV = r.uvList[corner[1]].Vec3(0).Vec4(0)
	}
	if corner[2] >= 0 {
		v.Normal = r.normalList[corner[2]].Vec4(0)
	}

	index := uint32(len(r.mesh.Vertices))
	r.mesh.Vertices = append(r.mesh.Vertices, v)
	if shared {
		r.cornerToIndex[corner] = index
	}
	return index
}

// Convert a 1-based (or negative, relative to the end of the list) index
// token into a zero-based offset.
func selectFaceCoordIndex(indexToken string, coordListLen int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = int(index - 1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return vOffset, nil
}
