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

// The fiis format is a sequence of sections, each one terminated by a line
// containing "end":
//
//	vertices:            <id> x,y,z
//	colors:              <id>; r,g,b[,a]
//	normals:             <id>: x,y,z[,w]
//	texture coordinates: <id>: u,v
//	texture file:        <file name>
//	faces:               <id> v0,v1,v2
//
// Vertex ids are 1-based. Lines starting with "//" are comments. Reaching
// the end of the file terminates all remaining sections.
type fiisReader struct {
	logger log.Logger

	res     *asset.Resource
	scanner *bufio.Scanner
	lineNum int
	eof     bool

	mesh *Mesh
}

type fiisSection struct {
	name  string
	parse func(fields []string, line string) error
}

func newFiisReader() *fiisReader {
	return &fiisReader{
		logger: log.New("fiis reader"),
	}
}

// Read mesh definition.
func (r *fiisReader) Read(res *asset.Resource) (*Mesh, error) {
	r.logger.Noticef(`parsing mesh from "%s"`, res.Path())
	start := time.Now()

	r.res = res
	r.scanner = bufio.NewScanner(res)
	r.mesh = &Mesh{
		Name:     strings.TrimSuffix(res.Name(), res.Ext()),
		Vertices: make([]Vertex, 0),
		Indices:  make([]uint32, 0),
	}

	sections := []fiisSection{
		{"vertices", r.parseVertex},
		{"colors", r.parseColor},
		{"normals", r.parseNormal},
		{"texture coordinates", r.parseTexCoord},
		{"texture file", r.parseTextureFile},
		{"faces", r.parseFace},
	}
	for _, section := range sections {
		if err := r.readSection(section); err != nil {
			return nil, err
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, emitError(res.Path(), r.lineNum, "%s", err)
	}

	r.logger.Infof(
		"parsed mesh %q in %d ms; vertices: %d, triangles: %d",
		r.mesh.Name, time.Since(start).Nanoseconds()/1e6, len(r.mesh.Vertices), r.mesh.TriangleCount(),
	)
	return r.mesh, nil
}

func (r *fiisReader) readSection(section fiisSection) error {
	for !r.eof {
		if !r.scanner.Scan() {
			r.eof = true
			break
		}
		r.lineNum++

		line := strings.TrimSpace(r.scanner.Text())
		if line == "end" {
			return nil
		}
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if err := section.parse(strings.Fields(line), line); err != nil {
			return emitError(r.res.Path(), r.lineNum, "%s section: %s", section.name, err.Error())
		}
	}
	return nil
}

func (r *fiisReader) parseVertex(fields []string, _ string) error {
	if len(fields) < 2 {
		return fmt.Errorf("expected vertex id and position; got %q", strings.Join(fields, " "))
	}

	var pos [3]float32
	if err := parseFloatList(strings.Join(fields[1:], ""), 3, pos[:]); err != nil {
		return err
	}

	r.mesh.Vertices = append(r.mesh.Vertices, Vertex{
		Pos:   types.Vec4{pos[0], pos[1], pos[2], 1},
		Color: types.Vec4{1, 1, 1, 1},
	})
	return nil
}

func (r *fiisReader) parseColor(fields []string, _ string) error {
	v, values, err := r.vertexAttribute(fields, 3, 4)
	if err != nil {
		return err
	}
	if len(values) == 3 {
		values = append(values, 1)
	}
	v.Color = types.Vec4{values[0], values[1], values[2], values[3]}
	return nil
}

func (r *fiisReader) parseNormal(fields []string, _ string) error {
	v, values, err := r.vertexAttribute(fields, 3, 4)
	if err != nil {
		return err
	}
	v.Normal = types.Vec3{values[0], values[1], values[2]}.Vec4(0)
	return nil
}

func (r *fiisReader) parseTexCoord(fields []string, _ string) error {
	v, values, err := r.vertexAttribute(fields, 2, 2)
	if err != nil {
		return err
	}
	v.UV = types.Vec4{values[0], values[1], 0, 0}
	return nil
}

func (r *fiisReader) parseTextureFile(_ []string, line string) error {
	if r.mesh.TexturePath != "" {
		r.logger.Warningf("mesh %q defines multiple textures; using %q", r.mesh.Name, line)
	}
	r.mesh.TexturePath = resolveTexture(line, r.res)
	return nil
}

func (r *fiisReader) parseFace(fields []string, _ string) error {
	if len(fields) < 2 {
		return fmt.Errorf("expected face id and 3 vertex ids; got %q", strings.Join(fields, " "))
	}

	tokens := strings.Split(strings.Join(fields[1:], ""), ",")
	if len(tokens) != 3 {
		return fmt.Errorf("expected 3 vertex ids for triangular face; got %d", len(tokens))
	}
	for _, tok := range tokens {
		index, err := r.vertexIndex(tok)
		if err != nil {
			return err
		}
		r.mesh.Indices = append(r.mesh.Indices, uint32(index))
	}
	return nil
}

// Parse a "<id><sep> v0,v1,..." line and return the referenced vertex and
// the parsed attribute values.
func (r *fiisReader) vertexAttribute(fields []string, minValues, maxValues int) (*Vertex, []float32, error) {
	if len(fields) < 2 {
		return nil, nil, fmt.Errorf("expected vertex id and values; got %q", strings.Join(fields, " "))
	}

	index, err := r.vertexIndex(fields[0])
	if err != nil {
		return nil, nil, err
	}

	values := make([]float32, maxValues)
	valueList := strings.Join(fields[1:], "")
	if err = parseFloatList(valueList, minValues, values); err != nil {
		return nil, nil, err
	}
	values = values[:strings.Count(valueList, ",")+1]

	return &r.mesh.Vertices[index], values, nil
}

// Convert a 1-based vertex id (optionally followed by a ';' or ':'
// separator) into a zero-based index.
func (r *fiisReader) vertexIndex(token string) (int, error) {
	id, err := strconv.Atoi(strings.TrimRight(strings.TrimSpace(token), ";:"))
	if err != nil {
		return -1, fmt.Errorf("invalid vertex id %q", token)
	}
	if id < 1 || id > len(r.mesh.Vertices) {
		return -1, fmt.Errorf("vertex id %d out of range; mesh has %d vertices", id, len(r.mesh.Vertices))
	}
	return id - 1, nil
}
