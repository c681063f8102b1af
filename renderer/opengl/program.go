package opengl

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/achilleasa/lumen/asset"
	"github.com/go-gl/gl/v4.1-core/gl"
)

//go:embed shaders/shader.vert shaders/shader.frag
var builtinShaders embed.FS

// A linked shader program with a uniform location cache.
type program struct {
	id       uint32
	uniforms map[string]int32
}

// Load, compile and link shader.vert and shader.frag. If shaderDir is
// empty the built-in shaders are used.
func newProgram(shaderDir string) (*program, error) {
	vertSrc, err := readShader(shaderDir, "shader.vert")
	if err != nil {
		return nil, err
	}
	fragSrc, err := readShader(shaderDir, "shader.frag")
	if err != nil {
		return nil, err
	}

	vert, err := compileShader("shader.vert", vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vert)
	frag, err := compileShader("shader.frag", fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(frag)

	id := gl.CreateProgram()
	gl.AttachShader(id, vert)
	gl.AttachShader(id, frag)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("opengl: could not link shader program: %s", strings.TrimRight(infoLog, "\x00"))
	}

	return &program{
		id:       id,
		uniforms: make(map[string]int32),
	}, nil
}

func readShader(shaderDir, name string) (string, error) {
	if shaderDir == "" {
		data, err := builtinShaders.ReadFile("shaders/" + name)
		if err != nil {
			return "", fmt.Errorf("opengl: missing built-in shader %s", name)
		}
		return string(data), nil
	}

	res, err := asset.NewResource(filepath.Join(shaderDir, name), nil)
	if err != nil {
		return "", err
	}
	data, err := res.ReadAll()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func compileShader(name, source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("opengl: could not compile %s: %s", name, strings.TrimRight(infoLog, "\x00"))
	}
	return shader, nil
}

func (p *program) use() {
	gl.UseProgram(p.id)
}

// Lookup a uniform location. Unknown uniforms map to -1 which GL ignores.
func (p *program) uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

func (p *program) attrib(name string) int32 {
	return gl.GetAttribLocation(p.id, gl.Str(name+"\x00"))
}

func (p *program) delete() {
	gl.DeleteProgram(p.id)
}
