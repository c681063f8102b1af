package opengl

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/achilleasa/lumen/asset/mesh"
	"github.com/achilleasa/lumen/asset/texture"
	"github.com/achilleasa/lumen/input"
	"github.com/achilleasa/lumen/renderer"
	"github.com/achilleasa/lumen/scene"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Must match MAX_LIGHTS in shader.frag.
const maxLights = 8

// Floats per interleaved vertex: position, color, normal and uv (vec4 each).
const vertexStride = 16

func init() {
	// GLFW event handling must run on the main thread.
	runtime.LockOSThread()
}

// GPU buffers for an object mesh.
type meshBuffers struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// An interactive opengl-based renderer.
type interactiveGLRenderer struct {
	*renderer.FrameLoop

	// opengl handles
	window   *glfw.Window
	program  *program
	buffers  map[*mesh.Mesh]*meshBuffers
	textures map[*texture.Texture]uint32

	// input state filled by the window callbacks
	sync.Mutex
	input input.State
}

// Create a new interactive opengl renderer for world.
func NewInteractive(world *scene.World, opts renderer.Options) (renderer.Renderer, error) {
	loop, err := renderer.NewFrameLoop("opengl renderer", world, opts)
	if err != nil {
		return nil, err
	}

	r := &interactiveGLRenderer{
		FrameLoop: loop,
		buffers:   make(map[*mesh.Mesh]*meshBuffers),
		textures:  make(map[*texture.Texture]uint32),
		input:     input.NewState(),
	}

	if err = r.initGL(opts); err != nil {
		r.Close()
		return nil, err
	}

	r.uploadWorld()
	return r, nil
}

func (r *interactiveGLRenderer) initGL(opts renderer.Options) error {
	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("opengl: failed to initialize glfw: %s", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	title := opts.Title
	if title == "" {
		title = "lumen"
	}
	r.window, err = glfw.CreateWindow(int(opts.FrameW), int(opts.FrameH), title, nil, nil)
	if err != nil {
		return fmt.Errorf("opengl: could not create opengl window: %s", err)
	}
	r.window.MakeContextCurrent()

	if err = gl.Init(); err != nil {
		return fmt.Errorf("opengl: could not init opengl: %s", err)
	}
	r.Logger.Infof("opengl version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0, 0, 0, 1)

	if r.program, err = newProgram(opts.ShaderDir); err != nil {
		return err
	}

	fbW, fbH := r.window.GetFramebufferSize()
	r.onResize(r.window, fbW, fbH)

	// Bind event callbacks
	r.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	r.window.SetKeyCallback(r.onKeyEvent)
	r.window.SetMouseButtonCallback(r.onMouseEvent)
	r.window.SetCursorPosCallback(r.onCursorPosEvent)
	r.window.SetFramebufferSizeCallback(r.onResize)

	return nil
}

func (r *interactiveGLRenderer) Close() {
	r.FrameLoop.Close()
	if r.window == nil {
		return
	}

	r.releaseWorld()
	if r.program != nil {
		r.program.delete()
		r.program = nil
	}
	r.window.Destroy()
	r.window = nil
	glfw.Terminate()
}

func (r *interactiveGLRenderer) Render() error {
	for !r.window.ShouldClose() {
		if r.Interrupted() {
			return renderer.ErrInterrupted
		}
		if r.FrameLimitReached() {
			break
		}

		glfw.PollEvents()

		if r.ReloadAssets() {
			r.releaseWorld()
			r.uploadWorld()
		}

		r.Lock()
		in := r.input.Clone()
		r.Unlock()

		stepStats := r.Step(in)
		if stepStats.CameraReverted {
			r.Logger.Infof("camera move reverted at %v", r.World().Camera.View().Position)
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		r.drawWorld()
		r.window.SwapBuffers()
	}
	return nil
}

// Upload the meshes and textures of all world objects.
func (r *interactiveGLRenderer) uploadWorld() {
	r.World().Objects.ForEach(func(obj *scene.Object) bool {
		if m := obj.Mesh(); m != nil && r.buffers[m] == nil {
			r.buffers[m] = r.uploadMesh(m)
		}
		if tex := obj.Material.Texture; tex != nil {
			if _, exists := r.textures[tex]; !exists {
				r.textures[tex] = uploadTexture(tex)
			}
		}
		return true
	})
	r.Logger.Debugf("uploaded %d meshes and %d textures", len(r.buffers), len(r.textures))
}

// Release the GPU resources for the current world.
func (r *interactiveGLRenderer) releaseWorld() {
	for m, buf := range r.buffers {
		gl.DeleteVertexArrays(1, &buf.vao)
		gl.DeleteBuffers(1, &buf.vbo)
		gl.DeleteBuffers(1, &buf.ebo)
		delete(r.buffers, m)
	}
	for tex, id := range r.textures {
		gl.DeleteTextures(1, &id)
		delete(r.textures, tex)
	}
}

func (r *interactiveGLRenderer) uploadMesh(m *mesh.Mesh) *meshBuffers {
	data := make([]float32, 0, len(m.Vertices)*vertexStride)
	for _, v := range m.Vertices {
		data = append(data, v.Pos[:]...)
		data = append(data, v.Color[:]...)
		data = append(data, v.Normal[:]...)
		data = append(data, v.UV[:]...)
	}

	buf := &meshBuffers{indexCount: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &buf.vao)
	gl.BindVertexArray(buf.vao)

	gl.GenBuffers(1, &buf.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 4*len(data), gl.Ptr(data), gl.STATIC_DRAW)
	}

	gl.GenBuffers(1, &buf.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.ebo)
	if len(m.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(m.Indices), gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	for index, name := range []string{"vPos", "vColor", "vNormal", "vTextureCoord"} {
		loc := r.program.attrib(name)
		if loc < 0 {
			continue
		}
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointerWithOffset(uint32(loc), 4, gl.FLOAT, false, vertexStride*4, uintptr(index*4*4))
	}

	gl.BindVertexArray(0)
	return buf
}

func uploadTexture(tex *texture.Texture) uint32 {
	flipped := tex.FlipY()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	internalFormat, format := int32(gl.RGBA8), uint32(gl.RGBA)
	if flipped.Format == texture.Luminance8 {
		internalFormat, format = gl.R8, gl.RED
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, int32(flipped.Width), int32(flipped.Height), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(flipped.Data))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

func (r *interactiveGLRenderer) drawWorld() {
	camera := r.World().Camera.View()

	r.program.use()
	gl.UniformMatrix4fv(r.program.uniform("uView"), 1, false, &camera.ViewMat[0])
	gl.UniformMatrix4fv(r.program.uniform("uProjection"), 1, false, &camera.ProjMat[0])
	viewPos := camera.Position.Vec4(1)
	gl.Uniform4fv(r.program.uniform("uViewPos"), 1, &viewPos[0])
	r.setupLights()

	r.World().Objects.ForEach(func(obj *scene.Object) bool {
		buf := r.buffers[obj.Mesh()]
		if buf == nil || buf.indexCount == 0 {
			return true
		}

		model := obj.ModelMatrix()
		gl.UniformMatrix4fv(r.program.uniform("uModel"), 1, false, &model[0])
		normal := obj.NormalMatrix()
		gl.UniformMatrix3fv(r.program.uniform("uNormal"), 1, false, &normal[0])
		r.setupMaterial(obj.Material)

		gl.BindVertexArray(buf.vao)
		gl.DrawElements(gl.TRIANGLES, buf.indexCount, gl.UNSIGNED_INT, nil)
		return true
	})
	gl.BindVertexArray(0)
}

func (r *interactiveGLRenderer) setupLights() {
	numLights := len(r.World().Lights)
	if numLights > maxLights {
		numLights = maxLights
	}
	gl.Uniform1i(r.program.uniform("uNumLights"), int32(numLights))

	for i := 0; i < numLights; i++ {
		light := r.World().Lights[i].Params()
		base := fmt.Sprintf("uLights[%d]", i)
		pos := light.Position.Vec4(1)
		dir := light.Direction.Vec4(0)

		gl.Uniform1i(r.program.uniform(base+".type"), int32(light.Type))
		gl.Uniform4fv(r.program.uniform(base+".position"), 1, &pos[0])
		gl.Uniform4fv(r.program.uniform(base+".color"), 1, &light.Color[0])
		gl.Uniform1f(r.program.uniform(base+".intensity"), light.Intensity)
		gl.Uniform4fv(r.program.uniform(base+".direction"), 1, &dir[0])
	}
}

func (r *interactiveGLRenderer) setupMaterial(mat scene.Material) {
	gl.Uniform1f(r.program.uniform("uKd"), mat.Kd)
	gl.Uniform1f(r.program.uniform("uKs"), mat.Ks)
	gl.Uniform1i(r.program.uniform("uShininess"), mat.Shininess)

	texID, hasTexture := r.textures[mat.Texture]
	if !hasTexture || mat.Texture == nil {
		gl.Uniform1i(r.program.uniform("uHasTexture"), 0)
		return
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.Uniform1i(r.program.uniform("uTexture"), 0)
	gl.Uniform1i(r.program.uniform("uHasTexture"), 1)
}

func (r *interactiveGLRenderer) onResize(w *glfw.Window, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	r.World().Camera.View().SetupProjection(float32(width) / float32(height))
}

func (r *interactiveGLRenderer) onKeyEvent(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
		return
	}
	if action == glfw.Repeat {
		return
	}

	r.Lock()
	r.input.SetKey(input.Key(key), action == glfw.Press)
	r.Unlock()
}

func (r *interactiveGLRenderer) onMouseEvent(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mod glfw.ModifierKey) {
	r.Lock()
	r.input.SetButton(input.MouseButton(button), action == glfw.Press)
	r.Unlock()
}

func (r *interactiveGLRenderer) onCursorPosEvent(w *glfw.Window, xPos, yPos float64) {
	r.Lock()
	r.input.SetCursor(xPos, yPos)
	r.Unlock()
}
