package device

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GL is the OpenGL 4.1 core implementation of API.
//
// NewGL must be called on the thread that owns the GL context, after the
// context is current. A single shared vertex array object is bound for the
// lifetime of the backend; the core describes attribute layouts directly
// against the bound buffers.
type GL struct {
	vao uint32

	// Uniform locations are cached per program to avoid repeated
	// gl.GetUniformLocation round-trips every frame.
	uniforms map[uint32]map[string]int32
}

func NewGL() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	g := &GL{uniforms: make(map[uint32]map[string]int32)}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return g, nil
}

// Version reports the GL version string of the current context.
func (g *GL) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Clear clears the color and depth buffers to the given color.
func (g *GL) Clear(r, gr, b, a float32) {
	gl.ClearColor(r, gr, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func glBufferTarget(kind BufferKind) uint32 {
	if kind == ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glUsage(usage Usage) uint32 {
	if usage == DynamicDraw {
		return gl.DYNAMIC_DRAW
	}
	return gl.STATIC_DRAW
}

func glDrawMode(mode DrawMode) uint32 {
	if mode == Lines {
		return gl.LINES
	}
	return gl.TRIANGLES
}

func (g *GL) CreateBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (g *GL) BindBuffer(kind BufferKind, buffer uint32) {
	gl.BindBuffer(glBufferTarget(kind), buffer)
}

func (g *GL) BufferFloats(kind BufferKind, data []float32, usage Usage) {
	gl.BufferData(glBufferTarget(kind), len(data)*4, gl.Ptr(data), glUsage(usage))
}

func (g *GL) BufferUints(kind BufferKind, data []uint32, usage Usage) {
	gl.BufferData(glBufferTarget(kind), len(data)*4, gl.Ptr(data), glUsage(usage))
}

func (g *GL) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (g *GL) CreateTexture() uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	return texture
}

func (g *GL) BindTexture(texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (g *GL) UploadTexture(texture uint32, width, height int, pixels []uint8, mipLevels int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("texture %d: invalid size %dx%d", texture, width, height)
	}
	if len(pixels) != width*height*4 {
		return fmt.Errorf("texture %d: %d pixel bytes for %dx%d RGBA", texture, len(pixels), width, height)
	}

	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	if mipLevels > 1 {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, int32(mipLevels-1))
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	}

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(width),
		int32(height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pixels),
	)
	if mipLevels > 1 {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("texture %d: upload failed with GL error 0x%x", texture, code)
	}
	return nil
}

func (g *GL) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (g *GL) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
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

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}
	return shader, nil
}

func (g *GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (g *GL) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
	delete(g.uniforms, program)
}

func (g *GL) uniformLocation(program uint32, name string) int32 {
	locs := g.uniforms[program]
	if locs == nil {
		locs = make(map[string]int32)
		g.uniforms[program] = locs
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	locs[name] = loc
	return loc
}

func (g *GL) UniformInt(program uint32, name string, value int32) {
	if loc := g.uniformLocation(program, name); loc != -1 {
		gl.Uniform1i(loc, value)
	}
}

func (g *GL) UniformVec4(program uint32, name string, value mgl32.Vec4) {
	if loc := g.uniformLocation(program, name); loc != -1 {
		gl.Uniform4f(loc, value.X(), value.Y(), value.Z(), value.W())
	}
}

func (g *GL) UniformMat4(program uint32, name string, value mgl32.Mat4) {
	if loc := g.uniformLocation(program, name); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &value[0])
	}
}

func (g *GL) EnableVertexAttrib(index uint32, components int32, stride int32, offset int) {
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointerWithOffset(index, components, gl.FLOAT, false, stride, uintptr(offset))
}

func (g *GL) DisableVertexAttrib(index uint32) {
	gl.DisableVertexAttribArray(index)
}

func (g *GL) DrawElements(mode DrawMode, count int32) {
	gl.DrawElementsWithOffset(glDrawMode(mode), count, gl.UNSIGNED_INT, 0)
}

func (g *GL) DrawArrays(mode DrawMode, first, count int32) {
	gl.DrawArrays(glDrawMode(mode), first, count)
}

func (g *GL) LineWidth(width float32) {
	gl.LineWidth(width)
}
