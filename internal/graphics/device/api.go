package device

import "github.com/go-gl/mathgl/mgl32"

// BufferKind selects the binding target for buffer operations.
type BufferKind int

const (
	ArrayBuffer BufferKind = iota
	ElementArrayBuffer
)

// Usage hints how often a buffer's contents will change after upload.
type Usage int

const (
	StaticDraw Usage = iota
	DynamicDraw
)

// DrawMode selects the primitive assembly for draw calls.
type DrawMode int

const (
	Triangles DrawMode = iota
	Lines
)

// API is the narrow graphics backend the rendering core issues all GPU work
// through. GL implements it against OpenGL 4.1 core; Recorder implements it
// as a call log for diagnostics and tests.
//
// All methods must be called from the thread that owns the graphics context.
type API interface {
	// Clear resets the color and depth buffers to the given color.
	Clear(r, g, b, a float32)

	// Buffers
	CreateBuffer() uint32
	BindBuffer(kind BufferKind, buffer uint32)
	BufferFloats(kind BufferKind, data []float32, usage Usage)
	BufferUints(kind BufferKind, data []uint32, usage Usage)
	DeleteBuffer(buffer uint32)

	// Textures
	CreateTexture() uint32
	BindTexture(texture uint32)
	UploadTexture(texture uint32, width, height int, pixels []uint8, mipLevels int) error
	DeleteTexture(texture uint32)

	// Programs
	CompileProgram(vertexSrc, fragmentSrc string) (uint32, error)
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// Uniforms (addressed by name on the given program; the program must be
	// in use when these are called)
	UniformInt(program uint32, name string, value int32)
	UniformVec4(program uint32, name string, value mgl32.Vec4)
	UniformMat4(program uint32, name string, value mgl32.Mat4)

	// Vertex attributes
	EnableVertexAttrib(index uint32, components int32, stride int32, offset int)
	DisableVertexAttrib(index uint32)

	// Draws
	DrawElements(mode DrawMode, count int32)
	DrawArrays(mode DrawMode, first, count int32)
	LineWidth(width float32)
}
