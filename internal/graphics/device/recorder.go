package device

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Recorder implements API by logging every call instead of touching a GPU.
// It backs the test suite and doubles as a tracing device when diagnosing
// frame issues: Stats summarizes a frame, Ops preserves exact call order.
type Recorder struct {
	Stats RecorderStats
	Ops   []string

	// Enabled tracks vertex attribute indices currently enabled, so callers
	// can assert that renderables clean up the state they touched.
	Enabled map[uint32]bool

	// When set, CompileProgram / UploadTexture fail with these instead of
	// succeeding. Used to exercise failure paths.
	FailCompile error
	FailUpload  error

	nextID uint32
}

// RecorderStats counts the operations a Recorder has seen.
type RecorderStats struct {
	BufferUploads  int
	TextureUploads int
	Compiles       int
	DrawCalls      int
	DrawnIndices   int
	DrawnVertices  int
	AttribEnables  int
	AttribDisables int
	Deletes        int
}

func (s RecorderStats) String() string {
	return fmt.Sprintf("%d buffer uploads, %d texture uploads, %d compiles, %d draws (%d indices, %d vertices)",
		s.BufferUploads, s.TextureUploads, s.Compiles, s.DrawCalls, s.DrawnIndices, s.DrawnVertices)
}

func NewRecorder() *Recorder {
	return &Recorder{Enabled: make(map[uint32]bool)}
}

func (r *Recorder) log(format string, args ...any) {
	r.Ops = append(r.Ops, fmt.Sprintf(format, args...))
}

func (r *Recorder) allocID() uint32 {
	r.nextID++
	return r.nextID
}

func (r *Recorder) Clear(red, green, blue, alpha float32) {
	r.log("Clear %g %g %g %g", red, green, blue, alpha)
}

func (r *Recorder) CreateBuffer() uint32 {
	id := r.allocID()
	r.log("CreateBuffer -> %d", id)
	return id
}

func (r *Recorder) BindBuffer(kind BufferKind, buffer uint32) {
	r.log("BindBuffer %d %d", kind, buffer)
}

func (r *Recorder) BufferFloats(kind BufferKind, data []float32, usage Usage) {
	r.Stats.BufferUploads++
	r.log("BufferFloats %d len=%d usage=%d", kind, len(data), usage)
}

func (r *Recorder) BufferUints(kind BufferKind, data []uint32, usage Usage) {
	r.Stats.BufferUploads++
	r.log("BufferUints %d len=%d usage=%d", kind, len(data), usage)
}

func (r *Recorder) DeleteBuffer(buffer uint32) {
	r.Stats.Deletes++
	r.log("DeleteBuffer %d", buffer)
}

func (r *Recorder) CreateTexture() uint32 {
	id := r.allocID()
	r.log("CreateTexture -> %d", id)
	return id
}

func (r *Recorder) BindTexture(texture uint32) {
	r.log("BindTexture %d", texture)
}

func (r *Recorder) UploadTexture(texture uint32, width, height int, pixels []uint8, mipLevels int) error {
	if r.FailUpload != nil {
		return r.FailUpload
	}
	r.Stats.TextureUploads++
	r.log("UploadTexture %d %dx%d mips=%d", texture, width, height, mipLevels)
	return nil
}

func (r *Recorder) DeleteTexture(texture uint32) {
	r.Stats.Deletes++
	r.log("DeleteTexture %d", texture)
}

func (r *Recorder) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	if r.FailCompile != nil {
		return 0, r.FailCompile
	}
	r.Stats.Compiles++
	id := r.allocID()
	r.log("CompileProgram -> %d", id)
	return id, nil
}

func (r *Recorder) UseProgram(program uint32) {
	r.log("UseProgram %d", program)
}

func (r *Recorder) DeleteProgram(program uint32) {
	r.Stats.Deletes++
	r.log("DeleteProgram %d", program)
}

func (r *Recorder) UniformInt(program uint32, name string, value int32) {
	r.log("UniformInt %d %s %d", program, name, value)
}

func (r *Recorder) UniformVec4(program uint32, name string, value mgl32.Vec4) {
	r.log("UniformVec4 %d %s %v", program, name, value)
}

func (r *Recorder) UniformMat4(program uint32, name string, value mgl32.Mat4) {
	r.log("UniformMat4 %d %s", program, name)
}

func (r *Recorder) EnableVertexAttrib(index uint32, components int32, stride int32, offset int) {
	r.Stats.AttribEnables++
	r.Enabled[index] = true
	r.log("EnableVertexAttrib %d", index)
}

func (r *Recorder) DisableVertexAttrib(index uint32) {
	r.Stats.AttribDisables++
	delete(r.Enabled, index)
	r.log("DisableVertexAttrib %d", index)
}

func (r *Recorder) DrawElements(mode DrawMode, count int32) {
	r.Stats.DrawCalls++
	r.Stats.DrawnIndices += int(count)
	r.log("DrawElements %d count=%d", mode, count)
}

func (r *Recorder) DrawArrays(mode DrawMode, first, count int32) {
	r.Stats.DrawCalls++
	r.Stats.DrawnVertices += int(count)
	r.log("DrawArrays %d first=%d count=%d", mode, first, count)
}

func (r *Recorder) LineWidth(width float32) {
	r.log("LineWidth %g", width)
}
