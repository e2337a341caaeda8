// Package boundingbox renders the extents of a model asset as a wireframe
// box, the placeholder drawn while inspecting geometry bounds.
package boundingbox

import (
	"fmt"

	"github.com/0x0420b/Everlook/internal/graphics"
	"github.com/0x0420b/Everlook/internal/graphics/device"
	"github.com/0x0420b/Everlook/internal/graphics/render"
	"github.com/0x0420b/Everlook/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const lineVertexCount = 24

// Renderable draws the twelve edges of an axis-aligned box between Min and
// Max as a line list.
type Renderable struct {
	api   device.API
	cache *render.Cache

	min mgl32.Vec3
	max mgl32.Vec3

	// Color of the box edges, RGBA in [0,1].
	Color mgl32.Vec4

	transform render.Transform

	vertexBuffer *device.Handle
	shader       *device.Handle

	initialized bool
	disposed    bool
}

func New(api device.API, cache *render.Cache, min, max mgl32.Vec3) *Renderable {
	return &Renderable{
		api:       api,
		cache:     cache,
		min:       min,
		max:       max,
		Color:     mgl32.Vec4{1, 0, 0, 1},
		transform: render.IdentityTransform(),
	}
}

// edgeVertices lists the box edges as line segment endpoints: four edges on
// the near face, four on the far face, four connecting them.
func edgeVertices(min, max mgl32.Vec3) []float32 {
	x0, y0, z0 := min.X(), min.Y(), min.Z()
	x1, y1, z1 := max.X(), max.Y(), max.Z()
	return []float32{
		// Near face
		x0, y0, z1, x1, y0, z1,
		x1, y0, z1, x1, y1, z1,
		x1, y1, z1, x0, y1, z1,
		x0, y1, z1, x0, y0, z1,

		// Far face
		x0, y0, z0, x1, y0, z0,
		x1, y0, z0, x1, y1, z0,
		x1, y1, z0, x0, y1, z0,
		x0, y1, z0, x0, y0, z0,

		// Connecting edges
		x0, y0, z1, x0, y0, z0,
		x1, y0, z1, x1, y0, z0,
		x1, y1, z1, x1, y1, z0,
		x0, y1, z1, x0, y1, z0,
	}
}

func (r *Renderable) Initialize() error {
	if r.disposed {
		return fmt.Errorf("bounding box: %w", render.ErrDisposed)
	}
	if r.initialized {
		return nil
	}

	shader, err := r.cache.GetShader(render.ShaderBoundingBox)
	if err != nil {
		return err
	}

	buffer := r.api.CreateBuffer()
	r.api.BindBuffer(device.ArrayBuffer, buffer)
	r.api.BufferFloats(device.ArrayBuffer, edgeVertices(r.min, r.max), device.StaticDraw)

	r.vertexBuffer = device.NewHandle(r.api, device.VertexBufferHandle, buffer, device.StaticDraw)
	r.shader = shader

	r.transform = render.IdentityTransform()
	r.initialized = true
	return nil
}

func (r *Renderable) Render(ctx render.Context) error {
	if r.disposed {
		return fmt.Errorf("bounding box: %w", render.ErrDisposed)
	}
	if !r.initialized {
		return nil
	}
	defer profiling.Track("boundingbox.Render")()

	if err := r.shader.Bind(); err != nil {
		return err
	}
	program, err := r.shader.ID()
	if err != nil {
		return err
	}

	mvp := ctx.Proj.Mul4(ctx.View).Mul4(r.transform.Mat4())
	r.api.UniformMat4(program, "mvp", mvp)
	r.api.UniformVec4(program, "color", r.Color)

	if err := r.vertexBuffer.Bind(); err != nil {
		return err
	}
	r.api.EnableVertexAttrib(0, 3, 0, 0)

	r.api.LineWidth(1.0)
	r.api.DrawArrays(device.Lines, 0, lineVertexCount)

	r.api.DisableVertexAttrib(0)
	return nil
}

func (r *Renderable) Dispose() error {
	if r.disposed {
		return nil
	}
	if r.vertexBuffer != nil {
		r.vertexBuffer.Release()
	}
	r.disposed = true
	return nil
}

func (r *Renderable) Static() bool      { return true }
func (r *Renderable) Initialized() bool { return r.initialized }

func (r *Renderable) Projection() graphics.ProjectionKind { return graphics.Perspective }

func (r *Renderable) Transform() render.Transform     { return r.transform }
func (r *Renderable) SetTransform(t render.Transform) { r.transform = t }
