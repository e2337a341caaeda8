// Package image renders a single flat textured quad at its native
// resolution, with per-channel color masking. It is the renderable used for
// inspecting image assets in the viewport.
package image

import (
	"fmt"

	"github.com/0x0420b/Everlook/internal/graphics"
	"github.com/0x0420b/Everlook/internal/graphics/device"
	"github.com/0x0420b/Everlook/internal/graphics/render"
	"github.com/0x0420b/Everlook/internal/profiling"
)

// Source resolves an image asset for rendering: a stable path usable as a
// cache key plus the pixel dimensions of the decoded image. Concrete
// sources live at the asset-decoding boundary.
type Source interface {
	Path() string
	Resolution() (width, height int)
}

// Renderable is a flat-image actor: a 4-vertex quad sized to the source's
// native resolution, centered at the origin, drawn with the shared plain
// image shader. Geometry is uploaded once and never changes.
type Renderable struct {
	api    device.API
	cache  *render.Cache
	source Source

	// Mask is consulted every frame; toggle channels freely between frames.
	Mask ChannelMask

	transform render.Transform

	vertexBuffer *device.Handle
	uvBuffer     *device.Handle
	indexBuffer  *device.Handle

	// Shared with every renderable using the same path/kind; owned by the
	// cache, never released here.
	texture *device.Handle
	shader  *device.Handle

	initialized bool
	disposed    bool
}

func New(api device.API, cache *render.Cache, source Source) *Renderable {
	return &Renderable{
		api:       api,
		cache:     cache,
		source:    source,
		Mask:      AllChannels(),
		transform: render.IdentityTransform(),
	}
}

// Initialize uploads the quad geometry and acquires the shared texture and
// shader. Calling it again after success is a no-op.
func (r *Renderable) Initialize() error {
	if r.disposed {
		return fmt.Errorf("image %s: %w", r.source.Path(), render.ErrDisposed)
	}
	if r.initialized {
		return nil
	}

	shader, err := r.cache.GetShader(render.ShaderPlainImage)
	if err != nil {
		return err
	}
	texture, err := r.cache.GetTexture(r.source.Path())
	if err != nil {
		return err
	}

	width, height := r.source.Resolution()
	halfW := float32(width) / 2
	halfH := float32(height) / 2

	vertices := []float32{
		-halfW, -halfH, 0,
		halfW, -halfH, 0,
		halfW, halfH, 0,
		-halfW, halfH, 0,
	}
	uvs := []float32{
		0, 1,
		1, 1,
		1, 0,
		0, 0,
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}

	vertexBuffer := r.api.CreateBuffer()
	r.api.BindBuffer(device.ArrayBuffer, vertexBuffer)
	r.api.BufferFloats(device.ArrayBuffer, vertices, device.StaticDraw)

	uvBuffer := r.api.CreateBuffer()
	r.api.BindBuffer(device.ArrayBuffer, uvBuffer)
	r.api.BufferFloats(device.ArrayBuffer, uvs, device.StaticDraw)

	indexBuffer := r.api.CreateBuffer()
	r.api.BindBuffer(device.ElementArrayBuffer, indexBuffer)
	r.api.BufferUints(device.ElementArrayBuffer, indices, device.StaticDraw)

	r.vertexBuffer = device.NewHandle(r.api, device.VertexBufferHandle, vertexBuffer, device.StaticDraw)
	r.uvBuffer = device.NewHandle(r.api, device.VertexBufferHandle, uvBuffer, device.StaticDraw)
	r.indexBuffer = device.NewHandle(r.api, device.IndexBufferHandle, indexBuffer, device.StaticDraw)
	r.shader = shader
	r.texture = texture

	r.transform = render.IdentityTransform()
	r.initialized = true
	return nil
}

// Render draws the quad. Before initialization it draws nothing and reports
// no error; after disposal it fails with ErrDisposed.
func (r *Renderable) Render(ctx render.Context) error {
	if r.disposed {
		return fmt.Errorf("image %s: %w", r.source.Path(), render.ErrDisposed)
	}
	if !r.initialized {
		return nil
	}
	defer profiling.Track("image.Render")()

	if err := r.shader.Bind(); err != nil {
		return err
	}
	program, err := r.shader.ID()
	if err != nil {
		return err
	}

	mvp := ctx.Proj.Mul4(ctx.View).Mul4(r.transform.Mat4())
	r.api.UniformMat4(program, "mvp", mvp)
	r.api.UniformVec4(program, "channelMask", r.Mask.Vec4())
	r.api.UniformInt(program, "image", 0)

	// The cache retires the texture when its source file changes; pick up
	// the re-uploaded one instead of drawing through a released handle.
	if r.texture.Released() {
		texture, err := r.cache.GetTexture(r.source.Path())
		if err != nil {
			return err
		}
		r.texture = texture
	}
	if err := r.texture.Bind(); err != nil {
		return err
	}

	if err := r.vertexBuffer.Bind(); err != nil {
		return err
	}
	r.api.EnableVertexAttrib(0, 3, 0, 0)
	if err := r.uvBuffer.Bind(); err != nil {
		return err
	}
	r.api.EnableVertexAttrib(1, 2, 0, 0)
	if err := r.indexBuffer.Bind(); err != nil {
		return err
	}

	r.api.DrawElements(device.Triangles, 6)

	r.api.DisableVertexAttrib(1)
	r.api.DisableVertexAttrib(0)
	return nil
}

// Dispose releases the quad's buffers. The texture and shader stay with the
// cache. Safe to call more than once.
func (r *Renderable) Dispose() error {
	if r.disposed {
		return nil
	}
	if r.vertexBuffer != nil {
		r.vertexBuffer.Release()
	}
	if r.uvBuffer != nil {
		r.uvBuffer.Release()
	}
	if r.indexBuffer != nil {
		r.indexBuffer.Release()
	}
	r.disposed = true
	return nil
}

func (r *Renderable) Static() bool      { return true }
func (r *Renderable) Initialized() bool { return r.initialized }

func (r *Renderable) Projection() graphics.ProjectionKind { return graphics.Orthographic }

func (r *Renderable) Transform() render.Transform     { return r.transform }
func (r *Renderable) SetTransform(t render.Transform) { r.transform = t }
