package render

import (
	"github.com/0x0420b/Everlook/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Context carries the per-frame camera state into every render call.
type Context struct {
	Camera *graphics.Camera
	View   mgl32.Mat4
	Proj   mgl32.Mat4
	DT     float64
}

// Renderable is a drawable unit with an initialize/render/dispose lifecycle.
//
// Render must be a silent no-op before Initialize has completed, and every
// operation must fail with ErrDisposed once Dispose has run. A renderable
// disables any vertex attribute state it enabled before Render returns, so
// scene ordering never leaks state between units.
type Renderable interface {
	Initialize() error
	Render(ctx Context) error
	Dispose() error

	// Static reports whether the content is fixed after its first upload.
	Static() bool
	Initialized() bool
}

// Actor is a Renderable with its own spatial transform and a declared
// projection, letting a viewport camera drive it.
type Actor interface {
	Renderable

	Projection() graphics.ProjectionKind
	Transform() Transform
	SetTransform(t Transform)
}
