// Package viewport orchestrates a frame: it owns the camera and the active
// scene's renderables and drives their render calls in scene order.
package viewport

import (
	"errors"
	"fmt"

	"github.com/0x0420b/Everlook/internal/graphics"
	"github.com/0x0420b/Everlook/internal/graphics/device"
	"github.com/0x0420b/Everlook/internal/graphics/render"

	"github.com/go-gl/mathgl/mgl32"
)

// Viewport renders a scene through one camera. Renderables are drawn in the
// order they were added and disposed in reverse order.
type Viewport struct {
	api         device.API
	camera      *graphics.Camera
	renderables []render.Renderable

	// Background clear color.
	Background mgl32.Vec4
}

func New(api device.API, width, height int) *Viewport {
	return &Viewport{
		api:        api,
		camera:     graphics.NewCamera(width, height),
		Background: mgl32.Vec4{0.22, 0.22, 0.22, 1.0},
	}
}

// Add initializes r and appends it to the scene.
func (v *Viewport) Add(r render.Renderable) error {
	if err := r.Initialize(); err != nil {
		return fmt.Errorf("initializing renderable: %w", err)
	}
	v.renderables = append(v.renderables, r)
	return nil
}

// RenderFrame clears and draws the scene. The view matrix is computed once
// per frame; the projection follows each actor's declared kind, with plain
// renderables drawn under the orthographic default.
func (v *Viewport) RenderFrame(dt float64) error {
	bg := v.Background
	v.api.Clear(bg.X(), bg.Y(), bg.Z(), bg.W())

	view := v.camera.GetViewMatrix()

	for _, r := range v.renderables {
		kind := graphics.Orthographic
		if actor, ok := r.(render.Actor); ok {
			kind = actor.Projection()
		}
		ctx := render.Context{
			Camera: v.camera,
			View:   view,
			Proj:   v.camera.GetProjectionMatrix(kind),
			DT:     dt,
		}
		if err := r.Render(ctx); err != nil {
			return fmt.Errorf("rendering scene: %w", err)
		}
	}
	return nil
}

// Dispose tears the scene down in reverse order. Actor instances reject
// disposal by design; their targets are disposed here too, so that
// rejection is not an error at viewport level.
func (v *Viewport) Dispose() error {
	var firstErr error
	for i := len(v.renderables) - 1; i >= 0; i-- {
		err := v.renderables[i].Dispose()
		if err != nil && !errors.Is(err, render.ErrInstanceDispose) && firstErr == nil {
			firstErr = err
		}
	}
	v.renderables = nil
	return firstErr
}

func (v *Viewport) Camera() *graphics.Camera { return v.camera }

func (v *Viewport) SetViewport(width, height int) {
	v.camera.SetViewport(width, height)
}
