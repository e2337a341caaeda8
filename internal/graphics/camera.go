package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionKind is the projection an actor asks to be viewed with.
type ProjectionKind int

const (
	// Orthographic suits flat content such as images; one world unit maps
	// to one viewport pixel.
	Orthographic ProjectionKind = iota
	// Perspective suits 3D content such as model geometry.
	Perspective
)

// Camera supplies the per-frame view and projection matrices for a viewport.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	Width  int
	Height int

	FOV       float32
	NearPlane float32
	FarPlane  float32
}

// NewCamera places the camera at (0, 0, 1) looking toward the origin, the
// default framing for flat 2D content.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Position:  mgl32.Vec3{0, 0, 1},
		Target:    mgl32.Vec3{0, 0, 0},
		Up:        mgl32.Vec3{0, 1, 0},
		Width:     width,
		Height:    height,
		FOV:       60.0,
		NearPlane: 0.1,
		FarPlane:  1000.0,
	}
}

func (c *Camera) SetViewport(width, height int) {
	c.Width = width
	c.Height = height
}

func (c *Camera) AspectRatio() float32 {
	return float32(c.Width) / float32(c.Height)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// GetProjectionMatrix returns the projection matrix for the given kind at
// the current viewport size.
func (c *Camera) GetProjectionMatrix(kind ProjectionKind) mgl32.Mat4 {
	if kind == Perspective {
		return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio(), c.NearPlane, c.FarPlane)
	}
	halfW := float32(c.Width) / 2
	halfH := float32(c.Height) / 2
	return mgl32.Ortho(-halfW, halfW, -halfH, halfH, c.NearPlane, c.FarPlane)
}
