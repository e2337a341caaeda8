package image

import "github.com/go-gl/mathgl/mgl32"

// ChannelMask selects which color channels of the sampled texture survive
// into the output. Toggling a channel takes effect on the next frame.
type ChannelMask struct {
	R bool
	G bool
	B bool
	A bool
}

// AllChannels returns a mask with every channel enabled.
func AllChannels() ChannelMask {
	return ChannelMask{R: true, G: true, B: true, A: true}
}

// Vec4 converts the mask into the multiplier vector the shader applies.
// Recomputed on every call so a toggle can never be served stale.
func (m ChannelMask) Vec4() mgl32.Vec4 {
	var v mgl32.Vec4
	if m.R {
		v[0] = 1
	}
	if m.G {
		v[1] = 1
	}
	if m.B {
		v[2] = 1
	}
	if m.A {
		v[3] = 1
	}
	return v
}
