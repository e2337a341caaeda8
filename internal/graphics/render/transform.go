package render

import "github.com/go-gl/mathgl/mgl32"

// Transform is a position/rotation/scale triple. It is a value type: each
// actor or instance owns its own copy, and assignment snapshots it.
//
// The rotation is kept normalized by every constructor and setter, and the
// model matrix is recomputed on each call rather than cached, so a transform
// can never serve a stale matrix.
type Transform struct {
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3
}

// IdentityTransform returns a transform at the origin with no rotation and
// unit scale.
func IdentityTransform() Transform {
	return Transform{
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
}

func NewTransform(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) Transform {
	return Transform{
		position: position,
		rotation: rotation.Normalize(),
		scale:    scale,
	}
}

func (t Transform) Position() mgl32.Vec3 { return t.position }
func (t Transform) Rotation() mgl32.Quat { return t.rotation }
func (t Transform) Scale() mgl32.Vec3    { return t.scale }

func (t *Transform) SetPosition(p mgl32.Vec3) { t.position = p }
func (t *Transform) SetScale(s mgl32.Vec3)    { t.scale = s }

func (t *Transform) SetRotation(r mgl32.Quat) {
	t.rotation = r.Normalize()
}

// Mat4 composes translate * rotate * scale into a model matrix.
func (t Transform) Mat4() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.position.X(), t.position.Y(), t.position.Z())
	rotate := t.rotation.Mat4()
	scale := mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z())
	return translate.Mul4(rotate).Mul4(scale)
}
