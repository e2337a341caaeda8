package render

import "path/filepath"

// ShaderKind identifies one of the shader programs the viewer renders with.
type ShaderKind int

const (
	// ShaderPlainImage draws a flat textured quad with channel masking.
	ShaderPlainImage ShaderKind = iota
	// ShaderBoundingBox draws model extents as colored lines.
	ShaderBoundingBox
	// ShaderModel draws textured model geometry.
	ShaderModel
)

var shaderNames = map[ShaderKind]string{
	ShaderPlainImage:  "image",
	ShaderBoundingBox: "boundingbox",
	ShaderModel:       "model",
}

func (k ShaderKind) String() string {
	if name, ok := shaderNames[k]; ok {
		return name
	}
	return "unknown"
}

// VertexPath returns the vertex shader file for this kind under dir,
// following the assets/shaders/<name>/<name>.vert layout.
func (k ShaderKind) VertexPath(dir string) string {
	return filepath.Join(dir, k.String(), k.String()+".vert")
}

// FragmentPath returns the fragment shader file for this kind under dir.
func (k ShaderKind) FragmentPath(dir string) string {
	return filepath.Join(dir, k.String(), k.String()+".frag")
}
