package gfx

import "math"

// Interpreter defaults applied at the start of every frame.
const (
	DefaultSceneScale  float32 = 0.5
	DefaultObjectScale float32 = 1.0
)

// Uniforms are the per-draw transform parameters handed to the backend.
type Uniforms struct {
	Translation [2]float32
	Origin      [2]float32
	SceneScale  float32
	ObjectScale float32
	Rotation    float32
	// AspectRatio is height/width of the target surface; it scales x only.
	AspectRatio float32
}

// DefaultUniforms returns the interpreter state at the start of a frame.
func DefaultUniforms(aspect float32) Uniforms {
	return Uniforms{
		SceneScale:  DefaultSceneScale,
		ObjectScale: DefaultObjectScale,
		AspectRatio: aspect,
	}
}

// Transform maps a vertex position to normalized device coordinates:
// scale by ObjectScale, rotate by Rotation, add Translation-Origin,
// multiply x by AspectRatio, then multiply both by SceneScale.
// Backends running on a GPU evaluate the same expression in their vertex
// shader.
func (u Uniforms) Transform(p [2]float32) [2]float32 {
	x := p[0] * u.ObjectScale
	y := p[1] * u.ObjectScale

	sin, cos := math.Sincos(float64(u.Rotation))
	s, c := float32(sin), float32(cos)
	rx := x*c - y*s
	ry := x*s + y*c

	rx += u.Translation[0] - u.Origin[0]
	ry += u.Translation[1] - u.Origin[1]

	return [2]float32{
		rx * u.AspectRatio * u.SceneScale,
		ry * u.SceneScale,
	}
}

// AspectRatio returns height/width for a surface, or 1 for a degenerate one.
func AspectRatio(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(height) / float32(width)
}
