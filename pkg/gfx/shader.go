package gfx

// ShaderSource is a vertex and fragment shader pair for CompileProgram.
// Backends that rasterize on the CPU ignore the text and use
// Uniforms.Transform instead.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

const transformGLSL = `
uniform vec2 translation;
uniform vec2 origin;
uniform float scene_scale;
uniform float object_scale;
uniform float angle;
uniform float aspect_ratio;

vec4 orbiter_transform(vec2 p) {
	vec2 local = p * object_scale;
	float s = sin(angle);
	float c = cos(angle);
	vec2 world = vec2(local.x * c - local.y * s, local.x * s + local.y * c);
	world += translation - origin;
	return vec4(world.x * aspect_ratio * scene_scale, world.y * scene_scale, 0.0, 1.0);
}
`

// LineShader draws outlines in a fixed color.
var LineShader = ShaderSource{
	Vertex: `#version 120
attribute vec2 position;
` + transformGLSL + `
void main() {
	gl_Position = orbiter_transform(position);
}
`,
	Fragment: `#version 120
void main() {
	gl_FragColor = vec4(0.85, 0.95, 1.0, 1.0);
}
`,
}

// TriangleShader draws filled primitives with per-vertex color.
var TriangleShader = ShaderSource{
	Vertex: `#version 120
attribute vec2 position;
attribute vec4 color;
varying vec4 v_color;
` + transformGLSL + `
void main() {
	v_color = color;
	gl_Position = orbiter_transform(position);
}
`,
	Fragment: `#version 120
varying vec4 v_color;
void main() {
	gl_FragColor = v_color;
}
`,
}

// LineColor is the color LineShader paints with.
var LineColor = RGBA(0.85, 0.95, 1, 1)
