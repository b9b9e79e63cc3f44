// pkg/render/engo/backend.go
package engo

import (
	"context"
	"fmt"
	"math"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/EngoEngine/gl"

	"github.com/opd-ai/go-orbiter/pkg/gfx"
	"github.com/opd-ai/go-orbiter/pkg/logging"
)

const (
	lineStride     = 2 * 4
	triangleStride = 6 * 4
	colorOffset    = 2 * 4
)

// program is a linked shader with its uniform and attribute locations.
type program struct {
	gl       *gl.Program
	position int
	color    int

	translation *gl.UniformLocation
	origin      *gl.UniformLocation
	sceneScale  *gl.UniformLocation
	objectScale *gl.UniformLocation
	angle       *gl.UniformLocation
	aspect      *gl.UniformLocation
}

type indexBuffer struct {
	buffer *gl.Buffer
	count  int
}

type vertexBuffer struct {
	buffer    *gl.Buffer
	primitive gfx.Primitive
}

// drawModes holds the GL primitive enums for each topology.
type drawModes struct {
	lines, lineStrip, lineLoop           int
	triangles, triangleStrip, triangleFan int
}

// Backend drives the command list through the engo OpenGL context. It
// must be used from the engo update loop, after the window exists.
type Backend struct {
	ctx    *gl.Context
	modes  drawModes
	logger *logging.Logger

	lines     *gl.Buffer
	triangles *gl.Buffer
}

// NewBackend binds a backend to engo.Gl.
func NewBackend(logger *logging.Logger) *Backend {
	if logger == nil {
		logger = logging.NewLogger()
	}
	ctx := engo.Gl
	return &Backend{
		ctx:    ctx,
		logger: logger,
		modes: drawModes{
			lines:         ctx.LINES,
			lineStrip:     ctx.LINE_STRIP,
			lineLoop:      ctx.LINE_LOOP,
			triangles:     ctx.TRIANGLES,
			triangleStrip: ctx.TRIANGLE_STRIP,
			triangleFan:   ctx.TRIANGLE_FAN,
		},
	}
}

// CompileProgram implements gfx.Backend.
func (b *Backend) CompileProgram(vertex, fragment string) (gfx.Program, error) {
	p, err := common.LoadShader(vertex, fragment)
	if err != nil {
		return nil, logging.WrapError(err, "compile shader program")
	}
	return &program{
		gl:          p,
		position:    b.ctx.GetAttribLocation(p, "position"),
		color:       b.ctx.GetAttribLocation(p, "color"),
		translation: b.ctx.GetUniformLocation(p, "translation"),
		origin:      b.ctx.GetUniformLocation(p, "origin"),
		sceneScale:  b.ctx.GetUniformLocation(p, "scene_scale"),
		objectScale: b.ctx.GetUniformLocation(p, "object_scale"),
		angle:       b.ctx.GetUniformLocation(p, "angle"),
		aspect:      b.ctx.GetUniformLocation(p, "aspect_ratio"),
	}, nil
}

// CreateIndices implements gfx.Backend. Indices are stored as 16-bit.
func (b *Backend) CreateIndices(indices []uint32, topology gfx.Topology) (gfx.IndexBuffer, error) {
	data, err := shortIndices(indices)
	if err != nil {
		return nil, err
	}
	buf := b.ctx.CreateBuffer()
	b.ctx.BindBuffer(b.ctx.ELEMENT_ARRAY_BUFFER, buf)
	b.ctx.BufferData(b.ctx.ELEMENT_ARRAY_BUFFER, data, b.ctx.STATIC_DRAW)
	return &indexBuffer{buffer: buf, count: len(data)}, nil
}

// UploadLines implements gfx.Backend.
func (b *Backend) UploadLines(vertices []gfx.LineVertex) (gfx.VertexBuffer, error) {
	if b.lines == nil {
		b.lines = b.ctx.CreateBuffer()
	}
	b.ctx.BindBuffer(b.ctx.ARRAY_BUFFER, b.lines)
	b.ctx.BufferData(b.ctx.ARRAY_BUFFER, packLines(vertices), b.ctx.STATIC_DRAW)
	b.logger.Debug(context.Background(), "uploaded line vertices", "count", len(vertices))
	return &vertexBuffer{buffer: b.lines, primitive: gfx.PrimitiveLines}, nil
}

// UploadTriangles implements gfx.Backend.
func (b *Backend) UploadTriangles(vertices []gfx.TriangleVertex) (gfx.VertexBuffer, error) {
	if b.triangles == nil {
		b.triangles = b.ctx.CreateBuffer()
	}
	b.ctx.BindBuffer(b.ctx.ARRAY_BUFFER, b.triangles)
	b.ctx.BufferData(b.ctx.ARRAY_BUFFER, packTriangles(vertices), b.ctx.STATIC_DRAW)
	b.logger.Debug(context.Background(), "uploaded triangle vertices", "count", len(vertices))
	return &vertexBuffer{buffer: b.triangles, primitive: gfx.PrimitiveTriangles}, nil
}

// Surface implements gfx.Backend.
func (b *Backend) Surface() (int, int) {
	return int(engo.WindowWidth()), int(engo.WindowHeight())
}

// Clear implements gfx.Backend.
func (b *Backend) Clear() {
	w, h := b.Surface()
	b.ctx.Viewport(0, 0, w, h)
	b.ctx.ClearColor(0, 0, 0, 1)
	b.ctx.Clear(b.ctx.COLOR_BUFFER_BIT)
	b.ctx.Enable(b.ctx.BLEND)
	b.ctx.BlendFunc(b.ctx.SRC_ALPHA, b.ctx.ONE_MINUS_SRC_ALPHA)
}

// Draw implements gfx.Backend.
func (b *Backend) Draw(call gfx.DrawCall) error {
	p, ok := call.Program.(*program)
	if !ok {
		return fmt.Errorf("engo: unexpected program %T", call.Program)
	}
	ib, ok := call.Indices.(*indexBuffer)
	if !ok {
		return fmt.Errorf("engo: unexpected index buffer %T", call.Indices)
	}
	vb, ok := call.Vertices.(*vertexBuffer)
	if !ok {
		return fmt.Errorf("engo: unexpected vertex buffer %T", call.Vertices)
	}

	b.ctx.UseProgram(p.gl)
	u := call.Uniforms
	b.ctx.Uniform2f(p.translation, u.Translation[0], u.Translation[1])
	b.ctx.Uniform2f(p.origin, u.Origin[0], u.Origin[1])
	b.ctx.Uniform1f(p.sceneScale, u.SceneScale)
	b.ctx.Uniform1f(p.objectScale, u.ObjectScale)
	b.ctx.Uniform1f(p.angle, u.Rotation)
	b.ctx.Uniform1f(p.aspect, u.AspectRatio)

	b.ctx.BindBuffer(b.ctx.ARRAY_BUFFER, vb.buffer)
	if call.Primitive == gfx.PrimitiveLines {
		b.ctx.EnableVertexAttribArray(p.position)
		b.ctx.VertexAttribPointer(p.position, 2, b.ctx.FLOAT, false, lineStride, 0)
	} else {
		b.ctx.EnableVertexAttribArray(p.position)
		b.ctx.VertexAttribPointer(p.position, 2, b.ctx.FLOAT, false, triangleStride, 0)
		if p.color >= 0 {
			b.ctx.EnableVertexAttribArray(p.color)
			b.ctx.VertexAttribPointer(p.color, 4, b.ctx.FLOAT, false, triangleStride, colorOffset)
		}
	}

	b.ctx.BindBuffer(b.ctx.ELEMENT_ARRAY_BUFFER, ib.buffer)
	b.ctx.DrawElements(b.modes.mode(call.Primitive, call.Topology), ib.count, b.ctx.UNSIGNED_SHORT, 0)
	return nil
}

// Present implements gfx.Backend. engo swaps buffers after the update.
func (b *Backend) Present() error {
	return nil
}

// mode picks the GL primitive for a draw. Filled loops become fans.
func (m drawModes) mode(p gfx.Primitive, t gfx.Topology) int {
	if p == gfx.PrimitiveLines {
		switch t {
		case gfx.TopologyLoop:
			return m.lineLoop
		case gfx.TopologyStrip:
			return m.lineStrip
		default:
			return m.lines
		}
	}
	switch t {
	case gfx.TopologyLoop:
		return m.triangleFan
	case gfx.TopologyStrip:
		return m.triangleStrip
	default:
		return m.triangles
	}
}

func shortIndices(indices []uint32) ([]uint16, error) {
	out := make([]uint16, len(indices))
	for i, v := range indices {
		if v > math.MaxUint16 {
			return nil, fmt.Errorf("engo: index %d at position %d exceeds 16 bits", v, i)
		}
		out[i] = uint16(v)
	}
	return out, nil
}

func packLines(vertices []gfx.LineVertex) []float32 {
	out := make([]float32, 0, len(vertices)*2)
	for _, v := range vertices {
		out = append(out, v.Position[0], v.Position[1])
	}
	return out
}

func packTriangles(vertices []gfx.TriangleVertex) []float32 {
	out := make([]float32, 0, len(vertices)*6)
	for _, v := range vertices {
		out = append(out, v.Position[0], v.Position[1])
		out = append(out, v.Color[:]...)
	}
	return out
}
