package gfx

import "fmt"

// LineVertex is an outline vertex. Line primitives are drawn in a fixed color.
type LineVertex struct {
	Position [2]float32
}

// TriangleVertex is a filled-primitive vertex with its own RGBA color.
type TriangleVertex struct {
	Position [2]float32
	Color    [4]float32
}

// Color is an RGBA color with components in [0, 1].
type Color [4]float32

// RGBA builds a Color.
func RGBA(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// Topology is the primitive assembly rule of an index buffer.
type Topology uint8

const (
	// TopologyLoop connects consecutive indices and closes the loop.
	TopologyLoop Topology = iota
	// TopologyStrip connects consecutive indices.
	TopologyStrip
	// TopologyList takes indices in pairs (lines) or triples (triangles).
	TopologyList
)

func (t Topology) String() string {
	switch t {
	case TopologyLoop:
		return "loop"
	case TopologyStrip:
		return "strip"
	case TopologyList:
		return "list"
	default:
		return fmt.Sprintf("topology(%d)", t)
	}
}

// Geometry is the CPU-side backing store of vertices. Appending marks it
// dirty; the command list re-uploads dirty geometry once per frame.
type Geometry struct {
	lines     []LineVertex
	triangles []TriangleVertex
	dirty     bool
}

// AddLineVertex appends a line vertex.
func (g *Geometry) AddLineVertex(x, y float32) {
	g.lines = append(g.lines, LineVertex{Position: [2]float32{x, y}})
	g.dirty = true
}

// AddTriangleVertex appends a colored triangle vertex.
func (g *Geometry) AddTriangleVertex(x, y float32, c Color) {
	g.triangles = append(g.triangles, TriangleVertex{
		Position: [2]float32{x, y},
		Color:    c,
	})
	g.dirty = true
}

// LineLen returns the number of line vertices.
func (g *Geometry) LineLen() int {
	return len(g.lines)
}

// TriangleLen returns the number of triangle vertices.
func (g *Geometry) TriangleLen() int {
	return len(g.triangles)
}

// Lines returns the line vertices. The slice must not be modified.
func (g *Geometry) Lines() []LineVertex {
	return g.lines
}

// Triangles returns the triangle vertices. The slice must not be modified.
func (g *Geometry) Triangles() []TriangleVertex {
	return g.triangles
}

// Dirty reports whether vertices were appended since the last upload.
func (g *Geometry) Dirty() bool {
	return g.dirty
}
