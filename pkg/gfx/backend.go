package gfx

// Program is a compiled shader program owned by a Backend.
type Program any

// IndexBuffer is an index buffer owned by a Backend.
type IndexBuffer any

// VertexBuffer is a vertex buffer owned by a Backend.
type VertexBuffer any

// Primitive selects which vertex buffer a draw reads.
type Primitive uint8

const (
	PrimitiveLines Primitive = iota
	PrimitiveTriangles
)

func (p Primitive) String() string {
	if p == PrimitiveTriangles {
		return "triangles"
	}
	return "lines"
}

// DrawCall is everything a backend needs to issue one draw.
type DrawCall struct {
	Primitive   Primitive
	Vertices    VertexBuffer
	VertexCount int
	Indices     IndexBuffer
	IndexCount  int
	Topology    Topology
	Program     Program
	Uniforms    Uniforms
}

// Backend is the graphics API the command list drives. Implementations
// are not required to be safe for concurrent use; the command list calls
// them from a single goroutine.
type Backend interface {
	// CompileProgram builds a program from vertex and fragment source.
	CompileProgram(vertex, fragment string) (Program, error)
	// CreateIndices uploads an immutable index buffer.
	CreateIndices(indices []uint32, topology Topology) (IndexBuffer, error)
	// UploadLines replaces the line vertex buffer.
	UploadLines(vertices []LineVertex) (VertexBuffer, error)
	// UploadTriangles replaces the triangle vertex buffer.
	UploadTriangles(vertices []TriangleVertex) (VertexBuffer, error)
	// Surface returns the current output size in pixels.
	Surface() (width, height int)
	// Clear clears the frame.
	Clear()
	// Draw issues one draw call.
	Draw(call DrawCall) error
	// Present finishes the frame.
	Present() error
}
