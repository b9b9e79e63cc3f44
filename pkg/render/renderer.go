// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-orbiter/pkg/gfx"
	"github.com/opd-ai/go-orbiter/pkg/logging"
)

// NullBackend is a gfx.Backend that draws nothing. It counts work so
// headless runs can report what a frame would have cost.
type NullBackend struct {
	logger *logging.Logger
	width  int
	height int

	programs  int
	indices   int
	uploads   int
	frames    int
	draws     int
	lastDraws int
}

// NewNullBackend creates a NullBackend with an 800x600 surface. A nil
// logger uses the environment-configured default.
func NewNullBackend(logger *logging.Logger) *NullBackend {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullBackend{
		logger: logger,
		width:  800,
		height: 600,
	}
}

// SetSurface changes the reported surface size.
func (d *NullBackend) SetSurface(width, height int) {
	d.width, d.height = width, height
}

// CompileProgram implements gfx.Backend.
func (d *NullBackend) CompileProgram(vertex, fragment string) (gfx.Program, error) {
	d.programs++
	d.logger.Debug(context.Background(), "CompileProgram called",
		"program", d.programs-1,
		"vertex_bytes", len(vertex),
		"fragment_bytes", len(fragment),
	)
	return d.programs - 1, nil
}

// CreateIndices implements gfx.Backend.
func (d *NullBackend) CreateIndices(indices []uint32, topology gfx.Topology) (gfx.IndexBuffer, error) {
	d.indices++
	d.logger.Debug(context.Background(), "CreateIndices called",
		"count", len(indices),
		"topology", topology.String(),
	)
	return d.indices - 1, nil
}

// UploadLines implements gfx.Backend.
func (d *NullBackend) UploadLines(vertices []gfx.LineVertex) (gfx.VertexBuffer, error) {
	d.uploads++
	d.logger.Debug(context.Background(), "UploadLines called", "count", len(vertices))
	return len(vertices), nil
}

// UploadTriangles implements gfx.Backend.
func (d *NullBackend) UploadTriangles(vertices []gfx.TriangleVertex) (gfx.VertexBuffer, error) {
	d.uploads++
	d.logger.Debug(context.Background(), "UploadTriangles called", "count", len(vertices))
	return len(vertices), nil
}

// Surface implements gfx.Backend.
func (d *NullBackend) Surface() (int, int) {
	return d.width, d.height
}

// Clear implements gfx.Backend.
func (d *NullBackend) Clear() {
	d.draws = 0
}

// Draw implements gfx.Backend.
func (d *NullBackend) Draw(call gfx.DrawCall) error {
	d.draws++
	return nil
}

// Present implements gfx.Backend.
func (d *NullBackend) Present() error {
	d.frames++
	d.lastDraws = d.draws
	return nil
}

// Stats reports frames presented, draws in the last frame and vertex
// uploads so far.
func (d *NullBackend) Stats() (frames, draws, uploads int) {
	return d.frames, d.lastDraws, d.uploads
}
