// Package gfx implements a retained-mode command list renderer.
//
// A Gfx holds a flat, append-only sequence of commands. Each append returns
// a Handle that later code uses to change the command's payload or to skip
// it, so a frame is produced by mutating a few numeric slots and calling Run
// instead of rebuilding the scene. Paint order is list order.
//
// Selecting a program or index slot that was never created, or passing a
// handle that belongs to another list, is an authoring fault and panics.
package gfx

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/opd-ai/go-orbiter/pkg/logging"
)

var listIDs atomic.Uint64

type indexRecord struct {
	buffer   IndexBuffer
	count    int
	topology Topology
}

// Gfx is a command list bound to a Backend.
type Gfx struct {
	id      uint64
	backend Backend
	logger  *logging.Logger

	commands []Command
	programs []Program
	indices  []indexRecord

	geometry         Geometry
	lineVertices     VertexBuffer
	triangleVertices VertexBuffer
}

// New creates an empty command list drawing through backend.
func New(backend Backend, logger *logging.Logger) *Gfx {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Gfx{
		id:      listIDs.Add(1),
		backend: backend,
		logger:  logger,
	}
}

func (g *Gfx) push(c Command) Handle {
	g.commands = append(g.commands, c)
	return Handle{list: g.id, index: len(g.commands) - 1}
}

// Program appends a program selection.
func (g *Gfx) Program(slot int) Handle {
	return g.push(Command{Kind: KindProgram, Slot: slot})
}

// Indices appends an index buffer selection.
func (g *Gfx) Indices(slot int) Handle {
	return g.push(Command{Kind: KindIndices, Slot: slot})
}

// Rotation appends a rotation change.
func (g *Gfx) Rotation(angle float32) Handle {
	return g.push(Command{Kind: KindRotation, Value: angle})
}

// SceneScale appends a scene scale change.
func (g *Gfx) SceneScale(scale float32) Handle {
	return g.push(Command{Kind: KindSceneScale, Value: scale})
}

// ObjectScale appends an object scale change.
func (g *Gfx) ObjectScale(scale float32) Handle {
	return g.push(Command{Kind: KindObjectScale, Value: scale})
}

// Translation appends a translation change.
func (g *Gfx) Translation(x, y float32) Handle {
	return g.push(Command{Kind: KindTranslation, X: x, Y: y})
}

// Origin appends an origin change.
func (g *Gfx) Origin(x, y float32) Handle {
	return g.push(Command{Kind: KindOrigin, X: x, Y: y})
}

// DrawLines appends a draw of the selected indices against the line vertices.
func (g *Gfx) DrawLines() Handle {
	return g.push(Command{Kind: KindDrawLines})
}

// DrawTriangles appends a draw of the selected indices against the triangle
// vertices.
func (g *Gfx) DrawTriangles() Handle {
	return g.push(Command{Kind: KindDrawTriangles})
}

// NoOp appends a command that does nothing. It reserves a slot.
func (g *Gfx) NoOp() Handle {
	return g.push(Command{Kind: KindNoOp})
}

// at returns the command addressed by h, panicking on a foreign or
// out-of-range handle.
func (g *Gfx) at(h Handle) *Command {
	if h.list != g.id {
		panic(fmt.Sprintf("gfx: %v belongs to a different command list", h))
	}
	if h.index < 0 || h.index >= len(g.commands) {
		panic(fmt.Sprintf("gfx: %v out of range (%d commands)", h, len(g.commands)))
	}
	return &g.commands[h.index]
}

func (g *Gfx) atKind(h Handle, kind CommandKind) *Command {
	c := g.at(h)
	if c.Kind != kind {
		panic(fmt.Sprintf("gfx: %v is a %s command, not %s", h, c.Kind, kind))
	}
	return c
}

// SetProgram changes the slot selected by a program command.
func (g *Gfx) SetProgram(h Handle, slot int) {
	g.atKind(h, KindProgram).Slot = slot
}

// SetIndices changes the slot selected by an indices command.
func (g *Gfx) SetIndices(h Handle, slot int) {
	g.atKind(h, KindIndices).Slot = slot
}

// SetRotation changes the angle of a rotation command.
func (g *Gfx) SetRotation(h Handle, angle float32) {
	g.atKind(h, KindRotation).Value = angle
}

// SetSceneScale changes the factor of a scene scale command.
func (g *Gfx) SetSceneScale(h Handle, scale float32) {
	g.atKind(h, KindSceneScale).Value = scale
}

// SetObjectScale changes the factor of an object scale command.
func (g *Gfx) SetObjectScale(h Handle, scale float32) {
	g.atKind(h, KindObjectScale).Value = scale
}

// SetTranslation changes the vector of a translation command.
func (g *Gfx) SetTranslation(h Handle, x, y float32) {
	c := g.atKind(h, KindTranslation)
	c.X, c.Y = x, y
}

// SetOrigin changes the point of an origin command.
func (g *Gfx) SetOrigin(h Handle, x, y float32) {
	c := g.atKind(h, KindOrigin)
	c.X, c.Y = x, y
}

// Skip excludes the command from interpretation until Unskip.
func (g *Gfx) Skip(h Handle) {
	g.at(h).Flags |= FlagSkip
}

// Unskip clears the skip flag.
func (g *Gfx) Unskip(h Handle) {
	g.at(h).Flags &^= FlagSkip
}

// Skipped reports whether the command is currently skipped.
func (g *Gfx) Skipped(h Handle) bool {
	return g.at(h).Skipped()
}

// Command returns a copy of the command addressed by h.
func (g *Gfx) Command(h Handle) Command {
	return *g.at(h)
}

// Len returns the number of commands.
func (g *Gfx) Len() int {
	return len(g.commands)
}

// Dump writes one line per command.
func (g *Gfx) Dump(w io.Writer) error {
	for i, c := range g.commands {
		if _, err := fmt.Fprintf(w, "%4d %s\n", i, c); err != nil {
			return err
		}
	}
	return nil
}

// AddProgram compiles a program and returns its slot.
func (g *Gfx) AddProgram(vertex, fragment string) (int, error) {
	p, err := g.backend.CompileProgram(vertex, fragment)
	if err != nil {
		return 0, logging.WrapError(err, "compile program %d", len(g.programs))
	}
	g.programs = append(g.programs, p)
	return len(g.programs) - 1, nil
}

// AddIndices creates an index buffer and returns its slot.
func (g *Gfx) AddIndices(indices []uint32, topology Topology) (int, error) {
	b, err := g.backend.CreateIndices(indices, topology)
	if err != nil {
		return 0, logging.WrapError(err, "create index buffer %d", len(g.indices))
	}
	g.indices = append(g.indices, indexRecord{buffer: b, count: len(indices), topology: topology})
	return len(g.indices) - 1, nil
}

// ProgramCount returns the number of programs created.
func (g *Gfx) ProgramCount() int {
	return len(g.programs)
}

// IndicesCount returns the number of index buffers created.
func (g *Gfx) IndicesCount() int {
	return len(g.indices)
}

// AddLineVertex appends a line vertex to the backing store.
func (g *Gfx) AddLineVertex(x, y float32) {
	g.geometry.AddLineVertex(x, y)
}

// AddTriangleVertex appends a triangle vertex to the backing store.
func (g *Gfx) AddTriangleVertex(x, y float32, c Color) {
	g.geometry.AddTriangleVertex(x, y, c)
}

// LineLen returns the number of line vertices in the backing store.
func (g *Gfx) LineLen() int {
	return g.geometry.LineLen()
}

// TriangleLen returns the number of triangle vertices in the backing store.
func (g *Gfx) TriangleLen() int {
	return g.geometry.TriangleLen()
}

// rebuild re-uploads every non-empty vertex array.
func (g *Gfx) rebuild() error {
	if lines := g.geometry.Lines(); len(lines) > 0 {
		vb, err := g.backend.UploadLines(lines)
		if err != nil {
			return logging.WrapError(err, "upload %d line vertices", len(lines))
		}
		g.lineVertices = vb
	}
	if triangles := g.geometry.Triangles(); len(triangles) > 0 {
		vb, err := g.backend.UploadTriangles(triangles)
		if err != nil {
			return logging.WrapError(err, "upload %d triangle vertices", len(triangles))
		}
		g.triangleVertices = vb
	}
	g.geometry.dirty = false
	return nil
}

// frameState is the interpreter state of one Run.
type frameState struct {
	program  int
	indices  int
	uniforms Uniforms
}

// Run interprets the command list once and presents the frame.
func (g *Gfx) Run(ctx context.Context) error {
	if g.geometry.Dirty() {
		if err := g.rebuild(); err != nil {
			return err
		}
	}

	st := frameState{uniforms: DefaultUniforms(AspectRatio(g.backend.Surface()))}

	g.backend.Clear()
	for i := range g.commands {
		c := &g.commands[i]
		if c.Skipped() {
			continue
		}
		switch c.Kind {
		case KindDrawLines:
			if err := g.draw(ctx, i, PrimitiveLines, &st); err != nil {
				return err
			}
		case KindDrawTriangles:
			if err := g.draw(ctx, i, PrimitiveTriangles, &st); err != nil {
				return err
			}
		case KindNoOp:
		case KindProgram:
			g.checkProgram(i, c.Slot)
			st.program = c.Slot
		case KindIndices:
			g.checkIndices(i, c.Slot)
			st.indices = c.Slot
		case KindRotation:
			st.uniforms.Rotation = c.Value
		case KindSceneScale:
			st.uniforms.SceneScale = c.Value
		case KindObjectScale:
			st.uniforms.ObjectScale = c.Value
		case KindTranslation:
			st.uniforms.Translation = [2]float32{c.X, c.Y}
		case KindOrigin:
			st.uniforms.Origin = [2]float32{c.X, c.Y}
		}
	}

	if err := g.backend.Present(); err != nil {
		return logging.WrapError(err, "present frame")
	}
	return nil
}

func (g *Gfx) checkProgram(cmd, slot int) {
	if slot < 0 || slot >= len(g.programs) {
		panic(fmt.Sprintf("gfx: command %d selects program %d but only %d exist", cmd, slot, len(g.programs)))
	}
}

func (g *Gfx) checkIndices(cmd, slot int) {
	if slot < 0 || slot >= len(g.indices) {
		panic(fmt.Sprintf("gfx: command %d selects index buffer %d but only %d exist", cmd, slot, len(g.indices)))
	}
}

func (g *Gfx) draw(ctx context.Context, cmd int, prim Primitive, st *frameState) error {
	call := DrawCall{Primitive: prim, Uniforms: st.uniforms}
	switch prim {
	case PrimitiveLines:
		call.Vertices, call.VertexCount = g.lineVertices, g.geometry.LineLen()
	default:
		call.Vertices, call.VertexCount = g.triangleVertices, g.geometry.TriangleLen()
	}
	if call.Vertices == nil {
		g.logger.Warn(ctx, "no vertices set, skipping draw", "primitive", prim.String(), "command", cmd)
		return nil
	}

	g.checkProgram(cmd, st.program)
	g.checkIndices(cmd, st.indices)
	rec := g.indices[st.indices]
	call.Program = g.programs[st.program]
	call.Indices = rec.buffer
	call.IndexCount = rec.count
	call.Topology = rec.topology

	if err := g.backend.Draw(call); err != nil {
		return logging.WrapError(err, "draw command %d", cmd)
	}
	return nil
}
