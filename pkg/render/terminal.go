package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/opd-ai/go-orbiter/pkg/gfx"
)

// Cell is one character cell of a terminal frame.
type Cell struct {
	Rune rune
	Fg   gfx.Color
	Bg   gfx.Color
}

var (
	background = gfx.RGBA(0, 0, 0, 1)
	blankCell  = Cell{Rune: ' ', Fg: gfx.LineColor, Bg: background}
)

// Presenter shows a finished terminal frame.
type Presenter interface {
	Present(frame *TerminalBackend) error
}

type terminalIndices struct {
	indices  []uint32
	topology gfx.Topology
}

// TerminalBackend rasterizes the command list into a grid of cells.
// Terminal cells are about twice as tall as wide, so Surface reports twice
// the row count and the aspect correction keeps shapes square.
type TerminalBackend struct {
	width     int
	height    int
	cells     []Cell
	presenter Presenter
	programs  int
	frames    int
}

// NewTerminalBackend creates a backend for a width x height cell grid.
// presenter may be nil.
func NewTerminalBackend(width, height int, presenter Presenter) *TerminalBackend {
	t := &TerminalBackend{presenter: presenter}
	t.Resize(width, height)
	return t
}

// Resize changes the grid size and blanks it.
func (t *TerminalBackend) Resize(width, height int) {
	t.width = max(width, 1)
	t.height = max(height, 1)
	t.cells = make([]Cell, t.width*t.height)
	t.Clear()
}

// Size returns the grid size in cells.
func (t *TerminalBackend) Size() (int, int) {
	return t.width, t.height
}

// Cell returns the cell at column x, row y. Out of range returns a blank.
func (t *TerminalBackend) Cell(x, y int) Cell {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return blankCell
	}
	return t.cells[y*t.width+x]
}

// Row returns the runes of row y.
func (t *TerminalBackend) Row(y int) string {
	var b strings.Builder
	for x := 0; x < t.width; x++ {
		b.WriteRune(t.Cell(x, y).Rune)
	}
	return b.String()
}

// Frames returns the number of presented frames.
func (t *TerminalBackend) Frames() int {
	return t.frames
}

// CompileProgram implements gfx.Backend. Shader text is not used.
func (t *TerminalBackend) CompileProgram(vertex, fragment string) (gfx.Program, error) {
	t.programs++
	return t.programs - 1, nil
}

// CreateIndices implements gfx.Backend.
func (t *TerminalBackend) CreateIndices(indices []uint32, topology gfx.Topology) (gfx.IndexBuffer, error) {
	return terminalIndices{
		indices:  append([]uint32(nil), indices...),
		topology: topology,
	}, nil
}

// UploadLines implements gfx.Backend.
func (t *TerminalBackend) UploadLines(vertices []gfx.LineVertex) (gfx.VertexBuffer, error) {
	return append([]gfx.LineVertex(nil), vertices...), nil
}

// UploadTriangles implements gfx.Backend.
func (t *TerminalBackend) UploadTriangles(vertices []gfx.TriangleVertex) (gfx.VertexBuffer, error) {
	return append([]gfx.TriangleVertex(nil), vertices...), nil
}

// Surface implements gfx.Backend.
func (t *TerminalBackend) Surface() (int, int) {
	return t.width, t.height * 2
}

// Clear implements gfx.Backend.
func (t *TerminalBackend) Clear() {
	for i := range t.cells {
		t.cells[i] = blankCell
	}
}

// Present implements gfx.Backend.
func (t *TerminalBackend) Present() error {
	t.frames++
	if t.presenter == nil {
		return nil
	}
	return t.presenter.Present(t)
}

// Draw implements gfx.Backend.
func (t *TerminalBackend) Draw(call gfx.DrawCall) error {
	ib, ok := call.Indices.(terminalIndices)
	if !ok {
		return fmt.Errorf("terminal: unexpected index buffer %T", call.Indices)
	}

	var points [][2]float64
	var colors []gfx.Color
	switch vb := call.Vertices.(type) {
	case []gfx.LineVertex:
		points = make([][2]float64, len(vb))
		for i, v := range vb {
			points[i] = t.project(call.Uniforms.Transform(v.Position))
		}
	case []gfx.TriangleVertex:
		points = make([][2]float64, len(vb))
		colors = make([]gfx.Color, len(vb))
		for i, v := range vb {
			points[i] = t.project(call.Uniforms.Transform(v.Position))
			colors[i] = v.Color
		}
	default:
		return fmt.Errorf("terminal: unexpected vertex buffer %T", call.Vertices)
	}

	for _, i := range ib.indices {
		if int(i) >= len(points) {
			return fmt.Errorf("terminal: index %d out of range of %d vertices", i, len(points))
		}
	}

	if call.Primitive == gfx.PrimitiveLines {
		for _, seg := range lineSegments(ib.indices, ib.topology) {
			t.line(points[seg[0]], points[seg[1]])
		}
		return nil
	}
	for _, tri := range triangles(ib.indices, ib.topology) {
		t.fill(
			[3][2]float64{points[tri[0]], points[tri[1]], points[tri[2]]},
			[3]gfx.Color{colors[tri[0]], colors[tri[1]], colors[tri[2]]},
		)
	}
	return nil
}

// project maps normalized device coordinates to fractional cell
// coordinates, row 0 at the top.
func (t *TerminalBackend) project(p [2]float32) [2]float64 {
	return [2]float64{
		(float64(p[0]) + 1) / 2 * float64(t.width),
		(1 - float64(p[1])) / 2 * float64(t.height),
	}
}

func lineSegments(idx []uint32, topology gfx.Topology) [][2]uint32 {
	var segs [][2]uint32
	switch topology {
	case gfx.TopologyList:
		for i := 0; i+1 < len(idx); i += 2 {
			segs = append(segs, [2]uint32{idx[i], idx[i+1]})
		}
	default:
		for i := 0; i+1 < len(idx); i++ {
			segs = append(segs, [2]uint32{idx[i], idx[i+1]})
		}
		if topology == gfx.TopologyLoop && len(idx) > 2 {
			segs = append(segs, [2]uint32{idx[len(idx)-1], idx[0]})
		}
	}
	return segs
}

// triangles expands an index buffer into triangles. A loop is drawn as a
// fan around its first index.
func triangles(idx []uint32, topology gfx.Topology) [][3]uint32 {
	var tris [][3]uint32
	switch topology {
	case gfx.TopologyList:
		for i := 0; i+2 < len(idx); i += 3 {
			tris = append(tris, [3]uint32{idx[i], idx[i+1], idx[i+2]})
		}
	case gfx.TopologyStrip:
		for i := 0; i+2 < len(idx); i++ {
			tris = append(tris, [3]uint32{idx[i], idx[i+1], idx[i+2]})
		}
	case gfx.TopologyLoop:
		for i := 1; i+1 < len(idx); i++ {
			tris = append(tris, [3]uint32{idx[0], idx[i], idx[i+1]})
		}
	}
	return tris
}

// clip trims the segment a-b to the grid with Liang-Barsky.
func (t *TerminalBackend) clip(a, b [2]float64) ([2]float64, [2]float64, bool) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, a[0]},
		{dx, float64(t.width) - a[0]},
		{-dy, a[1]},
		{dy, float64(t.height) - a[1]},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	return [2]float64{a[0] + t0*dx, a[1] + t0*dy}, [2]float64{a[0] + t1*dx, a[1] + t1*dy}, true
}

// slopeRune picks a glyph for a segment, counting rows double.
func slopeRune(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(2*dy)
	switch {
	case ay < 0.5*ax:
		return '-'
	case ax < 0.5*ay:
		return '|'
	case dx*dy < 0:
		return '/'
	default:
		return '\\'
	}
}

// line draws a segment with Bresenham's algorithm.
func (t *TerminalBackend) line(a, b [2]float64) {
	glyph := slopeRune(b[0]-a[0], b[1]-a[1])
	a, b, ok := t.clip(a, b)
	if !ok {
		return
	}

	x0, y0 := int(math.Floor(a[0])), int(math.Floor(a[1]))
	x1, y1 := int(math.Floor(b[0])), int(math.Floor(b[1]))
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		t.plot(x0, y0, glyph)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (t *TerminalBackend) plot(x, y int, r rune) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	c := &t.cells[y*t.width+x]
	c.Rune = r
	c.Fg = gfx.LineColor
}

// fill paints every cell whose center lies inside the triangle, blending
// the interpolated color over the cell background.
func (t *TerminalBackend) fill(p [3][2]float64, col [3]gfx.Color) {
	area := edge(p[0], p[1], p[2])
	if area == 0 {
		return
	}

	minX := max(0, int(math.Floor(math.Min(p[0][0], math.Min(p[1][0], p[2][0])))))
	maxX := min(t.width-1, int(math.Ceil(math.Max(p[0][0], math.Max(p[1][0], p[2][0])))))
	minY := max(0, int(math.Floor(math.Min(p[0][1], math.Min(p[1][1], p[2][1])))))
	maxY := min(t.height-1, int(math.Ceil(math.Max(p[0][1], math.Max(p[1][1], p[2][1])))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			c := [2]float64{float64(x) + 0.5, float64(y) + 0.5}
			w0 := edge(p[1], p[2], c) / area
			w1 := edge(p[2], p[0], c) / area
			w2 := edge(p[0], p[1], c) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			var rgba gfx.Color
			for i := range rgba {
				rgba[i] = float32(w0)*col[0][i] + float32(w1)*col[1][i] + float32(w2)*col[2][i]
			}
			t.blend(x, y, rgba)
		}
	}
}

func edge(a, b, c [2]float64) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func (t *TerminalBackend) blend(x, y int, c gfx.Color) {
	cell := &t.cells[y*t.width+x]
	a := c[3]
	for i := 0; i < 3; i++ {
		cell.Bg[i] = cell.Bg[i]*(1-a) + c[i]*a
	}
	if a >= 0.5 {
		cell.Rune = ' '
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// WriterPresenter prints frames as plain text, framed by a border.
type WriterPresenter struct {
	W io.Writer
}

// Present implements Presenter.
func (p WriterPresenter) Present(frame *TerminalBackend) error {
	w, h := frame.Size()
	var b strings.Builder
	b.WriteString("\033[H\033[2J")
	b.WriteString("+" + strings.Repeat("-", w) + "+\n")
	for y := 0; y < h; y++ {
		b.WriteString("|" + frame.Row(y) + "|\n")
	}
	b.WriteString("+" + strings.Repeat("-", w) + "+\n")
	_, err := io.WriteString(p.W, b.String())
	return err
}
