package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/opd-ai/go-orbiter/pkg/gfx"
	"github.com/opd-ai/go-orbiter/pkg/logging"
)

// countingPresenter records how often it was called.
type countingPresenter struct {
	calls int
}

func (p *countingPresenter) Present(*TerminalBackend) error {
	p.calls++
	return nil
}

func newTerminalList(t *testing.T, w, h int) (*gfx.Gfx, *TerminalBackend) {
	t.Helper()
	b := NewTerminalBackend(w, h, nil)
	g := gfx.New(b, logging.Discard())
	if _, err := g.AddProgram(gfx.LineShader.Vertex, gfx.LineShader.Fragment); err != nil {
		t.Fatal(err)
	}
	return g, b
}

func run(t *testing.T, g *gfx.Gfx) {
	t.Helper()
	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestTerminalBackend_Surface(t *testing.T) {
	b := NewTerminalBackend(40, 12, nil)
	if w, h := b.Surface(); w != 40 || h != 24 {
		t.Errorf("Surface() = %d, %d, want 40, 24", w, h)
	}
	b.Resize(0, -3)
	if w, h := b.Size(); w != 1 || h != 1 {
		t.Errorf("Size() after degenerate resize = %d, %d", w, h)
	}
}

func TestTerminalBackend_HorizontalLine(t *testing.T) {
	g, b := newTerminalList(t, 20, 10)
	g.AddLineVertex(-1.5, 0)
	g.AddLineVertex(1.5, 0)
	slot, err := g.AddIndices([]uint32{0, 1}, gfx.TopologyStrip)
	if err != nil {
		t.Fatal(err)
	}
	g.Indices(slot)
	g.DrawLines()
	run(t, g)

	row := b.Row(5)
	if got := strings.Count(row, "-"); got < 14 {
		t.Errorf("row 5 = %q, want a horizontal run", row)
	}
	if c := b.Cell(10, 5); c.Rune != '-' || c.Fg != gfx.LineColor {
		t.Errorf("center cell = %+v", c)
	}
	if strings.TrimSpace(b.Row(0)) != "" {
		t.Errorf("row 0 = %q, want blank", b.Row(0))
	}
}

func TestTerminalBackend_LineIsClipped(t *testing.T) {
	g, b := newTerminalList(t, 16, 8)
	g.AddLineVertex(-1e7, 0)
	g.AddLineVertex(1e7, 0)
	g.AddLineVertex(-1e7, 1e7)
	g.AddLineVertex(1e7, 1e7)
	slot, err := g.AddIndices([]uint32{0, 1, 2, 3}, gfx.TopologyList)
	if err != nil {
		t.Fatal(err)
	}
	g.Indices(slot)
	g.DrawLines()
	run(t, g)

	if row := b.Row(4); row != strings.Repeat("-", 16) {
		t.Errorf("row 4 = %q, want a full line", row)
	}
}

func TestTerminalBackend_FillTriangle(t *testing.T) {
	g, b := newTerminalList(t, 20, 10)
	red := gfx.RGBA(1, 0, 0, 1)
	g.AddTriangleVertex(-2, -2, red)
	g.AddTriangleVertex(2, -2, red)
	g.AddTriangleVertex(0, 2, red)
	slot, err := g.AddIndices([]uint32{0, 1, 2}, gfx.TopologyList)
	if err != nil {
		t.Fatal(err)
	}
	g.Indices(slot)
	g.DrawTriangles()
	run(t, g)

	if c := b.Cell(10, 6); c.Bg[0] < 0.99 || c.Bg[1] > 0.01 || c.Bg[2] > 0.01 {
		t.Errorf("inside cell = %+v, want red background", c)
	}
	if c := b.Cell(0, 0); c.Bg != background {
		t.Errorf("corner cell = %+v, want untouched", c)
	}
}

func TestTerminalBackend_BlendsAlpha(t *testing.T) {
	b := NewTerminalBackend(2, 2, nil)
	b.plot(0, 0, '|')
	b.blend(0, 0, gfx.RGBA(1, 1, 1, 0.25))
	c := b.Cell(0, 0)
	if c.Bg[0] != 0.25 || c.Rune != '|' {
		t.Errorf("light blend = %+v", c)
	}
	b.blend(0, 0, gfx.RGBA(0, 0, 1, 1))
	c = b.Cell(0, 0)
	if c.Bg != gfx.RGBA(0, 0, 1, 1) || c.Rune != ' ' {
		t.Errorf("opaque blend = %+v", c)
	}
}

func TestTerminalBackend_DrawErrors(t *testing.T) {
	b := NewTerminalBackend(4, 4, nil)
	ib, _ := b.CreateIndices([]uint32{0, 5}, gfx.TopologyStrip)
	vb, _ := b.UploadLines([]gfx.LineVertex{{}, {}})

	tests := []struct {
		name string
		call gfx.DrawCall
		want string
	}{
		{"bad indices", gfx.DrawCall{Indices: 3, Vertices: vb}, "index buffer"},
		{"bad vertices", gfx.DrawCall{Indices: ib, Vertices: "nope"}, "vertex buffer"},
		{"index out of range", gfx.DrawCall{Indices: ib, Vertices: vb}, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.Draw(tt.call)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Draw() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLineSegments(t *testing.T) {
	idx := []uint32{0, 1, 2, 3}
	tests := []struct {
		topology gfx.Topology
		want     int
	}{
		{gfx.TopologyLoop, 4},
		{gfx.TopologyStrip, 3},
		{gfx.TopologyList, 2},
	}
	for _, tt := range tests {
		t.Run(tt.topology.String(), func(t *testing.T) {
			if got := lineSegments(idx, tt.topology); len(got) != tt.want {
				t.Errorf("segments = %v, want %d", got, tt.want)
			}
		})
	}
}

func TestTriangles(t *testing.T) {
	idx := []uint32{0, 1, 2, 3, 4, 5}
	tests := []struct {
		topology gfx.Topology
		want     int
	}{
		{gfx.TopologyList, 2},
		{gfx.TopologyStrip, 4},
		{gfx.TopologyLoop, 4},
	}
	for _, tt := range tests {
		t.Run(tt.topology.String(), func(t *testing.T) {
			if got := triangles(idx, tt.topology); len(got) != tt.want {
				t.Errorf("triangles = %v, want %d", got, tt.want)
			}
		})
	}
}

func TestSlopeRune(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   rune
	}{
		{"flat", 10, 0, '-'},
		{"vertical", 0, 5, '|'},
		{"rising", 4, -2, '/'},
		{"falling", 4, 2, '\\'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slopeRune(tt.dx, tt.dy); got != tt.want {
				t.Errorf("slopeRune(%v, %v) = %q, want %q", tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestTerminalBackend_Present(t *testing.T) {
	p := &countingPresenter{}
	b := NewTerminalBackend(3, 2, p)
	for i := 0; i < 2; i++ {
		if err := b.Present(); err != nil {
			t.Fatal(err)
		}
	}
	if b.Frames() != 2 || p.calls != 2 {
		t.Errorf("frames = %d, presenter calls = %d", b.Frames(), p.calls)
	}
}

func TestWriterPresenter(t *testing.T) {
	var buf bytes.Buffer
	b := NewTerminalBackend(3, 2, WriterPresenter{W: &buf})
	b.plot(1, 1, '*')
	if err := b.Present(); err != nil {
		t.Fatal(err)
	}

	out := strings.TrimPrefix(buf.String(), "\033[H\033[2J")
	want := "+---+\n|   |\n| * |\n+---+\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}
