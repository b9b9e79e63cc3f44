package render

import (
	"context"
	"testing"

	"github.com/opd-ai/go-orbiter/pkg/gfx"
	"github.com/opd-ai/go-orbiter/pkg/logging"
)

func TestNullBackend_CountsWork(t *testing.T) {
	b := NewNullBackend(logging.Discard())
	g := gfx.New(b, logging.Discard())
	if _, err := g.AddProgram("v", "f"); err != nil {
		t.Fatal(err)
	}
	g.AddLineVertex(0, 0)
	g.AddLineVertex(1, 1)
	slot, err := g.AddIndices([]uint32{0, 1}, gfx.TopologyStrip)
	if err != nil {
		t.Fatal(err)
	}
	g.Indices(slot)
	g.DrawLines()
	g.DrawLines()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := g.Run(ctx); err != nil {
			t.Fatalf("Run: %v", err)
		}
	}

	frames, draws, uploads := b.Stats()
	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
	if draws != 2 {
		t.Errorf("draws in last frame = %d, want 2", draws)
	}
	if uploads != 1 {
		t.Errorf("uploads = %d, want 1", uploads)
	}
}

func TestNullBackend_Surface(t *testing.T) {
	b := NewNullBackend(nil)
	if w, h := b.Surface(); w != 800 || h != 600 {
		t.Errorf("default surface = %dx%d", w, h)
	}
	b.SetSurface(320, 240)
	if w, h := b.Surface(); w != 320 || h != 240 {
		t.Errorf("surface = %dx%d", w, h)
	}
}
