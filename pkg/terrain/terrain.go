// Package terrain generates the planet's background meshes: sky glow,
// mountain and hill ridges, the ground disc and the surface outline.
// Generation is deterministic for a given seed.
package terrain

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-orbiter/pkg/gfx"
	"github.com/opd-ai/go-orbiter/pkg/physics"
)

// DefaultSegments is the number of samples around the planet.
const DefaultSegments = 360

// Palette used by the default scene.
var (
	SkyColor      = gfx.RGBA(0.25, 0.45, 0.85, 0.8)
	MountainColor = gfx.RGBA(0.28, 0.25, 0.32, 1)
	HillColor     = gfx.RGBA(0.18, 0.38, 0.12, 1)
	GroundColor   = gfx.RGBA(0.12, 0.1, 0.08, 1)
)

// Ridge describes a band of noisy peaks standing on the surface.
type Ridge struct {
	MinHeight float64
	MaxHeight float64
	// Smoothing is the number of box-filter passes over the raw heights.
	Smoothing int
	// Sink extends the band below the surface so parallax shifts never
	// open a gap between ridge and ground.
	Sink  float64
	Color gfx.Color
}

// Mountains and Hills are the two default ridges.
var (
	Mountains = Ridge{MinHeight: 20, MaxHeight: 90, Smoothing: 1, Sink: 60, Color: MountainColor}
	Hills     = Ridge{MinHeight: 4, MaxHeight: 18, Smoothing: 3, Sink: 30, Color: HillColor}
)

// Generator writes terrain meshes into a command list's backing store.
type Generator struct {
	g        *gfx.Gfx
	center   physics.Vector2D
	radius   float64
	segments int
	rng      *rand.Rand
}

// New creates a generator for a planet at center with the given radius.
func New(g *gfx.Gfx, center physics.Vector2D, radius float64, seed uint64) *Generator {
	return &Generator{
		g:        g,
		center:   center,
		radius:   radius,
		segments: DefaultSegments,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// WithSegments sets the sample count; values below 3 are raised to 3.
func (t *Generator) WithSegments(n int) *Generator {
	t.segments = max(n, 3)
	return t
}

// point returns the world position at sample i and distance r from the
// center, using the bearing convention of the physics package.
func (t *Generator) point(i int, r float64) (float32, float32) {
	b := 2 * math.Pi * float64(i) / float64(t.segments)
	return t.center.Add(physics.FromBearing(b, r)).Float32()
}

// band appends a closed ring between inner and outer radii per sample and
// returns its triangle list slot.
func (t *Generator) band(inner, outer []float64, innerColor, outerColor gfx.Color) (int, error) {
	base := uint32(t.g.TriangleLen())
	n := t.segments
	for i := 0; i < n; i++ {
		x, y := t.point(i, inner[i])
		t.g.AddTriangleVertex(x, y, innerColor)
		x, y = t.point(i, outer[i])
		t.g.AddTriangleVertex(x, y, outerColor)
	}

	idx := make([]uint32, 0, n*6)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		in0, out0 := base+uint32(2*i), base+uint32(2*i+1)
		in1, out1 := base+uint32(2*j), base+uint32(2*j+1)
		idx = append(idx, in0, out0, out1, in0, out1, in1)
	}
	return t.g.AddIndices(idx, gfx.TopologyList)
}

func (t *Generator) constant(r float64) []float64 {
	rs := make([]float64, t.segments)
	for i := range rs {
		rs[i] = r
	}
	return rs
}

// Sky appends a glow ring from the surface up to height, fading from color
// at the horizon to transparent.
func (t *Generator) Sky(height float64, color gfx.Color) (int, error) {
	if height <= 0 {
		return 0, fmt.Errorf("sky height must be positive, got %v", height)
	}
	faded := color
	faded[3] = 0
	return t.band(t.constant(t.radius), t.constant(t.radius+height), color, faded)
}

// Heights samples the ridge's peak heights around the planet.
func (t *Generator) Heights(r Ridge) []float64 {
	h := make([]float64, t.segments)
	for i := range h {
		h[i] = r.MinHeight + t.rng.Float64()*(r.MaxHeight-r.MinHeight)
	}
	tmp := make([]float64, len(h))
	for pass := 0; pass < r.Smoothing; pass++ {
		for i := range h {
			prev := h[(i+len(h)-1)%len(h)]
			next := h[(i+1)%len(h)]
			tmp[i] = (prev + h[i] + next) / 3
		}
		h, tmp = tmp, h
	}
	return h
}

// Ridge appends a ridge band and returns its triangle list slot.
func (t *Generator) Ridge(r Ridge) (int, error) {
	if r.MaxHeight < r.MinHeight {
		return 0, fmt.Errorf("ridge max height %v below min height %v", r.MaxHeight, r.MinHeight)
	}
	heights := t.Heights(r)
	outer := make([]float64, len(heights))
	for i, h := range heights {
		outer[i] = t.radius + h
	}
	return t.band(t.constant(t.radius-r.Sink), outer, r.Color, r.Color)
}

// Ground appends the planet body as a triangle fan expanded to a list.
func (t *Generator) Ground(color gfx.Color) (int, error) {
	base := uint32(t.g.TriangleLen())
	cx, cy := t.center.Float32()
	t.g.AddTriangleVertex(cx, cy, color)
	for i := 0; i < t.segments; i++ {
		x, y := t.point(i, t.radius)
		t.g.AddTriangleVertex(x, y, color)
	}

	idx := make([]uint32, 0, t.segments*3)
	for i := 0; i < t.segments; i++ {
		j := (i + 1) % t.segments
		idx = append(idx, base, base+1+uint32(i), base+1+uint32(j))
	}
	return t.g.AddIndices(idx, gfx.TopologyList)
}

// Outline appends the surface circle as a line loop.
func (t *Generator) Outline() (int, error) {
	base := uint32(t.g.LineLen())
	idx := make([]uint32, t.segments)
	for i := range idx {
		x, y := t.point(i, t.radius)
		t.g.AddLineVertex(x, y)
		idx[i] = base + uint32(i)
	}
	return t.g.AddIndices(idx, gfx.TopologyLoop)
}
