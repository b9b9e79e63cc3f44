// pkg/entity/mesh.go
package entity

import (
	"github.com/opd-ai/go-orbiter/pkg/gfx"
	"github.com/opd-ai/go-orbiter/pkg/physics"
)

// Ship geometry in ship-local units. The nose points along +Y.
var (
	hullOutline = [][2]float32{
		{0, 1}, {0.6, -0.6}, {0.3, -0.4}, {-0.3, -0.4}, {-0.6, -0.6},
	}
	exhaustShape = [][2]float32{
		{-0.2, -0.45}, {0.2, -0.45}, {0, -1.1},
	}
	exhaustColor = gfx.RGBA(1, 0.55, 0.1, 1)

	// Leg mount points on the hull.
	leftMount  = physics.Vector2D{X: -0.45, Y: -0.5}
	rightMount = physics.Vector2D{X: 0.45, Y: -0.5}
	// Offset from a leg's mount to its foot, before the leg rotation.
	footOffset = physics.Vector2D{X: 0, Y: -0.6}
)

// ShipMesh holds the index slots of the ship parts and the programs that
// draw them. Both programs default to slot 0.
type ShipMesh struct {
	Hull    int
	Exhaust int
	Leg     int
	Foot    int

	LineProgram     int
	TriangleProgram int
}

// BuildShipMesh appends the ship's vertices and index buffers to g.
func BuildShipMesh(g *gfx.Gfx) (ShipMesh, error) {
	var m ShipMesh
	var err error

	base := uint32(g.LineLen())
	idx := make([]uint32, 0, len(hullOutline))
	for i, p := range hullOutline {
		g.AddLineVertex(p[0], p[1])
		idx = append(idx, base+uint32(i))
	}
	if m.Hull, err = g.AddIndices(idx, gfx.TopologyLoop); err != nil {
		return m, err
	}

	// Leg: a segment from the mount down to the foot joint.
	base = uint32(g.LineLen())
	g.AddLineVertex(0, 0)
	fx, fy := footOffset.Float32()
	g.AddLineVertex(fx, fy)
	if m.Leg, err = g.AddIndices([]uint32{base, base + 1}, gfx.TopologyStrip); err != nil {
		return m, err
	}

	// Foot: a short pad centered on the joint.
	base = uint32(g.LineLen())
	g.AddLineVertex(-0.2, 0)
	g.AddLineVertex(0.2, 0)
	if m.Foot, err = g.AddIndices([]uint32{base, base + 1}, gfx.TopologyStrip); err != nil {
		return m, err
	}

	base = uint32(g.TriangleLen())
	idx = make([]uint32, 0, len(exhaustShape))
	for i, p := range exhaustShape {
		g.AddTriangleVertex(p[0], p[1], exhaustColor)
		idx = append(idx, base+uint32(i))
	}
	if m.Exhaust, err = g.AddIndices(idx, gfx.TopologyList); err != nil {
		return m, err
	}
	return m, nil
}
