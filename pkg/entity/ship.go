// pkg/entity/ship.go
package entity

import (
	"math"

	"github.com/opd-ai/go-orbiter/pkg/gfx"
	"github.com/opd-ai/go-orbiter/pkg/physics"
)

// ShipStats are the ship's tuning constants, all per tick.
type ShipStats struct {
	TurnRate float64
	Thrust   float64

	// Render scale is BaseScale + ScalePerUnit*(distance-radius),
	// never below MinScale.
	BaseScale    float64
	ScalePerUnit float64
	MinScale     float64
}

// DefaultShipStats returns the stats the game ships with.
func DefaultShipStats() ShipStats {
	return ShipStats{
		TurnRate:     0.05,
		Thrust:       0.00205,
		BaseScale:    2,
		ScalePerUnit: 0.01,
		MinScale:     1,
	}
}

// gearPart addresses one leg or foot in the command list.
type gearPart struct {
	Rotation    gfx.Handle
	Translation gfx.Handle
}

// ShipHandles are the command list slots the ship writes each tick.
type ShipHandles struct {
	Rotation    gfx.Handle
	Translation gfx.Handle
	ObjectScale gfx.Handle
	Exhaust     gfx.Handle

	LeftLeg, RightLeg   gearPart
	LeftFoot, RightFoot gearPart
}

// Ship is the player's lander.
type Ship struct {
	physics.MovementState
	Scale float64
	Flags ShipFlags
	Gear  GearState
	Stats ShipStats

	// Distance and Bearing relative to the planet from the last gravity step.
	Distance float64
	Bearing  float64

	handles ShipHandles
}

// NewShip creates a landed ship resting on top of planet with its gear down.
func NewShip(stats ShipStats, planet *Planet) *Ship {
	s := &Ship{
		Flags: Landed,
		Gear:  GearDown{},
		Stats: stats,
	}
	s.Position = planet.Position.Add(physics.Vector2D{Y: planet.Radius})
	s.Distance = planet.Radius
	s.Scale = s.scaleAt(planet.Radius, planet.Radius)
	return s
}

// Attach appends the ship's draw sequence to g and keeps the handles.
// Attach resets rotation and object scale at the end so later commands
// start clean, and leaves the line program selected.
func (s *Ship) Attach(g *gfx.Gfx, mesh ShipMesh) {
	h := &s.handles
	h.ObjectScale = g.ObjectScale(float32(s.Scale))

	h.Translation = g.Translation(s.Position.Float32())
	h.Rotation = g.Rotation(float32(s.Heading))
	g.Program(mesh.LineProgram)
	g.Indices(mesh.Hull)
	g.DrawLines()
	g.Program(mesh.TriangleProgram)
	g.Indices(mesh.Exhaust)
	h.Exhaust = g.DrawTriangles()
	g.Skip(h.Exhaust)
	g.Program(mesh.LineProgram)

	for _, part := range []struct {
		p    *gearPart
		mesh int
	}{
		{&h.LeftLeg, mesh.Leg},
		{&h.RightLeg, mesh.Leg},
		{&h.LeftFoot, mesh.Foot},
		{&h.RightFoot, mesh.Foot},
	} {
		part.p.Translation = g.Translation(0, 0)
		part.p.Rotation = g.Rotation(0)
		g.Indices(part.mesh)
		g.DrawLines()
	}

	g.Rotation(0)
	g.ObjectScale(gfx.DefaultObjectScale)
	s.sync(g)
}

// Handles returns the ship's command list handles.
func (s *Ship) Handles() ShipHandles {
	return s.handles
}

// Turn resolves the rotate flags. Left wins when both are held.
func (s *Ship) Turn() physics.TurnInput {
	switch {
	case s.Flags.Has(RotatingLeft):
		return physics.TurnLeft
	case s.Flags.Has(RotatingRight):
		return physics.TurnRight
	default:
		return physics.TurnNone
	}
}

// Tick integrates one step of motion and control input, then writes the
// hull handles.
func (s *Ship) Tick(g *gfx.Gfx) {
	thrust := s.Flags.Has(ThrustOn)
	physics.UpdateMovement(&s.MovementState, s.Turn(), s.Stats.TurnRate, thrust, s.Stats.Thrust)

	if thrust {
		s.Flags &^= Landed
		g.Unskip(s.handles.Exhaust)
	} else {
		g.Skip(s.handles.Exhaust)
	}
	s.syncHull(g)
}

// CycleGear toggles the gear direction.
func (s *Ship) CycleGear() {
	s.Gear = s.Gear.Cycle()
}

// AdvanceGear steps the gear animation and writes the gear handles.
func (s *Ship) AdvanceGear(g *gfx.Gfx) {
	s.Gear = s.Gear.Advance()
	s.syncGear(g)
}

// Gravity applies the planet's pull or resolves surface contact, updates
// the render scale and writes every ship handle.
func (s *Ship) Gravity(planet *Planet, g *gfx.Gfx) physics.GravityResult {
	res := physics.ApplyGravity(&s.MovementState, planet.Well(), s.Flags.Has(Landed))
	if res.Landed {
		s.Flags |= Landed
	}
	s.Distance = res.Distance
	s.Bearing = res.Bearing
	s.Scale = s.scaleAt(res.Distance, planet.Radius)
	s.sync(g)
	return res
}

// Altitude is the height above the planet surface from the last gravity step.
func (s *Ship) Altitude(planet *Planet) float64 {
	return math.Max(0, s.Distance-planet.Radius)
}

func (s *Ship) scaleAt(distance, radius float64) float64 {
	scale := s.Stats.BaseScale + s.Stats.ScalePerUnit*(distance-radius)
	return math.Max(scale, s.Stats.MinScale)
}

// GearPose is the world placement of the four gear parts.
type GearPose struct {
	LeftLeg, RightLeg   physics.Vector2D
	LeftFoot, RightFoot physics.Vector2D
	Angles              GearAngles
}

// Pose computes where the gear parts sit for the current state.
// Leg positions are the ship position plus the mount offset, scaled and
// rotated by the heading. Feet hang off the rotated leg.
func (s *Ship) Pose() GearPose {
	a := AnglesFor(s.Gear)
	leg := func(mount physics.Vector2D) physics.Vector2D {
		return s.Position.Add(mount.Scale(s.Scale).Rotate(s.Heading))
	}
	foot := func(legPos physics.Vector2D, legAngle float64) physics.Vector2D {
		return legPos.Add(footOffset.Scale(s.Scale).Rotate(s.Heading + legAngle))
	}

	p := GearPose{Angles: a}
	p.LeftLeg = leg(leftMount)
	p.RightLeg = leg(rightMount)
	p.LeftFoot = foot(p.LeftLeg, a.LeftLeg)
	p.RightFoot = foot(p.RightLeg, a.RightLeg)
	return p
}

func (s *Ship) sync(g *gfx.Gfx) {
	s.syncHull(g)
	s.syncGear(g)
}

func (s *Ship) syncHull(g *gfx.Gfx) {
	g.SetRotation(s.handles.Rotation, float32(s.Heading))
	x, y := s.Position.Float32()
	g.SetTranslation(s.handles.Translation, x, y)
	g.SetObjectScale(s.handles.ObjectScale, float32(s.Scale))
}

func (s *Ship) syncGear(g *gfx.Gfx) {
	p := s.Pose()
	h := &s.handles
	for _, part := range []struct {
		part  gearPart
		pos   physics.Vector2D
		angle float64
	}{
		{h.LeftLeg, p.LeftLeg, s.Heading + p.Angles.LeftLeg},
		{h.RightLeg, p.RightLeg, s.Heading + p.Angles.RightLeg},
		{h.LeftFoot, p.LeftFoot, s.Heading + p.Angles.LeftLeg + p.Angles.LeftFoot},
		{h.RightFoot, p.RightFoot, s.Heading + p.Angles.RightLeg + p.Angles.RightFoot},
	} {
		x, y := part.pos.Float32()
		g.SetTranslation(part.part.Translation, x, y)
		g.SetRotation(part.part.Rotation, float32(part.angle))
	}
}
