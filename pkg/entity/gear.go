// pkg/entity/gear.go
package entity

import "fmt"

// GearSteps is the number of ticks a full open or close takes.
const GearSteps = 200

// Closed angles in radians, left side. The right side mirrors the sign.
const (
	LegClosedAngle  = 1.4
	FootClosedAngle = -1.1
)

// GearState is the landing gear animation state. The concrete variants are
// GearUp, GearDown, GearOpening and GearClosing; no other type implements it.
type GearState interface {
	// Cycle returns the state after one gear toggle.
	Cycle() GearState
	// Advance returns the state after one tick.
	Advance() GearState
	// Extension is 0 when fully retracted and 1 when fully deployed.
	Extension() float64
	fmt.Stringer

	gearState()
}

// GearUp is fully retracted.
type GearUp struct{}

// GearDown is fully deployed.
type GearDown struct{}

// GearOpening is deploying; Step counts up toward GearSteps.
type GearOpening struct{ Step int }

// GearClosing is retracting; Step counts down toward zero.
type GearClosing struct{ Step int }

func (GearUp) gearState()      {}
func (GearDown) gearState()    {}
func (GearOpening) gearState() {}
func (GearClosing) gearState() {}

func (GearUp) Cycle() GearState   { return GearOpening{Step: 0} }
func (GearDown) Cycle() GearState { return GearClosing{Step: GearSteps - 1} }

// Cycle reverses in place so no progress is lost.
func (g GearOpening) Cycle() GearState { return GearClosing(g) }

// Cycle reverses in place so no progress is lost.
func (g GearClosing) Cycle() GearState { return GearOpening(g) }

func (g GearUp) Advance() GearState   { return g }
func (g GearDown) Advance() GearState { return g }

func (g GearOpening) Advance() GearState {
	g.Step++
	if g.Step >= GearSteps {
		return GearDown{}
	}
	return g
}

func (g GearClosing) Advance() GearState {
	g.Step--
	if g.Step <= 0 {
		return GearUp{}
	}
	return g
}

func (GearUp) Extension() float64        { return 0 }
func (GearDown) Extension() float64      { return 1 }
func (g GearOpening) Extension() float64 { return float64(g.Step) / GearSteps }
func (g GearClosing) Extension() float64 { return float64(g.Step) / GearSteps }

func (GearUp) String() string        { return "up" }
func (GearDown) String() string      { return "down" }
func (g GearOpening) String() string { return fmt.Sprintf("opening(%d)", g.Step) }
func (g GearClosing) String() string { return fmt.Sprintf("closing(%d)", g.Step) }

// GearAngles are the four joint angles for one gear state, relative to the
// ship (legs) and to their leg (feet).
type GearAngles struct {
	LeftLeg, RightLeg   float64
	LeftFoot, RightFoot float64
}

// AnglesFor interpolates linearly between the closed angles and zero.
func AnglesFor(state GearState) GearAngles {
	closed := 1 - state.Extension()
	return GearAngles{
		LeftLeg:   LegClosedAngle * closed,
		RightLeg:  -LegClosedAngle * closed,
		LeftFoot:  FootClosedAngle * closed,
		RightFoot: -FootClosedAngle * closed,
	}
}

// Deployed reports whether the gear is fully down.
func Deployed(state GearState) bool {
	_, ok := state.(GearDown)
	return ok
}

// Retracted reports whether the gear is fully up.
func Retracted(state GearState) bool {
	_, ok := state.(GearUp)
	return ok
}
