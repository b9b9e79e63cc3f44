package physics

import "math"

// MovementState tracks ship kinematics. Units are world units per tick:
// the simulation runs at a fixed 60 Hz and never scales by elapsed time.
type MovementState struct {
	Position Vector2D
	Velocity Vector2D
	Heading  float64 // radians
}

// TurnInput selects the rotation applied in one tick.
type TurnInput int

const (
	TurnNone TurnInput = iota
	TurnLeft
	TurnRight
)

// Forward returns the unit direction the nose points at for heading,
// i.e. local +Y rotated by heading: (-sin h, cos h).
func Forward(heading float64) Vector2D {
	return Vector2D{X: -math.Sin(heading), Y: math.Cos(heading)}
}

// ThrustImpulse returns the velocity change of one thrust tick of strength k.
func ThrustImpulse(heading, k float64) Vector2D {
	return Forward(heading).Scale(k)
}

// UpdateMovement advances state by one tick with explicit Euler integration.
// Position moves by the velocity held at the start of the tick; turning and
// thrust then act on heading and velocity for the next tick.
func UpdateMovement(state *MovementState, turn TurnInput, turnRate float64, thrust bool, impulse float64) {
	state.Position = state.Position.Add(state.Velocity)

	switch turn {
	case TurnLeft:
		state.Heading += turnRate
	case TurnRight:
		state.Heading -= turnRate
	}

	if thrust {
		state.Velocity = state.Velocity.Add(ThrustImpulse(state.Heading, impulse))
	}
}
