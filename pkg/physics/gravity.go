package physics

// Well is a circular body pulling toward its center with inverse-square
// strength. Its surface is the circle of the given radius.
type Well struct {
	Center   Vector2D
	Radius   float64
	Strength float64

	// Epsilon is the tolerance below Radius still considered airborne.
	Epsilon float64
	// MinDistance bounds the distance used in the pull so that a body at
	// the center never divides by zero.
	MinDistance float64
}

// GravityResult reports the geometry computed by one gravity step.
type GravityResult struct {
	Distance float64
	Bearing  float64
	Landed   bool
}

// Pull returns the magnitude of the acceleration at distance from the center.
func (w Well) Pull(distance float64) float64 {
	if distance < w.MinDistance {
		distance = w.MinDistance
	}
	if distance <= 0 {
		return 0
	}
	return w.Strength / (distance * distance)
}

// SurfacePoint returns the point on the surface along bearing.
func (w Well) SurfacePoint(bearing float64) Vector2D {
	return w.Center.Add(FromBearing(bearing, w.Radius))
}

// ApplyGravity runs one gravity tick. While the body is above the surface
// and not landed, velocity is pulled toward the center. Otherwise the body is
// snapped onto the surface along its bearing, velocity is zeroed and the
// result reports Landed.
func ApplyGravity(state *MovementState, well Well, landed bool) GravityResult {
	distance := state.Position.Distance(well.Center)
	bearing := Bearing(state.Position, well.Center)

	if distance > well.Radius-well.Epsilon && !landed {
		state.Velocity = state.Velocity.Sub(FromBearing(bearing, well.Pull(distance)))
		return GravityResult{Distance: distance, Bearing: bearing}
	}

	state.Position = well.SurfacePoint(bearing)
	state.Velocity = Vector2D{}
	return GravityResult{Distance: well.Radius, Bearing: bearing, Landed: true}
}
