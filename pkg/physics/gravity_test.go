package physics

import (
	"math"
	"testing"
)

func testWell() Well {
	return Well{
		Center:      Vector2D{},
		Radius:      1000,
		Strength:    1000,
		Epsilon:     0.01,
		MinDistance: 1,
	}
}

func TestWell_Pull(t *testing.T) {
	w := testWell()
	tests := []struct {
		name     string
		distance float64
		expected float64
	}{
		{"at surface", 1000, 0.001},
		{"twice as far", 2000, 0.00025},
		{"clamped at zero", 0, 1000},
		{"clamped below minimum", 0.5, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Pull(tt.distance); !almostEqual(got, tt.expected) {
				t.Errorf("Pull(%v) = %v, expected %v", tt.distance, got, tt.expected)
			}
		})
	}
}

func TestApplyGravity_PullsTowardCenter(t *testing.T) {
	tests := []struct {
		name     string
		position Vector2D
	}{
		{"above", Vector2D{X: 0, Y: 2000}},
		{"right", Vector2D{X: 2000, Y: 0}},
		{"below left", Vector2D{X: -1500, Y: -1500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &MovementState{Position: tt.position}
			result := ApplyGravity(state, testWell(), false)

			if result.Landed {
				t.Fatal("ApplyGravity() landed while above the surface")
			}
			// Velocity must point back at the center.
			toCenter := state.Position.Scale(-1)
			dot := state.Velocity.X*toCenter.X + state.Velocity.Y*toCenter.Y
			if dot <= 0 {
				t.Errorf("Velocity %v does not point toward the center", state.Velocity)
			}
			if want := testWell().Pull(result.Distance); !almostEqual(state.Velocity.Length(), want) {
				t.Errorf("|Velocity| = %v, expected %v", state.Velocity.Length(), want)
			}
		})
	}
}

func TestApplyGravity_SnapsBelowSurface(t *testing.T) {
	state := &MovementState{
		Position: Vector2D{X: 300, Y: 400}, // distance 500, inside the planet
		Velocity: Vector2D{X: 3, Y: -7},
	}
	result := ApplyGravity(state, testWell(), false)

	if !result.Landed {
		t.Fatal("ApplyGravity() did not land below the surface")
	}
	if d := state.Position.Length(); !almostEqual(d, 1000) {
		t.Errorf("distance after snap = %v, expected 1000", d)
	}
	if !almostEqual(Bearing(state.Position, Vector2D{}), math.Atan2(300, 400)) {
		t.Errorf("snap changed the bearing: %v", state.Position)
	}
	if state.Velocity != (Vector2D{}) {
		t.Errorf("Velocity = %v, expected zero", state.Velocity)
	}
}

func TestApplyGravity_LandedIsIdempotent(t *testing.T) {
	w := testWell()
	state := &MovementState{Position: Vector2D{X: 0, Y: 1000}}
	ApplyGravity(state, w, true)
	first := state.Position

	for i := 0; i < 1000; i++ {
		result := ApplyGravity(state, w, true)
		if !result.Landed {
			t.Fatalf("iteration %d: not landed", i)
		}
		if state.Velocity != (Vector2D{}) {
			t.Fatalf("iteration %d: Velocity = %v, expected exactly zero", i, state.Velocity)
		}
		if !almostEqual(state.Position.Distance(w.Center), w.Radius) {
			t.Fatalf("iteration %d: distance = %v", i, state.Position.Distance(w.Center))
		}
	}
	if !vecAlmostEqual(state.Position, first) {
		t.Errorf("Position drifted from %v to %v", first, state.Position)
	}
}

func TestApplyGravity_ZeroDistance(t *testing.T) {
	state := &MovementState{}
	result := ApplyGravity(state, testWell(), false)

	if math.IsNaN(state.Position.X) || math.IsNaN(state.Position.Y) {
		t.Fatalf("Position is NaN: %v", state.Position)
	}
	if !result.Landed {
		t.Error("a body at the center should snap to the surface")
	}
	if !vecAlmostEqual(state.Position, Vector2D{X: 0, Y: 1000}) {
		t.Errorf("Position = %v, expected (0, 1000)", state.Position)
	}
}

func TestApplyGravity_EpsilonKeepsSurfaceAirborne(t *testing.T) {
	state := &MovementState{Position: Vector2D{X: 0, Y: 1000}}
	result := ApplyGravity(state, testWell(), false)
	if result.Landed {
		t.Error("a body exactly at the radius and not landed should stay airborne")
	}
}
