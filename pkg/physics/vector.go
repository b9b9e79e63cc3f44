// pkg/physics/vector.go
package physics

import "math"

// Vector2D represents a 2D vector with x and y components in world units.
type Vector2D struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Distance returns the distance between two points
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Rotate rotates the vector by angle radians:
// x' = x cos - y sin, y' = x sin + y cos.
// This is the same rotation the renderer applies to every vertex.
func (v Vector2D) Rotate(angle float64) Vector2D {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Float32 returns the vector as a float32 pair for the command list.
func (v Vector2D) Float32() (float32, float32) {
	return float32(v.X), float32(v.Y)
}

// Bearing returns the angle of from as seen from to, computed as
// atan2(from.X-to.X, from.Y-to.Y). The x difference comes first: a point
// straight "above" to (larger Y) has bearing 0 and bearing grows toward +X.
// FromBearing is its inverse.
func Bearing(from, to Vector2D) float64 {
	return math.Atan2(from.X-to.X, from.Y-to.Y)
}

// FromBearing returns the vector of the given magnitude pointing along
// bearing: (sin b, cos b) * magnitude.
func FromBearing(bearing, magnitude float64) Vector2D {
	return Vector2D{
		X: magnitude * math.Sin(bearing),
		Y: magnitude * math.Cos(bearing),
	}
}
