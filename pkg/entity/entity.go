// pkg/entity/entity.go

// Package entity holds the simulated bodies: the ship with its landing gear
// and the planet it orbits. Entities own command list handles and write
// their state into them every tick; they never draw directly.
package entity

import "strings"

// ShipFlags is the ship's control and contact bit word.
type ShipFlags uint8

const (
	RotatingLeft ShipFlags = 1 << iota
	RotatingRight
	ThrustOn
	Landed
)

var flagNames = []struct {
	flag ShipFlags
	name string
}{
	{RotatingLeft, "rotating-left"},
	{RotatingRight, "rotating-right"},
	{ThrustOn, "thrust"},
	{Landed, "landed"},
}

// Has reports whether every bit of f is set.
func (s ShipFlags) Has(f ShipFlags) bool {
	return s&f == f
}

func (s ShipFlags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if s.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
