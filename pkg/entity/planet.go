// pkg/entity/planet.go
package entity

import (
	"github.com/opd-ai/go-orbiter/pkg/gfx"
	"github.com/opd-ai/go-orbiter/pkg/physics"
)

// Default planet parameters.
const (
	DefaultPlanetRadius  = 1000.0
	DefaultPlanetGravity = 1000.0
	DefaultEpsilon       = 0.01
	DefaultMinDistance   = 1.0
)

// ParallaxLayer is a terrain band that slides around the planet as the
// ship moves. Factor 1 keeps the layer fixed to the planet; smaller factors
// lag behind, as far-away scenery does.
type ParallaxLayer struct {
	Factor      float64
	Translation gfx.Handle
}

// Planet is the single gravity source.
type Planet struct {
	Position physics.Vector2D
	Radius   float64
	// Gravity is the inverse-square pull strength.
	Gravity     float64
	Epsilon     float64
	MinDistance float64

	Mountains ParallaxLayer
	Hills     ParallaxLayer
}

// NewPlanet creates a planet at position.
func NewPlanet(position physics.Vector2D, radius, gravity float64) *Planet {
	return &Planet{
		Position:    position,
		Radius:      radius,
		Gravity:     gravity,
		Epsilon:     DefaultEpsilon,
		MinDistance: DefaultMinDistance,
		Mountains:   ParallaxLayer{Factor: 0.96},
		Hills:       ParallaxLayer{Factor: 0.985},
	}
}

// Well returns the planet as a gravity well.
func (p *Planet) Well() physics.Well {
	return physics.Well{
		Center:      p.Position,
		Radius:      p.Radius,
		Strength:    p.Gravity,
		Epsilon:     p.Epsilon,
		MinDistance: p.MinDistance,
	}
}

// LayerOffset is the translation of a layer with parallax factor f while
// the ship is at bearing around the planet.
func (p *Planet) LayerOffset(bearing, f float64) physics.Vector2D {
	return p.Position.Add(physics.FromBearing(bearing, p.Radius*(1-f)))
}

// AttachLayer appends a translation command for layer and keeps its handle.
// The layer's geometry must be drawn after it.
func (p *Planet) AttachLayer(g *gfx.Gfx, layer *ParallaxLayer) {
	layer.Translation = g.Translation(p.Position.Float32())
}

// Tick moves the parallax layers for a ship at bearing.
func (p *Planet) Tick(g *gfx.Gfx, bearing float64) {
	for _, l := range []ParallaxLayer{p.Mountains, p.Hills} {
		if !l.Translation.Valid() {
			continue
		}
		x, y := p.LayerOffset(bearing, l.Factor).Float32()
		g.SetTranslation(l.Translation, x, y)
	}
}
