// pkg/engine/camera.go
package engine

import (
	"math"

	"github.com/opd-ai/go-orbiter/pkg/config"
)

// Camera keeps the ship centered and zooms out as it climbs.
type Camera struct {
	NearZoom    float64
	MinZoom     float64
	ZoomFalloff float64
}

// NewCamera creates a camera from configuration.
func NewCamera(cfg config.CameraConfig) Camera {
	return Camera{
		NearZoom:    cfg.NearZoom,
		MinZoom:     cfg.MinZoom,
		ZoomFalloff: cfg.ZoomFalloff,
	}
}

// Zoom returns the scene scale for a ship at altitude above the surface.
func (c Camera) Zoom(altitude float64) float64 {
	altitude = math.Max(0, altitude)
	zoom := c.NearZoom
	if c.ZoomFalloff > 0 {
		zoom /= 1 + altitude/c.ZoomFalloff
	}
	return math.Max(zoom, c.MinZoom)
}
