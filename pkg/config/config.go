// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GameConfig contains configuration for an orbiter session
type GameConfig struct {
	TickRate int            `json:"tickRate" yaml:"tickRate"`
	Window   WindowConfig   `json:"window" yaml:"window"`
	Physics  PhysicsConfig  `json:"physics" yaml:"physics"`
	Ship     ShipConfig     `json:"ship" yaml:"ship"`
	Camera   CameraConfig   `json:"camera" yaml:"camera"`
	Terrain  TerrainConfig  `json:"terrain" yaml:"terrain"`
	Terminal TerminalConfig `json:"terminal" yaml:"terminal"`
}

// WindowConfig contains window settings for the OpenGL host
type WindowConfig struct {
	Title  string `json:"title" yaml:"title"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	VSync  bool   `json:"vsync" yaml:"vsync"`
}

// PhysicsConfig contains physics-related configuration. Rates are per tick.
type PhysicsConfig struct {
	Gravity      float64 `json:"gravity" yaml:"gravity"`
	PlanetRadius float64 `json:"planetRadius" yaml:"planetRadius"`
	Epsilon      float64 `json:"epsilon" yaml:"epsilon"`
	MinDistance  float64 `json:"minDistance" yaml:"minDistance"`
	Thrust       float64 `json:"thrust" yaml:"thrust"`
	TurnRate     float64 `json:"turnRate" yaml:"turnRate"`
}

// ShipConfig controls how the ship's render scale follows altitude
type ShipConfig struct {
	BaseScale    float64 `json:"baseScale" yaml:"baseScale"`
	ScalePerUnit float64 `json:"scalePerUnit" yaml:"scalePerUnit"`
	MinScale     float64 `json:"minScale" yaml:"minScale"`
}

// CameraConfig controls the altitude zoom. Scene scale is
// NearZoom / (1 + altitude/ZoomFalloff), never below MinZoom.
type CameraConfig struct {
	NearZoom    float64 `json:"nearZoom" yaml:"nearZoom"`
	MinZoom     float64 `json:"minZoom" yaml:"minZoom"`
	ZoomFalloff float64 `json:"zoomFalloff" yaml:"zoomFalloff"`
}

// PropPlacement puts one catalog prop on the planet rim
type PropPlacement struct {
	Type    string  `json:"type" yaml:"type"`
	Variant string  `json:"variant" yaml:"variant"`
	Bearing float64 `json:"bearing" yaml:"bearing"`
	Scale   float64 `json:"scale" yaml:"scale"`
}

// TerrainConfig contains procedural terrain settings
type TerrainConfig struct {
	Seed      uint64          `json:"seed" yaml:"seed"`
	Segments  int             `json:"segments" yaml:"segments"`
	SkyHeight float64         `json:"skyHeight" yaml:"skyHeight"`
	Props     []PropPlacement `json:"props" yaml:"props"`
}

// TerminalConfig contains settings for the terminal host
type TerminalConfig struct {
	// KeyHoldTicks is how long a key counts as held after its last repeat.
	KeyHoldTicks int `json:"keyHoldTicks" yaml:"keyHoldTicks"`
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig loads a configuration from a file. Files ending in .yaml or
// .yml are decoded as YAML, anything else as JSON. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file, choosing the format by
// extension like LoadConfig.
func SaveConfig(config *GameConfig, path string) error {
	if config == nil {
		return errors.New("config is nil")
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// YAML returns the configuration encoded as YAML.
func (c *GameConfig) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		TickRate: 60,
		Window: WindowConfig{
			Title:  "Orbiter",
			Width:  1024,
			Height: 768,
			VSync:  true,
		},
		Physics: PhysicsConfig{
			Gravity:      1000,
			PlanetRadius: 1000,
			Epsilon:      0.01,
			MinDistance:  1,
			Thrust:       0.00205,
			TurnRate:     0.05,
		},
		Ship: ShipConfig{
			BaseScale:    2,
			ScalePerUnit: 0.01,
			MinScale:     1,
		},
		Camera: CameraConfig{
			NearZoom:    0.05,
			MinZoom:     0.0004,
			ZoomFalloff: 200,
		},
		Terrain: TerrainConfig{
			Seed:      1,
			Segments:  360,
			SkyHeight: 250,
			Props: []PropPlacement{
				{Type: "lamppost", Variant: "1", Bearing: -0.04, Scale: 0.5},
				{Type: "lamp", Variant: "1", Bearing: -0.03, Scale: 0.5},
				{Type: "hydrant", Variant: "1", Bearing: 0.02, Scale: 0.5},
				{Type: "wastebin", Variant: "1", Bearing: 0.035, Scale: 0.5},
				{Type: "lamp", Variant: "2", Bearing: 0.6, Scale: 0.5},
				{Type: "lamp", Variant: "3", Bearing: 1.4, Scale: 0.5},
				{Type: "lamp", Variant: "4", Bearing: 3.1, Scale: 0.5},
			},
		},
		Terminal: TerminalConfig{
			KeyHoldTicks: 30,
		},
	}
}

// Validate reports every invalid field, joined into one error.
func (c *GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.TickRate >= 1 && c.TickRate <= 1000, "tickRate must be between 1 and 1000, got %d", c.TickRate)
	check(c.Window.Width > 0, "window.width must be positive, got %d", c.Window.Width)
	check(c.Window.Height > 0, "window.height must be positive, got %d", c.Window.Height)
	check(c.Physics.Gravity >= 0, "physics.gravity must not be negative, got %v", c.Physics.Gravity)
	check(c.Physics.PlanetRadius > 0, "physics.planetRadius must be positive, got %v", c.Physics.PlanetRadius)
	check(c.Physics.Epsilon >= 0 && c.Physics.Epsilon < c.Physics.PlanetRadius,
		"physics.epsilon must be in [0, planetRadius), got %v", c.Physics.Epsilon)
	check(c.Physics.MinDistance > 0, "physics.minDistance must be positive, got %v", c.Physics.MinDistance)
	check(c.Physics.Thrust >= 0, "physics.thrust must not be negative, got %v", c.Physics.Thrust)
	check(c.Ship.MinScale > 0, "ship.minScale must be positive, got %v", c.Ship.MinScale)
	check(c.Camera.MinZoom > 0 && c.Camera.MinZoom <= c.Camera.NearZoom,
		"camera.minZoom must be in (0, nearZoom], got %v", c.Camera.MinZoom)
	check(c.Camera.ZoomFalloff > 0, "camera.zoomFalloff must be positive, got %v", c.Camera.ZoomFalloff)
	check(c.Terrain.Segments >= 3, "terrain.segments must be at least 3, got %d", c.Terrain.Segments)
	check(c.Terrain.SkyHeight > 0, "terrain.skyHeight must be positive, got %v", c.Terrain.SkyHeight)
	for i, p := range c.Terrain.Props {
		check(p.Type != "" && p.Variant != "", "terrain.props[%d] needs type and variant", i)
		check(p.Scale > 0, "terrain.props[%d].scale must be positive, got %v", i, p.Scale)
	}
	check(c.Terminal.KeyHoldTicks >= 1, "terminal.keyHoldTicks must be at least 1, got %d", c.Terminal.KeyHoldTicks)

	return errors.Join(errs...)
}
