// pkg/engine/game.go
package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/opd-ai/go-orbiter/pkg/assets"
	"github.com/opd-ai/go-orbiter/pkg/config"
	"github.com/opd-ai/go-orbiter/pkg/entity"
	"github.com/opd-ai/go-orbiter/pkg/event"
	"github.com/opd-ai/go-orbiter/pkg/gfx"
	"github.com/opd-ai/go-orbiter/pkg/logging"
	"github.com/opd-ai/go-orbiter/pkg/physics"
	"github.com/opd-ai/go-orbiter/pkg/terrain"
)

// GameStatus is the lifecycle of a session.
type GameStatus int

const (
	GameStatusWaiting GameStatus = iota
	GameStatusActive
	GameStatusEnded
)

// Game owns the command list, the ship and the planet, and advances them
// one frame per Step. It is not safe for concurrent use; hosts call it from
// their frame loop only.
type Game struct {
	Config      *config.GameConfig
	Gfx         *gfx.Gfx
	Ship        *entity.Ship
	Planet      *entity.Planet
	Camera      Camera
	EventBus    *event.Bus
	Status      GameStatus
	CurrentTick uint64

	logger  *logging.Logger
	catalog *assets.Catalog

	lineProgram     int
	triangleProgram int
	sceneScale      gfx.Handle
	origin          gfx.Handle
}

// NewGame validates cfg, builds the scene against backend and allocates
// every command handle. A nil cfg uses the defaults, a nil bus gets a
// private one and a nil logger discards.
func NewGame(cfg *config.GameConfig, backend gfx.Backend, bus *event.Bus, logger *logging.Logger) (*Game, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "invalid config")
	}
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	catalog, err := assets.Default()
	if err != nil {
		return nil, logging.WrapError(err, "load prop catalog")
	}

	planet := entity.NewPlanet(physics.Vector2D{}, cfg.Physics.PlanetRadius, cfg.Physics.Gravity)
	planet.Epsilon = cfg.Physics.Epsilon
	planet.MinDistance = cfg.Physics.MinDistance

	stats := entity.ShipStats{
		TurnRate:     cfg.Physics.TurnRate,
		Thrust:       cfg.Physics.Thrust,
		BaseScale:    cfg.Ship.BaseScale,
		ScalePerUnit: cfg.Ship.ScalePerUnit,
		MinScale:     cfg.Ship.MinScale,
	}

	game := &Game{
		Config:   cfg,
		Gfx:      gfx.New(backend, logger),
		Ship:     entity.NewShip(stats, planet),
		Planet:   planet,
		Camera:   NewCamera(cfg.Camera),
		EventBus: bus,
		logger:   logger,
		catalog:  catalog,
	}

	if err := game.buildScene(); err != nil {
		return nil, err
	}

	logger.Info(context.Background(), "scene built",
		"commands", game.Gfx.Len(),
		"line_vertices", game.Gfx.LineLen(),
		"triangle_vertices", game.Gfx.TriangleLen(),
		"index_buffers", game.Gfx.IndicesCount())
	return game, nil
}

// terrainMeshes are the index slots of the generated scenery.
type terrainMeshes struct {
	sky, mountains, hills, ground, outline int
}

func (g *Game) buildTerrain() (terrainMeshes, error) {
	var m terrainMeshes
	var err error
	cfg := g.Config.Terrain

	// Meshes are built around the origin and placed with translations.
	gen := terrain.New(g.Gfx, physics.Vector2D{}, g.Planet.Radius, cfg.Seed).WithSegments(cfg.Segments)

	if m.sky, err = gen.Sky(cfg.SkyHeight, terrain.SkyColor); err != nil {
		return m, logging.WrapError(err, "build sky")
	}
	if m.mountains, err = gen.Ridge(terrain.Mountains); err != nil {
		return m, logging.WrapError(err, "build mountains")
	}
	if m.hills, err = gen.Ridge(terrain.Hills); err != nil {
		return m, logging.WrapError(err, "build hills")
	}
	if m.ground, err = gen.Ground(terrain.GroundColor); err != nil {
		return m, logging.WrapError(err, "build ground")
	}
	if m.outline, err = gen.Outline(); err != nil {
		return m, logging.WrapError(err, "build outline")
	}
	return m, nil
}

// placeProps stands every configured prop upright on the rim.
func (g *Game) placeProps() ([]int, error) {
	var slots []int
	for _, p := range g.Config.Terrain.Props {
		asset, err := g.catalog.Get(p.Type, p.Variant)
		if err != nil {
			return nil, err
		}
		pos := physics.FromBearing(p.Bearing, g.Planet.Radius)
		placed, err := assets.Place(g.Gfx, asset, pos, -p.Bearing, p.Scale)
		if err != nil {
			return nil, logging.WrapError(err, "place %s/%s", p.Type, p.Variant)
		}
		slots = append(slots, placed...)
	}
	return slots, nil
}

// buildScene appends geometry, then the command list in paint order:
// sky, mountains, hills, ground, props, outline, ship.
func (g *Game) buildScene() error {
	gx := g.Gfx

	var err error
	if g.lineProgram, err = gx.AddProgram(gfx.LineShader.Vertex, gfx.LineShader.Fragment); err != nil {
		return err
	}
	if g.triangleProgram, err = gx.AddProgram(gfx.TriangleShader.Vertex, gfx.TriangleShader.Fragment); err != nil {
		return err
	}

	meshes, err := g.buildTerrain()
	if err != nil {
		return err
	}
	props, err := g.placeProps()
	if err != nil {
		return err
	}
	shipMesh, err := entity.BuildShipMesh(gx)
	if err != nil {
		return logging.WrapError(err, "build ship mesh")
	}
	shipMesh.LineProgram = g.lineProgram
	shipMesh.TriangleProgram = g.triangleProgram

	g.sceneScale = gx.SceneScale(float32(g.Camera.MinZoom))
	g.origin = gx.Origin(0, 0)

	px, py := g.Planet.Position.Float32()
	gx.Program(g.triangleProgram)
	gx.Translation(px, py)
	g.drawTriangles(meshes.sky)

	g.Planet.AttachLayer(gx, &g.Planet.Mountains)
	g.drawTriangles(meshes.mountains)
	g.Planet.AttachLayer(gx, &g.Planet.Hills)
	g.drawTriangles(meshes.hills)

	gx.Translation(px, py)
	g.drawTriangles(meshes.ground)
	for _, slot := range props {
		g.drawTriangles(slot)
	}

	gx.Program(g.lineProgram)
	gx.Indices(meshes.outline)
	gx.DrawLines()

	g.Ship.Attach(gx, shipMesh)

	g.Planet.Tick(gx, physics.Bearing(g.Ship.Position, g.Planet.Position))
	g.updateCamera()
	return nil
}

func (g *Game) drawTriangles(slot int) {
	g.Gfx.Indices(slot)
	g.Gfx.DrawTriangles()
}

// updateCamera centers the view on the ship and zooms for its altitude.
func (g *Game) updateCamera() {
	x, y := g.Ship.Position.Float32()
	g.Gfx.SetOrigin(g.origin, x, y)
	zoom := g.Camera.Zoom(g.Ship.Position.Distance(g.Planet.Position) - g.Planet.Radius)
	g.Gfx.SetSceneScale(g.sceneScale, float32(zoom))
}

// Start marks the session active.
func (g *Game) Start() {
	g.Status = GameStatusActive
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameStarted,
		Source:    g,
	})
}

// Stop ends the session. Calling it twice publishes once.
func (g *Game) Stop() {
	if g.Status == GameStatusEnded {
		return
	}
	g.Status = GameStatusEnded
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameEnded,
		Source:    g,
	})
}

// Update advances the simulation by one tick without rendering.
func (g *Game) Update(ctx context.Context) {
	ship := g.Ship
	wasLanded := ship.Flags.Has(entity.Landed)
	gearBefore := ship.Gear

	ship.Tick(g.Gfx)
	if wasLanded && !ship.Flags.Has(entity.Landed) {
		g.publishShip(ctx, event.ShipLaunched, ship.Velocity.Length())
	}

	ship.AdvanceGear(g.Gfx)
	g.publishGear(ctx, gearBefore)

	landing := !ship.Flags.Has(entity.Landed)
	impact := ship.Velocity.Length()
	res := ship.Gravity(g.Planet, g.Gfx)
	if landing && res.Landed {
		g.publishShip(ctx, event.ShipLanded, impact)
	}

	g.Planet.Tick(g.Gfx, res.Bearing)
	g.updateCamera()
	g.CurrentTick++
}

// Step runs one full frame: simulation tick, then the command list.
func (g *Game) Step(ctx context.Context) error {
	g.Update(ctx)
	if err := g.Gfx.Run(ctx); err != nil {
		return logging.WrapError(err, "render tick %d", g.CurrentTick)
	}
	return nil
}

func (g *Game) publishShip(ctx context.Context, t event.Type, speed float64) {
	alt := g.Ship.Altitude(g.Planet)
	g.logger.Info(ctx, string(t), "tick", g.CurrentTick, "speed", speed, "altitude", alt)
	g.EventBus.Publish(event.NewShipEvent(t, g, g.CurrentTick,
		g.Ship.Position.X, g.Ship.Position.Y, speed, alt))
}

func (g *Game) publishGear(ctx context.Context, before entity.GearState) {
	after := g.Ship.Gear
	var t event.Type
	switch {
	case entity.Deployed(after) && !entity.Deployed(before):
		t = event.GearDeployed
	case entity.Retracted(after) && !entity.Retracted(before):
		t = event.GearRetracted
	default:
		return
	}
	g.logger.Debug(ctx, string(t), "tick", g.CurrentTick)
	g.EventBus.Publish(event.NewGearEvent(t, g, g.CurrentTick, after.String(), g.Ship.Flags.Has(entity.Landed)))
}

// ShipState is a copy of the ship's observable state.
type ShipState struct {
	Tick     uint64
	Position physics.Vector2D
	Velocity physics.Vector2D
	Heading  float64
	Speed    float64
	Altitude float64
	Bearing  float64
	Scale    float64
	Gear     string
	Flags    entity.ShipFlags
	Landed   bool
}

// Snapshot returns the ship's current state.
func (g *Game) Snapshot() ShipState {
	s := g.Ship
	return ShipState{
		Tick:     g.CurrentTick,
		Position: s.Position,
		Velocity: s.Velocity,
		Heading:  s.Heading,
		Speed:    s.Velocity.Length(),
		Altitude: s.Altitude(g.Planet),
		Bearing:  s.Bearing,
		Scale:    s.Scale,
		Gear:     s.Gear.String(),
		Flags:    s.Flags,
		Landed:   s.Flags.Has(entity.Landed),
	}
}

// Status formats the state as a one-line readout.
func (s ShipState) Status() string {
	where := "airborne"
	if s.Landed {
		where = "landed"
	}
	return fmt.Sprintf("tick %d  alt %.1f  speed %.3f  heading %.0f°  gear %s  %s",
		s.Tick, s.Altitude, s.Speed, s.Heading*180/math.Pi, s.Gear, where)
}
