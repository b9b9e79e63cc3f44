// pkg/render/engo/scene.go
package engo

import (
	"context"
	"fmt"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-orbiter/pkg/config"
	"github.com/opd-ai/go-orbiter/pkg/engine"
	"github.com/opd-ai/go-orbiter/pkg/event"
	"github.com/opd-ai/go-orbiter/pkg/logging"
)

// titleInterval is how many frames pass between window title refreshes.
const titleInterval = 15

// Scene runs a flight session inside engo.
type Scene struct {
	cfg    *config.GameConfig
	bus    *event.Bus
	logger *logging.Logger
	ctx    context.Context

	game *engine.Game
	hud  *HUD
	err  error
}

// NewScene creates a scene for cfg. bus and logger may be nil.
func NewScene(ctx context.Context, cfg *config.GameConfig, bus *event.Bus, logger *logging.Logger) *Scene {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &Scene{cfg: cfg, bus: bus, logger: logger, ctx: ctx}
}

// Type returns the scene type (required by Engo)
func (s *Scene) Type() string {
	return "OrbiterScene"
}

// Preload is called before the scene starts (required by Engo)
func (s *Scene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (s *Scene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		s.fail(fmt.Errorf("engo: unexpected updater %T", u))
		return
	}
	SetupInputBindings()

	game, err := engine.NewGame(s.cfg, NewBackend(s.logger), s.bus, s.logger)
	if err != nil {
		s.fail(err)
		return
	}
	s.game = game
	s.hud = NewHUD(s.cfg.Window.Title, titleInterval, s.bus)
	game.Start()

	world.AddSystem(&FrameSystem{
		ctx:     s.ctx,
		game:    game,
		hud:     s.hud,
		buttons: engoButtons{},
		logger:  s.logger,
		exit:    s.exit,
	})
}

// Game returns the running session, or nil before Setup.
func (s *Scene) Game() *engine.Game {
	return s.game
}

// Err returns the error that ended the scene, if any.
func (s *Scene) Err() error {
	return s.err
}

func (s *Scene) fail(err error) {
	s.logger.Error(s.ctx, "scene setup failed", err)
	s.err = err
	engo.Exit()
}

func (s *Scene) exit(err error) {
	s.err = err
	if s.hud != nil {
		s.hud.Close()
	}
	if s.game != nil {
		s.game.Stop()
	}
	engo.Exit()
}

// FrameSystem advances and draws the game once per engo update.
type FrameSystem struct {
	ctx     context.Context
	game    *engine.Game
	hud     *HUD
	buttons buttonState
	logger  *logging.Logger
	exit    func(error)
	done    bool
}

// Remove satisfies the ecs.System interface
func (f *FrameSystem) Remove(ecs.BasicEntity) {}

// Update polls input, steps the game and renders the frame.
func (f *FrameSystem) Update(dt float32) {
	if f.done {
		return
	}
	if pollInput(f.buttons, f.game) {
		f.finish(nil)
		return
	}
	if err := f.game.Step(f.ctx); err != nil {
		f.logger.Error(f.ctx, "frame failed", err, "tick", f.game.CurrentTick)
		f.finish(err)
		return
	}
	if f.hud != nil {
		f.hud.Update(f.game.Snapshot())
	}
}

func (f *FrameSystem) finish(err error) {
	f.done = true
	f.exit(err)
}
