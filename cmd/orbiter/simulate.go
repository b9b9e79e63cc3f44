package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/opd-ai/go-orbiter/pkg/config"
	"github.com/opd-ai/go-orbiter/pkg/engine"
	"github.com/opd-ai/go-orbiter/pkg/event"
	"github.com/opd-ai/go-orbiter/pkg/logging"
	"github.com/opd-ai/go-orbiter/pkg/render"
)

var (
	flagTicks       int
	flagThrustTicks int
	flagGearTicks   []int
	flagUntilLanded bool
	flagProgress    bool
	flagDump        bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted headless flight",
	Long: `Run the game without a display. The ship thrusts straight up for
--thrust ticks, then coasts. The landing gear is cycled at every tick
listed in --gear. Flight events are printed as they happen.

Examples:
  orbiter simulate
  orbiter simulate --thrust 800 --ticks 50000 --progress
  orbiter simulate --gear 100,3000 --dump`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 20000, "Maximum number of ticks to run")
	simulateCmd.Flags().IntVar(&flagThrustTicks, "thrust", 500, "Ticks of thrust after launch")
	simulateCmd.Flags().IntSliceVar(&flagGearTicks, "gear", nil, "Ticks at which to cycle the landing gear")
	simulateCmd.Flags().BoolVar(&flagUntilLanded, "until-landed", true, "Stop once the ship lands again")
	simulateCmd.Flags().BoolVar(&flagProgress, "progress", false, "Show a progress bar")
	simulateCmd.Flags().BoolVar(&flagDump, "dump", false, "Print the command list when done")
}

// simOptions scripts a headless flight.
type simOptions struct {
	Ticks       int
	ThrustTicks int
	GearTicks   []int
	UntilLanded bool
}

// simResult summarizes a headless flight.
type simResult struct {
	Final    engine.ShipState
	Ticks    int
	Frames   int
	Launches int
	Landings int
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	logger, closer, err := openLogger(logging.NewLogger())
	if err != nil {
		return err
	}
	defer closer.Close()

	var bar *progressbar.ProgressBar
	var step func()
	if flagProgress {
		bar = progressbar.Default(int64(flagTicks), "simulating")
		defer bar.Close()
		step = func() { _ = bar.Add(1) }
	}

	out := cmd.OutOrStdout()
	opts := simOptions{
		Ticks:       flagTicks,
		ThrustTicks: flagThrustTicks,
		GearTicks:   flagGearTicks,
		UntilLanded: flagUntilLanded,
	}
	game, res, err := simulate(cmd.Context(), cfg, opts, logger, out, step)
	if err != nil {
		return err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	fmt.Fprintf(out, "%s\n", res.Final.Status())
	fmt.Fprintf(out, "ran %d ticks, %d frames, %d launches, %d landings\n",
		res.Ticks, res.Frames, res.Launches, res.Landings)
	if flagDump {
		return game.Gfx.Dump(out)
	}
	return nil
}

// simulate flies the scripted flight on a NullBackend. Events are written
// to out; progress, if set, is called once per tick.
func simulate(ctx context.Context, cfg *config.GameConfig, opts simOptions, logger *logging.Logger,
	out io.Writer, progress func()) (*engine.Game, simResult, error) {
	backend := render.NewNullBackend(logger)
	bus := event.NewEventBus()
	game, err := engine.NewGame(cfg, backend, bus, logger)
	if err != nil {
		return nil, simResult{}, err
	}

	var res simResult
	bus.Subscribe(event.ShipLaunched, func(e event.Event) {
		res.Launches++
		ev := e.(*event.ShipEvent)
		fmt.Fprintf(out, "tick %d: launched at speed %.4f\n", ev.Tick, ev.Speed)
	})
	bus.Subscribe(event.ShipLanded, func(e event.Event) {
		res.Landings++
		ev := e.(*event.ShipEvent)
		fmt.Fprintf(out, "tick %d: landed at speed %.4f\n", ev.Tick, ev.Speed)
	})
	for _, t := range []event.Type{event.GearCycled, event.GearDeployed, event.GearRetracted} {
		bus.Subscribe(t, func(e event.Event) {
			ev := e.(*event.GearEvent)
			fmt.Fprintf(out, "tick %d: %s, gear %s\n", ev.Tick, ev.GetType(), ev.State)
		})
	}

	game.Start()
	defer game.Stop()
	logger.Info(ctx, "simulation started", "ticks", opts.Ticks, "thrust_ticks", opts.ThrustTicks)

	game.Press(engine.Thrust)
	for tick := 0; tick < opts.Ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return game, res, err
		}
		if tick == opts.ThrustTicks {
			game.Release(engine.Thrust)
		}
		if slices.Contains(opts.GearTicks, tick) {
			game.Press(engine.CycleGear)
		}
		if err := game.Step(ctx); err != nil {
			return game, res, err
		}
		res.Ticks++
		if progress != nil {
			progress()
		}
		if opts.UntilLanded && res.Landings > 0 {
			break
		}
	}

	res.Final = game.Snapshot()
	res.Frames, _, _ = backend.Stats()
	logger.Info(ctx, "simulation finished",
		"ticks", res.Ticks,
		"landings", res.Landings,
		"altitude", res.Final.Altitude,
	)
	return game, res, nil
}
