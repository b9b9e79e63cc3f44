package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opd-ai/go-orbiter/pkg/engine"
	"github.com/opd-ai/go-orbiter/pkg/logging"
	"github.com/opd-ai/go-orbiter/pkg/render"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Fly in the terminal",
	Long: `Fly the ship in the terminal, drawn with box-drawing glyphs and
colored cell backgrounds. Terminals report key presses but not releases,
so a held key stays active for terminal.keyHoldTicks ticks after its last
repeat.

Logs are discarded unless --log-file is set.`,
	Args: cobra.NoArgs,
	RunE: runTerm,
}

func runTerm(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("term requires an interactive terminal; try 'orbiter simulate'")
	}
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	logger, closer, err := openLogger(logging.Discard())
	if err != nil {
		return err
	}
	defer closer.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	w, h := screen.Size()
	presenter := &render.TcellPresenter{Screen: screen}
	backend := render.NewTerminalBackend(w, h, presenter)
	game, err := engine.NewGame(cfg, backend, nil, logger)
	if err != nil {
		return err
	}
	game.Start()
	defer game.Stop()

	return runTerminalLoop(cmd.Context(), screen, backend, presenter, game, cfg.Terminal.KeyHoldTicks, cfg.TickRate)
}

func runTerminalLoop(ctx context.Context, screen tcell.Screen, backend *render.TerminalBackend,
	presenter *render.TcellPresenter, game *engine.Game, holdTicks, tickRate int) error {
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	keys := newKeyHold(game, holdTicks)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				intent, ok, quit := mapKey(ev)
				if quit {
					return nil
				}
				if ok {
					keys.press(intent)
				}
			case *tcell.EventResize:
				backend.Resize(screen.Size())
				screen.Sync()
			}
		case <-ticker.C:
			keys.tick()
			presenter.Status = game.Snapshot().Status()
			if err := game.Step(ctx); err != nil {
				return err
			}
		}
	}
}

// mapKey translates a key event. quit is set for Esc, q and Ctrl-C.
func mapKey(ev *tcell.EventKey) (intent engine.Intent, ok, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, false, true
	case tcell.KeyLeft:
		return engine.RotateLeft, true, false
	case tcell.KeyRight:
		return engine.RotateRight, true, false
	case tcell.KeyUp:
		return engine.Thrust, true, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return 0, false, true
		case 'a', 'A':
			return engine.RotateLeft, true, false
		case 'd', 'D':
			return engine.RotateRight, true, false
		case 'w', 'W':
			return engine.Thrust, true, false
		case 'g', 'G':
			return engine.CycleGear, true, false
		}
	}
	return 0, false, false
}

type intentSink interface {
	Press(engine.Intent)
	Release(engine.Intent)
}

// keyHold turns repeated key presses into held intents. An intent stays
// pressed until ticks have passed without a repeat.
type keyHold struct {
	game  intentSink
	ticks int
	held  map[engine.Intent]int
}

func newKeyHold(game intentSink, ticks int) *keyHold {
	return &keyHold{game: game, ticks: max(ticks, 1), held: make(map[engine.Intent]int)}
}

func (k *keyHold) press(i engine.Intent) {
	if i == engine.CycleGear {
		k.game.Press(i)
		return
	}
	if _, ok := k.held[i]; !ok {
		k.game.Press(i)
	}
	k.held[i] = k.ticks
}

func (k *keyHold) tick() {
	for i, left := range k.held {
		if left <= 1 {
			delete(k.held, i)
			k.game.Release(i)
			continue
		}
		k.held[i] = left - 1
	}
}
