package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orbiter/pkg/config"
	"github.com/opd-ai/go-orbiter/pkg/engine"
	"github.com/opd-ai/go-orbiter/pkg/logging"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "flight.yaml")
	if err := os.WriteFile(yamlPath, []byte("tickRate: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	badPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badPath, []byte("tickRate: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		env      map[string]string
		wantTick int
		wantErr  string
	}{
		{name: "defaults", wantTick: 60},
		{name: "file", path: yamlPath, wantTick: 30},
		{name: "env wins", path: yamlPath, env: map[string]string{config.EnvTickRate: "120"}, wantTick: 120},
		{name: "missing file", path: filepath.Join(dir, "nope.json"), wantErr: "failed to read"},
		{name: "bad env", env: map[string]string{config.EnvTickRate: "fast"}, wantErr: "environment"},
		{name: "invalid", path: badPath, wantErr: "invalid configuration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := loadConfig(tt.path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("loadConfig() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig() failed: %v", err)
			}
			if cfg.TickRate != tt.wantTick {
				t.Errorf("TickRate = %d, want %d", cfg.TickRate, tt.wantTick)
			}
		})
	}
}

func TestConfigCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("config command failed: %v", err)
	}
	if !strings.Contains(out.String(), "tickRate: 60") {
		t.Errorf("output = %q, want YAML config", out.String())
	}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name       string
		ev         *tcell.EventKey
		wantIntent engine.Intent
		wantOK     bool
		wantQuit   bool
	}{
		{"left arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), engine.RotateLeft, true, false},
		{"right rune", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), engine.RotateRight, true, false},
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), engine.Thrust, true, false},
		{"gear", tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone), engine.CycleGear, true, false},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), 0, false, true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), 0, false, true},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, ok, quit := mapKey(tt.ev)
			if ok != tt.wantOK || quit != tt.wantQuit || (ok && intent != tt.wantIntent) {
				t.Errorf("mapKey() = %v, %v, %v", intent, ok, quit)
			}
		})
	}
}

type intentLog struct {
	events []string
}

func (l *intentLog) Press(i engine.Intent)   { l.events = append(l.events, "+"+i.String()) }
func (l *intentLog) Release(i engine.Intent) { l.events = append(l.events, "-"+i.String()) }

func TestKeyHold(t *testing.T) {
	log := &intentLog{}
	k := newKeyHold(log, 3)

	k.press(engine.Thrust)
	k.tick()
	k.press(engine.Thrust) // repeat refreshes the hold
	k.tick()
	k.tick()
	if len(log.events) != 1 {
		t.Fatalf("events = %v, want a single press", log.events)
	}
	k.tick()
	if got := strings.Join(log.events, " "); got != "+thrust -thrust" {
		t.Errorf("events = %q", got)
	}

	k.press(engine.CycleGear)
	k.press(engine.CycleGear)
	k.tick()
	if got := strings.Join(log.events[2:], " "); got != "+cycle-gear +cycle-gear" {
		t.Errorf("gear events = %q", got)
	}
}

func TestSimulate_LaunchAndLand(t *testing.T) {
	var out bytes.Buffer
	steps := 0
	opts := simOptions{Ticks: 20000, ThrustTicks: 500, UntilLanded: true}
	game, res, err := simulate(context.Background(), config.DefaultConfig(), opts, logging.Discard(), &out, func() { steps++ })
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if res.Launches != 1 || res.Landings != 1 {
		t.Errorf("launches = %d, landings = %d", res.Launches, res.Landings)
	}
	if !res.Final.Landed {
		t.Error("ship should end landed")
	}
	if res.Ticks != steps || res.Frames != res.Ticks {
		t.Errorf("ticks = %d, progress = %d, frames = %d", res.Ticks, steps, res.Frames)
	}
	if res.Ticks >= opts.Ticks {
		t.Errorf("simulation did not stop on landing")
	}
	if game.Status != engine.GameStatusEnded {
		t.Errorf("status = %v, want ended", game.Status)
	}
	if !strings.Contains(out.String(), "tick 0: launched") || !strings.Contains(out.String(), "landed at speed") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSimulate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, res, err := simulate(ctx, config.DefaultConfig(), simOptions{Ticks: 10}, logging.Discard(), &bytes.Buffer{}, nil)
	if err == nil || res.Ticks != 0 {
		t.Errorf("err = %v, ticks = %d", err, res.Ticks)
	}
}
