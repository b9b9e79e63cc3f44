package main

import (
	"github.com/EngoEngine/engo"
	"github.com/spf13/cobra"

	"github.com/opd-ai/go-orbiter/pkg/logging"
	engorender "github.com/opd-ai/go-orbiter/pkg/render/engo"
)

var flagFullscreen bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly in an OpenGL window",
	Long: `Open a window and fly the ship. The window title shows altitude,
speed, gear state and the latest flight event.

Examples:
  orbiter play
  orbiter play --fullscreen
  ORBITER_WIDTH=1920 ORBITER_HEIGHT=1080 orbiter play`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Run fullscreen")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	logger, closer, err := openLogger(logging.NewLogger())
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := cmd.Context()
	scene := engorender.NewScene(ctx, cfg, nil, logger)

	opts := engo.RunOptions{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: flagFullscreen,
		VSync:      cfg.Window.VSync,
		FPSLimit:   cfg.TickRate,
	}
	logger.Info(ctx, "opening window",
		"width", opts.Width,
		"height", opts.Height,
		"tick_rate", opts.FPSLimit,
	)

	// Run blocks until the window closes.
	engo.Run(opts, scene)
	return scene.Err()
}
