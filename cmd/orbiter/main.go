// orbiter is a 2D lander prototype: fly a ship around a planet with
// thrust, rotation and retractable landing gear.
//
// Usage:
//
//	orbiter play              - Fly in an OpenGL window
//	orbiter term              - Fly in the terminal
//	orbiter simulate          - Run a scripted headless flight
//	orbiter config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>    - JSON or YAML configuration file
//	--log-file <path>  - Write logs to a file instead of stderr
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-orbiter/pkg/config"
	"github.com/opd-ai/go-orbiter/pkg/logging"
)

var (
	// Global flags
	flagConfig  string
	flagLogFile string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(logging.WithRunID(ctx, "")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "orbiter",
	Short: "Orbiter - fly and land around a planet",
	Long: `Orbiter is a small 2D flight prototype. A ship sits on the surface of
a planet; thrust lifts it off, gravity pulls it back, and the landing gear
has to be down to touch down again.

Controls:
  Left/Right (A/D)  - Rotate
  Up (W)            - Thrust
  G                 - Cycle landing gear
  Esc/Q             - Quit`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a JSON or YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the --config file, or the defaults when none is given,
// then applies environment overrides and validates the result.
func loadConfig(path string) (*config.GameConfig, error) {
	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openLogger returns the logger for a command. fallback is used when no
// --log-file is set. The returned closer is never nil.
func openLogger(fallback *logging.Logger) (*logging.Logger, io.Closer, error) {
	if flagLogFile == "" {
		return fallback, nopCloser{}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	level := logging.ParseLevel(os.Getenv(logging.EnvLogLevel))
	return logging.New(f, level, logging.FormatJSON), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
