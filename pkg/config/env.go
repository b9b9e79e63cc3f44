// pkg/config/env.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ApplyEnvironmentOverrides.
const (
	EnvTickRate = "ORBITER_TICK_RATE"
	EnvGravity  = "ORBITER_GRAVITY"
	EnvWidth    = "ORBITER_WIDTH"
	EnvHeight   = "ORBITER_HEIGHT"
	EnvSeed     = "ORBITER_SEED"
	EnvVSync    = "ORBITER_VSYNC"
)

// ApplyEnvironmentOverrides replaces config fields with values from set
// environment variables. Malformed values are reported together and leave
// their field unchanged.
func ApplyEnvironmentOverrides(config *GameConfig) error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	collect(overrideInt(EnvTickRate, &config.TickRate))
	collect(overrideFloat(EnvGravity, &config.Physics.Gravity))
	collect(overrideInt(EnvWidth, &config.Window.Width))
	collect(overrideInt(EnvHeight, &config.Window.Height))
	collect(overrideUint(EnvSeed, &config.Terrain.Seed))
	config.Window.VSync = getEnvAsBoolOrDefault(EnvVSync, config.Window.VSync)

	return errors.Join(errs...)
}

func overrideInt(key string, dst *int) error {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%s: invalid integer %q", key, s)
	}
	*dst = v
	return nil
}

func overrideUint(key string, dst *uint64) error {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: invalid unsigned integer %q", key, s)
	}
	*dst = v
	return nil
}

func overrideFloat(key string, dst *float64) error {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%s: invalid number %q", key, s)
	}
	*dst = v
	return nil
}

// getEnvAsBoolOrDefault parses a boolean, falling back on a missing or
// malformed value.
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
