package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-orbiter/pkg/config"
)

var flagWrite string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the --config file and ORBITER_*
environment overrides are applied, as YAML.

Examples:
  orbiter config
  orbiter config --config ./flight.yaml
  orbiter config --write ./orbiter.json`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagWrite, "write", "", "Save the configuration to this path (.json, .yaml or .yml)")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	if flagWrite != "" {
		if err := config.SaveConfig(cfg, flagWrite); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", flagWrite)
		return nil
	}
	out, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
