package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsim/internal/config"
	"github.com/vovakirdan/gridsim/internal/registry"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config <sim> [path]",
	Short: "Write a simulation's default config",
	Long: `Write the built-in default YAML for a simulation so it can be edited.
Without a path the file goes to ~/.gridsim/configs/<sim>.yaml, where it is
picked up automatically.

Examples:
  gridsim init-config conway
  gridsim init-config forest ./forest.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInitConfig,
}

func runInitConfig(_ *cobra.Command, args []string) error {
	simID := args[0]
	if !registry.Exists(simID) {
		return fmt.Errorf("unknown simulation %q, run 'gridsim list' to see available simulations", simID)
	}

	path := config.UserConfigPath(simID)
	if len(args) == 2 {
		path = args[1]
	}
	if path == "" {
		return fmt.Errorf("cannot resolve a config path for %q", simID)
	}

	written, err := config.WriteDefault(simID, path)
	if err != nil {
		return err
	}
	if !written {
		logger.Warn("config exists, leaving it untouched", "path", path)
		return nil
	}
	logger.Info("config written", "sim", simID, "path", path)
	return nil
}
