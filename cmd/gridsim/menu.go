package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsim/internal/platform/tui"
	"github.com/vovakirdan/gridsim/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick simulations from an interactive menu",
	Long: `Start gridsim in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a simulation and Tab to
browse recorded runs. Esc inside a simulation returns to the menu.

Examples:
  gridsim menu
  gridsim menu --shape triangle --fps 30`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		result, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsRuns {
			back, err := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				logger.Error("run browser failed", "error", err)
			}
			if back {
				continue
			}
			return nil
		}

		sim, err := registry.Create(result.SimID)
		if err != nil {
			logger.Error("could not create simulation", "sim", result.SimID, "error", err)
			continue
		}

		run := cfg
		if run.Seed == 0 {
			run.Seed = time.Now().UnixNano()
		}
		m, err := tui.Run(sim, store, run, tui.ViewerOptions{AllowBack: true, Logger: logger})
		if err != nil {
			logger.Error("simulation failed", "sim", result.SimID, "error", err)
			continue
		}
		if !m.BackToMenu() {
			return nil
		}
	}
}
