package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsim/internal/platform/tui"
	"github.com/vovakirdan/gridsim/internal/registry"
	"github.com/vovakirdan/gridsim/internal/storage"
)

var flagSnapshotEvery int

var watchCmd = &cobra.Command{
	Use:   "watch <sim>",
	Short: "Watch a simulation in the terminal",
	Long: `Run the specified simulation in a full-screen viewer.

Controls:
  P/Space    - Pause or resume
  N/.        - Single step while paused
  R          - Restart with a new seed
  +/-        - Faster / slower
  S          - Store a snapshot
  Ctrl+S     - Save a text screenshot
  ?          - Toggle help
  Q/Ctrl+C   - Quit

Examples:
  gridsim watch conway
  gridsim watch forest --shape hexagon --boundary absorb
  gridsim watch langton --config ./my-langton.yaml --fps 30`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&flagSnapshotEvery, "snapshot-every", 0, "Store a snapshot every N steps (0 = only first and last)")
}

func runWatch(_ *cobra.Command, args []string) error {
	simID := args[0]
	if !registry.Exists(simID) {
		return fmt.Errorf("unknown simulation %q, run 'gridsim list' to see available simulations", simID)
	}

	sim, err := registry.Create(simID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m, err := tui.Run(sim, store, cfg, tui.ViewerOptions{
		SnapshotEvery: flagSnapshotEvery,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("running %s: %w", simID, err)
	}
	if run := m.Run(); run != nil {
		logger.Info("run recorded", "id", run.ID, "steps", m.State().Step, "population", m.State().Population)
	}
	return nil
}

// openStore opens the runs database. Without one the simulations still run,
// they just are not recorded.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
