package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsim/internal/platform/tui"
	"github.com/vovakirdan/gridsim/internal/registry"
	"github.com/vovakirdan/gridsim/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsTUI   bool
	flagRunDelete string
)

var runsCmd = &cobra.Command{
	Use:   "runs [sim]",
	Short: "Show recorded runs",
	Long: `List the most recent runs, optionally for one simulation.

Examples:
  gridsim runs
  gridsim runs conway --limit 5
  gridsim runs --tui
  gridsim runs --delete 3f2a9c1e-...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Browse runs interactively")
	runsCmd.Flags().StringVar(&flagRunDelete, "delete", "", "Delete the run with this ID")
}

func runRuns(_ *cobra.Command, args []string) error {
	simID := ""
	if len(args) == 1 {
		simID = args[0]
		if !registry.Exists(simID) {
			return fmt.Errorf("unknown simulation %q, run 'gridsim list' to see available simulations", simID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if flagRunDelete != "" {
		if err := store.DeleteRun(flagRunDelete); err != nil {
			return err
		}
		logger.Info("run deleted", "id", flagRunDelete)
		return nil
	}

	if flagRunsTUI {
		cfg := runtimeConfig()
		_, err := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	runs, err := store.ListRuns(simID, flagRunsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Start one with 'gridsim run <sim>' or 'gridsim watch <sim>'.")
		return nil
	}

	fmt.Printf("  %-36s  %-8s  %-26s  %-7s  %-6s  %s\n", "ID", "Sim", "Grid", "Steps", "Pop", "Started")
	fmt.Printf("  %-36s  %-8s  %-26s  %-7s  %-6s  %s\n", "--", "---", "----", "-----", "---", "-------")
	for _, r := range runs {
		grid := fmt.Sprintf("%s %dx%d %s", r.Shape, r.Width, r.Height, r.Boundary)
		steps := fmt.Sprintf("%d", r.Steps)
		if r.Finished {
			steps += "*"
		}
		fmt.Printf("  %-36s  %-8s  %-26s  %-7s  %-6d  %s\n",
			r.ID, r.SimID, grid, steps, r.Population, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Println("* finished")
	return nil
}
