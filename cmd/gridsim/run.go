package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/registry"
	"github.com/vovakirdan/gridsim/internal/storage"
)

var (
	flagSteps     int
	flagRunEvery  int
	flagNoRecord  bool
	flagPrintGrid bool
)

var runCmd = &cobra.Command{
	Use:   "run <sim>",
	Short: "Run a simulation headless and record it",
	Long: `Advance a simulation without a UI. The run and its snapshots are
stored in the runs database unless --no-record is given.

The run stops after --steps steps, when the simulation finishes, or on
Ctrl+C; progress up to that point is kept.

Examples:
  gridsim run conway --steps 1000 --seed 42
  gridsim run forest --steps 500 --snapshot-every 50
  gridsim run langton --steps 11000 --print`,
	Args: cobra.ExactArgs(1),
	RunE: runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagSteps, "steps", 100, "Maximum number of steps")
	runCmd.Flags().IntVar(&flagRunEvery, "snapshot-every", 0, "Store a snapshot every N steps (0 = only first and last)")
	runCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not write to the runs database")
	runCmd.Flags().BoolVar(&flagPrintGrid, "print", false, "Print the final grid to stdout")
}

func runHeadless(_ *cobra.Command, args []string) error {
	simID := args[0]
	sim, err := registry.Create(simID)
	if err != nil {
		return err
	}
	batch, ok := sim.(registry.Batch)
	if !ok {
		return fmt.Errorf("simulation %q cannot run headless", simID)
	}
	if flagSteps <= 0 {
		return fmt.Errorf("--steps must be positive, got %d", flagSteps)
	}

	cfg := runtimeConfig()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := sim.Reset(cfg); err != nil {
		return fmt.Errorf("reset %s: %w", simID, err)
	}
	logger.Info("starting run", "sim", simID, "grid", sim.Structure(), "seed", cfg.Seed, "steps", flagSteps)

	var store *storage.Store
	var run storage.Run
	if !flagNoRecord {
		if store = openStore(); store != nil {
			defer store.Close()
			if run, err = store.CreateRun(simID, sim.Structure(), cfg.Seed); err != nil {
				logger.Warn("could not record run", "error", err)
				store = nil
			}
		}
	}
	save := func(step int) {
		if store == nil {
			return
		}
		if err := store.SaveSnapshot(run.ID, step, sim.Snapshot()); err != nil {
			logger.Warn("could not save snapshot", "step", step, "error", err)
			return
		}
		logger.Debug("snapshot saved", "step", step)
	}
	save(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	res, runErr := batch.Run(ctx, flagSteps, func(step int) {
		if flagRunEvery > 0 && step%flagRunEvery == 0 {
			save(step)
		}
	})

	st := sim.State()
	if flagRunEvery <= 0 || st.Step%flagRunEvery != 0 {
		save(st.Step)
	}
	if store != nil {
		if err := store.UpdateRun(run.ID, st); err != nil {
			logger.Warn("could not update run", "error", err)
		}
	}
	if runErr != nil {
		return fmt.Errorf("step %d: %w", res.StepCount, runErr)
	}

	logger.Info("run complete",
		"steps", res.StepCount,
		"population", st.Population,
		"finished", res.Finished,
		"interrupted", res.Interrupted,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	if store != nil {
		fmt.Println(run.ID)
	}
	if flagPrintGrid {
		printGrid(sim)
	}
	return nil
}

func printGrid(sim registry.Simulation) {
	st := sim.Structure()
	// One extra row for the status line.
	screen := core.NewScreen(st.Width(), st.Height()+1)
	sim.Render(screen)
	fmt.Println(screen.String())
}
