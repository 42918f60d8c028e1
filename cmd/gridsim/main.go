// gridsim runs cellular simulations on triangle, square and hexagon grids.
//
// Usage:
//
//	gridsim list                 - List available simulations
//	gridsim watch <sim>          - Watch a simulation in the terminal
//	gridsim menu                 - Pick simulations interactively
//	gridsim run <sim>            - Run headless and record the result
//	gridsim runs                 - Show recorded runs
//	gridsim neighbors x y        - Inspect a cell's neighborhood
//	gridsim serve                - Start SSH server for remote viewing
//	gridsim init-config <sim>    - Write a sim's default config to disk
//
// Global flags:
//
//	--fps <rate>    - Steps per second in the viewer (default: 10)
//	--seed <value>  - RNG seed for reproducible runs
//	--db <path>     - Database path (default: ~/.gridsim/runs.db)
//	--config <path> - Custom sim config YAML
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsim/internal/core"

	// Import sims to register them
	_ "github.com/vovakirdan/gridsim/internal/sims/conway"
	_ "github.com/vovakirdan/gridsim/internal/sims/forest"
	_ "github.com/vovakirdan/gridsim/internal/sims/langton"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagVerbose  bool
	flagOverride core.GridOverrides
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "gridsim",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridsim",
	Short: "Cellular simulations on triangle, square and hexagon grids",
	Long: `gridsim runs cellular automata on grids of triangles, squares or
hexagons with configurable edge behavior.

Available commands:
  list         - Show all available simulations
  watch        - Watch one simulation in the terminal
  menu         - Interactive simulation picker
  run          - Run headless and record snapshots
  runs         - Show recorded runs
  neighbors    - Inspect the neighborhood of a cell
  serve        - Start SSH server for remote viewing
  init-config  - Write a default config file

Examples:
  gridsim list
  gridsim watch conway --shape hexagon
  gridsim run forest --steps 500 --snapshot-every 50
  gridsim neighbors 0 0 --shape triangle --boundary wrap --radius 2`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Steps per second in the viewer")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.gridsim/runs.db", "Path to runs database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom sim config YAML")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	pf.StringVar(&flagOverride.Shape, "shape", "", "Cell shape: triangle, square or hexagon")
	pf.StringVar(&flagOverride.Boundary, "boundary", "", "Boundary type, e.g. wrap, absorb, reflect, block_x_wrap_y")
	pf.StringVar(&flagOverride.Mode, "mode", "", "Neighborhood: edges_only or edges_and_vertices")
	pf.StringVar(&flagOverride.Storage, "storage", "", "Model storage: dense or sparse")
	pf.IntVar(&flagOverride.Width, "width", 0, "Grid width (even, 16..16384)")
	pf.IntVar(&flagOverride.Height, "height", 0, "Grid height (even, 16..16384)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(neighborsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initConfigCmd)
}

// runtimeConfig builds the runtime config from the global flags. The screen
// size comes from the terminal when stdout is one.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.ConfigPath = flagConfig
	cfg.Grid = flagOverride
	return cfg
}
