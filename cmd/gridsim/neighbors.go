package main

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsim/internal/config"
	"github.com/vovakirdan/gridsim/internal/grid"
	"github.com/vovakirdan/gridsim/internal/grid/neighborhood"
)

var flagRadius int

var neighborsCmd = &cobra.Command{
	Use:   "neighbors <x> <y>",
	Short: "Inspect the neighborhood of a cell",
	Long: `Print every neighbor of a cell with the edge action applied to it,
and optionally all cells within a number of rings.

The grid comes from the default grid config with --shape, --boundary,
--mode, --width and --height applied.

Examples:
  gridsim neighbors 0 0 --boundary wrap
  gridsim neighbors 3 4 --shape triangle --mode edges_and_vertices
  gridsim neighbors 8 8 --shape hexagon --radius 2`,
	Args: cobra.ExactArgs(2),
	RunE: runNeighbors,
}

func init() {
	neighborsCmd.Flags().IntVar(&flagRadius, "radius", 1, "Rings to expand, ignoring edges (1 = direct neighbors only)")
}

func runNeighbors(_ *cobra.Command, args []string) error {
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid x %q: %w", args[0], err)
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid y %q: %w", args[1], err)
	}

	gc, err := config.DefaultGridConfig().Apply(flagOverride)
	if err != nil {
		return err
	}
	st, err := gc.Structure()
	if err != nil {
		return err
	}

	start := grid.C(x, y)
	if !st.IsCoordinateValid(start) {
		return fmt.Errorf("%s is outside %s", start, st)
	}
	mode := gc.Neighborhood

	fmt.Printf("%s on %s, %s\n\n", start, st, mode)
	fmt.Printf("  %-4s  %-6s  %-12s  %-10s  %s\n", "Dir", "Type", "Neighbor", "Action", "Mapped")
	fmt.Printf("  %-4s  %-6s  %-12s  %-10s  %s\n", "---", "----", "--------", "------", "------")
	for _, nb := range neighborhood.CellNeighborsIgnoringEdgeBehavior(start, mode, st.Shape()) {
		res, err := neighborhood.ApplyEdgeBehaviorToCoordinate(nb.Coordinate, st)
		if err != nil {
			return err
		}
		mapped := "-"
		if res.Action.Reachable() {
			mapped = res.Mapped.String()
		}
		fmt.Printf("  %-4s  %-6s  %-12s  %-10s  %s\n",
			nb.Direction, nb.Type, nb.Coordinate, res.Action, mapped)
	}

	reachable, err := neighborhood.ReachableNeighbors(start, mode, st)
	if err != nil {
		return err
	}
	fmt.Printf("\nReachable (%d): %v\n", len(reachable), reachable)

	if flagRadius > 1 {
		within, err := neighborhood.CoordinatesOfNeighbors(start, mode, st.Shape(), flagRadius)
		if err != nil {
			return err
		}
		var cells []grid.Coordinate
		within.Each(func(c grid.Coordinate) {
			cells = append(cells, c)
		})
		slices.SortFunc(cells, func(a, b grid.Coordinate) int {
			return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
		})
		fmt.Printf("\nWithin %d rings, ignoring edges (%d):\n", flagRadius, len(cells))
		for _, c := range cells {
			fmt.Printf("  %s\n", c)
		}
	}
	return nil
}
