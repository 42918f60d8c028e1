package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/gridsim/internal/grid"
)

// ValidationError reports a configuration value that cannot be used.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Code, e.Message)
}

// Validate checks the grid settings before any structure is built.
func (g GridConfig) Validate() error {
	if !g.Shape.Valid() {
		return ValidationError{Code: "SHAPE", Message: fmt.Sprintf("unknown shape %d", g.Shape)}
	}
	if err := g.Boundary.Validate(); err != nil {
		return ValidationError{Code: "BOUNDARY", Message: err.Error()}
	}
	if g.Width < grid.MinSize || g.Width > grid.MaxSize || g.Height < grid.MinSize || g.Height > grid.MaxSize {
		return ValidationError{
			Code:    "SIZE",
			Message: fmt.Sprintf("%dx%d outside [%d, %d]", g.Width, g.Height, grid.MinSize, grid.MaxSize),
		}
	}
	if g.Width%2 != 0 || g.Height%2 != 0 {
		return ValidationError{Code: "SIZE", Message: fmt.Sprintf("%dx%d must be even", g.Width, g.Height)}
	}
	switch g.Storage {
	case StorageDense, StorageSparse:
	default:
		return ValidationError{Code: "STORAGE", Message: fmt.Sprintf("unknown storage %q", g.Storage)}
	}
	return nil
}

func validateProbability(code string, p float64) error {
	if p < 0 || p > 1 {
		return ValidationError{Code: code, Message: fmt.Sprintf("%v outside [0, 1]", p)}
	}
	return nil
}

// Validate checks the Conway settings.
func (c ConwayConfig) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if strings.Count(c.Rule, "/") != 1 {
		return ValidationError{Code: "RULE", Message: fmt.Sprintf("rule %q needs exactly one '/'", c.Rule)}
	}
	if c.MaxSteps < 0 {
		return ValidationError{Code: "STEPS", Message: "max_steps must not be negative"}
	}
	return validateProbability("DENSITY", c.Density)
}

// Validate checks the forest-fire settings.
func (c ForestConfig) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if c.MaxSteps < 0 {
		return ValidationError{Code: "STEPS", Message: "max_steps must not be negative"}
	}
	if err := validateProbability("GROWTH", c.Growth); err != nil {
		return err
	}
	if err := validateProbability("LIGHTNING", c.Lightning); err != nil {
		return err
	}
	return validateProbability("INITIAL_TREES", c.InitialTrees)
}

// Validate checks the Langton's ant settings.
func (c LangtonConfig) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if len(c.Turns) < 2 || strings.Trim(strings.ToUpper(c.Turns), "LR") != "" {
		return ValidationError{Code: "TURNS", Message: fmt.Sprintf("turns %q must be at least two of L and R", c.Turns)}
	}
	if c.Ants < 1 {
		return ValidationError{Code: "ANTS", Message: "at least one ant is required"}
	}
	if c.MaxSteps < 0 {
		return ValidationError{Code: "STEPS", Message: "max_steps must not be negative"}
	}
	return nil
}
