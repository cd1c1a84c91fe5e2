package config

import (
	"errors"
	"fmt"
)

// Validate checks that all set fields hold usable values. Mode sections left
// entirely empty are not validated; the CLI rejects a mode whose section is
// missing when that mode is actually invoked.
func (c *Config) Validate() error {
	if c.Verbosity < 0 || c.Verbosity > 3 {
		return fmt.Errorf("verbosity must be between 0 and 3, got %d", c.Verbosity)
	}

	for _, m := range c.Generate.MainMonths {
		if m < 1 || m > 12 {
			return fmt.Errorf("generate.main_months entry %d out of range 1-12", m)
		}
	}

	if c.Formula.Expression != "" {
		if err := c.validateFormula(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateFormula() error {
	if _, err := c.Formula.ParseFrequency(); err != nil {
		return fmt.Errorf("formula.frequency: %w", err)
	}
	if _, err := c.Formula.ParseStart(); err != nil {
		return fmt.Errorf("formula.start: %w", err)
	}
	if _, err := c.Formula.ParseEnd(); err != nil {
		return fmt.Errorf("formula.end: %w", err)
	}

	if len(c.Formula.Bindings) == 0 {
		return errors.New("formula.bindings is required")
	}
	seen := make(map[string]bool)
	for i, b := range c.Formula.Bindings {
		if len(b.Label) != 1 || b.Label[0] < 'A' || b.Label[0] > 'Z' {
			return fmt.Errorf("formula.bindings[%d].label must be a single uppercase letter, got %q", i, b.Label)
		}
		if seen[b.Label] {
			return fmt.Errorf("formula.bindings[%d].label %q is duplicated", i, b.Label)
		}
		seen[b.Label] = true
		if b.Source == "" {
			return fmt.Errorf("formula.bindings[%d].source is required", i)
		}
	}
	return nil
}
