// Package config defines the YAML run configuration for spread-analyze and
// its loading, defaulting and validation.
package config

import (
	"time"
)

// Config is the top-level run configuration. Each mode of the CLI reads its
// own section; Data and Verbosity apply to all of them.
type Config struct {
	Data      DataConfig   `yaml:"data"`
	Generate  GenerateSpec `yaml:"generate"`
	Batch     BatchSpec    `yaml:"batch"`
	Merge     MergeSpec    `yaml:"merge"`
	Formula   FormulaSpec  `yaml:"formula"`
	Verbosity int          `yaml:"verbosity"`
}

// DataConfig locates input files.
type DataConfig struct {
	// SearchRoots is the explicit, ordered list of directories source names
	// are resolved against.
	SearchRoots []string `yaml:"search_roots"`
}

// GenerateSpec drives spread-definition generation.
type GenerateSpec struct {
	MergedTable string `yaml:"merged_table"` // wide table whose columns are the contract inventory
	MainMonths  []int  `yaml:"main_months"`  // e.g. [1, 5, 9]
	Inventory   string `yaml:"inventory"`    // output CSV
}

// BatchSpec drives batch spread calculation.
type BatchSpec struct {
	Inventory   string `yaml:"inventory"`    // spread definitions CSV
	MergedTable string `yaml:"merged_table"` // wide price table
	Output      string `yaml:"output"`       // derived wide table (feather)
	StatsOutput string `yaml:"stats_output"` // per-spread stats CSV
}

// MergeSpec drives merging per-contract series files into one wide table.
type MergeSpec struct {
	InputDir    string `yaml:"input_dir"`
	Output      string `yaml:"output"`
	FillMissing bool   `yaml:"fill_missing"`
}

// FormulaSpec drives the formula pipeline.
type FormulaSpec struct {
	Expression string        `yaml:"expression"`
	Frequency  string        `yaml:"frequency"` // e.g. "15m", "1h", "24h"
	Start      string        `yaml:"start"`     // "2006-01-02", inclusive
	End        string        `yaml:"end"`       // "2006-01-02", exclusive
	Bindings   []BindingSpec `yaml:"bindings"`
	OutputDir  string        `yaml:"output_dir"`
}

// BindingSpec binds one formula variable to a source file.
type BindingSpec struct {
	Label    string `yaml:"label"`     // single uppercase letter
	Source   string `yaml:"source"`    // file name resolved against search roots
	TZOffset int    `yaml:"tz_offset"` // hours east of UTC
}

const dateLayout = "2006-01-02"

// ParseFrequency returns the resampling bucket width.
func (f FormulaSpec) ParseFrequency() (time.Duration, error) {
	return time.ParseDuration(f.Frequency)
}

// ParseStart returns the inclusive lower date bound, zero when unset.
func (f FormulaSpec) ParseStart() (time.Time, error) {
	if f.Start == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, f.Start)
}

// ParseEnd returns the exclusive upper date bound, zero when unset.
func (f FormulaSpec) ParseEnd() (time.Time, error) {
	if f.End == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, f.End)
}
