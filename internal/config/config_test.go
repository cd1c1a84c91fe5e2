package config

import (
	"strings"
	"testing"
	"time"

	"github.com/sweetHomeGo/spread-analyze/internal/testutil"
)

const sampleYAML = `
data:
  search_roots:
    - ./testdata
    - /var/data/futures
verbosity: 2
generate:
  merged_table: merged.feather
  main_months: [1, 5, 9]
  inventory: spreads.csv
batch:
  merged_table: merged.feather
  output: spread_data.feather
formula:
  expression: "A-B"
  frequency: 1h
  start: "2024-01-02"
  end: "2024-06-01"
  output_dir: ./out
  bindings:
    - label: A
      source: i2501.csv
    - label: B
      source: i2505.csv
      tz_offset: 8
`

func TestLoadAndValidate(t *testing.T) {
	path := testutil.WriteTempFile(t, "spread.yaml", sampleYAML)
	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate: %v", err)
	}

	if len(cfg.Data.SearchRoots) != 2 || cfg.Data.SearchRoots[1] != "/var/data/futures" {
		t.Errorf("search_roots = %v", cfg.Data.SearchRoots)
	}
	if cfg.Verbosity != 2 {
		t.Errorf("verbosity = %d, want 2", cfg.Verbosity)
	}
	if cfg.Formula.Expression != "A-B" {
		t.Errorf("expression = %q", cfg.Formula.Expression)
	}
	if len(cfg.Formula.Bindings) != 2 || cfg.Formula.Bindings[1].TZOffset != 8 {
		t.Errorf("bindings = %+v", cfg.Formula.Bindings)
	}

	freq, err := cfg.Formula.ParseFrequency()
	if err != nil || freq != time.Hour {
		t.Errorf("frequency = %v/%v, want 1h", freq, err)
	}
	start, err := cfg.Formula.ParseStart()
	if err != nil || !start.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v/%v", start, err)
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("DATA_ROOT", "/mnt/prices")
	path := testutil.WriteTempFile(t, "spread.yaml", `
data:
  search_roots:
    - ${DATA_ROOT}/minute
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.SearchRoots[0] != "/mnt/prices/minute" {
		t.Errorf("search_roots[0] = %q, want expanded path", cfg.Data.SearchRoots[0])
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if len(cfg.Data.SearchRoots) != 1 || cfg.Data.SearchRoots[0] != "." {
		t.Errorf("search_roots = %v, want [.]", cfg.Data.SearchRoots)
	}
	if len(cfg.Generate.MainMonths) != 3 || cfg.Generate.MainMonths[0] != 1 {
		t.Errorf("main_months = %v, want the 1/5/9 cycle", cfg.Generate.MainMonths)
	}
	if cfg.Generate.Inventory != DefaultInventory {
		t.Errorf("inventory = %q", cfg.Generate.Inventory)
	}
	if cfg.Batch.Inventory != cfg.Generate.Inventory {
		t.Errorf("batch inventory %q does not follow generate's %q", cfg.Batch.Inventory, cfg.Generate.Inventory)
	}
	if cfg.Formula.Frequency != DefaultFrequency {
		t.Errorf("frequency = %q", cfg.Formula.Frequency)
	}
	if cfg.Formula.OutputDir != DefaultOutputDir {
		t.Errorf("output_dir = %q", cfg.Formula.OutputDir)
	}
}

func TestValidateErrors(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.applyDefaults()
		cfg.Formula.Expression = "A-B"
		cfg.Formula.Bindings = []BindingSpec{
			{Label: "A", Source: "a.csv"},
			{Label: "B", Source: "b.csv"},
		}
		return cfg
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"verbosity out of range", func(c *Config) { c.Verbosity = 5 }, "verbosity"},
		{"bad main month", func(c *Config) { c.Generate.MainMonths = []int{13} }, "main_months"},
		{"bad frequency", func(c *Config) { c.Formula.Frequency = "fortnight" }, "frequency"},
		{"bad start date", func(c *Config) { c.Formula.Start = "02/01/2024" }, "start"},
		{"no bindings", func(c *Config) { c.Formula.Bindings = nil }, "bindings is required"},
		{"lowercase label", func(c *Config) { c.Formula.Bindings[0].Label = "a" }, "uppercase"},
		{"multi-letter label", func(c *Config) { c.Formula.Bindings[0].Label = "AB" }, "uppercase"},
		{"duplicate label", func(c *Config) { c.Formula.Bindings[1].Label = "A" }, "duplicated"},
		{"missing source", func(c *Config) { c.Formula.Bindings[0].Source = "" }, "source is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("err = %v, want mention of %q", err, tc.wantSub)
			}
		})
	}
}

func TestValidateEmptySectionsPass(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty config should validate: %v", err)
	}
}

func TestParseBoundsUnset(t *testing.T) {
	var f FormulaSpec
	start, err := f.ParseStart()
	if err != nil || !start.IsZero() {
		t.Errorf("unset start = %v/%v, want zero", start, err)
	}
	end, err := f.ParseEnd()
	if err != nil || !end.IsZero() {
		t.Errorf("unset end = %v/%v, want zero", end, err)
	}
}
