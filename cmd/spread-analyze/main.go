package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sweetHomeGo/spread-analyze/internal/config"
	"github.com/sweetHomeGo/spread-analyze/internal/data"
	"github.com/sweetHomeGo/spread-analyze/internal/engine"
	"github.com/sweetHomeGo/spread-analyze/internal/logger"
	"github.com/sweetHomeGo/spread-analyze/internal/report"
	"github.com/sweetHomeGo/spread-analyze/internal/series"
	"github.com/sweetHomeGo/spread-analyze/internal/spread"
)

func main() {
	configPath := flag.String("config", "spread.yaml", "path to YAML config")
	mode := flag.String("mode", "", "one of: generate, batch, formula, merge")
	formulaExpr := flag.String("formula", "", "override formula.expression from config")
	verbosity := flag.Int("v", -1, "override verbosity (0=errors .. 3=trace)")
	flag.Parse()

	if *mode == "" && flag.NArg() > 0 {
		*mode = flag.Arg(0)
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *formulaExpr != "" {
		cfg.Formula.Expression = *formulaExpr
	}
	if *verbosity >= 0 {
		cfg.Verbosity = *verbosity
	}
	logger.SetVerbosity(cfg.Verbosity)

	switch *mode {
	case "generate":
		err = runGenerate(cfg)
	case "batch":
		err = runBatch(cfg)
	case "formula":
		err = runFormula(cfg)
	case "merge":
		err = runMerge(cfg)
	default:
		log.Fatalf("unknown mode %q, want generate, batch, formula or merge", *mode)
	}
	if err != nil {
		log.Fatalf("%s: %v", *mode, err)
	}
}

// runGenerate enumerates spread definitions from the contract columns of a
// merged wide table and writes the inventory CSV.
func runGenerate(cfg *config.Config) error {
	if cfg.Generate.MergedTable == "" {
		return fmt.Errorf("generate.merged_table is required")
	}
	table, err := data.LoadWideTable(cfg.Generate.MergedTable)
	if err != nil {
		return err
	}

	defs := spread.Generate(table.Columns, cfg.Generate.MainMonths)
	if err := spread.WriteInventory(cfg.Generate.Inventory, defs); err != nil {
		return err
	}
	fmt.Printf("generated %d spread definitions -> %s\n", len(defs), cfg.Generate.Inventory)
	return nil
}

// runBatch computes every inventoried spread over the merged wide table and
// writes the derived table plus per-spread statistics.
func runBatch(cfg *config.Config) error {
	if cfg.Batch.MergedTable == "" || cfg.Batch.Output == "" {
		return fmt.Errorf("batch.merged_table and batch.output are required")
	}
	defs, err := spread.ReadInventory(cfg.Batch.Inventory)
	if err != nil {
		return err
	}
	table, err := data.LoadWideTable(cfg.Batch.MergedTable)
	if err != nil {
		return err
	}

	out, skipped := spread.ComputeAll(defs, table)
	for _, s := range skipped {
		fmt.Printf("skipped %s: missing %s\n", s.Definition.SpreadCode, strings.Join(s.Missing, ", "))
	}
	if err := writeWide(cfg.Batch.Output, out); err != nil {
		return err
	}

	stats := spread.SummarizeTable(out.Columns, out.Data)
	if err := report.WriteStatsCSV(cfg.Batch.StatsOutput, stats); err != nil {
		return err
	}
	fmt.Printf("calculated %d spreads -> %s (stats -> %s)\n",
		len(out.Columns), cfg.Batch.Output, cfg.Batch.StatsOutput)
	if n := len(out.Timestamps); n > 0 {
		fmt.Printf("time range: %s to %s\n", out.Timestamps[0], out.Timestamps[n-1])
	}
	return nil
}

// runFormula executes the formula pipeline and writes the aligned series,
// the derived spread, its statistics and run metadata.
func runFormula(cfg *config.Config) error {
	if cfg.Formula.Expression == "" {
		return fmt.Errorf("formula.expression is required")
	}
	freq, err := cfg.Formula.ParseFrequency()
	if err != nil {
		return err
	}
	start, err := cfg.Formula.ParseStart()
	if err != nil {
		return err
	}
	end, err := cfg.Formula.ParseEnd()
	if err != nil {
		return err
	}

	ecfg := &engine.Config{
		Formula: cfg.Formula.Expression,
		Freq:    freq,
		Start:   start,
		End:     end,
	}
	sources := make([]string, 0, len(cfg.Formula.Bindings))
	for _, b := range cfg.Formula.Bindings {
		ecfg.Bindings = append(ecfg.Bindings, engine.Binding{
			Label:    rune(b.Label[0]),
			Source:   b.Source,
			TZOffset: b.TZOffset,
		})
		sources = append(sources, b.Source)
	}

	resolver := data.NewSearchPathResolver(cfg.Data.SearchRoots)
	res, err := engine.New(ecfg, resolver, nil).Run()
	if err != nil {
		return err
	}

	fmt.Printf("spread statistics over %d points:\n", len(res.Timestamps))
	fmt.Printf("  mean   %.4f\n", res.Stats.Mean)
	fmt.Printf("  max    %.4f\n", res.Stats.Max)
	fmt.Printf("  min    %.4f\n", res.Stats.Min)
	fmt.Printf("  std    %.4f\n", res.Stats.Std)
	fmt.Printf("  median %.4f\n", res.Stats.Median)

	outdir := cfg.Formula.OutputDir
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return err
	}
	if err := report.WriteResultCSV(outdir, res); err != nil {
		return err
	}
	if err := report.WriteStatsCSV(filepath.Join(outdir, "spread_stats.csv"), []spread.Stats{res.Stats}); err != nil {
		return err
	}
	meta := report.NewRunMeta(cfg.Formula.Expression, cfg.Formula.Frequency, len(res.Timestamps), sources)
	if err := report.WriteRunMeta(outdir, meta); err != nil {
		return err
	}
	fmt.Printf("results written to %s (run %s)\n", outdir, meta.RunID)
	return nil
}

// runMerge outer-joins per-contract series files into one wide table.
func runMerge(cfg *config.Config) error {
	if cfg.Merge.InputDir == "" || cfg.Merge.Output == "" {
		return fmt.Errorf("merge.input_dir and merge.output are required")
	}
	table, err := data.MergeDir(cfg.Merge.InputDir, series.MergeOptions{FillMissing: cfg.Merge.FillMissing})
	if err != nil {
		return err
	}
	if err := writeWide(cfg.Merge.Output, table); err != nil {
		return err
	}
	fmt.Printf("merged %d contracts over %d timestamps -> %s\n",
		len(table.Columns), len(table.Timestamps), cfg.Merge.Output)
	return nil
}

// writeWide picks the output codec from the file extension.
func writeWide(path string, table *series.WideTable) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".feather", ".arrow":
		return data.WriteFeatherWide(path, table)
	case ".csv":
		return report.WriteWideCSV(path, table)
	default:
		return fmt.Errorf("%w: %s", data.ErrUnsupportedFormat, filepath.Ext(path))
	}
}
