// Package report writes run artifacts: derived series tables, per-spread
// statistics and run metadata.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/sweetHomeGo/spread-analyze/internal/engine"
	"github.com/sweetHomeGo/spread-analyze/internal/series"
	"github.com/sweetHomeGo/spread-analyze/internal/spread"
)

const timestampLayout = "2006-01-02 15:04:05"

// RunMeta identifies one pipeline run in the metadata artifact.
type RunMeta struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Formula     string    `json:"formula,omitempty"`
	Frequency   string    `json:"frequency,omitempty"`
	Rows        int       `json:"rows"`
	Sources     []string  `json:"sources,omitempty"`
}

// NewRunMeta stamps a fresh run id.
func NewRunMeta(formulaStr, freq string, rows int, sources []string) RunMeta {
	return RunMeta{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Formula:     formulaStr,
		Frequency:   freq,
		Rows:        rows,
		Sources:     sources,
	}
}

// WriteRunMeta saves run metadata as indented JSON.
func WriteRunMeta(outdir string, meta RunMeta) error {
	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "run.json"), b, 0644)
}

// WriteResultCSV saves a formula pipeline result as spread_data.csv: the
// shared timestamp axis, one close_<VAR> column per variable, and the spread
// column last.
func WriteResultCSV(outdir string, res *engine.Result) error {
	f, err := os.Create(filepath.Join(outdir, "spread_data.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	labels := make([]rune, 0, len(res.Aligned))
	for label := range res.Aligned {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"datetime"}
	for _, label := range labels {
		header = append(header, fmt.Sprintf("close_%c", label))
	}
	header = append(header, "spread")
	if err := w.Write(header); err != nil {
		return err
	}

	for i, t := range res.Timestamps {
		row := []string{t.Format(timestampLayout)}
		for _, label := range labels {
			row = append(row, formatCell(res.Aligned[label].Prices[i]))
		}
		row = append(row, formatCell(res.Spread[i]))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteStatsCSV saves per-spread summary statistics, one row per series.
func WriteStatsCSV(path string, stats []spread.Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"spread_code", "count", "mean", "std", "min", "max", "median", "missing_pct"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range stats {
		row := []string{
			s.SpreadCode,
			strconv.Itoa(s.Count),
			formatCell(s.Mean),
			formatCell(s.Std),
			formatCell(s.Min),
			formatCell(s.Max),
			formatCell(s.Median),
			strconv.FormatFloat(s.MissingPct, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteWideCSV saves a wide price table as CSV, NaN cells left empty.
func WriteWideCSV(path string, tbl *series.WideTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{"timestamp"}, tbl.Columns...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i, t := range tbl.Timestamps {
		row := make([]string, 0, len(header))
		row = append(row, t.Format(timestampLayout))
		for _, name := range tbl.Columns {
			row = append(row, formatCell(tbl.Data[name][i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// formatCell renders a price, empty for missing.
func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
