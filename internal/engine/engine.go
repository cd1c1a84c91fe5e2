// Package engine orchestrates the formula-driven spread pipeline: load each
// bound source, normalize its clock, find the common timeframe, align, and
// evaluate the spread formula over the aligned arrays.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sweetHomeGo/spread-analyze/internal/data"
	"github.com/sweetHomeGo/spread-analyze/internal/formula"
	"github.com/sweetHomeGo/spread-analyze/internal/logger"
	"github.com/sweetHomeGo/spread-analyze/internal/series"
	"github.com/sweetHomeGo/spread-analyze/internal/spread"
)

// Typed errors allow callers and tests to detect failure categories
// without string matching.
var (
	ErrNoVariablesLoaded = errors.New("no variables loaded")
	ErrEmptyTimeframe    = errors.New("no common timeframe across variables")
	ErrVariablesMissing  = errors.New("formula variables missing from aligned set")
)

// Binding ties one formula variable letter to a source file and its clock
// offset relative to UTC.
type Binding struct {
	Label    rune
	Source   string
	TZOffset int // hours east of UTC
}

// Config drives one pipeline run.
type Config struct {
	Formula  string
	Bindings []Binding
	Freq     time.Duration // resampling bucket width, e.g. 15m
	Start    time.Time     // optional narrowing, inclusive
	End      time.Time     // optional narrowing, exclusive
}

// Result is the pipeline output: per-variable aligned series on a shared
// timestamp axis, the derived spread series, and its summary statistics.
type Result struct {
	Timestamps []time.Time
	Aligned    map[rune]*series.MarketSeries
	Spread     []float64
	Stats      spread.Stats
}

// LoadFunc loads one resolved source path into a series. Injected so tests
// run without fixture files and callers can swap table formats.
type LoadFunc func(path string) (*series.MarketSeries, error)

// Engine runs the formula pipeline over configured bindings.
type Engine struct {
	cfg      *Config
	resolver data.Resolver
	load     LoadFunc
}

// New builds an Engine. A nil load falls back to data.LoadSeries.
func New(cfg *Config, resolver data.Resolver, load LoadFunc) *Engine {
	if load == nil {
		load = data.LoadSeries
	}
	return &Engine{cfg: cfg, resolver: resolver, load: load}
}

// Run executes the pipeline.
//
// Per-variable failures are isolated: a variable whose source cannot be
// resolved or loaded is reported and excluded, and the run continues with
// the rest. The run fails globally only when nothing loads, when the common
// timeframe is empty, or when the formula references a variable that did not
// survive loading.
func (e *Engine) Run() (*Result, error) {
	vars := formula.ExtractVariables(e.cfg.Formula)
	if len(vars) == 0 {
		return nil, fmt.Errorf("%w: %q", formula.ErrNoVariables, e.cfg.Formula)
	}
	logger.Infof("formula %q references variables %s", e.cfg.Formula, string(vars))

	loaded := make(map[rune]*series.MarketSeries)
	loadErrs := make(map[rune]error)
	for _, b := range e.cfg.Bindings {
		s, err := e.loadBinding(b)
		if err != nil {
			logger.Errorf("variable %c (%s): %v", b.Label, b.Source, err)
			loadErrs[b.Label] = err
			continue
		}
		loaded[b.Label] = s
	}
	if len(loaded) == 0 {
		return nil, fmt.Errorf("%w: all %d bindings failed", ErrNoVariablesLoaded, len(e.cfg.Bindings))
	}

	// First pass: intersect and align everything that loaded.
	common := series.Intersection(loaded)
	logger.Infof("found %d common timestamps across %d variables", len(common), len(loaded))
	if len(common) == 0 {
		return nil, ErrEmptyTimeframe
	}
	aligned := make(map[rune]*series.MarketSeries, len(loaded))
	for label, s := range loaded {
		aligned[label] = series.Align(s, common)
	}

	// Second pass: an explicit date range narrows the aligned state, and the
	// common timeframe must be recomputed from the filtered series rather
	// than reusing the first pass.
	if !e.cfg.Start.IsZero() || !e.cfg.End.IsZero() {
		for label, s := range aligned {
			aligned[label] = series.FilterRange(s, e.cfg.Start, e.cfg.End)
		}
		common = series.Intersection(aligned)
		logger.Infof("date range filter left %d common timestamps", len(common))
		if len(common) == 0 {
			return nil, ErrEmptyTimeframe
		}
		for label, s := range aligned {
			aligned[label] = series.Align(s, common)
		}
	}

	if missing := missingVariables(vars, aligned); len(missing) > 0 {
		for _, label := range missing {
			if err, ok := loadErrs[label]; ok {
				logger.Errorf("variable %c unavailable: %v", label, err)
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrVariablesMissing, string(missing))
	}

	arrays := make(map[rune][]float64, len(vars))
	for _, label := range vars {
		arrays[label] = aligned[label].Prices
	}
	values, err := formula.Evaluate(arrays, e.cfg.Formula)
	if err != nil {
		return nil, err
	}

	return &Result{
		Timestamps: common,
		Aligned:    aligned,
		Spread:     values,
		Stats:      spread.Summarize(e.cfg.Formula, values),
	}, nil
}

// loadBinding resolves, loads and normalizes one variable's source:
// timezone offset first, then resampling, both ahead of any intersection.
func (e *Engine) loadBinding(b Binding) (*series.MarketSeries, error) {
	path, err := e.resolver.Resolve(b.Source)
	if err != nil {
		return nil, err
	}
	s, err := e.load(path)
	if err != nil {
		return nil, err
	}
	s = series.ApplyTimezoneOffset(s, b.TZOffset)
	if e.cfg.Freq > 0 {
		before := s.Len()
		s = series.Resample(s, e.cfg.Freq)
		logger.Debugf("variable %c resampled %d -> %d rows", b.Label, before, s.Len())
	}
	return s, nil
}

func missingVariables(vars []rune, aligned map[rune]*series.MarketSeries) []rune {
	var missing []rune
	for _, label := range vars {
		if _, ok := aligned[label]; !ok {
			missing = append(missing, label)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}
