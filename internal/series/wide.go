package series

import (
	"math"
	"sort"
	"time"
)

// WideTable is a wide price layout: one row per timestamp, one column per
// contract or spread code. Every column is aligned 1:1 with Timestamps;
// cells where a source lacked that timestamp hold NaN.
type WideTable struct {
	Timestamps []time.Time
	Columns    []string // column insertion order
	Data       map[string][]float64
}

// NewWideTable returns an empty table keyed by the given timestamps.
func NewWideTable(timestamps []time.Time) *WideTable {
	return &WideTable{
		Timestamps: timestamps,
		Data:       make(map[string][]float64),
	}
}

// AddColumn appends a column. Values must match the timestamp length;
// callers that cannot guarantee this should go through MergeSeries.
func (w *WideTable) AddColumn(name string, values []float64) {
	if _, exists := w.Data[name]; !exists {
		w.Columns = append(w.Columns, name)
	}
	w.Data[name] = values
}

// HasColumn reports whether the table carries the named column.
func (w *WideTable) HasColumn(name string) bool {
	_, ok := w.Data[name]
	return ok
}

// MergeOptions controls MergeSeries behavior.
type MergeOptions struct {
	// FillMissing forward-fills NaN prices within each source series, then
	// backward-fills whatever NaN run is left at its head, before the join.
	// Gaps introduced by the join itself are never filled.
	FillMissing bool
}

// MergeSeries outer-joins per-contract series into one wide table. The
// timestamp axis is the sorted union of all input timestamps, de-duplicated;
// a column is NaN wherever its source had no observation at that instant.
// Column order follows the order slice.
func MergeSeries(byName map[string]*MarketSeries, order []string, opts MergeOptions) *WideTable {
	union := make(map[time.Time]bool)
	for _, s := range byName {
		for _, t := range s.Timestamps {
			union[t] = true
		}
	}
	timestamps := make([]time.Time, 0, len(union))
	for t := range union {
		timestamps = append(timestamps, t)
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })

	index := make(map[time.Time]int, len(timestamps))
	for i, t := range timestamps {
		index[t] = i
	}

	w := NewWideTable(timestamps)
	for _, name := range order {
		s, ok := byName[name]
		if !ok {
			continue
		}
		src := s.Prices
		if opts.FillMissing {
			src = append([]float64(nil), s.Prices...)
			fillForwardBackward(src)
		}
		col := make([]float64, len(timestamps))
		for i := range col {
			col[i] = math.NaN()
		}
		seen := make(map[time.Time]bool, s.Len())
		for i, t := range s.Timestamps {
			// duplicate source timestamps keep the first observation
			if seen[t] {
				continue
			}
			seen[t] = true
			col[index[t]] = src[i]
		}
		w.AddColumn(name, col)
	}
	return w
}

// fillForwardBackward replaces NaN cells with the previous non-NaN value,
// then fills any leading NaN run with the first real value.
func fillForwardBackward(col []float64) {
	last := math.NaN()
	for i, v := range col {
		if math.IsNaN(v) {
			col[i] = last
		} else {
			last = v
		}
	}
	next := math.NaN()
	for i := len(col) - 1; i >= 0; i-- {
		if math.IsNaN(col[i]) {
			col[i] = next
		} else {
			next = col[i]
		}
	}
}
