// Package series holds timestamped close-price series and the alignment
// operations that bring several independently loaded series onto one common
// time grid: timezone shifting, fixed-interval resampling, timestamp-set
// intersection and row filtering.
package series

import (
	"sort"
	"time"
)

// MarketSeries is one instrument's close prices keyed by timestamp.
// Timestamps are non-decreasing after load. Prices may contain NaN for
// missing observations; timestamps never do.
//
// A MarketSeries is treated as immutable once produced: every operation in
// this package returns a new series (or the input unchanged when it is a
// no-op) rather than mutating in place.
type MarketSeries struct {
	Timestamps []time.Time
	Prices     []float64
}

// Len returns the number of observations.
func (s *MarketSeries) Len() int { return len(s.Timestamps) }

// Sort orders the series ascending by timestamp, keeping prices paired.
// Used once by loaders; aligned series are already ordered.
func (s *MarketSeries) Sort() {
	type row struct {
		t time.Time
		p float64
	}
	rows := make([]row, len(s.Timestamps))
	for i := range s.Timestamps {
		rows[i] = row{s.Timestamps[i], s.Prices[i]}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].t.Before(rows[j].t) })
	for i, r := range rows {
		s.Timestamps[i] = r.t
		s.Prices[i] = r.p
	}
}

// FilterRange keeps observations with start <= t < end. A zero start or end
// leaves that side unbounded.
func FilterRange(s *MarketSeries, start, end time.Time) *MarketSeries {
	if start.IsZero() && end.IsZero() {
		return s
	}
	out := &MarketSeries{}
	for i, t := range s.Timestamps {
		if !start.IsZero() && t.Before(start) {
			continue
		}
		if !end.IsZero() && !t.Before(end) {
			continue
		}
		out.Timestamps = append(out.Timestamps, t)
		out.Prices = append(out.Prices, s.Prices[i])
	}
	return out
}
