package series

import (
	"sort"
	"time"
)

// ApplyTimezoneOffset shifts every timestamp by hours relative to UTC.
// The caller supplies the sign (east positive). A zero offset returns the
// input series unchanged, no copy.
func ApplyTimezoneOffset(s *MarketSeries, hours int) *MarketSeries {
	if hours == 0 {
		return s
	}
	d := time.Duration(hours) * time.Hour
	out := &MarketSeries{
		Timestamps: make([]time.Time, len(s.Timestamps)),
		Prices:     append([]float64(nil), s.Prices...),
	}
	for i, t := range s.Timestamps {
		out.Timestamps[i] = t.Add(d)
	}
	return out
}

// Resample buckets the series into fixed-width intervals of freq, keeping the
// last observation in each bucket. Buckets with no observation are dropped,
// not filled. Output is ascending with one row per non-empty bucket.
func Resample(s *MarketSeries, freq time.Duration) *MarketSeries {
	if freq <= 0 {
		return s
	}
	last := make(map[time.Time]float64, s.Len())
	var keys []time.Time
	for i, t := range s.Timestamps {
		bucket := t.Truncate(freq)
		if _, seen := last[bucket]; !seen {
			keys = append(keys, bucket)
		}
		// input is ordered, so later rows overwrite earlier ones
		last[bucket] = s.Prices[i]
	}
	out := &MarketSeries{
		Timestamps: make([]time.Time, 0, len(keys)),
		Prices:     make([]float64, 0, len(keys)),
	}
	for _, k := range keys {
		out.Timestamps = append(out.Timestamps, k)
		out.Prices = append(out.Prices, last[k])
	}
	out.Sort()
	return out
}

// Intersection computes the common timeframe: the set of timestamps present
// in every series of the map, ascending. An empty map yields an empty slice.
// An empty result is a valid degenerate state; callers decide whether to
// refuse to proceed.
func Intersection(byLabel map[rune]*MarketSeries) []time.Time {
	if len(byLabel) == 0 {
		return nil
	}
	counts := make(map[time.Time]int)
	for _, s := range byLabel {
		seen := make(map[time.Time]bool, s.Len())
		for _, t := range s.Timestamps {
			if !seen[t] {
				seen[t] = true
				counts[t]++
			}
		}
	}
	var common []time.Time
	for t, n := range counts {
		if n == len(byLabel) {
			common = append(common, t)
		}
	}
	sortTimes(common)
	return common
}

// Align filters s to exactly the rows whose timestamp is a member of common.
// Row order is preserved, never reordered. Each common timestamp contributes
// at most one row, its first occurrence, so aligned series always come out
// equal in length however many duplicates a source carried.
func Align(s *MarketSeries, common []time.Time) *MarketSeries {
	member := make(map[time.Time]bool, len(common))
	for _, t := range common {
		member[t] = true
	}
	out := &MarketSeries{}
	for i, t := range s.Timestamps {
		if member[t] {
			member[t] = false
			out.Timestamps = append(out.Timestamps, t)
			out.Prices = append(out.Prices, s.Prices[i])
		}
	}
	return out
}

func sortTimes(ts []time.Time) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
}
