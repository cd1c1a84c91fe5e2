package spread

import (
	"math"
	"sort"
)

// Stats summarizes one derived series. Count covers non-missing values only;
// MissingPct is the share of NaN cells over the whole column.
type Stats struct {
	SpreadCode string
	Count      int
	Mean       float64
	Std        float64
	Min        float64
	Max        float64
	Median     float64
	MissingPct float64
}

// Summarize computes summary statistics for a derived series, ignoring NaN
// cells. Std is the sample standard deviation. A series with no usable
// values yields NaN for every moment and Count zero.
func Summarize(code string, values []float64) Stats {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}

	s := Stats{SpreadCode: code, Count: len(clean)}
	if len(values) > 0 {
		s.MissingPct = float64(len(values)-len(clean)) / float64(len(values)) * 100
	}
	if len(clean) == 0 {
		s.Mean, s.Std, s.Min, s.Max, s.Median = math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}

	sum := 0.0
	s.Min, s.Max = clean[0], clean[0]
	for _, v := range clean {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = sum / float64(len(clean))

	if len(clean) > 1 {
		ss := 0.0
		for _, v := range clean {
			d := v - s.Mean
			ss += d * d
		}
		s.Std = math.Sqrt(ss / float64(len(clean)-1))
	} else {
		s.Std = math.NaN()
	}

	sorted := append([]float64(nil), clean...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		s.Median = sorted[mid]
	} else {
		s.Median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return s
}

// SummarizeTable summarizes every column of a derived wide table, in column
// order.
func SummarizeTable(tableColumns []string, data map[string][]float64) []Stats {
	out := make([]Stats, 0, len(tableColumns))
	for _, code := range tableColumns {
		out = append(out, Summarize(code, data[code]))
	}
	return out
}
