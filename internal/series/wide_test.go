package series

import (
	"math"
	"testing"
)

func TestMergeSeriesOuterJoin(t *testing.T) {
	a := newSeries([]string{"2024-01-01 09:00:00", "2024-01-01 09:15:00"}, []float64{1, 2})
	b := newSeries([]string{"2024-01-01 09:15:00", "2024-01-01 09:30:00"}, []float64{10, 20})

	w := MergeSeries(map[string]*MarketSeries{"I2501": a, "I2505": b}, []string{"I2501", "I2505"}, MergeOptions{})

	if len(w.Timestamps) != 3 {
		t.Fatalf("union rows = %d, want 3", len(w.Timestamps))
	}
	if w.Columns[0] != "I2501" || w.Columns[1] != "I2505" {
		t.Errorf("column order = %v, want [I2501 I2505]", w.Columns)
	}
	colA := w.Data["I2501"]
	colB := w.Data["I2505"]
	if colA[0] != 1 || colA[1] != 2 || !math.IsNaN(colA[2]) {
		t.Errorf("I2501 = %v, want [1 2 NaN]", colA)
	}
	if !math.IsNaN(colB[0]) || colB[1] != 10 || colB[2] != 20 {
		t.Errorf("I2505 = %v, want [NaN 10 20]", colB)
	}
}

func TestMergeSeriesFillMissing(t *testing.T) {
	// a's in-source NaN gets filled; the 09:15-only b leaves the
	// join-introduced cells NaN either side of its one observation
	a := newSeries(
		[]string{"2024-01-01 09:00:00", "2024-01-01 09:15:00", "2024-01-01 09:30:00"},
		[]float64{1, math.NaN(), 2})
	b := newSeries([]string{"2024-01-01 09:15:00"}, []float64{5})

	w := MergeSeries(map[string]*MarketSeries{"A": a, "B": b}, []string{"A", "B"}, MergeOptions{FillMissing: true})

	colA := w.Data["A"]
	if colA[0] != 1 || colA[1] != 1 || colA[2] != 2 {
		t.Errorf("A = %v, want in-source gap forward-filled [1 1 2]", colA)
	}
	colB := w.Data["B"]
	if !math.IsNaN(colB[0]) || colB[1] != 5 || !math.IsNaN(colB[2]) {
		t.Errorf("B = %v, want join gaps left NaN [NaN 5 NaN]", colB)
	}
}

func TestMergeSeriesFillMissingHeadRun(t *testing.T) {
	a := newSeries(
		[]string{"2024-01-01 09:00:00", "2024-01-01 09:15:00"},
		[]float64{math.NaN(), 3})
	w := MergeSeries(map[string]*MarketSeries{"A": a}, []string{"A"}, MergeOptions{FillMissing: true})
	if got := w.Data["A"]; got[0] != 3 || got[1] != 3 {
		t.Errorf("A = %v, want leading NaN backward-filled [3 3]", got)
	}
}

func TestMergeSeriesFillMissingOffLeavesSourceNaN(t *testing.T) {
	a := newSeries(
		[]string{"2024-01-01 09:00:00", "2024-01-01 09:15:00"},
		[]float64{1, math.NaN()})
	w := MergeSeries(map[string]*MarketSeries{"A": a}, []string{"A"}, MergeOptions{})
	if got := w.Data["A"]; got[0] != 1 || !math.IsNaN(got[1]) {
		t.Errorf("A = %v, want [1 NaN] untouched", got)
	}
}

func TestMergeSeriesDuplicateTimestampKeepsFirst(t *testing.T) {
	a := newSeries([]string{"2024-01-01 09:00:00", "2024-01-01 09:00:00"}, []float64{1, 2})
	w := MergeSeries(map[string]*MarketSeries{"A": a}, []string{"A"}, MergeOptions{})
	if len(w.Timestamps) != 1 {
		t.Fatalf("rows = %d, want de-duplicated 1", len(w.Timestamps))
	}
	if w.Data["A"][0] != 1 {
		t.Errorf("A[0] = %v, want the first observation 1", w.Data["A"][0])
	}
}

func TestMergeSeriesOrderSkipsUnknown(t *testing.T) {
	a := newSeries([]string{"2024-01-01 09:00:00"}, []float64{1})
	w := MergeSeries(map[string]*MarketSeries{"A": a}, []string{"A", "ZZ"}, MergeOptions{})
	if len(w.Columns) != 1 {
		t.Errorf("columns = %v, want only A", w.Columns)
	}
	if w.HasColumn("ZZ") {
		t.Errorf("unknown order entry must not create a column")
	}
}

func TestAddColumnReplaceKeepsOrder(t *testing.T) {
	w := NewWideTable(nil)
	w.AddColumn("A", []float64{1})
	w.AddColumn("B", []float64{2})
	w.AddColumn("A", []float64{3})
	if len(w.Columns) != 2 || w.Columns[0] != "A" || w.Columns[1] != "B" {
		t.Errorf("columns = %v, want [A B]", w.Columns)
	}
	if w.Data["A"][0] != 3 {
		t.Errorf("replaced column not visible")
	}
}
