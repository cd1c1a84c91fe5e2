package spread

import (
	"math"
	"testing"
	"time"

	"github.com/sweetHomeGo/spread-analyze/internal/series"
)

func priceTable(timestamps []time.Time, cols map[string][]float64, order []string) *series.WideTable {
	w := series.NewWideTable(timestamps)
	for _, name := range order {
		w.AddColumn(name, cols[name])
	}
	return w
}

func TestComputeAll(t *testing.T) {
	stamps := []time.Time{
		time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC),
	}
	table := priceTable(stamps, map[string][]float64{
		"I2501": {10, 11},
		"I2505": {8, 9},
	}, []string{"I2501", "I2505"})

	defs := []Definition{
		{SpreadType: MainSubMain, MainContract: "I2501", ContractA: "I2501", ContractB: "I2505", SpreadCode: "I2501-I2505"},
	}
	out, skipped := ComputeAll(defs, table)
	if len(skipped) != 0 {
		t.Fatalf("skipped = %v, want none", skipped)
	}
	if len(out.Columns) != 1 || out.Columns[0] != "I2501-I2505" {
		t.Fatalf("columns = %v, want [I2501-I2505]", out.Columns)
	}
	got := out.Data["I2501-I2505"]
	if got[0] != 2 || got[1] != 2 {
		t.Errorf("spread = %v, want [2 2]", got)
	}
	if len(out.Timestamps) != 2 {
		t.Errorf("timestamp axis not preserved")
	}
}

func TestComputeAllSkipsMissingLegs(t *testing.T) {
	stamps := []time.Time{time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	table := priceTable(stamps, map[string][]float64{"I2501": {10}}, []string{"I2501"})

	defs := []Definition{
		{SpreadType: MainSubMain, ContractA: "I2501", ContractB: "I2505", SpreadCode: "I2501-I2505"},
		{SpreadType: PrevMonthMain, ContractA: "I2412", ContractB: "I2505", SpreadCode: "I2412-I2505"},
	}
	out, skipped := ComputeAll(defs, table)
	if len(out.Columns) != 0 {
		t.Errorf("columns = %v, want none", out.Columns)
	}
	if len(skipped) != 2 {
		t.Fatalf("len(skipped) = %d, want 2", len(skipped))
	}
	if len(skipped[0].Missing) != 1 || skipped[0].Missing[0] != "I2505" {
		t.Errorf("skipped[0].Missing = %v, want [I2505]", skipped[0].Missing)
	}
	if len(skipped[1].Missing) != 2 {
		t.Errorf("skipped[1].Missing = %v, want both legs", skipped[1].Missing)
	}
}

func TestComputeAllNaNPropagates(t *testing.T) {
	stamps := []time.Time{
		time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC),
	}
	table := priceTable(stamps, map[string][]float64{
		"I2501": {10, math.NaN()},
		"I2505": {8, 9},
	}, []string{"I2501", "I2505"})

	defs := []Definition{{ContractA: "I2501", ContractB: "I2505", SpreadCode: "I2501-I2505"}}
	out, _ := ComputeAll(defs, table)
	got := out.Data["I2501-I2505"]
	if got[0] != 2 || !math.IsNaN(got[1]) {
		t.Errorf("spread = %v, want [2 NaN]", got)
	}
}
