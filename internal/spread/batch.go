package spread

import (
	"github.com/sweetHomeGo/spread-analyze/internal/logger"
	"github.com/sweetHomeGo/spread-analyze/internal/series"
)

// Skipped records a definition the batch calculator could not compute and
// which contract columns were missing from the price table.
type Skipped struct {
	Definition Definition
	Missing    []string
}

// ComputeAll derives one spread column per definition over a wide price
// table: spread_code = table[contract_a] - table[contract_b], element-wise
// on the shared timestamp axis. Definitions whose legs are missing from the
// table are skipped and reported, never raised. The result keeps the input
// timestamp axis and adds exactly one column per computed definition, in
// definition order.
func ComputeAll(defs []Definition, table *series.WideTable) (*series.WideTable, []Skipped) {
	out := series.NewWideTable(table.Timestamps)
	var skipped []Skipped

	for _, def := range defs {
		var missing []string
		if !table.HasColumn(def.ContractA) {
			missing = append(missing, def.ContractA)
		}
		if !table.HasColumn(def.ContractB) {
			missing = append(missing, def.ContractB)
		}
		if len(missing) > 0 {
			logger.Infof("cannot calculate %s, missing contracts: %v", def.SpreadCode, missing)
			skipped = append(skipped, Skipped{Definition: def, Missing: missing})
			continue
		}

		a := table.Data[def.ContractA]
		b := table.Data[def.ContractB]
		values := make([]float64, len(table.Timestamps))
		for i := range values {
			values[i] = a[i] - b[i]
		}
		out.AddColumn(def.SpreadCode, values)
	}

	logger.Infof("calculated %d spread columns, skipped %d", len(out.Columns), len(skipped))
	return out, skipped
}
