package spread

import (
	"encoding/csv"
	"fmt"
	"os"
)

// inventoryHeader is the fixed column order of a spread inventory file.
var inventoryHeader = []string{"spread_type", "main_contract", "contract_a", "contract_b", "spread_code"}

// WriteInventory saves spread definitions as a CSV inventory, one row per
// spread in definition order.
func WriteInventory(path string, defs []Definition) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(inventoryHeader); err != nil {
		return err
	}
	for _, d := range defs {
		row := []string{string(d.SpreadType), d.MainContract, d.ContractA, d.ContractB, d.SpreadCode}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// ReadInventory loads a spread inventory CSV written by WriteInventory.
// Column order is located by header name so reordered files still load.
func ReadInventory(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading inventory %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("inventory %s is empty", path)
	}

	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[name] = i
	}
	for _, required := range inventoryHeader {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("inventory %s missing column %q", path, required)
		}
	}

	defs := make([]Definition, 0, len(records)-1)
	for _, rec := range records[1:] {
		defs = append(defs, Definition{
			SpreadType:   Type(rec[idx["spread_type"]]),
			MainContract: rec[idx["main_contract"]],
			ContractA:    rec[idx["contract_a"]],
			ContractB:    rec[idx["contract_b"]],
			SpreadCode:   rec[idx["spread_code"]],
		})
	}
	return defs, nil
}
