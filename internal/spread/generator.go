// Package spread enumerates canonical spread definitions from a contract
// inventory and computes spread price series over wide price tables.
package spread

import (
	"github.com/sweetHomeGo/spread-analyze/internal/contract"
	"github.com/sweetHomeGo/spread-analyze/internal/logger"
)

// Type is the cycle relationship between a spread's two legs.
type Type string

// The seven spread types, in canonical emission order.
const (
	MainSubMain          Type = "Main-SubMain"
	MainSubSubMain       Type = "Main-SubSubMain"
	PrevMonthMain        Type = "PrevMonth-Main"
	MainNextMonth        Type = "Main-NextMonth"
	MainNextNextMonth    Type = "Main-NextNextMonth"
	MainSubMainPrevMonth Type = "Main-SubMainPrevMonth"
	PrevPrevMonthMain    Type = "PrevPrevMonth-Main"
)

// Definition pairs two contracts into a named spread. SpreadCode is always
// "{ContractA}-{ContractB}" and the spread price is A minus B.
type Definition struct {
	SpreadType   Type
	MainContract string
	ContractA    string
	ContractB    string
	SpreadCode   string
}

// Generate enumerates spread definitions for every main contract found in
// existing. A contract is main when its delivery month belongs to
// mainMonths. For each main contract up to seven candidates are emitted in
// canonical order; candidates with a leg absent from existing are discarded,
// and duplicates on (spread_code, spread_type) keep their first occurrence.
// Contracts that fail to parse are skipped, they do not abort generation.
func Generate(existing []string, mainMonths []int) []Definition {
	inventory := make(map[string]bool, len(existing))
	for _, c := range existing {
		inventory[c] = true
	}

	var mains []contract.Code
	for _, raw := range existing {
		code, err := contract.Parse(raw)
		if err != nil {
			logger.Debugf("skipping unparseable contract %q: %v", raw, err)
			continue
		}
		if containsInt(mainMonths, code.Month) {
			mains = append(mains, code)
		}
	}
	logger.Infof("identified %d main contracts from %d existing", len(mains), len(existing))

	type dedupKey struct {
		code string
		typ  Type
	}
	seen := make(map[dedupKey]bool)
	var out []Definition

	for _, main := range mains {
		candidates, err := candidatesFor(main, mainMonths)
		if err != nil {
			logger.Errorf("spread candidates for %s: %v", main, err)
			continue
		}
		for _, cand := range candidates {
			if !inventory[cand.ContractA] || !inventory[cand.ContractB] {
				continue
			}
			key := dedupKey{cand.SpreadCode, cand.SpreadType}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, cand)
		}
	}
	logger.Infof("generated %d spread definitions", len(out))
	return out
}

// candidatesFor builds the seven candidate definitions around one main
// contract: the next and next-next contracts on the main cycle, the four
// natural-calendar neighbors, and the month immediately before the next main.
func candidatesFor(main contract.Code, mainMonths []int) ([]Definition, error) {
	nextMainY, nextMainM, err := contract.NextMainMonth(main.Year, main.Month, mainMonths)
	if err != nil {
		return nil, err
	}
	nextNextMainY, nextNextMainM, err := contract.NextMainMonth(nextMainY, nextMainM, mainMonths)
	if err != nil {
		return nil, err
	}

	prev1Y, prev1M := contract.AdjacentMonth(main.Year, main.Month, -1)
	prev2Y, prev2M := contract.AdjacentMonth(main.Year, main.Month, -2)
	next1Y, next1M := contract.AdjacentMonth(main.Year, main.Month, 1)
	next2Y, next2M := contract.AdjacentMonth(main.Year, main.Month, 2)
	subPrevY, subPrevM := contract.AdjacentMonth(nextMainY, nextMainM, -1)

	mainCode := main.String()
	nextMain := contract.Format(main.Symbol, nextMainY, nextMainM)
	nextNextMain := contract.Format(main.Symbol, nextNextMainY, nextNextMainM)
	prev1 := contract.Format(main.Symbol, prev1Y, prev1M)
	prev2 := contract.Format(main.Symbol, prev2Y, prev2M)
	next1 := contract.Format(main.Symbol, next1Y, next1M)
	next2 := contract.Format(main.Symbol, next2Y, next2M)
	subMainPrev := contract.Format(main.Symbol, subPrevY, subPrevM)

	pairs := []struct {
		typ  Type
		a, b string
	}{
		{MainSubMain, mainCode, nextMain},
		{MainSubSubMain, mainCode, nextNextMain},
		{PrevMonthMain, prev1, mainCode},
		{MainNextMonth, mainCode, next1},
		{MainNextNextMonth, mainCode, next2},
		{MainSubMainPrevMonth, mainCode, subMainPrev},
		{PrevPrevMonthMain, prev2, mainCode},
	}

	defs := make([]Definition, 0, len(pairs))
	for _, p := range pairs {
		defs = append(defs, Definition{
			SpreadType:   p.typ,
			MainContract: mainCode,
			ContractA:    p.a,
			ContractB:    p.b,
			SpreadCode:   p.a + "-" + p.b,
		})
	}
	return defs, nil
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
