// Package contract parses and manipulates futures contract codes.
//
// A contract code is the exchange symbol followed by a two-digit year and a
// two-digit delivery month, e.g. "I2501" is iron ore, January 2025. The year
// is century-ambiguous by convention; callers compare codes only within a
// window where that cannot matter.
//
// Responsibilities:
//   - Parse and format contract codes
//   - Walk the natural calendar (adjacent months across year boundaries)
//   - Walk the main-contract cycle (e.g. Jan/May/Sep for ferrous futures)
package contract

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Typed errors allow callers and tests to detect failure categories
// without string matching.
var (
	ErrInvalidContractCode = errors.New("invalid contract code")
	ErrMonthNotInCycle     = errors.New("month not in main-month cycle")
)

var codePattern = regexp.MustCompile(`^([A-Za-z]+)(\d{2})(\d{2})$`)

// Code is a parsed futures contract identifier.
type Code struct {
	Symbol string // upper-cased exchange symbol, e.g. "I", "RB", "AU"
	Year   int    // two-digit year, 0-99
	Month  int    // delivery month, 1-12
}

// Parse splits a contract code into symbol, year and month.
// The symbol is upper-cased so "i2501" and "I2501" parse identically.
func Parse(code string) (Code, error) {
	m := codePattern.FindStringSubmatch(code)
	if m == nil {
		return Code{}, fmt.Errorf("%w: %q", ErrInvalidContractCode, code)
	}
	year, _ := strconv.Atoi(m[2])
	month, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 {
		return Code{}, fmt.Errorf("%w: %q: month %d out of range", ErrInvalidContractCode, code, month)
	}
	return Code{Symbol: strings.ToUpper(m[1]), Year: year, Month: month}, nil
}

// String renders the canonical form: symbol + 2-digit year + 2-digit month.
func (c Code) String() string {
	return Format(c.Symbol, c.Year, c.Month)
}

// Format builds a canonical contract code. Years outside 0-99 are reduced
// mod 100, so four-digit calendar years are accepted.
func Format(symbol string, year, month int) string {
	return fmt.Sprintf("%s%02d%02d", strings.ToUpper(symbol), ((year%100)+100)%100, month)
}

// AdjacentMonth shifts (year, month) by offset calendar months, carrying
// year boundaries in either direction.
func AdjacentMonth(year, month, offset int) (int, int) {
	total := year*12 + (month - 1) + offset
	newYear := total / 12
	newMonth := total%12 + 1
	if total < 0 && total%12 != 0 {
		// Go truncates toward zero; floor instead so negative totals land
		// in the previous year.
		newYear--
		newMonth += 12
	}
	return newYear, newMonth
}

// NextMainMonth returns the main-cycle month after (year, month). The input
// month must itself be a member of mainMonths; anything else is
// ErrMonthNotInCycle. The year increments when the cycle wraps, i.e. when the
// next main month is numerically smaller than the current one.
func NextMainMonth(year, month int, mainMonths []int) (int, int, error) {
	if len(mainMonths) == 0 {
		return 0, 0, fmt.Errorf("%w: empty cycle", ErrMonthNotInCycle)
	}
	sorted := append([]int(nil), mainMonths...)
	sort.Ints(sorted)

	idx := -1
	for i, m := range sorted {
		if m == month {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0, 0, fmt.Errorf("%w: month %d not in %v", ErrMonthNotInCycle, month, sorted)
	}

	next := sorted[(idx+1)%len(sorted)]
	nextYear := year
	if next < month {
		nextYear++
	}
	return nextYear, next, nil
}
