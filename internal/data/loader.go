// Package data loads timestamped close-price tables from delimited text and
// Arrow columnar files, resolving their timestamp and price columns into a
// canonical two-column series.
//
// Responsibilities:
//   - Delimiter sniffing for text sources
//   - Heuristic timestamp / close-price column detection
//   - Feather (Arrow IPC) read and write for wide price tables
//   - Source-name resolution over configured search roots
package data

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sweetHomeGo/spread-analyze/internal/logger"
	"github.com/sweetHomeGo/spread-analyze/internal/series"
)

// timestampLayouts is tried in order for every cell until one parses.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"20060102 15:04:05",
	"20060102",
	time.RFC3339,
}

// ParseTimestamp parses a cell against the known layout list. All layouts
// are interpreted as UTC wall time; timezone handling happens later via
// explicit hour offsets.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReadTable loads any supported source into a Table, dispatching on file
// extension.
func ReadTable(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return ReadDelimited(path)
	case ".feather", ".arrow":
		return ReadFeather(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadSeries loads a price table and resolves it into a canonical
// (timestamp, close) series. Rows whose timestamp fails to parse are
// dropped; missing prices stay as NaN. The returned series is sorted
// ascending and guaranteed non-empty.
func LoadSeries(path string) (*series.MarketSeries, error) {
	tbl, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	names := tbl.Names()
	closeName, found := DetectCloseColumn(names)
	var priceCol *Column
	if found {
		priceCol, _ = tbl.Column(closeName)
		logger.Debugf("detected close column %q in %s", closeName, path)
	} else {
		priceCol, found = tbl.LastNumericColumn()
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrNoPriceColumn, path)
		}
		logger.Infof("no close-named column in %s, using last numeric column %q", path, priceCol.Name)
	}
	prices := columnFloats(priceCol)

	stamps, valid, err := resolveTimestamps(tbl, path)
	if err != nil {
		return nil, err
	}

	out := &series.MarketSeries{}
	for i := range stamps {
		if !valid[i] || i >= len(prices) {
			continue
		}
		out.Timestamps = append(out.Timestamps, stamps[i])
		out.Prices = append(out.Prices, prices[i])
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResult, path)
	}
	out.Sort()
	logger.Infof("loaded %d rows from %s", out.Len(), path)
	return out, nil
}

// resolveTimestamps applies the timestamp construction precedence: combined
// datetime column first, then separate date+time columns joined by a single
// space (falling back to the date column alone when nothing joins parse),
// then a lone date column, and finally the left-most column standing in for
// the row index.
func resolveTimestamps(tbl *Table, path string) ([]time.Time, []bool, error) {
	dateCols, timeCols, datetimeCols := DetectTimeColumns(tbl.Names())
	logger.Debugf("time columns in %s: date=%v time=%v datetime=%v", path, dateCols, timeCols, datetimeCols)

	switch {
	case len(datetimeCols) > 0:
		col, _ := tbl.Column(datetimeCols[0])
		stamps, valid := columnTimes(col)
		return stamps, valid, nil

	case len(dateCols) > 0 && len(timeCols) > 0:
		dcol, _ := tbl.Column(dateCols[0])
		tcol, _ := tbl.Column(timeCols[0])
		stamps, valid := concatTimes(dcol, tcol)
		if countTrue(valid) == 0 {
			// joined parse failed wholesale, retry the date column alone
			stamps, valid = columnTimes(dcol)
		}
		return stamps, valid, nil

	case len(dateCols) > 0:
		col, _ := tbl.Column(dateCols[0])
		stamps, valid := columnTimes(col)
		return stamps, valid, nil

	default:
		// No named candidates: treat the left-most column as the row index
		// and see if it holds instants.
		if len(tbl.Cols) == 0 {
			return nil, nil, fmt.Errorf("%w: %s", ErrNoTimeColumn, path)
		}
		stamps, valid := columnTimes(&tbl.Cols[0])
		if countTrue(valid) == 0 {
			return nil, nil, fmt.Errorf("%w: %s", ErrNoTimeColumn, path)
		}
		return stamps, valid, nil
	}
}

func columnTimes(col *Column) ([]time.Time, []bool) {
	if col.Times != nil {
		valid := make([]bool, len(col.Times))
		for i, t := range col.Times {
			valid[i] = !t.IsZero()
		}
		return col.Times, valid
	}
	stamps := make([]time.Time, len(col.Text))
	valid := make([]bool, len(col.Text))
	for i, s := range col.Text {
		stamps[i], valid[i] = ParseTimestamp(s)
	}
	return stamps, valid
}

func concatTimes(dcol, tcol *Column) ([]time.Time, []bool) {
	n := len(dcol.Text)
	if len(tcol.Text) < n {
		n = len(tcol.Text)
	}
	stamps := make([]time.Time, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		stamps[i], valid[i] = ParseTimestamp(dcol.Text[i] + " " + tcol.Text[i])
	}
	return stamps, valid
}

func columnFloats(col *Column) []float64 {
	if col.Numeric {
		return col.Floats
	}
	floats := make([]float64, len(col.Text))
	for i, s := range col.Text {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			floats[i] = math.NaN()
		} else {
			floats[i] = v
		}
	}
	return floats
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

// LoadWideTable loads a merged wide price table: a timestamp axis plus one
// numeric column per contract. Rows with unparseable timestamps are dropped
// and the result is sorted ascending.
func LoadWideTable(path string) (*series.WideTable, error) {
	tbl, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	stamps, valid, err := resolveTimestamps(tbl, path)
	if err != nil {
		return nil, err
	}
	tsName := timestampColumnName(tbl)

	type row struct {
		t   time.Time
		idx int
	}
	var rows []row
	for i := range stamps {
		if valid[i] {
			rows = append(rows, row{stamps[i], i})
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResult, path)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].t.Before(rows[j].t) })

	timestamps := make([]time.Time, len(rows))
	for i, r := range rows {
		timestamps[i] = r.t
	}

	w := series.NewWideTable(timestamps)
	for _, col := range tbl.Cols {
		if col.Name == tsName || !col.Numeric {
			continue
		}
		values := make([]float64, len(rows))
		for i, r := range rows {
			if r.idx < len(col.Floats) {
				values[i] = col.Floats[r.idx]
			} else {
				values[i] = math.NaN()
			}
		}
		w.AddColumn(col.Name, values)
	}
	logger.Infof("loaded wide table %s: %d columns, %d rows", path, len(w.Columns), len(w.Timestamps))
	return w, nil
}

// timestampColumnName names the column serving as the timestamp axis so it
// is not duplicated as a price column.
func timestampColumnName(tbl *Table) string {
	dateCols, _, datetimeCols := DetectTimeColumns(tbl.Names())
	if len(datetimeCols) > 0 {
		return datetimeCols[0]
	}
	if len(dateCols) > 0 {
		return dateCols[0]
	}
	if len(tbl.Cols) > 0 {
		return tbl.Cols[0].Name
	}
	return ""
}
