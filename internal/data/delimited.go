package data

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sweetHomeGo/spread-analyze/internal/logger"
)

// sniffDelimiters is the fixed order of field delimiters tried when reading
// delimited text. The first that parses into more than one column wins.
var sniffDelimiters = []rune{',', '\t', ';'}

// ReadDelimited loads a delimited text file into a Table, sniffing the
// delimiter. Numeric typing is per column: a column is numeric when it has at
// least one non-blank cell and every non-blank cell parses as a float.
func ReadDelimited(path string) (*Table, error) {
	var lastErr error
	for _, sep := range sniffDelimiters {
		tbl, err := readWithDelimiter(path, sep)
		if err != nil {
			logger.Debugf("delimiter %q failed for %s: %v", sep, path, err)
			lastErr = err
			continue
		}
		if len(tbl.Cols) > 1 {
			logger.Debugf("read %s with delimiter %q: %d columns, %d rows",
				path, sep, len(tbl.Cols), tbl.NumRows())
			return tbl, nil
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("reading %s: %w", path, lastErr)
	}
	return nil, fmt.Errorf("reading %s: no delimiter yields more than one column", path)
}

func readWithDelimiter(path string, sep rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = sep
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResult, path)
	}

	header := records[0]
	rows := records[1:]

	tbl := &Table{Cols: make([]Column, len(header))}
	for j, name := range header {
		col := Column{Name: strings.TrimSpace(name), Text: make([]string, len(rows))}
		for i, rec := range rows {
			if j < len(rec) {
				col.Text[i] = strings.TrimSpace(rec[j])
			}
		}
		col.Floats, col.Numeric = parseNumericColumn(col.Text)
		tbl.Cols[j] = col
	}
	return tbl, nil
}

// parseNumericColumn parses cell text to floats. Blank cells become NaN. The
// column counts as numeric only when every non-blank cell parses and at least
// one cell is non-blank.
func parseNumericColumn(cells []string) ([]float64, bool) {
	floats := make([]float64, len(cells))
	nonBlank := 0
	for i, s := range cells {
		if s == "" {
			floats[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		floats[i] = v
		nonBlank++
	}
	if nonBlank == 0 {
		return nil, false
	}
	return floats, true
}
