package data

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sweetHomeGo/spread-analyze/internal/logger"
	"github.com/sweetHomeGo/spread-analyze/internal/series"
)

// MergeDir loads every per-contract series file in dir and outer-joins them
// into one wide price table. The contract code is the file stem up to the
// first underscore, so both "I2501.csv" and "I2501_1min.csv" become column
// "I2501". Files that fail to load are reported and skipped; the merge fails
// only when nothing loads.
func MergeDir(dir string, opts series.MergeOptions) (*series.WideTable, error) {
	patterns := []string{"*.csv", "*.tsv", "*.txt", "*.feather", "*.arrow"}
	var paths []string
	for _, p := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, p))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no series files in %s", ErrNotFound, dir)
	}

	byName := make(map[string]*series.MarketSeries)
	var order []string
	for _, path := range paths {
		name := contractNameFromPath(path)
		s, err := LoadSeries(path)
		if err != nil {
			logger.Errorf("merge: skipping %s: %v", path, err)
			continue
		}
		if _, dup := byName[name]; dup {
			logger.Infof("merge: duplicate contract %s from %s, keeping first", name, path)
			continue
		}
		byName[name] = s
		order = append(order, name)
	}
	if len(byName) == 0 {
		return nil, fmt.Errorf("%w: no loadable series in %s", ErrEmptyResult, dir)
	}

	w := series.MergeSeries(byName, order, opts)
	logger.Infof("merged %d contracts over %d timestamps", len(w.Columns), len(w.Timestamps))
	return w, nil
}

func contractNameFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if i := strings.Index(stem, "_"); i > 0 {
		stem = stem[:i]
	}
	return strings.ToUpper(stem)
}
