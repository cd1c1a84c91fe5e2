package data

import "strings"

// DetectTimeColumns classifies column names by case-insensitive substring
// match into date, time and combined datetime columns. Each name lands in at
// most one class:
//
//	contains "date" but not "time"  -> date
//	contains "time" but not "date"  -> time
//	contains both, or "datetime"    -> datetime
//
// Names matching none stay unclassified. Angle-bracketed export headers like
// "<DATE>" match through the same substring rules.
func DetectTimeColumns(names []string) (dateCols, timeCols, datetimeCols []string) {
	for _, name := range names {
		lower := strings.ToLower(name)
		hasDate := strings.Contains(lower, "date")
		hasTime := strings.Contains(lower, "time")
		switch {
		case hasDate && !hasTime:
			dateCols = append(dateCols, name)
		case hasTime && !hasDate:
			timeCols = append(timeCols, name)
		case hasDate && hasTime:
			datetimeCols = append(datetimeCols, name)
		}
	}
	return dateCols, timeCols, datetimeCols
}

// DetectCloseColumn returns the first column whose lower-cased name contains
// "close" or "clos". The second return is false when no name matches; the
// caller then falls back to the last numeric column.
func DetectCloseColumn(names []string) (string, bool) {
	for _, name := range names {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "clos") {
			return name, true
		}
	}
	return "", false
}
