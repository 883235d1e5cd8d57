// Package report renders human-readable summaries of staged datasets
// and of the on-disk data tree. Output goes to a writer so commands
// can print to stdout and tests can capture.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/tourdata/tdk"
	"github.com/tourdata/tdk/layout"
)

// nullWarnThreshold is the null fraction above which a column is
// called out in the summary.
const nullWarnThreshold = 0.10

// FinalSummary prints the closing report for a staged dataset: file
// size, shape, observed date range, per-year row counts and columns
// with a high null share.
func FinalSummary(w io.Writer, name, path string, rows []map[string]string, cols []string, dateField string) {
	fmt.Fprintf(w, "=== %s ===\n", name)
	if info, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "file: %s (%.1f MB)\n", path, float64(info.Size())/(1<<20))
	} else {
		fmt.Fprintf(w, "file: %s (not written)\n", path)
	}
	fmt.Fprintf(w, "rows: %d, columns: %d\n", len(rows), len(cols))

	minDate, maxDate, byYear := dateStats(rows, dateField)
	if minDate != "" {
		fmt.Fprintf(w, "date range: %s to %s\n", minDate, maxDate)
		years := make([]int, 0, len(byYear))
		for y := range byYear {
			years = append(years, y)
		}
		sort.Ints(years)
		fmt.Fprintln(w, "rows per year:")
		for _, y := range years {
			fmt.Fprintf(w, "  %d: %d\n", y, byYear[y])
		}
	}

	for _, col := range highNullColumns(rows, cols) {
		fmt.Fprintf(w, "warning: column %s is more than %.0f%% null\n", col, nullWarnThreshold*100)
	}
}

// dateStats scans the date field once for the observed range and the
// per-year counts. Unparseable dates are ignored.
func dateStats(rows []map[string]string, dateField string) (minDate, maxDate string, byYear map[int]int) {
	byYear = make(map[int]int)
	for _, row := range rows {
		raw := row[dateField]
		t, ok := tdk.ParseDate(raw)
		if !ok {
			continue
		}
		byYear[t.Year()]++
		if minDate == "" || raw < minDate {
			minDate = raw
		}
		if raw > maxDate {
			maxDate = raw
		}
	}
	return minDate, maxDate, byYear
}

// highNullColumns lists the columns whose empty-value share exceeds
// the warning threshold, in schema order.
func highNullColumns(rows []map[string]string, cols []string) []string {
	if len(rows) == 0 {
		return nil
	}
	var high []string
	for _, col := range cols {
		nulls := 0
		for _, row := range rows {
			if row[col] == "" {
				nulls++
			}
		}
		if float64(nulls)/float64(len(rows)) > nullWarnThreshold {
			high = append(high, col)
		}
	}
	return high
}

// StorageSummary prints the per-layer disk usage of the extraction
// tree, a reminder of what can be reclaimed once staging is verified.
func StorageSummary(w io.Writer, dirs layout.Dirs) {
	fmt.Fprintln(w, "=== storage ===")
	layers := []struct {
		label string
		dir   string
	}{
		{"bronze/00_original_download", dirs.BronzeOriginal},
		{"bronze/01_raw_conversion", dirs.BronzeConversion},
		{"bronze/02_primary_filter", dirs.BronzePrimaryFilter},
		{"silver/staging", dirs.SilverStaging},
	}
	for _, layer := range layers {
		fmt.Fprintf(w, "%-29s %8.1f MB\n", layer.label, float64(layout.DirSize(layer.dir))/(1<<20))
	}
	fmt.Fprintln(w, "bronze layers can be deleted once silver staging is verified")
}
