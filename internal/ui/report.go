package ui

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
)

const reportWidth = 79

// ReportEntry is one line of the full report.
type ReportEntry struct {
	Src string
	Dst string
	Err error
}

// Report lists every file of a pass grouped by outcome.
type Report struct {
	Copied  []ReportEntry
	Existed []ReportEntry
	Failed  []ReportEntry
}

// Write prints the three sections, each sorted by source path.
func (r Report) Write(w io.Writer) error {
	sections := []struct {
		title   string
		entries []ReportEntry
	}{
		{"FILES COPIED", r.Copied},
		{"FILES ALREADY EXISTED", r.Existed},
		{"FILES FAILED", r.Failed},
	}

	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule(), banner(s.title), rule()); err != nil {
			return err
		}
		entries := slices.Clone(s.entries)
		slices.SortFunc(entries, func(a, b ReportEntry) int { return cmp.Compare(a.Src, b.Src) })
		for _, e := range entries {
			if _, err := fmt.Fprintf(w, "%s > %s\n", e.Src, e.Dst); err != nil {
				return err
			}
			if e.Err != nil {
				if _, err := fmt.Fprintf(w, "  %v\n", e.Err); err != nil {
					return err
				}
			}
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func rule() string {
	return strings.Repeat("-", reportWidth)
}

// banner centers title between pipes to the report width.
func banner(title string) string {
	inner := reportWidth - 2
	left := (inner - len(title)) / 2
	right := inner - len(title) - left
	return "|" + strings.Repeat(" ", left) + title + strings.Repeat(" ", right) + "|"
}
