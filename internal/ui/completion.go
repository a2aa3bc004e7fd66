package ui

import (
	"fmt"

	"github.com/bamsammich/photocopy/internal/stats"
)

// CompletionSummary builds a final summary line from a snapshot.
// Format: done ✓  files 1,204  size 3.1 GB  avg 88 MB/s  time 41s  existed 12  errors 0
func CompletionSummary(snap stats.Snapshot) string {
	avgSpeed := 0.0
	if snap.Elapsed.Seconds() > 0 {
		avgSpeed = float64(snap.BytesCopied) / snap.Elapsed.Seconds()
	}

	icon := "✓"
	if snap.FilesFailed > 0 {
		icon = "✗"
	}

	return fmt.Sprintf("done %s  files %s  size %s  avg %s  time %s  existed %s  errors %d",
		icon,
		FormatCount(snap.FilesCopied),
		FormatBytes(snap.BytesCopied),
		FormatRate(avgSpeed),
		FormatDuration(snap.Elapsed),
		FormatCount(snap.FilesExisted),
		snap.FilesFailed,
	)
}

// PassSummary returns the per-pass tally lines. The existed and failed
// lines are only included when non-zero.
func PassSummary(snap stats.Snapshot) []string {
	lines := []string{fmt.Sprintf("%d of %d files copied", snap.FilesCopied, snap.FilesTotal)}
	if snap.FilesExisted > 0 {
		lines = append(lines, fmt.Sprintf("%d of %d files already existed", snap.FilesExisted, snap.FilesTotal))
	}
	if snap.FilesFailed > 0 {
		lines = append(lines, fmt.Sprintf("%d of %d files failed", snap.FilesFailed, snap.FilesTotal))
	}
	return lines
}
