package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bamsammich/photocopy/internal/stats"
)

func TestCompletionSummary(t *testing.T) {
	s := CompletionSummary(stats.Snapshot{
		FilesTotal:   1300,
		FilesCopied:  1204,
		FilesExisted: 96,
		BytesCopied:  2048,
		Elapsed:      2 * time.Second,
	})
	assert.Equal(t, "done ✓  files 1,204  size 2.0 KiB  avg 1.00 KB/s  time 2s  existed 96  errors 0", s)
}

func TestPassSummary(t *testing.T) {
	t.Run("all copied", func(t *testing.T) {
		lines := PassSummary(stats.Snapshot{FilesTotal: 2, FilesCopied: 2})
		assert.Equal(t, []string{"2 of 2 files copied"}, lines)
	})

	t.Run("mixed", func(t *testing.T) {
		lines := PassSummary(stats.Snapshot{FilesTotal: 5, FilesCopied: 2, FilesExisted: 2, FilesFailed: 1})
		assert.Equal(t, []string{
			"2 of 5 files copied",
			"2 of 5 files already existed",
			"1 of 5 files failed",
		}, lines)
	})
}
