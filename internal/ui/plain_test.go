package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/photocopy/internal/stats"
)

func runPlain(t *testing.T, verbose bool, evs ...Event) (string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	p := &plainPresenter{w: &out, errW: &errOut, stats: stats.NewCollector(), verbose: verbose}

	events := make(chan Event, len(evs))
	for _, ev := range evs {
		events <- ev
	}
	close(events)

	require.NoError(t, p.Run(events))
	return out.String(), errOut.String()
}

func TestPlainPresenterFileLines(t *testing.T) {
	out, _ := runPlain(t, false,
		Event{Type: PassStarted, Total: 3, Pass: 1},
		Event{Type: FileStarted, Src: "a.jpg", Dst: "2023/06 Juni/a.jpg"},
		Event{Type: FileCopied, Src: "a.jpg", Dst: "2023/06 Juni/a.jpg", Size: 1024},
		Event{Type: FileExisted, Src: "b.jpg", Dst: "2023/01 Januari/b.jpg"},
		Event{Type: FileFailed, Src: "c.jpg", Dst: "2023/03 Mars/c.jpg", Error: assert.AnError},
		Event{Type: PassComplete, Total: 3, Pass: 1},
	)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Files to copy: 3", lines[0])
	assert.Contains(t, lines[1], "copied   a.jpg > 2023/06 Juni/a.jpg")
	assert.Contains(t, lines[1], "1.0 KiB")
	assert.Contains(t, lines[2], "failed   c.jpg > 2023/03 Mars/c.jpg")
	assert.Contains(t, lines[2], assert.AnError.Error())
	assert.NotContains(t, out, "b.jpg")
}

func TestPlainPresenterVerboseShowsExisted(t *testing.T) {
	out, _ := runPlain(t, true,
		Event{Type: FileExisted, Src: "b.jpg", Dst: "2023/01 Januari/b.jpg"},
	)
	assert.Contains(t, out, "existed  b.jpg > 2023/01 Januari/b.jpg")
}

func TestPlainPresenterRetryPassAndCancel(t *testing.T) {
	out, _ := runPlain(t, false,
		Event{Type: PassStarted, Total: 1, Pass: 2},
		Event{Type: PassCancelled, Pass: 2},
	)
	assert.Contains(t, out, "retry pass 2: 1 files")
	assert.Contains(t, out, "cancelled")
}

func TestPlainPresenterProgressLine(t *testing.T) {
	var errOut bytes.Buffer
	collector := stats.NewCollector()
	collector.Reset(4, 4096)
	collector.Copied(1024)
	collector.Existed()

	p := &plainPresenter{errW: &errOut, stats: collector}
	p.printProgress()

	assert.Contains(t, errOut.String(), "progress: 50%")
	assert.Contains(t, errOut.String(), "2/4 files")
}

func TestPlainPresenterSummary(t *testing.T) {
	collector := stats.NewCollector()
	collector.Reset(101, 0)
	for range 100 {
		collector.Copied(1024)
	}
	collector.Failed()

	p := &plainPresenter{stats: collector}
	s := p.Summary()
	assert.Contains(t, s, "files 100")
	assert.Contains(t, s, "errors 1")
	assert.True(t, strings.HasPrefix(s, "done ✗"))
}

func TestNewPresenter(t *testing.T) {
	collector := stats.NewCollector()

	assert.IsType(t, &quietPresenter{}, NewPresenter(Config{Quiet: true, IsTTY: true, Stats: collector}))
	assert.IsType(t, &plainPresenter{}, NewPresenter(Config{IsTTY: false, Stats: collector}))
	assert.IsType(t, &plainPresenter{}, NewPresenter(Config{IsTTY: true, NoProgress: true, Stats: collector}))
	assert.IsType(t, &barPresenter{}, NewPresenter(Config{IsTTY: true, Stats: collector}))
}

func TestQuietPresenterDrains(t *testing.T) {
	p := &quietPresenter{stats: stats.NewCollector()}
	events := make(chan Event, 2)
	events <- Event{Type: FileCopied}
	events <- Event{Type: PassComplete}
	close(events)

	require.NoError(t, p.Run(events))
	assert.Empty(t, p.Summary())
}
