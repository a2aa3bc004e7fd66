package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/photocopy/internal/stats"
)

func TestBarPresenterPrintsFailuresAbove(t *testing.T) {
	var out bytes.Buffer
	collector := stats.NewCollector()
	collector.Reset(2, 0)
	p := &barPresenter{w: &out, stats: collector}

	events := make(chan Event, 8)
	events <- Event{Type: PassStarted, Total: 2, Pass: 1}
	events <- Event{Type: FileStarted, Src: "a.jpg", Dst: "2023/06 Juni/a.jpg"}
	events <- Event{Type: FileCopied, Src: "a.jpg", Dst: "2023/06 Juni/a.jpg", Size: 10}
	events <- Event{Type: FileStarted, Src: "c.jpg", Dst: "2023/03 Mars/c.jpg"}
	events <- Event{Type: FileFailed, Src: "c.jpg", Dst: "2023/03 Mars/c.jpg", Error: assert.AnError}
	events <- Event{Type: PassComplete, Total: 2, Pass: 1}
	close(events)

	require.NoError(t, p.Run(events))

	s := out.String()
	assert.Contains(t, s, "Files to copy: 2")
	assert.Contains(t, s, "c.jpg  "+assert.AnError.Error())
	assert.NotContains(t, s, "✓  ", "copied files are silent unless verbose")
	assert.Nil(t, p.bar)
}

func TestBarPresenterVerbose(t *testing.T) {
	var out bytes.Buffer
	p := &barPresenter{w: &out, stats: stats.NewCollector(), verbose: true}

	events := make(chan Event, 4)
	events <- Event{Type: PassStarted, Total: 2, Pass: 2}
	events <- Event{Type: FileCopied, Dst: "2023/06 Juni/a.jpg", Size: 10}
	events <- Event{Type: FileExisted, Dst: "2023/01 Januari/b.jpg"}
	close(events)

	require.NoError(t, p.Run(events))

	s := out.String()
	assert.Contains(t, s, "retry pass 2")
	assert.Contains(t, s, "a.jpg")
	assert.Contains(t, s, "exists")
}

func TestBarPresenterEmptyPass(t *testing.T) {
	var out bytes.Buffer
	p := &barPresenter{w: &out, stats: stats.NewCollector()}

	events := make(chan Event, 2)
	events <- Event{Type: PassStarted, Total: 0, Pass: 1}
	events <- Event{Type: PassComplete, Pass: 1}
	close(events)

	require.NoError(t, p.Run(events))
	assert.Contains(t, out.String(), "Files to copy: 0")
}
