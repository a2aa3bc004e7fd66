package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/bamsammich/photocopy/internal/stats"
)

const plainProgressInterval = 5 * time.Second

// plainPresenter outputs one line per handled file to stdout,
// and periodic progress to stderr.
type plainPresenter struct {
	w       io.Writer
	errW    io.Writer
	stats   stats.ReadTicker
	verbose bool
}

func (p *plainPresenter) Run(events <-chan Event) error {
	ticker := time.NewTicker(plainProgressInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-ticker.C:
			p.stats.Tick()
			p.printProgress()
		}
	}
}

func (p *plainPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case PassStarted:
		if ev.Pass > 1 {
			fmt.Fprintf(p.w, "retry pass %d: %s files\n", ev.Pass, FormatCount(ev.Total))
		} else {
			fmt.Fprintf(p.w, "Files to copy: %s\n", FormatCount(ev.Total))
		}
	case FileCopied:
		fmt.Fprintf(p.w, "copied   %s > %s  %s\n", ev.Src, ev.Dst, FormatBytes(ev.Size))
	case FileExisted:
		if p.verbose {
			fmt.Fprintf(p.w, "existed  %s > %s\n", ev.Src, ev.Dst)
		}
	case FileFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.w, "failed   %s > %s  %s\n", ev.Src, ev.Dst, errMsg)
	case PassCancelled:
		fmt.Fprintln(p.w, "cancelled")
	}
}

func (p *plainPresenter) printProgress() {
	snap := p.stats.Snapshot()
	fmt.Fprintf(p.errW, "progress: %d%% %s %s/%s files %s eta %s\n",
		snap.Percent(),
		ProgressBar(float64(snap.Percent())/100, progressBarWidth),
		FormatCount(snap.FilesProcessed), FormatCount(snap.FilesTotal),
		FormatRate(p.stats.RollingSpeed(10)),
		FormatETA(p.stats.FileETA()),
	)
}

func (p *plainPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}
