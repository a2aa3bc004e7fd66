package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/bamsammich/photocopy/internal/stats"
)

// ANSI escape sequences.
const (
	ansiDim   = "\033[2m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

const (
	sparklineWidth   = 12
	progressBarWidth = 20
	barThrottle      = 65 * time.Millisecond
)

// barPresenter draws an inline progress bar on a TTY. Failed files (and,
// when verbose, every handled file) scroll above the bar.
type barPresenter struct {
	w       io.Writer
	stats   stats.ReadTicker
	verbose bool

	bar     *progressbar.ProgressBar
	current string
}

func (p *barPresenter) newBar(total int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(progressBarWidth),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionThrottle(barThrottle),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]▪[reset]",
			SaucerHead:    "[green]▪[reset]",
			SaucerPadding: "□",
			BarStart:      "",
			BarEnd:        "",
		}),
	)
}

func (p *barPresenter) Run(events <-chan Event) error {
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.finish()
				return nil
			}
			p.handleEvent(ev)

		case <-secTicker.C:
			p.stats.Tick()
			p.describe()
		}
	}
}

func (p *barPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case PassStarted:
		p.finish()
		if ev.Pass > 1 {
			fmt.Fprintf(p.w, "retry pass %d\n", ev.Pass)
		}
		fmt.Fprintf(p.w, "Files to copy: %s\n", FormatCount(ev.Total))
		if ev.Total > 0 {
			p.bar = p.newBar(ev.Total)
			_ = p.bar.RenderBlank()
		}

	case FileStarted:
		p.current = ev.Dst
		p.describe()

	case FileCopied:
		if p.verbose {
			p.printAbove(fmt.Sprintf("✓  %s  %s", styledPath(ev.Dst), FormatBytes(ev.Size)))
		}
		p.add()

	case FileExisted:
		if p.verbose {
			p.printAbove(fmt.Sprintf("–  %s  %sexists%s", styledPath(ev.Dst), ansiDim, ansiReset))
		}
		p.add()

	case FileFailed:
		errMsg := "error"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		p.printAbove(fmt.Sprintf("%s✗%s  %s  %s", ansiRed, ansiReset, ev.Src, errMsg))
		p.add()

	case PassComplete, PassCancelled:
		p.finish()
	}
}

func (p *barPresenter) add() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// describe refreshes the text left of the bar: throughput sparkline, eta
// and the file in flight.
func (p *barPresenter) describe() {
	if p.bar == nil {
		return
	}
	spark := Sparkline(p.stats.SparklineData(sparklineWidth), sparklineWidth)
	p.bar.Describe(fmt.Sprintf("%s eta %-8s %s", spark, FormatETA(p.stats.FileETA()), truncPath(p.current, 40)))
}

func (p *barPresenter) printAbove(line string) {
	if p.bar != nil {
		_ = p.bar.Clear()
	}
	fmt.Fprintln(p.w, line)
	if p.bar != nil {
		_ = p.bar.RenderBlank()
	}
}

func (p *barPresenter) finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	fmt.Fprintln(p.w)
	p.bar = nil
	p.current = ""
}

func (p *barPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}
