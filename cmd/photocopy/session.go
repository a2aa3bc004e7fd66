package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bamsammich/photocopy/internal/config"
	"github.com/bamsammich/photocopy/internal/engine"
	"github.com/bamsammich/photocopy/internal/event"
	"github.com/bamsammich/photocopy/internal/ui"
	"github.com/bamsammich/photocopy/internal/ui/tui"
)

const eventBuffer = 256

// session runs the passes of one engine and handles the between-pass
// report and retry decisions.
type session struct {
	eng      *engine.Engine
	opts     *options
	streams  streams
	eventLog *slog.Logger // nil without --log
	prompter *ui.Prompter
}

// runInline runs passes with an inline presenter until nothing failed, the
// user declines a retry, or ctx is cancelled.
func (s *session) runInline(ctx context.Context) (cancelled bool, err error) {
	retriesLeft := s.opts.retries
	for {
		result := s.inlinePass(ctx)
		s.printPassSummary()
		if result.Cancelled {
			return true, nil
		}

		if err := s.maybeReport(); err != nil {
			return false, err
		}

		if s.eng.Failed() == 0 {
			return false, nil
		}
		retry := false
		switch {
		case retriesLeft > 0:
			retriesLeft--
			retry = true
		case s.canPrompt():
			retry, err = s.prompter.Confirm("Do you want to retry failed files?")
			if err != nil {
				return false, err
			}
		}
		if !retry {
			return false, nil
		}
		if err := s.eng.ResetToFailed(); err != nil {
			return false, err
		}
		slog.Debug("retrying failed files", "pass", s.eng.Pass(), "files", s.eng.Total())
	}
}

// inlinePass drives one pass in the foreground while a presenter consumes
// its events.
func (s *session) inlinePass(ctx context.Context) engine.Result {
	events := make(chan event.Event, eventBuffer)
	presenter := ui.NewPresenter(ui.Config{
		Writer:     s.streams.out,
		ErrWriter:  s.streams.errOut,
		Stats:      s.eng.Stats(),
		IsTTY:      s.streams.isTTY,
		Quiet:      s.opts.quiet,
		Verbose:    s.opts.verbose,
		NoProgress: s.opts.noProgress,
	})

	// The presenter reads until the channel closes, so the tee never
	// needs to stop forwarding.
	presenterEvents, _ := teeEvents(events, s.eventLog, nil)

	var presenterErr error
	var presenterWg sync.WaitGroup
	presenterWg.Add(1)
	go func() {
		defer presenterWg.Done()
		presenterErr = presenter.Run(presenterEvents)
	}()

	result := engine.Run(ctx, s.eng, events)
	close(events)
	presenterWg.Wait()
	if presenterErr != nil {
		fmt.Fprintf(s.streams.errOut, "presenter: %v\n", presenterErr)
	}

	if !s.opts.quiet {
		if summary := presenter.Summary(); summary != "" {
			fmt.Fprintln(s.streams.errOut, summary)
		}
	}
	return result
}

// runTUI runs every pass behind the full-screen presenter. Once the
// --retries passes are used up, retries are requested from inside the TUI.
func (s *session) runTUI(ctx context.Context, theme config.ThemeConfig) (cancelled bool) {
	events := make(chan event.Event, eventBuffer)
	retry := make(chan struct{}, 1)

	engineCtx, engineCancel := context.WithCancel(ctx)
	defer engineCancel()

	presenter := tui.NewPresenter(tui.Config{
		Stats:   s.eng.Stats(),
		SrcRoot: s.eng.SrcRoot(),
		DstRoot: s.eng.DstRoot(),
		Theme:   theme,
		Cancel:  engineCancel,
		Retry:   retry,
	})

	var result engine.Result
	var engineWg sync.WaitGroup
	engineWg.Add(1)
	go func() {
		defer engineWg.Done()
		defer close(events)
		result = s.drivePasses(engineCtx, events, retry)
	}()

	presenterDone := make(chan struct{})
	presenterEvents, flushed := teeEvents(events, s.eventLog, presenterDone)

	// Bubble Tea needs the foreground to capture stdin.
	if err := presenter.Run(presenterEvents); err != nil {
		slog.Error("tui", "error", err)
	}
	close(presenterDone)

	// User quit the TUI: stop the engine between files if still running.
	engineCancel()
	engineWg.Wait()
	<-flushed

	if !s.opts.quiet {
		fmt.Fprintln(s.streams.errOut, presenter.Summary())
		s.printPassSummary()
	}
	if s.opts.report {
		if err := s.buildReport().Write(s.streams.out); err != nil {
			slog.Warn("write report", "error", err)
		}
	}
	return result.Cancelled
}

// drivePasses runs passes until nothing failed or ctx is done. Between
// passes it retries on its own while --retries allows, then waits for a
// value on retry.
func (s *session) drivePasses(ctx context.Context, events chan<- event.Event, retry <-chan struct{}) engine.Result {
	retriesLeft := s.opts.retries
	for {
		result := engine.Run(ctx, s.eng, events)
		if result.Cancelled || s.eng.Failed() == 0 {
			return result
		}
		if retriesLeft > 0 {
			retriesLeft--
		} else {
			select {
			case <-retry:
			case <-ctx.Done():
				return result
			}
		}
		if err := s.eng.ResetToFailed(); err != nil {
			slog.Warn("retry failed", "error", err)
			return result
		}
	}
}

func (s *session) printPassSummary() {
	if s.opts.quiet {
		return
	}
	for _, line := range ui.PassSummary(s.eng.Snapshot()) {
		fmt.Fprintln(s.streams.out, line)
	}
}

func (s *session) canPrompt() bool {
	return s.streams.interactive && !s.opts.quiet
}

// maybeReport prints the full report when --report is set, or when the user
// asks for it.
func (s *session) maybeReport() error {
	show := s.opts.report
	if !show && s.canPrompt() {
		var err error
		show, err = s.prompter.Confirm("View full report?")
		if err != nil {
			return err
		}
	}
	if !show {
		return nil
	}
	return s.buildReport().Write(s.streams.out)
}

// buildReport groups the current worklist by outcome using absolute paths.
func (s *session) buildReport() ui.Report {
	var r ui.Report
	for _, it := range s.eng.All() {
		entry := ui.ReportEntry{Src: it.SrcPath, Dst: it.DstPath, Err: it.Err}
		switch it.Status {
		case engine.Copied:
			r.Copied = append(r.Copied, entry)
		case engine.AlreadyExisted:
			r.Existed = append(r.Existed, entry)
		case engine.Failed:
			r.Failed = append(r.Failed, entry)
		}
	}
	return r
}
