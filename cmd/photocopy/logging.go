package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bamsammich/photocopy/internal/event"
	"github.com/bamsammich/photocopy/internal/ui"
)

// setupLogging installs the default slog logger: text on errW, plus JSON
// to logFile when set. It returns a logger writing to the JSON file only
// (nil without --log) and a func closing the file.
func setupLogging(errW io.Writer, verbose, quiet bool, logFile string) (*slog.Logger, func(), error) {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	} else if !quiet {
		logLevel = slog.LevelInfo
	}
	textHandler := slog.NewTextHandler(errW, &slog.HandlerOptions{
		Level: logLevel,
	})

	if logFile == "" {
		slog.SetDefault(slog.New(textHandler))
		return nil, func() {}, nil
	}

	lf, err := os.Create(logFile)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(ui.NewMultiHandler(textHandler, jsonHandler)))
	return slog.New(jsonHandler), func() { _ = lf.Close() }, nil
}

// teeEvents writes every event to logger before forwarding it. Once done
// is closed the consumer is gone: remaining events are still logged but no
// longer forwarded. flushed is closed after the last event was logged.
// A nil logger returns in unchanged.
func teeEvents(in <-chan event.Event, logger *slog.Logger, done <-chan struct{}) (out <-chan event.Event, flushed <-chan struct{}) {
	finished := make(chan struct{})
	if logger == nil {
		close(finished)
		return in, finished
	}
	fwd := make(chan event.Event, cap(in))
	go func() {
		defer close(finished)
		defer close(fwd)
		forwarding := true
		for ev := range in {
			ui.LogEvent(logger, ev)
			if !forwarding {
				continue
			}
			select {
			case fwd <- ev:
			case <-done:
				forwarding = false
			}
		}
	}()
	return fwd, finished
}
