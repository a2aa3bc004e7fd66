package engine

import (
	"context"
	"time"

	"github.com/bamsammich/photocopy/internal/event"
	"github.com/bamsammich/photocopy/internal/stats"
)

const finalEventTimeout = time.Second

// Result is the outcome of one pass.
type Result struct {
	Stats     stats.Snapshot
	Pass      int
	Cancelled bool
}

// Run drives e until Finished or until ctx is cancelled, emitting progress
// events to events (which may be nil). Cancellation is only observed
// between files.
func Run(ctx context.Context, e *Engine, events chan<- event.Event) Result {
	pass := e.Pass()
	emit(ctx, events, event.Event{Type: event.PassStarted, Total: int64(e.Remaining()), Pass: pass})

	for {
		if ctx.Err() != nil {
			emitFinal(events, event.Event{
				Type:  event.PassCancelled,
				Total: int64(e.Total()),
				Pass:  pass,
			})
			return Result{Stats: e.Snapshot(), Pass: pass, Cancelled: true}
		}

		next, ok := e.PeekNext()
		if !ok {
			break
		}
		rel := e.Relative(next)
		size := e.items[e.cursor].Size
		emit(ctx, events, event.Event{Type: event.FileStarted, Src: rel.Src, Dst: rel.Dst, Size: size, Pass: pass})

		status := e.Advance(ctx)
		ev := event.Event{Src: rel.Src, Dst: rel.Dst, Size: size, Pass: pass}
		switch status {
		case Copied:
			ev.Type = event.FileCopied
		case AlreadyExisted:
			ev.Type = event.FileExisted
		default:
			ev.Type = event.FileFailed
			ev.Error = e.LastError()
		}
		emit(ctx, events, ev)
	}

	emit(ctx, events, event.Event{Type: event.PassComplete, Total: int64(e.Total()), Pass: pass})
	return Result{Stats: e.Snapshot(), Pass: pass}
}

// emit sends ev unless ctx is done first. A nil channel drops every event.
func emit(ctx context.Context, events chan<- event.Event, ev event.Event) {
	if events == nil {
		return
	}
	ev.Timestamp = time.Now()
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}

// emitFinal delivers the cancellation event to a consumer that may already
// have stopped reading.
func emitFinal(events chan<- event.Event, ev event.Event) {
	if events == nil {
		return
	}
	ev.Timestamp = time.Now()
	select {
	case events <- ev:
	case <-time.After(finalEventTimeout):
	}
}
