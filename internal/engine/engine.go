// Package engine classifies source files into year/month destination folders
// and copies them one at a time, tracking a status per file.
package engine

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/bamsammich/photocopy/internal/months"
	"github.com/bamsammich/photocopy/internal/stats"
)

// Config describes a copy engine.
type Config struct {
	Src         string
	Dst         string
	Months      months.Table // zero value means months.Default()
	ScanWorkers int
	Verify      bool  // BLAKE3-compare source and copy before renaming into place
	BWLimit     int64 // bytes per second, 0 = unlimited
	Stats       *stats.Collector
}

// Engine holds the worklist of a copy run. It is driven by a single
// goroutine; other goroutines observe progress through the stats collector.
type Engine struct {
	srcRoot string
	dstRoot string
	table   months.Table

	items  []Item
	cursor int

	copied         int
	alreadyExisted int
	failed         int
	lastError      error
	pass           int

	copier *copier
	tmps   *tmpRegistry
	stats  *stats.Collector
}

// New scans cfg.Src and returns an engine positioned at the first item.
// It never writes to the filesystem. Any error is a *ConfigurationError
// unless ctx was cancelled during the scan.
func New(ctx context.Context, cfg Config) (*Engine, error) {
	table := cfg.Months
	if table == (months.Table{}) {
		table = months.Default()
	}
	if err := table.Validate(); err != nil {
		return nil, &ConfigurationError{Op: "month table", Err: err}
	}

	srcRoot, err := filepath.Abs(cfg.Src)
	if err != nil {
		return nil, &ConfigurationError{Op: "source", Path: cfg.Src, Err: err}
	}
	dstRoot, err := filepath.Abs(cfg.Dst)
	if err != nil {
		return nil, &ConfigurationError{Op: "destination", Path: cfg.Dst, Err: err}
	}
	if err := checkSourceRoot(srcRoot); err != nil {
		return nil, err
	}

	sc := newScanner(scannerConfig{
		SrcRoot: srcRoot,
		DstRoot: dstRoot,
		Months:  table,
		Workers: cfg.ScanWorkers,
	})
	items, bytes, err := sc.scan(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(items, func(a, b Item) int { return cmp.Compare(a.SrcPath, b.SrcPath) })

	collector := cfg.Stats
	if collector == nil {
		collector = stats.NewCollector()
	}
	collector.Reset(int64(len(items)), bytes)

	tmps := &tmpRegistry{}
	e := &Engine{
		srcRoot: srcRoot,
		dstRoot: dstRoot,
		table:   table,
		items:   items,
		pass:    1,
		tmps:    tmps,
		stats:   collector,
		copier: &copier{
			verify: cfg.Verify,
			tmps:   tmps,
		},
	}
	if cfg.BWLimit > 0 {
		e.copier.limiter = NewBWLimiter(cfg.BWLimit)
	}

	slog.Debug("scan complete", "src", srcRoot, "files", len(items), "bytes", bytes)
	return e, nil
}

// PeekNext returns the pair at the cursor without advancing. ok is false
// once every item has been handled.
func (e *Engine) PeekNext() (p Pair, ok bool) {
	if e.cursor >= len(e.items) {
		return Pair{}, false
	}
	it := e.items[e.cursor]
	return Pair{Src: it.SrcPath, Dst: it.DstPath}, true
}

// Relative strips the source and destination roots from p.
func (e *Engine) Relative(p Pair) Pair {
	return Pair{Src: relTo(e.srcRoot, p.Src), Dst: relTo(e.dstRoot, p.Dst)}
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// Advance handles the item at the cursor and returns its new status, or
// Finished when nothing is left. The cursor moves before the copy starts,
// so a failed item is never retried within the same pass.
//
// Cancellation of ctx is ignored: a copy that has started, including any
// bandwidth limiter wait, runs to completion. Callers stop between files.
func (e *Engine) Advance(ctx context.Context) Status {
	if e.cursor >= len(e.items) {
		return Finished
	}
	idx := e.cursor
	e.cursor++

	item := &e.items[idx]
	out := e.copier.copyItem(context.WithoutCancel(ctx), *item)

	item.Status = out.Status
	switch out.Status {
	case Copied:
		e.copied++
		e.stats.Copied(out.Bytes)
	case AlreadyExisted:
		e.alreadyExisted++
		e.stats.Existed()
	default:
		item.Status = Failed
		item.Err = out.Err
		e.failed++
		e.lastError = out.Err
		e.stats.Failed()
		slog.Warn("copy failed", "src", item.SrcPath, "dst", item.DstPath, "error", out.Err)
	}
	return item.Status
}

// ResetToFailed narrows the worklist to the items that failed in the
// finished pass and rewinds it for another pass.
func (e *Engine) ResetToFailed() error {
	if e.cursor < len(e.items) {
		return &StateError{
			Op:  "reset to failed",
			Err: fmt.Errorf("%w: %d of %d handled", ErrPassInProgress, e.cursor, len(e.items)),
		}
	}
	if e.failed == 0 {
		return &StateError{Op: "reset to failed", Err: ErrNoFailedItems}
	}

	retry := make([]Item, 0, e.failed)
	var bytes int64
	for _, it := range e.items {
		if it.Status != Failed {
			continue
		}
		it.Status = Unhandled
		it.Err = nil
		retry = append(retry, it)
		bytes += it.Size
	}

	e.items = retry
	e.cursor = 0
	e.copied = 0
	e.alreadyExisted = 0
	e.failed = 0
	e.lastError = nil
	e.pass++
	e.stats.Reset(int64(len(retry)), bytes)
	return nil
}

// Progress returns the handled share of the worklist as a whole percentage.
// An empty worklist is 100% done.
func (e *Engine) Progress() int {
	if len(e.items) == 0 {
		return 100
	}
	return e.cursor * 100 / len(e.items)
}

func (e *Engine) Total() int          { return len(e.items) }
func (e *Engine) Remaining() int      { return len(e.items) - e.cursor }
func (e *Engine) Cursor() int         { return e.cursor }
func (e *Engine) Copied() int         { return e.copied }
func (e *Engine) AlreadyExisted() int { return e.alreadyExisted }
func (e *Engine) Failed() int         { return e.failed }
func (e *Engine) LastError() error    { return e.lastError }
func (e *Engine) SrcRoot() string     { return e.srcRoot }
func (e *Engine) DstRoot() string     { return e.dstRoot }

// Pass is 1 for the initial worklist and increments on each ResetToFailed.
func (e *Engine) Pass() int { return e.pass }

// Months returns the month label table the engine was built with.
func (e *Engine) Months() months.Table { return e.table }

// Stats returns the collector mirroring the engine's counters.
func (e *Engine) Stats() *stats.Collector { return e.stats }

// Snapshot returns the current counters from the stats collector.
func (e *Engine) Snapshot() stats.Snapshot { return e.stats.Snapshot() }

// Items returns copies of the items with the given status, in worklist order.
func (e *Engine) Items(status Status) []Item {
	var out []Item
	for _, it := range e.items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out
}

// All returns a copy of the whole worklist.
func (e *Engine) All() []Item {
	return slices.Clone(e.items)
}

// Close removes temporary files left by a copy that did not finish.
func (e *Engine) Close() {
	e.tmps.cleanup()
}
