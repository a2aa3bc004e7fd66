package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bamsammich/photocopy/internal/engine"
	"github.com/bamsammich/photocopy/internal/event"
)

// writeFile creates root/rel with content and pins its mtime.
func writeFile(t *testing.T, root, rel, content string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

// date returns local midday on the given day so the month never shifts.
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
}

// createPhotoTree populates root with:
//
//	a.jpg          2023-06-15
//	b.jpg          2023-01-02
//	sub/c.png      2024-12-31
func createPhotoTree(t *testing.T, root string) {
	t.Helper()
	writeFile(t, root, "a.jpg", "photo a", date(2023, time.June, 15))
	writeFile(t, root, "b.jpg", "photo b", date(2023, time.January, 2))
	writeFile(t, root, filepath.Join("sub", "c.png"), "photo c", date(2024, time.December, 31))
}

func newEngine(t *testing.T, src, dst string) *engine.Engine {
	t.Helper()
	e, err := engine.New(context.Background(), engine.Config{Src: src, Dst: dst})
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

// drain advances e to Finished and returns the statuses in order.
func drain(t *testing.T, e *engine.Engine) []engine.Status {
	t.Helper()
	var out []engine.Status
	for {
		s := e.Advance(context.Background())
		if s == engine.Finished {
			return out
		}
		out = append(out, s)
		require.Less(t, len(out), 10000, "engine never finished")
	}
}

// collectEvents runs the driver and returns every event it emitted.
func collectEvents(ctx context.Context, e *engine.Engine) (engine.Result, []event.Event) {
	events := make(chan event.Event, 256)
	done := make(chan []event.Event)
	go func() {
		var got []event.Event
		for ev := range events {
			got = append(got, ev)
		}
		done <- got
	}()
	res := engine.Run(ctx, e, events)
	close(events)
	return res, <-done
}

// findTmpFiles returns any in-progress copy files left under root.
func findTmpFiles(t *testing.T, root string) []string {
	t.Helper()
	var found []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasSuffix(d.Name(), ".photocopy-tmp") {
			found = append(found, path)
		}
		return nil
	})
	require.NoError(t, err)
	return found
}

func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}
