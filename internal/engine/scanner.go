package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/bamsammich/photocopy/internal/months"
)

// scannerConfig controls scanner behavior.
type scannerConfig struct {
	SrcRoot string
	DstRoot string
	Months  months.Table
	Workers int
}

// scanner traverses a directory tree in parallel and collects one Item per
// regular file. The first error cancels the walk.
type scanner struct {
	cfg scannerConfig

	mu    sync.Mutex
	items []Item
	bytes int64

	errOnce sync.Once
	err     error
	cancel  context.CancelFunc
}

func newScanner(cfg scannerConfig) *scanner {
	if cfg.Workers <= 0 {
		cfg.Workers = min(runtime.NumCPU(), 8)
	}
	return &scanner{cfg: cfg}
}

// scan walks the tree and returns the items in discovery order together
// with their total size.
func (s *scanner) scan(ctx context.Context) ([]Item, int64, error) {
	ctx, s.cancel = context.WithCancel(ctx)
	defer s.cancel()

	workQueue := make(chan string, s.cfg.Workers*2)
	var outstanding sync.WaitGroup // tracks directories queued but not yet processed

	var workerWg sync.WaitGroup
	for range s.cfg.Workers {
		workerWg.Add(1)
		go func() {
			defer workerWg.Done()
			for dirPath := range workQueue {
				s.scanDir(ctx, dirPath, workQueue, &outstanding)
				outstanding.Done()
			}
		}()
	}

	outstanding.Add(1)
	workQueue <- s.cfg.SrcRoot

	// Wait for all directory work to finish, then close the work queue
	// so workers exit their range loop.
	outstanding.Wait()
	close(workQueue)
	workerWg.Wait()

	if s.err != nil {
		return nil, 0, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	return s.items, s.bytes, nil
}

func (s *scanner) scanDir(ctx context.Context, dirPath string, workQueue chan<- string, outstanding *sync.WaitGroup) {
	if ctx.Err() != nil {
		return
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		s.fail(&ConfigurationError{Op: "read directory", Path: dirPath, Err: err})
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		entryPath := filepath.Join(dirPath, entry.Name())
		mode := entry.Type()

		switch {
		case mode.IsDir():
			outstanding.Add(1)
			select {
			case workQueue <- entryPath:
			default:
				// Queue full: hand off so this worker keeps draining.
				go func() { workQueue <- entryPath }()
			}

		case mode&os.ModeSymlink != 0:
			slog.Debug("skipping symlink", "path", entryPath)

		case mode.IsRegular():
			if err := s.addFile(entryPath, entry); err != nil {
				s.fail(err)
				return
			}

		default:
			slog.Debug("skipping special file", "path", entryPath, "mode", mode.String())
		}
	}
}

func (s *scanner) addFile(path string, entry os.DirEntry) error {
	info, err := entry.Info()
	if err != nil {
		return &ConfigurationError{Op: "stat", Path: path, Err: err}
	}

	dst, err := DestinationPath(s.cfg.DstRoot, info.ModTime(), entry.Name(), s.cfg.Months)
	if err != nil {
		return &ConfigurationError{Op: "destination", Path: path, Err: err}
	}

	item := Item{
		SrcPath: path,
		DstPath: dst,
		ModTime: info.ModTime(),
		Size:    info.Size(),
		Mode:    info.Mode(),
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.bytes += item.Size
	s.mu.Unlock()
	return nil
}

func (s *scanner) fail(err error) {
	s.errOnce.Do(func() {
		s.err = err
		s.cancel()
	})
}

// checkSourceRoot validates that root is a readable directory.
func checkSourceRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return &ConfigurationError{Op: "source", Path: root, Err: err}
	}
	if !info.IsDir() {
		return &ConfigurationError{Op: "source", Path: root, Err: fmt.Errorf("not a directory")}
	}
	f, err := os.Open(root)
	if err != nil {
		return &ConfigurationError{Op: "source", Path: root, Err: err}
	}
	return f.Close()
}
