package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bamsammich/photocopy/internal/platform"
)

// copier performs the copy-or-skip decision for a single item.
type copier struct {
	verify  bool
	limiter *rate.Limiter
	tmps    *tmpRegistry
}

// outcome is returned by copyItem. Bytes is set for Copied only.
type outcome struct {
	Status Status
	Bytes  int64
	Err    error
}

func (c *copier) copyItem(ctx context.Context, item Item) outcome {
	// Stat follows symlinks: a link to a regular file counts as existing.
	info, err := os.Stat(item.DstPath)
	switch {
	case err == nil && info.Mode().IsRegular():
		return outcome{Status: AlreadyExisted}
	case err == nil:
		return outcome{Status: Failed, Err: &CopyError{
			Src: item.SrcPath, Dst: item.DstPath,
			Err: fmt.Errorf("destination exists and is not a regular file (%s)", info.Mode().Type()),
		}}
	case !errors.Is(err, fs.ErrNotExist):
		return outcome{Status: Failed, Err: &CopyError{Src: item.SrcPath, Dst: item.DstPath, Err: err}}
	}
	if _, lerr := os.Lstat(item.DstPath); lerr == nil {
		return outcome{Status: Failed, Err: &CopyError{
			Src: item.SrcPath, Dst: item.DstPath,
			Err: errors.New("destination is a dangling symlink"),
		}}
	}

	n, err := c.copyFile(ctx, item.SrcPath, item.DstPath)
	if err != nil {
		return outcome{Status: Failed, Err: &CopyError{Src: item.SrcPath, Dst: item.DstPath, Err: err}}
	}
	return outcome{Status: Copied, Bytes: n}
}

// copyFile writes src to a hidden temp file next to dst, carries over mode
// and timestamps, then renames it into place.
func (c *copier) copyFile(ctx context.Context, src, dst string) (int64, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}
	if !srcInfo.Mode().IsRegular() {
		return 0, fmt.Errorf("source %s is no longer a regular file", src)
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmpName := fmt.Sprintf(".%s.%s%s", filepath.Base(dst), uuid.New().String()[:8], tmpSuffix)
	tmpPath := filepath.Join(dir, tmpName)

	c.tmps.add(tmpPath)
	defer func() {
		c.tmps.remove(tmpPath)
		_ = os.Remove(tmpPath) // no-op if rename succeeded
	}()

	tmpFd, err := os.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return 0, fmt.Errorf("create tmp %s: %w", tmpPath, err)
	}

	n, err := c.copyData(ctx, src, srcInfo.Size(), tmpFd)
	if err != nil {
		tmpFd.Close()
		return 0, err
	}

	if c.verify {
		if err := verifyCopy(src, tmpFd, n); err != nil {
			tmpFd.Close()
			return 0, err
		}
	}

	if err := platform.SetFileMode(tmpFd, srcInfo.Mode()); err != nil {
		tmpFd.Close()
		return 0, err
	}
	if err := platform.SetFileTimes(tmpFd, platform.AccessTime(srcInfo), srcInfo.ModTime()); err != nil {
		tmpFd.Close()
		return 0, err
	}

	if err := tmpFd.Close(); err != nil {
		return 0, fmt.Errorf("close tmp %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		return 0, fmt.Errorf("rename %s -> %s: %w", tmpPath, dst, err)
	}
	return n, nil
}

func (c *copier) copyData(ctx context.Context, src string, size int64, dst *os.File) (int64, error) {
	if c.limiter == nil {
		res, err := platform.CopyFile(platform.CopyFileParams{
			DstFd:   dst,
			SrcPath: src,
			SrcSize: size,
		})
		if err != nil {
			return 0, fmt.Errorf("copy data: %w", err)
		}
		slog.Debug("copied data", "src", src, "method", res.Method, "bytes", res.BytesWritten)
		return res.BytesWritten, nil
	}

	srcFd, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer srcFd.Close()

	n, err := io.Copy(dst, newRateLimitedReader(ctx, srcFd, c.limiter))
	if err != nil {
		return n, fmt.Errorf("copy data: %w", err)
	}
	return n, nil
}
