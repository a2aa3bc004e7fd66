package platform

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDst(t *testing.T, path string) *os.File {
	t.Helper()
	fd, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() { fd.Close() })
	return fd
}

func TestCopyFileBasic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "dst.jpg")

	data := []byte("hello, photocopy!")
	require.NoError(t, os.WriteFile(src, data, 0o644))

	dstFd := openDst(t, dst)
	result, err := CopyFile(CopyFileParams{
		SrcPath: src,
		DstFd:   dstFd,
		SrcSize: int64(len(data)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), result.BytesWritten)

	require.NoError(t, dstFd.Close())
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestCopyFileLarge(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	// 4 MiB, larger than the 1 MiB buffer.
	size := 4 * 1024 * 1024
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src, data, 0o644))

	dstFd := openDst(t, dst)
	result, err := CopyFile(CopyFileParams{
		SrcPath: src,
		DstFd:   dstFd,
		SrcSize: int64(size),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(size), result.BytesWritten)

	require.NoError(t, dstFd.Close())
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestCopyFileEmpty(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.WriteFile(src, nil, 0o644))

	result, err := CopyFile(CopyFileParams{
		SrcPath: src,
		DstFd:   openDst(t, filepath.Join(dir, "dst")),
		SrcSize: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.BytesWritten)
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := CopyFile(CopyFileParams{
		SrcPath: filepath.Join(dir, "vanished.jpg"),
		DstFd:   openDst(t, filepath.Join(dir, "dst")),
		SrcSize: 10,
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCopyReadWrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	data := []byte("read-write fallback test")
	require.NoError(t, os.WriteFile(src, data, 0o644))

	dstFd := openDst(t, dst)
	result, err := copyReadWrite(CopyFileParams{
		SrcPath: src,
		DstFd:   dstFd,
		SrcSize: int64(len(data)),
	})
	require.NoError(t, err)
	assert.Equal(t, ReadWrite, result.Method)
	assert.Equal(t, int64(len(data)), result.BytesWritten)

	require.NoError(t, dstFd.Close())
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestSetFileTimes(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "dst")
	fd := openDst(t, dst)

	mtime := time.Date(2023, time.June, 15, 10, 30, 0, 0, time.Local)
	atime := time.Date(2024, time.January, 2, 8, 0, 0, 0, time.Local)
	require.NoError(t, SetFileTimes(fd, atime, mtime))
	require.NoError(t, fd.Close())

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "mtime %v", info.ModTime())
	assert.True(t, AccessTime(info).Equal(atime), "atime %v", AccessTime(info))
}

func TestSetFileMode(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "dst")
	fd := openDst(t, dst)

	require.NoError(t, SetFileMode(fd, 0o600))
	require.NoError(t, fd.Close())

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCopyMethodString(t *testing.T) {
	assert.Equal(t, "read_write", ReadWrite.String())
	assert.Equal(t, "copy_file_range", CopyFileRange.String())
	assert.Equal(t, "sendfile", Sendfile.String())
	assert.Equal(t, "unknown", CopyMethod(99).String())
}
