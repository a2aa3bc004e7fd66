package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()
	const goroutines = 100
	const opsPerGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			for range opsPerGoroutine {
				c.Copied(256)
				c.Existed()
				c.Failed()
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	expected := int64(goroutines * opsPerGoroutine)
	assert.Equal(t, expected, s.FilesCopied)
	assert.Equal(t, expected, s.FilesExisted)
	assert.Equal(t, expected, s.FilesFailed)
	assert.Equal(t, 3*expected, s.FilesProcessed)
	assert.Equal(t, expected*256, s.BytesCopied)
}

func TestSnapshotString(t *testing.T) {
	s := Snapshot{
		FilesTotal:     10,
		FilesProcessed: 8,
		FilesCopied:    5,
		FilesExisted:   2,
		FilesFailed:    1,
		BytesCopied:    4096,
	}
	expected := "total=10 processed=8 copied=5 existed=2 failed=1 bytes=4096"
	assert.Equal(t, expected, s.String())
}

func TestSnapshotPercent(t *testing.T) {
	assert.Equal(t, 100, Snapshot{}.Percent())
	assert.Equal(t, 0, Snapshot{FilesTotal: 3}.Percent())
	assert.Equal(t, 33, Snapshot{FilesTotal: 3, FilesProcessed: 1}.Percent())
	assert.Equal(t, 66, Snapshot{FilesTotal: 3, FilesProcessed: 2}.Percent())
	assert.Equal(t, 100, Snapshot{FilesTotal: 3, FilesProcessed: 3}.Percent())
}

func TestSnapshotFilesRemaining(t *testing.T) {
	assert.Equal(t, int64(7), Snapshot{FilesTotal: 10, FilesProcessed: 3}.FilesRemaining())
	assert.Equal(t, int64(0), Snapshot{FilesTotal: 2, FilesProcessed: 2}.FilesRemaining())
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{1073741824, "1.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatBytes(tt.input))
		})
	}
}

func TestNewCollector(t *testing.T) {
	c := NewCollector()
	assert.NotZero(t, c.startNano.Load())
	assert.InDelta(t, 0, c.Elapsed().Seconds(), 1)
}

func TestReset(t *testing.T) {
	c := NewCollector()
	c.Copied(100)
	c.Failed()
	c.Tick()

	c.Reset(4, 4096)
	s := c.Snapshot()
	assert.Equal(t, int64(4), s.FilesTotal)
	assert.Equal(t, int64(4096), s.BytesTotal)
	assert.Zero(t, s.FilesProcessed)
	assert.Zero(t, s.FilesCopied)
	assert.Zero(t, s.FilesFailed)
	assert.Zero(t, s.BytesCopied)
	assert.Nil(t, c.SparklineData(5))
}

func TestTickAndRollingSpeed(t *testing.T) {
	c := NewCollector()

	// Simulate 5 seconds of 10 files (100 bytes each) per second.
	for range 5 {
		for range 10 {
			c.Copied(100)
		}
		c.Tick()
	}

	assert.InDelta(t, 1000.0, c.RollingSpeed(5), 0.01)
	assert.InDelta(t, 10.0, c.RollingFilesPerSec(5), 0.01)
}

func TestRollingSpeedPartialWindow(t *testing.T) {
	c := NewCollector()

	c.Copied(500)
	c.Tick()
	c.Copied(500)
	c.Tick()

	// Ask for 10 but only have 2.
	assert.InDelta(t, 500.0, c.RollingSpeed(10), 0.01)
}

func TestRollingSpeedNoSamples(t *testing.T) {
	c := NewCollector()
	assert.Equal(t, 0.0, c.RollingSpeed(5))
}

func TestSparklineData(t *testing.T) {
	c := NewCollector()

	for i := range 5 {
		for range i + 1 {
			c.Existed()
		}
		c.Tick()
	}

	data := c.SparklineData(5)
	require.Len(t, data, 5)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, data)
}

func TestRingWraparound(t *testing.T) {
	c := NewCollector()

	for range ringSize + 10 {
		c.Existed()
		c.Tick()
	}

	data := c.SparklineData(ringSize)
	require.Len(t, data, ringSize)
}

func TestFileETA(t *testing.T) {
	c := NewCollector()
	c.Reset(4, 0)
	assert.Equal(t, time.Duration(0), c.FileETA())

	c.startNano.Store(time.Now().Add(-2 * time.Second).UnixNano())
	c.Existed()
	c.Existed()

	// 1s per file, 2 files left.
	assert.InDelta(t, 2.0, c.FileETA().Seconds(), 0.5)
}

func TestFileETAComplete(t *testing.T) {
	c := NewCollector()
	c.Reset(1, 0)
	c.Failed()
	assert.Equal(t, time.Duration(0), c.FileETA())
}

func TestSnapshotIncludesElapsed(t *testing.T) {
	c := NewCollector()
	time.Sleep(10 * time.Millisecond)
	s := c.Snapshot()
	assert.Greater(t, s.Elapsed, time.Duration(0))
}
