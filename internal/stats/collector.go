package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const ringSize = 60

// Reader is the read-only view presenters use.
type Reader interface {
	Snapshot() Snapshot
	RollingSpeed(seconds int) float64
	RollingFilesPerSec(seconds int) float64
	SparklineData(n int) []float64
	FileETA() time.Duration
}

// ReadTicker is a Reader whose owner also drives the 1/sec sampling.
type ReadTicker interface {
	Reader
	Tick()
}

// Collector mirrors the copy engine's counters using lock-free atomics so
// presenters on other goroutines can poll them while a pass runs.
type Collector struct {
	filesTotal     atomic.Int64
	bytesTotal     atomic.Int64
	filesProcessed atomic.Int64
	filesCopied    atomic.Int64
	filesExisted   atomic.Int64
	filesFailed    atomic.Int64
	bytesCopied    atomic.Int64
	startNano      atomic.Int64

	// Ring buffer, written only by Tick().
	mu          sync.Mutex
	throughput  [ringSize]int64 // bytes delta per second
	filesPerSec [ringSize]int64 // processed files delta per second
	ringIdx     int
	ringCount   int
	lastBytes   int64
	lastFiles   int64
}

// NewCollector creates a Collector whose clock starts now.
func NewCollector() *Collector {
	c := &Collector{}
	c.startNano.Store(time.Now().UnixNano())
	return c
}

// Reset zeroes every counter and the ring buffer, records new totals and
// restarts the clock. Called at the start of every pass.
func (c *Collector) Reset(files, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filesProcessed.Store(0)
	c.filesCopied.Store(0)
	c.filesExisted.Store(0)
	c.filesFailed.Store(0)
	c.bytesCopied.Store(0)
	c.filesTotal.Store(files)
	c.bytesTotal.Store(bytes)
	c.startNano.Store(time.Now().UnixNano())

	c.throughput = [ringSize]int64{}
	c.filesPerSec = [ringSize]int64{}
	c.ringIdx = 0
	c.ringCount = 0
	c.lastBytes = 0
	c.lastFiles = 0
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesTotal     int64
	BytesTotal     int64
	FilesProcessed int64
	FilesCopied    int64
	FilesExisted   int64
	FilesFailed    int64
	BytesCopied    int64
	Elapsed        time.Duration
}

// FilesRemaining is the number of files not yet processed in the pass.
func (s Snapshot) FilesRemaining() int64 {
	if s.FilesProcessed >= s.FilesTotal {
		return 0
	}
	return s.FilesTotal - s.FilesProcessed
}

// Percent is the integer share of processed files, 100 for an empty pass.
func (s Snapshot) Percent() int {
	if s.FilesTotal <= 0 {
		return 100
	}
	return int(s.FilesProcessed * 100 / s.FilesTotal)
}

// Copied records one copied file of n bytes.
func (c *Collector) Copied(n int64) {
	c.bytesCopied.Add(n)
	c.filesCopied.Add(1)
	c.filesProcessed.Add(1)
}

// Existed records one file whose destination was already present.
func (c *Collector) Existed() {
	c.filesExisted.Add(1)
	c.filesProcessed.Add(1)
}

// Failed records one failed file.
func (c *Collector) Failed() {
	c.filesFailed.Add(1)
	c.filesProcessed.Add(1)
}

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesTotal:     c.filesTotal.Load(),
		BytesTotal:     c.bytesTotal.Load(),
		FilesProcessed: c.filesProcessed.Load(),
		FilesCopied:    c.filesCopied.Load(),
		FilesExisted:   c.filesExisted.Load(),
		FilesFailed:    c.filesFailed.Load(),
		BytesCopied:    c.bytesCopied.Load(),
		Elapsed:        c.Elapsed(),
	}
}

// Tick snapshots byte/file deltas into the ring buffer. Called 1/sec by the presenter.
func (c *Collector) Tick() {
	currentBytes := c.bytesCopied.Load()
	currentFiles := c.filesProcessed.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.throughput[c.ringIdx] = currentBytes - c.lastBytes
	c.filesPerSec[c.ringIdx] = currentFiles - c.lastFiles
	c.lastBytes = currentBytes
	c.lastFiles = currentFiles

	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingSpeed returns average bytes/sec over the last n seconds of samples.
func (c *Collector) RollingSpeed(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rollingAvg(c.throughput[:], seconds)
}

// RollingFilesPerSec returns average processed files/sec over the last n seconds.
func (c *Collector) RollingFilesPerSec(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rollingAvg(c.filesPerSec[:], seconds)
}

func (c *Collector) rollingAvg(buf []int64, n int) float64 {
	count := min(n, c.ringCount)
	if count <= 0 {
		return 0
	}
	var sum int64
	for i := range count {
		idx := (c.ringIdx - 1 - i + ringSize) % ringSize
		sum += buf[idx]
	}
	return float64(sum) / float64(count)
}

// SparklineData returns the last n files/sec samples, oldest first.
func (c *Collector) SparklineData(n int) []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := min(n, c.ringCount)
	if count <= 0 {
		return nil
	}

	data := make([]float64, count)
	for i := range count {
		idx := (c.ringIdx - count + i + ringSize) % ringSize
		data[i] = float64(c.filesPerSec[idx])
	}
	return data
}

// FileETA estimates the remaining time as the average time per processed
// file multiplied by the files left. Zero until the first file is done.
func (c *Collector) FileETA() time.Duration {
	done := c.filesProcessed.Load()
	if done <= 0 {
		return 0
	}
	left := c.filesTotal.Load() - done
	if left <= 0 {
		return 0
	}
	perFile := c.Elapsed() / time.Duration(done)
	return perFile * time.Duration(left)
}

// Elapsed returns time since the collector was created or last reset.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(time.Unix(0, c.startNano.Load()))
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"total=%d processed=%d copied=%d existed=%d failed=%d bytes=%d",
		s.FilesTotal, s.FilesProcessed, s.FilesCopied, s.FilesExisted,
		s.FilesFailed, s.BytesCopied,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
