package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bamsammich/photocopy/internal/months"
)

// Item is one discovered source file and its outcome in the current pass.
type Item struct {
	SrcPath string
	DstPath string
	ModTime time.Time
	Size    int64
	Mode    os.FileMode
	Status  Status
	Err     error // set when Status is Failed
}

// Pair is a source/destination path pair.
type Pair struct {
	Src string
	Dst string
}

// DestinationPath returns dstRoot/<year>/<month label>/name for a file last
// modified at mtime. The year and month are taken in local time.
func DestinationPath(dstRoot string, mtime time.Time, name string, table months.Table) (string, error) {
	local := mtime.Local()
	label, err := table.Label(local.Month())
	if err != nil {
		return "", err
	}
	return filepath.Join(dstRoot, fmt.Sprintf("%04d", local.Year()), label, name), nil
}
