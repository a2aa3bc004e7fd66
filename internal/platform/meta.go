package platform

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// SetFileMode applies the permission bits of mode (including setuid, setgid
// and sticky) to an open file descriptor.
func SetFileMode(fd *os.File, mode os.FileMode) error {
	perm := uint32(mode.Perm())
	if mode&os.ModeSetuid != 0 {
		perm |= unix.S_ISUID
	}
	if mode&os.ModeSetgid != 0 {
		perm |= unix.S_ISGID
	}
	if mode&os.ModeSticky != 0 {
		perm |= unix.S_ISVTX
	}
	if err := unix.Fchmod(int(fd.Fd()), perm); err != nil {
		return fmt.Errorf("fchmod: %w", err)
	}
	return nil
}
