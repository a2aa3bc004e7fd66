//go:build !linux

package platform

// CopyFile uses pread/pwrite outside Linux.
func CopyFile(params CopyFileParams) (CopyResult, error) {
	preallocate(params.DstFd, params.SrcSize)
	return copyReadWrite(params)
}
