package engine

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// HashFile computes the BLAKE3 hash of the file at path, returning the hex-encoded digest.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	digest, err := hashReader(f)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return digest, nil
}

func hashReader(r io.Reader) (string, error) {
	h := blake3.New()
	buf := make([]byte, 32*1024)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// verifyCopy compares the digest of srcPath with the first size bytes of
// the open destination file.
func verifyCopy(srcPath string, dst *os.File, size int64) error {
	srcHash, err := HashFile(srcPath)
	if err != nil {
		return err
	}
	dstHash, err := hashReader(io.NewSectionReader(dst, 0, size))
	if err != nil {
		return fmt.Errorf("hash %s: %w", dst.Name(), err)
	}
	if srcHash != dstHash {
		return fmt.Errorf("%w: src %s dst %s", ErrVerifyMismatch, srcHash[:16], dstHash[:16])
	}
	return nil
}
