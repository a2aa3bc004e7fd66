package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrPassInProgress is returned when a retry is requested before the
	// current pass reached Finished.
	ErrPassInProgress = errors.New("pass still in progress")
	// ErrNoFailedItems is returned when a retry is requested but nothing failed.
	ErrNoFailedItems = errors.New("no failed files to retry")
	// ErrVerifyMismatch is returned when a copied file's digest differs from its source.
	ErrVerifyMismatch = errors.New("checksum mismatch")
)

// ConfigurationError reports why an engine could not be constructed.
// No partial engine is ever returned alongside it.
type ConfigurationError struct {
	Op   string
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// CopyError records why a single item could not be copied.
type CopyError struct {
	Src string
	Dst string
	Err error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy %s -> %s: %v", e.Src, e.Dst, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// StateError reports an operation invoked in violation of its precondition.
type StateError struct {
	Op  string
	Err error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StateError) Unwrap() error { return e.Err }
