package document

import (
	"errors"
	"fmt"
)

// DecodeError wraps a failure of one decoding operation on one format.
type DecodeError struct {
	Format Format `json:"format"`
	Op     string `json:"operation"`
	Err    error  `json:"error"`
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s decode error in %s: %v", e.Format, e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Common error variables
var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyFile         = errors.New("file is empty")
	ErrFileTooLarge      = errors.New("file too large")
	ErrScannedDocument   = errors.New("document appears to be scanned: no extractable text")
)
