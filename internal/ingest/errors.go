package ingest

import (
	"errors"
	"fmt"
)

var ErrIsDir = errors.New("is a directory")

// ReadError is returned when an input cannot be opened or read. Malformed
// lines never produce one.
type ReadError struct {
	Path string
	Op   string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
