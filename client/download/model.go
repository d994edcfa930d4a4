package download

import (
	"errors"
	"fmt"
)

var (
	ErrContentLengthMismatch = errors.New("content length mismatch")
	ErrMissingContentLength  = errors.New("missing content length")
	ErrChecksumMismatch      = errors.New("checksum mismatch")
	ErrDownloadCancelled     = errors.New("download cancelled")
)

type Error struct {
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Progress is a snapshot taken right after a chunk was written.
// Total is -1 when the server did not report a length.
type Progress struct {
	Transferred int64
	Total       int64
}

// Percent returns Transferred as a percentage of Total, or 0 when Total is unknown.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}

	return float64(p.Transferred) * 100 / float64(p.Total)
}

// ProgressFunc receives a Progress after every chunk.
type ProgressFunc func(Progress)
