package throttle

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/time/rate"
)

// maxBurst bounds a single read so that a high limit still yields
// progress at a reasonable granularity.
const maxBurst = 64 << 10

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrWaitingFailed = errors.New("limiter waiting failed")
)

// Config defines the throttler's
// bytes per second and burst size.
type Config struct {
	BytesPerSec int64
	Burst       int
}

// NewConfig derives a burst from bytesPerSec, capped at 64KiB.
func NewConfig(bytesPerSec int64) (Config, error) {
	if bytesPerSec <= 0 {
		return Config{}, fmt.Errorf("bytesPerSec[%d] %w", bytesPerSec, ErrMustNotBeZero)
	}

	return Config{BytesPerSec: bytesPerSec, Burst: int(min(bytesPerSec, maxBurst))}, nil
}

// reader is an io.Reader, using the time/rate token
// bucket limiter to restrict read throughput.
type reader struct {
	ctx     context.Context
	limiter *rate.Limiter
	burst   int
	r       io.Reader
}

// NewReader returns an io.Reader that never yields more than burst bytes
// per Read and waits for a token per byte read. Non-positive values
// disable throttling and r is returned as is.
func NewReader(ctx context.Context, r io.Reader, bytesPerSec int64, burst int) io.Reader {
	if bytesPerSec <= 0 || burst <= 0 {
		return r
	}

	return &reader{
		ctx:     ctx,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), burst),
		burst:   burst,
		r:       r,
	}
}

func (t *reader) Read(p []byte) (int, error) {
	if len(p) > t.burst {
		p = p[:t.burst]
	}

	n, err := t.r.Read(p)
	if n > 0 {
		if werr := t.limiter.WaitN(t.ctx, n); werr != nil {
			return n, fmt.Errorf("%w: %w", ErrWaitingFailed, werr)
		}
	}

	return n, err
}
