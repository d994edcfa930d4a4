package download

import (
	"errors"
	"fmt"
	"hash"

	"github.com/adamwoolhether/appinstall/client/throttle"
)

// Option defines optional settings for downloading files.
// WithChecksum enables checksum validation of the downloaded file.
// h is a hash.Hash instance (e.g. sha256.New()), and expected is the
// hex-encoded expected checksum string.
//
// WithProgress enables periodic download progress logging via the
// logger supplied to Handle. WithProgressFunc reports every chunk.
//
// WithStartFunc is called once with the reported length, -1 if unknown,
// before the first byte is copied.
//
// WithChunkSize sets the maximum bytes requested per read.
//
// WithRequireContentLength fails before any data is written when the
// server did not report a length.
//
// WithRateLimit caps throughput at bytesPerSec.
type Option func(*options) error

type options struct {
	checksum             *checksumVerifier
	progress             bool
	progressFn           ProgressFunc
	startFn              func(total int64)
	chunkSize            int
	requireContentLength bool
	limit                *throttle.Config
}

func WithChecksum(h hash.Hash, expected string) Option {
	return func(opts *options) error {
		if h == nil {
			return errors.New("hash must not be nil")
		}

		if expected == "" {
			return errors.New("expected checksum must not be empty")
		}

		opts.checksum = &checksumVerifier{hash: h, expected: expected}
		return nil
	}
}

func WithProgress() Option {
	return func(opts *options) error {
		opts.progress = true
		return nil
	}
}

func WithProgressFunc(fn ProgressFunc) Option {
	return func(opts *options) error {
		if fn == nil {
			return errors.New("progress func must not be nil")
		}
		opts.progressFn = fn
		return nil
	}
}

func WithStartFunc(fn func(total int64)) Option {
	return func(opts *options) error {
		if fn == nil {
			return errors.New("start func must not be nil")
		}
		opts.startFn = fn
		return nil
	}
}

func WithChunkSize(size int) Option {
	return func(opts *options) error {
		if size <= 0 {
			return fmt.Errorf("chunk size[%d] must be greater than zero", size)
		}
		opts.chunkSize = size
		return nil
	}
}

func WithRequireContentLength() Option {
	return func(opts *options) error {
		opts.requireContentLength = true
		return nil
	}
}

func WithRateLimit(bytesPerSec int64) Option {
	return func(opts *options) error {
		cfg, err := throttle.NewConfig(bytesPerSec)
		if err != nil {
			return err
		}
		opts.limit = &cfg
		return nil
	}
}
