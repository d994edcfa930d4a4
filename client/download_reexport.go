package client

import (
	"hash"

	"github.com/adamwoolhether/appinstall/client/download"
)

// ————————————————————————————————————————————————————————————————————
// Type aliases – re-export user-facing types from [download].
// ————————————————————————————————————————————————————————————————————

type (
	// DownloadOption configures a single [Client.Download] call.
	DownloadOption = download.Option

	// DownloadError wraps a sentinel error with additional detail.
	DownloadError = download.Error

	// Progress is a snapshot reported after every written chunk.
	Progress = download.Progress
)

// ————————————————————————————————————————————————————————————————————
// Sentinel errors
// ————————————————————————————————————————————————————————————————————

var (
	// ErrContentLengthMismatch indicates the byte count did not match Content-Length.
	ErrContentLengthMismatch = download.ErrContentLengthMismatch

	// ErrMissingContentLength indicates the server did not report a length.
	ErrMissingContentLength = download.ErrMissingContentLength

	// ErrChecksumMismatch indicates the file checksum did not match the expected value.
	ErrChecksumMismatch = download.ErrChecksumMismatch

	// ErrDownloadCancelled indicates the download was cancelled via context.
	ErrDownloadCancelled = download.ErrDownloadCancelled
)

// ————————————————————————————————————————————————————————————————————
// Download option forwarding functions
// ————————————————————————————————————————————————————————————————————

// WithChecksum enables checksum validation of the downloaded file.
// h is a [hash.Hash] instance (e.g. sha256.New()), and expected is the
// hex-encoded expected checksum string.
func WithChecksum(h hash.Hash, expected string) DownloadOption {
	return download.WithChecksum(h, expected)
}

// WithProgress enables periodic download progress logging.
func WithProgress() DownloadOption { return download.WithProgress() }

// WithProgressFunc calls fn after every chunk written.
func WithProgressFunc(fn func(Progress)) DownloadOption { return download.WithProgressFunc(fn) }

// WithStartFunc calls fn with the reported length before copying begins.
func WithStartFunc(fn func(total int64)) DownloadOption { return download.WithStartFunc(fn) }

// WithChunkSize sets the maximum number of bytes read per chunk.
func WithChunkSize(size int) DownloadOption { return download.WithChunkSize(size) }

// WithRequireContentLength rejects responses without a Content-Length.
func WithRequireContentLength() DownloadOption { return download.WithRequireContentLength() }

// WithRateLimit caps download throughput at bytesPerSec.
func WithRateLimit(bytesPerSec int64) DownloadOption { return download.WithRateLimit(bytesPerSec) }
