package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/adamwoolhether/appinstall/client/throttle"
)

// DefaultChunkSize is the read size used when WithChunkSize is not given.
const DefaultChunkSize = 8 << 10

// Handle streams body to dst, reading at most the configured chunk size
// per call and writing every chunk before the next read. It returns the
// number of bytes written. dst is never closed.
func Handle(ctx context.Context, body io.Reader, contentLength int64, dst io.Writer, logger *slog.Logger, optFns ...Option) (int64, error) {
	opts := options{chunkSize: DefaultChunkSize}
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return 0, fmt.Errorf("applying option: %w", err)
		}
	}

	if opts.requireContentLength && contentLength < 0 {
		return 0, &Error{
			Err:    ErrMissingContentLength,
			Detail: "server did not report Content-Length",
		}
	}

	if opts.startFn != nil {
		opts.startFn(contentLength)
	}

	body = &contextReader{ctx: ctx, r: body}
	if opts.limit != nil {
		body = throttle.NewReader(ctx, body, opts.limit.BytesPerSec, opts.limit.Burst)
	}

	writer := dst
	if opts.checksum != nil {
		writer = io.MultiWriter(writer, opts.checksum)
	}

	if opts.progress || opts.progressFn != nil {
		writer = &progressWriter{
			w:         writer,
			logger:    logger,
			logEvery:  opts.progress,
			fn:        opts.progressFn,
			total:     contentLength,
			startTime: time.Now(),
		}
	}

	n, err := copyChunks(writer, body, opts.chunkSize)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return n, fmt.Errorf("%w: %w", ErrDownloadCancelled, err)
		}

		return n, fmt.Errorf("copying file body: %w", err)
	}

	if contentLength >= 0 && n != contentLength {
		return n, &Error{
			Err:    ErrContentLengthMismatch,
			Detail: fmt.Sprintf("expected %d bytes, got %d", contentLength, n),
		}
	}

	if err := opts.checksum.Verify(); err != nil {
		return n, err
	}

	return n, nil
}

// copyChunks is io.CopyBuffer without the ReaderFrom/WriterTo shortcuts,
// which would otherwise let *os.File pick its own read sizes.
func copyChunks(dst io.Writer, src io.Reader, size int) (int64, error) {
	buf := make([]byte, size)

	var written int64
	for {
		nr, rerr := src.Read(buf)
		if nr > 0 {
			nw, werr := dst.Write(buf[:nr])
			if nw < 0 || nw > nr {
				nw = 0
				if werr == nil {
					werr = errors.New("invalid write result")
				}
			}
			written += int64(nw)
			if werr != nil {
				return written, werr
			}
			if nw != nr {
				return written, io.ErrShortWrite
			}
		}

		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return written, nil
			}
			return written, rerr
		}
	}
}

// contextReader stops reading once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}

	return cr.r.Read(p)
}
