package install

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/adamwoolhether/appinstall/client"
)

// Download streams the release archive into dst, printing progress after
// every chunk. With Retries > 0 failed attempts are retried with
// exponential backoff after truncating dst. Failures are ErrNetworkFault.
func (in *Installer) Download(ctx context.Context, dst *os.File) (int64, error) {
	var n int64
	err := in.step(ctx, StepDownload, func(ctx context.Context) error {
		u, err := in.cfg.DownloadURL()
		if err != nil {
			return &Error{Step: StepDownload, Err: ErrNetworkFault, Cause: err}
		}

		in.logger.Info("download started", "url", u.String(), "path", dst.Name())

		attempt := 0
		op := func() error {
			attempt++
			if err := rewind(dst); err != nil {
				return backoff.Permanent(err)
			}

			req, err := in.client.Request(ctx, u, http.MethodGet, client.WithHeaders(map[string][]string{
				"Accept": {"application/octet-stream"},
			}))
			if err != nil {
				return backoff.Permanent(err)
			}

			n, err = in.client.Download(req, http.StatusOK, dst, in.downloadOptions()...)
			if err != nil {
				if !retryable(ctx, err) {
					return backoff.Permanent(err)
				}
				return err
			}

			return nil
		}

		notify := func(err error, wait time.Duration) {
			in.logger.Warn("download failed, retrying", "attempt", attempt, "wait", wait.String(), "error", err)
			in.console.Warn("Download failed (%v), retrying in %s", err, wait.Round(time.Millisecond))
		}

		b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(in.cfg.Retries)), ctx)
		if err := backoff.RetryNotify(op, b, notify); err != nil {
			in.console.endProgress()
			return &Error{Step: StepDownload, Err: ErrNetworkFault, Cause: err}
		}

		in.console.Success("Download completed: %d bytes", n)
		in.logger.Info("download completed", "bytes", n)

		return nil
	})

	return n, err
}

// downloadOptions are rebuilt per attempt so that the checksum starts fresh.
func (in *Installer) downloadOptions() []client.DownloadOption {
	opts := []client.DownloadOption{
		client.WithRequireContentLength(),
		client.WithStartFunc(func(total int64) {
			in.console.Status("Downloading: %s Bytes: %d", in.cfg.ArchiveName(), total)
		}),
		client.WithChunkSize(in.cfg.ChunkSize),
		client.WithProgressFunc(in.console.Progress),
		client.WithProgress(),
	}

	if in.cfg.SHA256 != "" {
		opts = append(opts, client.WithChecksum(sha256.New(), in.cfg.SHA256))
	}

	if in.cfg.LimitRate > 0 {
		opts = append(opts, client.WithRateLimit(in.cfg.LimitRate))
	}

	return opts
}

func rewind(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncating temp file: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking temp file: %w", err)
	}

	return nil
}

// retryable reports whether another attempt could succeed.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	if errors.Is(err, client.ErrMissingContentLength) {
		return false
	}

	var statusErr *client.UnexpectedStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError || statusErr.StatusCode == http.StatusTooManyRequests
	}

	return true
}
