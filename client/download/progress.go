package download

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// progressWriter is an io.Writer that hands a Progress to fn after
// every write and, when logEvery is set, logs at most once per second.
type progressWriter struct {
	w           io.Writer
	logger      *slog.Logger
	logEvery    bool
	fn          ProgressFunc
	transferred int64
	total       int64
	startTime   time.Time
	lastLog     time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.w.Write(p)
	pw.transferred += int64(n)

	if pw.fn != nil && n > 0 {
		pw.fn(Progress{Transferred: pw.transferred, Total: pw.total})
	}

	if !pw.logEvery || pw.logger == nil {
		return n, err
	}

	if time.Since(pw.lastLog) >= time.Second {
		pw.lastLog = time.Now()
		pw.log("downloading")
	}

	if pw.total >= 0 && pw.transferred == pw.total {
		pw.log("download complete")
	}

	return n, err
}

func (pw *progressWriter) log(msg string) {
	elapsed := time.Since(pw.startTime)
	attrs := []any{
		"progress", fmt.Sprintf("%.1f%%", Progress{Transferred: pw.transferred, Total: pw.total}.Percent()),
		"elapsed", elapsed.Round(time.Millisecond),
		"transferred", pw.transferred,
		"total", pw.total,
		"mbps", fmt.Sprintf("%.2f", float64(pw.transferred)/elapsed.Seconds()/(1024*1024)),
	}
	pw.logger.Debug(msg, attrs...)
}
