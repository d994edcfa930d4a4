// Package download streams HTTP response bodies into a caller-owned
// writer in fixed-size chunks, with optional checksum validation,
// bandwidth limiting and per-chunk progress reporting.
//
// # Single Download
//
// [Handle] copies the body to dst one chunk at a time and reports the
// running total after every chunk:
//
//	n, err := download.Handle(ctx, resp.Body, resp.ContentLength, file, logger,
//		download.WithRequireContentLength(),
//		download.WithProgressFunc(func(p download.Progress) {
//			fmt.Printf("\r%10d  [%3.2f%%]", p.Transferred, p.Percent())
//		}),
//	)
//
// Most callers should use the higher-level
// [github.com/adamwoolhether/appinstall/client] package, which invokes
// Handle internally and re-exports the download options as
// client.With* functions.
package download
