// Package client provides the HTTP client used to fetch release
// archives, built on [net/http].
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Minute),
//		client.WithUserAgent("appinstall/1.0"),
//	)
//
// # Downloading Files
//
// Construct a [Request] and stream the response body into any
// [io.Writer], usually a temp file owned by the caller:
//
//	req, err := client.Request(ctx, u, http.MethodGet)
//	n, err := c.Download(req, http.StatusOK, file,
//		client.WithRequireContentLength(),
//		client.WithChunkSize(8<<10),
//		client.WithChecksum(sha256.New(), expectedHex),
//		client.WithProgressFunc(func(p client.Progress) { ... }),
//	)
//
// For lower-level control see the
// [github.com/adamwoolhether/appinstall/client/download] package.
package client
