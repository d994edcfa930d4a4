// Package throttle limits download bandwidth with a token-bucket
// algorithm from [golang.org/x/time/rate].
//
// # Usage
//
// Wrap a response body with [NewReader]:
//
//	body := throttle.NewReader(ctx, resp.Body, 512<<10, 64<<10) // 512KiB/s, 64KiB burst
//	_, err := io.Copy(dst, body)
//
// When the byte budget is exhausted, Read blocks until enough tokens
// are available or ctx is cancelled.
package throttle
