// Package httputil provides the retry policy shared by registry clients.
//
// Transient failures (connection errors, 5xx responses, 429 rate limits) are
// wrapped in [RetryableError] by the caller; [Retry] re-runs the operation
// with exponential backoff and gives up immediately on any other error:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return client.fetch(ctx, name)
//	})
//
// Defaults: 3 attempts, 1 second initial delay, doubling after each failure,
// capped by the Retry-After hint of a rate-limited response when present.
package httputil
