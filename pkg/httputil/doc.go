// Package httputil provides the HTTP plumbing used to fetch blueprint strings
// from remote sources.
//
// # Retry
//
// [Retry] runs an operation with exponential backoff. Only errors wrapped in
// [RetryableError] trigger another attempt; everything else is returned at
// once:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    body, err = httputil.Get(ctx, client, url, limit)
//	    return err
//	})
//
// # Fetching
//
// [Get] performs a GET and classifies failures: network errors, 429 and 5xx
// responses are retryable, other non-2xx statuses are not. Response bodies
// are capped at a caller-supplied limit.
package httputil
