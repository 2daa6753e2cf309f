// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by provider clients.
package httputil

import (
	"context"
	"errors"
	"io"
	"net/http"
)

// ErrRateLimited reports an HTTP 429 from a provider. Within a resolution
// pass a rate-limited call is treated exactly like "no result": the caller
// demotes to the next strategy and never retries the same call.
var ErrRateLimited = errors.New("provider rate limited")

// Get issues a GET request with the given User-Agent and optional extra
// headers. A 429 response is drained and reported as ErrRateLimited. Any
// other response is returned as-is; status handling beyond 429 stays with
// the caller.
func Get(ctx context.Context, client *http.Client, url, userAgent string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, ErrRateLimited
	}
	return resp, nil
}
