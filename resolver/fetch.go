// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolver

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"
)

// maxBodySize limits how much of a response body we're willing to slurp.
const maxBodySize = 4 << 20

// Fetcher fetches the resource at the specified URL, returning the HTTP status
// code and the response body. Fetchers return an error only for transport-level
// failures, but not for non-2xx status codes.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (status int, body []byte, err error)
}

// HTTPFetcher is the default [Fetcher] using a net/http client.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a new HTTPFetcher with the specified per-request
// timeout. If insecure is true, the fetcher does not verify the server
// certificates of HTTPS endpoints.
func NewHTTPFetcher(timeout time.Duration, insecure bool) *HTTPFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: insecure, //nolint:gosec // explicit opt-in only
	}
	return &HTTPFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// Fetch GETs the specified URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// CloseIdleConnections releases idle keep-alive connections.
func (f *HTTPFetcher) CloseIdleConnections() {
	f.client.CloseIdleConnections()
}
