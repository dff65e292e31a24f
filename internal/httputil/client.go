// Package httputil provides a security-hardened HTTP client and input sanitization utilities.
package httputil

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/121.0"

// maxBodySize caps every response body read through this package.
const maxBodySize = 10 * 1024 * 1024

// NetworkError reports a transport failure or an unexpected HTTP status.
// It is returned unchanged to the caller; nothing in this package retries.
type NetworkError struct {
	URL        string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NewClient creates a hardened HTTP client with secure defaults.
// A zero timeout falls back to 30 seconds.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			DisableCompression:  false,
			MaxIdleConnsPerHost: 5,
		},
	}
}

// Get performs a GET request with browser-like headers. Non-200 responses are
// closed and reported as a *NetworkError; on success the caller owns the body.
// Only https URLs are fetched.
func Get(ctx context.Context, client *http.Client, url string, accept string) (*http.Response, error) {
	return get(ctx, client, url, accept, ValidateURL)
}

// GetMedia is Get for CDN media URLs, which may be plain http.
func GetMedia(ctx context.Context, client *http.Client, url string, accept string) (*http.Response, error) {
	return get(ctx, client, url, accept, ValidateMediaURL)
}

func get(ctx context.Context, client *http.Client, url, accept string, validate func(string) error) (*http.Response, error) {
	if err := validate(url); err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if accept == "" {
		accept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &NetworkError{URL: url, StatusCode: resp.StatusCode}
	}

	return resp, nil
}

// GetJSON performs a GET request with JSON accept header and returns the body.
func GetJSON(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	resp, err := Get(ctx, client, url, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("reading response: %w", err)}
	}

	return body, nil
}

// LimitBody wraps a response body with the package size cap.
func LimitBody(r io.Reader) io.Reader {
	return io.LimitReader(r, maxBodySize)
}
