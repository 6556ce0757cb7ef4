package util

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrTooLarge = errors.New("response body too large")

// GetBytes fetches url and returns the body. Non-2xx responses are errors.
// A positive maxBytes rejects bodies longer than that.
func GetBytes(ctx context.Context, url string, timeout time.Duration, maxBytes int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}
	if maxBytes <= 0 {
		return io.ReadAll(resp.Body)
	}
	if resp.ContentLength > maxBytes {
		return nil, fmt.Errorf("get %s: %w (%d > %d)", url, ErrTooLarge, resp.ContentLength, maxBytes)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(body)) > maxBytes {
		return nil, fmt.Errorf("get %s: %w (over %d bytes)", url, ErrTooLarge, maxBytes)
	}
	return body, nil
}
