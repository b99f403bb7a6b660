package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every lookup request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a lookup succeeds but yields no result.
	ErrNotFound = errors.New("location not found")

	// ErrUnavailable is returned by every call when network lookups are
	// disabled.
	ErrUnavailable = errors.New("network lookups unavailable")
)

// StatusError reports a non-2xx response from a lookup service.
type StatusError struct {
	Service string
	Code    int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status: %d", e.Service, e.Code)
}

type baseClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

func newBaseClient(baseURL, userAgent string, timeout time.Duration) *baseClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &baseClient{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

func (c *baseClient) getJSON(ctx context.Context, service, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return &StatusError{Service: service, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", service, err)
	}

	return nil
}
