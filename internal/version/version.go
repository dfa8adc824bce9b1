// Package version implements the client side of the remote version gate.
package version

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUpdateRequired means the gate rejected this client version; order
// submission must be blocked until the app is updated.
var ErrUpdateRequired = errors.New("a mandatory update is required")

// Gate answers whether this client version may keep submitting orders.
type Gate interface {
	Check(ctx context.Context) error
}

// Client calls the remote version-check endpoint with the app version tag.
type Client struct {
	endpoint string
	version  string
	http     *http.Client
}

func NewClient(endpoint, appVersion string) *Client {
	return &Client{
		endpoint: endpoint,
		version:  appVersion,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("version: failed to build request: %w", err)
	}
	req.Header.Set("X-App-Version", c.version)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("version: check request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return nil
	case resp.StatusCode == http.StatusUpgradeRequired:
		return ErrUpdateRequired
	default:
		return fmt.Errorf("version: unexpected response %d from version gate", resp.StatusCode)
	}
}

// Open is the gate used when no endpoint is configured: every version
// passes.
type Open struct{}

func (Open) Check(context.Context) error {
	return nil
}
