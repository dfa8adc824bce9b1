// Package mail talks to the remote backup-email collaborator. Delivery
// itself is out of process; this is only the client side of the boundary.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saucerburger/pos-service/internal/order"
)

// ErrRemoteBackup wraps any failure of the remote email endpoint. Callers
// surface it to the user but never roll back local mutations; backup is
// best-effort and decoupled from the order flow it protects.
var ErrRemoteBackup = errors.New("remote backup failed")

// Mailer sends an order-list backup to a recipient address.
type Mailer interface {
	SendBackup(ctx context.Context, orders []order.Order, recipient string) error
}

// Client posts {orders, email} to the backup-email endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type backupRequest struct {
	Orders []order.Order `json:"orders"`
	Email  string        `json:"email"`
}

func (c *Client) SendBackup(ctx context.Context, orders []order.Order, recipient string) error {
	body, err := json.Marshal(backupRequest{Orders: orders, Email: recipient})
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrRemoteBackup, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteBackup, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteBackup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: endpoint returned %d: %s", ErrRemoteBackup, resp.StatusCode, detail)
	}
	return nil
}

// Noop is used when no email endpoint is configured; it logs and reports
// success so local backups keep working.
type Noop struct{}

func (Noop) SendBackup(_ context.Context, orders []order.Order, recipient string) error {
	log.Debug().Int("orders", len(orders)).Str("recipient", recipient).Msg("mail: no endpoint configured, skipping backup email")
	return nil
}
