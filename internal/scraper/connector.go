package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gorilla/websocket"

	"pool-occupancy-backend/config"
	"pool-occupancy-backend/internal/model"
)

// Ingestion failure taxonomy. Callers distinguish cases with errors.Is.
var (
	ErrUpgrade = errors.New("websocket upgrade failed")
	ErrTimeout = errors.New("timed out waiting for snapshot message")
	ErrParse   = errors.New("malformed snapshot payload")
	ErrChannel = errors.New("websocket channel error")
)

// rawReading is a single entry of the upstream snapshot payload.
type rawReading struct {
	ID       string  `json:"id"`
	Capacity float64 `json:"capacity"`
	Fill     float64 `json:"fill"`
}

// Connector fetches one occupancy snapshot per call over a short-lived
// websocket channel. The upstream expects the client to connect, pause
// briefly, send a literal trigger command, then read exactly one message
// containing readings for every facility it knows about.
type Connector struct {
	url            string
	command        string
	handshakeDelay time.Duration
	readTimeout    time.Duration
	dialer         *websocket.Dialer
}

// NewConnector creates a connector for the configured upstream feed.
func NewConnector(cfg *config.ScraperConfig) *Connector {
	return &Connector{
		url:            cfg.URL,
		command:        cfg.Command,
		handshakeDelay: cfg.HandshakeDelay,
		readTimeout:    cfg.ReadTimeout,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// FetchSnapshot performs one request/response round trip and returns the
// normalized records for all tracked facilities, sharing a single capture
// timestamp. Any failure yields zero records; partial results are never
// returned because the upstream replies with one batch message.
func (c *Connector) FetchSnapshot(ctx context.Context) ([]model.OccupancyRecord, error) {
	conn, resp, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("%w: status %d: %v", ErrUpgrade, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpgrade, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// The feed drops trigger commands sent immediately after the upgrade.
	select {
	case <-time.After(c.handshakeDelay):
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrChannel, ctx.Err())
	}

	if err := conn.SetWriteDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChannel, err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(c.command)); err != nil {
		return nil, fmt.Errorf("%w: failed to send trigger command: %v", ErrChannel, err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChannel, err)
	}
	_, payload, err := conn.ReadMessage()
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, c.readTimeout)
		}
		return nil, fmt.Errorf("%w: %v", ErrChannel, err)
	}
	capturedAt := time.Now().UTC()

	var readings []rawReading
	if err := json.Unmarshal(payload, &readings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return normalize(readings, capturedAt), nil
}
