// Package volfeed keeps a live per-symbol 24h quote-volume table from an
// exchange miniTicker WebSocket stream. The execution estimator consults
// it when a request leaves market_volume_24h unset.
package volfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	drepo "SignalFuse/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Client implements a VolumeFeed backed by an exchange ticker stream.
type Client struct {
	websocketURL   string
	symbols        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	connMu    sync.RWMutex
	conn      *websocket.Conn
	connected bool

	mu      sync.RWMutex
	volumes map[string]float64 // upper-cased symbol → 24h quote volume USD
}

// New creates a volume feed client for the given symbols.
func New(websocketURL string, symbols []string, reconnectDelay, pingInterval time.Duration) drepo.VolumeFeed {
	return &Client{
		websocketURL:   websocketURL,
		symbols:        symbols,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		volumes:        make(map[string]float64),
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.websocketURL, nil)
	if err != nil {
		return fmt.Errorf("volfeed connect: %w", err)
	}
	c.connMu.Lock()
	c.conn = conn
	c.connected = true
	c.connMu.Unlock()
	return nil
}

// current returns the live connection, or nil when disconnected.
func (c *Client) current() *websocket.Conn {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	if !c.connected {
		return nil
	}
	return c.conn
}

// Subscribe subscribes to miniTicker streams for the configured symbols.
func (c *Client) Subscribe(ctx context.Context) error {
	conn := c.current()
	if conn == nil {
		return fmt.Errorf("volfeed not connected")
	}
	params := make([]string, 0, len(c.symbols))
	for _, s := range c.symbols {
		params = append(params, strings.ToLower(s)+"@miniTicker")
	}
	msg := map[string]interface{}{"method": "SUBSCRIBE", "params": params, "id": 1}
	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("volfeed subscribe: %w", err)
	}
	return nil
}

// miniTicker frame: s = symbol, q = 24h quote asset volume.
type tickerFrame struct {
	Symbol      string `json:"s"`
	QuoteVolume string `json:"q"`
}

// Run reads the stream until ctx is done, reconnecting after read
// failures. The returned channel reports terminal errors.
func (c *Client) Run(ctx context.Context) <-chan error {
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if conn := c.current(); conn != nil {
					_ = conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			conn := c.current()
			if conn == nil {
				errs <- fmt.Errorf("volfeed conn nil")
				return
			}
			_, b, err := conn.ReadMessage()
			if err != nil {
				if rerr := c.reconnect(ctx); rerr != nil {
					errs <- fmt.Errorf("volfeed read: %w", err)
					return
				}
				continue
			}
			c.ingest(b)
		}
	}()

	return errs
}

func (c *Client) ingest(b []byte) {
	var f tickerFrame
	if err := json.Unmarshal(b, &f); err != nil || f.Symbol == "" {
		return // non-ticker frame
	}
	v, err := strconv.ParseFloat(f.QuoteVolume, 64)
	if err != nil || v <= 0 {
		return
	}
	c.mu.Lock()
	c.volumes[strings.ToUpper(f.Symbol)] = v
	c.mu.Unlock()
}

func (c *Client) reconnect(ctx context.Context) error {
	c.connMu.Lock()
	c.connected = false
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.connMu.Unlock()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.reconnectDelay):
	}
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Volume24h returns the last observed 24h quote volume for symbol.
func (c *Client) Volume24h(symbol string) (float64, bool) {
	c.mu.RLock()
	v, ok := c.volumes[strings.ToUpper(symbol)]
	c.mu.RUnlock()
	return v, ok
}

func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected
}

func (c *Client) Close() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	c.connected = false
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
