package mt5

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

// Quote is one bid/ask tick from the bridge stream.
type Quote struct {
	Symbol string
	Bid    float64
	Ask    float64
	Time   time.Time
}

// Mid returns the quote midpoint.
func (q Quote) Mid() float64 {
	return (q.Bid + q.Ask) / 2
}

type wsQuote struct {
	Symbol  string  `json:"symbol"`
	Bid     float64 `json:"bid"`
	Ask     float64 `json:"ask"`
	TimeMsc int64   `json:"time_msc"`
}

type subscribeRequest struct {
	Op      string   `json:"op"`
	Symbols []string `json:"symbols"`
}

// StreamQuotes subscribes to live ticks for symbols and calls handler
// for each quote until ctx is canceled or the connection drops. One
// connection per call; the caller owns reconnect policy.
func (c *Client) StreamQuotes(ctx context.Context, symbols []string, handler func(Quote)) error {
	if len(symbols) == 0 {
		return fmt.Errorf("at least one symbol is required")
	}

	target, err := wsURL(c.baseURL)
	if err != nil {
		return err
	}

	var header http.Header
	if c.token != "" {
		header = http.Header{"Authorization": []string{"Bearer " + c.token}}
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, header)
	if err != nil {
		return fmt.Errorf("dial stream: %w", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(subscribeRequest{Op: "subscribe", Symbols: symbols}); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	// Closing the connection is the only way to unblock ReadMessage
	// when the caller cancels.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read stream: %w", err)
		}

		// Acks and heartbeats carry no symbol.
		var frame wsQuote
		if err := sonic.Unmarshal(msg, &frame); err != nil {
			continue
		}
		if frame.Symbol == "" {
			continue
		}

		handler(Quote{
			Symbol: frame.Symbol,
			Bid:    frame.Bid,
			Ask:    frame.Ask,
			Time:   time.UnixMilli(frame.TimeMsc).UTC(),
		})
	}
}

// wsURL rewrites the bridge base URL for the websocket endpoint.
func wsURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/quotes"
	return u.String(), nil
}
