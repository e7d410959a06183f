// Package mt5 talks to a MetaTrader 5 terminal through its HTTP/JSON
// bridge. The bridge wraps the terminal API; candle history, symbol
// discovery and login round-trip through it, live quotes arrive over a
// websocket.
package mt5

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/eNirmalraj/insight-trading-dashboard/market"
)

// Client is an HTTP client for a terminal bridge.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a bridge client. The token may be empty when the
// bridge runs without auth on localhost.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Health is the bridge status report.
type Health struct {
	Connected bool   `json:"connected"`
	Terminal  string `json:"terminal"`
	Version   string `json:"version"`
}

// Login carries terminal account credentials. All three fields are
// required; a client with no credentials reuses whatever session the
// terminal already has.
type Login struct {
	Account  int64  `json:"account"`
	Password string `json:"password"`
	Server   string `json:"server"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// apiCandle is the bridge's rate row. Time is unix seconds, volume is
// the tick volume the terminal reports.
type apiCandle struct {
	Time       int64   `json:"time"`
	Open       float64 `json:"open"`
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	Close      float64 `json:"close"`
	TickVolume int64   `json:"tick_volume"`
}

type candlesResponse struct {
	Symbol    string      `json:"symbol"`
	Timeframe string      `json:"timeframe"`
	Candles   []apiCandle `json:"candles"`
}

type apiSymbol struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Path        string  `json:"path"`
	Digits      int     `json:"digits"`
	Point       float64 `json:"point"`
	Visible     bool    `json:"visible"`
	TradeMode   int     `json:"trade_mode"`
}

type symbolsResponse struct {
	Symbols []apiSymbol `json:"symbols"`
}

// Health reports whether the bridge has a connected terminal behind it.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	if err := c.get(ctx, "/health", nil, &h); err != nil {
		return Health{}, err
	}
	return h, nil
}

// Login authenticates the terminal against a broker server.
func (c *Client) Login(ctx context.Context, login Login) error {
	var resp loginResponse
	if err := c.post(ctx, "/login", login, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("login rejected: %s", resp.Message)
	}
	return nil
}

// Candles returns up to count closed candles for the symbol, oldest
// first. An empty result is valid and means the terminal has no data
// for the pair.
func (c *Client) Candles(ctx context.Context, symbol string, timeframe market.Timeframe, count int) ([]market.Candle, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive")
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("timeframe", string(timeframe))
	params.Set("count", strconv.Itoa(count))

	var resp candlesResponse
	if err := c.get(ctx, "/candles", params, &resp); err != nil {
		return nil, err
	}

	candles := make([]market.Candle, 0, len(resp.Candles))
	for _, ac := range resp.Candles {
		candles = append(candles, market.Candle{
			Time:   time.Unix(ac.Time, 0).UTC(),
			Open:   ac.Open,
			High:   ac.High,
			Low:    ac.Low,
			Close:  ac.Close,
			Volume: float64(ac.TickVolume),
		})
	}
	return candles, nil
}

// Symbols lists every symbol the terminal knows about, visible or not.
func (c *Client) Symbols(ctx context.Context) ([]market.SymbolInfo, error) {
	var resp symbolsResponse
	if err := c.get(ctx, "/symbols", nil, &resp); err != nil {
		return nil, err
	}

	out := make([]market.SymbolInfo, 0, len(resp.Symbols))
	for _, s := range resp.Symbols {
		out = append(out, market.SymbolInfo{
			Name:        s.Name,
			Description: s.Description,
			Path:        s.Path,
			Digits:      s.Digits,
			Point:       s.Point,
			Visible:     s.Visible,
			TradeMode:   s.TradeMode,
		})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := sonic.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("bridge error (status %d): %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
