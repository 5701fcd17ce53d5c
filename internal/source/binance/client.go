// Package binance adapts the Binance REST API into raw, schema-
// validated payloads. Binance serves prices as JSON strings, which the
// normalizer parses straight into decimals.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/ratelimit"

	"github.com/goodnatureofminers/btcquery/fault"
	"github.com/goodnatureofminers/btcquery/internal/source/restfault"
)

// Source names this adapter in fault values and metrics labels.
const Source = "binance"

const defaultBaseURL = "https://api.binance.com"

// Metrics records metrics for price API calls.
type Metrics interface {
	Observe(operation string, err error, started time.Time)
}

// Config tunes the Binance adapter.
type Config struct {
	BaseURL string
	Timeout time.Duration
	RPS     int
}

// Client is the Binance source adapter.
type Client struct {
	http    *resty.Client
	limiter ratelimit.Limiter
	metrics Metrics
}

// New constructs the adapter.
func New(cfg Config, metrics Metrics) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 5
	}

	return &Client{
		http:    resty.New().SetBaseURL(cfg.BaseURL).SetTimeout(cfg.Timeout),
		limiter: ratelimit.New(cfg.RPS),
		metrics: metrics,
	}
}

// TickerPrice is the validated /api/v3/ticker/price payload.
// ReceivedAt is stamped locally since the endpoint carries no
// timestamp of its own.
type TickerPrice struct {
	Symbol     string    `json:"symbol"`
	Price      string    `json:"price"`
	ReceivedAt time.Time `json:"-"`
}

// Kline is one validated candlestick row.
type Kline struct {
	OpenTime  time.Time
	Close     string
	CloseTime time.Time
}

// TickerPrice fetches the latest traded price for a symbol.
func (c *Client) TickerPrice(ctx context.Context, symbol string) (*TickerPrice, error) {
	if symbol == "" {
		return nil, fault.Newf(fault.InvalidRequest, "", "symbol is required")
	}
	if ctx.Err() != nil {
		return nil, fault.FromContext(ctx, Source)
	}
	c.limiter.Take()

	var body TickerPrice
	started := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("symbol", symbol).
		SetResult(&body).
		Get("/api/v3/ticker/price")
	c.metrics.Observe("ticker_price", err, started)
	if err != nil {
		return nil, restfault.Transport(ctx, Source, err)
	}
	if err := restfault.Status(Source, resp.StatusCode()); err != nil {
		return nil, err
	}

	if body.Symbol == "" || body.Price == "" {
		return nil, fault.Newf(fault.MalformedResponse, Source, "ticker response missing symbol or price")
	}
	body.ReceivedAt = time.Now().UTC()
	return &body, nil
}

// Klines fetches candlesticks around a time range. Rows arrive as
// heterogeneous JSON arrays, so each element is validated by position.
func (c *Client) Klines(ctx context.Context, symbol, interval string, start, end time.Time, limit int) ([]Kline, error) {
	if symbol == "" || interval == "" {
		return nil, fault.Newf(fault.InvalidRequest, "", "symbol and interval are required")
	}
	if !end.After(start) {
		return nil, fault.Newf(fault.InvalidRequest, "", "range end %v not after start %v", end, start)
	}
	if limit <= 0 {
		limit = 2
	}
	if ctx.Err() != nil {
		return nil, fault.FromContext(ctx, Source)
	}
	c.limiter.Take()

	var rows [][]json.RawMessage
	started := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol":    symbol,
			"interval":  interval,
			"startTime": strconv.FormatInt(start.UnixMilli(), 10),
			"endTime":   strconv.FormatInt(end.UnixMilli(), 10),
			"limit":     strconv.Itoa(limit),
		}).
		SetResult(&rows).
		Get("/api/v3/klines")
	c.metrics.Observe("klines", err, started)
	if err != nil {
		return nil, restfault.Transport(ctx, Source, err)
	}
	if err := restfault.Status(Source, resp.StatusCode()); err != nil {
		return nil, err
	}

	klines := make([]Kline, 0, len(rows))
	for i, row := range rows {
		kline, err := parseKline(row)
		if err != nil {
			return nil, fault.Newf(fault.MalformedResponse, Source, "kline row %d: %v", i, err)
		}
		klines = append(klines, kline)
	}
	return klines, nil
}

// parseKline validates the positional kline layout:
// [openTime, open, high, low, close, volume, closeTime, ...].
func parseKline(row []json.RawMessage) (Kline, error) {
	if len(row) < 7 {
		return Kline{}, fmt.Errorf("%d fields, want at least 7", len(row))
	}
	var openMs, closeMs int64
	if err := json.Unmarshal(row[0], &openMs); err != nil {
		return Kline{}, err
	}
	var closePrice string
	if err := json.Unmarshal(row[4], &closePrice); err != nil {
		return Kline{}, err
	}
	if err := json.Unmarshal(row[6], &closeMs); err != nil {
		return Kline{}, err
	}
	return Kline{
		OpenTime:  time.UnixMilli(openMs).UTC(),
		Close:     closePrice,
		CloseTime: time.UnixMilli(closeMs).UTC(),
	}, nil
}
