// Package coingecko adapts the CoinGecko REST API into raw, schema-
// validated payloads. Prices stay as json.Number end to end so no
// float conversion can drift before the normalizer builds a decimal.
package coingecko

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/ratelimit"

	"github.com/goodnatureofminers/btcquery/fault"
	"github.com/goodnatureofminers/btcquery/internal/source/restfault"
)

// Source names this adapter in fault values and metrics labels.
const Source = "coingecko"

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Metrics records metrics for price API calls.
type Metrics interface {
	Observe(operation string, err error, started time.Time)
}

// Config tunes the CoinGecko adapter.
type Config struct {
	BaseURL string
	// APIKey is the demo/pro key; empty runs against the keyless tier.
	APIKey  string
	Timeout time.Duration
	// RPS caps outbound request rate. The keyless tier tolerates
	// roughly 10-30 calls/minute, so the default stays conservative.
	RPS int
}

// Client is the CoinGecko source adapter.
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
		cfg.RPS = 1
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)
	if cfg.APIKey != "" {
		httpClient.SetHeader("x-cg-demo-api-key", cfg.APIKey)
	}

	return &Client{
		http:    httpClient,
		limiter: ratelimit.New(cfg.RPS),
		metrics: metrics,
	}
}

// SimplePrice is the validated /simple/price payload for one pair.
type SimplePrice struct {
	CoinID    string
	Currency  string
	Price     json.Number
	UpdatedAt time.Time
}

// PricePoint is one sample from a market chart range.
type PricePoint struct {
	Time  time.Time
	Price json.Number
}

// SimplePrice fetches the current price for one coin/currency pair.
func (c *Client) SimplePrice(ctx context.Context, coinID, vsCurrency string) (*SimplePrice, error) {
	if coinID == "" || vsCurrency == "" {
		return nil, fault.Newf(fault.InvalidRequest, "", "coin id and currency are required")
	}
	if ctx.Err() != nil {
		return nil, fault.FromContext(ctx, Source)
	}
	c.limiter.Take()

	var body map[string]map[string]json.Number
	started := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":                     coinID,
			"vs_currencies":           vsCurrency,
			"include_last_updated_at": "true",
		}).
		SetResult(&body).
		Get("/simple/price")
	c.metrics.Observe("simple_price", err, started)
	if err != nil {
		return nil, restfault.Transport(ctx, Source, err)
	}
	if err := restfault.Status(Source, resp.StatusCode()); err != nil {
		return nil, err
	}

	entry, ok := body[coinID]
	if !ok {
		return nil, fault.Newf(fault.MalformedResponse, Source, "coin %q missing from response", coinID)
	}
	price, ok := entry[vsCurrency]
	if !ok {
		return nil, fault.Newf(fault.MalformedResponse, Source, "currency %q missing from response", vsCurrency)
	}

	result := &SimplePrice{CoinID: coinID, Currency: vsCurrency, Price: price}
	if updated, ok := entry["last_updated_at"]; ok {
		secs, err := strconv.ParseInt(updated.String(), 10, 64)
		if err != nil {
			return nil, fault.Newf(fault.MalformedResponse, Source, "last_updated_at %q: %v", updated, err)
		}
		result.UpdatedAt = time.Unix(secs, 0).UTC()
	}
	return result, nil
}

// MarketChartRange fetches price samples between two instants.
func (c *Client) MarketChartRange(ctx context.Context, coinID, vsCurrency string, from, to time.Time) ([]PricePoint, error) {
	if coinID == "" || vsCurrency == "" {
		return nil, fault.Newf(fault.InvalidRequest, "", "coin id and currency are required")
	}
	if !to.After(from) {
		return nil, fault.Newf(fault.InvalidRequest, "", "range end %v not after start %v", to, from)
	}
	if ctx.Err() != nil {
		return nil, fault.FromContext(ctx, Source)
	}
	c.limiter.Take()

	var body struct {
		Prices [][]json.Number `json:"prices"`
	}
	started := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"vs_currency": vsCurrency,
			"from":        strconv.FormatInt(from.Unix(), 10),
			"to":          strconv.FormatInt(to.Unix(), 10),
		}).
		SetResult(&body).
		Get("/coins/" + coinID + "/market_chart/range")
	c.metrics.Observe("market_chart_range", err, started)
	if err != nil {
		return nil, restfault.Transport(ctx, Source, err)
	}
	if err := restfault.Status(Source, resp.StatusCode()); err != nil {
		return nil, err
	}

	points := make([]PricePoint, 0, len(body.Prices))
	for i, row := range body.Prices {
		if len(row) < 2 {
			return nil, fault.Newf(fault.MalformedResponse, Source, "price row %d has %d fields, want 2", i, len(row))
		}
		ms, err := strconv.ParseInt(row[0].String(), 10, 64)
		if err != nil {
			return nil, fault.Newf(fault.MalformedResponse, Source, "price row %d timestamp: %v", i, err)
		}
		points = append(points, PricePoint{
			Time:  time.UnixMilli(ms).UTC(),
			Price: row[1],
		})
	}
	return points, nil
}
