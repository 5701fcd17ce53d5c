// Package btcquery is a query client for a Bitcoin Core node combined
// with market data from CoinGecko and Binance. Chain data comes from
// the node over JSON-RPC; prices come from whichever market API is
// healthy, with a single fallback hop between them. Every operation
// takes a context and returns typed failures from the fault package.
package btcquery

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/btcquery/internal/aggregate"
	"github.com/goodnatureofminers/btcquery/internal/metrics"
	"github.com/goodnatureofminers/btcquery/internal/normalize"
	"github.com/goodnatureofminers/btcquery/internal/source/binance"
	"github.com/goodnatureofminers/btcquery/internal/source/bitcoinrpc"
	"github.com/goodnatureofminers/btcquery/internal/source/coingecko"
	"github.com/goodnatureofminers/btcquery/model"
)

// Config configures a Client. NodeURL is the only required field.
type Config struct {
	// NodeURL is the Bitcoin Core JSON-RPC endpoint, e.g.
	// http://127.0.0.1:8332.
	NodeURL  string
	NodeUser string
	NodePass string
	// Network selects the chain parameters used for address
	// derivation: mainnet, testnet3, regtest or signet. Empty means
	// mainnet.
	Network string

	// CoinGeckoAPIKey enables the keyed CoinGecko tier. Optional.
	CoinGeckoAPIKey string
	// CoinGeckoBaseURL and BinanceBaseURL override the public API
	// endpoints, mainly for tests and proxies.
	CoinGeckoBaseURL string
	BinanceBaseURL   string

	// PreferredPriceSource pins which market API is asked first.
	// Empty queries both and tie-breaks by quote freshness.
	PreferredPriceSource model.PriceSource
	// TieTolerance is the timestamp gap under which two price quotes
	// count as simultaneous. Defaults to 30s.
	TieTolerance time.Duration
	// StaleAfter marks price quotes older than the window as stale.
	// Zero disables the check.
	StaleAfter time.Duration
	// PriceRateLimit caps requests per second to each price API.
	PriceRateLimit int

	// RequestTimeout bounds each outbound price API request.
	RequestTimeout time.Duration
	// MaxRetries and RetryBackoff tune the node adapter's retry of
	// transient failures.
	MaxRetries   int
	RetryBackoff time.Duration

	Logger *zap.Logger
}

// Client is the facade over the node and price sources. It is safe for
// concurrent use.
type Client struct {
	rpc      *rpcclient.Client
	agg      *aggregate.Aggregator
	logger   *zap.Logger
	priceRPS int
}

// New constructs a Client. The node connection is established lazily
// on the first query.
func New(cfg Config) (*Client, error) {
	host, err := nodeHost(cfg.NodeURL)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PriceRateLimit <= 0 {
		cfg.PriceRateLimit = 1
	}

	norm, err := normalize.New(cfg.Network)
	if err != nil {
		return nil, err
	}

	rpc, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         host,
		User:         cfg.NodeUser,
		Pass:         cfg.NodePass,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("init node rpc client: %w", err)
	}

	retry := bitcoinrpc.DefaultConfig()
	if cfg.MaxRetries > 0 {
		retry.MaxRetries = cfg.MaxRetries
	}
	if cfg.RetryBackoff > 0 {
		retry.Backoff = cfg.RetryBackoff
	}
	node := bitcoinrpc.NewClient(rpc, metrics.NewRPCClient(cfg.Network), retry)

	cg := coingecko.New(coingecko.Config{
		BaseURL: cfg.CoinGeckoBaseURL,
		APIKey:  cfg.CoinGeckoAPIKey,
		Timeout: cfg.RequestTimeout,
		RPS:     cfg.PriceRateLimit,
	}, metrics.NewPriceClient(coingecko.Source))
	bn := binance.New(binance.Config{
		BaseURL: cfg.BinanceBaseURL,
		Timeout: cfg.RequestTimeout,
		RPS:     cfg.PriceRateLimit,
	}, metrics.NewPriceClient(binance.Source))

	agg := aggregate.New(
		node,
		norm,
		aggregate.NewCoinGeckoSource(cg, cfg.StaleAfter),
		aggregate.NewBinanceSource(bn, cfg.StaleAfter),
		aggregate.Config{
			Preferred:    cfg.PreferredPriceSource,
			TieTolerance: cfg.TieTolerance,
		},
		logger,
	)

	return &Client{
		rpc:      rpc,
		agg:      agg,
		logger:   logger,
		priceRPS: cfg.PriceRateLimit,
	}, nil
}

// Close shuts down the node connection and waits for in-flight
// requests to drain.
func (c *Client) Close() {
	c.rpc.Shutdown()
	c.rpc.WaitForShutdown()
}

func nodeHost(rawURL string) (string, error) {
	if rawURL == "" {
		return "", errors.New("node url is required")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse node url: %w", err)
	}
	if parsed.Scheme != "http" {
		return "", fmt.Errorf("node url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", errors.New("node url missing host")
	}
	return parsed.Host, nil
}
