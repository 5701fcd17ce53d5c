package aggregate

import (
	"context"
	"time"

	"github.com/goodnatureofminers/btcquery/fault"
	"github.com/goodnatureofminers/btcquery/internal/normalize"
	"github.com/goodnatureofminers/btcquery/internal/source/binance"
	"github.com/goodnatureofminers/btcquery/internal/source/coingecko"
	"github.com/goodnatureofminers/btcquery/model"
)

// The library quotes one pair. CoinGecko and Binance spell it
// differently.
const (
	pairBase  = "BTC"
	pairQuote = "USD"

	coinGeckoCoinID   = "bitcoin"
	coinGeckoCurrency = "usd"
	binanceSymbol     = "BTCUSDT"
	binanceInterval   = "1m"

	// historyWindow bounds the sample range fetched around a
	// historical instant.
	historyWindow = 30 * time.Minute
)

// coinGeckoAPI is the adapter surface the source wrapper consumes.
type coinGeckoAPI interface {
	SimplePrice(ctx context.Context, coinID, vsCurrency string) (*coingecko.SimplePrice, error)
	MarketChartRange(ctx context.Context, coinID, vsCurrency string, from, to time.Time) ([]coingecko.PricePoint, error)
}

// binanceAPI is the adapter surface the source wrapper consumes.
type binanceAPI interface {
	TickerPrice(ctx context.Context, symbol string) (*binance.TickerPrice, error)
	Klines(ctx context.Context, symbol, interval string, start, end time.Time, limit int) ([]binance.Kline, error)
}

// CoinGeckoSource adapts the CoinGecko client into a PriceSource.
type CoinGeckoSource struct {
	api        coinGeckoAPI
	staleAfter time.Duration
	now        func() time.Time
}

// NewCoinGeckoSource wraps a CoinGecko client. staleAfter marks quotes
// older than the window as stale; zero disables the check.
func NewCoinGeckoSource(api coinGeckoAPI, staleAfter time.Duration) *CoinGeckoSource {
	return &CoinGeckoSource{api: api, staleAfter: staleAfter, now: time.Now}
}

func (s *CoinGeckoSource) Name() model.PriceSource { return model.SourceCoinGecko }

// Quote fetches the current price.
func (s *CoinGeckoSource) Quote(ctx context.Context) (model.PriceQuote, error) {
	raw, err := s.api.SimplePrice(ctx, coinGeckoCoinID, coinGeckoCurrency)
	if err != nil {
		return model.PriceQuote{}, err
	}
	return normalize.QuoteFromCoinGecko(raw, pairBase, pairQuote, s.staleAfter, s.now().UTC())
}

// QuoteAt fetches the market-chart sample closest to the instant.
func (s *CoinGeckoSource) QuoteAt(ctx context.Context, at time.Time) (model.PriceQuote, error) {
	points, err := s.api.MarketChartRange(ctx, coinGeckoCoinID, coinGeckoCurrency, at.Add(-historyWindow), at.Add(historyWindow))
	if err != nil {
		return model.PriceQuote{}, err
	}
	if len(points) == 0 {
		return model.PriceQuote{}, fault.Newf(fault.MalformedResponse, coingecko.Source, "no price samples around %v", at)
	}

	closest := points[0]
	for _, p := range points[1:] {
		if timeGap(p.Time, at) < timeGap(closest.Time, at) {
			closest = p
		}
	}
	return normalize.QuoteFromCoinGeckoPoint(closest, pairBase, pairQuote)
}

// BinanceSource adapts the Binance client into a PriceSource.
type BinanceSource struct {
	api        binanceAPI
	staleAfter time.Duration
	now        func() time.Time
}

// NewBinanceSource wraps a Binance client.
func NewBinanceSource(api binanceAPI, staleAfter time.Duration) *BinanceSource {
	return &BinanceSource{api: api, staleAfter: staleAfter, now: time.Now}
}

func (s *BinanceSource) Name() model.PriceSource { return model.SourceBinance }

// Quote fetches the latest traded price.
func (s *BinanceSource) Quote(ctx context.Context) (model.PriceQuote, error) {
	raw, err := s.api.TickerPrice(ctx, binanceSymbol)
	if err != nil {
		return model.PriceQuote{}, err
	}
	return normalize.QuoteFromBinanceTicker(raw, pairBase, pairQuote, s.staleAfter, s.now().UTC())
}

// QuoteAt fetches the candlestick whose close sits nearest to the
// instant.
func (s *BinanceSource) QuoteAt(ctx context.Context, at time.Time) (model.PriceQuote, error) {
	klines, err := s.api.Klines(ctx, binanceSymbol, binanceInterval, at.Add(-historyWindow), at.Add(historyWindow), 60)
	if err != nil {
		return model.PriceQuote{}, err
	}
	if len(klines) == 0 {
		return model.PriceQuote{}, fault.Newf(fault.MalformedResponse, binance.Source, "no candlesticks around %v", at)
	}

	closest := klines[0]
	for _, k := range klines[1:] {
		if timeGap(k.CloseTime, at) < timeGap(closest.CloseTime, at) {
			closest = k
		}
	}
	return normalize.QuoteFromBinanceKline(closest, pairBase, pairQuote)
}

func timeGap(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}
