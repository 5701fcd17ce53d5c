package normalize

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/btcquery/fault"
	"github.com/goodnatureofminers/btcquery/internal/source/binance"
	"github.com/goodnatureofminers/btcquery/internal/source/coingecko"
	"github.com/goodnatureofminers/btcquery/model"
)

// QuoteFromCoinGecko maps a simple-price payload into a quote.
func QuoteFromCoinGecko(raw *coingecko.SimplePrice, base, quote string, staleAfter time.Duration, now time.Time) (model.PriceQuote, error) {
	if raw == nil {
		return model.PriceQuote{}, fault.Newf(fault.MalformedResponse, coingecko.Source, "empty price payload")
	}
	price, err := decimal.NewFromString(raw.Price.String())
	if err != nil {
		return model.PriceQuote{}, fault.Newf(fault.MalformedResponse, coingecko.Source, "price %q: %v", raw.Price, err)
	}
	if price.IsNegative() {
		return model.PriceQuote{}, fault.Newf(fault.MalformedResponse, coingecko.Source, "negative price %s", price)
	}

	quoteTime := raw.UpdatedAt
	if quoteTime.IsZero() {
		quoteTime = now
	}
	return model.PriceQuote{
		Source: model.SourceCoinGecko,
		Base:   base,
		Quote:  quote,
		Price:  price,
		Time:   quoteTime,
		Stale:  isStale(quoteTime, staleAfter, now),
	}, nil
}

// QuoteFromBinanceTicker maps a ticker payload into a quote.
func QuoteFromBinanceTicker(raw *binance.TickerPrice, base, quote string, staleAfter time.Duration, now time.Time) (model.PriceQuote, error) {
	if raw == nil {
		return model.PriceQuote{}, fault.Newf(fault.MalformedResponse, binance.Source, "empty ticker payload")
	}
	price, err := decimal.NewFromString(raw.Price)
	if err != nil {
		return model.PriceQuote{}, fault.Newf(fault.MalformedResponse, binance.Source, "price %q: %v", raw.Price, err)
	}
	if price.IsNegative() {
		return model.PriceQuote{}, fault.Newf(fault.MalformedResponse, binance.Source, "negative price %s", price)
	}

	quoteTime := raw.ReceivedAt
	if quoteTime.IsZero() {
		quoteTime = now
	}
	return model.PriceQuote{
		Source: model.SourceBinance,
		Base:   base,
		Quote:  quote,
		Price:  price,
		Time:   quoteTime,
		Stale:  isStale(quoteTime, staleAfter, now),
	}, nil
}

// QuoteFromBinanceKline maps a candlestick close into a historical
// quote. Historical quotes are marked stale by construction.
func QuoteFromBinanceKline(raw binance.Kline, base, quote string) (model.PriceQuote, error) {
	price, err := decimal.NewFromString(raw.Close)
	if err != nil {
		return model.PriceQuote{}, fault.Newf(fault.MalformedResponse, binance.Source, "close price %q: %v", raw.Close, err)
	}
	return model.PriceQuote{
		Source: model.SourceBinance,
		Base:   base,
		Quote:  quote,
		Price:  price,
		Time:   raw.CloseTime,
		Stale:  true,
	}, nil
}

// QuoteFromCoinGeckoPoint maps a market-chart sample into a historical
// quote.
func QuoteFromCoinGeckoPoint(raw coingecko.PricePoint, base, quote string) (model.PriceQuote, error) {
	price, err := decimal.NewFromString(raw.Price.String())
	if err != nil {
		return model.PriceQuote{}, fault.Newf(fault.MalformedResponse, coingecko.Source, "price %q: %v", raw.Price, err)
	}
	return model.PriceQuote{
		Source: model.SourceCoinGecko,
		Base:   base,
		Quote:  quote,
		Price:  price,
		Time:   raw.Time,
		Stale:  true,
	}, nil
}

func isStale(quoteTime time.Time, staleAfter time.Duration, now time.Time) bool {
	if staleAfter <= 0 {
		return false
	}
	return now.Sub(quoteTime) > staleAfter
}
