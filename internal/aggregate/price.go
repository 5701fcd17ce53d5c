package aggregate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/btcquery/fault"
	"github.com/goodnatureofminers/btcquery/model"
)

// Price returns the current quote. With a preferred source configured
// the sources are tried in order and the first success wins. Without a
// preference both are queried concurrently and the quotes tie-broken:
// the fresher one wins unless the timestamps sit within the tolerance,
// in which case CoinGecko is taken as the reference source.
func (a *Aggregator) Price(ctx context.Context) (model.PriceQuote, error) {
	if ctx.Err() != nil {
		return model.PriceQuote{}, fault.FromContext(ctx, "")
	}

	if a.preferred != "" {
		primary, secondary := a.orderByPreference()
		return a.priceWithFallback(ctx, primary, secondary, func(ctx context.Context, s PriceSource) (model.PriceQuote, error) {
			return s.Quote(ctx)
		})
	}

	type outcome struct {
		quote model.PriceQuote
		err   error
	}
	var cg, bn outcome
	done := make(chan struct{})
	go func() {
		defer close(done)
		bn.quote, bn.err = a.binance.Quote(ctx)
	}()
	cg.quote, cg.err = a.coingecko.Quote(ctx)
	<-done

	switch {
	case cg.err == nil && bn.err == nil:
		return a.tieBreak(cg.quote, bn.quote), nil
	case cg.err == nil:
		a.logger.Warn("price source degraded",
			zap.String("source", string(model.SourceBinance)),
			zap.Error(bn.err))
		return cg.quote, nil
	case bn.err == nil:
		a.logger.Warn("price source degraded",
			zap.String("source", string(model.SourceCoinGecko)),
			zap.Error(cg.err))
		return bn.quote, nil
	default:
		a.logger.Warn("all price sources failed",
			zap.NamedError("coingecko", cg.err),
			zap.NamedError("binance", bn.err))
		return model.PriceQuote{}, cg.err
	}
}

// PriceAt returns a historical quote near the given instant. Binance
// klines are the primary source; the CoinGecko market chart takes over
// when Binance fails.
func (a *Aggregator) PriceAt(ctx context.Context, at time.Time) (model.PriceQuote, error) {
	if at.IsZero() {
		return model.PriceQuote{}, fault.Newf(fault.InvalidRequest, "", "zero timestamp")
	}
	if ctx.Err() != nil {
		return model.PriceQuote{}, fault.FromContext(ctx, "")
	}
	return a.priceWithFallback(ctx, a.binance, a.coingecko, func(ctx context.Context, s PriceSource) (model.PriceQuote, error) {
		return s.QuoteAt(ctx, at)
	})
}

// priceWithFallback tries the primary source and falls back exactly
// once. A cancelled context is not recoverable, so it short-circuits
// the fallback.
func (a *Aggregator) priceWithFallback(ctx context.Context, primary, secondary PriceSource, fetch func(context.Context, PriceSource) (model.PriceQuote, error)) (model.PriceQuote, error) {
	quote, err := fetch(ctx, primary)
	if err == nil {
		return quote, nil
	}
	if fault.Is(err, fault.Cancelled) {
		return model.PriceQuote{}, err
	}
	a.logger.Warn("price source degraded, falling back",
		zap.String("source", string(primary.Name())),
		zap.String("fallback", string(secondary.Name())),
		zap.Error(err))

	quote, ferr := fetch(ctx, secondary)
	if ferr != nil {
		a.logger.Warn("all price sources failed",
			zap.NamedError(string(primary.Name()), err),
			zap.NamedError(string(secondary.Name()), ferr))
		return model.PriceQuote{}, err
	}
	return quote, nil
}

func (a *Aggregator) orderByPreference() (primary, secondary PriceSource) {
	if a.preferred == model.SourceBinance {
		return a.binance, a.coingecko
	}
	return a.coingecko, a.binance
}

// tieBreak picks between two successful quotes: fresher timestamp
// wins; timestamps within the tolerance count as a tie and resolve to
// CoinGecko.
func (a *Aggregator) tieBreak(cg, bn model.PriceQuote) model.PriceQuote {
	gap := cg.Time.Sub(bn.Time)
	if gap < 0 {
		gap = -gap
	}
	if gap <= a.tieTolerance {
		return cg
	}
	if bn.Time.After(cg.Time) {
		return bn
	}
	return cg
}
