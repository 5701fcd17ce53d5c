package btcquery

import (
	"context"
	"iter"
	"time"

	"github.com/goodnatureofminers/btcquery/fault"
	"github.com/goodnatureofminers/btcquery/model"
	"github.com/goodnatureofminers/btcquery/pkg/sampler"
)

// Blocks iterates blocks from start to stop inclusive, stepping by
// step. A negative step walks the chain backwards. Iteration stops at
// the first failure, yielding the error as the final element.
//
//	for block, err := range client.Blocks(ctx, 0, 9, 1) {
//		if err != nil { ... }
//	}
func (c *Client) Blocks(ctx context.Context, start, stop, step int64, opts ...QueryOption) iter.Seq2[model.Block, error] {
	resolve := applyOptions(opts).resolveInputs
	return func(yield func(model.Block, error) bool) {
		if step == 0 {
			yield(model.Block{}, fault.Newf(fault.InvalidRequest, "", "step must not be zero"))
			return
		}
		if (step > 0 && start > stop) || (step < 0 && start < stop) {
			yield(model.Block{}, fault.Newf(fault.InvalidRequest, "", "range %d..%d unreachable with step %d", start, stop, step))
			return
		}

		for height := start; (step > 0 && height <= stop) || (step < 0 && height >= stop); height += step {
			block, err := c.agg.Block(ctx, height, resolve)
			if err != nil {
				yield(model.Block{}, err)
				return
			}
			if !yield(block, nil) {
				return
			}
		}
	}
}

// MonitorPrice starts a background loop that fetches the current price
// on the given interval and hands each quote to fn. Source failures
// are logged and sampling continues. The returned sampler must be
// stopped by the caller; cancelling ctx also ends the loop.
func (c *Client) MonitorPrice(ctx context.Context, interval time.Duration, fn func(model.PriceQuote)) (*sampler.Sampler[model.PriceQuote], error) {
	if interval <= 0 {
		return nil, fault.Newf(fault.InvalidRequest, "", "interval %v, want positive", interval)
	}
	if fn == nil {
		return nil, fault.Newf(fault.InvalidRequest, "", "callback is required")
	}

	s := sampler.New(c.logger, c.agg.Price, fn, interval, c.priceRPS)
	s.Start(ctx)
	return s, nil
}
