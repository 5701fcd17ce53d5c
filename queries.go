package btcquery

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/btcquery/model"
)

// QueryOption tunes a single block or transaction query.
type QueryOption func(*queryOptions)

type queryOptions struct {
	resolveInputs bool
}

// WithResolvedInputs makes block queries resolve every input against
// its previous output, filling input values and per-transaction fees.
// This costs one extra node round trip per distinct previous
// transaction not already in the queried block.
func WithResolvedInputs() QueryOption {
	return func(o *queryOptions) { o.resolveInputs = true }
}

func applyOptions(opts []QueryOption) queryOptions {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// GetBlockCount returns the height of the chain tip.
func (c *Client) GetBlockCount(ctx context.Context) (int64, error) {
	return c.agg.BlockCount(ctx)
}

// GetBlockHash returns the hash of the block at the given height.
func (c *Client) GetBlockHash(ctx context.Context, height int64) (string, error) {
	return c.agg.BlockHash(ctx, height)
}

// GetChainInfo returns the node's view of the chain.
func (c *Client) GetChainInfo(ctx context.Context) (model.ChainInfo, error) {
	return c.agg.ChainInfo(ctx)
}

// GetBlock fetches the block at a height with its transactions fully
// decoded.
func (c *Client) GetBlock(ctx context.Context, height int64, opts ...QueryOption) (model.Block, error) {
	return c.agg.Block(ctx, height, applyOptions(opts).resolveInputs)
}

// GetBlockByHash fetches a block by its hash.
func (c *Client) GetBlockByHash(ctx context.Context, hash string, opts ...QueryOption) (model.Block, error) {
	return c.agg.BlockByHash(ctx, hash, applyOptions(opts).resolveInputs)
}

// GetLatestBlock fetches the block at the chain tip.
func (c *Client) GetLatestBlock(ctx context.Context, opts ...QueryOption) (model.Block, error) {
	return c.agg.LatestBlock(ctx, applyOptions(opts).resolveInputs)
}

// GetBlockLite fetches the header projection of a block without
// decoding its transactions. The result matches GetBlock(h).Lite().
func (c *Client) GetBlockLite(ctx context.Context, height int64) (model.BlockLite, error) {
	return c.agg.BlockLite(ctx, height)
}

// GetTransaction fetches a transaction with its confirmation status.
// The fee is known for coinbase and mempool transactions; for a
// confirmed spend it stays unknown unless inputs are resolved through
// TransactionFeeUSD or a resolved block query.
func (c *Client) GetTransaction(ctx context.Context, txid string) (model.Transaction, error) {
	return c.agg.Transaction(ctx, txid)
}

// GetUTXOSetInfo returns statistics over the unspent output set. This
// is an expensive call on the node side.
func (c *Client) GetUTXOSetInfo(ctx context.Context) (model.UTXOSetInfo, error) {
	return c.agg.UTXOSetInfo(ctx)
}

// GetMempoolInfo returns the node's mempool summary.
func (c *Client) GetMempoolInfo(ctx context.Context) (model.MempoolInfo, error) {
	return c.agg.MempoolInfo(ctx)
}

// GetMempoolTxIDs lists the transaction ids currently in the mempool.
func (c *Client) GetMempoolTxIDs(ctx context.Context) ([]string, error) {
	return c.agg.MempoolTxIDs(ctx)
}

// GetMempoolFeeRates surveys mempool fee rates in satoshis per virtual
// byte. limit caps the sample size; zero surveys the whole pool.
func (c *Client) GetMempoolFeeRates(ctx context.Context, limit int) ([]model.FeeRateSample, error) {
	return c.agg.MempoolFeeRates(ctx, limit)
}

// EstimateFee asks the node for a fee-rate estimate to confirm within
// confTarget blocks.
func (c *Client) EstimateFee(ctx context.Context, confTarget int64) (model.FeeEstimate, error) {
	return c.agg.EstimateFee(ctx, confTarget)
}

// GetPrice returns the current BTC/USD quote, falling back between
// price sources per the configured policy.
func (c *Client) GetPrice(ctx context.Context) (model.PriceQuote, error) {
	return c.agg.Price(ctx)
}

// GetPriceAt returns a historical BTC/USD quote near the instant.
func (c *Client) GetPriceAt(ctx context.Context, at time.Time) (model.PriceQuote, error) {
	return c.agg.PriceAt(ctx, at)
}

// TransactionFeeUSD computes a transaction's fee in satoshis and
// converts it at the current price. When every price source degrades
// the satoshi fee is still returned with PriceUnavailable set.
func (c *Client) TransactionFeeUSD(ctx context.Context, txid string) (model.FeeInUSD, error) {
	return c.agg.FeeUSD(ctx, txid)
}

// FindOutputByValue scans recent blocks from the tip backwards for the
// first output within epsilon satoshis of value. A nil match with nil
// error means no output matched within the lookback window.
func (c *Client) FindOutputByValue(ctx context.Context, value, epsilon int64, lookback int) (*model.OutputMatch, error) {
	return c.agg.FindOutputByValue(ctx, value, epsilon, lookback)
}

// SatoshisToBTC converts integer satoshis to a decimal BTC amount.
func SatoshisToBTC(sats int64) decimal.Decimal {
	return model.SatoshisToBTC(sats)
}
