// Package aggregate composes the node and price adapters into the
// query operations the facade exposes. The node side is the primary
// concern: its failures propagate. The price side is supplementary and
// degrades to partial results where the operation allows it.
package aggregate

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/btcquery/fault"
	"github.com/goodnatureofminers/btcquery/internal/normalize"
	"github.com/goodnatureofminers/btcquery/internal/source/bitcoinrpc"
	"github.com/goodnatureofminers/btcquery/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// NodeSource is the instrumented RPC adapter surface the
	// aggregator composes queries from.
	NodeSource interface {
		BlockCount(ctx context.Context) (int64, error)
		BlockHash(ctx context.Context, height int64) (string, error)
		BlockVerbose(ctx context.Context, hash string) (*btcjson.GetBlockVerboseTxResult, error)
		RawTransaction(ctx context.Context, txid string) (*btcjson.TxRawResult, error)
		MempoolTxIDs(ctx context.Context) ([]string, error)
		EstimateSmartFee(ctx context.Context, confTarget int64) (*btcjson.EstimateSmartFeeResult, error)
		MempoolInfo(ctx context.Context) (*bitcoinrpc.RawMempoolInfo, error)
		UTXOSetInfo(ctx context.Context) (*bitcoinrpc.RawUTXOSetInfo, error)
		MempoolEntry(ctx context.Context, txid string) (*bitcoinrpc.RawMempoolEntry, error)
		BlockHeader(ctx context.Context, hash string) (*bitcoinrpc.RawBlockHeader, error)
		ChainInfo(ctx context.Context) (*bitcoinrpc.RawChainInfo, error)
	}

	// PriceSource produces normalized quotes from one market data API.
	PriceSource interface {
		Name() model.PriceSource
		Quote(ctx context.Context) (model.PriceQuote, error)
		QuoteAt(ctx context.Context, at time.Time) (model.PriceQuote, error)
	}
)

// Config tunes aggregation policy.
type Config struct {
	// Preferred pins the price source tried first. Empty means no
	// preference: both sources are queried and the quotes tie-broken.
	Preferred model.PriceSource
	// TieTolerance is the timestamp gap under which two fresh quotes
	// count as simultaneous.
	TieTolerance time.Duration
	// ResolveConcurrency caps parallel previous-output lookups.
	ResolveConcurrency int
}

// DefaultConfig returns the aggregation policy used when none is
// supplied.
func DefaultConfig() Config {
	return Config{
		TieTolerance:       30 * time.Second,
		ResolveConcurrency: 8,
	}
}

// Aggregator composes node and price queries into the public
// operations.
type Aggregator struct {
	node         NodeSource
	norm         *normalize.Normalizer
	coingecko    PriceSource
	binance      PriceSource
	preferred    model.PriceSource
	tieTolerance time.Duration
	resolveLimit int
	logger       *zap.Logger
}

// New builds the aggregator from its adapters.
func New(node NodeSource, norm *normalize.Normalizer, coingecko, binance PriceSource, cfg Config, logger *zap.Logger) *Aggregator {
	if cfg.TieTolerance <= 0 {
		cfg.TieTolerance = DefaultConfig().TieTolerance
	}
	if cfg.ResolveConcurrency <= 0 {
		cfg.ResolveConcurrency = DefaultConfig().ResolveConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		node:         node,
		norm:         norm,
		coingecko:    coingecko,
		binance:      binance,
		preferred:    cfg.Preferred,
		tieTolerance: cfg.TieTolerance,
		resolveLimit: cfg.ResolveConcurrency,
		logger:       logger,
	}
}

// BlockCount returns the height of the chain tip.
func (a *Aggregator) BlockCount(ctx context.Context) (int64, error) {
	return a.node.BlockCount(ctx)
}

// BlockHash returns the block hash at a height.
func (a *Aggregator) BlockHash(ctx context.Context, height int64) (string, error) {
	return a.node.BlockHash(ctx, height)
}

// ChainInfo returns the node's chain summary.
func (a *Aggregator) ChainInfo(ctx context.Context) (model.ChainInfo, error) {
	raw, err := a.node.ChainInfo(ctx)
	if err != nil {
		return model.ChainInfo{}, err
	}
	return normalize.ChainInfo(raw)
}

// MempoolInfo returns the node's mempool summary.
func (a *Aggregator) MempoolInfo(ctx context.Context) (model.MempoolInfo, error) {
	raw, err := a.node.MempoolInfo(ctx)
	if err != nil {
		return model.MempoolInfo{}, err
	}
	return normalize.MempoolInfo(raw)
}

// UTXOSetInfo returns the node's UTXO set summary.
func (a *Aggregator) UTXOSetInfo(ctx context.Context) (model.UTXOSetInfo, error) {
	raw, err := a.node.UTXOSetInfo(ctx)
	if err != nil {
		return model.UTXOSetInfo{}, err
	}
	return normalize.UTXOSetInfo(raw)
}

// MempoolTxIDs lists the transaction ids currently in the mempool.
func (a *Aggregator) MempoolTxIDs(ctx context.Context) ([]string, error) {
	return a.node.MempoolTxIDs(ctx)
}

// EstimateFee asks the node for a fee-rate estimate.
func (a *Aggregator) EstimateFee(ctx context.Context, confTarget int64) (model.FeeEstimate, error) {
	res, err := a.node.EstimateSmartFee(ctx, confTarget)
	if err != nil {
		return model.FeeEstimate{}, err
	}
	return normalize.FeeEstimate(res, confTarget)
}

// Block fetches the block at a height. With resolveInputs set, every
// input of every transaction is resolved against its previous output
// and per-transaction fees are filled in.
func (a *Aggregator) Block(ctx context.Context, height int64, resolveInputs bool) (model.Block, error) {
	hash, err := a.node.BlockHash(ctx, height)
	if err != nil {
		return model.Block{}, err
	}
	return a.BlockByHash(ctx, hash, resolveInputs)
}

// BlockByHash fetches a block by its hash.
func (a *Aggregator) BlockByHash(ctx context.Context, hash string, resolveInputs bool) (model.Block, error) {
	raw, err := a.node.BlockVerbose(ctx, hash)
	if err != nil {
		return model.Block{}, err
	}
	block, err := a.norm.Block(raw)
	if err != nil {
		return model.Block{}, err
	}
	if resolveInputs {
		if err := a.newResolver().ResolveBlock(ctx, &block); err != nil {
			return model.Block{}, err
		}
	}
	return block, nil
}

// LatestBlock fetches the block at the chain tip.
func (a *Aggregator) LatestBlock(ctx context.Context, resolveInputs bool) (model.Block, error) {
	height, err := a.node.BlockCount(ctx)
	if err != nil {
		return model.Block{}, err
	}
	return a.Block(ctx, height, resolveInputs)
}

// BlockLite fetches the header projection of the block at a height
// without decoding its transactions.
func (a *Aggregator) BlockLite(ctx context.Context, height int64) (model.BlockLite, error) {
	hash, err := a.node.BlockHash(ctx, height)
	if err != nil {
		return model.BlockLite{}, err
	}
	header, err := a.node.BlockHeader(ctx, hash)
	if err != nil {
		return model.BlockLite{}, err
	}
	return normalize.BlockLiteFromHeader(header)
}

// Transaction fetches a transaction with its confirmation status. A
// confirmed transaction is placed via its block header; a mempool
// transaction gets its fee from the mempool entry when the node still
// has one.
func (a *Aggregator) Transaction(ctx context.Context, txid string) (model.Transaction, error) {
	raw, err := a.node.RawTransaction(ctx, txid)
	if err != nil {
		return model.Transaction{}, err
	}
	if raw == nil {
		return model.Transaction{}, fault.Newf(fault.MalformedResponse, bitcoinrpc.Source, "empty transaction response")
	}

	status := model.Unconfirmed()
	if raw.BlockHash != "" {
		header, err := a.node.BlockHeader(ctx, raw.BlockHash)
		if err != nil {
			return model.Transaction{}, err
		}
		lite, err := normalize.BlockLiteFromHeader(header)
		if err != nil {
			return model.Transaction{}, err
		}
		status = model.ConfirmedAt(lite.Height)
	}

	tx, err := a.norm.Transaction(*raw, status)
	if err != nil {
		return model.Transaction{}, err
	}

	if !tx.Status.Confirmed && !tx.Coinbase {
		entry, err := a.node.MempoolEntry(ctx, tx.TxID)
		if err != nil {
			// The transaction may have confirmed or been evicted
			// between the two calls. Fee stays unknown.
			a.logger.Debug("mempool entry lookup failed",
				zap.String("txid", tx.TxID),
				zap.Error(err))
			return tx, nil
		}
		fee, err := normalize.MempoolEntryFee(entry)
		if err != nil {
			return model.Transaction{}, err
		}
		tx.Fee = fee
		tx.FeeKnown = true
	}
	return tx, nil
}
