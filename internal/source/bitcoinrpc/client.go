// Package bitcoinrpc adapts the btcd rpcclient into the context-aware,
// typed-failure contract the aggregator consumes. Methods the btcjson
// package models are called through the typed client; the rest go
// through RawRequest with schema-validated payloads.
package bitcoinrpc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/btcquery/fault"
	"github.com/goodnatureofminers/btcquery/internal/clock"
)

// Source names this adapter in fault values and logs.
const Source = "bitcoind"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// NodeClient is the rpcclient surface the adapter depends on.
	NodeClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
		GetRawMempool() ([]*chainhash.Hash, error)
		EstimateSmartFee(confTarget int64, mode *btcjson.EstimateSmartFeeMode) (*btcjson.EstimateSmartFeeResult, error)
		RawRequest(method string, params []json.RawMessage) (json.RawMessage, error)
	}

	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Client wraps a node client with validation, failure classification,
// bounded retry and metrics instrumentation.
type Client struct {
	node       NodeClient
	rpcMetrics RPCMetrics
	maxRetries int
	backoff    time.Duration
}

// Config tunes the adapter's retry behavior.
type Config struct {
	// MaxRetries bounds additional attempts after a transient failure.
	MaxRetries int
	// Backoff is the base delay between attempts, growing linearly.
	Backoff time.Duration
}

// DefaultConfig returns the retry policy used when none is supplied.
func DefaultConfig() Config {
	return Config{MaxRetries: 3, Backoff: 500 * time.Millisecond}
}

// NewClient constructs the instrumented node adapter.
func NewClient(node NodeClient, rpcMetrics RPCMetrics, cfg Config) *Client {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Client{
		node:       node,
		rpcMetrics: rpcMetrics,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff,
	}
}

// BlockCount returns the height of the most-work chain tip.
func (c *Client) BlockCount(ctx context.Context) (int64, error) {
	var count int64
	err := c.call(ctx, "get_block_count", func() error {
		var err error
		count, err = c.node.GetBlockCount()
		return err
	})
	return count, err
}

// BlockHash returns the hash of the block at the given height.
func (c *Client) BlockHash(ctx context.Context, height int64) (string, error) {
	if err := ValidateHeight(height); err != nil {
		return "", err
	}
	var hash *chainhash.Hash
	err := c.call(ctx, "get_block_hash", func() error {
		var err error
		hash, err = c.node.GetBlockHash(height)
		return err
	})
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

// BlockVerbose returns a block with fully decoded transactions.
func (c *Client) BlockVerbose(ctx context.Context, hash string) (*btcjson.GetBlockVerboseTxResult, error) {
	parsed, err := parseHash(hash)
	if err != nil {
		return nil, err
	}
	var block *btcjson.GetBlockVerboseTxResult
	err = c.call(ctx, "get_block_verbose_tx", func() error {
		var err error
		block, err = c.node.GetBlockVerboseTx(parsed)
		return err
	})
	return block, err
}

// RawTransaction returns the decoded form of a transaction.
func (c *Client) RawTransaction(ctx context.Context, txid string) (*btcjson.TxRawResult, error) {
	parsed, err := parseHash(txid)
	if err != nil {
		return nil, err
	}
	var tx *btcjson.TxRawResult
	err = c.call(ctx, "get_raw_transaction", func() error {
		var err error
		tx, err = c.node.GetRawTransactionVerbose(parsed)
		return err
	})
	return tx, err
}

// MempoolTxIDs lists the transaction ids currently in the mempool.
func (c *Client) MempoolTxIDs(ctx context.Context) ([]string, error) {
	var hashes []*chainhash.Hash
	err := c.call(ctx, "get_raw_mempool", func() error {
		var err error
		hashes, err = c.node.GetRawMempool()
		return err
	})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(hashes))
	for _, h := range hashes {
		ids = append(ids, h.String())
	}
	return ids, nil
}

// EstimateSmartFee asks the node for a conservative fee-rate estimate.
func (c *Client) EstimateSmartFee(ctx context.Context, confTarget int64) (*btcjson.EstimateSmartFeeResult, error) {
	if err := ValidateConfTarget(confTarget); err != nil {
		return nil, err
	}
	var res *btcjson.EstimateSmartFeeResult
	err := c.call(ctx, "estimate_smart_fee", func() error {
		var err error
		res, err = c.node.EstimateSmartFee(confTarget, &btcjson.EstimateModeConservative)
		return err
	})
	return res, err
}

// call runs one RPC operation with cancellation checks, failure
// classification and bounded retry for transient failures.
func (c *Client) call(ctx context.Context, op string, fn func() error) error {
	if ctx.Err() != nil {
		return fault.FromContext(ctx, Source)
	}
	for attempt := 0; ; attempt++ {
		started := time.Now()
		err := fn()
		c.rpcMetrics.Observe(op, err, started)
		if err == nil {
			return nil
		}

		classified := classify(ctx, err)
		if attempt >= c.maxRetries || !retryable(classified) {
			return classified
		}
		if err := clock.Backoff(ctx, attempt+1, c.backoff); err != nil {
			return fault.FromContext(ctx, Source)
		}
	}
}

func retryable(err error) bool {
	return fault.Is(err, fault.Unreachable) || fault.Is(err, fault.Timeout)
}

func parseHash(s string) (*chainhash.Hash, error) {
	if err := ValidateHash(s); err != nil {
		return nil, err
	}
	hash, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return nil, fault.Newf(fault.InvalidRequest, "", "hash %q: %v", s, err)
	}
	return hash, nil
}
