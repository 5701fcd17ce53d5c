package aggregate

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/btcquery/fault"
	"github.com/goodnatureofminers/btcquery/internal/normalize"
	"github.com/goodnatureofminers/btcquery/internal/source/bitcoinrpc"
	"github.com/goodnatureofminers/btcquery/model"
)

// outputResolver caches transaction outputs for the lifetime of one
// query so input values can be computed without refetching shared
// previous transactions. The cache never outlives the query.
type outputResolver struct {
	node  NodeSource
	norm  *normalize.Normalizer
	limit int

	mu    sync.Mutex
	cache map[string][]model.Output
}

func (a *Aggregator) newResolver() *outputResolver {
	return &outputResolver{
		node:  a.node,
		norm:  a.norm,
		limit: a.resolveLimit,
		cache: make(map[string][]model.Output),
	}
}

// Seed pre-populates the cache with outputs already in hand.
func (r *outputResolver) Seed(txid string, outputs []model.Output) {
	r.mu.Lock()
	r.cache[txid] = outputs
	r.mu.Unlock()
}

// ResolveBlock resolves the inputs of every transaction in the block.
// The block's own outputs are seeded first, so intra-block spends
// never hit the node.
func (r *outputResolver) ResolveBlock(ctx context.Context, block *model.Block) error {
	for _, tx := range block.Transactions {
		r.Seed(tx.TxID, tx.Outputs)
	}
	if err := r.prefetch(ctx, block.Transactions); err != nil {
		return err
	}
	for i := range block.Transactions {
		if err := r.resolveInputs(&block.Transactions[i]); err != nil {
			return err
		}
	}
	return nil
}

// ResolveTransaction resolves the inputs of one transaction.
func (r *outputResolver) ResolveTransaction(ctx context.Context, tx *model.Transaction) error {
	if err := r.prefetch(ctx, []model.Transaction{*tx}); err != nil {
		return err
	}
	return r.resolveInputs(tx)
}

// prefetch fetches every uncached previous transaction referenced by
// the inputs, bounded to the configured concurrency.
func (r *outputResolver) prefetch(ctx context.Context, txs []model.Transaction) error {
	missing := r.missingPrevTxIDs(txs)
	if len(missing) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for _, txid := range missing {
		g.Go(func() error {
			outputs, err := r.fetchOutputs(gctx, txid)
			if err != nil {
				return err
			}
			r.Seed(txid, outputs)
			return nil
		})
	}
	return g.Wait()
}

func (r *outputResolver) missingPrevTxIDs(txs []model.Transaction) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{})
	var missing []string
	for _, tx := range txs {
		for _, in := range tx.Inputs {
			if in.Resolved != nil {
				continue
			}
			if _, ok := r.cache[in.PrevTxID]; ok {
				continue
			}
			if _, ok := seen[in.PrevTxID]; ok {
				continue
			}
			seen[in.PrevTxID] = struct{}{}
			missing = append(missing, in.PrevTxID)
		}
	}
	return missing
}

func (r *outputResolver) fetchOutputs(ctx context.Context, txid string) ([]model.Output, error) {
	raw, err := r.node.RawTransaction(ctx, txid)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fault.Newf(fault.MalformedResponse, bitcoinrpc.Source, "previous transaction %s: empty response", txid)
	}
	// Placement does not matter here, only the outputs do.
	prev, err := r.norm.Transaction(*raw, model.Unconfirmed())
	if err != nil {
		return nil, err
	}
	return prev.Outputs, nil
}

// resolveInputs fills Resolved on every input from the cache and
// derives the fee once all inputs carry values.
func (r *outputResolver) resolveInputs(tx *model.Transaction) error {
	if tx.Coinbase {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		if in.Resolved != nil {
			continue
		}
		outputs, ok := r.cache[in.PrevTxID]
		if !ok {
			return fault.Newf(fault.MalformedResponse, bitcoinrpc.Source,
				"tx %s input %d: previous transaction %s not resolved", tx.TxID, i, in.PrevTxID)
		}
		if int(in.PrevIndex) >= len(outputs) {
			return fault.Newf(fault.MalformedResponse, bitcoinrpc.Source,
				"tx %s input %d: previous output %s:%d out of range", tx.TxID, i, in.PrevTxID, in.PrevIndex)
		}
		resolved := outputs[in.PrevIndex]
		in.Resolved = &resolved
	}

	inTotal, ok := tx.InputTotal()
	if !ok {
		return nil
	}
	fee := inTotal - tx.OutputTotal()
	if fee < 0 {
		return fault.Newf(fault.MalformedResponse, bitcoinrpc.Source,
			"tx %s outputs exceed inputs by %d satoshis", tx.TxID, -fee)
	}
	tx.Fee = fee
	tx.FeeKnown = true
	return nil
}
