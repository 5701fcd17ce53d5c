package aggregate

import (
	"context"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/btcquery/fault"
	"github.com/goodnatureofminers/btcquery/internal/normalize"
	"github.com/goodnatureofminers/btcquery/model"
)

// FeeUSD computes a transaction's fee and converts it at the current
// price. The fee is the primary concern: its failure fails the query.
// The price is supplementary: when every price source degrades the
// satoshi fee is still returned with PriceUnavailable set.
func (a *Aggregator) FeeUSD(ctx context.Context, txid string) (model.FeeInUSD, error) {
	if ctx.Err() != nil {
		return model.FeeInUSD{}, fault.FromContext(ctx, "")
	}

	var (
		quote    model.PriceQuote
		priceErr error
		done     = make(chan struct{})
	)
	go func() {
		defer close(done)
		quote, priceErr = a.Price(ctx)
	}()

	fee, err := a.transactionFee(ctx, txid)
	<-done
	if err != nil {
		return model.FeeInUSD{}, err
	}

	result := model.FeeInUSD{TxID: txid, FeeSats: fee}
	if priceErr != nil {
		a.logger.Warn("fee computed without price conversion",
			zap.String("txid", txid),
			zap.Error(priceErr))
		result.PriceUnavailable = true
		return result, nil
	}

	result.USD = model.SatoshisToBTC(fee).Mul(quote.Price)
	result.Quote = &quote
	return result, nil
}

// transactionFee returns the fee of a transaction in satoshis,
// resolving previous outputs when the node did not already know it.
func (a *Aggregator) transactionFee(ctx context.Context, txid string) (int64, error) {
	tx, err := a.Transaction(ctx, txid)
	if err != nil {
		return 0, err
	}
	if tx.FeeKnown {
		return tx.Fee, nil
	}
	if err := a.newResolver().ResolveTransaction(ctx, &tx); err != nil {
		return 0, err
	}
	if !tx.FeeKnown {
		return 0, fault.Newf(fault.MalformedResponse, "", "tx %s fee could not be derived", txid)
	}
	return tx.Fee, nil
}

// MempoolFeeRates surveys the fee rates of mempool transactions in
// satoshis per virtual byte. limit caps the sample size; zero or
// negative surveys the whole pool. Entries that vanish mid-scan are
// skipped: the mempool churns while it is being read.
func (a *Aggregator) MempoolFeeRates(ctx context.Context, limit int) ([]model.FeeRateSample, error) {
	ids, err := a.node.MempoolTxIDs(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	samples := make([]model.FeeRateSample, 0, len(ids))
	for _, txid := range ids {
		if ctx.Err() != nil {
			return nil, fault.FromContext(ctx, "")
		}
		entry, err := a.node.MempoolEntry(ctx, txid)
		if err != nil {
			if fault.Is(err, fault.Cancelled) {
				return nil, err
			}
			a.logger.Debug("mempool entry skipped",
				zap.String("txid", txid),
				zap.Error(err))
			continue
		}
		rate, err := normalize.MempoolEntryFeeRate(entry)
		if err != nil {
			a.logger.Debug("mempool entry skipped",
				zap.String("txid", txid),
				zap.Error(err))
			continue
		}
		samples = append(samples, model.FeeRateSample{TxID: txid, SatPerVByte: rate})
	}
	return samples, nil
}

// FindOutputByValue scans recent blocks from the tip backwards for the
// first output whose value sits within epsilon satoshis of the target.
// A nil match with nil error means the scan completed without a hit.
func (a *Aggregator) FindOutputByValue(ctx context.Context, value, epsilon int64, lookback int) (*model.OutputMatch, error) {
	if value < 0 {
		return nil, fault.Newf(fault.InvalidRequest, "", "negative target value %d", value)
	}
	if epsilon < 0 {
		return nil, fault.Newf(fault.InvalidRequest, "", "negative epsilon %d", epsilon)
	}
	if lookback <= 0 {
		return nil, fault.Newf(fault.InvalidRequest, "", "lookback %d, want at least 1", lookback)
	}

	tip, err := a.node.BlockCount(ctx)
	if err != nil {
		return nil, err
	}

	for height := tip; height > tip-int64(lookback) && height >= 0; height-- {
		block, err := a.Block(ctx, height, false)
		if err != nil {
			return nil, err
		}
		for _, tx := range block.Transactions {
			for _, out := range tx.Outputs {
				diff := out.Value - value
				if diff < 0 {
					diff = -diff
				}
				if diff <= epsilon {
					return &model.OutputMatch{
						BlockHeight: block.Height,
						BlockHash:   block.Hash,
						TxID:        tx.TxID,
						Output:      out,
					}, nil
				}
			}
		}
	}
	return nil, nil
}
