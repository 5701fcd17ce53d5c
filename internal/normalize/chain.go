package normalize

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/btcquery/internal/source/bitcoinrpc"
	"github.com/goodnatureofminers/btcquery/model"
)

// ChainInfo maps getblockchaininfo into the model.
func ChainInfo(raw *bitcoinrpc.RawChainInfo) (model.ChainInfo, error) {
	if raw == nil || raw.Chain == nil || raw.Blocks == nil || raw.Headers == nil || raw.BestBlockHash == nil {
		return model.ChainInfo{}, malformed("chain info missing required fields")
	}

	info := model.ChainInfo{
		Chain:         *raw.Chain,
		Blocks:        *raw.Blocks,
		Headers:       *raw.Headers,
		BestBlockHash: *raw.BestBlockHash,
	}
	if raw.Difficulty != nil {
		info.Difficulty = *raw.Difficulty
	}
	if raw.MedianTime != nil {
		info.MedianTime = time.Unix(*raw.MedianTime, 0).UTC()
	}
	if raw.VerificationProgress != nil {
		info.VerificationProgress = *raw.VerificationProgress
	}
	if raw.ChainWork != nil {
		info.ChainWork = *raw.ChainWork
	}
	if raw.Pruned != nil {
		info.Pruned = *raw.Pruned
	}
	if raw.SizeOnDisk != nil {
		info.SizeOnDisk = *raw.SizeOnDisk
	}
	return info, nil
}

// MempoolInfo maps getmempoolinfo into the model. Fee fields arrive as
// BTC floats and are converted to satoshi-denominated values.
func MempoolInfo(raw *bitcoinrpc.RawMempoolInfo) (model.MempoolInfo, error) {
	if raw == nil || raw.Size == nil || raw.Bytes == nil {
		return model.MempoolInfo{}, malformed("mempool info missing size or bytes")
	}

	info := model.MempoolInfo{TxCount: *raw.Size, Bytes: *raw.Bytes}
	if raw.Usage != nil {
		info.Usage = *raw.Usage
	}
	if raw.TotalFee != nil {
		sats, err := btcToSatoshis(*raw.TotalFee)
		if err != nil {
			return model.MempoolInfo{}, malformed("mempool total fee: %v", err)
		}
		info.TotalFee = sats
	}
	if raw.MempoolMinFee != nil {
		rate, err := feeRatePerVByte(*raw.MempoolMinFee)
		if err != nil {
			return model.MempoolInfo{}, malformed("mempool min fee: %v", err)
		}
		info.MinFeeRate = rate
	}
	return info, nil
}

// UTXOSetInfo maps gettxoutsetinfo into the model.
func UTXOSetInfo(raw *bitcoinrpc.RawUTXOSetInfo) (model.UTXOSetInfo, error) {
	if raw == nil || raw.Height == nil || raw.BestBlock == nil || raw.TxOuts == nil || raw.TotalAmount == nil {
		return model.UTXOSetInfo{}, malformed("utxo set info missing required fields")
	}
	total, err := btcToSatoshis(*raw.TotalAmount)
	if err != nil {
		return model.UTXOSetInfo{}, malformed("utxo set total amount: %v", err)
	}

	info := model.UTXOSetInfo{
		Height:      *raw.Height,
		BestBlock:   *raw.BestBlock,
		TxOuts:      *raw.TxOuts,
		TotalAmount: total,
	}
	if raw.Transactions != nil {
		info.Transactions = *raw.Transactions
	}
	if raw.DiskSize != nil {
		info.DiskSize = *raw.DiskSize
	}
	return info, nil
}

// FeeEstimate maps estimatesmartfee into the model. A node that cannot
// produce an estimate reports errors instead of a rate.
func FeeEstimate(res *btcjson.EstimateSmartFeeResult, confTarget int64) (model.FeeEstimate, error) {
	if res == nil {
		return model.FeeEstimate{}, malformed("empty fee estimate response")
	}
	if len(res.Errors) > 0 || res.FeeRate == nil {
		return model.FeeEstimate{}, malformed("no fee estimate for target %d: %v", confTarget, res.Errors)
	}
	rate, err := feeRatePerVByte(*res.FeeRate)
	if err != nil {
		return model.FeeEstimate{}, malformed("fee rate for target %d: %v", confTarget, err)
	}
	return model.FeeEstimate{ConfTarget: confTarget, SatPerVByte: rate}, nil
}

// MempoolEntryFee extracts the base fee of a mempool transaction in
// satoshis.
func MempoolEntryFee(raw *bitcoinrpc.RawMempoolEntry) (int64, error) {
	if raw == nil || raw.Fees == nil || raw.Fees.Base == nil {
		return 0, malformed("mempool entry missing base fee")
	}
	sats, err := btcToSatoshis(*raw.Fees.Base)
	if err != nil {
		return 0, malformed("mempool entry base fee: %v", err)
	}
	return sats, nil
}

// MempoolEntryFeeRate derives the satoshis-per-vbyte rate of one
// mempool transaction from its base fee and virtual size.
func MempoolEntryFeeRate(raw *bitcoinrpc.RawMempoolEntry) (decimal.Decimal, error) {
	if raw == nil || raw.VSize == nil || raw.Fees == nil || raw.Fees.Base == nil {
		return decimal.Decimal{}, malformed("mempool entry missing vsize or base fee")
	}
	if *raw.VSize <= 0 {
		return decimal.Decimal{}, malformed("mempool entry vsize %d", *raw.VSize)
	}
	sats, err := btcToSatoshis(*raw.Fees.Base)
	if err != nil {
		return decimal.Decimal{}, malformed("mempool entry base fee: %v", err)
	}
	return decimal.New(sats, 0).Div(decimal.New(*raw.VSize, 0)), nil
}

// feeRatePerVByte converts a BTC-per-kilovbyte float into a decimal
// satoshis-per-vbyte rate without intermediate float math on the
// satoshi value.
func feeRatePerVByte(btcPerKvB float64) (decimal.Decimal, error) {
	satsPerKvB, err := btcToSatoshis(btcPerKvB)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.New(satsPerKvB, 0).Div(decimal.New(1000, 0)), nil
}
