// Package model defines the immutable entities produced by queries.
// Every monetary amount is expressed in integer satoshis; decimal
// conversion happens only at presentation boundaries.
package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BlockLite is the header-level projection of a block.
type BlockLite struct {
	Height int64
	Hash   string
	Time   time.Time
}

// Block is a full block snapshot with its normalized transactions.
// The block owns the transactions for the lifetime of the query.
type Block struct {
	Height        int64
	Hash          string
	Time          time.Time
	Version       int32
	MerkleRoot    string
	Bits          uint32
	Nonce         uint32
	Size          int32
	Weight        int32
	Difficulty    float64
	Confirmations int64
	Transactions  []Transaction
}

// Lite projects the block down to its header fields.
func (b Block) Lite() BlockLite {
	return BlockLite{Height: b.Height, Hash: b.Hash, Time: b.Time}
}

// BlockStats aggregates per-block fee and value statistics. Rates are
// satoshis per virtual byte.
type BlockStats struct {
	TotalValue    int64
	TotalFees     int64
	MeanFeeRate   decimal.Decimal
	MedianFeeRate decimal.Decimal
}

// Stats derives fee statistics from the block's transactions. Only
// transactions with a known fee contribute to the rate aggregates;
// coinbase transactions count with a zero fee, matching how block
// explorers report them.
func (b Block) Stats() BlockStats {
	stats := BlockStats{}
	rates := make([]decimal.Decimal, 0, len(b.Transactions))

	for _, tx := range b.Transactions {
		stats.TotalValue += tx.OutputTotal()
		if !tx.FeeKnown {
			continue
		}
		stats.TotalFees += tx.Fee
		if tx.VSize > 0 {
			rate := decimal.New(tx.Fee, 0).Div(decimal.New(int64(tx.VSize), 0))
			rates = append(rates, rate)
		}
	}

	if len(rates) == 0 {
		return stats
	}

	sum := decimal.Zero
	for _, r := range rates {
		sum = sum.Add(r)
	}
	stats.MeanFeeRate = sum.Div(decimal.New(int64(len(rates)), 0))

	sort.Slice(rates, func(i, j int) bool { return rates[i].LessThan(rates[j]) })
	mid := len(rates) / 2
	if len(rates)%2 == 1 {
		stats.MedianFeeRate = rates[mid]
	} else {
		stats.MedianFeeRate = rates[mid-1].Add(rates[mid]).Div(decimal.New(2, 0))
	}
	return stats
}
