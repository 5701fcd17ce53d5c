package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChainInfo summarizes the node's view of the chain.
type ChainInfo struct {
	Chain                string
	Blocks               int64
	Headers              int64
	BestBlockHash        string
	Difficulty           float64
	MedianTime           time.Time
	VerificationProgress float64
	ChainWork            string
	Pruned               bool
	SizeOnDisk           int64
}

// MempoolInfo summarizes the node's transaction pool.
type MempoolInfo struct {
	TxCount    int64
	Bytes      int64
	Usage      int64
	TotalFee   int64
	MinFeeRate decimal.Decimal
}

// UTXOSetInfo summarizes the unspent output set.
type UTXOSetInfo struct {
	Height       int64
	BestBlock    string
	Transactions int64
	TxOuts       int64
	DiskSize     int64
	TotalAmount  int64
}

// FeeRateSample is one mempool transaction's fee rate in satoshis per
// virtual byte.
type FeeRateSample struct {
	TxID        string
	SatPerVByte decimal.Decimal
}
