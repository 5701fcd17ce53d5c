package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceSource identifies which market data API produced a quote.
type PriceSource string

const (
	SourceCoinGecko PriceSource = "coingecko"
	SourceBinance   PriceSource = "binance"
)

// PriceQuote is a fixed-point price for a currency pair at a point in
// time. Stale marks quotes older than the configured freshness window.
type PriceQuote struct {
	Source PriceSource
	Base   string
	Quote  string
	Price  decimal.Decimal
	Time   time.Time
	Stale  bool
}

// FeeEstimate is the node's fee-rate estimate for a confirmation
// target, in satoshis per virtual byte.
type FeeEstimate struct {
	ConfTarget  int64
	SatPerVByte decimal.Decimal
}

// FeeInUSD is the result of the composite fee query. When both price
// sources degrade the satoshi fee is still returned with
// PriceUnavailable set; the USD value and quote are then zero-valued.
type FeeInUSD struct {
	TxID             string
	FeeSats          int64
	USD              decimal.Decimal
	Quote            *PriceQuote
	PriceUnavailable bool
}

// SatoshisToBTC converts integer satoshis to a decimal BTC amount.
func SatoshisToBTC(sats int64) decimal.Decimal {
	return decimal.New(sats, -8)
}
