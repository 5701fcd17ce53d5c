package bitcoinrpc

import (
	"context"
	"encoding/json"

	"github.com/goodnatureofminers/btcquery/fault"
)

// Raw payloads for methods btcjson does not model. Fields are pointers
// so absence is detected explicitly instead of defaulting to zero.

// RawMempoolInfo is the gettxoutsetinfo sibling for the mempool.
type RawMempoolInfo struct {
	Size          *int64   `json:"size"`
	Bytes         *int64   `json:"bytes"`
	Usage         *int64   `json:"usage"`
	TotalFee      *float64 `json:"total_fee"`
	MempoolMinFee *float64 `json:"mempoolminfee"`
}

// RawUTXOSetInfo is the gettxoutsetinfo response.
type RawUTXOSetInfo struct {
	Height       *int64   `json:"height"`
	BestBlock    *string  `json:"bestblock"`
	Transactions *int64   `json:"transactions"`
	TxOuts       *int64   `json:"txouts"`
	DiskSize     *int64   `json:"disk_size"`
	TotalAmount  *float64 `json:"total_amount"`
}

// RawMempoolEntry carries the fee-relevant subset of getmempoolentry.
type RawMempoolEntry struct {
	VSize *int64          `json:"vsize"`
	Time  *int64          `json:"time"`
	Fees  *RawMempoolFees `json:"fees"`
}

// RawMempoolFees is the fees object nested in a mempool entry.
type RawMempoolFees struct {
	Base *float64 `json:"base"`
}

// RawBlockHeader carries the subset of getblockheader used to place a
// transaction at a height without fetching the whole block.
type RawBlockHeader struct {
	Hash   *string `json:"hash"`
	Height *int64  `json:"height"`
	Time   *int64  `json:"time"`
}

// RawChainInfo is the getblockchaininfo response.
type RawChainInfo struct {
	Chain                *string  `json:"chain"`
	Blocks               *int64   `json:"blocks"`
	Headers              *int64   `json:"headers"`
	BestBlockHash        *string  `json:"bestblockhash"`
	Difficulty           *float64 `json:"difficulty"`
	MedianTime           *int64   `json:"mediantime"`
	VerificationProgress *float64 `json:"verificationprogress"`
	ChainWork            *string  `json:"chainwork"`
	Pruned               *bool    `json:"pruned"`
	SizeOnDisk           *int64   `json:"size_on_disk"`
}

// MempoolInfo fetches getmempoolinfo.
func (c *Client) MempoolInfo(ctx context.Context) (*RawMempoolInfo, error) {
	var info RawMempoolInfo
	if err := c.rawCall(ctx, "get_mempool_info", "getmempoolinfo", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UTXOSetInfo fetches gettxoutsetinfo. The "none" hash type skips the
// expensive UTXO set hash, as the stats do not need it.
func (c *Client) UTXOSetInfo(ctx context.Context) (*RawUTXOSetInfo, error) {
	hashType, err := json.Marshal("none")
	if err != nil {
		return nil, fault.New(fault.InvalidRequest, "", err)
	}
	var info RawUTXOSetInfo
	if err := c.rawCall(ctx, "get_utxo_set_info", "gettxoutsetinfo", []json.RawMessage{hashType}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// MempoolEntry fetches getmempoolentry for a mempool transaction.
func (c *Client) MempoolEntry(ctx context.Context, txid string) (*RawMempoolEntry, error) {
	if err := ValidateHash(txid); err != nil {
		return nil, err
	}
	arg, err := json.Marshal(txid)
	if err != nil {
		return nil, fault.New(fault.InvalidRequest, "", err)
	}
	var entry RawMempoolEntry
	if err := c.rawCall(ctx, "get_mempool_entry", "getmempoolentry", []json.RawMessage{arg}, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// BlockHeader fetches the verbose getblockheader for a block hash.
func (c *Client) BlockHeader(ctx context.Context, hash string) (*RawBlockHeader, error) {
	if err := ValidateHash(hash); err != nil {
		return nil, err
	}
	arg, err := json.Marshal(hash)
	if err != nil {
		return nil, fault.New(fault.InvalidRequest, "", err)
	}
	var header RawBlockHeader
	if err := c.rawCall(ctx, "get_block_header", "getblockheader", []json.RawMessage{arg}, &header); err != nil {
		return nil, err
	}
	return &header, nil
}

// ChainInfo fetches getblockchaininfo.
func (c *Client) ChainInfo(ctx context.Context) (*RawChainInfo, error) {
	var info RawChainInfo
	if err := c.rawCall(ctx, "get_blockchain_info", "getblockchaininfo", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) rawCall(ctx context.Context, op, method string, params []json.RawMessage, out any) error {
	var raw json.RawMessage
	err := c.call(ctx, op, func() error {
		var err error
		raw, err = c.node.RawRequest(method, params)
		return err
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fault.Newf(fault.MalformedResponse, Source, "decode %s response: %v", method, err)
	}
	return nil
}
