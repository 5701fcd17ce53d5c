package normalize

import (
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcjson"

	"github.com/goodnatureofminers/btcquery/internal/source/bitcoinrpc"
	"github.com/goodnatureofminers/btcquery/model"
)

// Block maps a verbose block into the model, normalizing every
// contained transaction with the block's height as its confirmation.
func (n *Normalizer) Block(src *btcjson.GetBlockVerboseTxResult) (model.Block, error) {
	if src == nil {
		return model.Block{}, malformed("empty block response")
	}
	if src.Height < 0 {
		return model.Block{}, malformed("block %s has negative height %d", src.Hash, src.Height)
	}
	if src.Hash == "" {
		return model.Block{}, malformed("block at height %d without hash", src.Height)
	}
	bits, err := parseBits(src.Bits)
	if err != nil {
		return model.Block{}, malformed("block %d bits %q: %v", src.Height, src.Bits, err)
	}

	block := model.Block{
		Height:        src.Height,
		Hash:          src.Hash,
		Time:          time.Unix(src.Time, 0).UTC(),
		Version:       src.Version,
		MerkleRoot:    src.MerkleRoot,
		Bits:          bits,
		Nonce:         src.Nonce,
		Size:          src.Size,
		Weight:        src.Weight,
		Difficulty:    src.Difficulty,
		Confirmations: src.Confirmations,
	}

	status := model.ConfirmedAt(src.Height)
	block.Transactions = make([]model.Transaction, 0, len(src.Tx))
	for _, tx := range src.Tx {
		normalized, err := n.Transaction(tx, status)
		if err != nil {
			return model.Block{}, err
		}
		block.Transactions = append(block.Transactions, normalized)
	}
	return block, nil
}

// BlockLiteFromHeader maps a raw block header into the lite
// projection. The fields mirror Block exactly so projecting a full
// block and fetching the lite form agree.
func BlockLiteFromHeader(raw *bitcoinrpc.RawBlockHeader) (model.BlockLite, error) {
	if raw == nil || raw.Hash == nil || raw.Height == nil || raw.Time == nil {
		return model.BlockLite{}, malformed("block header missing hash, height or time")
	}
	if *raw.Height < 0 {
		return model.BlockLite{}, malformed("block header with negative height %d", *raw.Height)
	}
	return model.BlockLite{
		Height: *raw.Height,
		Hash:   *raw.Hash,
		Time:   time.Unix(*raw.Time, 0).UTC(),
	}, nil
}

func parseBits(value string) (uint32, error) {
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(parsed), nil
}
