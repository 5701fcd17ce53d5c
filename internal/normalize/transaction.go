package normalize

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcjson"

	"github.com/goodnatureofminers/btcquery/model"
	"github.com/goodnatureofminers/btcquery/pkg/safe"
)

// Transaction maps a decoded RPC transaction into the model. Coinbase
// inputs are dropped: the model represents a coinbase transaction as
// one with no inputs and a known zero fee.
func (n *Normalizer) Transaction(tx btcjson.TxRawResult, status model.TxStatus) (model.Transaction, error) {
	if tx.Txid == "" {
		return model.Transaction{}, malformed("transaction without txid")
	}

	out := model.Transaction{
		TxID:     tx.Txid,
		Version:  tx.Version,
		LockTime: tx.LockTime,
		Size:     tx.Size,
		VSize:    tx.Vsize,
		Weight:   tx.Weight,
		Status:   status,
	}

	for idx, vin := range tx.Vin {
		if vin.IsCoinBase() {
			out.Coinbase = true
			continue
		}

		input := model.Input{
			PrevTxID:  vin.Txid,
			PrevIndex: vin.Vout,
			Sequence:  vin.Sequence,
		}
		if vin.ScriptSig != nil {
			input.ScriptSig = scriptFromHex(vin.ScriptSig.Hex)
		} else {
			input.ScriptSig = model.Script{Class: model.ScriptUnparseable}
		}
		for _, w := range vin.Witness {
			item, err := hex.DecodeString(w)
			if err != nil {
				return model.Transaction{}, malformed("tx %s input %d witness: %v", tx.Txid, idx, err)
			}
			input.Witness = append(input.Witness, item)
		}
		out.Inputs = append(out.Inputs, input)
	}

	for idx, vout := range tx.Vout {
		index, err := safe.Uint32(int64(idx))
		if err != nil {
			return model.Transaction{}, malformed("tx %s output index: %v", tx.Txid, err)
		}
		value, err := btcToSatoshis(vout.Value)
		if err != nil {
			return model.Transaction{}, malformed("tx %s output %d value: %v", tx.Txid, idx, err)
		}

		out.Outputs = append(out.Outputs, model.Output{
			Index:   index,
			Value:   value,
			Script:  scriptFromHex(vout.ScriptPubKey.Hex),
			Address: n.address(vout.ScriptPubKey),
		})
	}

	if out.Coinbase {
		out.Fee = 0
		out.FeeKnown = true
	}
	return out, nil
}
