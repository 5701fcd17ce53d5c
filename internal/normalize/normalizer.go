package normalize

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/goodnatureofminers/btcquery/fault"
)

// Normalizer maps node payloads into model entities for one network.
type Normalizer struct {
	params *chaincfg.Params
}

// New builds a Normalizer for the named network.
func New(network string) (*Normalizer, error) {
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	return &Normalizer{params: params}, nil
}

func chainParamsForNetwork(network string) (*chaincfg.Params, error) {
	switch strings.ToLower(network) {
	case "", "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}

// address derives a human-readable address for a script pub key. The
// node's own decoding is preferred; otherwise the script is decoded
// locally. An unparseable script yields an empty address, never an
// error, so one odd output cannot fail a whole block mapping.
func (n *Normalizer) address(spk btcjson.ScriptPubKeyResult) string {
	if len(spk.Addresses) > 0 {
		return spk.Addresses[0]
	}
	if spk.Address != "" {
		return spk.Address
	}
	if spk.Hex == "" {
		return ""
	}

	raw, err := hex.DecodeString(spk.Hex)
	if err != nil {
		return ""
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(raw, n.params)
	if err != nil || len(addrs) == 0 {
		return ""
	}
	return addrs[0].EncodeAddress()
}

// btcToSatoshis converts a BTC float from the RPC layer into integer
// satoshis, rejecting NaN, infinities and negatives.
func btcToSatoshis(value float64) (int64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return int64(amt), nil
}

func malformed(format string, args ...any) error {
	return fault.Newf(fault.MalformedResponse, "bitcoind", format, args...)
}
