// Package normalize maps raw source payloads into the shared data
// model. Every function is pure: no I/O, deterministic output, and a
// MalformedResponse fault instead of a crash on ill-formed input.
package normalize

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/txscript"

	"github.com/goodnatureofminers/btcquery/model"
)

// ClassifyScript maps raw script bytes onto the closed classification
// set. Anything that fails to disassemble, including an empty script,
// classifies as unparseable rather than erroring.
func ClassifyScript(raw []byte) model.ScriptClass {
	if len(raw) == 0 {
		return model.ScriptUnparseable
	}
	if _, err := txscript.DisasmString(raw); err != nil {
		return model.ScriptUnparseable
	}

	switch txscript.GetScriptClass(raw) {
	case txscript.PubKeyHashTy:
		return model.ScriptP2PKH
	case txscript.ScriptHashTy:
		return model.ScriptP2SH
	case txscript.WitnessV0PubKeyHashTy, txscript.WitnessV0ScriptHashTy:
		return model.ScriptSegWitV0
	case txscript.WitnessV1TaprootTy:
		return model.ScriptTaproot
	default:
		return model.ScriptNonStandard
	}
}

// scriptFromHex decodes and classifies a hex-encoded script. Corrupt
// hex degrades to an explicit unparseable script instead of failing
// the surrounding mapping.
func scriptFromHex(hexScript string) model.Script {
	if hexScript == "" {
		return model.Script{Class: model.ScriptUnparseable}
	}
	raw, err := hex.DecodeString(hexScript)
	if err != nil {
		return model.Script{Class: model.ScriptUnparseable}
	}
	return model.Script{Raw: raw, Class: ClassifyScript(raw)}
}
