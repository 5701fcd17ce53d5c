package model

// ScriptClass is the closed set of recognized locking-script shapes.
type ScriptClass string

const (
	ScriptP2PKH       ScriptClass = "p2pkh"
	ScriptP2SH        ScriptClass = "p2sh"
	ScriptSegWitV0    ScriptClass = "segwit-v0"
	ScriptTaproot     ScriptClass = "taproot"
	ScriptNonStandard ScriptClass = "nonstandard"
	ScriptUnparseable ScriptClass = "unparseable"
)

// Script is a raw locking or unlocking script plus its classification.
type Script struct {
	Raw   []byte
	Class ScriptClass
}
