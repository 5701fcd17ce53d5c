package model

// TxStatus describes where a transaction sits relative to the chain.
type TxStatus struct {
	Confirmed bool
	// Height is the block height the transaction confirmed at. Only
	// meaningful when Confirmed is true.
	Height int64
}

// Unconfirmed returns the status of a mempool transaction.
func Unconfirmed() TxStatus {
	return TxStatus{}
}

// ConfirmedAt returns the status of a transaction mined at height.
func ConfirmedAt(height int64) TxStatus {
	return TxStatus{Confirmed: true, Height: height}
}

// Output is a value locked by a script. Value is always integer
// satoshis. Address is derived from the script and stays empty when
// the script cannot be parsed into one.
type Output struct {
	Index   uint32
	Value   int64
	Script  Script
	Address string
}

// Input references a previous output by txid and index. Resolved is
// populated only when the referenced output was looked up.
type Input struct {
	PrevTxID  string
	PrevIndex uint32
	Sequence  uint32
	ScriptSig Script
	Witness   [][]byte
	Resolved  *Output
}

// Transaction is an immutable snapshot of a transaction. A coinbase
// transaction carries no inputs. Fee is valid only when FeeKnown is
// set: it stays unknown for non-coinbase transactions until every
// input has been resolved.
type Transaction struct {
	TxID     string
	Version  uint32
	LockTime uint32
	Size     int32
	VSize    int32
	Weight   int32
	Coinbase bool
	Inputs   []Input
	Outputs  []Output
	Fee      int64
	FeeKnown bool
	Status   TxStatus
}

// OutputTotal sums the output values in satoshis.
func (t Transaction) OutputTotal() int64 {
	var total int64
	for _, out := range t.Outputs {
		total += out.Value
	}
	return total
}

// OutputMatch locates an output found by a value scan.
type OutputMatch struct {
	BlockHeight int64
	BlockHash   string
	TxID        string
	Output      Output
}

// InputTotal sums the resolved input values in satoshis. The second
// return is false when any input is unresolved.
func (t Transaction) InputTotal() (int64, bool) {
	var total int64
	for _, in := range t.Inputs {
		if in.Resolved == nil {
			return 0, false
		}
		total += in.Resolved.Value
	}
	return total, true
}
