package bitcoinrpc

import (
	"github.com/goodnatureofminers/btcquery/fault"
)

// maxConfTarget matches Bitcoin Core's estimatesmartfee upper bound.
const maxConfTarget = 1008

// ValidateHeight rejects negative block heights before they reach the
// network.
func ValidateHeight(height int64) error {
	if height < 0 {
		return fault.Newf(fault.InvalidRequest, "", "block height %d is negative", height)
	}
	return nil
}

// ValidateHash rejects strings that are not 64 hex characters.
func ValidateHash(s string) error {
	if len(s) != 64 {
		return fault.Newf(fault.InvalidRequest, "", "hash %q: want 64 hex characters, got %d", s, len(s))
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return fault.Newf(fault.InvalidRequest, "", "hash %q: invalid hex character %q", s, r)
		}
	}
	return nil
}

// ValidateConfTarget bounds fee-estimate confirmation targets.
func ValidateConfTarget(target int64) error {
	if target < 1 || target > maxConfTarget {
		return fault.Newf(fault.InvalidRequest, "", "confirmation target %d outside [1, %d]", target, maxConfTarget)
	}
	return nil
}
