// Package safe provides checked numeric conversions for values that
// cross the RPC boundary.
package safe

import (
	"fmt"
	"math"
)

// Uint32 narrows a signed 64-bit value to uint32.
func Uint32(v int64) (uint32, error) {
	if v < 0 || v > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(v), nil
}

// Int64 converts an unsigned 64-bit value to int64.
func Int64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(v), nil
}

// NonNegative validates that a signed amount is not negative.
func NonNegative(v int64) (int64, error) {
	if v < 0 {
		return 0, fmt.Errorf("negative amount: %d", v)
	}
	return v, nil
}
