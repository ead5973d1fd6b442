// Package safe provides numeric conversions that fail instead of wrapping.
package safe

import (
	"fmt"
	"math"
	"math/big"
)

// Int64 converts an unsigned value to int64, rejecting values above math.MaxInt64.
func Int64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(v), nil
}

// BigUint64 converts a ledger integer to uint64. Nil and negative values are rejected.
func BigUint64(v *big.Int) (uint64, error) {
	if v == nil {
		return 0, fmt.Errorf("nil value")
	}
	if v.Sign() < 0 || !v.IsUint64() {
		return 0, fmt.Errorf("value %s out of uint64 range", v.String())
	}
	return v.Uint64(), nil
}
