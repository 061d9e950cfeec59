// Package timemath provides exact value types for simulation time:
// signed nanosecond durations (TimeSpan), points on an arbitrary
// timeline (TimeStamp), and rational tick rates (Frequency).
//
// All arithmetic is integer arithmetic. Unit conversion goes through
// widened 128-bit intermediates with a fixed rounding rule, never
// through floating point, so repeated conversion does not drift.
package timemath

import (
	"math"

	"lukechampine.com/uint128"
)

// Gcd returns the greatest common divisor of a and b.
// Gcd(0, b) is b and Gcd(a, 0) is a.
func Gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func gcd128(a, b uint128.Uint128) uint128.Uint128 {
	for !b.IsZero() {
		a, b = b, a.Mod(b)
	}
	return a
}

// MulDiv computes v * num / den with a 128-bit intermediate product.
// Inexact divisions round half to even. It fails with
// ErrArithmeticOverflow if the result does not fit in an int64.
func MulDiv(v int64, num, den uint64) (int64, error) {
	if den == 0 {
		return 0, ErrInvalidArgument
	}
	neg := v < 0
	mag := uint64(v)
	if neg {
		mag = -mag
	}
	q, r := uint128.From64(mag).Mul64(num).QuoRem64(den)
	switch uint128.From64(r).Lsh(1).Cmp64(den) {
	case 1:
		q = q.Add64(1)
	case 0:
		if q.Lo&1 == 1 {
			q = q.Add64(1)
		}
	}
	if neg {
		if q.Hi != 0 || q.Lo > 1<<63 {
			return 0, ErrArithmeticOverflow
		}
		if q.Lo == 1<<63 {
			return math.MinInt64, nil
		}
		return -int64(q.Lo), nil
	}
	if q.Hi != 0 || q.Lo > math.MaxInt64 {
		return 0, ErrArithmeticOverflow
	}
	return int64(q.Lo), nil
}
