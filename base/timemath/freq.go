package timemath

import (
	"lukechampine.com/uint128"
)

// Frequency is an exact tick rate: Ticks ticks per Per nanoseconds,
// always held in lowest terms so that two frequencies describing the
// same rate compare equal. The zero value is not a usable frequency;
// construct values with NewFrequency or the Hz helpers.
type Frequency struct {
	ticks uint64
	per   uint64
}

// Ref is the internal reference frequency, one tick per nanosecond.
// It is the rate at which TimeSpan stores its ticks.
var Ref = Frequency{ticks: 1, per: 1}

// NewFrequency returns the reduced frequency of ticks per `per`
// nanoseconds. It fails with ErrInvalidFrequency if per is zero.
func NewFrequency(ticks, per uint64) (Frequency, error) {
	if per == 0 {
		return Frequency{}, ErrInvalidFrequency
	}
	if ticks == 0 {
		return Frequency{ticks: 0, per: 1}, nil
	}
	g := Gcd(ticks, per)
	return Frequency{ticks: ticks / g, per: per / g}, nil
}

// Hz returns the frequency of n ticks per second.
func Hz(n uint64) Frequency {
	f, _ := NewFrequency(n, uint64(Second.ns))
	return f
}

// KHz returns the frequency of n ticks per millisecond.
func KHz(n uint64) Frequency {
	f, _ := NewFrequency(n, uint64(Millisecond.ns))
	return f
}

// MHz returns the frequency of n ticks per microsecond.
func MHz(n uint64) Frequency {
	f, _ := NewFrequency(n, uint64(Microsecond.ns))
	return f
}

// GHz returns the frequency of n ticks per nanosecond.
func GHz(n uint64) Frequency {
	f, _ := NewFrequency(n, 1)
	return f
}

// Ticks returns the numerator of the reduced rate.
func (f Frequency) Ticks() uint64 {
	return f.ticks
}

// Per returns the denominator of the reduced rate, in nanoseconds.
// It is zero only for the invalid zero value.
func (f Frequency) Per() uint64 {
	return f.per
}

// IsZero reports whether the frequency describes a zero rate.
func (f Frequency) IsZero() bool {
	return f.ticks == 0
}

// Reciprocal returns the inverted rate, `per` ticks per `ticks`
// nanoseconds. It fails with ErrInvalidFrequency on a zero rate.
func (f Frequency) Reciprocal() (Frequency, error) {
	if f.ticks == 0 || f.per == 0 {
		return Frequency{}, ErrInvalidFrequency
	}
	return Frequency{ticks: f.per, per: f.ticks}, nil
}

// Scale multiplies the rate by the exact ratio num/den and reduces the
// result. It fails with ErrInvalidFrequency if den is zero or f is the
// invalid zero value, and with ErrArithmeticOverflow if the reduced
// result does not fit.
func (f Frequency) Scale(num, den uint64) (Frequency, error) {
	if den == 0 || f.per == 0 {
		return Frequency{}, ErrInvalidFrequency
	}
	ts := uint128.From64(f.ticks).Mul64(num)
	ps := uint128.From64(f.per).Mul64(den)
	if ts.IsZero() {
		return Frequency{ticks: 0, per: 1}, nil
	}
	g := gcd128(ts, ps)
	ts, ps = ts.Div(g), ps.Div(g)
	if ts.Hi != 0 || ps.Hi != 0 {
		return Frequency{}, ErrArithmeticOverflow
	}
	return Frequency{ticks: ts.Lo, per: ps.Lo}, nil
}

// Convert rescales a tick count from one frequency to another exactly:
// count * (to.Ticks * from.Per) / (to.Per * from.Ticks), computed with
// widened intermediates and rounded half to even when inexact. It
// fails with ErrInvalidFrequency if either frequency is unusable as a
// conversion source or target, and with ErrArithmeticOverflow if the
// result exceeds the representable range.
func Convert(count int64, from, to Frequency) (int64, error) {
	if from.per == 0 || to.per == 0 || from.ticks == 0 {
		return 0, ErrInvalidFrequency
	}
	// Cross-reduce before widening. Both operands are already in
	// lowest terms, so the remaining factor is fully reduced and fits
	// in a u64/u64 pair for every physically meaningful rate.
	g1 := Gcd(to.ticks, from.ticks)
	tn, fn := to.ticks/g1, from.ticks/g1
	g2 := Gcd(from.per, to.per)
	fp, tp := from.per/g2, to.per/g2
	num := uint128.From64(tn).Mul64(fp)
	den := uint128.From64(tp).Mul64(fn)
	if num.Hi != 0 || den.Hi != 0 {
		return 0, ErrArithmeticOverflow
	}
	return MulDiv(count, num.Lo, den.Lo)
}
