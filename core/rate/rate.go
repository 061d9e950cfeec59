// Package rate scales externally measured time spans by a rational
// rate, for slow motion, fast forward and pause, and derives tickers
// that fire at a fixed frequency of the scaled clock.
package rate

import (
	"math"

	"lukechampine.com/uint128"

	"example.com/sim-time/base/timemath"
	"example.com/sim-time/core/clock"
)

// A ClockRate advances a clock by num/den of every span fed to Step.
// Scaling is exact; sub-nanosecond progress carries between steps. It
// is not safe for concurrent use.
type ClockRate struct {
	now      timemath.TimeStamp
	num, den uint64
	// progress counts den-units accumulated toward the next whole
	// clock nanosecond, always < den.
	progress uint64
}

// NewClockRate returns a clock at rate 1.
func NewClockRate() *ClockRate {
	return &ClockRate{num: 1, den: 1}
}

// Reset moves the clock back to the epoch, discarding carried
// progress. The rate is kept.
func (r *ClockRate) Reset() {
	r.now = timemath.Epoch
	r.progress = 0
}

func (r *ClockRate) Now() timemath.TimeStamp {
	return r.now
}

func (r *ClockRate) SetNow(now timemath.TimeStamp) {
	r.now = now
}

// SetRateRatio sets the rate to num/den exactly.
func (r *ClockRate) SetRateRatio(num, den uint64) error {
	if den == 0 {
		return timemath.ErrInvalidFrequency
	}
	if num == 0 {
		r.num, r.den = 0, 1
		return nil
	}
	g := timemath.Gcd(num, den)
	r.num, r.den = num/g, den/g
	return nil
}

// RateRatio returns the current rate as a reduced ratio.
func (r *ClockRate) RateRatio() (num, den uint64) {
	return r.num, r.den
}

// SetRate approximates the given float rate by a ratio.
func (r *ClockRate) SetRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 || rate > 1<<62 {
		return timemath.ErrInvalidArgument
	}
	num, den := ratio(rate)
	return r.SetRateRatio(num, den)
}

func (r *ClockRate) Rate() float64 {
	return float64(r.num) / float64(r.den)
}

// Pause sets the rate to zero. Step keeps accepting spans but the
// clock no longer advances.
func (r *ClockRate) Pause() {
	r.num = 0
	r.den = 1
	r.progress = 0
}

// Step advances the clock by the scaled span and returns the stamp it
// advanced to along with the scaled delta.
func (r *ClockRate) Step(span timemath.TimeSpan) (clock.Step, error) {
	if span.Sign() < 0 {
		return clock.Step{}, timemath.ErrInvalidArgument
	}
	total := uint128.From64(uint64(span.Nanoseconds())).Mul64(r.num).Add64(r.progress)
	q, rem := total.QuoRem64(r.den)
	if q.Hi != 0 || q.Lo > math.MaxInt64 {
		return clock.Step{}, timemath.ErrArithmeticOverflow
	}
	r.progress = rem
	if q.Lo == 0 {
		return clock.Step{Now: r.now}, nil
	}
	delta := timemath.Nanoseconds(int64(q.Lo))
	now, err := r.now.Add(delta)
	if err != nil {
		return clock.Step{}, err
	}
	r.now = now
	return clock.Step{Now: now, Delta: delta}, nil
}

// Ticker returns a ticker firing at the given frequency of this clock,
// starting at its current stamp. The rate is folded into the ticker's
// frequency, so later rate changes do not affect it.
func (r *ClockRate) Ticker(f timemath.Frequency) (*Ticker, error) {
	scaled, err := f.Scale(r.num, r.den)
	if err != nil {
		return nil, err
	}
	return NewTicker(scaled, r.now)
}

// ratio approximates a nonnegative float by a fraction, growing the
// denominator until the remaining fractional part is negligible.
func ratio(v float64) (num, den uint64) {
	const epsilon = 1e-9
	const maxIter = 50

	d := uint64(1)
	n := v
	for i := 0; i < maxIter; i++ {
		f := n - math.Trunc(n)
		if f < epsilon {
			break
		}
		if d > math.MaxUint32 {
			break
		}
		d = uint64(math.Ceil(float64(d) / f))
		n = v * float64(d)
	}
	z := uint64(math.Trunc(n))
	g := timemath.Gcd(z, d)
	return z / g, d / g
}
