package timemath

import (
	"math"
	"time"
)

// TimeSpan is a signed duration with nanosecond resolution. The zero
// value is the empty span. Two TimeSpans are equal iff their tick
// counts are equal; there is no fuzzy comparison.
//
// Checked arithmetic fails with ErrArithmeticOverflow instead of
// wrapping; the *Sat variants clamp to MinSpan/MaxSpan instead.
type TimeSpan struct {
	ns int64
}

var (
	Zero    = TimeSpan{}
	MinSpan = TimeSpan{ns: math.MinInt64}
	MaxSpan = TimeSpan{ns: math.MaxInt64}

	Nanosecond  = TimeSpan{ns: 1}
	Microsecond = TimeSpan{ns: 1_000}
	Millisecond = TimeSpan{ns: 1_000_000}
	Second      = TimeSpan{ns: 1_000_000_000}
	Minute      = TimeSpan{ns: 60 * 1_000_000_000}
	Hour        = TimeSpan{ns: 3_600 * 1_000_000_000}
	Day         = TimeSpan{ns: 86_400 * 1_000_000_000}
	Week        = TimeSpan{ns: 7 * 86_400 * 1_000_000_000}
)

// Nanoseconds returns the span holding n nanosecond ticks.
func Nanoseconds(n int64) TimeSpan {
	return TimeSpan{ns: n}
}

// FromDuration converts a standard library duration.
func FromDuration(d time.Duration) TimeSpan {
	return TimeSpan{ns: int64(d)}
}

// FromCount returns the span covered by count ticks at frequency f.
func FromCount(count int64, f Frequency) (TimeSpan, error) {
	n, err := Convert(count, f, Ref)
	if err != nil {
		return Zero, err
	}
	return TimeSpan{ns: n}, nil
}

func (s TimeSpan) Nanoseconds() int64 {
	return s.ns
}

func (s TimeSpan) Duration() time.Duration {
	return time.Duration(s.ns)
}

// Seconds returns the span as a floating point number of seconds.
// Presentation only; no internal arithmetic uses it.
func (s TimeSpan) Seconds() float64 {
	return float64(s.ns) / float64(Second.ns)
}

// Count returns the number of ticks at frequency f covered by s.
func (s TimeSpan) Count(f Frequency) (int64, error) {
	return Convert(s.ns, Ref, f)
}

func (s TimeSpan) Add(t TimeSpan) (TimeSpan, error) {
	if t.ns > 0 && s.ns > math.MaxInt64-t.ns {
		return Zero, ErrArithmeticOverflow
	}
	if t.ns < 0 && s.ns < math.MinInt64-t.ns {
		return Zero, ErrArithmeticOverflow
	}
	return TimeSpan{ns: s.ns + t.ns}, nil
}

func (s TimeSpan) Sub(t TimeSpan) (TimeSpan, error) {
	if t.ns > 0 && s.ns < math.MinInt64+t.ns {
		return Zero, ErrArithmeticOverflow
	}
	if t.ns < 0 && s.ns > math.MaxInt64+t.ns {
		return Zero, ErrArithmeticOverflow
	}
	return TimeSpan{ns: s.ns - t.ns}, nil
}

func (s TimeSpan) Neg() (TimeSpan, error) {
	if s.ns == math.MinInt64 {
		return Zero, ErrArithmeticOverflow
	}
	return TimeSpan{ns: -s.ns}, nil
}

func (s TimeSpan) Abs() (TimeSpan, error) {
	if s.ns >= 0 {
		return s, nil
	}
	return s.Neg()
}

// Mul scales the span by an integer factor.
func (s TimeSpan) Mul(k int64) (TimeSpan, error) {
	if s.ns == 0 || k == 0 {
		return Zero, nil
	}
	if k == -1 {
		return s.Neg()
	}
	if s.ns == math.MinInt64 && k != 1 {
		return Zero, ErrArithmeticOverflow
	}
	r := s.ns * k
	if r/k != s.ns {
		return Zero, ErrArithmeticOverflow
	}
	return TimeSpan{ns: r}, nil
}

// Div divides the span by an integer factor, truncating toward zero.
func (s TimeSpan) Div(k int64) (TimeSpan, error) {
	if k == 0 {
		return Zero, ErrInvalidArgument
	}
	if s.ns == math.MinInt64 && k == -1 {
		return Zero, ErrArithmeticOverflow
	}
	return TimeSpan{ns: s.ns / k}, nil
}

// AddSat is Add clamped to the representable range.
func (s TimeSpan) AddSat(t TimeSpan) TimeSpan {
	r, err := s.Add(t)
	if err != nil {
		if t.ns > 0 {
			return MaxSpan
		}
		return MinSpan
	}
	return r
}

// SubSat is Sub clamped to the representable range.
func (s TimeSpan) SubSat(t TimeSpan) TimeSpan {
	r, err := s.Sub(t)
	if err != nil {
		if t.ns > 0 {
			return MinSpan
		}
		return MaxSpan
	}
	return r
}

// MulSat is Mul clamped to the representable range.
func (s TimeSpan) MulSat(k int64) TimeSpan {
	r, err := s.Mul(k)
	if err != nil {
		if (s.ns > 0) == (k > 0) {
			return MaxSpan
		}
		return MinSpan
	}
	return r
}

func (s TimeSpan) Sign() int {
	switch {
	case s.ns < 0:
		return -1
	case s.ns > 0:
		return 1
	default:
		return 0
	}
}

func (s TimeSpan) Compare(t TimeSpan) int {
	switch {
	case s.ns < t.ns:
		return -1
	case s.ns > t.ns:
		return 1
	default:
		return 0
	}
}
