package rate

import (
	"math"

	"lukechampine.com/uint128"

	"example.com/sim-time/base/timemath"
	"example.com/sim-time/core/clock"
)

// A Ticker fires at a fixed frequency of a clock whose advancement is
// fed to it in spans. Ticks that fall within the same nanosecond are
// all reported, the extras with a zero delta. It is not safe for
// concurrent use.
//
// Internally spans are measured in elements, nanoseconds times the
// frequency's tick count, so one tick happens every Per elements.
type Ticker struct {
	freq      timemath.Frequency
	untilNext uint128.Uint128
	now       timemath.TimeStamp
}

// NewTicker returns a ticker firing at frequency f, with the first
// tick one full period after start. A frequency with zero ticks never
// fires.
func NewTicker(f timemath.Frequency, start timemath.TimeStamp) (*Ticker, error) {
	return NewDelayedTicker(f, 0, start)
}

// NewDelayedTicker returns a ticker whose first tick is delayed by the
// given number of extra periods.
func NewDelayedTicker(f timemath.Frequency, periods uint64, start timemath.TimeStamp) (*Ticker, error) {
	if f.Per() == 0 {
		return nil, timemath.ErrInvalidFrequency
	}
	if periods > math.MaxInt64 {
		return nil, timemath.ErrInvalidArgument
	}
	return &Ticker{
		freq:      f,
		untilNext: uint128.From64(f.Per()).Mul64(periods).Add64(f.Per()),
		now:       start,
	}, nil
}

func (t *Ticker) Frequency() timemath.Frequency {
	return t.freq
}

func (t *Ticker) Now() timemath.TimeStamp {
	return t.now
}

// SetFrequency changes the ticker's frequency. With clipPeriod the
// pending wait is shortened to at most one new period; otherwise the
// next tick stays where it was.
func (t *Ticker) SetFrequency(f timemath.Frequency, clipPeriod bool) error {
	if f.Per() == 0 {
		return timemath.ErrInvalidFrequency
	}
	t.freq = f
	if clipPeriod {
		period := uint128.From64(f.Per())
		if t.untilNext.Cmp(period) > 0 {
			t.untilNext = period
		}
	}
	return nil
}

// NextTick returns the stamp of the upcoming tick. It reports false
// for a ticker that never fires.
func (t *Ticker) NextTick() (timemath.TimeStamp, bool) {
	if t.freq.Ticks() == 0 {
		return timemath.TimeStamp{}, false
	}
	wait, err := t.spanFitting(t.untilNext)
	if err != nil {
		return timemath.TimeStamp{}, false
	}
	next, err := t.now.Add(wait)
	if err != nil {
		return timemath.TimeStamp{}, false
	}
	return next, true
}

// TickCount advances the ticker by span and returns the number of
// ticks passed over, without visiting them individually.
func (t *Ticker) TickCount(span timemath.TimeSpan) (uint64, error) {
	if span.Sign() < 0 {
		return 0, timemath.ErrInvalidArgument
	}
	elems := t.elements(span)
	var n uint64
	if elems.Cmp(t.untilNext) >= 0 {
		q, rem := elems.Sub(t.untilNext).QuoRem64(t.freq.Per())
		if q.Hi != 0 || q.Lo == math.MaxUint64 {
			return 0, timemath.ErrArithmeticOverflow
		}
		n = 1 + q.Lo
		t.untilNext = uint128.From64(t.freq.Per() - rem)
	} else {
		t.untilNext = t.untilNext.Sub(elems)
	}
	now, err := t.now.Add(span)
	if err != nil {
		return 0, err
	}
	t.now = now
	return n, nil
}

// Ticks advances the ticker by span and calls fn for every tick passed
// over, in order, with the stamp it fired at and the span since the
// previous tick. It returns the number of ticks visited.
func (t *Ticker) Ticks(span timemath.TimeSpan, fn func(clock.Step)) (uint64, error) {
	if span.Sign() < 0 {
		return 0, timemath.ErrInvalidArgument
	}
	elems := t.elements(span)
	untilNext := t.untilNext
	now := t.now

	if elems.Cmp(t.untilNext) >= 0 {
		_, rem := elems.Sub(t.untilNext).QuoRem64(t.freq.Per())
		t.untilNext = uint128.From64(t.freq.Per() - rem)
	} else {
		t.untilNext = t.untilNext.Sub(elems)
	}
	tnow, err := t.now.Add(span)
	if err != nil {
		return 0, err
	}
	t.now = tnow

	var total, accumulated uint64
	for {
		if accumulated > 0 {
			// Further ticks within the same nanosecond.
			accumulated--
			total++
			fn(clock.Step{Now: now})
			continue
		}
		if elems.Cmp(untilNext) < 0 {
			return total, nil
		}
		next, err := t.spanFitting(untilNext)
		if err != nil {
			return total, err
		}
		advance := uint128.From64(uint64(next.Nanoseconds())).Mul64(t.freq.Ticks())
		periods, remaining := advance.Sub(untilNext).QuoRem64(t.freq.Per())
		if periods.Hi != 0 {
			return total, timemath.ErrArithmeticOverflow
		}
		accumulated = periods.Lo
		untilNext = uint128.From64(t.freq.Per() - remaining)
		elems = elems.Sub(advance)
		now, err = now.Add(next)
		if err != nil {
			return total, err
		}
		total++
		fn(clock.Step{Now: now, Delta: next})
	}
}

func (t *Ticker) elements(span timemath.TimeSpan) uint128.Uint128 {
	return uint128.From64(uint64(span.Nanoseconds())).Mul64(t.freq.Ticks())
}

// spanFitting returns the shortest span covering the given number of
// elements, the wait until the tick they end at.
func (t *Ticker) spanFitting(elems uint128.Uint128) (timemath.TimeSpan, error) {
	ticks := t.freq.Ticks()
	if ticks == 0 {
		return timemath.Zero, timemath.ErrInvalidFrequency
	}
	n := elems.Add64(ticks - 1).Div64(ticks)
	if n.Hi != 0 || n.Lo > math.MaxInt64 {
		return timemath.Zero, timemath.ErrArithmeticOverflow
	}
	return timemath.Nanoseconds(int64(n.Lo)), nil
}
