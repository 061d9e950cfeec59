// Package clock turns raw readings of a ClockSource into a monotonic
// stream of time stamps and deltas.
package clock

import (
	"math"

	"example.com/sim-time/base/timebase"
	"example.com/sim-time/base/timemath"
)

// Options configure how a Clock handles the edges of its source.
type Options struct {
	// RequireStart makes Step fail with ErrInvalidArgument when the
	// clock was never started. By default the first Step starts the
	// clock implicitly and reports a zero delta.
	RequireStart bool
	// ClampBackwards makes Step absorb source readings that went
	// backwards, reporting a zero delta and keeping the high-water
	// reading. By default such readings fail with
	// ErrNonMonotonicSource.
	ClampBackwards bool
}

// A Step is one observation of the clock: the stamp it advanced to and
// the span since the previous observation.
type Step struct {
	Now   timemath.TimeStamp
	Delta timemath.TimeSpan
}

// A Clock tracks a ClockSource and hands out monotonic deltas. It is
// not safe for concurrent use.
type Clock struct {
	src     timebase.ClockSource
	freq    timemath.Frequency
	opts    Options
	started bool
	base    timebase.RawInstant
	lastRaw timebase.RawInstant
	now     timemath.TimeStamp
}

func New(src timebase.ClockSource, opts Options) (*Clock, error) {
	if src == nil {
		return nil, timemath.ErrInvalidArgument
	}
	f := src.Frequency()
	if f.Ticks() == 0 || f.Per() == 0 {
		return nil, timemath.ErrInvalidFrequency
	}
	return &Clock{src: src, freq: f, opts: opts}, nil
}

// Start samples the source and resets the clock to the epoch. Calling
// Start again rebases the clock on the current reading.
func (c *Clock) Start() {
	raw := c.src.Read()
	c.base = raw
	c.lastRaw = raw
	c.now = timemath.Epoch
	c.started = true
}

// Now returns the stamp of the most recent step.
func (c *Clock) Now() timemath.TimeStamp {
	return c.now
}

// Step samples the source and returns the stamp it advanced to along
// with the span since the previous step. Deltas are never negative.
func (c *Clock) Step() (Step, error) {
	if !c.started {
		if c.opts.RequireStart {
			return Step{}, timemath.ErrInvalidArgument
		}
		c.Start()
		return Step{Now: c.now}, nil
	}
	raw := c.src.Read()
	if raw < c.lastRaw {
		if !c.opts.ClampBackwards {
			return Step{}, timemath.ErrNonMonotonicSource
		}
		return Step{Now: c.now}, nil
	}
	c.lastRaw = raw
	ticks := uint64(raw - c.base)
	if ticks > math.MaxInt64 {
		return Step{}, timemath.ErrArithmeticOverflow
	}
	ns, err := timemath.Convert(int64(ticks), c.freq, timemath.Ref)
	if err != nil {
		return Step{}, err
	}
	now := timemath.At(timemath.Nanoseconds(ns))
	delta, err := now.Sub(c.now)
	if err != nil {
		return Step{}, err
	}
	c.now = now
	return Step{Now: now, Delta: delta}, nil
}
