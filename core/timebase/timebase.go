package timebase

import (
	"math"
	"sync/atomic"

	"example.com/sim-time/base/timebase"
	"example.com/sim-time/base/timemath"
)

type reference struct {
	src  timebase.ClockSource
	base timebase.RawInstant
	freq timemath.Frequency
}

var ref atomic.Pointer[reference]

// RegisterSource installs the process-wide reference clock source. The
// registration instant becomes the epoch of Now. It must be called at
// most once, before any call to Elapsed or Now.
func RegisterSource(src timebase.ClockSource) {
	if src == nil {
		panic("clock source must not be nil")
	}
	f := src.Frequency()
	if f.Ticks() == 0 || f.Per() == 0 {
		panic("clock source frequency must be a valid nonzero rate")
	}
	r := &reference{src: src, base: src.Read(), freq: f}
	if !ref.CompareAndSwap(nil, r) {
		panic("clock source already registered")
	}
}

// Elapsed returns the time since the source was registered.
func Elapsed() timemath.TimeSpan {
	r := ref.Load()
	if r == nil {
		panic("no clock source registered")
	}
	raw := r.src.Read()
	if raw < r.base {
		raw = r.base
	}
	ticks := uint64(raw - r.base)
	if ticks > math.MaxInt64 {
		panic("clock source ran past the representable range")
	}
	ns, err := timemath.Convert(int64(ticks), r.freq, timemath.Ref)
	if err != nil {
		panic(err)
	}
	return timemath.Nanoseconds(ns)
}

// Now returns the current reading of the registered source as a stamp.
func Now() timemath.TimeStamp {
	return timemath.At(Elapsed())
}
