package timebase

import (
	"example.com/sim-time/base/timemath"
)

// RawInstant is an uninterpreted reading of a ClockSource. Raw values
// are only meaningful relative to other readings of the same source,
// scaled by the source's frequency.
type RawInstant uint64

// A ClockSource provides monotonic raw readings of some underlying
// clock hardware or test fixture. Read must never block; Frequency
// must be constant over the lifetime of the source.
type ClockSource interface {
	Read() RawInstant
	Frequency() timemath.Frequency
}
