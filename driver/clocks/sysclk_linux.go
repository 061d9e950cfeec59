//go:build linux

package clocks

import (
	"go.uber.org/zap"

	"golang.org/x/sys/unix"

	"example.com/sim-time/base/timebase"
	"example.com/sim-time/base/timemath"
)

// SystemClockSource reads the raw monotonic clock, which is unaffected
// by NTP adjustments. Raw readings are nanoseconds, so the frequency is
// always 1 GHz.
type SystemClockSource struct {
	Log *zap.Logger
}

var _ timebase.ClockSource = (*SystemClockSource)(nil)

func (s *SystemClockSource) Read() timebase.RawInstant {
	var ts unix.Timespec
	err := unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts)
	if err != nil {
		s.Log.Fatal("unix.ClockGettime failed", zap.Error(err))
	}
	return timebase.RawInstant(uint64(ts.Sec)*1_000_000_000 + uint64(ts.Nsec))
}

func (s *SystemClockSource) Frequency() timemath.Frequency {
	return timemath.GHz(1)
}
