//go:build linux

package clocks

import (
	"sync"

	"go.uber.org/zap"

	"golang.org/x/sys/unix"

	"github.com/tklauser/go-sysconf"

	"example.com/sim-time/base/timebase"
	"example.com/sim-time/base/timemath"
)

// CoarseClockSource reads the coarse monotonic clock and quantizes the
// readings to scheduler ticks. Useful to exercise consumers against a
// low-resolution source; resolution is SC_CLK_TCK, typically 100 Hz.
type CoarseClockSource struct {
	Log  *zap.Logger
	once sync.Once
	freq timemath.Frequency
}

var _ timebase.ClockSource = (*CoarseClockSource)(nil)

func (s *CoarseClockSource) init() {
	s.once.Do(func() {
		clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
		if err != nil {
			s.Log.Fatal("sysconf.Sysconf failed", zap.Error(err))
		}
		s.freq = timemath.Hz(uint64(clktck))
	})
}

func (s *CoarseClockSource) Read() timebase.RawInstant {
	s.init()
	var ts unix.Timespec
	err := unix.ClockGettime(unix.CLOCK_MONOTONIC_COARSE, &ts)
	if err != nil {
		s.Log.Fatal("unix.ClockGettime failed", zap.Error(err))
	}
	ns := uint64(ts.Sec)*1_000_000_000 + uint64(ts.Nsec)
	raw, err := timemath.MulDiv(int64(ns), s.freq.Ticks(), s.freq.Per())
	if err != nil {
		s.Log.Fatal("clock reading not representable", zap.Error(err))
	}
	return timebase.RawInstant(raw)
}

func (s *CoarseClockSource) Frequency() timemath.Frequency {
	s.init()
	return s.freq
}
