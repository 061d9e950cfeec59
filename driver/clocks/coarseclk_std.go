//go:build !linux

package clocks

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"example.com/sim-time/base/timebase"
	"example.com/sim-time/base/timemath"
)

const coarseTicksPerSecond = 100

// CoarseClockSource quantizes the runtime's monotonic clock to a fixed
// low resolution, standing in for the scheduler-tick clock available
// on Linux.
type CoarseClockSource struct {
	Log   *zap.Logger
	once  sync.Once
	start time.Time
}

var _ timebase.ClockSource = (*CoarseClockSource)(nil)

func (s *CoarseClockSource) Read() timebase.RawInstant {
	s.once.Do(func() {
		s.start = time.Now()
	})
	ns := time.Since(s.start).Nanoseconds()
	f := s.Frequency()
	raw, err := timemath.MulDiv(ns, f.Ticks(), f.Per())
	if err != nil {
		s.Log.Fatal("clock reading not representable", zap.Error(err))
	}
	return timebase.RawInstant(raw)
}

func (s *CoarseClockSource) Frequency() timemath.Frequency {
	return timemath.Hz(coarseTicksPerSecond)
}
