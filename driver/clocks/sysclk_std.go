//go:build !linux

package clocks

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"example.com/sim-time/base/timebase"
	"example.com/sim-time/base/timemath"
)

// SystemClockSource reads the runtime's monotonic clock relative to
// the first reading.
type SystemClockSource struct {
	Log   *zap.Logger
	once  sync.Once
	start time.Time
}

var _ timebase.ClockSource = (*SystemClockSource)(nil)

func (s *SystemClockSource) Read() timebase.RawInstant {
	s.once.Do(func() {
		s.start = time.Now()
	})
	return timebase.RawInstant(time.Since(s.start))
}

func (s *SystemClockSource) Frequency() timemath.Frequency {
	return timemath.GHz(1)
}
