// Driver for quick experiments

package main

import (
	"example.com/sim-time/base/timemath"
	"example.com/sim-time/base/zaplog"

	"example.com/sim-time/core/clock"
	"example.com/sim-time/driver/clocks"

	"go.uber.org/zap"
)

func runX() {
	initLogger(true /* verbose */)

	log := zaplog.Logger()

	src := &clocks.SystemClockSource{Log: log}
	clk, err := clock.New(src, clock.Options{})
	if err != nil {
		log.Fatal("failed to create clock", zap.Error(err))
	}
	clk.Start()

	st, err := clk.Step()
	if err != nil {
		log.Fatal("failed to step clock", zap.Error(err))
	}
	log.Debug("clock step", zap.Stringer("now", st.Now), zap.Stringer("delta", st.Delta))

	frame, err := timemath.FromCount(1, timemath.Hz(60))
	if err != nil {
		log.Fatal("failed to derive frame span", zap.Error(err))
	}
	log.Debug("one frame at 60 Hz", zap.Stringer("span", frame))
}
