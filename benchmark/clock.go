package benchmark

import (
	"log"
	"os"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"example.com/sim-time/base/timebase"
	"example.com/sim-time/core/clock"
)

// RunClockBenchmark steps a clock over the given source as fast as
// possible and prints the delta distribution, exposing the effective
// resolution and read latency of the source.
func RunClockBenchmark(src timebase.ClockSource, rounds int) {
	hg := hdrhistogram.New(1, time.Second.Nanoseconds(), 5)

	clk, err := clock.New(src, clock.Options{})
	if err != nil {
		log.Printf("Failed to create clock: %v", err)
		return
	}
	clk.Start()

	t0 := time.Now()
	for i := rounds; i > 0; i-- {
		st, err := clk.Step()
		if err != nil {
			log.Printf("Failed to step clock: %v", err)
			return
		}
		if st.Delta.Nanoseconds() == 0 {
			continue
		}
		err = hg.RecordValue(st.Delta.Nanoseconds())
		if err != nil {
			log.Printf("Failed to record histogram value: %v", err)
			return
		}
	}
	hg.PercentilesPrint(os.Stdout, 1, 1.0)
	log.Print(time.Since(t0))
}
