// Simulation time tool

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"example.com/sim-time/base/metrics"
	"example.com/sim-time/base/timebase"
	"example.com/sim-time/base/timemath"
	"example.com/sim-time/base/zaplog"

	"example.com/sim-time/benchmark"

	"example.com/sim-time/core/clock"
	"example.com/sim-time/core/rate"
	"example.com/sim-time/core/step"
	coretimebase "example.com/sim-time/core/timebase"

	"example.com/sim-time/driver/clocks"
)

const (
	defaultMaxStepsPerUpdate = 5
	defaultMetricsAddr       = "127.0.0.1:8080"
	defaultBenchmarkRounds   = 1_000_000
)

type simConfig struct {
	StepInterval      timemath.TimeSpan  `toml:"step_interval,omitempty"`
	StepFrequency     timemath.Frequency `toml:"step_frequency,omitempty"`
	MaxStepsPerUpdate int                `toml:"max_steps_per_update,omitempty"`
	Rate              float64            `toml:"rate,omitempty"`
	RunDuration       timemath.TimeSpan  `toml:"run_duration,omitempty"`
	MetricsAddr       string             `toml:"metrics_address,omitempty"`
	CoarseClock       bool               `toml:"coarse_clock,omitempty"`
	ClampBackwards    bool               `toml:"clamp_backwards,omitempty"`
	BenchmarkRounds   int                `toml:"benchmark_rounds,omitempty"`
}

var (
	log *zap.Logger
)

func initLogger(verbose bool) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	c.EncoderConfig.EncodeCaller = func(
		caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		p := caller.TrimmedPath()
		if len(p) > 30 {
			p = "..." + p[len(p)-27:]
		}
		enc.AppendString(fmt.Sprintf("%30s", p))
	}
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var err error
	log, err = c.Build()
	if err != nil {
		panic(err)
	}
	zaplog.SetLogger(log)
}

func runMonitor(log *zap.Logger, addr string) {
	if addr == "" {
		addr = defaultMetricsAddr
	}
	http.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(addr, nil)
	log.Fatal("failed to serve metrics", zap.Error(err))
}

func loadConfig(configFile string) simConfig {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	var cfg simConfig
	err = toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		log.Fatal("failed to decode configuration", zap.Error(err))
	}
	return cfg
}

// stepFromConfig picks the fixed step size: an explicit interval wins,
// then a step frequency, then the 60 Hz default.
func stepFromConfig(cfg simConfig) timemath.TimeSpan {
	if cfg.StepInterval != timemath.Zero {
		return cfg.StepInterval
	}
	if cfg.StepFrequency.Per() != 0 {
		s, err := timemath.FromCount(1, cfg.StepFrequency)
		if err != nil {
			log.Fatal("invalid step frequency", zap.Error(err))
		}
		return s
	}
	return timemath.Nanoseconds(timemath.Second.Nanoseconds() / 60)
}

func newClockSource(cfg simConfig) timebase.ClockSource {
	if cfg.CoarseClock {
		return &clocks.CoarseClockSource{Log: log}
	}
	return &clocks.SystemClockSource{Log: log}
}

func runLoop(configFile string) {
	cfg := loadConfig(configFile)

	src := newClockSource(cfg)
	coretimebase.RegisterSource(src)

	clk, err := clock.New(src, clock.Options{ClampBackwards: cfg.ClampBackwards})
	if err != nil {
		log.Fatal("failed to create clock", zap.Error(err))
	}

	stepSize := stepFromConfig(cfg)
	maxSteps := cfg.MaxStepsPerUpdate
	if maxSteps == 0 {
		maxSteps = defaultMaxStepsPerUpdate
	}
	tmr, err := step.NewTimer(stepSize, maxSteps)
	if err != nil {
		log.Fatal("failed to create step timer", zap.Error(err))
	}

	rc := rate.NewClockRate()
	if cfg.Rate != 0 {
		err = rc.SetRate(cfg.Rate)
		if err != nil {
			log.Fatal("failed to set clock rate", zap.Error(err))
		}
	}

	clockSteps := promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.LoopClockStepsN,
		Help: metrics.LoopClockStepsH,
	})
	clamps := promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.LoopClampsN,
		Help: metrics.LoopClampsH,
	})
	ticks := promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.LoopTicksN,
		Help: metrics.LoopTicksH,
	})
	ticksDropped := promauto.NewCounter(prometheus.CounterOpts{
		Name: metrics.LoopTicksDroppedN,
		Help: metrics.LoopTicksDroppedH,
	})

	go runMonitor(log, cfg.MetricsAddr)

	log.Info("starting simulation loop",
		zap.Stringer("step", stepSize),
		zap.Int("max steps per update", maxSteps),
		zap.Float64("rate", rc.Rate()),
	)

	clk.Start()
	var deadline timemath.TimeStamp
	if cfg.RunDuration != timemath.Zero {
		deadline, err = timemath.Epoch.Add(cfg.RunDuration)
		if err != nil {
			log.Fatal("invalid run duration", zap.Error(err))
		}
	}
	for {
		st, err := clk.Step()
		if err != nil {
			if errors.Is(err, timemath.ErrNonMonotonicSource) {
				clamps.Inc()
				continue
			}
			log.Fatal("failed to step clock", zap.Error(err))
		}
		clockSteps.Inc()

		game, err := rc.Step(st.Delta)
		if err != nil {
			log.Fatal("failed to scale clock step", zap.Error(err))
		}

		res, err := tmr.Advance(game.Delta)
		if err != nil {
			log.Fatal("failed to advance step timer", zap.Error(err))
		}
		ticks.Add(float64(res.Ticks))
		if res.Dropped != 0 {
			ticksDropped.Add(float64(res.Dropped))
			log.Info("dropped simulation steps over the update cap",
				zap.Int("dropped", res.Dropped),
				zap.Stringer("now", game.Now),
			)
		}
		if res.Ticks != 0 {
			num, den := tmr.Fraction()
			log.Debug("simulation update",
				zap.Stringer("now", game.Now),
				zap.Int("ticks", res.Ticks),
				zap.Int64("fraction num", num),
				zap.Int64("fraction den", den),
			)
		}

		if cfg.RunDuration != timemath.Zero && !game.Now.Before(deadline) {
			log.Info("run duration reached", zap.Stringer("now", game.Now))
			return
		}
		time.Sleep(stepSize.Duration() / 4)
	}
}

func runBenchmark(configFile string) {
	cfg := loadConfig(configFile)
	rounds := cfg.BenchmarkRounds
	if rounds == 0 {
		rounds = defaultBenchmarkRounds
	}
	src := newClockSource(cfg)
	benchmark.RunClockBenchmark(src, rounds)
}

func exitWithUsage() {
	fmt.Println("<usage>")
	os.Exit(1)
}

func main() {
	var (
		verbose    bool
		configFile string
	)

	loopFlags := flag.NewFlagSet("loop", flag.ExitOnError)
	benchmarkFlags := flag.NewFlagSet("benchmark", flag.ExitOnError)

	loopFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	loopFlags.StringVar(&configFile, "config", "", "Config file")

	benchmarkFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	benchmarkFlags.StringVar(&configFile, "config", "", "Config file")

	if len(os.Args) < 2 {
		exitWithUsage()
	}

	switch os.Args[1] {
	case loopFlags.Name():
		err := loopFlags.Parse(os.Args[2:])
		if err != nil || loopFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose)
		runLoop(configFile)
	case benchmarkFlags.Name():
		err := benchmarkFlags.Parse(os.Args[2:])
		if err != nil || benchmarkFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose)
		runBenchmark(configFile)
	case "x":
		runX()
	default:
		exitWithUsage()
	}
}
