package rate_test

import (
	"errors"
	"math"
	"testing"

	"example.com/sim-time/base/timemath"
	"example.com/sim-time/core/rate"
)

func TestClockRateUnity(t *testing.T) {
	r := rate.NewClockRate()
	var total int64
	for _, d := range []int64{5, 5, 16_666_666, 0, 1} {
		st, err := r.Step(timemath.Nanoseconds(d))
		if err != nil {
			t.Fatalf("Step(%dns) error: %v", d, err)
		}
		if st.Delta != timemath.Nanoseconds(d) {
			t.Errorf("Step(%dns) delta = %v, want %dns", d, st.Delta, d)
		}
		total += d
		if st.Now != timemath.At(timemath.Nanoseconds(total)) {
			t.Errorf("Step(%dns) now = %v, want %dns", d, st.Now, total)
		}
	}
}

func TestClockRateHalf(t *testing.T) {
	r := rate.NewClockRate()
	if err := r.SetRateRatio(1, 2); err != nil {
		t.Fatalf("SetRateRatio error: %v", err)
	}
	st, err := r.Step(timemath.Nanoseconds(5))
	if err != nil {
		t.Fatalf("Step error: %v", err)
	}
	if st.Delta != timemath.Nanoseconds(2) {
		t.Errorf("first step delta = %v, want 2ns", st.Delta)
	}
	// The carried half nanosecond completes on the second step.
	st, err = r.Step(timemath.Nanoseconds(5))
	if err != nil {
		t.Fatalf("Step error: %v", err)
	}
	if st.Delta != timemath.Nanoseconds(3) {
		t.Errorf("second step delta = %v, want 3ns", st.Delta)
	}
	if st.Now != timemath.At(timemath.Nanoseconds(5)) {
		t.Errorf("now = %v, want 5ns", st.Now)
	}
}

func TestClockRateSubNanosecond(t *testing.T) {
	r := rate.NewClockRate()
	if err := r.SetRateRatio(1, 10); err != nil {
		t.Fatalf("SetRateRatio error: %v", err)
	}
	for i := 0; i < 9; i++ {
		st, err := r.Step(timemath.Nanosecond)
		if err != nil {
			t.Fatalf("Step error: %v", err)
		}
		if st.Delta != timemath.Zero {
			t.Fatalf("step %d delta = %v, want 0", i, st.Delta)
		}
	}
	st, err := r.Step(timemath.Nanosecond)
	if err != nil {
		t.Fatalf("Step error: %v", err)
	}
	if st.Delta != timemath.Nanosecond {
		t.Errorf("tenth step delta = %v, want 1ns", st.Delta)
	}
}

func TestClockRatePause(t *testing.T) {
	r := rate.NewClockRate()
	if _, err := r.Step(timemath.Second); err != nil {
		t.Fatalf("Step error: %v", err)
	}
	r.Pause()
	st, err := r.Step(timemath.Second)
	if err != nil {
		t.Fatalf("Step error: %v", err)
	}
	if st.Delta != timemath.Zero || st.Now != timemath.At(timemath.Second) {
		t.Errorf("paused step = (%v, %v), want (1s, 0)", st.Now, st.Delta)
	}
	if r.Rate() != 0 {
		t.Errorf("Rate() after Pause = %v, want 0", r.Rate())
	}
}

func TestClockRateValidation(t *testing.T) {
	r := rate.NewClockRate()
	if err := r.SetRateRatio(1, 0); !errors.Is(err, timemath.ErrInvalidFrequency) {
		t.Errorf("SetRateRatio(1, 0) error = %v, want %v", err, timemath.ErrInvalidFrequency)
	}
	for _, bad := range []float64{-1, math.NaN(), math.Inf(1)} {
		if err := r.SetRate(bad); !errors.Is(err, timemath.ErrInvalidArgument) {
			t.Errorf("SetRate(%v) error = %v, want %v", bad, err, timemath.ErrInvalidArgument)
		}
	}
	if _, err := r.Step(timemath.Nanoseconds(-1)); !errors.Is(err, timemath.ErrInvalidArgument) {
		t.Errorf("Step(-1ns) error = %v, want %v", err, timemath.ErrInvalidArgument)
	}
}

func TestRatioApproximation(t *testing.T) {
	values := []float64{1.0, 1.0 / 3.0, 1.0 / 7.0, 1.0 / 13.0, 1.001, 1234.1234}
	for _, v := range values {
		r := rate.NewClockRate()
		if err := r.SetRate(v); err != nil {
			t.Fatalf("SetRate(%v) error: %v", v, err)
		}
		if e := math.Abs(v - r.Rate()); e > 1e-6 {
			t.Errorf("SetRate(%v): approximated as %v, error %v", v, r.Rate(), e)
		}
	}
}
