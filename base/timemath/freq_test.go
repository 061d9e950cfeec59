package timemath_test

import (
	"errors"
	"testing"

	"example.com/sim-time/base/timemath"
)

func TestNewFrequencyReduces(t *testing.T) {
	a, err := timemath.NewFrequency(120, 2_000_000_000)
	if err != nil {
		t.Fatalf("NewFrequency error: %v", err)
	}
	if a != timemath.Hz(60) {
		t.Errorf("NewFrequency(120, 2e9) = %v, want %v", a, timemath.Hz(60))
	}
	if a.Ticks() != 3 || a.Per() != 50_000_000 {
		t.Errorf("reduced form = %d/%d, want 3/50000000", a.Ticks(), a.Per())
	}

	z, err := timemath.NewFrequency(0, 7)
	if err != nil {
		t.Fatalf("NewFrequency error: %v", err)
	}
	if !z.IsZero() || z.Per() != 1 {
		t.Errorf("NewFrequency(0, 7) = %v, want 0/1", z)
	}

	if _, err := timemath.NewFrequency(1, 0); !errors.Is(err, timemath.ErrInvalidFrequency) {
		t.Errorf("NewFrequency(1, 0) error = %v, want %v", err, timemath.ErrInvalidFrequency)
	}
}

func TestFrequencyUnits(t *testing.T) {
	cases := []struct {
		got, want timemath.Frequency
	}{
		{timemath.KHz(1), timemath.Hz(1_000)},
		{timemath.MHz(1), timemath.KHz(1_000)},
		{timemath.GHz(1), timemath.MHz(1_000)},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("unit mismatch: %v != %v", c.got, c.want)
		}
	}
	if g := timemath.GHz(1); g.Ticks() != 1 || g.Per() != 1 {
		t.Errorf("GHz(1) = %d/%d, want 1/1", g.Ticks(), g.Per())
	}
}

func TestConvert(t *testing.T) {
	f, err := timemath.NewFrequency(1_000, 1_000_000_000)
	if err != nil {
		t.Fatalf("NewFrequency error: %v", err)
	}
	ns, err := timemath.Convert(16, f, timemath.Ref)
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if ns != 16_000_000 {
		t.Errorf("Convert(16, 1kHz, ns) = %d, want 16000000", ns)
	}

	// 90 ticks at 60 Hz last 1.5s, which is 45 ticks at 30 Hz.
	n, err := timemath.Convert(90, timemath.Hz(60), timemath.Hz(30))
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if n != 45 {
		t.Errorf("Convert(90, 60Hz, 30Hz) = %d, want 45", n)
	}

	// Negative counts convert symmetrically.
	n, err = timemath.Convert(-90, timemath.Hz(60), timemath.Hz(30))
	if err != nil || n != -45 {
		t.Errorf("Convert(-90, 60Hz, 30Hz) = %d, %v, want -45", n, err)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	// Milliseconds to nanoseconds and back is exact.
	for _, n := range []int64{0, 1, -1, 42, 1_000_000, -987_654} {
		ns, err := timemath.Convert(n, timemath.KHz(1), timemath.GHz(1))
		if err != nil {
			t.Fatalf("Convert(%d) error: %v", n, err)
		}
		back, err := timemath.Convert(ns, timemath.GHz(1), timemath.KHz(1))
		if err != nil {
			t.Fatalf("Convert(%d) back error: %v", ns, err)
		}
		if back != n {
			t.Errorf("round trip of %d through ns = %d", n, back)
		}
	}
}

func TestConvertErrors(t *testing.T) {
	var zero timemath.Frequency
	if _, err := timemath.Convert(1, zero, timemath.Ref); !errors.Is(err, timemath.ErrInvalidFrequency) {
		t.Errorf("Convert from zero value error = %v, want %v", err, timemath.ErrInvalidFrequency)
	}
	if _, err := timemath.Convert(1, timemath.Ref, zero); !errors.Is(err, timemath.ErrInvalidFrequency) {
		t.Errorf("Convert to zero value error = %v, want %v", err, timemath.ErrInvalidFrequency)
	}
	stopped, err := timemath.NewFrequency(0, 1)
	if err != nil {
		t.Fatalf("NewFrequency error: %v", err)
	}
	if _, err := timemath.Convert(1, stopped, timemath.Ref); !errors.Is(err, timemath.ErrInvalidFrequency) {
		t.Errorf("Convert from stopped rate error = %v, want %v", err, timemath.ErrInvalidFrequency)
	}
}

func TestReciprocal(t *testing.T) {
	f, err := timemath.NewFrequency(1, 500_000_000)
	if err != nil {
		t.Fatalf("NewFrequency error: %v", err)
	}
	r, err := f.Reciprocal()
	if err != nil {
		t.Fatalf("Reciprocal error: %v", err)
	}
	if r.Ticks() != 500_000_000 || r.Per() != 1 {
		t.Errorf("Reciprocal(1/5e8) = %d/%d, want 500000000/1", r.Ticks(), r.Per())
	}
	stopped, _ := timemath.NewFrequency(0, 1)
	if _, err := stopped.Reciprocal(); !errors.Is(err, timemath.ErrInvalidFrequency) {
		t.Errorf("Reciprocal of stopped rate error = %v, want %v", err, timemath.ErrInvalidFrequency)
	}
}

func TestScale(t *testing.T) {
	half, err := timemath.Hz(60).Scale(1, 2)
	if err != nil {
		t.Fatalf("Scale error: %v", err)
	}
	if half != timemath.Hz(30) {
		t.Errorf("60Hz scaled by 1/2 = %v, want %v", half, timemath.Hz(30))
	}
	same, err := timemath.Hz(60).Scale(7, 7)
	if err != nil || same != timemath.Hz(60) {
		t.Errorf("60Hz scaled by 7/7 = %v, %v, want 60Hz", same, err)
	}
	if _, err := timemath.Hz(60).Scale(1, 0); !errors.Is(err, timemath.ErrInvalidFrequency) {
		t.Errorf("Scale(1, 0) error = %v, want %v", err, timemath.ErrInvalidFrequency)
	}
}
