package timemath_test

import (
	"errors"
	"testing"

	"example.com/sim-time/base/timemath"
)

func TestSpanString(t *testing.T) {
	cases := []struct {
		ns   int64
		want string
	}{
		{0, "0"},
		{33, "33ns"},
		{1_500, "1.500us"},
		{16_000, "16us"},
		{250_000_000, "250ms"},
		{1_234_000_000, "1.234s"},
		{5_000_000_000, "5s"},
		{125_000_000_000, "2:05"},
		{125_250_000_000, "2:05.250"},
		{3_723_000_000_000, "1:02:03"},
		{93_784_005_000_000, "1d02:03:04.005"},
		{86_400_000_000_000, "1d00:00"},
		{-250_000_000, "-250ms"},
	}
	for _, c := range cases {
		if got := timemath.Nanoseconds(c.ns).String(); got != c.want {
			t.Errorf("Nanoseconds(%d).String() = %q, want %q", c.ns, got, c.want)
		}
	}
	if got := timemath.MinSpan.String(); got != "-106751d23:47:16.854" {
		t.Errorf("MinSpan.String() = %q, want %q", got, "-106751d23:47:16.854")
	}
}

func TestParseSpan(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"33ns", 33},
		{"16us", 16_000},
		{"250ms", 250_000_000},
		{"1.5s", 1_500_000_000},
		{"0.5ms", 500_000},
		{"1.5ns", 1}, // sub-nanosecond fraction truncates
		{"-1.5s", -1_500_000_000},
		{" 250 ms ", 250_000_000},
		{"12:34", 45_240_000_000_000}, // hours:minutes
		{"25:00", 90_000_000_000_000},
		{"0:05:30", 330_000_000_000},
		{"1d02:03:04.005", 93_784_005_000_000},
		{"1d00:00", 86_400_000_000_000},
		{"0:00:00.123456789", 123_456_789},
	}
	for _, c := range cases {
		got, err := timemath.ParseSpan(c.in)
		if err != nil {
			t.Errorf("ParseSpan(%q) error: %v", c.in, err)
			continue
		}
		if got.Nanoseconds() != c.want {
			t.Errorf("ParseSpan(%q) = %dns, want %dns", c.in, got.Nanoseconds(), c.want)
		}
	}
}

func TestParseSpanErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"", timemath.ErrInvalidArgument},
		{"abc", timemath.ErrInvalidArgument},
		{"12", timemath.ErrInvalidArgument},
		{"1.5", timemath.ErrInvalidArgument},
		{"1d05", timemath.ErrInvalidArgument},
		{"1d24:00", timemath.ErrInvalidArgument},
		{"0:60", timemath.ErrInvalidArgument},
		{"0:00:60", timemath.ErrInvalidArgument},
		{"0:05.250", timemath.ErrInvalidArgument},
		{"9999999999s", timemath.ErrArithmeticOverflow},
		{"-9999999999s", timemath.ErrArithmeticOverflow},
	}
	for _, c := range cases {
		if _, err := timemath.ParseSpan(c.in); !errors.Is(err, c.want) {
			t.Errorf("ParseSpan(%q) error = %v, want %v", c.in, err, c.want)
		}
	}
}

func TestSpanTextRoundTrip(t *testing.T) {
	spans := []timemath.TimeSpan{
		timemath.Zero,
		timemath.Nanoseconds(16_666_666),
		timemath.Nanoseconds(250_000_000),
		timemath.Nanoseconds(-16_000),
		timemath.Second,
		timemath.MinSpan,
		timemath.MaxSpan,
	}
	for _, s := range spans {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", s, err)
		}
		var got timemath.TimeSpan
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", text, err)
		}
		if got != s {
			t.Errorf("round trip of %v through %q = %v", s, text, got)
		}
	}

	text, err := timemath.Nanoseconds(16_000_000).MarshalText()
	if err != nil || string(text) != "16ms" {
		t.Errorf("MarshalText(16ms) = %q, %v, want \"16ms\"", text, err)
	}
	text, err = timemath.Zero.MarshalText()
	if err != nil || string(text) != "0s" {
		t.Errorf("MarshalText(0) = %q, %v, want \"0s\"", text, err)
	}
}

func TestFrequencyString(t *testing.T) {
	cases := []struct {
		f    timemath.Frequency
		want string
	}{
		{timemath.Hz(60), "60 Hz"},
		{timemath.KHz(32), "32000 Hz"},
		{timemath.GHz(1), "1000000000 Hz"},
	}
	for _, c := range cases {
		if got := c.f.String(); got != c.want {
			t.Errorf("String(%d/%d) = %q, want %q", c.f.Ticks(), c.f.Per(), got, c.want)
		}
	}
	third, err := timemath.NewFrequency(1, 3)
	if err != nil {
		t.Fatalf("NewFrequency error: %v", err)
	}
	if got := third.String(); got != "1/3" {
		t.Errorf("String(1/3) = %q, want %q", got, "1/3")
	}
}

func TestParseFrequency(t *testing.T) {
	cases := []struct {
		in   string
		want timemath.Frequency
	}{
		{"60 Hz", timemath.Hz(60)},
		{"60Hz", timemath.Hz(60)},
		{"32 kHz", timemath.KHz(32)},
		{"2 MHz", timemath.MHz(2)},
		{"1 GHz", timemath.GHz(1)},
		{"120/2000000000", timemath.Hz(60)},
	}
	for _, c := range cases {
		got, err := timemath.ParseFrequency(c.in)
		if err != nil {
			t.Errorf("ParseFrequency(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseFrequency(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	if _, err := timemath.ParseFrequency("sixty"); !errors.Is(err, timemath.ErrInvalidArgument) {
		t.Errorf("ParseFrequency(\"sixty\") error = %v, want %v", err, timemath.ErrInvalidArgument)
	}
	if _, err := timemath.ParseFrequency("1/0"); !errors.Is(err, timemath.ErrInvalidFrequency) {
		t.Errorf("ParseFrequency(\"1/0\") error = %v, want %v", err, timemath.ErrInvalidFrequency)
	}
}

func TestFrequencyTextRoundTrip(t *testing.T) {
	freqs := []timemath.Frequency{timemath.Hz(60), timemath.KHz(48), timemath.GHz(1)}
	third, err := timemath.NewFrequency(1, 3)
	if err != nil {
		t.Fatalf("NewFrequency error: %v", err)
	}
	freqs = append(freqs, third)
	for _, f := range freqs {
		text, err := f.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", f, err)
		}
		var got timemath.Frequency
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", text, err)
		}
		if got != f {
			t.Errorf("round trip of %v through %q = %v", f, text, got)
		}
	}
}
