package timemath

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"lukechampine.com/uint128"
)

const (
	nsPerMicro  = 1_000
	nsPerMilli  = 1_000_000
	nsPerSecond = 1_000_000_000
	nsPerMinute = 60 * nsPerSecond
	nsPerHour   = 3_600 * nsPerSecond
	nsPerDay    = 86_400 * nsPerSecond
)

var pow10 = [...]uint64{1, 10, 100, 1_000, 10_000, 100_000,
	1_000_000, 10_000_000, 100_000_000, 1_000_000_000}

// String renders the span in a compact human-readable form, picking
// the coarsest tier that applies: "1d02:03:04.005", "1:02:03",
// "2:05.250", "1.234s", "250ms", "16us", "33ns".
func (s TimeSpan) String() string {
	if s.ns == 0 {
		return "0"
	}
	mag := uint64(s.ns)
	var b strings.Builder
	if s.ns < 0 {
		b.WriteByte('-')
		mag = -mag
	}
	switch {
	case mag >= nsPerDay:
		days := mag / nsPerDay
		mag %= nsPerDay
		hours := mag / nsPerHour
		mag %= nsPerHour
		minutes := mag / nsPerMinute
		mag %= nsPerMinute
		seconds := mag / nsPerSecond
		millis := mag % nsPerSecond / nsPerMilli
		switch {
		case millis > 0:
			fmt.Fprintf(&b, "%dd%02d:%02d:%02d.%03d", days, hours, minutes, seconds, millis)
		case seconds > 0:
			fmt.Fprintf(&b, "%dd%02d:%02d:%02d", days, hours, minutes, seconds)
		default:
			fmt.Fprintf(&b, "%dd%02d:%02d", days, hours, minutes)
		}
	case mag >= nsPerHour:
		hours := mag / nsPerHour
		mag %= nsPerHour
		minutes := mag / nsPerMinute
		mag %= nsPerMinute
		seconds := mag / nsPerSecond
		millis := mag % nsPerSecond / nsPerMilli
		if millis > 0 {
			fmt.Fprintf(&b, "%d:%02d:%02d.%03d", hours, minutes, seconds, millis)
		} else {
			fmt.Fprintf(&b, "%d:%02d:%02d", hours, minutes, seconds)
		}
	case mag >= nsPerMinute:
		minutes := mag / nsPerMinute
		mag %= nsPerMinute
		seconds := mag / nsPerSecond
		millis := mag % nsPerSecond / nsPerMilli
		if millis > 0 {
			fmt.Fprintf(&b, "%d:%02d.%03d", minutes, seconds, millis)
		} else {
			fmt.Fprintf(&b, "%d:%02d", minutes, seconds)
		}
	case mag >= nsPerSecond:
		seconds := mag / nsPerSecond
		millis := mag % nsPerSecond / nsPerMilli
		if millis > 0 {
			fmt.Fprintf(&b, "%d.%03ds", seconds, millis)
		} else {
			fmt.Fprintf(&b, "%ds", seconds)
		}
	case mag >= nsPerMilli:
		millis := mag / nsPerMilli
		micros := mag % nsPerMilli / nsPerMicro
		if micros > 0 {
			fmt.Fprintf(&b, "%d.%03dms", millis, micros)
		} else {
			fmt.Fprintf(&b, "%dms", millis)
		}
	case mag >= nsPerMicro:
		micros := mag / nsPerMicro
		nanos := mag % nsPerMicro
		if nanos > 0 {
			fmt.Fprintf(&b, "%d.%03dus", micros, nanos)
		} else {
			fmt.Fprintf(&b, "%dus", micros)
		}
	default:
		fmt.Fprintf(&b, "%dns", mag)
	}
	return b.String()
}

// MarshalText emits the most compact exact suffix form ("16ms",
// "16666666ns"), which ParseSpan always round-trips. The tiered String
// form is lossy ("1:02" reads back as hours:minutes) and is for display
// only.
func (s TimeSpan) MarshalText() ([]byte, error) {
	mag := uint64(s.ns)
	var b strings.Builder
	if s.ns < 0 {
		b.WriteByte('-')
		mag = -mag
	}
	switch {
	case mag%nsPerSecond == 0:
		fmt.Fprintf(&b, "%ds", mag/nsPerSecond)
	case mag%nsPerMilli == 0:
		fmt.Fprintf(&b, "%dms", mag/nsPerMilli)
	case mag%nsPerMicro == 0:
		fmt.Fprintf(&b, "%dus", mag/nsPerMicro)
	default:
		fmt.Fprintf(&b, "%dns", mag)
	}
	return []byte(b.String()), nil
}

func (s *TimeSpan) UnmarshalText(text []byte) error {
	v, err := ParseSpan(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSpan parses a span in suffix form ("250ms", "1.5s", "33ns") or
// clock form ("12:34:56.789", "2:05", "1d00:00:01.500"), with an
// optional leading minus sign. In clock forms the two-field variant is
// hours:minutes; fractional seconds beyond nanosecond resolution are
// truncated.
func ParseSpan(s string) (TimeSpan, error) {
	t := strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(t, "-") {
		neg = true
		t = strings.TrimSpace(t[1:])
	}
	if t == "" {
		return Zero, fmt.Errorf("time span %q: %w", s, ErrInvalidArgument)
	}
	if t == "0" {
		return Zero, nil
	}

	var mag uint64
	var err error
	if i := strings.IndexAny(t, "dD"); i >= 0 {
		mag, err = parseClockSpan(t[:i], t[i+1:], true)
	} else if strings.Contains(t, ":") {
		mag, err = parseClockSpan("", t, false)
	} else {
		mag, err = parseSuffixSpan(t)
	}
	if err != nil {
		return Zero, fmt.Errorf("time span %q: %w", s, err)
	}
	if neg {
		if mag > 1<<63 {
			return Zero, fmt.Errorf("time span %q: %w", s, ErrArithmeticOverflow)
		}
		if mag == 1<<63 {
			return MinSpan, nil
		}
		return TimeSpan{ns: -int64(mag)}, nil
	}
	if mag > math.MaxInt64 {
		return Zero, fmt.Errorf("time span %q: %w", s, ErrArithmeticOverflow)
	}
	return TimeSpan{ns: int64(mag)}, nil
}

func parseSuffixSpan(s string) (uint64, error) {
	var unit uint64
	var num string
	switch {
	case strings.HasSuffix(s, "ns"):
		unit, num = 1, s[:len(s)-2]
	case strings.HasSuffix(s, "us"):
		unit, num = nsPerMicro, s[:len(s)-2]
	case strings.HasSuffix(s, "ms"):
		unit, num = nsPerMilli, s[:len(s)-2]
	case strings.HasSuffix(s, "s"):
		unit, num = nsPerSecond, s[:len(s)-1]
	default:
		return 0, ErrInvalidArgument
	}
	num = strings.TrimSpace(num)
	whole := num
	var frac string
	if i := strings.IndexByte(num, '.'); i >= 0 {
		whole, frac = num[:i], num[i+1:]
	}
	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidArgument
	}
	total, err := mulU64(w, unit)
	if err != nil {
		return 0, err
	}
	if frac != "" {
		fns, err := fracNanos(frac, unit)
		if err != nil {
			return 0, err
		}
		total, err = addU64(total, fns)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

func parseClockSpan(daysPart, rest string, hasDays bool) (uint64, error) {
	parts := strings.SplitN(rest, ":", 3)
	if len(parts) < 2 {
		return 0, ErrInvalidArgument
	}
	var days uint64
	var err error
	if hasDays {
		days, err = strconv.ParseUint(strings.TrimSpace(daysPart), 10, 64)
		if err != nil {
			return 0, ErrInvalidArgument
		}
	}
	hours, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, ErrInvalidArgument
	}
	if hasDays && hours > 23 {
		return 0, ErrInvalidArgument
	}
	minutes, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, ErrInvalidArgument
	}
	if minutes > 59 {
		return 0, ErrInvalidArgument
	}
	var seconds, fns uint64
	if len(parts) == 3 {
		secPart := strings.TrimSpace(parts[2])
		if i := strings.IndexByte(secPart, '.'); i >= 0 {
			fns, err = fracNanos(secPart[i+1:], nsPerSecond)
			if err != nil {
				return 0, err
			}
			secPart = secPart[:i]
		}
		seconds, err = strconv.ParseUint(secPart, 10, 64)
		if err != nil {
			return 0, ErrInvalidArgument
		}
		if seconds > 59 {
			return 0, ErrInvalidArgument
		}
	}
	total, err := mulU64(days, nsPerDay)
	if err != nil {
		return 0, err
	}
	hoursNs, err := mulU64(hours, nsPerHour)
	if err != nil {
		return 0, err
	}
	for _, part := range []uint64{
		hoursNs, minutes * nsPerMinute, seconds * nsPerSecond, fns,
	} {
		total, err = addU64(total, part)
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

// fracNanos scales the fractional digit string to nanoseconds of one
// unit; digits beyond the unit resolution truncate.
func fracNanos(digits string, unit uint64) (uint64, error) {
	if digits == "" {
		return 0, ErrInvalidArgument
	}
	if len(digits) > 9 {
		digits = digits[:9]
	}
	f, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, ErrInvalidArgument
	}
	return uint128.From64(f).Mul64(unit).Div64(pow10[len(digits)]).Lo, nil
}

func mulU64(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, ErrArithmeticOverflow
	}
	return a * b, nil
}

func addU64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrArithmeticOverflow
	}
	return a + b, nil
}

// String renders integral rates as "N Hz" and other rates as a raw
// "ticks/per" rational with per in nanoseconds.
func (f Frequency) String() string {
	if f.per == 0 {
		return "0/0"
	}
	if hz, ok := f.hzExact(); ok {
		return strconv.FormatUint(hz, 10) + " Hz"
	}
	return fmt.Sprintf("%d/%d", f.ticks, f.per)
}

func (f Frequency) hzExact() (uint64, bool) {
	q, r := uint128.From64(f.ticks).Mul64(nsPerSecond).QuoRem64(f.per)
	if r != 0 || q.Hi != 0 {
		return 0, false
	}
	return q.Lo, true
}

func (f Frequency) MarshalText() ([]byte, error) {
	if f.per == 0 {
		return nil, ErrInvalidFrequency
	}
	return []byte(f.String()), nil
}

func (f *Frequency) UnmarshalText(text []byte) error {
	v, err := ParseFrequency(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseFrequency parses "60 Hz", "32 kHz", "2 MHz", "1 GHz" or a raw
// "ticks/per" rational with per in nanoseconds.
func ParseFrequency(s string) (Frequency, error) {
	t := strings.TrimSpace(s)
	if i := strings.IndexByte(t, '/'); i >= 0 {
		ticks, err := strconv.ParseUint(strings.TrimSpace(t[:i]), 10, 64)
		if err != nil {
			return Frequency{}, fmt.Errorf("frequency %q: %w", s, ErrInvalidArgument)
		}
		per, err := strconv.ParseUint(strings.TrimSpace(t[i+1:]), 10, 64)
		if err != nil {
			return Frequency{}, fmt.Errorf("frequency %q: %w", s, ErrInvalidArgument)
		}
		return NewFrequency(ticks, per)
	}
	var per uint64
	var num string
	if n, ok := strings.CutSuffix(t, "GHz"); ok {
		per, num = 1, n
	} else if n, ok := strings.CutSuffix(t, "MHz"); ok {
		per, num = nsPerMicro, n
	} else if n, ok := strings.CutSuffix(t, "kHz"); ok {
		per, num = nsPerMilli, n
	} else if n, ok := strings.CutSuffix(t, "Hz"); ok {
		per, num = nsPerSecond, n
	} else {
		return Frequency{}, fmt.Errorf("frequency %q: %w", s, ErrInvalidArgument)
	}
	n, err := strconv.ParseUint(strings.TrimSpace(num), 10, 64)
	if err != nil {
		return Frequency{}, fmt.Errorf("frequency %q: %w", s, ErrInvalidArgument)
	}
	return NewFrequency(n, per)
}
