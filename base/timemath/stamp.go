package timemath

// TimeStamp is a fixed point in time, stored as a TimeSpan offset from
// an arbitrary epoch. The epoch carries no calendar meaning; stamps are
// only meaningful relative to other stamps from the same timeline.
// Comparing stamps from unrelated timelines is not prevented by the
// type; that discipline is left to the caller.
type TimeStamp struct {
	elapsed TimeSpan
}

// Epoch is the origin of a timeline.
var Epoch = TimeStamp{}

// At returns the stamp at the given offset from the epoch.
func At(since TimeSpan) TimeStamp {
	return TimeStamp{elapsed: since}
}

// Elapsed returns the offset from the epoch.
func (t TimeStamp) Elapsed() TimeSpan {
	return t.elapsed
}

// Sub returns the exact span from u to t. The result is negative when
// u is later than t.
func (t TimeStamp) Sub(u TimeStamp) (TimeSpan, error) {
	return t.elapsed.Sub(u.elapsed)
}

// Add offsets the stamp forward by s (backward for negative s).
func (t TimeStamp) Add(s TimeSpan) (TimeStamp, error) {
	e, err := t.elapsed.Add(s)
	if err != nil {
		return TimeStamp{}, err
	}
	return TimeStamp{elapsed: e}, nil
}

// SubSpan offsets the stamp backward by s.
func (t TimeStamp) SubSpan(s TimeSpan) (TimeStamp, error) {
	e, err := t.elapsed.Sub(s)
	if err != nil {
		return TimeStamp{}, err
	}
	return TimeStamp{elapsed: e}, nil
}

func (t TimeStamp) Compare(u TimeStamp) int {
	return t.elapsed.Compare(u.elapsed)
}

func (t TimeStamp) Before(u TimeStamp) bool {
	return t.Compare(u) < 0
}

func (t TimeStamp) After(u TimeStamp) bool {
	return t.Compare(u) > 0
}

func (t TimeStamp) String() string {
	return t.elapsed.String() + " since epoch"
}
