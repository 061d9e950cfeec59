// Package step accumulates variable frame deltas into fixed-size
// simulation steps.
package step

import (
	"example.com/sim-time/base/timemath"
)

// A Timer slices a stream of deltas into whole steps of a fixed size,
// carrying the remainder between updates. The number of steps released
// per update is capped; excess time beyond the cap is dropped so a
// slow frame cannot snowball into ever longer updates.
type Timer struct {
	step     timemath.TimeSpan
	maxSteps int
	acc      timemath.TimeSpan
}

// A Result reports one update: the steps to run now and the steps
// dropped over the cap.
type Result struct {
	Ticks   int
	Dropped int
}

func NewTimer(stepSize timemath.TimeSpan, maxStepsPerUpdate int) (*Timer, error) {
	if stepSize.Sign() <= 0 || maxStepsPerUpdate < 1 {
		return nil, timemath.ErrInvalidArgument
	}
	return &Timer{step: stepSize, maxSteps: maxStepsPerUpdate}, nil
}

func (t *Timer) StepSize() timemath.TimeSpan {
	return t.step
}

func (t *Timer) MaxStepsPerUpdate() int {
	return t.maxSteps
}

// Accumulator returns the remainder carried to the next update, always
// in [0, step size).
func (t *Timer) Accumulator() timemath.TimeSpan {
	return t.acc
}

// Fraction returns the carried remainder as a reduced fraction of one
// step, for interpolating between the last two simulation states.
func (t *Timer) Fraction() (num, den int64) {
	if t.acc == timemath.Zero {
		return 0, 1
	}
	g := timemath.Gcd(uint64(t.acc.Nanoseconds()), uint64(t.step.Nanoseconds()))
	return t.acc.Nanoseconds() / int64(g), t.step.Nanoseconds() / int64(g)
}

// Advance adds a frame delta to the accumulator and releases the whole
// steps it now covers, up to the per-update cap.
func (t *Timer) Advance(delta timemath.TimeSpan) (Result, error) {
	if delta.Sign() < 0 {
		return Result{}, timemath.ErrInvalidArgument
	}
	acc, err := t.acc.Add(delta)
	if err != nil {
		return Result{}, err
	}
	n := acc.Nanoseconds() / t.step.Nanoseconds()
	rem := acc.Nanoseconds() % t.step.Nanoseconds()
	r := Result{Ticks: int(n)}
	if n > int64(t.maxSteps) {
		r.Ticks = t.maxSteps
		r.Dropped = int(n - int64(t.maxSteps))
	}
	t.acc = timemath.Nanoseconds(rem)
	return r, nil
}
